// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package local renders weekly reports from built-in phrasing templates,
// without any network access. It is the fallback path when no remote
// provider is configured or a remote call fails.
package local

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"weeklyreport/internal/models"
	"weeklyreport/internal/style"
)

// Engine renders template-based reports. The zero value is not usable;
// construct with New.
type Engine struct {
	rnd RandomSource
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for the title week number and
// the generation timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine drawing phrasings from rnd. A nil rnd uses the
// uniform PRNG.
func New(rnd RandomSource, opts ...Option) *Engine {
	if rnd == nil {
		rnd = Uniform()
	}
	e := &Engine{rnd: rnd, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate builds a report. It never fails. For every item the engine
// draws a template index and then a keyword index.
func (e *Engine) Generate(in models.Inputs, styleKey, lang string) *models.Report {
	info := style.Resolve(styleKey, lang)
	ph := phrasingFor(info)
	now := e.now()

	var b strings.Builder
	b.WriteString(title(info, WeekNumber(now)))
	b.WriteString("\n\n")

	b.WriteString("【" + info.Structure[0] + "】\n")
	e.writeSection(&b, ph.completed, in.Completed, info.Keywords)

	if len(in.Problems) > 0 {
		b.WriteString("\n【" + info.Structure[1] + "】\n")
		e.writeSection(&b, ph.problems, in.Problems, info.Keywords)
	}
	if len(in.Plans) > 0 {
		b.WriteString("\n【" + info.Structure[2] + "】\n")
		e.writeSection(&b, ph.plans, in.Plans, info.Keywords)
	}

	b.WriteString("\n" + footer(info.Language, now))

	return &models.Report{
		ID:          uuid.New(),
		Content:     b.String(),
		Style:       info.Name,
		StyleKey:    info.Key,
		Language:    info.Language,
		Provider:    models.ProviderLocal,
		Mode:        models.ModeLocal,
		GeneratedAt: now,
	}
}

func (e *Engine) writeSection(b *strings.Builder, fam family, items, keywords []string) {
	for i, item := range items {
		tmpl := fam[e.rnd.NextIndex(len(fam))]
		kw := keywords[e.rnd.NextIndex(len(keywords))]
		line := strings.NewReplacer("{item}", item, "{kw}", kw).Replace(tmpl)
		fmt.Fprintf(b, "%d. %s\n", i+1, line)
	}
}

func title(info style.Info, week int) string {
	if info.Language == style.English {
		return fmt.Sprintf("📅 Week %d Work Report (%s)", week, info.Name)
	}
	return fmt.Sprintf("📅 第%d周工作报告（%s）", week, info.Name)
}

func footer(lang string, t time.Time) string {
	if lang == style.English {
		return "Generated at: " + FormatTimestamp(lang, t)
	}
	return "生成时间：" + FormatTimestamp(lang, t)
}

// FormatTimestamp renders t the way each language's locale prints a
// numeric 24-hour date and time.
func FormatTimestamp(lang string, t time.Time) string {
	if lang == style.English {
		return t.Format("01/02/2006, 15:04:05")
	}
	return t.Format("2006/01/02 15:04:05")
}

// WeekNumber returns ceil((weekday(t) + 1 + daysSinceJan1) / 7) with
// Sunday as weekday 0, evaluated in t's location. The weekday is that of t
// itself, not of Jan 1, so the count can step back by one on a Sunday
// (2026-01-03 is week 2, 2026-01-04 is week 1). Report titles in the wild
// carry these numbers, so the rule is kept as is.
func WeekNumber(t time.Time) int {
	days := t.YearDay() - 1
	return int(math.Ceil(float64(int(t.Weekday())+1+days) / 7))
}
