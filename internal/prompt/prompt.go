// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt builds the natural-language instruction sent to remote
// providers. Output is deterministic for identical inputs.
package prompt

import (
	"fmt"
	"strings"

	"weeklyreport/internal/models"
	"weeklyreport/internal/style"
)

// SystemPrompt is the system role message for chat-shaped providers.
const SystemPrompt = "You are a professional weekly report generator. Generate detailed, professional weekly reports based on user input."

// labels holds the localized fixed text of a prompt.
type labels struct {
	intro        string
	styleName    string
	styleTone    string
	completed    string
	problems     string
	plans        string
	structure    string
	requirements string
	rules        func(info style.Info) []string
}

var chinese = labels{
	intro:        "请生成一份周报，要求如下：",
	styleName:    "行业风格：",
	styleTone:    "风格特点：",
	completed:    "本周完成的工作：",
	problems:     "遇到的问题：",
	plans:        "下周计划：",
	structure:    "请按照以下结构生成周报：",
	requirements: "要求：",
	rules: func(info style.Info) []string {
		return []string{
			"使用" + info.Name + "的专业术语和表达方式",
			"语言风格：" + info.Tone,
			"内容详实、专业、有深度",
			"适当使用行业关键词：" + strings.Join(info.Keywords, "、"),
			"生成完整的周报内容，包括标题和日期",
			"使用简体中文撰写整份周报",
		}
	},
}

var english = labels{
	intro:        "Please generate a weekly work report with the following requirements:",
	styleName:    "Industry Style: ",
	styleTone:    "Style Characteristics: ",
	completed:    "Work Completed This Week:",
	problems:     "Problems Encountered:",
	plans:        "Next Week Plans:",
	structure:    "Please structure the report as follows:",
	requirements: "Requirements:",
	rules: func(info style.Info) []string {
		return []string{
			"Use professional terminology and expressions of " + info.Name,
			"Language style: " + info.Tone,
			"Content should be detailed, professional, and in-depth",
			"Appropriately use industry keywords: " + strings.Join(info.Keywords, ", "),
			"Generate complete weekly report content, including title and date",
			"Write the entire report in English",
		}
	},
}

// Build renders the generation prompt for the given inputs and style.
// Problems and plans are included only when non-empty. Unknown languages
// render in Chinese, matching style.Resolve.
func Build(in models.Inputs, info style.Info, lang string) string {
	l := chinese
	if style.NormalizeLanguage(lang) == style.English {
		l = english
	}

	var b strings.Builder
	b.WriteString(l.intro)
	b.WriteString("\n\n")
	b.WriteString(l.styleName + info.Name + "\n")
	b.WriteString(l.styleTone + info.Tone + "\n")

	writeList(&b, l.completed, in.Completed)
	if len(in.Problems) > 0 {
		writeList(&b, l.problems, in.Problems)
	}
	if len(in.Plans) > 0 {
		writeList(&b, l.plans, in.Plans)
	}

	b.WriteString("\n" + l.structure + "\n")
	for i, label := range info.Structure {
		fmt.Fprintf(&b, "%d. 【%s】\n", i+1, label)
	}

	b.WriteString("\n" + l.requirements + "\n")
	rules := l.rules(info)
	for i, rule := range rules {
		fmt.Fprintf(&b, "%d. %s", i+1, rule)
		if i < len(rules)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// writeList writes a heading followed by a 1-indexed list.
func writeList(b *strings.Builder, heading string, items []string) {
	b.WriteString("\n" + heading + "\n")
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}
