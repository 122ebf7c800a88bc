// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts generated report text into HTML using goldmark.
// Remote providers may return arbitrary Markdown, so raw HTML is escaped.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM, // tables, strikethrough, autolinks, task lists
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(), // report lines are meaningful on their own
	),
)

// ToHTML converts Markdown source into HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ReportToHTML renders report content. Plain-text reports from the local
// engine get light Markdown structure first: the leading title line
// becomes a heading, as does every 【section】 line.
func ReportToHTML(content string) (string, error) {
	return ToHTML(structure(content))
}

func structure(content string) string {
	lines := strings.Split(content, "\n")
	titled := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case !titled:
			titled = true
			if !strings.HasPrefix(trimmed, "#") {
				lines[i] = "## " + trimmed
			}
		case strings.HasPrefix(trimmed, "【") && strings.HasSuffix(trimmed, "】"):
			lines[i] = "\n### " + trimmed
		}
	}
	return strings.Join(lines, "\n")
}
