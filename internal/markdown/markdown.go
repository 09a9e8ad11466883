// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts Markdown source text into HTML and plain text
// using goldmark.
// It is used for transactional email bodies, so raw HTML in the source is
// escaped rather than passed through: visitor-supplied text ends up in
// these documents.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // tables, strikethrough, autolinks
		extension.Typographer, // smart quotes and dashes
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

// ToText converts Markdown source into readable plain text for the
// text/plain alternative of an email. Emphasis markers and backslash
// escapes are dropped, entities are resolved, and list items keep a
// leading "- ".
func ToText(source string) (string, error) {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := n.(type) {
		case *ast.ListItem:
			if entering {
				buf.WriteString("- ")
			}
		case *ast.TextBlock, *ast.List:
			if !entering {
				buf.WriteString("\n")
			}
		case *ast.Paragraph, *ast.Heading:
			if !entering {
				buf.WriteString("\n\n")
			}
		case *ast.Text:
			if entering {
				buf.Write(plain(n.Segment.Value(src)))
				switch {
				case n.HardLineBreak():
					buf.WriteByte('\n')
				case n.SoftLineBreak():
					buf.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				buf.Write(plain(n.Value))
			}
		case *ast.AutoLink:
			if entering {
				buf.Write(n.Label(src))
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

func plain(b []byte) []byte {
	return util.ResolveNumericReferences(util.ResolveEntityNames(util.UnescapePunctuations(b)))
}

// escaper neutralises characters that Markdown would otherwise interpret.
var escaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`,
	`[`, `\[`, `]`, `\]`, `<`, `&lt;`, `>`, `&gt;`,
	`#`, `\#`, `|`, `\|`, `!`, `\!`,
)

// Escape makes untrusted text safe to interpolate into Markdown source so it
// renders literally. Newlines are collapsed to spaces.
func Escape(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return escaper.Replace(s)
}
