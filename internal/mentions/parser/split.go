// Package parser implements the mention extraction engine: segmenting content
// into mentionable and protected spans, tokenizing @mention candidates,
// resolving them against user and group identity, and rewriting matched spans
// into display links.
package parser

import (
	"regexp"
	"strings"
)

// Span is one segment of content. Protected spans (inline code, code blocks,
// blockquotes) are opaque to mention matching and rewriting.
type Span struct {
	Text      string
	Protected bool
}

// SplitOptions selects which regions count as protected and whether the
// content is raw markdown or already-rendered HTML.
type SplitOptions struct {
	Markdown   bool
	Blockquote bool
	Code       bool
}

// Region patterns. Markdown blockquotes are runs of '>' lines; markdown code
// is either a single-line backtick span or a fenced block. HTML variants
// match the rendered tags. '.' never crosses newlines here except where the
// (?s:.) groups allow it.
const (
	mdBlockquotePattern   = `^>.*(?:\n>.*)*`
	mdInlineCodePattern   = "`[^`\n]+`"
	mdFencedCodePattern   = "^```(?s:.)*?^```"
	htmlBlockquotePattern = `<blockquote>(?s:.)*?</blockquote>`
	htmlCodePattern       = `<code(?s:.)*?</code>`
)

var splitRegexCache = map[SplitOptions]*regexp.Regexp{}

func init() {
	// Precompile every option combination actually reachable; alternation
	// order matters and must stay stable (blockquote before code, inline
	// code before fenced).
	for _, markdown := range []bool{false, true} {
		for _, blockquote := range []bool{false, true} {
			for _, code := range []bool{false, true} {
				opts := SplitOptions{Markdown: markdown, Blockquote: blockquote, Code: code}
				if re := compileSplitRegex(opts); re != nil {
					splitRegexCache[opts] = re
				}
			}
		}
	}
}

func compileSplitRegex(opts SplitOptions) *regexp.Regexp {
	var parts []string
	if opts.Blockquote {
		if opts.Markdown {
			parts = append(parts, mdBlockquotePattern)
		} else {
			parts = append(parts, htmlBlockquotePattern)
		}
	}
	if opts.Code {
		if opts.Markdown {
			parts = append(parts, mdInlineCodePattern, mdFencedCodePattern)
		} else {
			parts = append(parts, htmlCodePattern)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return regexp.MustCompile("(?m)(?:" + strings.Join(parts, "|") + ")")
}

// Split segments content into an ordered span sequence alternating between
// unprotected and protected, starting unprotected (leading spans may be
// empty). Concatenating the spans' text reproduces content exactly.
func Split(content string, opts SplitOptions) []Span {
	if content == "" {
		return nil
	}

	re := splitRegexCache[opts]
	if re == nil {
		return []Span{{Text: content}}
	}

	locs := re.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return []Span{{Text: content}}
	}

	spans := make([]Span, 0, 2*len(locs)+1)
	pos := 0
	for _, loc := range locs {
		spans = append(spans, Span{Text: content[pos:loc[0]]})
		spans = append(spans, Span{Text: content[loc[0]:loc[1]], Protected: true})
		pos = loc[1]
	}
	if pos < len(content) {
		spans = append(spans, Span{Text: content[pos:]})
	}
	return spans
}

// Clean reassembles content with every protected region removed.
func Clean(content string, opts SplitOptions) string {
	spans := Split(content, opts)
	var b strings.Builder
	b.Grow(len(content))
	for _, s := range spans {
		if !s.Protected {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Join reassembles a span sequence into content.
func Join(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
