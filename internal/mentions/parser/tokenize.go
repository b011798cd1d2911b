package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// mentionRegex matches an @ followed by Unicode letters, digits, hyphen,
// underscore or dot. The @ must follow start-of-text, whitespace, '>' or ';'
// so email-like and attribute-like text is not picked up. The capture group
// yields the mention bounds directly; no post-hoc trimming of the anchor.
var mentionRegex = regexp.MustCompile(`(?:^|\s|>|;)(@[\p{L}\d\-_.]+)`)

// latinMention reports whether a mention consists only of ASCII word
// characters, in which case a trailing word boundary can be required safely
// when rewriting.
var latinMention = regexp.MustCompile(`@[\w\d\-_.]+$`)

// punctuationSuffix is the trailing run stripped before lookup; the original
// text keeps it so unresolved candidates pass through untouched.
var punctuationSuffix = regexp.MustCompile(`[!?.]*$`)

// Slugify normalizes a mention body into the identifier used for identity
// lookup. Slug policy belongs to the host; this is the injection point.
type Slugify func(string) string

// DefaultSlugify lowercases, collapses whitespace runs into hyphens, and
// drops anything outside letters, digits, hyphen, underscore and dot.
// Hosts with their own slug rules should inject theirs instead.
func DefaultSlugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
			pendingHyphen = b.Len() > 0
		case r == '-' || r == '_' || r == '.' || isSlugRune(r):
			if pendingHyphen {
				b.WriteByte('-')
				pendingHyphen = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSlugRune(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
		return true
	}
	// Non-ASCII letters and digits survive slugification unchanged.
	return r > 127 && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// Candidate is one distinct mention found in content. Raw is the matched
// text including any trailing punctuation; Text has the punctuation run
// stripped and is what rewriting anchors on; Slug is the lookup identifier.
type Candidate struct {
	Raw  string
	Text string
	Slug string
}

// Candidates extracts mention candidates from a single text blob,
// deduplicated by slug in first-seen order.
func Candidates(text string, slugify Slugify) []Candidate {
	return collectCandidates(nil, text, slugify, map[string]struct{}{})
}

// CandidatesInSpans extracts candidates from the unprotected spans only,
// deduplicated by slug across the whole sequence.
func CandidatesInSpans(spans []Span, slugify Slugify) []Candidate {
	var out []Candidate
	seen := map[string]struct{}{}
	for _, s := range spans {
		if s.Protected {
			continue
		}
		out = collectCandidates(out, s.Text, slugify, seen)
	}
	return out
}

func collectCandidates(out []Candidate, text string, slugify Slugify, seen map[string]struct{}) []Candidate {
	if slugify == nil {
		slugify = DefaultSlugify
	}
	for _, idx := range mentionRegex.FindAllStringSubmatchIndex(text, -1) {
		raw := text[idx[2]:idx[3]]
		trimmed := punctuationSuffix.ReplaceAllString(raw, "")
		if len(trimmed) <= 1 {
			continue
		}
		slug := slugify(trimmed[1:])
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, Candidate{Raw: raw, Text: trimmed, Slug: slug})
	}
	return out
}

// isLatin reports whether the candidate text is pure ASCII/Latin, which
// decides whether the rewrite pattern may demand a word boundary.
func isLatin(text string) bool {
	return latinMention.MatchString(text)
}
