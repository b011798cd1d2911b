package parser

import (
	"fmt"
	"regexp"
	"strings"

	"mentiond/internal/mentions/models"
)

// UserRef is a resolved user mention target.
type UserRef struct {
	ID       models.UserID
	Username string
	Fullname string
}

// GroupRef is a resolved group mention target.
type GroupRef struct {
	Slug string
	Name string
}

// Resolution ties a candidate to its identity targets. User and Group are
// independent: a slug may resolve to both at once. Neither set means the
// candidate is not a mention and is left untouched.
type Resolution struct {
	Candidate
	User  *UserRef
	Group *GroupRef
}

// Resolved reports whether the candidate matched a user or a group.
func (r Resolution) Resolved() bool {
	return r.User != nil || r.Group != nil
}

// rewriteSpans replaces every occurrence of the resolved candidate within
// unprotected spans, preserving the leading anchor character outside the
// generated link. A protected span consisting of a bare inline-code open tag
// marks the following span as skipped; that span holds code interior text
// the splitter could not classify.
func rewriteSpans(spans []Span, res Resolution, baseURL string, display models.DisplayMode) {
	pattern := `(?:^|\s|>|;)` + regexp.QuoteMeta(res.Text)
	if isLatin(res.Text) {
		// For Latin mentions a word boundary prevents rewriting a longer
		// identifier that merely starts with this one. Boundary detection
		// is unreliable for other scripts, so they go without.
		pattern += `\b`
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return
	}

	skip := false
	for i := range spans {
		if skip || spans[i].Protected {
			skip = spans[i].Text == "<code>"
			continue
		}
		spans[i].Text = re.ReplaceAllStringFunc(spans[i].Text, func(m string) string {
			at := strings.Index(m, "@")
			if at < 0 {
				return m
			}
			lead, matched := m[:at], m[at:]
			return lead + renderLink(res, matched, baseURL, display)
		})
	}
}

// renderLink produces the replacement anchor. User resolution wins the link
// target when the slug matched both a user and a group.
func renderLink(res Resolution, matched, baseURL string, display models.DisplayMode) string {
	if res.User != nil {
		text := matched
		switch display {
		case models.DisplayFullname:
			if res.User.Fullname != "" {
				text = res.User.Fullname
			}
		case models.DisplayUsername:
			text = res.User.Username
		}
		return fmt.Sprintf(`<a class="mention mention-user" href="%s/uid/%d">%s</a>`, baseURL, res.User.ID, text)
	}
	return fmt.Sprintf(`<a class="mention mention-group" href="%s/groups/%s">%s</a>`, baseURL, res.Group.Slug, matched)
}
