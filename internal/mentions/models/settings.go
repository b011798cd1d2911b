package models

import (
	"encoding/json"
	"log/slog"

	pstrings "mentiond/pkg/platform/strings"
)

// DisplayMode controls what text a rewritten mention link shows.
type DisplayMode string

const (
	// DisplayOriginal keeps the matched text unchanged.
	DisplayOriginal DisplayMode = ""
	// DisplayUsername always shows the canonical username.
	DisplayUsername DisplayMode = "username"
	// DisplayFullname shows the fullname when present, else the matched text.
	DisplayFullname DisplayMode = "fullname"
)

// Pseudo-groups that can never be mentioned regardless of configuration.
var builtinNoMentionGroups = []string{"registered-users", "guests"}

// Settings is the immutable configuration snapshot threaded into every
// component. It is built once at startup; nothing mutates it afterwards.
type Settings struct {
	// DisableFollowedTopics suppresses mention notifications for users who
	// already follow the topic (they are notified through the follow channel).
	DisableFollowedTopics bool
	// AutofillGroups enables the group listing endpoint used by composers.
	AutofillGroups bool
	// DisableGroupMentions lists additional group names excluded from
	// mention processing.
	DisableGroupMentions []string
	// OverrideIgnores skips the ignored-topic filter during dispatch.
	OverrideIgnores bool
	// Display selects the rewrite display policy.
	Display DisplayMode
	// PrivilegedDirectReplies drops admin/moderator recipients unless they
	// authored the post being replied to.
	PrivilegedDirectReplies bool
}

// RawSettings is the string-valued settings bag as stored by the host
// ("on"/"off" toggles, JSON-encoded lists).
type RawSettings struct {
	DisableFollowedTopics   string
	AutofillGroups          string
	DisableGroupMentions    string
	OverrideIgnores         string
	Display                 string
	PrivilegedDirectReplies string
}

// ParseSettings converts a raw settings bag into an immutable snapshot.
// A malformed group-exclusion list is logged and treated as empty; every
// other field has a safe zero value, so parsing never fails.
func ParseSettings(raw RawSettings, logger *slog.Logger) Settings {
	s := Settings{
		DisableFollowedTopics:   raw.DisableFollowedTopics == "on",
		AutofillGroups:          raw.AutofillGroups == "on",
		OverrideIgnores:         raw.OverrideIgnores == "on",
		PrivilegedDirectReplies: raw.PrivilegedDirectReplies == "on",
	}

	switch DisplayMode(raw.Display) {
	case DisplayUsername:
		s.Display = DisplayUsername
	case DisplayFullname:
		s.Display = DisplayFullname
	default:
		s.Display = DisplayOriginal
	}

	if raw.DisableGroupMentions != "" {
		var groups []string
		if err := json.Unmarshal([]byte(raw.DisableGroupMentions), &groups); err != nil {
			if logger != nil {
				logger.Error("invalid disableGroupMentions setting, ignoring",
					"value", raw.DisableGroupMentions,
					"error", err,
				)
			}
		} else {
			s.DisableGroupMentions = pstrings.DedupeAndTrim(groups)
		}
	}

	return s
}

// NoMentionGroups returns the full exclusion list: the built-in pseudo-groups
// plus any administrator-configured names.
func (s Settings) NoMentionGroups() []string {
	out := make([]string, 0, len(builtinNoMentionGroups)+len(s.DisableGroupMentions))
	out = append(out, builtinNoMentionGroups...)
	out = append(out, s.DisableGroupMentions...)
	return out
}
