package notifier

import (
	"context"
	"fmt"
	"html"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"mentiond/internal/mentions/models"
	"mentiond/internal/mentions/parser"
	pkgerrors "mentiond/pkg/errors"
)

// mentionedGroup is one group target with its canonical name and the member
// ids left after cross-target deduplication.
type mentionedGroup struct {
	name    string
	members []models.UserID
}

// Notify runs one notification dispatch for a freshly created post. Failures
// are logged and returned but must stay invisible to the post author; the
// caller treats dispatch as fire-and-forget. Nothing is marked sent when a
// collaborator fails, so a later re-trigger is a safe retry.
func (s *Service) Notify(ctx context.Context, post *models.Post) error {
	if post == nil || post.Content == "" {
		return nil
	}
	if s.metrics != nil {
		s.metrics.DispatchesStarted.Inc()
	}

	if err := s.dispatch(ctx, post); err != nil {
		if s.metrics != nil {
			s.metrics.DispatchesFailed.Inc()
		}
		s.logger.Error("mention dispatch failed",
			"post_id", post.ID,
			"topic_id", post.TopicID,
			"error", err,
		)
		return err
	}
	return nil
}

func (s *Service) dispatch(ctx context.Context, post *models.Post) error {
	// Notify-time pass strips markdown blockquotes and code entirely so
	// quoted mentions never page anyone.
	cleaned := parser.Clean(post.Content, parser.SplitOptions{Markdown: true, Blockquote: true, Code: true})
	candidates := parser.Candidates(cleaned, s.slugify)
	candidates = s.filterNoMentionGroups(candidates)
	if len(candidates) == 0 {
		return nil
	}

	userSlugs, groupSlugs, err := s.partition(ctx, candidates)
	if err != nil {
		return err
	}
	if len(userSlugs) == 0 && len(groupSlugs) == 0 {
		return nil
	}

	topic, err := s.c.Topics.ByID(ctx, post.TopicID)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load topic")
	}
	if topic == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("topic %d not found", post.TopicID))
	}

	authorName, err := s.authorName(ctx, post.AuthorID)
	if err != nil {
		return err
	}

	followers, err := s.followerSet(ctx, post.TopicID)
	if err != nil {
		return err
	}

	uids, err := s.directRecipients(ctx, post, userSlugs, followers)
	if err != nil {
		return err
	}

	groups, err := s.groupRecipients(ctx, post, groupSlugs, followers, uids)
	if err != nil {
		return err
	}

	title := html.UnescapeString(topic.Title)
	titleEscaped := strings.NewReplacer("%", "&#37;", ",", "&#44;").Replace(title)

	userBody := fmt.Sprintf("[[notifications:user_mentioned_you_in, %s, %s]]", authorName, titleEscaped)
	if err := s.sendToUids(ctx, post, title, uids, models.NotificationClassUser, userBody); err != nil {
		return err
	}

	for _, g := range groups {
		body := fmt.Sprintf("[[notifications:user_mentioned_group_in, %s, %s, %s]]", authorName, g.name, titleEscaped)
		if err := s.sendToUids(ctx, post, title, g.members, g.name, body); err != nil {
			return err
		}
	}
	return nil
}

// filterNoMentionGroups drops candidates whose slug appears in the exclusion
// list (built-in pseudo-groups plus configured names).
func (s *Service) filterNoMentionGroups(candidates []parser.Candidate) []parser.Candidate {
	excluded := s.settings.NoMentionGroups()
	out := candidates[:0]
	for _, c := range candidates {
		if !slices.Contains(excluded, c.Slug) {
			out = append(out, c)
		}
	}
	return out
}

// partition splits candidate slugs into those naming users and those naming
// groups. A slug can land in both lists; existence checks run concurrently.
func (s *Service) partition(ctx context.Context, candidates []parser.Candidate) (userSlugs, groupSlugs []string, err error) {
	isUser := make([]bool, len(candidates))
	isGroup := make([]bool, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	for i, c := range candidates {
		g.Go(func() error {
			ok, err := s.c.Users.ExistsBySlug(ctx, c.Slug)
			if err != nil {
				return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "check user slug")
			}
			isUser[i] = ok
			return nil
		})
		g.Go(func() error {
			ok, err := s.c.Groups.ExistsBySlug(ctx, c.Slug)
			if err != nil {
				return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "check group slug")
			}
			isGroup[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for i, c := range candidates {
		if isUser[i] {
			userSlugs = append(userSlugs, c.Slug)
		}
		if isGroup[i] {
			groupSlugs = append(groupSlugs, c.Slug)
		}
		if s.metrics != nil {
			switch {
			case isUser[i]:
				s.metrics.IncResolved("user")
			case isGroup[i]:
				s.metrics.IncResolved("group")
			default:
				s.metrics.IncResolved("none")
			}
		}
	}
	return userSlugs, groupSlugs, nil
}

func (s *Service) authorName(ctx context.Context, uid models.UserID) (string, error) {
	author, err := s.c.Users.ByID(ctx, uid)
	if err != nil {
		return "", pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load post author")
	}
	if author == nil {
		return "", nil
	}
	return author.Username, nil
}

// followerSet returns the topic followers to exclude, empty unless the
// disable-followed-topics setting is on.
func (s *Service) followerSet(ctx context.Context, topicID int64) (map[models.UserID]struct{}, error) {
	if !s.settings.DisableFollowedTopics {
		return map[models.UserID]struct{}{}, nil
	}
	followers, err := s.c.Topics.Followers(ctx, topicID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load topic followers")
	}
	set := make(map[models.UserID]struct{}, len(followers))
	for _, uid := range followers {
		set[uid] = struct{}{}
	}
	return set, nil
}

// directRecipients resolves user slugs to a deduplicated id set, excluding
// the author and topic followers, then applies the privileged-direct-replies
// policy.
func (s *Service) directRecipients(ctx context.Context, post *models.Post, userSlugs []string, followers map[models.UserID]struct{}) ([]models.UserID, error) {
	seen := make(map[models.UserID]struct{}, len(userSlugs))
	uids := make([]models.UserID, 0, len(userSlugs))
	for _, slug := range userSlugs {
		uid, err := s.c.Users.IDBySlug(ctx, slug)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "resolve mentioned user")
		}
		if uid.IsZero() || uid == post.AuthorID {
			continue
		}
		if _, dup := seen[uid]; dup {
			continue
		}
		if _, follows := followers[uid]; follows {
			if s.metrics != nil {
				s.metrics.IncSuppressed("follower", 1)
			}
			continue
		}
		seen[uid] = struct{}{}
		uids = append(uids, uid)
	}

	if !s.settings.PrivilegedDirectReplies {
		return uids, nil
	}
	return s.filterPrivileged(ctx, post, uids)
}

// groupRecipients expands mentioned groups to member lists. Groups are
// processed in lexical name order so ownership of members shared between
// groups is deterministic: the first group claiming a member keeps it and
// later groups drop it, leaving each member exactly one notification.
func (s *Service) groupRecipients(ctx context.Context, post *models.Post, groupSlugs []string, followers map[models.UserID]struct{}, direct []models.UserID) ([]mentionedGroup, error) {
	groups := make([]mentionedGroup, 0, len(groupSlugs))
	for _, slug := range groupSlugs {
		name, err := s.c.Groups.NameBySlug(ctx, slug)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "resolve mentioned group")
		}
		if name == "" {
			continue
		}
		members, err := s.c.Groups.Members(ctx, name)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load group members")
		}
		groups = append(groups, mentionedGroup{name: name, members: members})
	}

	slices.SortFunc(groups, func(a, b mentionedGroup) int {
		return strings.Compare(a.name, b.name)
	})

	directSet := make(map[models.UserID]struct{}, len(direct))
	for _, uid := range direct {
		directSet[uid] = struct{}{}
	}

	claimed := make(map[models.UserID]struct{})
	for gi := range groups {
		kept := groups[gi].members[:0]
		for _, uid := range groups[gi].members {
			if uid.IsZero() {
				continue
			}
			if _, dup := claimed[uid]; dup {
				continue
			}
			// Claim before filtering: a member excluded here must not
			// resurface through a later group either.
			claimed[uid] = struct{}{}
			if _, isDirect := directSet[uid]; isDirect {
				continue
			}
			if uid == post.AuthorID {
				continue
			}
			if _, follows := followers[uid]; follows {
				if s.metrics != nil {
					s.metrics.IncSuppressed("follower", 1)
				}
				continue
			}
			kept = append(kept, uid)
		}
		groups[gi].members = kept
	}
	return groups, nil
}
