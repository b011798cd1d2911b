package notifier

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mentiond/internal/mentions/models"
	pkgerrors "mentiond/pkg/errors"
)

// filterPrivileged drops administrators and category moderators from the
// recipient set so moderation staff are not paged by mention spam. The one
// exemption: the author of the post being replied to is always kept, even
// when privileged, because a direct reply is addressed to them.
func (s *Service) filterPrivileged(ctx context.Context, post *models.Post, uids []models.UserID) ([]models.UserID, error) {
	if len(uids) == 0 {
		return uids, nil
	}

	var replyAuthor models.UserID
	toPid, err := s.c.Posts.ReplyTarget(ctx, post.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load reply target")
	}
	if toPid != 0 {
		replyAuthor, err = s.c.Posts.AuthorID(ctx, toPid)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load reply target author")
		}
	}

	keep := make([]bool, len(uids))
	g, ctx := errgroup.WithContext(ctx)
	for i, uid := range uids {
		if !replyAuthor.IsZero() && uid == replyAuthor {
			keep[i] = true
			continue
		}
		g.Go(func() error {
			isAdmin, err := s.c.Users.IsAdministrator(ctx, uid)
			if err != nil {
				return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "check administrator")
			}
			isMod, err := s.c.Users.IsModerator(ctx, uid, post.CategoryID)
			if err != nil {
				return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "check moderator")
			}
			keep[i] = !isAdmin && !isMod
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := uids[:0]
	for i, uid := range uids {
		if keep[i] {
			out = append(out, uid)
		} else if s.metrics != nil {
			s.metrics.IncSuppressed("privileged", 1)
		}
	}
	return out, nil
}
