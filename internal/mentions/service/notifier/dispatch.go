package notifier

import (
	"context"
	"fmt"
	"time"

	"mentiond/internal/mentions/models"
	"mentiond/pkg/batch"
	pkgerrors "mentiond/pkg/errors"
)

// sendToUids creates the notification record for one target class and pushes
// it to every recipient that survives the filter chain. Recipients are
// processed in fixed-size batches with an enforced minimum interval so large
// group audiences cannot overwhelm the privilege and ignore backends.
// Delivery happens once, after all batches settled.
func (s *Service) sendToUids(ctx context.Context, post *models.Post, topicTitle string, uids []models.UserID, class, body string) error {
	if len(uids) == 0 {
		return nil
	}

	notification, err := s.c.Notifications.Create(ctx, &models.Notification{
		ID:         models.NotificationID(post.TopicID, post.ID, post.AuthorID, class),
		Type:       "mention",
		BodyShort:  body,
		BodyLong:   post.Content,
		PostID:     post.ID,
		TopicID:    post.TopicID,
		From:       post.AuthorID,
		Path:       fmt.Sprintf("/post/%d", post.ID),
		TopicTitle: topicTitle,
		Importance: 6,
	})
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "create notification")
	}
	if notification == nil {
		return nil
	}

	var delivered []models.UserID
	err = batch.Process(ctx, uids, s.batchSize, s.batchInterval, func(ctx context.Context, chunk []models.UserID) error {
		start := time.Now()

		readable, err := s.c.Privileges.FilterReadable(ctx, post.TopicID, chunk)
		if err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "filter readable recipients")
		}
		if s.metrics != nil {
			s.metrics.IncSuppressed("unreadable", len(chunk)-len(readable))
		}

		if !s.settings.OverrideIgnores {
			before := len(readable)
			readable, err = s.c.Topics.FilterIgnoring(ctx, post.TopicID, readable)
			if err != nil {
				return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "filter ignoring recipients")
			}
			if s.metrics != nil {
				s.metrics.IncSuppressed("ignoring", before-len(readable))
			}
		}

		alreadySent, err := s.c.Sent.Contains(ctx, post.ID, readable)
		if err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "check sent mentions")
		}
		for i, uid := range readable {
			if alreadySent[i] {
				if s.metrics != nil {
					s.metrics.IncSuppressed("already_sent", 1)
				}
				continue
			}
			delivered = append(delivered, uid)
		}

		if s.metrics != nil {
			s.metrics.ObserveBatch(time.Since(start))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(delivered) == 0 {
		return nil
	}

	if err := s.c.Notifications.Push(ctx, notification, delivered); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "push notification")
	}

	if s.hook != nil {
		s.hook.Delivered(ctx, models.DeliveryEvent{
			NotificationID: notification.ID,
			PostID:         post.ID,
			TopicID:        post.TopicID,
			UserIDs:        delivered,
		})
	}
	if err := s.c.Sent.Add(ctx, post.ID, delivered, s.now()); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "record sent mentions")
	}

	if s.metrics != nil {
		s.metrics.NotificationsPushed.Inc()
		s.metrics.RecipientsNotified.Add(float64(len(delivered)))
	}
	s.logger.Info("mention notification delivered",
		"post_id", post.ID,
		"class", class,
		"recipients", len(delivered),
	)
	return nil
}
