// Package sent persists the per-post record of user ids already notified,
// preventing duplicate mention notifications across dispatches.
package sent

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mentiond/internal/mentions/models"
)

// RedisStore keeps one sorted set per post under mentions:sent:<postId>.
// Members are user ids, scores are notification timestamps in unix
// milliseconds. The set is append-only; this store never deletes keys.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed sent store. This is the production
// implementation shared across instances.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sentKey(postID int64) string {
	return fmt.Sprintf("mentions:sent:%d", postID)
}

// Contains reports positionally which uids are already recorded for the post.
// Scores are delivery timestamps and therefore never zero, so a zero from
// ZMSCORE means the member is absent.
func (s *RedisStore) Contains(ctx context.Context, postID int64, uids []models.UserID) ([]bool, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	members := make([]string, len(uids))
	for i, uid := range uids {
		members[i] = uid.String()
	}

	scores, err := s.client.ZMScore(ctx, sentKey(postID), members...).Result()
	if err != nil {
		return nil, fmt.Errorf("check sent mentions: %w", err)
	}

	out := make([]bool, len(uids))
	for i := range scores {
		out[i] = scores[i] != 0
	}
	return out, nil
}

// Add records uids as notified for the post. Re-adding an existing member
// only refreshes its score, which keeps concurrent writers idempotent.
func (s *RedisStore) Add(ctx context.Context, postID int64, uids []models.UserID, at time.Time) error {
	if len(uids) == 0 {
		return nil
	}
	members := make([]redis.Z, len(uids))
	score := float64(at.UnixMilli())
	for i, uid := range uids {
		members[i] = redis.Z{Score: score, Member: uid.String()}
	}
	if err := s.client.ZAdd(ctx, sentKey(postID), members...).Err(); err != nil {
		return fmt.Errorf("record sent mentions: %w", err)
	}
	return nil
}
