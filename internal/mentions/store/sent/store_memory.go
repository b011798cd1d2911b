package sent

import (
	"context"
	"sync"
	"time"

	"mentiond/internal/mentions/models"
)

// MemoryStore is an in-memory sent store for tests and single-node setups.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[int64]map[models.UserID]int64
}

// NewMemoryStore creates an empty in-memory sent store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[int64]map[models.UserID]int64)}
}

func (s *MemoryStore) Contains(ctx context.Context, postID int64, uids []models.UserID) ([]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]bool, len(uids))
	recorded := s.posts[postID]
	if recorded == nil {
		return out, nil
	}
	for i, uid := range uids {
		_, out[i] = recorded[uid]
	}
	return out, nil
}

func (s *MemoryStore) Add(ctx context.Context, postID int64, uids []models.UserID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recorded := s.posts[postID]
	if recorded == nil {
		recorded = make(map[models.UserID]int64)
		s.posts[postID] = recorded
	}
	for _, uid := range uids {
		recorded[uid] = at.UnixMilli()
	}
	return nil
}
