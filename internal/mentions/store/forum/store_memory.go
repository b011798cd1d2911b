// Package forum provides the topic, post, privilege and notification stores
// the dispatch pipeline consults.
package forum

import (
	"context"
	"sync"

	"mentiond/internal/mentions/models"
)

// MemoryStore is an in-memory implementation of the Topics, Posts,
// Privileges and Notifications ports. Intended for tests and single-node
// development setups; production deployments use PostgresStore.
type MemoryStore struct {
	mu            sync.RWMutex
	topics        map[int64]models.Topic
	followers     map[int64][]models.UserID
	ignoring      map[int64]map[models.UserID]struct{}
	posts         map[int64]models.Post
	unreadable    map[int64]map[models.UserID]struct{}
	notifications map[string]models.Notification
	inbox         map[models.UserID][]string
}

// NewMemoryStore creates an empty in-memory forum store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		topics:        make(map[int64]models.Topic),
		followers:     make(map[int64][]models.UserID),
		ignoring:      make(map[int64]map[models.UserID]struct{}),
		posts:         make(map[int64]models.Post),
		unreadable:    make(map[int64]map[models.UserID]struct{}),
		notifications: make(map[string]models.Notification),
		inbox:         make(map[models.UserID][]string),
	}
}

// AddTopic registers a topic.
func (s *MemoryStore) AddTopic(t models.Topic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[t.ID] = t
}

// AddPost registers a post.
func (s *MemoryStore) AddPost(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = p
}

// Follow marks uid as following the topic.
func (s *MemoryStore) Follow(topicID int64, uid models.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followers[topicID] = append(s.followers[topicID], uid)
}

// Ignore marks uid as ignoring the topic.
func (s *MemoryStore) Ignore(topicID int64, uid models.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ignoring[topicID] == nil {
		s.ignoring[topicID] = make(map[models.UserID]struct{})
	}
	s.ignoring[topicID][uid] = struct{}{}
}

// RevokeRead removes uid's read privilege over a category.
func (s *MemoryStore) RevokeRead(categoryID int64, uid models.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unreadable[categoryID] == nil {
		s.unreadable[categoryID] = make(map[models.UserID]struct{})
	}
	s.unreadable[categoryID][uid] = struct{}{}
}

// Inbox returns the notification ids pushed to uid, in delivery order.
func (s *MemoryStore) Inbox(uid models.UserID) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.inbox[uid]...)
}

func (s *MemoryStore) ByID(ctx context.Context, topicID int64) (*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.topics[topicID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *MemoryStore) Followers(ctx context.Context, topicID int64) ([]models.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.UserID(nil), s.followers[topicID]...), nil
}

func (s *MemoryStore) FilterIgnoring(ctx context.Context, topicID int64, uids []models.UserID) ([]models.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ignoring := s.ignoring[topicID]
	out := make([]models.UserID, 0, len(uids))
	for _, uid := range uids {
		if _, ok := ignoring[uid]; !ok {
			out = append(out, uid)
		}
	}
	return out, nil
}

func (s *MemoryStore) ReplyTarget(ctx context.Context, postID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts[postID].ReplyTo, nil
}

func (s *MemoryStore) AuthorID(ctx context.Context, postID int64) (models.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts[postID].AuthorID, nil
}

func (s *MemoryStore) FilterReadable(ctx context.Context, topicID int64, uids []models.UserID) ([]models.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	unreadable := s.unreadable[s.topics[topicID].CategoryID]
	out := make([]models.UserID, 0, len(uids))
	for _, uid := range uids {
		if _, ok := unreadable[uid]; !ok {
			out = append(out, uid)
		}
	}
	return out, nil
}

// Create stores the notification record, keyed by its composite id. Repeat
// creates for the same id overwrite in place, keeping create idempotent.
func (s *MemoryStore) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if n == nil || n.ID == "" {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.ID] = *n
	stored := s.notifications[n.ID]
	return &stored, nil
}

func (s *MemoryStore) Push(ctx context.Context, n *models.Notification, uids []models.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, uid := range uids {
		s.inbox[uid] = append(s.inbox[uid], n.ID)
	}
	return nil
}
