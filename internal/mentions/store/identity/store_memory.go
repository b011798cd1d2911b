// Package identity provides user and group identity stores backing the
// mention pipeline's lookups.
package identity

import (
	"context"
	"sort"
	"strings"
	"sync"

	"mentiond/internal/mentions/models"
)

type memoryGroup struct {
	name    string
	slug    string
	hidden  bool
	members []models.UserID
}

// MemoryStore is an in-memory implementation of the Users and Groups ports.
// Intended for tests and single-node development setups; production
// deployments use PostgresStore.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[models.UserID]models.User
	slugIndex   map[string]models.UserID
	admins      map[models.UserID]struct{}
	moderators  map[int64]map[models.UserID]struct{}
	globalMods  map[models.UserID]struct{}
	groupBySlug map[string]*memoryGroup
}

// NewMemoryStore creates an empty in-memory identity store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[models.UserID]models.User),
		slugIndex:   make(map[string]models.UserID),
		admins:      make(map[models.UserID]struct{}),
		moderators:  make(map[int64]map[models.UserID]struct{}),
		globalMods:  make(map[models.UserID]struct{}),
		groupBySlug: make(map[string]*memoryGroup),
	}
}

// AddUser registers a user keyed by its userslug.
func (s *MemoryStore) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.slugIndex[u.Userslug] = u.ID
}

// MakeAdministrator grants global administrator privilege.
func (s *MemoryStore) MakeAdministrator(uid models.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[uid] = struct{}{}
}

// MakeModerator grants moderator privilege over a category.
func (s *MemoryStore) MakeModerator(uid models.UserID, categoryID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.moderators[categoryID] == nil {
		s.moderators[categoryID] = make(map[models.UserID]struct{})
	}
	s.moderators[categoryID][uid] = struct{}{}
}

// MakeGlobalModerator grants moderator privilege over every category.
func (s *MemoryStore) MakeGlobalModerator(uid models.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalMods[uid] = struct{}{}
}

// AddGroup registers a group keyed by its slug.
func (s *MemoryStore) AddGroup(name, slug string, hidden bool, members ...models.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupBySlug[slug] = &memoryGroup{
		name:    name,
		slug:    slug,
		hidden:  hidden,
		members: append([]models.UserID(nil), members...),
	}
}

func (s *MemoryStore) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.slugIndex[slug]
	return ok, nil
}

func (s *MemoryStore) IDBySlug(ctx context.Context, slug string) (models.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slugIndex[slug], nil
}

func (s *MemoryStore) ByID(ctx context.Context, uid models.UserID) (*models.User, error) {
	if uid.IsZero() {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[uid]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemoryStore) Search(ctx context.Context, query, searchBy string) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	var out []*models.User
	for _, u := range s.users {
		field := u.Username
		if searchBy == "fullname" {
			field = u.Fullname
		}
		if query == "" || strings.Contains(strings.ToLower(field), query) {
			copied := u
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) IsAdministrator(ctx context.Context, uid models.UserID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.admins[uid]
	return ok, nil
}

func (s *MemoryStore) IsModerator(ctx context.Context, uid models.UserID, categoryID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.globalMods[uid]; ok {
		return true, nil
	}
	mods := s.moderators[categoryID]
	if mods == nil {
		return false, nil
	}
	_, ok := mods[uid]
	return ok, nil
}

func (s *MemoryStore) groupLookup(slug string) *memoryGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupBySlug[slug]
}

// Groups returns a view of the store implementing the Groups port.
func (s *MemoryStore) Groups() *MemoryGroups {
	return &MemoryGroups{store: s}
}

// MemoryGroups adapts MemoryStore to the Groups port. Users and Groups share
// method names (ExistsBySlug), so the group side lives on its own type.
type MemoryGroups struct {
	store *MemoryStore
}

func (g *MemoryGroups) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return g.store.groupLookup(slug) != nil, nil
}

func (g *MemoryGroups) NameBySlug(ctx context.Context, slug string) (string, error) {
	grp := g.store.groupLookup(slug)
	if grp == nil {
		return "", nil
	}
	return grp.name, nil
}

func (g *MemoryGroups) Members(ctx context.Context, name string) ([]models.UserID, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	for _, grp := range g.store.groupBySlug {
		if grp.name == name {
			return append([]models.UserID(nil), grp.members...), nil
		}
	}
	return nil, nil
}

func (g *MemoryGroups) Visible(ctx context.Context) ([]string, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	var names []string
	for _, grp := range g.store.groupBySlug {
		if !grp.hidden {
			names = append(names, grp.name)
		}
	}
	sort.Strings(names)
	return names, nil
}
