package person

import (
	"context"
	"sort"
	"sync"

	"govinda/internal/person/models"
	id "govinda/pkg/domain"
	"govinda/pkg/platform/paging"
	"govinda/pkg/platform/sentinel"
)

// InMemory is a thread-safe person store for tests and local runs. It keeps
// the same uniqueness and version rules as the PostgreSQL store.
type InMemory struct {
	mu      sync.RWMutex
	persons map[id.PersonID]*models.Person
	history map[id.PersonID][]*models.PersonHistoryEntry
}

func NewInMemory() *InMemory {
	return &InMemory{
		persons: make(map[id.PersonID]*models.Person),
		history: make(map[id.PersonID][]*models.PersonHistoryEntry),
	}
}

// Create stores a new person. Returns sentinel.ErrAlreadyUsed when the tenant
// already has a person with the same AHV number.
func (s *InMemory) Create(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.persons[p.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	for _, existing := range s.persons {
		if existing.TenantID == p.TenantID && existing.AhvNumber == p.AhvNumber {
			return sentinel.ErrAlreadyUsed
		}
	}
	s.persons[p.ID] = p.Clone()
	return nil
}

// Update replaces the stored person if its version still equals p.Version and
// bumps p.Version on success. Returns sentinel.ErrConflict on a stale version.
func (s *InMemory) Update(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.persons[p.ID]
	if !ok || existing.TenantID != p.TenantID {
		return sentinel.ErrNotFound
	}
	if existing.Version != p.Version {
		return sentinel.ErrConflict
	}
	p.Version++
	s.persons[p.ID] = p.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, tenantID id.TenantID, personID id.PersonID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.persons[personID]
	if !ok || p.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *InMemory) FindByAhv(_ context.Context, tenantID id.TenantID, ahv id.AhvNumber) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.persons {
		if p.TenantID == tenantID && p.AhvNumber == ahv {
			return p.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ExistsByAhv(_ context.Context, tenantID id.TenantID, ahv id.AhvNumber) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.persons {
		if p.TenantID == tenantID && p.AhvNumber == ahv {
			return true, nil
		}
	}
	return false, nil
}

// TenantOf returns the owning tenant of a person regardless of the caller's tenant.
func (s *InMemory) TenantOf(_ context.Context, personID id.PersonID) (id.TenantID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.persons[personID]
	if !ok {
		return id.TenantID{}, sentinel.ErrNotFound
	}
	return p.TenantID, nil
}

func (s *InMemory) List(ctx context.Context, tenantID id.TenantID, req paging.Request) (paging.Page[*models.Person], error) {
	return s.Search(ctx, tenantID, models.SearchCriteria{}, req)
}

func (s *InMemory) Search(_ context.Context, tenantID id.TenantID, criteria models.SearchCriteria, req paging.Request) (paging.Page[*models.Person], error) {
	s.mu.RLock()
	var matched []*models.Person
	for _, p := range s.persons {
		if p.TenantID == tenantID && criteria.Matches(p) {
			matched = append(matched, p.Clone())
		}
	}
	s.mu.RUnlock()

	sortPersons(matched, req)
	return paging.Slice(matched, req), nil
}

func (s *InMemory) AppendHistory(_ context.Context, entry *models.PersonHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.persons[entry.PersonID]
	if !ok || p.TenantID != entry.TenantID {
		return sentinel.ErrNotFound
	}
	s.history[entry.PersonID] = append(s.history[entry.PersonID], entry.Clone())
	return nil
}

// ListHistory returns the entries of a person, newest ValidFrom first.
func (s *InMemory) ListHistory(_ context.Context, tenantID id.TenantID, personID id.PersonID) ([]*models.PersonHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.PersonHistoryEntry, 0, len(s.history[personID]))
	for _, h := range s.history[personID] {
		if h.TenantID == tenantID {
			out = append(out, h.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ValidFrom.Equal(out[j].ValidFrom) {
			return out[i].RecordedAt.After(out[j].RecordedAt)
		}
		return out[i].ValidFrom.After(out[j].ValidFrom)
	})
	return out, nil
}

// Snapshot captures the store contents for transactional rollback.
func (s *InMemory) Snapshot() func() {
	s.mu.RLock()
	persons := make(map[id.PersonID]*models.Person, len(s.persons))
	for k, v := range s.persons {
		persons[k] = v.Clone()
	}
	history := make(map[id.PersonID][]*models.PersonHistoryEntry, len(s.history))
	for k, v := range s.history {
		history[k] = append([]*models.PersonHistoryEntry{}, v...)
	}
	s.mu.RUnlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.persons = persons
		s.history = history
	}
}
