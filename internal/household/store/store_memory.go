// Package store persists households and their memberships.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"govinda/internal/household/models"
	id "govinda/pkg/domain"
	"govinda/pkg/platform/paging"
	"govinda/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded household store with the same version
// semantics as the postgres store.
type InMemory struct {
	mu         sync.RWMutex
	households map[id.HouseholdID]*models.Household
}

func NewInMemory() *InMemory {
	return &InMemory{households: make(map[id.HouseholdID]*models.Household)}
}

func (s *InMemory) Create(_ context.Context, h *models.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.households[h.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.households[h.ID] = h.Clone()
	return nil
}

// Update replaces the stored household if its version equals h.Version and
// bumps h.Version. Returns sentinel.ErrConflict on a stale version.
func (s *InMemory) Update(_ context.Context, h *models.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.households[h.ID]
	if !ok || existing.TenantID != h.TenantID {
		return sentinel.ErrNotFound
	}
	if existing.Version != h.Version {
		return sentinel.ErrConflict
	}
	h.Version++
	s.households[h.ID] = h.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, tenantID id.TenantID, householdID id.HouseholdID) (*models.Household, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.households[householdID]
	if !ok || h.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	return h.Clone(), nil
}

// FindByPerson returns the household in which personID holds a membership
// current on today.
func (s *InMemory) FindByPerson(_ context.Context, tenantID id.TenantID, personID id.PersonID, today time.Time) (*models.Household, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.households {
		if h.TenantID == tenantID && h.MemberFor(personID, today) != nil {
			return h.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// List pages the tenant's households ordered by name.
func (s *InMemory) List(_ context.Context, tenantID id.TenantID, req paging.Request) (paging.Page[*models.Household], error) {
	s.mu.RLock()
	var matched []*models.Household
	for _, h := range s.households {
		if h.TenantID == tenantID {
			matched = append(matched, h.Clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := strings.ToLower(matched[i].Name), strings.ToLower(matched[j].Name)
		if a == b {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		if req.SortDesc {
			return a > b
		}
		return a < b
	})
	return paging.Slice(matched, req), nil
}

func (s *InMemory) Delete(_ context.Context, tenantID id.TenantID, householdID id.HouseholdID, version int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.households[householdID]
	if !ok || h.TenantID != tenantID {
		return sentinel.ErrNotFound
	}
	if h.Version != version {
		return sentinel.ErrConflict
	}
	delete(s.households, householdID)
	return nil
}

// Snapshot captures the store contents for transactional rollback.
func (s *InMemory) Snapshot() func() {
	s.mu.RLock()
	saved := make(map[id.HouseholdID]*models.Household, len(s.households))
	for k, v := range s.households {
		saved[k] = v.Clone()
	}
	s.mu.RUnlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.households = saved
	}
}
