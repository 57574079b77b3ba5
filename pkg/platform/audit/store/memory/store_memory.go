package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	id "govinda/pkg/domain"
	audit "govinda/pkg/platform/audit"
)

type outboxRow struct {
	entry       audit.OutboxEntry
	publishedAt *time.Time
}

// InMemoryStore keeps change events and their outbox rows in memory.
// It mirrors the postgres outbox for tests and single-process runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
	outbox []outboxRow
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.outbox = nil
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	eventID := uuid.New()
	payload, err := json.Marshal(audit.NewPayload(eventID, event))
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = eventID.String()
	event.Category = audit.AuditEvent(event.Action).Category()
	s.events = append(s.events, event)
	s.outbox = append(s.outbox, outboxRow{entry: audit.OutboxEntry{
		ID:            eventID,
		AggregateType: string(event.AggregateType),
		AggregateID:   event.AggregateID,
		EventType:     event.Action,
		Payload:       payload,
		CreatedAt:     event.Timestamp,
	}})
	return nil
}

// ListByAggregate returns the events of one aggregate in append order.
func (s *InMemoryStore) ListByAggregate(_ context.Context, tenantID id.TenantID, aggregateID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.TenantID == tenantID && e.AggregateID == aggregateID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListAll returns every event in append order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}

// ProcessPending hands up to limit unpublished entries to publish and marks
// the returned ids as delivered.
func (s *InMemoryStore) ProcessPending(ctx context.Context, limit int, publish audit.PublishFunc) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []audit.OutboxEntry
	for _, row := range s.outbox {
		if row.publishedAt == nil {
			pending = append(pending, row.entry)
			if len(pending) == limit {
				break
			}
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	published, err := publish(ctx, pending)
	now := time.Now().UTC()
	done := make(map[uuid.UUID]struct{}, len(published))
	for _, entryID := range published {
		done[entryID] = struct{}{}
	}
	for i := range s.outbox {
		if _, ok := done[s.outbox[i].entry.ID]; ok && s.outbox[i].publishedAt == nil {
			s.outbox[i].publishedAt = &now
		}
	}
	return len(published), err
}

func (s *InMemoryStore) CountPending(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, row := range s.outbox {
		if row.publishedAt == nil {
			n++
		}
	}
	return n, nil
}

// Snapshot captures the current contents; the returned func restores them.
// Used by the in-memory transaction runner to roll back.
func (s *InMemoryStore) Snapshot() func() {
	s.mu.RLock()
	events := append([]audit.Event{}, s.events...)
	outbox := append([]outboxRow{}, s.outbox...)
	s.mu.RUnlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.events = events
		s.outbox = outbox
	}
}
