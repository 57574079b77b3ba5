package compliance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "govinda/pkg/domain"
	audit "govinda/pkg/platform/audit"
	"govinda/pkg/platform/audit/store/memory"
	txcontext "govinda/pkg/platform/tx"
	"govinda/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("disk full")
}

func personEvent(tenantID id.TenantID, personID string, action audit.AuditEvent) audit.Event {
	return audit.Event{
		TenantID:      tenantID,
		AggregateType: audit.AggregatePerson,
		AggregateID:   personID,
		Action:        string(action),
	}
}

func TestPublisher_Emit(t *testing.T) {
	tenantID := id.TenantID(uuid.New())
	personID := uuid.NewString()

	t.Run("persists event and derives category", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		pub := New(store)

		require.NoError(t, pub.Emit(context.Background(), personEvent(tenantID, personID, audit.EventPersonNameChanged)))

		events, err := store.ListByAggregate(context.Background(), tenantID, personID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.CategoryCompliance, events[0].Category)
		assert.NotEmpty(t, events[0].ID)

		pending, err := store.CountPending(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, pending)
	})

	t.Run("sets timestamp when missing", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		pub := New(store)

		before := time.Now().UTC()
		require.NoError(t, pub.Emit(context.Background(), personEvent(tenantID, personID, audit.EventPersonCreated)))
		after := time.Now().UTC()

		events, err := store.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.False(t, events[0].Timestamp.Before(before))
		assert.False(t, events[0].Timestamp.After(after))
	})

	t.Run("preserves existing timestamp", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		pub := New(store)

		at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		event := personEvent(tenantID, personID, audit.EventPersonCreated)
		event.Timestamp = at
		require.NoError(t, pub.Emit(context.Background(), event))

		events, err := store.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, at, events[0].Timestamp)
	})

	t.Run("stamps request id and request time from context", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		pub := New(store)
		at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(requestcontext.WithRequestID(context.Background(), "req-42"), at)

		require.NoError(t, pub.Emit(ctx, personEvent(tenantID, personID, audit.EventAddressAdded)))

		events, err := store.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "req-42", events[0].RequestID)
		assert.Equal(t, at, events[0].Timestamp)
	})

	t.Run("rejects incomplete events", func(t *testing.T) {
		pub := New(memory.NewInMemoryStore())

		err := pub.Emit(context.Background(), personEvent(id.TenantID(uuid.Nil), personID, audit.EventPersonCreated))
		assert.ErrorContains(t, err, "TenantID")

		err = pub.Emit(context.Background(), personEvent(tenantID, personID, ""))
		assert.ErrorContains(t, err, "Action")

		err = pub.Emit(context.Background(), personEvent(tenantID, "", audit.EventPersonCreated))
		assert.ErrorContains(t, err, "AggregateID")
	})

	t.Run("fails closed when the store fails", func(t *testing.T) {
		pub := New(failingStore{})
		err := pub.Emit(context.Background(), personEvent(tenantID, personID, audit.EventPersonCreated))
		require.Error(t, err)
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestPublisher_SnapshotRestoresOutbox(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := New(store)
	tenantID := id.TenantID(uuid.New())

	err := txcontext.NewMemoryRunner(pub).RunInTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, pub.Emit(ctx, personEvent(tenantID, uuid.NewString(), audit.EventPersonCreated)))
		return errors.New("person insert failed")
	})
	require.Error(t, err)

	pending, err := store.CountPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, pending)

	restore := New(failingStore{}).Snapshot()
	assert.NotPanics(t, restore)
}
