package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "govinda/pkg/domain"
	audit "govinda/pkg/platform/audit"
	"govinda/pkg/platform/audit/store/memory"
	"govinda/pkg/platform/circuit"
)

type fakeProducer struct {
	mu        sync.Mutex
	fail      bool
	delivered []audit.OutboxEntry
	calls     int
}

func (p *fakeProducer) Publish(_ context.Context, entries []audit.OutboxEntry) ([]uuid.UUID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.fail {
		return nil, errors.New("broker unavailable")
	}
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		p.delivered = append(p.delivered, e)
		ids = append(ids, e.ID)
	}
	return ids, nil
}

func seedOutbox(t *testing.T, store *memory.InMemoryStore, n int) {
	t.Helper()
	tenantID := id.TenantID(uuid.New())
	for range n {
		require.NoError(t, store.Append(context.Background(), audit.Event{
			TenantID:      tenantID,
			AggregateType: audit.AggregatePerson,
			AggregateID:   uuid.NewString(),
			Action:        string(audit.EventPersonCreated),
			Timestamp:     time.Now().UTC(),
		}))
	}
}

func TestRelay_ProcessBatch(t *testing.T) {
	t.Run("delivers pending entries and marks them published", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		seedOutbox(t, store, 3)
		producer := &fakeProducer{}
		relay := New(store, producer)

		n, err := relay.ProcessBatch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Len(t, producer.delivered, 3)

		pending, err := store.CountPending(context.Background())
		require.NoError(t, err)
		assert.Zero(t, pending)

		n, err = relay.ProcessBatch(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("respects batch size", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		seedOutbox(t, store, 5)
		relay := New(store, &fakeProducer{}, WithBatchSize(2))

		n, err := relay.ProcessBatch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		pending, err := store.CountPending(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, pending)
	})

	t.Run("keeps entries pending when the producer fails", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		seedOutbox(t, store, 2)
		relay := New(store, &fakeProducer{fail: true})

		_, err := relay.ProcessBatch(context.Background())
		require.Error(t, err)

		pending, err := store.CountPending(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, pending)
	})
}

func TestRelay_CircuitBreaker(t *testing.T) {
	store := memory.NewInMemoryStore()
	seedOutbox(t, store, 1)
	producer := &fakeProducer{fail: true}
	breaker := circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))
	relay := New(store, producer, WithBreaker(breaker))

	for range 2 {
		_, err := relay.ProcessBatch(context.Background())
		require.Error(t, err)
	}
	assert.True(t, breaker.IsOpen())

	callsBefore := producer.calls
	_, err := relay.ProcessBatch(context.Background())
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, callsBefore, producer.calls, "open circuit must not call the producer")

	producer.fail = false
	var delivered int
	for range relay.probeEvery {
		n, err := relay.ProcessBatch(context.Background())
		if err == nil {
			delivered += n
		}
	}
	assert.Equal(t, 1, delivered, "probe batch goes through once the broker recovers")
	assert.False(t, breaker.IsOpen())
}

func TestRelay_RunStopsOnCancel(t *testing.T) {
	store := memory.NewInMemoryStore()
	seedOutbox(t, store, 1)
	producer := &fakeProducer{}
	relay := New(store, producer, WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	require.Eventually(t, func() bool {
		pending, _ := store.CountPending(context.Background())
		return pending == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
