package circuit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome int

const (
	fail outcome = iota
	succeed
)

func TestBreakerTransitions(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		outcomes  []outcome
		wantState State
		// wantChange is the transition reported by the last outcome.
		wantChange StateChange
	}{
		{
			name:      "new breaker is closed",
			wantState: StateClosed,
		},
		{
			name:      "stays closed below the failure threshold",
			opts:      []Option{WithFailureThreshold(3)},
			outcomes:  []outcome{fail, fail},
			wantState: StateClosed,
		},
		{
			name:       "opens on the threshold failure",
			opts:       []Option{WithFailureThreshold(3)},
			outcomes:   []outcome{fail, fail, fail},
			wantState:  StateOpen,
			wantChange: StateChange{Opened: true},
		},
		{
			name:      "a success resets the failure streak",
			opts:      []Option{WithFailureThreshold(2)},
			outcomes:  []outcome{fail, succeed, fail},
			wantState: StateClosed,
		},
		{
			name:      "needs consecutive successes to close",
			opts:      []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			outcomes:  []outcome{fail, succeed},
			wantState: StateOpen,
		},
		{
			name:       "closes after the success threshold",
			opts:       []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			outcomes:   []outcome{fail, succeed, succeed},
			wantState:  StateClosed,
			wantChange: StateChange{Closed: true},
		},
		{
			name:      "a failure while open restarts the success count",
			opts:      []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			outcomes:  []outcome{fail, succeed, fail, succeed},
			wantState: StateOpen,
		},
		{
			name:      "non-positive thresholds keep the defaults",
			opts:      []Option{WithFailureThreshold(0), WithSuccessThreshold(-1)},
			outcomes:  []outcome{fail, fail, fail, fail},
			wantState: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("outbox-relay", tt.opts...)
			var change StateChange
			for _, o := range tt.outcomes {
				if o == fail {
					_, change = b.RecordFailure()
				} else {
					_, change = b.RecordSuccess()
				}
			}
			assert.Equal(t, tt.wantState, b.State())
			assert.Equal(t, tt.wantState == StateOpen, b.IsOpen())
			assert.Equal(t, tt.wantChange, change)
		})
	}
}

func TestBreakerFallbackSignals(t *testing.T) {
	b := New("outbox-relay", WithFailureThreshold(1), WithSuccessThreshold(1))

	useFallback, _ := b.RecordFailure()
	assert.True(t, useFallback, "the opening failure already signals fallback")

	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.Equal(t, StateChange{}, change, "repeated failures while open report no transition")

	usePrimary, _ := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.Equal(t, "closed", b.State().String())
}

func TestBreakerReset(t *testing.T) {
	b := New("outbox-relay", WithFailureThreshold(1))
	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.Reset()
	assert.False(t, b.IsOpen())
	assert.Equal(t, "outbox-relay", b.Name())
}

func TestBreakerConcurrentUse(t *testing.T) {
	b := New("outbox-relay", WithFailureThreshold(1000))
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				b.RecordFailure()
			}
		}()
	}
	wg.Wait()
	assert.False(t, b.IsOpen(), "500 failures stay below a threshold of 1000")
}
