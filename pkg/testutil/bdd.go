package testutil

import (
	"context"
	"testing"
	"time"

	"govinda/pkg/requestcontext"
)

// Scenario narrates a master-data story step by step. Each step runs as a
// subtest whose context carries the scenario day as request time, so services
// record history and change events on that day. A failed step ends the story.
type Scenario struct {
	t   *testing.T
	day time.Time
}

func NewScenario(t *testing.T, day time.Time) *Scenario {
	return &Scenario{t: t, day: day.UTC()}
}

// On moves the scenario clock; later steps record on day.
func (s *Scenario) On(day time.Time) *Scenario {
	s.day = day.UTC()
	return s
}

// Day is the current scenario day.
func (s *Scenario) Day() time.Time {
	return s.day
}

func (s *Scenario) Given(desc string, fn func(t *testing.T, ctx context.Context)) {
	s.t.Helper()
	s.step("Given", desc, fn)
}

func (s *Scenario) When(desc string, fn func(t *testing.T, ctx context.Context)) {
	s.t.Helper()
	s.step("When", desc, fn)
}

func (s *Scenario) Then(desc string, fn func(t *testing.T, ctx context.Context)) {
	s.t.Helper()
	s.step("Then", desc, fn)
}

func (s *Scenario) step(kind, desc string, fn func(t *testing.T, ctx context.Context)) {
	s.t.Helper()
	ctx := requestcontext.WithTime(context.Background(), s.day)
	name := kind + " " + desc + " on " + s.day.Format(time.DateOnly)
	if !s.t.Run(name, func(t *testing.T) { fn(t, ctx) }) {
		s.t.FailNow()
	}
}
