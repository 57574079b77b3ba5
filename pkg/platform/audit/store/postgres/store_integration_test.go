//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "govinda/pkg/domain"
	audit "govinda/pkg/platform/audit"
	txcontext "govinda/pkg/platform/tx"
	"govinda/pkg/testutil/containers"
)

type OutboxStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *Store
	ctx   context.Context
}

func TestOutboxStoreSuite(t *testing.T) {
	suite.Run(t, new(OutboxStoreSuite))
}

func (s *OutboxStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = New(s.pg.DB)
	s.ctx = context.Background()
}

func (s *OutboxStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx))
}

func (s *OutboxStoreSuite) event(action audit.AuditEvent) audit.Event {
	return audit.Event{
		Timestamp:     time.Now().UTC(),
		TenantID:      id.TenantID(uuid.New()),
		ActorID:       id.UserID(uuid.New()),
		AggregateType: audit.AggregatePerson,
		AggregateID:   uuid.NewString(),
		Action:        string(action),
		Version:       1,
	}
}

func (s *OutboxStoreSuite) TestAppendFollowsTransaction() {
	tx, err := s.pg.DB.BeginTx(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Append(txcontext.WithTx(s.ctx, tx), s.event(audit.EventPersonCreated)))
	s.Require().NoError(tx.Rollback())

	pending, err := s.store.CountPending(s.ctx)
	s.Require().NoError(err)
	s.Zero(pending)

	s.Require().NoError(s.store.Append(s.ctx, s.event(audit.EventPersonCreated)))
	pending, err = s.store.CountPending(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, pending)
}

func (s *OutboxStoreSuite) TestProcessPendingMarksOnlyDelivered() {
	for _, action := range []audit.AuditEvent{audit.EventPersonCreated, audit.EventPersonNameChanged, audit.EventAddressAdded} {
		s.Require().NoError(s.store.Append(s.ctx, s.event(action)))
	}

	failure := errors.New("broker down")
	var seen []string
	n, err := s.store.ProcessPending(s.ctx, 10, func(_ context.Context, entries []audit.OutboxEntry) ([]uuid.UUID, error) {
		for _, e := range entries {
			seen = append(seen, e.EventType)
		}
		return []uuid.UUID{entries[0].ID}, failure
	})
	s.ErrorIs(err, failure)
	s.Equal(1, n)
	s.Equal([]string{"person_created", "person_name_changed", "address_added"}, seen)

	pending, err := s.store.CountPending(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, pending)

	n, err = s.store.ProcessPending(s.ctx, 10, func(_ context.Context, entries []audit.OutboxEntry) ([]uuid.UUID, error) {
		s.Require().Len(entries, 2)
		s.Equal("person_name_changed", entries[0].EventType)
		return []uuid.UUID{entries[0].ID, entries[1].ID}, nil
	})
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *OutboxStoreSuite) TestPrunesDeliveredEntries() {
	s.Require().NoError(s.store.Append(s.ctx, s.event(audit.EventHouseholdCreated)))
	s.Require().NoError(s.store.Append(s.ctx, s.event(audit.EventHouseholdDeleted)))
	_, err := s.store.ProcessPending(s.ctx, 1, func(_ context.Context, entries []audit.OutboxEntry) ([]uuid.UUID, error) {
		return []uuid.UUID{entries[0].ID}, nil
	})
	s.Require().NoError(err)

	deleted, err := s.store.DeletePublishedBefore(s.ctx, time.Now().Add(time.Minute))
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)

	pending, err := s.store.CountPending(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, pending)
}
