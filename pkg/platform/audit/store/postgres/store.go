package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	audit "govinda/pkg/platform/audit"
	txcontext "govinda/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to the outbox table in the caller's transaction and
// published to Kafka by the outbox relay.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL outbox store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append writes a change event to the outbox table.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()
	payloadBytes, err := json.Marshal(audit.NewPayload(eventID, event))
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}

	query := `
		INSERT INTO outbox (id, tenant_id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.execer(ctx).ExecContext(ctx, query,
		eventID,
		uuid.UUID(event.TenantID),
		string(event.AggregateType),
		event.AggregateID,
		event.Action,
		payloadBytes,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// ProcessPending locks up to limit unpublished entries in creation order,
// hands them to publish and marks the ids publish returns as delivered, all
// in one transaction. Concurrent relays skip each other's rows.
func (s *Store) ProcessPending(ctx context.Context, limit int, publish audit.PublishFunc) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin outbox tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	entries, err := fetchPending(ctx, tx, limit)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	published, publishErr := publish(ctx, entries)
	if err := markPublished(ctx, tx, published, time.Now().UTC()); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit outbox tx: %w", err)
	}
	return len(published), publishErr
}

func fetchPending(ctx context.Context, tx *sql.Tx, limit int) ([]audit.OutboxEntry, error) {
	query := `
		SELECT id, aggregate_type, aggregate_id, event_type, payload, created_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at, id
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	rows, err := tx.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending outbox entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.OutboxEntry
	for rows.Next() {
		var e audit.OutboxEntry
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox entries: %w", err)
	}
	return entries, nil
}

func markPublished(ctx context.Context, tx *sql.Tx, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, len(ids))
	for i, entryID := range ids {
		raw[i] = entryID.String()
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE outbox SET published_at = $1 WHERE id = ANY($2::uuid[])`,
		at, pq.Array(raw),
	)
	if err != nil {
		return fmt.Errorf("mark outbox entries published: %w", err)
	}
	return nil
}

// CountPending reports the relay backlog.
func (s *Store) CountPending(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outbox WHERE published_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pending outbox entries: %w", err)
	}
	return n, nil
}

// DeletePublishedBefore prunes delivered entries older than cutoff.
func (s *Store) DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM outbox WHERE published_at IS NOT NULL AND published_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune outbox: %w", err)
	}
	return res.RowsAffected()
}
