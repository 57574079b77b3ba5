package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"govinda/internal/household/models"
	id "govinda/pkg/domain"
	"govinda/pkg/platform/paging"
	"govinda/pkg/platform/sentinel"
	txcontext "govinda/pkg/platform/tx"
)

// PostgresStore persists households in the households and household_members tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, h *models.Household) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO households (id, tenant_id, name, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(h.ID), uuid.UUID(h.TenantID), h.Name, h.Version, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert household: %w", err)
	}
	return s.saveMembers(ctx, h)
}

// Update writes h if the stored version equals h.Version, bumps h.Version and
// upserts the memberships. Returns sentinel.ErrConflict on a stale version.
func (s *PostgresStore) Update(ctx context.Context, h *models.Household) error {
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE households
		SET name = $4, updated_at = $5, version = version + 1
		WHERE id = $1 AND tenant_id = $2 AND version = $3
	`, uuid.UUID(h.ID), uuid.UUID(h.TenantID), h.Version, h.Name, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update household: %w", err)
	}
	if err := s.checkAffected(ctx, res, h.TenantID, h.ID); err != nil {
		return err
	}
	h.Version++
	return s.saveMembers(ctx, h)
}

// checkAffected tells a missing household from a stale version when a
// version-checked statement touched no row.
func (s *PostgresStore) checkAffected(ctx context.Context, res sql.Result, tenantID id.TenantID, householdID id.HouseholdID) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("household rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}
	var exists bool
	err = s.execer(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM households WHERE id = $1 AND tenant_id = $2)`,
		uuid.UUID(householdID), uuid.UUID(tenantID),
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check household existence: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrConflict
}

func (s *PostgresStore) saveMembers(ctx context.Context, h *models.Household) error {
	query := `
		INSERT INTO household_members (id, household_id, person_id, role, valid_from, valid_to)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET valid_to = EXCLUDED.valid_to
	`
	for _, m := range h.Members {
		_, err := s.execer(ctx).ExecContext(ctx, query,
			uuid.UUID(m.ID), uuid.UUID(h.ID), uuid.UUID(m.PersonID), string(m.Role), m.ValidFrom, m.ValidTo)
		if err != nil {
			return fmt.Errorf("save household member %s: %w", m.ID, err)
		}
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID, householdID id.HouseholdID) (*models.Household, error) {
	h, err := scanHousehold(s.execer(ctx).QueryRowContext(ctx, `
		SELECT id, tenant_id, name, version, created_at, updated_at
		FROM households WHERE id = $1 AND tenant_id = $2
	`, uuid.UUID(householdID), uuid.UUID(tenantID)))
	if err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, []*models.Household{h}); err != nil {
		return nil, err
	}
	return h, nil
}

// FindByPerson returns the household in which personID holds a membership
// current on today.
func (s *PostgresStore) FindByPerson(ctx context.Context, tenantID id.TenantID, personID id.PersonID, today time.Time) (*models.Household, error) {
	h, err := scanHousehold(s.execer(ctx).QueryRowContext(ctx, `
		SELECT h.id, h.tenant_id, h.name, h.version, h.created_at, h.updated_at
		FROM households h
		JOIN household_members m ON m.household_id = h.id
		WHERE m.person_id = $1 AND h.tenant_id = $2
			AND (m.valid_to IS NULL OR m.valid_to >= $3)
		ORDER BY m.valid_from DESC
		LIMIT 1
	`, uuid.UUID(personID), uuid.UUID(tenantID), id.DateOf(today)))
	if err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, []*models.Household{h}); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *PostgresStore) List(ctx context.Context, tenantID id.TenantID, req paging.Request) (paging.Page[*models.Household], error) {
	req = req.Normalize()
	var total int
	if err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM households WHERE tenant_id = $1`, uuid.UUID(tenantID),
	).Scan(&total); err != nil {
		return paging.Page[*models.Household]{}, fmt.Errorf("count households: %w", err)
	}

	dir := "ASC"
	if req.SortDesc {
		dir = "DESC"
	}
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT id, tenant_id, name, version, created_at, updated_at
		FROM households WHERE tenant_id = $1
		ORDER BY lower(name) `+dir+`, id ASC
		LIMIT $2 OFFSET $3
	`, uuid.UUID(tenantID), req.Size, req.Offset())
	if err != nil {
		return paging.Page[*models.Household]{}, fmt.Errorf("query households: %w", err)
	}
	defer rows.Close()

	var households []*models.Household
	for rows.Next() {
		h, err := scanHousehold(rows)
		if err != nil {
			return paging.Page[*models.Household]{}, err
		}
		households = append(households, h)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[*models.Household]{}, fmt.Errorf("iterate households: %w", err)
	}
	if err := s.loadMembers(ctx, households); err != nil {
		return paging.Page[*models.Household]{}, err
	}
	return paging.NewPage(households, req, total), nil
}

// Delete removes the household and its memberships if the stored version
// equals version.
func (s *PostgresStore) Delete(ctx context.Context, tenantID id.TenantID, householdID id.HouseholdID, version int64) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`DELETE FROM households WHERE id = $1 AND tenant_id = $2 AND version = $3`,
		uuid.UUID(householdID), uuid.UUID(tenantID), version,
	)
	if err != nil {
		return fmt.Errorf("delete household: %w", err)
	}
	return s.checkAffected(ctx, res, tenantID, householdID)
}

func (s *PostgresStore) loadMembers(ctx context.Context, households []*models.Household) error {
	if len(households) == 0 {
		return nil
	}
	byID := make(map[id.HouseholdID]*models.Household, len(households))
	ids := make([]string, len(households))
	for i, h := range households {
		byID[h.ID] = h
		ids[i] = h.ID.String()
	}
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT id, household_id, person_id, role, valid_from, valid_to
		FROM household_members
		WHERE household_id = ANY($1::uuid[])
		ORDER BY valid_from, id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query household members: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			m                             models.HouseholdMember
			memberID, householdID, person uuid.UUID
			role                          string
		)
		if err := rows.Scan(&memberID, &householdID, &person, &role, &m.ValidFrom, &m.ValidTo); err != nil {
			return fmt.Errorf("scan household member: %w", err)
		}
		m.ID = id.HouseholdMemberID(memberID)
		m.HouseholdID = id.HouseholdID(householdID)
		m.PersonID = id.PersonID(person)
		m.Role = id.HouseholdRole(role)
		if h, ok := byID[m.HouseholdID]; ok {
			h.Members = append(h.Members, &m)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate household members: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHousehold(row rowScanner) (*models.Household, error) {
	var (
		h                   models.Household
		householdID, tenant uuid.UUID
	)
	if err := row.Scan(&householdID, &tenant, &h.Name, &h.Version, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan household: %w", err)
	}
	h.ID = id.HouseholdID(householdID)
	h.TenantID = id.TenantID(tenant)
	return &h, nil
}
