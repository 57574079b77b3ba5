package person

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"govinda/internal/person/models"
	id "govinda/pkg/domain"
	"govinda/pkg/platform/paging"
	"govinda/pkg/platform/sentinel"
	txcontext "govinda/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists persons, their addresses and history in PostgreSQL.
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

const personColumns = `id, tenant_id, ahv_nr, last_name, first_name, date_of_birth, gender,
	marital_status, nationality, preferred_language, status, version,
	created_at, updated_at, created_by, updated_by`

func (s *PostgresStore) Create(ctx context.Context, p *models.Person) error {
	query := `
		INSERT INTO persons (` + personColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(p.ID), uuid.UUID(p.TenantID), p.AhvNumber.String(),
		p.LastName, p.FirstName, p.DateOfBirth, string(p.Gender),
		nullMaritalStatus(p.MaritalStatus), p.Nationality, string(p.PreferredLanguage), string(p.Status),
		p.Version, p.CreatedAt, p.UpdatedAt, uuid.UUID(p.CreatedBy), uuid.UUID(p.UpdatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert person: %w", err)
	}
	return s.saveAddresses(ctx, p)
}

// Update writes p if the stored version equals p.Version and bumps p.Version.
// Addresses are upserted. Returns sentinel.ErrConflict on a stale version.
func (s *PostgresStore) Update(ctx context.Context, p *models.Person) error {
	query := `
		UPDATE persons
		SET last_name = $4, first_name = $5, marital_status = $6, nationality = $7,
			preferred_language = $8, status = $9, updated_at = $10, updated_by = $11,
			version = version + 1
		WHERE id = $1 AND tenant_id = $2 AND version = $3
	`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(p.ID), uuid.UUID(p.TenantID), p.Version,
		p.LastName, p.FirstName, nullMaritalStatus(p.MaritalStatus), p.Nationality,
		string(p.PreferredLanguage), string(p.Status), p.UpdatedAt, uuid.UUID(p.UpdatedBy),
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update person rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		err := s.execer(ctx).QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM persons WHERE id = $1 AND tenant_id = $2)`,
			uuid.UUID(p.ID), uuid.UUID(p.TenantID),
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check person existence: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	p.Version++
	return s.saveAddresses(ctx, p)
}

func (s *PostgresStore) saveAddresses(ctx context.Context, p *models.Person) error {
	query := `
		INSERT INTO person_addresses (id, person_id, tenant_id, address_type, street, house_number,
			additional_line, postal_code, city, canton, country, premium_region_id,
			valid_from, valid_to, recorded_at, superseded_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE
		SET valid_to = EXCLUDED.valid_to, superseded_at = EXCLUDED.superseded_at
	`
	for _, a := range p.Addresses {
		_, err := s.execer(ctx).ExecContext(ctx, query,
			uuid.UUID(a.ID), uuid.UUID(a.PersonID), uuid.UUID(p.TenantID), string(a.Type),
			a.Street, a.HouseNumber, a.AdditionalLine, a.PostalCode, a.City, string(a.Canton),
			a.Country, a.PremiumRegionID, a.ValidFrom, a.ValidTo, a.RecordedAt, a.SupersededAt,
			uuid.UUID(a.CreatedBy),
		)
		if err != nil {
			return fmt.Errorf("save address %s: %w", a.ID, err)
		}
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID, personID id.PersonID) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE id = $1 AND tenant_id = $2`
	p, err := scanPerson(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(personID), uuid.UUID(tenantID)))
	if err != nil {
		return nil, err
	}
	if err := s.loadAddresses(ctx, []*models.Person{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) FindByAhv(ctx context.Context, tenantID id.TenantID, ahv id.AhvNumber) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE tenant_id = $1 AND ahv_nr = $2`
	p, err := scanPerson(s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(tenantID), ahv.String()))
	if err != nil {
		return nil, err
	}
	if err := s.loadAddresses(ctx, []*models.Person{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) ExistsByAhv(ctx context.Context, tenantID id.TenantID, ahv id.AhvNumber) (bool, error) {
	var exists bool
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM persons WHERE tenant_id = $1 AND ahv_nr = $2)`,
		uuid.UUID(tenantID), ahv.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check ahv number: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) TenantOf(ctx context.Context, personID id.PersonID) (id.TenantID, error) {
	var tenantID uuid.UUID
	err := s.execer(ctx).QueryRowContext(ctx, `SELECT tenant_id FROM persons WHERE id = $1`, uuid.UUID(personID)).Scan(&tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return id.TenantID{}, sentinel.ErrNotFound
		}
		return id.TenantID{}, fmt.Errorf("find person tenant: %w", err)
	}
	return id.TenantID(tenantID), nil
}

func (s *PostgresStore) List(ctx context.Context, tenantID id.TenantID, req paging.Request) (paging.Page[*models.Person], error) {
	return s.Search(ctx, tenantID, models.SearchCriteria{}, req)
}

func (s *PostgresStore) Search(ctx context.Context, tenantID id.TenantID, criteria models.SearchCriteria, req paging.Request) (paging.Page[*models.Person], error) {
	req = req.Normalize()
	where, args := searchFilter(tenantID, criteria)

	var total int
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM persons WHERE `+where, args...).Scan(&total); err != nil {
		return paging.Page[*models.Person]{}, fmt.Errorf("count persons: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM persons WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		personColumns, where, orderBy(req), len(args)+1, len(args)+2)
	rows, err := s.execer(ctx).QueryContext(ctx, query, append(args, req.Size, req.Offset())...)
	if err != nil {
		return paging.Page[*models.Person]{}, fmt.Errorf("query persons: %w", err)
	}
	defer rows.Close()

	var persons []*models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return paging.Page[*models.Person]{}, err
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[*models.Person]{}, fmt.Errorf("iterate persons: %w", err)
	}
	if err := s.loadAddresses(ctx, persons); err != nil {
		return paging.Page[*models.Person]{}, err
	}
	return paging.NewPage(persons, req, total), nil
}

func searchFilter(tenantID id.TenantID, c models.SearchCriteria) (string, []any) {
	conds := []string{"tenant_id = $1"}
	args := []any{uuid.UUID(tenantID)}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}
	if c.LastName != "" {
		add("last_name ILIKE ?", "%"+escapeLike(c.LastName)+"%")
	}
	if c.FirstName != "" {
		add("first_name ILIKE ?", "%"+escapeLike(c.FirstName)+"%")
	}
	if c.AhvNumber != "" {
		add("ahv_nr LIKE ?", "%"+escapeLike(c.AhvNumber)+"%")
	}
	if c.DateOfBirth != nil {
		add("date_of_birth = ?", *c.DateOfBirth)
	}
	if c.PostalCode != "" {
		add(`EXISTS (SELECT 1 FROM person_addresses a
			WHERE a.person_id = persons.id AND a.valid_to IS NULL AND a.postal_code = ?)`, c.PostalCode)
	}
	return strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *PostgresStore) loadAddresses(ctx context.Context, persons []*models.Person) error {
	if len(persons) == 0 {
		return nil
	}
	byID := make(map[id.PersonID]*models.Person, len(persons))
	ids := make([]string, len(persons))
	for i, p := range persons {
		byID[p.ID] = p
		ids[i] = p.ID.String()
	}
	query := `
		SELECT id, person_id, address_type, street, house_number, additional_line, postal_code,
			city, canton, country, premium_region_id, valid_from, valid_to, recorded_at,
			superseded_at, created_by
		FROM person_addresses
		WHERE person_id = ANY($1::uuid[])
		ORDER BY valid_from, recorded_at
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query addresses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			a                          models.Address
			addressID, personID, actor uuid.UUID
			addressType, canton        string
		)
		if err := rows.Scan(&addressID, &personID, &addressType, &a.Street, &a.HouseNumber,
			&a.AdditionalLine, &a.PostalCode, &a.City, &canton, &a.Country, &a.PremiumRegionID,
			&a.ValidFrom, &a.ValidTo, &a.RecordedAt, &a.SupersededAt, &actor); err != nil {
			return fmt.Errorf("scan address: %w", err)
		}
		a.ID = id.AddressID(addressID)
		a.PersonID = id.PersonID(personID)
		a.Type = id.AddressType(addressType)
		a.Canton = id.Canton(canton)
		a.CreatedBy = id.UserID(actor)
		if p, ok := byID[a.PersonID]; ok {
			p.Addresses = append(p.Addresses, &a)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate addresses: %w", err)
	}
	return nil
}

func (s *PostgresStore) AppendHistory(ctx context.Context, h *models.PersonHistoryEntry) error {
	query := `
		INSERT INTO person_history (id, person_id, tenant_id, last_name, first_name, marital_status,
			valid_from, valid_to, recorded_at, superseded_at, mutation_type, mutation_reason, changed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(h.HistoryID), uuid.UUID(h.PersonID), uuid.UUID(h.TenantID),
		h.LastName, h.FirstName, nullMaritalStatus(h.MaritalStatus),
		h.ValidFrom, h.ValidTo, h.RecordedAt, h.SupersededAt,
		string(h.MutationType), h.MutationReason, uuid.UUID(h.ChangedBy),
	)
	if err != nil {
		return fmt.Errorf("insert person history: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListHistory(ctx context.Context, tenantID id.TenantID, personID id.PersonID) ([]*models.PersonHistoryEntry, error) {
	query := `
		SELECT id, person_id, tenant_id, last_name, first_name, marital_status, valid_from, valid_to,
			recorded_at, superseded_at, mutation_type, mutation_reason, changed_by
		FROM person_history
		WHERE person_id = $1 AND tenant_id = $2
		ORDER BY valid_from DESC, recorded_at DESC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(personID), uuid.UUID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("query person history: %w", err)
	}
	defer rows.Close()

	var entries []*models.PersonHistoryEntry
	for rows.Next() {
		var (
			h                               models.PersonHistoryEntry
			historyID, pID, tID, changedBy uuid.UUID
			maritalStatus                   sql.NullString
			mutationType                    string
		)
		if err := rows.Scan(&historyID, &pID, &tID, &h.LastName, &h.FirstName, &maritalStatus,
			&h.ValidFrom, &h.ValidTo, &h.RecordedAt, &h.SupersededAt, &mutationType,
			&h.MutationReason, &changedBy); err != nil {
			return nil, fmt.Errorf("scan person history: %w", err)
		}
		h.HistoryID = id.HistoryID(historyID)
		h.PersonID = id.PersonID(pID)
		h.TenantID = id.TenantID(tID)
		h.ChangedBy = id.UserID(changedBy)
		h.MutationType = id.MutationType(mutationType)
		h.MaritalStatus = toMaritalStatus(maritalStatus)
		entries = append(entries, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate person history: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*models.Person, error) {
	var (
		p                                   models.Person
		personID, tenantID, created, update uuid.UUID
		ahv, gender, language, status       string
		maritalStatus                       sql.NullString
		dob                                 time.Time
	)
	err := row.Scan(&personID, &tenantID, &ahv, &p.LastName, &p.FirstName, &dob, &gender,
		&maritalStatus, &p.Nationality, &language, &status, &p.Version,
		&p.CreatedAt, &p.UpdatedAt, &created, &update)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}
	p.ID = id.PersonID(personID)
	p.TenantID = id.TenantID(tenantID)
	p.AhvNumber = id.AhvNumber(ahv)
	p.DateOfBirth = id.DateOf(dob)
	p.Gender = id.Gender(gender)
	p.MaritalStatus = toMaritalStatus(maritalStatus)
	p.PreferredLanguage = id.Language(language)
	p.Status = id.PersonStatus(status)
	p.CreatedBy = id.UserID(created)
	p.UpdatedBy = id.UserID(update)
	return &p, nil
}

func nullMaritalStatus(s *id.MaritalStatus) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}

func toMaritalStatus(s sql.NullString) *id.MaritalStatus {
	if !s.Valid {
		return nil
	}
	m := id.MaritalStatus(s.String)
	return &m
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
