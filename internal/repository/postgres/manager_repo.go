package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventgather/internal/domain"
)

type managerRepository struct {
	DB *sql.DB
}

// NewManagerRepository returns a ManagerRepository backed by postgres.
func NewManagerRepository(db *sql.DB) domain.ManagerRepository {
	return &managerRepository{DB: db}
}

const managerColumns = `id, local_name, email, email_verified, password_hash, salt,
		country, city, street, number, postal_code, local_type, photos,
		approved, decided_at, decided_by, created_at, updated_at`

func (r *managerRepository) Create(ctx context.Context, m *domain.Manager) error {
	query := `
		INSERT INTO managers (local_name, email, email_verified, country, city, street, number,
			postal_code, local_type, photos, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		m.LocalName, m.Email, m.EmailVerified,
		m.Address.Country, m.Address.City, m.Address.Street, m.Address.Number, m.Address.PostalCode,
		m.LocalType, pq.Array(m.Photos), m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *managerRepository) GetByID(ctx context.Context, id string) (*domain.Manager, error) {
	return r.getBy(ctx, "id", id)
}

func (r *managerRepository) GetByEmail(ctx context.Context, email string) (*domain.Manager, error) {
	return r.getBy(ctx, "email", email)
}

func (r *managerRepository) getBy(ctx context.Context, column, value string) (*domain.Manager, error) {
	query := `SELECT ` + managerColumns + ` FROM managers WHERE ` + column + ` = $1`
	row := r.DB.QueryRowContext(ctx, query, value)
	m, err := scanManager(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *managerRepository) ListPending(ctx context.Context) ([]*domain.Manager, error) {
	query := `SELECT ` + managerColumns + ` FROM managers WHERE approved IS NULL ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var managers []*domain.Manager
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			return nil, err
		}
		managers = append(managers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if managers == nil {
		managers = []*domain.Manager{}
	}
	return managers, nil
}

// RecordDecision writes the approval record once. The approved IS NULL guard
// makes a second decision a no-op so the first decision always wins.
func (r *managerRepository) RecordDecision(ctx context.Context, managerID string, rec domain.ApprovalRecord, passwordHash, salt string) (bool, error) {
	query := `
		UPDATE managers
		SET approved = $2, decided_at = $3, decided_by = $4,
			password_hash = COALESCE(NULLIF($5, ''), password_hash),
			salt = COALESCE(NULLIF($6, ''), salt),
			updated_at = NOW()
		WHERE id = $1 AND approved IS NULL
	`
	res, err := r.DB.ExecContext(ctx, query, managerID, rec.Approved, rec.DecidedAt, rec.DecidedBy, passwordHash, salt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanManager(row rowScanner) (*domain.Manager, error) {
	m := &domain.Manager{}
	var hash, salt, decidedBy sql.NullString
	var approved sql.NullBool
	var decidedAt sql.NullTime
	err := row.Scan(
		&m.ID, &m.LocalName, &m.Email, &m.EmailVerified, &hash, &salt,
		&m.Address.Country, &m.Address.City, &m.Address.Street, &m.Address.Number, &m.Address.PostalCode,
		&m.LocalType, pq.Array(&m.Photos),
		&approved, &decidedAt, &decidedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.PasswordHash = hash.String
	m.Salt = salt.String
	if approved.Valid {
		m.Approval = &domain.ApprovalRecord{
			Approved:  approved.Bool,
			DecidedAt: decidedAt.Time,
			DecidedBy: decidedBy.String,
		}
	}
	return m, nil
}
