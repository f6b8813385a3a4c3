package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"eventgather/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

// NewParticipantRepository returns a ParticipantRepository backed by postgres.
func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{DB: db}
}

const participantColumns = `id, name, surname, username, email, email_verified, birth_date,
		credential_kind, password_hash, salt, external_id, created_at, updated_at`

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (name, surname, username, email, email_verified, birth_date,
			credential_kind, password_hash, salt, external_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11, $12)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.Name, p.Surname, p.Username, p.Email, p.EmailVerified, p.BirthDate,
		p.Credential.Kind, p.Credential.PasswordHash, p.Credential.Salt, p.Credential.ExternalID,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	return r.getBy(ctx, "id", id)
}

func (r *participantRepository) GetByUsername(ctx context.Context, username string) (*domain.Participant, error) {
	return r.getBy(ctx, "username", username)
}

func (r *participantRepository) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	return r.getBy(ctx, "email", email)
}

func (r *participantRepository) getBy(ctx context.Context, column, value string) (*domain.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE ` + column + ` = $1`
	p := &domain.Participant{}
	var hash, salt, externalID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, value).Scan(
		&p.ID, &p.Name, &p.Surname, &p.Username, &p.Email, &p.EmailVerified, &p.BirthDate,
		&p.Credential.Kind, &hash, &salt, &externalID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Credential.PasswordHash = hash.String
	p.Credential.Salt = salt.String
	p.Credential.ExternalID = externalID.String
	return p, nil
}

func (r *participantRepository) SetEmailVerified(ctx context.Context, id string, verified bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE participants SET email_verified = $2, updated_at = NOW() WHERE id = $1`, id, verified)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// mapUniqueViolation maps postgres unique violations onto the domain's
// duplicate-email/username sentinels so services keep error-kind fidelity.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if strings.Contains(pqErr.Constraint, "username") {
			return domain.ErrDuplicateUsername
		}
		return domain.ErrDuplicateEmail
	}
	return err
}
