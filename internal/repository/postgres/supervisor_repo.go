package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventgather/internal/domain"
)

type supervisorRepository struct {
	DB *sql.DB
}

// NewSupervisorRepository returns a SupervisorRepository backed by postgres.
func NewSupervisorRepository(db *sql.DB) domain.SupervisorRepository {
	return &supervisorRepository{DB: db}
}

func (r *supervisorRepository) GetByID(ctx context.Context, id string) (*domain.Supervisor, error) {
	return r.getBy(ctx, "id", id)
}

func (r *supervisorRepository) GetByEmail(ctx context.Context, email string) (*domain.Supervisor, error) {
	return r.getBy(ctx, "email", email)
}

func (r *supervisorRepository) getBy(ctx context.Context, column, value string) (*domain.Supervisor, error) {
	query := `SELECT id, email, password_hash, salt, created_at FROM supervisors WHERE ` + column + ` = $1`
	s := &domain.Supervisor{}
	err := r.DB.QueryRowContext(ctx, query, value).
		Scan(&s.ID, &s.Email, &s.PasswordHash, &s.Salt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
