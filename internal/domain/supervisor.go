package domain

import (
	"context"
	"time"
)

// Supervisor is an administrative account that approves or denies manager signups.
// swagger:model Supervisor
type Supervisor struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SupervisorRepository defines storage for supervisor accounts. Supervisors
// are provisioned out of band; there is no signup path.
type SupervisorRepository interface {
	GetByID(ctx context.Context, id string) (*Supervisor, error)
	GetByEmail(ctx context.Context, email string) (*Supervisor, error)
}
