package domain

import (
	"context"
	"time"
)

// LocalType classifies the kind of venue a manager operates.
type LocalType string

const (
	LocalBar        LocalType = "bar"
	LocalRestaurant LocalType = "restaurant"
	LocalClub       LocalType = "club"
	LocalOther      LocalType = "other"
)

// ApprovalRecord is the supervisor's decision on a manager signup.
// swagger:model ApprovalRecord
type ApprovalRecord struct {
	Approved  bool      `json:"approved"`
	DecidedAt time.Time `json:"decided_at"`
	DecidedBy string    `json:"decided_by"`
}

// Manager represents a venue operator. Created unapproved; a supervisor's
// approval triggers credential generation and a mail dispatch.
// swagger:model Manager
type Manager struct {
	ID            string          `json:"id"`
	LocalName     string          `json:"local_name"`
	Email         string          `json:"email"`
	EmailVerified bool            `json:"email_verified"`
	PasswordHash  string          `json:"-"`
	Salt          string          `json:"-"`
	Address       Address         `json:"address"`
	LocalType     LocalType       `json:"local_type"`
	Photos        []string        `json:"photos"`
	Approval      *ApprovalRecord `json:"approval"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IsApproved reports whether the signup was decided and approved.
func (m *Manager) IsApproved() bool {
	return m.Approval != nil && m.Approval.Approved
}

// ManagerRepository defines storage for managers and their approval records.
type ManagerRepository interface {
	Create(ctx context.Context, m *Manager) error
	GetByID(ctx context.Context, id string) (*Manager, error)
	GetByEmail(ctx context.Context, email string) (*Manager, error)
	ListPending(ctx context.Context) ([]*Manager, error)
	// RecordDecision persists the approval record, and on approval the
	// generated credential. Returns false when a decision already exists.
	RecordDecision(ctx context.Context, managerID string, rec ApprovalRecord, passwordHash, salt string) (bool, error)
}

// ManagerService defines manager signup and the supervisor approval flow.
type ManagerService interface {
	SignUp(ctx context.Context, m *Manager) (*Manager, error)
	ListPending(ctx context.Context) ([]*Manager, error)
	// Decide records a supervisor's approval or denial. On approval a
	// temporary password is generated, stored hashed, and mailed to the
	// manager (fire-and-forget).
	Decide(ctx context.Context, managerID, supervisorID string, approve bool) (*Manager, error)
}
