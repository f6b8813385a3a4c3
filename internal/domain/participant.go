package domain

import (
	"context"
	"fmt"
	"time"
)

// CredentialKind discriminates the two mutually exclusive identity paths a
// participant can have.
type CredentialKind string

const (
	// CredentialLocal means the participant authenticates with a password.
	CredentialLocal CredentialKind = "local"
	// CredentialExternal means the participant authenticates through an
	// external identity provider and has no local password.
	CredentialExternal CredentialKind = "external"
)

// Credential is a tagged union: exactly one of the password pair or the
// external id is populated, according to Kind. Build values with
// NewLocalCredential or NewExternalCredential.
type Credential struct {
	Kind         CredentialKind `json:"kind"`
	PasswordHash string         `json:"-"`
	Salt         string         `json:"-"`
	ExternalID   string         `json:"-"`
}

// NewLocalCredential returns a password-based credential.
func NewLocalCredential(passwordHash, salt string) (Credential, error) {
	if passwordHash == "" || salt == "" {
		return Credential{}, fmt.Errorf("local credential requires hash and salt")
	}
	return Credential{Kind: CredentialLocal, PasswordHash: passwordHash, Salt: salt}, nil
}

// NewExternalCredential returns an external-identity credential.
func NewExternalCredential(externalID string) (Credential, error) {
	if externalID == "" {
		return Credential{}, fmt.Errorf("external credential requires a provider id")
	}
	return Credential{Kind: CredentialExternal, ExternalID: externalID}, nil
}

// Participant represents an end user who joins events and creates private events.
// swagger:model Participant
type Participant struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Surname       string     `json:"surname"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	EmailVerified bool       `json:"email_verified"`
	BirthDate     time.Time  `json:"birth_date"`
	Credential    Credential `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ParticipantRepository defines the participant directory: lookup by id,
// username, or email.
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id string) (*Participant, error)
	GetByUsername(ctx context.Context, username string) (*Participant, error)
	GetByEmail(ctx context.Context, email string) (*Participant, error)
	SetEmailVerified(ctx context.Context, id string, verified bool) error
}
