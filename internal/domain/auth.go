package domain

import (
	"context"
	"time"
)

// TokenIssuer issues signed tokens (e.g. JWT) for an authenticated subject.
type TokenIssuer interface {
	Issue(subjectID string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the subject id and role it carries.
type TokenVerifier interface {
	Verify(token string) (subjectID string, role Role, err error)
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// AuthService defines signup and login for all three roles. Login resolves the
// email across the participant, manager, and supervisor directories.
type AuthService interface {
	SignUpParticipant(ctx context.Context, p *Participant, password, externalID string) (*Participant, error)
	Login(ctx context.Context, email, password string) (token string, role Role, err error)
}
