package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"eventgather/internal/domain"
)

const minPasswordLen = 8

type authService struct {
	participants domain.ParticipantRepository
	managers     domain.ManagerRepository
	supervisors  domain.SupervisorRepository
	hasher       domain.PasswordHasher
	issuer       domain.TokenIssuer
	emailService domain.EmailService
	tokenExpiry  time.Duration
}

// NewAuthService creates the signup/login service. tokenExpiry is the issued
// token lifetime (configuration, not a constant).
func NewAuthService(
	participants domain.ParticipantRepository,
	managers domain.ManagerRepository,
	supervisors domain.SupervisorRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	emailService domain.EmailService,
	tokenExpiry time.Duration,
) domain.AuthService {
	return &authService{
		participants: participants,
		managers:     managers,
		supervisors:  supervisors,
		hasher:       hasher,
		issuer:       issuer,
		emailService: emailService,
		tokenExpiry:  tokenExpiry,
	}
}

// SignUpParticipant registers a participant with exactly one identity path:
// a password (local credential) or an external provider id.
func (s *authService) SignUpParticipant(ctx context.Context, p *domain.Participant, password, externalID string) (*domain.Participant, error) {
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.Username = strings.TrimSpace(p.Username)

	if !emailRegexp.MatchString(p.Email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if p.Username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if emailRegexp.MatchString(p.Username) {
		return nil, fmt.Errorf("%w: username must not be an email address", domain.ErrInvalidInput)
	}
	if (password == "") == (externalID == "") {
		return nil, fmt.Errorf("%w: provide either a password or an external identity, not both", domain.ErrInvalidInput)
	}

	var cred domain.Credential
	var err error
	if password != "" {
		if len(password) < minPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
		}
		salt, err := s.hasher.GenerateSalt()
		if err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		hash, err := s.hasher.Hash(salt, password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		cred, err = domain.NewLocalCredential(hash, salt)
		if err != nil {
			return nil, err
		}
	} else {
		cred, err = domain.NewExternalCredential(externalID)
		if err != nil {
			return nil, err
		}
	}
	p.Credential = cred

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.participants.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}

	go func(email, name string) {
		data := &domain.WelcomeEmailData{Email: email, Name: name}
		if err := s.emailService.SendWelcome(context.Background(), data); err != nil {
			log.Printf("[EMAIL] welcome to %s failed: %v", email, err)
		}
	}(p.Email, p.Name)

	return p, nil
}

// Login resolves the email across the three directories in order and issues a
// token carrying the matched role. Unapproved managers cannot log in.
func (s *authService) Login(ctx context.Context, email, password string) (string, domain.Role, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if p, err := s.participants.GetByEmail(ctx, email); err == nil {
		if p.Credential.Kind != domain.CredentialLocal {
			return "", "", domain.ErrInvalidCredentials
		}
		if err := s.hasher.Compare(p.Credential.PasswordHash, p.Credential.Salt, password); err != nil {
			return "", "", domain.ErrInvalidCredentials
		}
		return s.issue(p.ID, domain.RoleParticipant)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", "", fmt.Errorf("lookup participant: %w", err)
	}

	if m, err := s.managers.GetByEmail(ctx, email); err == nil {
		if !m.IsApproved() || m.PasswordHash == "" {
			return "", "", domain.ErrInvalidCredentials
		}
		if err := s.hasher.Compare(m.PasswordHash, m.Salt, password); err != nil {
			return "", "", domain.ErrInvalidCredentials
		}
		return s.issue(m.ID, domain.RoleManager)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", "", fmt.Errorf("lookup manager: %w", err)
	}

	if sup, err := s.supervisors.GetByEmail(ctx, email); err == nil {
		if err := s.hasher.Compare(sup.PasswordHash, sup.Salt, password); err != nil {
			return "", "", domain.ErrInvalidCredentials
		}
		return s.issue(sup.ID, domain.RoleSupervisor)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", "", fmt.Errorf("lookup supervisor: %w", err)
	}

	return "", "", domain.ErrInvalidCredentials
}

func (s *authService) issue(subjectID string, role domain.Role) (string, domain.Role, error) {
	token, err := s.issuer.Issue(subjectID, role, s.tokenExpiry)
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}
	return token, role, nil
}
