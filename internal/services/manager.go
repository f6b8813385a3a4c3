package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"eventgather/internal/domain"
)

type managerService struct {
	managers     domain.ManagerRepository
	hasher       domain.PasswordHasher
	emailService domain.EmailService
}

// NewManagerService creates the manager signup and approval service.
func NewManagerService(
	managers domain.ManagerRepository,
	hasher domain.PasswordHasher,
	emailService domain.EmailService,
) domain.ManagerService {
	return &managerService{
		managers:     managers,
		hasher:       hasher,
		emailService: emailService,
	}
}

func (s *managerService) SignUp(ctx context.Context, m *domain.Manager) (*domain.Manager, error) {
	m.Email = strings.TrimSpace(strings.ToLower(m.Email))
	if !emailRegexp.MatchString(m.Email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(m.LocalName) == "" {
		return nil, fmt.Errorf("%w: local name is required", domain.ErrInvalidInput)
	}
	switch m.LocalType {
	case domain.LocalBar, domain.LocalRestaurant, domain.LocalClub, domain.LocalOther:
	default:
		return nil, fmt.Errorf("%w: unknown local type %q", domain.ErrInvalidInput, m.LocalType)
	}

	// Signups start undecided; credentials are only generated on approval.
	m.Approval = nil
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.managers.Create(ctx, m); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create manager: %w", err)
	}
	return m, nil
}

func (s *managerService) ListPending(ctx context.Context) ([]*domain.Manager, error) {
	managers, err := s.managers.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending managers: %w", err)
	}
	return managers, nil
}

// Decide records the supervisor's decision. On approval a temporary password
// is generated and mailed; the conditional update in the repository makes the
// first decision win if two supervisors race.
func (s *managerService) Decide(ctx context.Context, managerID, supervisorID string, approve bool) (*domain.Manager, error) {
	m, err := s.managers.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get manager: %w", err)
	}
	if m.Approval != nil {
		return nil, domain.ErrAlreadyDecided
	}

	rec := domain.ApprovalRecord{
		Approved:  approve,
		DecidedAt: time.Now(),
		DecidedBy: supervisorID,
	}

	var tempPassword, hash, salt string
	if approve {
		tempPassword, err = generateTempPassword()
		if err != nil {
			return nil, fmt.Errorf("generate temporary password: %w", err)
		}
		salt, err = s.hasher.GenerateSalt()
		if err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		hash, err = s.hasher.Hash(salt, tempPassword)
		if err != nil {
			return nil, fmt.Errorf("hash temporary password: %w", err)
		}
	}

	recorded, err := s.managers.RecordDecision(ctx, managerID, rec, hash, salt)
	if err != nil {
		return nil, fmt.Errorf("record decision: %w", err)
	}
	if !recorded {
		return nil, domain.ErrAlreadyDecided
	}

	go func() {
		data := &domain.ManagerDecisionEmailData{
			Email:        m.Email,
			LocalName:    m.LocalName,
			Approved:     approve,
			TempPassword: tempPassword,
		}
		if err := s.emailService.SendManagerDecision(context.Background(), data); err != nil {
			log.Printf("[EMAIL] manager decision to %s failed: %v", m.Email, err)
		}
	}()

	m.Approval = &rec
	return m, nil
}

const tempPasswordLength = 12

var tempPasswordAlphabet = []rune("abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789")

func generateTempPassword() (string, error) {
	b := make([]rune, tempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := 0; i < tempPasswordLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(b), nil
}
