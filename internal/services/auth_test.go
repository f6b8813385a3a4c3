package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventgather/internal/domain"
)

// fakeHasher is a deterministic PasswordHasher for tests.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return "hash:" + salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != "hash:"+salt+":"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

// fakeIssuer encodes subject and role into the token string for inspection.
type fakeIssuer struct{}

func (fakeIssuer) Issue(subjectID string, role domain.Role, _ time.Duration) (string, error) {
	return "token:" + subjectID + ":" + string(role), nil
}

// fakeManagerRepo is an in-memory ManagerRepository for tests.
type fakeManagerRepo struct {
	byID   map[string]*domain.Manager
	nextID int
}

func newFakeManagerRepo(managers ...*domain.Manager) *fakeManagerRepo {
	f := &fakeManagerRepo{byID: make(map[string]*domain.Manager), nextID: 1}
	for _, m := range managers {
		f.byID[m.ID] = m
	}
	return f
}

func (f *fakeManagerRepo) Create(ctx context.Context, m *domain.Manager) error {
	for _, existing := range f.byID {
		if existing.Email == m.Email {
			return domain.ErrDuplicateEmail
		}
	}
	m.ID = fmt.Sprintf("m-%d", f.nextID)
	f.nextID++
	f.byID[m.ID] = m
	return nil
}

func (f *fakeManagerRepo) GetByID(ctx context.Context, id string) (*domain.Manager, error) {
	if m, ok := f.byID[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeManagerRepo) GetByEmail(ctx context.Context, email string) (*domain.Manager, error) {
	for _, m := range f.byID {
		if m.Email == email {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeManagerRepo) ListPending(ctx context.Context) ([]*domain.Manager, error) {
	out := []*domain.Manager{}
	for _, m := range f.byID {
		if m.Approval == nil {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeManagerRepo) RecordDecision(ctx context.Context, managerID string, rec domain.ApprovalRecord, passwordHash, salt string) (bool, error) {
	m, ok := f.byID[managerID]
	if !ok || m.Approval != nil {
		return false, nil
	}
	m.Approval = &rec
	if passwordHash != "" {
		m.PasswordHash = passwordHash
		m.Salt = salt
	}
	return true, nil
}

// fakeSupervisorRepo is an in-memory SupervisorRepository for tests.
type fakeSupervisorRepo struct {
	byID map[string]*domain.Supervisor
}

func newFakeSupervisorRepo(supervisors ...*domain.Supervisor) *fakeSupervisorRepo {
	f := &fakeSupervisorRepo{byID: make(map[string]*domain.Supervisor)}
	for _, s := range supervisors {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeSupervisorRepo) GetByID(ctx context.Context, id string) (*domain.Supervisor, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSupervisorRepo) GetByEmail(ctx context.Context, email string) (*domain.Supervisor, error) {
	for _, s := range f.byID {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func newTestAuthService(participants *fakeParticipantRepo, managers *fakeManagerRepo, supervisors *fakeSupervisorRepo) domain.AuthService {
	return NewAuthService(participants, managers, supervisors, fakeHasher{}, fakeIssuer{}, &fakeEmailService{}, 24*time.Hour)
}

func TestAuthService_SignUpParticipant(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		password   string
		externalID string
		wantErr    bool
	}{
		{
			name:     "local credential",
			username: "mario",
			email:    "mario@example.com",
			password: "hunter2hunter2",
		},
		{
			name:       "external credential",
			username:   "luigi",
			email:      "luigi@example.com",
			externalID: "google-123",
		},
		{
			name:     "username looking like an email is rejected",
			username: "mario@example.com",
			email:    "mario@example.com",
			password: "hunter2hunter2",
			wantErr:  true,
		},
		{
			name:       "both identity paths rejected",
			username:   "mario",
			email:      "mario@example.com",
			password:   "hunter2hunter2",
			externalID: "google-123",
			wantErr:    true,
		},
		{
			name:     "neither identity path rejected",
			username: "mario",
			email:    "mario@example.com",
			wantErr:  true,
		},
		{
			name:     "short password rejected",
			username: "mario",
			email:    "mario@example.com",
			password: "short",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(newFakeParticipantRepo(), newFakeManagerRepo(), newFakeSupervisorRepo())
			p := &domain.Participant{Name: "Mario", Surname: "Rossi", Username: tt.username, Email: tt.email}
			created, err := svc.SignUpParticipant(context.Background(), p, tt.password, tt.externalID)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, created.ID)
			if tt.password != "" {
				assert.Equal(t, domain.CredentialLocal, created.Credential.Kind)
				assert.NotEmpty(t, created.Credential.PasswordHash)
				assert.Empty(t, created.Credential.ExternalID)
			} else {
				assert.Equal(t, domain.CredentialExternal, created.Credential.Kind)
				assert.Empty(t, created.Credential.PasswordHash)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	alice := participant("u-1", "alice", "alice@example.com")
	alice.Credential = domain.Credential{Kind: domain.CredentialLocal, PasswordHash: "hash:salt:pw-alice", Salt: "salt"}
	external := participant("u-2", "bob", "bob@example.com")
	external.Credential = domain.Credential{Kind: domain.CredentialExternal, ExternalID: "google-1"}

	approved := &domain.Manager{
		ID: "m-1", Email: "venue@example.com", PasswordHash: "hash:salt:pw-venue", Salt: "salt",
		Approval: &domain.ApprovalRecord{Approved: true, DecidedAt: time.Now(), DecidedBy: "s-1"},
	}
	pending := &domain.Manager{ID: "m-2", Email: "pending@example.com"}
	boss := &domain.Supervisor{ID: "s-1", Email: "boss@example.com", PasswordHash: "hash:salt:pw-boss", Salt: "salt"}

	svc := newTestAuthService(
		newFakeParticipantRepo(alice, external),
		newFakeManagerRepo(approved, pending),
		newFakeSupervisorRepo(boss),
	)

	tests := []struct {
		name      string
		email     string
		password  string
		wantToken string
		wantRole  domain.Role
		wantErr   error
	}{
		{
			name: "participant", email: "alice@example.com", password: "pw-alice",
			wantToken: "token:u-1:participant", wantRole: domain.RoleParticipant,
		},
		{
			name: "approved manager", email: "venue@example.com", password: "pw-venue",
			wantToken: "token:m-1:manager", wantRole: domain.RoleManager,
		},
		{
			name: "supervisor", email: "boss@example.com", password: "pw-boss",
			wantToken: "token:s-1:supervisor", wantRole: domain.RoleSupervisor,
		},
		{
			name: "wrong password", email: "alice@example.com", password: "nope",
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "external-identity participant has no password login", email: "bob@example.com", password: "anything",
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "unapproved manager cannot log in", email: "pending@example.com", password: "anything",
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "unknown email", email: "ghost@example.com", password: "anything",
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, role, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantRole, role)
		})
	}
}
