package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventgather/internal/domain"
)

// fakePrivateEventRepo is an in-memory PrivateEventRepository for tests.
type fakePrivateEventRepo struct {
	byID     map[string]*domain.PrivateEvent
	invitees map[string]map[string]*domain.InviteEntry // eventID -> participantID -> entry
	nextID   int
}

func newFakePrivateEventRepo() *fakePrivateEventRepo {
	return &fakePrivateEventRepo{
		byID:     make(map[string]*domain.PrivateEvent),
		invitees: make(map[string]map[string]*domain.InviteEntry),
		nextID:   1,
	}
}

func (f *fakePrivateEventRepo) Create(ctx context.Context, e *domain.PrivateEvent) error {
	e.ID = fmt.Sprintf("pe-%d", f.nextID)
	e.Version = 1
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakePrivateEventRepo) GetByID(ctx context.Context, id string) (*domain.PrivateEvent, error) {
	if e, ok := f.byID[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePrivateEventRepo) Update(ctx context.Context, e *domain.PrivateEvent) error {
	stored, ok := f.byID[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != e.Version {
		return domain.ErrVersionConflict
	}
	copied := *e
	copied.Version++
	f.byID[e.ID] = &copied
	e.Version = copied.Version
	return nil
}

func (f *fakePrivateEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	delete(f.invitees, id)
	return nil
}

func (f *fakePrivateEventRepo) ListByCreatorID(ctx context.Context, creatorID string) ([]*domain.PrivateEvent, error) {
	out := []*domain.PrivateEvent{}
	for _, e := range f.byID {
		if e.CreatorID == creatorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePrivateEventRepo) ListByInviteeID(ctx context.Context, participantID string) ([]*domain.PrivateEvent, error) {
	out := []*domain.PrivateEvent{}
	for eventID, entries := range f.invitees {
		if _, ok := entries[participantID]; !ok {
			continue
		}
		e := f.byID[eventID]
		if e == nil || e.CreatorID == participantID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakePrivateEventRepo) AddInvitees(ctx context.Context, eventID string, participantIDs []string, invitedAt time.Time) error {
	entries, ok := f.invitees[eventID]
	if !ok {
		entries = make(map[string]*domain.InviteEntry)
		f.invitees[eventID] = entries
	}
	for _, pid := range participantIDs {
		if _, exists := entries[pid]; exists {
			continue
		}
		entries[pid] = &domain.InviteEntry{
			EventID:       eventID,
			ParticipantID: pid,
			Status:        domain.InvitePending,
			InvitedAt:     invitedAt,
		}
	}
	return nil
}

func (f *fakePrivateEventRepo) ListInvitees(ctx context.Context, eventID string) ([]*domain.InviteEntry, error) {
	out := []*domain.InviteEntry{}
	for _, entry := range f.invitees[eventID] {
		out = append(out, entry)
	}
	return out, nil
}

func (f *fakePrivateEventRepo) GetInvitee(ctx context.Context, eventID, participantID string) (*domain.InviteEntry, error) {
	if entry, ok := f.invitees[eventID][participantID]; ok {
		return entry, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePrivateEventRepo) UpdateInviteStatus(ctx context.Context, eventID, participantID string, status domain.InviteStatus, respondedAt time.Time) (bool, error) {
	entry, ok := f.invitees[eventID][participantID]
	if !ok || entry.Status != domain.InvitePending {
		return false, nil
	}
	entry.Status = status
	entry.RespondedAt = &respondedAt
	return true, nil
}

// fakeParticipantRepo is an in-memory ParticipantRepository for tests.
type fakeParticipantRepo struct {
	byID map[string]*domain.Participant
}

func newFakeParticipantRepo(participants ...*domain.Participant) *fakeParticipantRepo {
	f := &fakeParticipantRepo{byID: make(map[string]*domain.Participant)}
	for _, p := range participants {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeParticipantRepo) Create(ctx context.Context, p *domain.Participant) error {
	for _, existing := range f.byID {
		if existing.Email == p.Email {
			return domain.ErrDuplicateEmail
		}
		if existing.Username == p.Username {
			return domain.ErrDuplicateUsername
		}
	}
	p.ID = fmt.Sprintf("u-%d", len(f.byID)+1)
	f.byID[p.ID] = p
	return nil
}

func (f *fakeParticipantRepo) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) GetByUsername(ctx context.Context, username string) (*domain.Participant, error) {
	for _, p := range f.byID {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) SetEmailVerified(ctx context.Context, id string, verified bool) error {
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.EmailVerified = verified
	return nil
}

// fakeEmailService records sends; safe for concurrent use since the service
// sends fire-and-forget.
type fakeEmailService struct {
	mu          sync.Mutex
	invitations []string
	decisions   []string
	welcomes    []string
}

func (f *fakeEmailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invitations = append(f.invitations, data.Email)
	return nil
}

func (f *fakeEmailService) SendManagerDecision(ctx context.Context, data *domain.ManagerDecisionEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decisions = append(f.decisions, data.Email)
	return nil
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomes = append(f.welcomes, data.Email)
	return nil
}

func participant(id, username, email string) *domain.Participant {
	return &domain.Participant{ID: id, Name: username, Username: username, Email: email}
}

func newTestPrivateEventService(repo *fakePrivateEventRepo, participants *fakeParticipantRepo) domain.PrivateEventService {
	return NewPrivateEventService(repo, participants, &fakeEmailService{}, 5*time.Second)
}

func futureEvent(creatorID string) *domain.PrivateEvent {
	return &domain.PrivateEvent{
		InitDate:    time.Now().Add(24 * time.Hour),
		EndDate:     time.Now().Add(30 * time.Hour),
		Description: "ciao",
		CreatorID:   creatorID,
	}
}

func TestPrivateEventService_Create(t *testing.T) {
	repo := newFakePrivateEventRepo()
	svc := newTestPrivateEventService(repo, newFakeParticipantRepo())

	created, err := svc.Create(context.Background(), futureEvent("u-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u-1", created.CreatorID)
}

func TestPrivateEventService_Create_EndBeforeStart(t *testing.T) {
	svc := newTestPrivateEventService(newFakePrivateEventRepo(), newFakeParticipantRepo())

	e := futureEvent("u-1")
	e.EndDate = e.InitDate.Add(-time.Hour)
	_, err := svc.Create(context.Background(), e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "You can't end an event before it started")
}

func TestPrivateEventService_Create_StartInPast(t *testing.T) {
	svc := newTestPrivateEventService(newFakePrivateEventRepo(), newFakeParticipantRepo())

	e := futureEvent("u-1")
	e.InitDate = time.Now().Add(-48 * time.Hour)
	_, err := svc.Create(context.Background(), e)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrivateEventService_Invite(t *testing.T) {
	creator := participant("u-1", "alice", "alice@example.com")
	bob := participant("u-2", "bob", "bob@example.com")
	carol := participant("u-3", "carol", "carol@example.com")
	participants := newFakeParticipantRepo(creator, bob, carol)

	tests := []struct {
		name        string
		callerID    string
		identifiers []string
		wantErr     error
		wantPending []string
	}{
		{
			name:        "invite by username and email",
			callerID:    "u-1",
			identifiers: []string{"bob", "carol@example.com"},
			wantPending: []string{"u-2", "u-3"},
		},
		{
			name:        "non-owner is rejected",
			callerID:    "u-2",
			identifiers: []string{"carol"},
			wantErr:     domain.ErrNotOwner,
		},
		{
			name:        "unresolved identifier fails atomically",
			callerID:    "u-1",
			identifiers: []string{"bob", "nobody"},
			wantErr:     domain.ErrParticipantNotFound,
		},
		{
			name:        "creator cannot be invited",
			callerID:    "u-1",
			identifiers: []string{"alice"},
			wantErr:     domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePrivateEventRepo()
			svc := newTestPrivateEventService(repo, participants)
			created, err := svc.Create(context.Background(), futureEvent("u-1"))
			require.NoError(t, err)

			entries, err := svc.Invite(context.Background(), created.ID, tt.callerID, tt.identifiers)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				// all-or-nothing: no partial mutation
				stored, listErr := repo.ListInvitees(context.Background(), created.ID)
				require.NoError(t, listErr)
				assert.Empty(t, stored)
				return
			}
			require.NoError(t, err)
			require.Len(t, entries, len(tt.wantPending))
			for _, entry := range entries {
				assert.Equal(t, domain.InvitePending, entry.Status)
				assert.Contains(t, tt.wantPending, entry.ParticipantID)
			}
		})
	}
}

func TestPrivateEventService_Invite_Idempotent(t *testing.T) {
	creator := participant("u-1", "alice", "alice@example.com")
	bob := participant("u-2", "bob", "bob@example.com")
	repo := newFakePrivateEventRepo()
	svc := newTestPrivateEventService(repo, newFakeParticipantRepo(creator, bob))

	created, err := svc.Create(context.Background(), futureEvent("u-1"))
	require.NoError(t, err)

	_, err = svc.Invite(context.Background(), created.ID, "u-1", []string{"bob"})
	require.NoError(t, err)
	// second invite, mixing username and email forms of the same person
	entries, err := svc.Invite(context.Background(), created.ID, "u-1", []string{"bob", "bob@example.com"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.InvitePending, entries[0].Status)
}

func TestPrivateEventService_Respond(t *testing.T) {
	creator := participant("u-1", "alice", "alice@example.com")
	bob := participant("u-2", "bob", "bob@example.com")

	tests := []struct {
		name       string
		callerID   string
		accept     bool
		preInvite  bool
		preRespond bool
		wantErr    error
		wantStatus domain.InviteStatus
	}{
		{
			name:       "accept transitions pending to accepted",
			callerID:   "u-2",
			accept:     true,
			preInvite:  true,
			wantStatus: domain.InviteAccepted,
		},
		{
			name:       "decline transitions pending to denied",
			callerID:   "u-2",
			accept:     false,
			preInvite:  true,
			wantStatus: domain.InviteDenied,
		},
		{
			name:     "uninvited caller",
			callerID: "u-3",
			accept:   true,
			wantErr:  domain.ErrNotInvited,
		},
		{
			name:       "terminal entry cannot transition again",
			callerID:   "u-2",
			accept:     false,
			preInvite:  true,
			preRespond: true,
			wantErr:    domain.ErrAlreadyResponded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePrivateEventRepo()
			svc := newTestPrivateEventService(repo, newFakeParticipantRepo(creator, bob))
			created, err := svc.Create(context.Background(), futureEvent("u-1"))
			require.NoError(t, err)

			if tt.preInvite {
				_, err = svc.Invite(context.Background(), created.ID, "u-1", []string{"bob"})
				require.NoError(t, err)
			}
			if tt.preRespond {
				_, err = svc.Respond(context.Background(), created.ID, "u-2", true)
				require.NoError(t, err)
			}

			entry, err := svc.Respond(context.Background(), created.ID, tt.callerID, tt.accept)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.preRespond {
					// earlier accept must survive the failed retry
					stored, getErr := repo.GetInvitee(context.Background(), created.ID, "u-2")
					require.NoError(t, getErr)
					assert.Equal(t, domain.InviteAccepted, stored.Status)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, entry.Status)
			require.NotNil(t, entry.RespondedAt)
		})
	}
}

func TestPrivateEventService_ListMine_Disjoint(t *testing.T) {
	alice := participant("u-1", "alice", "alice@example.com")
	bob := participant("u-2", "bob", "bob@example.com")
	repo := newFakePrivateEventRepo()
	svc := newTestPrivateEventService(repo, newFakeParticipantRepo(alice, bob))

	mine, err := svc.Create(context.Background(), futureEvent("u-1"))
	require.NoError(t, err)
	theirs, err := svc.Create(context.Background(), futureEvent("u-2"))
	require.NoError(t, err)

	_, err = svc.Invite(context.Background(), theirs.ID, "u-2", []string{"alice"})
	require.NoError(t, err)

	// Even if alice somehow ends up listed on her own event, it must not be
	// reported under invited.
	require.NoError(t, repo.AddInvitees(context.Background(), mine.ID, []string{"u-1"}, time.Now()))

	created, invited, err := svc.ListMine(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Len(t, invited, 1)
	assert.Equal(t, mine.ID, created[0].ID)
	assert.Equal(t, theirs.ID, invited[0].ID)
}

func TestPrivateEventService_Get_Access(t *testing.T) {
	alice := participant("u-1", "alice", "alice@example.com")
	bob := participant("u-2", "bob", "bob@example.com")
	repo := newFakePrivateEventRepo()
	svc := newTestPrivateEventService(repo, newFakeParticipantRepo(alice, bob))

	created, err := svc.Create(context.Background(), futureEvent("u-1"))
	require.NoError(t, err)
	_, err = svc.Invite(context.Background(), created.ID, "u-1", []string{"bob"})
	require.NoError(t, err)

	_, _, err = svc.Get(context.Background(), created.ID, "u-1")
	assert.NoError(t, err, "creator can read")
	_, _, err = svc.Get(context.Background(), created.ID, "u-2")
	assert.NoError(t, err, "invitee can read")
	_, _, err = svc.Get(context.Background(), created.ID, "u-99")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPrivateEventService_UpdateAndDelete_OwnerOnly(t *testing.T) {
	alice := participant("u-1", "alice", "alice@example.com")
	bob := participant("u-2", "bob", "bob@example.com")
	repo := newFakePrivateEventRepo()
	svc := newTestPrivateEventService(repo, newFakeParticipantRepo(alice, bob))

	created, err := svc.Create(context.Background(), futureEvent("u-1"))
	require.NoError(t, err)
	_, err = svc.Invite(context.Background(), created.ID, "u-1", []string{"bob"})
	require.NoError(t, err)

	edit := futureEvent("u-1")
	edit.Description = "updated"

	_, err = svc.Update(context.Background(), created.ID, "u-2", edit)
	require.ErrorIs(t, err, domain.ErrNotOwner)
	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ciao", stored.Description, "rejected edit must not mutate")

	updated, err := svc.Update(context.Background(), created.ID, "u-1", edit)
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Description)

	require.ErrorIs(t, svc.Delete(context.Background(), created.ID, "u-2"), domain.ErrNotOwner)
	require.NoError(t, svc.Delete(context.Background(), created.ID, "u-1"))
	require.ErrorIs(t, svc.Delete(context.Background(), created.ID, "u-1"), domain.ErrNotFound)
}
