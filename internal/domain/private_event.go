package domain

import (
	"context"
	"fmt"
	"time"
)

// ErrEndBeforeStart carries the exact message the API contract promises for
// temporally inverted events.
var ErrEndBeforeStart = fmt.Errorf("%w: You can't end an event before it started", ErrInvalidInput)

// InviteStatus is the per-invitee state on a private event's participant list.
// Pending is the only non-terminal state.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDenied   InviteStatus = "denied"
)

// Address is a venue address embedded in events.
// swagger:model Address
type Address struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	PostalCode string `json:"postal_code"`
}

// PrivateEvent is an invitation-only gathering created by a participant.
// Version supports optimistic concurrency on field edits.
// swagger:model PrivateEvent
type PrivateEvent struct {
	ID          string    `json:"id"`
	InitDate    time.Time `json:"init_date"`
	EndDate     time.Time `json:"end_date"`
	Address     Address   `json:"address"`
	Cost        float64   `json:"cost"`
	Description string    `json:"description"`
	Photos      []string  `json:"photos"`
	CreatorID   string    `json:"creator_id"`
	Version     int       `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const maxDescriptionLen = 300

// Validate checks the event's intrinsic invariants. now is the reference
// instant for the not-in-the-past rule; pass the zero time to skip it (edits).
func (e *PrivateEvent) Validate(now time.Time) error {
	if e.EndDate.Before(e.InitDate) {
		return ErrEndBeforeStart
	}
	if !now.IsZero() && e.InitDate.Before(now) {
		return fmt.Errorf("%w: event cannot start in the past", ErrInvalidInput)
	}
	if e.Cost < 0 {
		return fmt.Errorf("%w: cost must be non-negative", ErrInvalidInput)
	}
	if len(e.Description) > maxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, maxDescriptionLen)
	}
	return nil
}

// InviteEntry is one row of a private event's participant list.
// swagger:model InviteEntry
type InviteEntry struct {
	EventID       string       `json:"event_id"`
	ParticipantID string       `json:"participant_id"`
	Status        InviteStatus `json:"status"`
	InvitedAt     time.Time    `json:"invited_at"`
	RespondedAt   *time.Time   `json:"responded_at"`
}

// PrivateEventRepository defines storage for private events and their
// participant lists. AddInvitees and UpdateInviteStatus must be atomic
// per event so racing invites or responses cannot lose updates.
type PrivateEventRepository interface {
	Create(ctx context.Context, e *PrivateEvent) error
	GetByID(ctx context.Context, id string) (*PrivateEvent, error)
	// Update overwrites the editable fields if the stored version matches
	// e.Version, bumping the version. Returns ErrVersionConflict otherwise.
	Update(ctx context.Context, e *PrivateEvent) error
	Delete(ctx context.Context, id string) error

	ListByCreatorID(ctx context.Context, creatorID string) ([]*PrivateEvent, error)
	// ListByInviteeID returns events where the participant appears on the
	// list, excluding any they created themselves.
	ListByInviteeID(ctx context.Context, participantID string) ([]*PrivateEvent, error)

	// AddInvitees appends pending entries for the given participants,
	// silently skipping ones already on the list.
	AddInvitees(ctx context.Context, eventID string, participantIDs []string, invitedAt time.Time) error
	ListInvitees(ctx context.Context, eventID string) ([]*InviteEntry, error)
	GetInvitee(ctx context.Context, eventID, participantID string) (*InviteEntry, error)
	// UpdateInviteStatus transitions a pending entry to the given terminal
	// status. Returns false when no pending entry matched.
	UpdateInviteStatus(ctx context.Context, eventID, participantID string, status InviteStatus, respondedAt time.Time) (bool, error)
}

// PrivateEventService orchestrates the invitation workflow: ownership
// enforcement, invite resolution, and accept/deny transitions.
type PrivateEventService interface {
	Create(ctx context.Context, e *PrivateEvent) (*PrivateEvent, error)
	// Get returns the event and its participant list. Only the creator or a
	// listed participant may read it.
	Get(ctx context.Context, eventID, callerID string) (*PrivateEvent, []*InviteEntry, error)
	// ListMine returns the caller's created events and the events they are
	// invited to, as two disjoint sequences.
	ListMine(ctx context.Context, callerID string) (created, invited []*PrivateEvent, err error)
	// Invite resolves each identifier (email or username) to a participant
	// and appends pending entries. All-or-nothing: one unresolved identifier
	// fails the whole call with ErrParticipantNotFound and no mutation.
	// Re-inviting a listed participant is a no-op.
	Invite(ctx context.Context, eventID, callerID string, identifiers []string) ([]*InviteEntry, error)
	// Respond transitions the caller's pending entry to accepted or denied.
	Respond(ctx context.Context, eventID, callerID string, accept bool) (*InviteEntry, error)
	Update(ctx context.Context, eventID, callerID string, e *PrivateEvent) (*PrivateEvent, error)
	Delete(ctx context.Context, eventID, callerID string) error
}
