package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"eventgather/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type privateEventService struct {
	events         domain.PrivateEventRepository
	participants   domain.ParticipantRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewPrivateEventService creates the invitation workflow service.
func NewPrivateEventService(
	events domain.PrivateEventRepository,
	participants domain.ParticipantRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.PrivateEventService {
	return &privateEventService{
		events:         events,
		participants:   participants,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *privateEventService) Create(ctx context.Context, e *domain.PrivateEvent) (*domain.PrivateEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if e.CreatorID == "" {
		return nil, fmt.Errorf("%w: event creator is required", domain.ErrInvalidInput)
	}
	if err := e.Validate(time.Now()); err != nil {
		return nil, err
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create private event: %w", err)
	}
	return e, nil
}

func (s *privateEventService) Get(ctx context.Context, eventID, callerID string) (*domain.PrivateEvent, []*domain.InviteEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get private event: %w", err)
	}
	if event.CreatorID != callerID {
		if _, err := s.events.GetInvitee(ctx, eventID, callerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil, domain.ErrForbidden
			}
			return nil, nil, fmt.Errorf("check invitee: %w", err)
		}
	}
	invitees, err := s.events.ListInvitees(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list invitees: %w", err)
	}
	return event, invitees, nil
}

func (s *privateEventService) ListMine(ctx context.Context, callerID string) ([]*domain.PrivateEvent, []*domain.PrivateEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	created, err := s.events.ListByCreatorID(ctx, callerID)
	if err != nil {
		return nil, nil, fmt.Errorf("list created events: %w", err)
	}
	invited, err := s.events.ListByInviteeID(ctx, callerID)
	if err != nil {
		return nil, nil, fmt.Errorf("list invited events: %w", err)
	}
	return created, invited, nil
}

// Invite resolves every identifier before touching storage: one unresolved
// identifier fails the whole call (all-or-nothing). Identifiers matching the
// email pattern resolve by email, the rest by username. Re-inviting someone
// already listed is a no-op, and the creator can never be invited.
func (s *privateEventService) Invite(ctx context.Context, eventID, callerID string, identifiers []string) ([]*domain.InviteEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get private event: %w", err)
	}
	if event.CreatorID != callerID {
		return nil, domain.ErrNotOwner
	}
	if len(identifiers) == 0 {
		return nil, fmt.Errorf("%w: no invitees given", domain.ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(identifiers))
	var targets []*domain.Participant
	for _, ident := range identifiers {
		var p *domain.Participant
		if emailRegexp.MatchString(ident) {
			p, err = s.participants.GetByEmail(ctx, ident)
		} else {
			p, err = s.participants.GetByUsername(ctx, ident)
		}
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", domain.ErrParticipantNotFound, ident)
			}
			return nil, fmt.Errorf("resolve invitee %q: %w", ident, err)
		}
		if p.ID == event.CreatorID {
			return nil, fmt.Errorf("%w: cannot invite the event creator", domain.ErrInvalidInput)
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		targets = append(targets, p)
	}

	ids := make([]string, len(targets))
	for i, p := range targets {
		ids[i] = p.ID
	}
	if err := s.events.AddInvitees(ctx, eventID, ids, time.Now()); err != nil {
		return nil, fmt.Errorf("add invitees: %w", err)
	}

	s.notifyInvitees(event, callerID, targets)

	invitees, err := s.events.ListInvitees(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list invitees: %w", err)
	}
	return invitees, nil
}

// notifyInvitees sends invitation emails fire-and-forget. Failures are logged,
// never propagated: mail delivery must not fail the invite operation.
func (s *privateEventService) notifyInvitees(event *domain.PrivateEvent, inviterID string, targets []*domain.Participant) {
	inviterName := "Someone"
	if inviter, err := s.participants.GetByID(context.Background(), inviterID); err == nil {
		inviterName = inviter.Name
	}
	eventDate := event.InitDate.Format("2006-01-02 15:04")
	for _, p := range targets {
		go func(p *domain.Participant) {
			data := &domain.InvitationEmailData{
				Email:       p.Email,
				Name:        p.Name,
				InviterName: inviterName,
				EventDate:   eventDate,
			}
			if err := s.emailService.SendInvitation(context.Background(), data); err != nil {
				log.Printf("[EMAIL] invitation to %s failed: %v", p.Email, err)
			}
		}(p)
	}
}

func (s *privateEventService) Respond(ctx context.Context, eventID, callerID string, accept bool) (*domain.InviteEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get private event: %w", err)
	}

	status := domain.InviteDenied
	if accept {
		status = domain.InviteAccepted
	}
	updated, err := s.events.UpdateInviteStatus(ctx, eventID, callerID, status, time.Now())
	if err != nil {
		return nil, fmt.Errorf("update invite status: %w", err)
	}
	if !updated {
		// Nothing transitioned: either the caller was never invited or the
		// entry is already terminal.
		if _, err := s.events.GetInvitee(ctx, eventID, callerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotInvited
			}
			return nil, fmt.Errorf("get invitee: %w", err)
		}
		return nil, domain.ErrAlreadyResponded
	}
	entry, err := s.events.GetInvitee(ctx, eventID, callerID)
	if err != nil {
		return nil, fmt.Errorf("get invitee: %w", err)
	}
	return entry, nil
}

func (s *privateEventService) Update(ctx context.Context, eventID, callerID string, in *domain.PrivateEvent) (*domain.PrivateEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get private event: %w", err)
	}
	if event.CreatorID != callerID {
		return nil, domain.ErrNotOwner
	}

	event.InitDate = in.InitDate
	event.EndDate = in.EndDate
	event.Address = in.Address
	event.Cost = in.Cost
	event.Description = in.Description
	// Photo edits are out of scope for this endpoint.
	if err := event.Validate(time.Time{}); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update private event: %w", err)
	}
	return event, nil
}

func (s *privateEventService) Delete(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get private event: %w", err)
	}
	if event.CreatorID != callerID {
		return domain.ErrNotOwner
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete private event: %w", err)
	}
	return nil
}
