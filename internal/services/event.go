package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventgather/internal/domain"
)

type eventService struct {
	events   domain.EventRepository
	managers domain.ManagerRepository
}

// NewEventService creates the public-event service. Writes require an
// approved manager.
func NewEventService(events domain.EventRepository, managers domain.ManagerRepository) domain.EventService {
	return &eventService{events: events, managers: managers}
}

func (s *eventService) Create(ctx context.Context, managerID string, e *domain.Event) (*domain.Event, error) {
	m, err := s.managers.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get manager: %w", err)
	}
	if !m.IsApproved() {
		return nil, domain.ErrNotApproved
	}
	if err := validateEvent(e); err != nil {
		return nil, err
	}

	e.ManagerID = managerID
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (s *eventService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	events, total, err := s.events.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) Update(ctx context.Context, eventID, managerID string, in *domain.Event) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if e.ManagerID != managerID {
		return nil, domain.ErrNotOwner
	}

	e.Name = in.Name
	e.InitDate = in.InitDate
	e.EndDate = in.EndDate
	e.Address = in.Address
	e.Cost = in.Cost
	e.Description = in.Description
	if err := validateEvent(e); err != nil {
		return nil, err
	}
	if err := s.events.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

func (s *eventService) Delete(ctx context.Context, eventID, managerID string) error {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if e.ManagerID != managerID {
		return domain.ErrNotOwner
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func validateEvent(e *domain.Event) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if e.EndDate.Before(e.InitDate) {
		return domain.ErrEndBeforeStart
	}
	if e.Cost < 0 {
		return fmt.Errorf("%w: cost must be non-negative", domain.ErrInvalidInput)
	}
	return nil
}
