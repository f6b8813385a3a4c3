package domain

import (
	"context"
	"time"
)

// Event is a public, venue-hosted event created by an approved manager.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	InitDate    time.Time `json:"init_date"`
	EndDate     time.Time `json:"end_date"`
	Address     Address   `json:"address"`
	Cost        float64   `json:"cost"`
	Description string    `json:"description"`
	Photos      []string  `json:"photos"`
	ManagerID   string    `json:"manager_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventRepository defines storage for public events. List is paginated and
// also returns the total row count.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService defines public event CRUD, restricted to approved managers
// for writes.
type EventService interface {
	Create(ctx context.Context, managerID string, e *Event) (*Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, eventID, managerID string, e *Event) (*Event, error)
	Delete(ctx context.Context, eventID, managerID string) error
}
