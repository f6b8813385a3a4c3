package domain

import (
	"context"
	"time"
)

// Report is a complaint filed by a participant, optionally about an event.
// swagger:model Report
type Report struct {
	ID         string    `json:"id"`
	ReporterID string    `json:"reporter_id"`
	EventID    *string   `json:"event_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReportRepository defines storage for reports.
type ReportRepository interface {
	Create(ctx context.Context, r *Report) error
	List(ctx context.Context) ([]*Report, error)
}

// ReportService defines filing and reviewing reports.
type ReportService interface {
	File(ctx context.Context, r *Report) (*Report, error)
	List(ctx context.Context) ([]*Report, error)
}
