package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventgather/internal/domain"
)

type reportService struct {
	reports domain.ReportRepository
}

// NewReportService creates the report filing service.
func NewReportService(reports domain.ReportRepository) domain.ReportService {
	return &reportService{reports: reports}
}

func (s *reportService) File(ctx context.Context, r *domain.Report) (*domain.Report, error) {
	if strings.TrimSpace(r.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrInvalidInput)
	}
	r.CreatedAt = time.Now()
	if err := s.reports.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return r, nil
}

func (s *reportService) List(ctx context.Context) ([]*domain.Report, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}
