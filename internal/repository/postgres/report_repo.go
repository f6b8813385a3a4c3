package postgres

import (
	"context"
	"database/sql"

	"eventgather/internal/domain"
)

type reportRepository struct {
	DB *sql.DB
}

// NewReportRepository returns a ReportRepository backed by postgres.
func NewReportRepository(db *sql.DB) domain.ReportRepository {
	return &reportRepository{DB: db}
}

func (r *reportRepository) Create(ctx context.Context, rep *domain.Report) error {
	query := `
		INSERT INTO reports (reporter_id, event_id, reason, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, rep.ReporterID, rep.EventID, rep.Reason, rep.CreatedAt).
		Scan(&rep.ID)
}

func (r *reportRepository) List(ctx context.Context) ([]*domain.Report, error) {
	query := `
		SELECT id, reporter_id, event_id, reason, created_at
		FROM reports
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		rep := &domain.Report{}
		if err := rows.Scan(&rep.ID, &rep.ReporterID, &rep.EventID, &rep.Reason, &rep.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []*domain.Report{}
	}
	return reports, nil
}
