package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"eventgather/internal/domain"
)

type privateEventRepository struct {
	DB *sql.DB
}

// NewPrivateEventRepository returns a PrivateEventRepository backed by postgres.
func NewPrivateEventRepository(db *sql.DB) domain.PrivateEventRepository {
	return &privateEventRepository{DB: db}
}

const privateEventColumns = `id, init_date, end_date, country, city, street, number, postal_code,
		cost, description, photos, creator_id, version, created_at, updated_at`

func (r *privateEventRepository) Create(ctx context.Context, e *domain.PrivateEvent) error {
	query := `
		INSERT INTO private_events (init_date, end_date, country, city, street, number, postal_code,
			cost, description, photos, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, version
	`
	return r.DB.QueryRowContext(ctx, query,
		e.InitDate, e.EndDate,
		e.Address.Country, e.Address.City, e.Address.Street, e.Address.Number, e.Address.PostalCode,
		e.Cost, e.Description, pq.Array(e.Photos), e.CreatorID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID, &e.Version)
}

func (r *privateEventRepository) GetByID(ctx context.Context, id string) (*domain.PrivateEvent, error) {
	query := `SELECT ` + privateEventColumns + ` FROM private_events WHERE id = $1`
	e := &domain.PrivateEvent{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.InitDate, &e.EndDate,
		&e.Address.Country, &e.Address.City, &e.Address.Street, &e.Address.Number, &e.Address.PostalCode,
		&e.Cost, &e.Description, pq.Array(&e.Photos), &e.CreatorID, &e.Version, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Update overwrites the editable fields guarded by the version column. A
// mismatched version returns ErrVersionConflict; a missing row ErrNotFound.
func (r *privateEventRepository) Update(ctx context.Context, e *domain.PrivateEvent) error {
	query := `
		UPDATE private_events
		SET init_date = $3, end_date = $4, country = $5, city = $6, street = $7, number = $8,
			postal_code = $9, cost = $10, description = $11, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.ID, e.Version, e.InitDate, e.EndDate,
		e.Address.Country, e.Address.City, e.Address.Street, e.Address.Number, e.Address.PostalCode,
		e.Cost, e.Description,
	).Scan(&e.Version, &e.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	var exists bool
	if probeErr := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM private_events WHERE id = $1)`, e.ID).Scan(&exists); probeErr != nil {
		return probeErr
	}
	if exists {
		return domain.ErrVersionConflict
	}
	return domain.ErrNotFound
}

func (r *privateEventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM private_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *privateEventRepository) ListByCreatorID(ctx context.Context, creatorID string) ([]*domain.PrivateEvent, error) {
	query := `SELECT ` + privateEventColumns + ` FROM private_events WHERE creator_id = $1 ORDER BY init_date`
	return r.list(ctx, query, creatorID)
}

// ListByInviteeID returns events the participant is listed on, excluding any
// they created, keeping the created/invited result sets disjoint.
func (r *privateEventRepository) ListByInviteeID(ctx context.Context, participantID string) ([]*domain.PrivateEvent, error) {
	query := `
		SELECT ` + prefixedPrivateEventColumns("e") + `
		FROM private_events e
		JOIN private_event_participants p ON p.event_id = e.id
		WHERE p.participant_id = $1 AND e.creator_id <> $1
		ORDER BY e.init_date
	`
	return r.list(ctx, query, participantID)
}

func prefixedPrivateEventColumns(alias string) string {
	return alias + `.id, ` + alias + `.init_date, ` + alias + `.end_date, ` + alias + `.country, ` +
		alias + `.city, ` + alias + `.street, ` + alias + `.number, ` + alias + `.postal_code, ` +
		alias + `.cost, ` + alias + `.description, ` + alias + `.photos, ` + alias + `.creator_id, ` +
		alias + `.version, ` + alias + `.created_at, ` + alias + `.updated_at`
}

func (r *privateEventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.PrivateEvent, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.PrivateEvent
	for rows.Next() {
		e := &domain.PrivateEvent{}
		if err := rows.Scan(
			&e.ID, &e.InitDate, &e.EndDate,
			&e.Address.Country, &e.Address.City, &e.Address.Street, &e.Address.Number, &e.Address.PostalCode,
			&e.Cost, &e.Description, pq.Array(&e.Photos), &e.CreatorID, &e.Version, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.PrivateEvent{}
	}
	return events, nil
}

// AddInvitees appends pending entries inside one transaction. The primary key
// on (event_id, participant_id) plus ON CONFLICT DO NOTHING makes re-invites
// idempotent even when two invite calls race.
func (r *privateEventRepository) AddInvitees(ctx context.Context, eventID string, participantIDs []string, invitedAt time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin invite tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO private_event_participants (event_id, participant_id, status, invited_at)
		VALUES ($1, $2, 'pending', $3)
		ON CONFLICT (event_id, participant_id) DO NOTHING
	`
	for _, pid := range participantIDs {
		if _, err := tx.ExecContext(ctx, query, eventID, pid, invitedAt); err != nil {
			return fmt.Errorf("insert invitee %s: %w", pid, err)
		}
	}
	return tx.Commit()
}

func (r *privateEventRepository) ListInvitees(ctx context.Context, eventID string) ([]*domain.InviteEntry, error) {
	query := `
		SELECT event_id, participant_id, status, invited_at, responded_at
		FROM private_event_participants
		WHERE event_id = $1
		ORDER BY invited_at
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.InviteEntry
	for rows.Next() {
		entry := &domain.InviteEntry{}
		if err := rows.Scan(&entry.EventID, &entry.ParticipantID, &entry.Status, &entry.InvitedAt, &entry.RespondedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*domain.InviteEntry{}
	}
	return entries, nil
}

func (r *privateEventRepository) GetInvitee(ctx context.Context, eventID, participantID string) (*domain.InviteEntry, error) {
	query := `
		SELECT event_id, participant_id, status, invited_at, responded_at
		FROM private_event_participants
		WHERE event_id = $1 AND participant_id = $2
	`
	entry := &domain.InviteEntry{}
	err := r.DB.QueryRowContext(ctx, query, eventID, participantID).
		Scan(&entry.EventID, &entry.ParticipantID, &entry.Status, &entry.InvitedAt, &entry.RespondedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// UpdateInviteStatus transitions a pending entry to a terminal status. The
// status guard in the WHERE clause keeps the transition atomic: a concurrent
// response or re-check can never overwrite a terminal state.
func (r *privateEventRepository) UpdateInviteStatus(ctx context.Context, eventID, participantID string, status domain.InviteStatus, respondedAt time.Time) (bool, error) {
	query := `
		UPDATE private_event_participants
		SET status = $3, responded_at = $4
		WHERE event_id = $1 AND participant_id = $2 AND status = 'pending'
	`
	res, err := r.DB.ExecContext(ctx, query, eventID, participantID, status, respondedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
