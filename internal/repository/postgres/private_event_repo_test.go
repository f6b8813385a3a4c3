package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"eventgather/internal/domain"
)

func TestPrivateEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 2, 2, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.PrivateEvent
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			event: &domain.PrivateEvent{
				InitDate:    start,
				EndDate:     end,
				Address:     domain.Address{Country: "IT", City: "Milan", Street: "Via Roma", Number: "1", PostalCode: "20100"},
				Cost:        10,
				Description: "ciao",
				CreatorID:   "user-1",
				CreatedAt:   start,
				UpdatedAt:   start,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO private_events`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow("pe-1", 1))
			},
			wantID: "pe-1",
		},
		{
			name:  "db error",
			event: &domain.PrivateEvent{InitDate: start, EndDate: end, CreatorID: "user-1"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO private_events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewPrivateEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.Equal(t, 1, tt.event.Version)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPrivateEventRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, init_date, end_date`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewPrivateEventRepository(db)
	_, err = repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPrivateEventRepository_AddInvitees(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	invitedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO private_event_participants`).
		WithArgs("pe-1", "user-2", invitedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// already listed: ON CONFLICT DO NOTHING affects zero rows, no error
	mock.ExpectExec(`INSERT INTO private_event_participants`).
		WithArgs("pe-1", "user-3", invitedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := NewPrivateEventRepository(db)
	err = repo.AddInvitees(context.Background(), "pe-1", []string{"user-2", "user-3"}, invitedAt)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPrivateEventRepository_UpdateInviteStatus(t *testing.T) {
	respondedAt := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		mock        func(mock sqlmock.Sqlmock)
		wantUpdated bool
	}{
		{
			name: "pending entry transitions",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE private_event_participants`).
					WithArgs("pe-1", "user-2", string(domain.InviteAccepted), respondedAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantUpdated: true,
		},
		{
			name: "terminal entry is untouched",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE private_event_participants`).
					WithArgs("pe-1", "user-2", string(domain.InviteAccepted), respondedAt).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantUpdated: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewPrivateEventRepository(db)
			updated, err := repo.UpdateInviteStatus(context.Background(), "pe-1", "user-2", domain.InviteAccepted, respondedAt)
			require.NoError(t, err)
			require.Equal(t, tt.wantUpdated, updated)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPrivateEventRepository_Update_VersionConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE private_events`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("pe-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewPrivateEventRepository(db)
	err = repo.Update(context.Background(), &domain.PrivateEvent{ID: "pe-1", Version: 3})
	require.ErrorIs(t, err, domain.ErrVersionConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPrivateEventRepository_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE private_events`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("pe-missing").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	repo := NewPrivateEventRepository(db)
	err = repo.Update(context.Background(), &domain.PrivateEvent{ID: "pe-missing", Version: 1})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
