package repository

import (
	"context"
	"testing"
	"time"

	"group-scheduler/core/database"
	"group-scheduler/core/params"
	"group-scheduler/modules/notification/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*NotificationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewNotificationRepository(database.New(sqlx.NewDb(db, "sqlmock"))), mock
}

var notificationRowColumns = []string{"id", "user_id", "entity", "type", "title", "message", "data", "is_read", "created_at", "updated_at"}

func TestCreateNotificationsSkipsEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	require.NoError(t, repo.CreateNotifications(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNotificationsBatch(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := []entity.Notification{
		{UserID: uuid.New(), Entity: "event", Type: "created", Title: "t", Data: entity.JSONB{"a": 1}},
		{UserID: uuid.New(), Entity: "event", Type: "created", Title: "t", Data: entity.JSONB{"a": 1}},
	}

	mock.ExpectExec("INSERT INTO notifications").WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.CreateNotifications(context.Background(), rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUserID(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT").WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("FROM notifications").WithArgs(userID, 2, 2).
		WillReturnRows(sqlmock.NewRows(notificationRowColumns).
			AddRow(uuid.NewString(), userID.String(), "comment", "created", "New comment", "hi", []byte(`{"event_id":"x"}`), false, now, now))

	page, err := repo.GetByUserID(context.Background(), userID, params.QueryParams{PageNumber: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalItems)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "x", page.Items[0].Data["event_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAsRead(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectExec("UPDATE notifications").WithArgs(userID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.MarkAsRead(context.Background(), userID, []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUnread(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectQuery("is_read = FALSE").WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountUnread(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
