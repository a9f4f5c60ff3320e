package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"group-scheduler/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*CommentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCommentRepository(database.New(sqlx.NewDb(db, "sqlmock"))), mock
}

var commentRowColumns = []string{"id", "event_id", "author_id", "message", "deleted", "created_at"}

func TestGetCommentsByEventIDOrdersByCreation(t *testing.T) {
	repo, mock := newMockRepo(t)
	eventID, author := uuid.New(), uuid.New()
	c1, c2 := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("deleted = FALSE ORDER BY created_at, id")).
		WithArgs(eventID).
		WillReturnRows(sqlmock.NewRows(commentRowColumns).
			AddRow(c1.String(), eventID.String(), author.String(), "first", false, now).
			AddRow(c2.String(), eventID.String(), author.String(), "second", false, now.Add(time.Second)))

	comments, err := repo.GetCommentsByEventID(context.Background(), eventID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, c1, comments[0].ID)
	assert.Equal(t, "second", comments[1].Message)
}

func TestGetEventGroupIDMissingEvent(t *testing.T) {
	repo, mock := newMockRepo(t)
	eventID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT group_id FROM events WHERE id = $1 AND deleted = FALSE")).
		WithArgs(eventID).
		WillReturnRows(sqlmock.NewRows([]string{"group_id"}))

	groupID, err := repo.GetEventGroupID(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, groupID)
}

func TestSoftDeleteComment(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE comments SET deleted = TRUE")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.SoftDeleteComment(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
