package repository

import (
	"context"
	"database/sql"
	"errors"

	"group-scheduler/core/database"
	"group-scheduler/core/logger"
	"group-scheduler/modules/comment/entity"

	"github.com/google/uuid"
)

type CommentRepositoryInterface interface {
	CreateComment(ctx context.Context, comment *entity.Comment) (*entity.Comment, error)
	GetCommentByID(ctx context.Context, eventID, commentID uuid.UUID) (*entity.Comment, error)
	GetCommentsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Comment, error)
	SoftDeleteComment(ctx context.Context, commentID uuid.UUID) (bool, error)

	// GetEventGroupID returns the group of a live event, or uuid.Nil.
	GetEventGroupID(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error)
}

type CommentRepository struct {
	DB database.IDatabase
}

func NewCommentRepository(db database.IDatabase) *CommentRepository {
	return &CommentRepository{DB: db}
}

const commentColumns = `id, event_id, author_id, message, deleted, created_at`

func (r *CommentRepository) CreateComment(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	query := `
		INSERT INTO comments (id, event_id, author_id, message)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns

	var created entity.Comment
	err := r.DB.GetContext(ctx, &created, query, comment.ID, comment.EventID, comment.AuthorID, comment.Message)
	if err != nil {
		logger.Error("CommentRepository:CreateComment", "error", err)
		return nil, err
	}
	return &created, nil
}

func (r *CommentRepository) GetCommentByID(ctx context.Context, eventID, commentID uuid.UUID) (*entity.Comment, error) {
	var comment entity.Comment
	err := r.DB.GetContext(ctx, &comment,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1 AND event_id = $2 AND deleted = FALSE`,
		commentID, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CommentRepository:GetCommentByID", "error", err)
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) GetCommentsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Comment, error) {
	comments := []entity.Comment{}
	err := r.DB.SelectContext(ctx, &comments,
		`SELECT `+commentColumns+` FROM comments WHERE event_id = $1 AND deleted = FALSE ORDER BY created_at, id`,
		eventID)
	if err != nil {
		logger.Error("CommentRepository:GetCommentsByEventID", "error", err)
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) SoftDeleteComment(ctx context.Context, commentID uuid.UUID) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE comments SET deleted = TRUE WHERE id = $1 AND deleted = FALSE`, commentID)
	if err != nil {
		logger.Error("CommentRepository:SoftDeleteComment", "error", err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *CommentRepository) GetEventGroupID(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error) {
	var groupID uuid.UUID
	err := r.DB.GetContext(ctx, &groupID, `SELECT group_id FROM events WHERE id = $1 AND deleted = FALSE`, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil
		}
		logger.Error("CommentRepository:GetEventGroupID", "error", err)
		return uuid.Nil, err
	}
	return groupID, nil
}
