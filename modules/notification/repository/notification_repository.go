package repository

import (
	"context"

	"group-scheduler/core/database"
	"group-scheduler/core/logger"
	"group-scheduler/core/params"
	"group-scheduler/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type NotificationRepositoryInterface interface {
	CreateNotifications(ctx context.Context, notifications []entity.Notification) error
	GetByUserID(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*entity.PaginatedNotifications, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type NotificationRepository struct {
	DB database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

const notificationColumns = `id, user_id, entity, type, title, message, data, is_read, created_at, updated_at`

// CreateNotifications inserts all rows in a single statement.
func (r *NotificationRepository) CreateNotifications(ctx context.Context, notifications []entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	query := `
		INSERT INTO notifications (id, user_id, entity, type, title, message, data)
		VALUES (:id, :user_id, :entity, :type, :title, :message, :data)
	`
	if _, err := r.DB.NamedExecContext(ctx, query, notifications); err != nil {
		logger.Error("NotificationRepository:CreateNotifications", "count", len(notifications), "error", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*entity.PaginatedNotifications, error) {
	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID); err != nil {
		logger.Error("NotificationRepository:GetByUserID:Count", "error", err)
		return nil, err
	}

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	items := []entity.Notification{}
	if err := r.DB.SelectContext(ctx, &items, query, userID, params.PageSize, params.Offset()); err != nil {
		logger.Error("NotificationRepository:GetByUserID:Select", "error", err)
		return nil, err
	}

	return &entity.PaginatedNotifications{
		Items:      items,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

// MarkAsRead only touches rows owned by userID.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	query := `
		UPDATE notifications
		SET is_read = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND id = ANY($2::uuid[]) AND is_read = FALSE
	`
	result, err := r.DB.ExecContext(ctx, query, userID, pq.Array(raw))
	if err != nil {
		logger.Error("NotificationRepository:MarkAsRead", "error", err)
		return 0, err
	}
	return result.RowsAffected()
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE user_id = $1 AND is_read = FALSE`
	result, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead", "error", err)
		return 0, err
	}
	return result.RowsAffected()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`
	if err := r.DB.GetContext(ctx, &count, query, userID); err != nil {
		logger.Error("NotificationRepository:CountUnread", "error", err)
		return 0, err
	}
	return count, nil
}
