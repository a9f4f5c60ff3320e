package service

import (
	"context"
	"time"

	"group-scheduler/core/constants"
	"group-scheduler/core/errors"
	"group-scheduler/core/logger"
	"group-scheduler/core/params"
	"group-scheduler/modules/notification/dto"
	"group-scheduler/modules/notification/entity"
	"group-scheduler/modules/notification/mapper"
	"group-scheduler/modules/notification/repository"

	"github.com/google/uuid"
)

// MemberLister resolves the current members of a group.
type MemberLister interface {
	GetMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, *errors.AppError)
}

// Publisher pushes messages to subscribers of a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) error
}

type NotificationServiceInterface interface {
	GetMyNotifications(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) *errors.AppError
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError
	CountUnread(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, *errors.AppError)
}

type NotificationService struct {
	repo      repository.NotificationRepositoryInterface
	members   MemberLister
	publisher Publisher
	now       func() time.Time
}

func NewNotificationService(repo repository.NotificationRepositoryInterface, members MemberLister, publisher Publisher) *NotificationService {
	return &NotificationService{
		repo:      repo,
		members:   members,
		publisher: publisher,
		now:       time.Now,
	}
}

// Notice describes one domain change to fan out to a group.
type Notice struct {
	GroupID      uuid.UUID
	ActorID      uuid.UUID
	IncludeActor bool
	Entity       string
	Type         string
	Title        string
	Message      string
	Payload      any
}

// Dispatch stores one notification per recipient and publishes the envelope.
// Recipients are the group's current members, minus the actor unless
// IncludeActor is set.
func (s *NotificationService) Dispatch(ctx context.Context, notice Notice) error {
	memberIDs, appErr := s.members.GetMemberIDs(ctx, notice.GroupID)
	if appErr != nil {
		return appErr
	}

	data, err := entity.ToJSONB(notice.Payload)
	if err != nil {
		return err
	}

	rows := make([]entity.Notification, 0, len(memberIDs))
	for _, userID := range memberIDs {
		if userID == notice.ActorID && !notice.IncludeActor {
			continue
		}
		n := entity.Notification{
			UserID:  userID,
			Entity:  notice.Entity,
			Type:    notice.Type,
			Title:   notice.Title,
			Message: notice.Message,
			Data:    data,
		}
		n.ID = uuid.New()
		rows = append(rows, n)
	}

	if err := s.repo.CreateNotifications(ctx, rows); err != nil {
		return err
	}

	envelope := dto.Envelope{
		Entity:    notice.Entity,
		Type:      notice.Type,
		Payload:   notice.Payload,
		Timestamp: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, constants.NotificationChannel, envelope); err != nil {
		logger.Error("NotificationService:Dispatch:Publish", "entity", notice.Entity, "type", notice.Type, "error", err)
	}

	logger.Info("NotificationService:Dispatch:Done", "entity", notice.Entity, "type", notice.Type, "recipients", len(rows))
	return nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.GetByUserID(ctx, userID, params)
	if err != nil {
		logger.Error("NotificationService:GetMyNotifications", "error", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get notifications", err)
	}
	return mapper.ToPaginatedNotificationResponse(page), nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		logger.Error("NotificationService:MarkAsRead", "error", err)
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark notifications as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		logger.Error("NotificationService:MarkAllAsRead", "error", err)
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark notifications as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		logger.Error("NotificationService:CountUnread", "error", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to count notifications", err)
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}
