package service

import (
	"context"
	"strings"

	"group-scheduler/core/constants"
	"group-scheduler/core/errors"
	"group-scheduler/core/logger"
	"group-scheduler/core/queue"
	"group-scheduler/modules/comment/dto"
	"group-scheduler/modules/comment/entity"
	"group-scheduler/modules/comment/mapper"
	"group-scheduler/modules/comment/repository"
	notificationdto "group-scheduler/modules/notification/dto"

	"github.com/google/uuid"
)

// GroupDirectory answers the membership questions comments depend on.
type GroupDirectory interface {
	GetCreatorID(ctx context.Context, groupID uuid.UUID) (uuid.UUID, *errors.AppError)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, *errors.AppError)
	UserExists(ctx context.Context, userID uuid.UUID) (bool, *errors.AppError)
}

type CommentServiceInterface interface {
	GetComments(ctx context.Context, groupID, eventID, requesterID uuid.UUID) ([]dto.CommentResponse, *errors.AppError)
	CreateComment(ctx context.Context, groupID, eventID, authorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, *errors.AppError)
	DeleteComment(ctx context.Context, groupID, eventID, commentID, requesterID uuid.UUID) *errors.AppError
}

type CommentService struct {
	repo   repository.CommentRepositoryInterface
	groups GroupDirectory
	queue  queue.Enqueuer
}

func NewCommentService(repo repository.CommentRepositoryInterface, groups GroupDirectory, queue queue.Enqueuer) *CommentService {
	return &CommentService{
		repo:   repo,
		groups: groups,
		queue:  queue,
	}
}

// checkEvent verifies that eventID is a live event of groupID.
func (s *CommentService) checkEvent(ctx context.Context, groupID, eventID uuid.UUID) *errors.AppError {
	eventGroupID, err := s.repo.GetEventGroupID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get event failed", err)
	}
	if eventGroupID == uuid.Nil || eventGroupID != groupID {
		return errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	return nil
}

func (s *CommentService) requireMember(ctx context.Context, groupID, userID uuid.UUID) *errors.AppError {
	member, appErr := s.groups.IsMember(ctx, groupID, userID)
	if appErr != nil {
		return appErr
	}
	if !member {
		return errors.NewAppError(errors.ErrForbidden, "only group members can access comments", nil)
	}
	return nil
}

func (s *CommentService) GetComments(ctx context.Context, groupID, eventID, requesterID uuid.UUID) ([]dto.CommentResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := s.checkEvent(ctx, groupID, eventID); appErr != nil {
		return nil, appErr
	}
	if appErr := s.requireMember(ctx, groupID, requesterID); appErr != nil {
		return nil, appErr
	}

	comments, err := s.repo.GetCommentsByEventID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get comments failed", err)
	}
	return mapper.ToCommentResponses(comments), nil
}

func (s *CommentService) CreateComment(ctx context.Context, groupID, eventID, authorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := s.checkEvent(ctx, groupID, eventID); appErr != nil {
		return nil, appErr
	}

	exists, appErr := s.groups.UserExists(ctx, authorID)
	if appErr != nil {
		return nil, appErr
	}
	if !exists {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}
	if appErr := s.requireMember(ctx, groupID, authorID); appErr != nil {
		return nil, appErr
	}

	comment := &entity.Comment{
		ID:       uuid.New(),
		EventID:  eventID,
		AuthorID: authorID,
		Message:  strings.TrimSpace(req.Message),
	}
	created, err := s.repo.CreateComment(ctx, comment)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create comment failed", err)
	}

	if s.queue != nil {
		payload := notificationdto.CommentCreatedPayload{
			CommentID: created.ID,
			EventID:   eventID,
			GroupID:   groupID,
			AuthorID:  authorID,
			Message:   created.Message,
		}
		if err := s.queue.Enqueue(context.WithoutCancel(ctx), constants.TaskCommentCreated, payload); err != nil {
			logger.Error("CommentService:CreateComment:Enqueue", "error", err)
		}
	}

	return mapper.ToCommentResponse(created), nil
}

// DeleteComment lets the author or the group creator hide a comment.
func (s *CommentService) DeleteComment(ctx context.Context, groupID, eventID, commentID, requesterID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := s.checkEvent(ctx, groupID, eventID); appErr != nil {
		return appErr
	}

	comment, err := s.repo.GetCommentByID(ctx, eventID, commentID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get comment failed", err)
	}
	if comment == nil {
		return errors.NewAppError(errors.ErrNotFound, "comment not found", nil)
	}

	if comment.AuthorID != requesterID {
		creatorID, appErr := s.groups.GetCreatorID(ctx, groupID)
		if appErr != nil {
			return appErr
		}
		if creatorID != requesterID {
			return errors.NewAppError(errors.ErrForbidden, "only the author or the group creator can delete a comment", nil)
		}
	}

	deleted, err := s.repo.SoftDeleteComment(ctx, commentID)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete comment failed", err)
	}
	if !deleted {
		return errors.NewAppError(errors.ErrNotFound, "comment not found", nil)
	}
	return nil
}
