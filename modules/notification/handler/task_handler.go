package handler

import (
	"context"
	stderrors "errors"
	"fmt"

	"group-scheduler/core/constants"
	"group-scheduler/core/errors"
	"group-scheduler/core/queue"
	"group-scheduler/modules/notification/dto"
	"group-scheduler/modules/notification/service"

	"github.com/hibiken/asynq"
)

// Dispatcher fans a notice out to a group.
type Dispatcher interface {
	Dispatch(ctx context.Context, notice service.Notice) error
}

// Registrar is implemented by queue.Worker.
type Registrar interface {
	Handle(taskType string, handler asynq.HandlerFunc)
}

type TaskHandler struct {
	dispatcher Dispatcher
}

func NewTaskHandler(dispatcher Dispatcher) *TaskHandler {
	return &TaskHandler{dispatcher: dispatcher}
}

func (h *TaskHandler) Register(r Registrar) {
	r.Handle(constants.TaskGroupCreated, h.HandleGroupCreated)
	r.Handle(constants.TaskEventChanged, h.HandleEventChanged)
	r.Handle(constants.TaskCommentCreated, h.HandleCommentCreated)
}

func (h *TaskHandler) HandleGroupCreated(ctx context.Context, task *asynq.Task) error {
	var p dto.GroupCreatedPayload
	if err := queue.Decode(task, &p); err != nil {
		return err
	}
	return h.dispatch(ctx, service.Notice{
		GroupID:      p.GroupID,
		ActorID:      p.CreatorID,
		IncludeActor: true,
		Entity:       "group",
		Type:         "created",
		Title:        "Group created",
		Message:      p.Name,
		Payload:      p,
	})
}

func (h *TaskHandler) HandleEventChanged(ctx context.Context, task *asynq.Task) error {
	var p dto.EventChangedPayload
	if err := queue.Decode(task, &p); err != nil {
		return err
	}
	return h.dispatch(ctx, service.Notice{
		GroupID: p.GroupID,
		ActorID: p.ActorID,
		Entity:  "event",
		Type:    p.Action,
		Title:   "Event " + p.Action,
		Message: p.Name,
		Payload: p,
	})
}

func (h *TaskHandler) HandleCommentCreated(ctx context.Context, task *asynq.Task) error {
	var p dto.CommentCreatedPayload
	if err := queue.Decode(task, &p); err != nil {
		return err
	}
	return h.dispatch(ctx, service.Notice{
		GroupID: p.GroupID,
		ActorID: p.AuthorID,
		Entity:  "comment",
		Type:    "created",
		Title:   "New comment",
		Message: p.Message,
		Payload: p,
	})
}

// dispatch drops tasks whose group no longer exists instead of retrying them.
func (h *TaskHandler) dispatch(ctx context.Context, notice service.Notice) error {
	err := h.dispatcher.Dispatch(ctx, notice)
	if err == nil {
		return nil
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Code == errors.ErrNotFound {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	return err
}
