package service

import (
	"context"

	"group-scheduler/core/constants"
	"group-scheduler/core/database"
	"group-scheduler/core/errors"
	"group-scheduler/core/logger"
	"group-scheduler/core/queue"
	"group-scheduler/modules/event/cache"
	"group-scheduler/modules/event/dto"
	"group-scheduler/modules/event/entity"
	"group-scheduler/modules/event/mapper"
	"group-scheduler/modules/event/repository"
	notificationdto "group-scheduler/modules/notification/dto"

	"github.com/google/uuid"
)

// GroupDirectory answers the membership questions events depend on.
type GroupDirectory interface {
	GetCreatorID(ctx context.Context, groupID uuid.UUID) (uuid.UUID, *errors.AppError)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, *errors.AppError)
}

type EventServiceInterface interface {
	CreateEvent(ctx context.Context, groupID uuid.UUID, req *dto.EventRequest, requesterID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, groupID, eventID uuid.UUID, req *dto.EventRequest, requesterID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, groupID, eventID, requesterID uuid.UUID) *errors.AppError
	SignUp(ctx context.Context, groupID, eventID, userID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	Withdraw(ctx context.Context, groupID, eventID, userID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	GetEvent(ctx context.Context, groupID, eventID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	GetEventsByGroup(ctx context.Context, groupID uuid.UUID) ([]dto.EventResponse, *errors.AppError)
}

type EventService struct {
	repo   repository.EventRepositoryInterface
	tx     database.Transactor
	groups GroupDirectory
	cache  cache.EventCacheInterface
	queue  queue.Enqueuer
}

func NewEventService(
	repo repository.EventRepositoryInterface,
	tx database.Transactor,
	groups GroupDirectory,
	cache cache.EventCacheInterface,
	queue queue.Enqueuer,
) *EventService {
	return &EventService{
		repo:   repo,
		tx:     tx,
		groups: groups,
		cache:  cache,
		queue:  queue,
	}
}

func eventNotFound() *errors.AppError {
	return errors.NewAppError(errors.ErrNotFound, "event not found", nil)
}

func (s *EventService) CreateEvent(ctx context.Context, groupID uuid.UUID, req *dto.EventRequest, requesterID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	creatorID, appErr := s.groups.GetCreatorID(ctx, groupID)
	if appErr != nil {
		return nil, appErr
	}
	if creatorID != requesterID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the group creator can create events", nil)
	}

	event := mapper.ToEventEntity(req, groupID, requesterID)
	event.ID = uuid.New()

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create event failed", err)
	}
	created.SignedUpUserIDs = []uuid.UUID{}

	s.invalidate(ctx, groupID)
	s.notify(ctx, created, requesterID, notificationdto.EventCreated)

	return mapper.ToEventResponse(created), nil
}

// loadOwnedEvent returns the live event in groupID, checking that requesterID
// created it.
func (s *EventService) loadOwnedEvent(ctx context.Context, groupID, eventID, requesterID uuid.UUID) (*entity.Event, *errors.AppError) {
	event, appErr := s.loadEvent(ctx, groupID, eventID)
	if appErr != nil {
		return nil, appErr
	}
	if event.CreatorID != requesterID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the event creator can change this event", nil)
	}
	return event, nil
}

func (s *EventService) loadEvent(ctx context.Context, groupID, eventID uuid.UUID) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get event failed", err)
	}
	if event == nil || !event.BelongsTo(groupID) {
		return nil, eventNotFound()
	}
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, groupID, eventID uuid.UUID, req *dto.EventRequest, requesterID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, appErr := s.loadOwnedEvent(ctx, groupID, eventID, requesterID)
	if appErr != nil {
		return nil, appErr
	}

	mapper.ApplyEventRequest(event, req)
	updated, err := s.repo.UpdateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update event failed", err)
	}
	if updated == nil {
		return nil, eventNotFound()
	}
	if appErr := s.loadSignups(ctx, updated); appErr != nil {
		return nil, appErr
	}

	s.refresh(ctx, groupID)
	s.notify(ctx, updated, requesterID, notificationdto.EventUpdated)

	return mapper.ToEventResponse(updated), nil
}

func (s *EventService) DeleteEvent(ctx context.Context, groupID, eventID, requesterID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, appErr := s.loadOwnedEvent(ctx, groupID, eventID, requesterID)
	if appErr != nil {
		return appErr
	}

	deleted, err := s.repo.SoftDeleteEvent(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete event failed", err)
	}
	if !deleted {
		return eventNotFound()
	}

	s.invalidate(ctx, groupID)
	s.notify(ctx, event, requesterID, notificationdto.EventDeleted)
	return nil
}

// SignUp adds userID to the event's sign-ups. The event row and the caller's
// membership row are share-locked for the duration of the transaction.
func (s *EventService) SignUp(ctx context.Context, groupID, eventID, userID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var event *entity.Event
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var appErr *errors.AppError
		event, appErr = s.lockEvent(ctx, groupID, eventID)
		if appErr != nil {
			return appErr
		}

		member, appErr := s.groups.IsMember(ctx, event.GroupID, userID)
		if appErr != nil {
			return appErr
		}
		if !member {
			return errors.NewAppError(errors.ErrNotGroupMember, "user is not a member of the event's group", nil)
		}

		if err := s.repo.AddSignup(ctx, eventID, userID); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "sign up failed", err)
		}
		if appErr := s.loadSignups(ctx, event); appErr != nil {
			return appErr
		}
		return nil
	})
	if err != nil {
		return nil, errors.AsAppError(err, errors.ErrUpdateFailed, "sign up failed")
	}

	s.invalidate(ctx, groupID)
	return mapper.ToEventResponse(event), nil
}

func (s *EventService) Withdraw(ctx context.Context, groupID, eventID, userID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var event *entity.Event
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var appErr *errors.AppError
		event, appErr = s.lockEvent(ctx, groupID, eventID)
		if appErr != nil {
			return appErr
		}

		removed, err := s.repo.RemoveSignup(ctx, eventID, userID)
		if err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "withdraw failed", err)
		}
		if !removed {
			return errors.NewAppError(errors.ErrNotSignedUp, "user is not signed up for this event", nil)
		}
		if appErr := s.loadSignups(ctx, event); appErr != nil {
			return appErr
		}
		return nil
	})
	if err != nil {
		return nil, errors.AsAppError(err, errors.ErrUpdateFailed, "withdraw failed")
	}

	s.invalidate(ctx, groupID)
	return mapper.ToEventResponse(event), nil
}

func (s *EventService) lockEvent(ctx context.Context, groupID, eventID uuid.UUID) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetEventByIDForShare(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get event failed", err)
	}
	if event == nil || !event.BelongsTo(groupID) {
		return nil, eventNotFound()
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, groupID, eventID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, appErr := s.loadEvent(ctx, groupID, eventID)
	if appErr != nil {
		return nil, appErr
	}
	if appErr := s.loadSignups(ctx, event); appErr != nil {
		return nil, appErr
	}
	return mapper.ToEventResponse(event), nil
}

// GetEventsByGroup serves the group's live events from the cache, filling it
// from the store on a miss.
func (s *EventService) GetEventsByGroup(ctx context.Context, groupID uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	cached, hit, err := s.cache.GetGroupEvents(ctx, groupID)
	if err != nil {
		logger.Warn("EventService:GetEventsByGroup:CacheGet", "group_id", groupID, "error", err)
	}
	if hit {
		return cached, nil
	}

	if _, appErr := s.groups.GetCreatorID(ctx, groupID); appErr != nil {
		return nil, appErr
	}

	events, appErr := s.loadGroupEvents(ctx, groupID)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.cache.SetGroupEvents(ctx, groupID, events); err != nil {
		logger.Warn("EventService:GetEventsByGroup:CacheSet", "group_id", groupID, "error", err)
	}
	return events, nil
}

func (s *EventService) loadGroupEvents(ctx context.Context, groupID uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.GetEventsByGroupID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get events failed", err)
	}

	eventIDs := make([]uuid.UUID, len(events))
	for i := range events {
		eventIDs[i] = events[i].ID
	}
	signups, err := s.repo.GetSignedUpUserIDsByEventIDs(ctx, eventIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get event sign-ups failed", err)
	}
	for i := range events {
		events[i].SignedUpUserIDs = signups[events[i].ID]
	}

	return mapper.ToEventResponses(events), nil
}

func (s *EventService) loadSignups(ctx context.Context, event *entity.Event) *errors.AppError {
	ids, err := s.repo.GetSignedUpUserIDs(ctx, event.ID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get event sign-ups failed", err)
	}
	event.SignedUpUserIDs = ids
	return nil
}

func (s *EventService) invalidate(ctx context.Context, groupID uuid.UUID) {
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), groupID); err != nil {
		logger.Error("EventService:InvalidateCache", "group_id", groupID, "error", err)
	}
}

// refresh reloads the group's cached list from the store. If that fails the
// entry is dropped so the next read repopulates it.
func (s *EventService) refresh(ctx context.Context, groupID uuid.UUID) {
	events, appErr := s.loadGroupEvents(ctx, groupID)
	if appErr == nil {
		if err := s.cache.SetGroupEvents(context.WithoutCancel(ctx), groupID, events); err == nil {
			return
		}
	}
	s.invalidate(ctx, groupID)
}

func (s *EventService) notify(ctx context.Context, event *entity.Event, actorID uuid.UUID, action string) {
	if s.queue == nil {
		return
	}
	payload := notificationdto.EventChangedPayload{
		EventID: event.ID,
		GroupID: event.GroupID,
		ActorID: actorID,
		Action:  action,
		Name:    event.Name,
	}
	if err := s.queue.Enqueue(context.WithoutCancel(ctx), constants.TaskEventChanged, payload); err != nil {
		logger.Error("EventService:Enqueue", "type", constants.TaskEventChanged, "error", err)
	}
}
