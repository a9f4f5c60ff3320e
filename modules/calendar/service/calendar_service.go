package service

import (
	"context"
	"time"

	"group-scheduler/core/constants"
	"group-scheduler/core/errors"
	"group-scheduler/modules/calendar/dto"
	"group-scheduler/modules/calendar/entity"
	"group-scheduler/modules/calendar/mapper"
	"group-scheduler/modules/calendar/repository"

	"github.com/google/uuid"
)

// MemberLister resolves the current members of a group in joined order.
type MemberLister interface {
	GetMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, *errors.AppError)
}

type CalendarServiceInterface interface {
	GetCalendars(ctx context.Context) ([]dto.CalendarResponse, *errors.AppError)
	GetCalendarByID(ctx context.Context, id uuid.UUID) (*dto.CalendarResponse, *errors.AppError)
	GetCalendarByUserID(ctx context.Context, userID uuid.UUID) (*dto.CalendarResponse, *errors.AppError)
	UpsertCalendar(ctx context.Context, userID uuid.UUID, req *dto.CalendarRequest) (*dto.CalendarResponse, *errors.AppError)
	UpdateCalendar(ctx context.Context, userID uuid.UUID, req *dto.CalendarRequest) (*dto.CalendarResponse, *errors.AppError)
	DeleteCalendar(ctx context.Context, id, requesterID uuid.UUID) *errors.AppError
	AggregateForGroup(ctx context.Context, groupID uuid.UUID) (*dto.CalendarResponse, *errors.AppError)
	ExportGroupICS(ctx context.Context, groupID uuid.UUID) ([]byte, *errors.AppError)
}

type CalendarService struct {
	repo    repository.CalendarRepositoryInterface
	members MemberLister
	now     func() time.Time
}

func NewCalendarService(repo repository.CalendarRepositoryInterface, members MemberLister) *CalendarService {
	return &CalendarService{
		repo:    repo,
		members: members,
		now:     time.Now,
	}
}

func calendarNotFound() *errors.AppError {
	return errors.NewAppError(errors.ErrNotFound, "calendar not found", nil)
}

func (s *CalendarService) GetCalendars(ctx context.Context) ([]dto.CalendarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	cals, err := s.repo.GetCalendars(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get calendars failed", err)
	}
	return mapper.ToCalendarResponses(cals), nil
}

func (s *CalendarService) GetCalendarByID(ctx context.Context, id uuid.UUID) (*dto.CalendarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	cal, err := s.repo.GetCalendarByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get calendar failed", err)
	}
	if cal == nil {
		return nil, calendarNotFound()
	}
	return mapper.ToCalendarResponse(cal), nil
}

func (s *CalendarService) GetCalendarByUserID(ctx context.Context, userID uuid.UUID) (*dto.CalendarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	cal, err := s.repo.GetCalendarByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get calendar failed", err)
	}
	if cal == nil {
		return nil, calendarNotFound()
	}
	return mapper.ToCalendarResponse(cal), nil
}

// UpsertCalendar replaces the user's recurring blocks and exceptions in full,
// creating the calendar on first use.
func (s *CalendarService) UpsertCalendar(ctx context.Context, userID uuid.UUID, req *dto.CalendarRequest) (*dto.CalendarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if !exists {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	cal := &entity.Calendar{
		UserID:     userID,
		Blocks:     mapper.ToBlocks(req.RecurringBlocks),
		Exceptions: mapper.ToExceptions(req.Exceptions),
	}
	cal.ID = uuid.New()

	saved, err := s.repo.UpsertCalendar(ctx, cal)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "save calendar failed", err)
	}
	return mapper.ToCalendarResponse(saved), nil
}

// UpdateCalendar is UpsertCalendar for a calendar that must already exist.
func (s *CalendarService) UpdateCalendar(ctx context.Context, userID uuid.UUID, req *dto.CalendarRequest) (*dto.CalendarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	saved, err := s.repo.ReplaceCalendar(ctx, &entity.Calendar{
		UserID:     userID,
		Blocks:     mapper.ToBlocks(req.RecurringBlocks),
		Exceptions: mapper.ToExceptions(req.Exceptions),
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update calendar failed", err)
	}
	if saved == nil {
		return nil, calendarNotFound()
	}
	return mapper.ToCalendarResponse(saved), nil
}

func (s *CalendarService) DeleteCalendar(ctx context.Context, id, requesterID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	cal, err := s.repo.GetCalendarByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get calendar failed", err)
	}
	if cal == nil {
		return calendarNotFound()
	}
	if cal.UserID != requesterID {
		return errors.NewAppError(errors.ErrForbidden, "only the owner can delete this calendar", nil)
	}

	if err := s.repo.DeleteCalendar(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete calendar failed", err)
	}
	return nil
}

// AggregateForGroup combines every member's blocks and exceptions into one
// view. The result is a union, not the members' common free time; identical
// entries declared by several members appear once.
func (s *CalendarService) AggregateForGroup(ctx context.Context, groupID uuid.UUID) (*dto.CalendarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	blocks, exceptions, appErr := s.aggregate(ctx, groupID)
	if appErr != nil {
		return nil, appErr
	}
	return &dto.CalendarResponse{
		RecurringBlocks: mapper.ToBlockDtos(blocks),
		Exceptions:      mapper.ToExceptionDtos(exceptions),
	}, nil
}

func (s *CalendarService) aggregate(ctx context.Context, groupID uuid.UUID) (entity.RecurringBlocks, entity.Exceptions, *errors.AppError) {
	memberIDs, appErr := s.members.GetMemberIDs(ctx, groupID)
	if appErr != nil {
		return nil, nil, appErr
	}

	cals, err := s.repo.GetCalendarsByUserIDs(ctx, memberIDs)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrGetFailed, "get member calendars failed", err)
	}

	blocks, exceptions := Union(cals)
	return blocks, exceptions, nil
}

// Union flattens the calendars' entries in order, dropping exact duplicates.
func Union(cals []entity.Calendar) (entity.RecurringBlocks, entity.Exceptions) {
	blocks := entity.RecurringBlocks{}
	exceptions := entity.Exceptions{}
	seenBlocks := map[entity.RecurringBlock]struct{}{}
	seenExceptions := map[entity.Exception]struct{}{}

	for _, cal := range cals {
		for _, b := range cal.Blocks {
			if _, ok := seenBlocks[b]; ok {
				continue
			}
			seenBlocks[b] = struct{}{}
			blocks = append(blocks, b)
		}
		for _, e := range cal.Exceptions {
			if _, ok := seenExceptions[e]; ok {
				continue
			}
			seenExceptions[e] = struct{}{}
			exceptions = append(exceptions, e)
		}
	}
	return blocks, exceptions
}

func (s *CalendarService) ExportGroupICS(ctx context.Context, groupID uuid.UUID) ([]byte, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	blocks, exceptions, appErr := s.aggregate(ctx, groupID)
	if appErr != nil {
		return nil, appErr
	}

	body, err := BuildICS(groupID, blocks, exceptions, s.now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "export calendar failed", err)
	}
	return body, nil
}
