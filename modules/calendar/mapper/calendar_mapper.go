package mapper

import (
	"strings"

	"group-scheduler/modules/calendar/dto"
	"group-scheduler/modules/calendar/entity"
)

func ToBlocks(items []dto.RecurringBlockDto) entity.RecurringBlocks {
	blocks := make(entity.RecurringBlocks, len(items))
	for i, b := range items {
		blocks[i] = entity.RecurringBlock{
			Weekday:   strings.ToUpper(strings.TrimSpace(b.Weekday)),
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		}
	}
	return blocks
}

func ToExceptions(items []dto.ExceptionDto) entity.Exceptions {
	exceptions := make(entity.Exceptions, len(items))
	for i, e := range items {
		exceptions[i] = entity.Exception{
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			Available: e.Available,
		}
	}
	return exceptions
}

func ToBlockDtos(blocks entity.RecurringBlocks) []dto.RecurringBlockDto {
	items := make([]dto.RecurringBlockDto, len(blocks))
	for i, b := range blocks {
		items[i] = dto.RecurringBlockDto(b)
	}
	return items
}

func ToExceptionDtos(exceptions entity.Exceptions) []dto.ExceptionDto {
	items := make([]dto.ExceptionDto, len(exceptions))
	for i, e := range exceptions {
		items[i] = dto.ExceptionDto(e)
	}
	return items
}

func ToCalendarResponse(cal *entity.Calendar) *dto.CalendarResponse {
	id, userID := cal.ID, cal.UserID
	createdAt, updatedAt := cal.CreatedAt, cal.UpdatedAt
	return &dto.CalendarResponse{
		ID:              &id,
		UserID:          &userID,
		RecurringBlocks: ToBlockDtos(cal.Blocks),
		Exceptions:      ToExceptionDtos(cal.Exceptions),
		CreatedAt:       &createdAt,
		UpdatedAt:       &updatedAt,
	}
}

func ToCalendarResponses(cals []entity.Calendar) []dto.CalendarResponse {
	responses := make([]dto.CalendarResponse, len(cals))
	for i := range cals {
		responses[i] = *ToCalendarResponse(&cals[i])
	}
	return responses
}
