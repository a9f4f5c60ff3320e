package validator

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"group-scheduler/core/constants"
	"group-scheduler/core/validator"
	"group-scheduler/modules/calendar/dto"
	"group-scheduler/modules/calendar/entity"
)

func ValidateCalendarRequest(req *dto.CalendarRequest) *validator.ValidationResult {
	result := validator.NewValidationResult()

	for i, b := range req.RecurringBlocks {
		field := fmt.Sprintf("recurring_blocks[%d]", i)
		if !slices.Contains(entity.Weekdays, strings.ToUpper(strings.TrimSpace(b.Weekday))) {
			result.AddError(field+".weekday", "weekday must be one of MONDAY..SUNDAY")
		}
		start, errStart := time.Parse(constants.TimeLayout, b.StartTime)
		end, errEnd := time.Parse(constants.TimeLayout, b.EndTime)
		if errStart != nil {
			result.AddError(field+".start_time", "start_time must be HH:MM")
		}
		if errEnd != nil {
			result.AddError(field+".end_time", "end_time must be HH:MM")
		}
		if errStart == nil && errEnd == nil && !start.Before(end) {
			result.AddError(field, "start_time must be before end_time")
		}
	}

	for i, e := range req.Exceptions {
		field := fmt.Sprintf("exceptions[%d]", i)
		start, errStart := time.Parse(constants.DateLayout, e.StartDate)
		end, errEnd := time.Parse(constants.DateLayout, e.EndDate)
		if errStart != nil {
			result.AddError(field+".start_date", "start_date must be YYYY-MM-DD")
		}
		if errEnd != nil {
			result.AddError(field+".end_date", "end_date must be YYYY-MM-DD")
		}
		if errStart == nil && errEnd == nil && end.Before(start) {
			result.AddError(field, "start_date must not be after end_date")
		}
	}

	return result
}
