package validator

import (
	"fmt"

	"group-scheduler/core/constants"
	"group-scheduler/core/validator"
	"group-scheduler/modules/event/dto"
)

const (
	maxNameLength     = 200
	maxLocationLength = 500
	maxTypeLength     = 100
)

func ValidateEventRequest(req *dto.EventRequest) *validator.ValidationResult {
	result := validator.NewValidationResult()

	result.Required("name", req.Name)
	result.MaxLength("name", req.Name, maxNameLength)

	result.Required("date", req.Date)
	result.Layout("date", req.Date, constants.DateLayout)

	if req.Times == nil {
		result.AddError("times", "times is required")
	} else {
		for i, t := range *req.Times {
			field := fmt.Sprintf("times[%d]", i)
			result.Required(field, t)
			result.Layout(field, t, constants.TimeLayout)
		}
	}

	if req.DurationMinutes != nil && *req.DurationMinutes < 0 {
		result.AddError("duration_minutes", "duration_minutes must not be negative")
	}

	result.Required("location", req.Location)
	result.MaxLength("location", req.Location, maxLocationLength)
	result.Required("type", req.Type)
	result.MaxLength("type", req.Type, maxTypeLength)

	return result
}
