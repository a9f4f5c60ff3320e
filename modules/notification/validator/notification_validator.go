package validator

import (
	"fmt"

	"group-scheduler/core/validator"
	"group-scheduler/modules/notification/dto"

	"github.com/google/uuid"
)

func ValidateMarkAsReadRequest(req *dto.MarkAsReadRequest) *validator.ValidationResult {
	result := validator.NewValidationResult()
	if len(req.IDs) == 0 {
		result.AddError("ids", "ids is required")
		return result
	}
	for i, id := range req.IDs {
		if _, err := uuid.Parse(id); err != nil {
			result.AddError(fmt.Sprintf("ids[%d]", i), "must be a valid id")
		}
	}
	return result
}
