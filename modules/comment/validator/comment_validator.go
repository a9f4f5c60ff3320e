package validator

import (
	"group-scheduler/core/validator"
	"group-scheduler/modules/comment/dto"
)

const maxMessageLength = 2000

func ValidateCreateCommentRequest(req *dto.CreateCommentRequest) *validator.ValidationResult {
	result := validator.NewValidationResult()
	result.Required("message", req.Message)
	result.MaxLength("message", req.Message, maxMessageLength)
	return result
}
