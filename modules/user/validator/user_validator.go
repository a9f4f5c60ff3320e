package validator

import (
	"group-scheduler/core/constants"
	"group-scheduler/core/validator"
	"group-scheduler/modules/user/dto"
)

const maxNameLength = 100

func ValidateCreateUserRequest(req *dto.CreateUserRequest) *validator.ValidationResult {
	result := validator.NewValidationResult()
	result.Required("email", req.Email)
	result.Email("email", req.Email)
	result.MaxLength("first_name", req.FirstName, maxNameLength)
	result.MaxLength("last_name", req.LastName, maxNameLength)
	if req.BirthDate != nil {
		result.Layout("birth_date", *req.BirthDate, constants.DateLayout)
	}
	return result
}

func ValidateUpdateUserRequest(req *dto.UpdateUserRequest) *validator.ValidationResult {
	result := validator.NewValidationResult()
	result.MaxLength("first_name", req.FirstName, maxNameLength)
	result.MaxLength("last_name", req.LastName, maxNameLength)
	if req.BirthDate != nil {
		result.Layout("birth_date", *req.BirthDate, constants.DateLayout)
	}
	return result
}
