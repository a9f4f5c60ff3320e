package validator

import (
	"group-scheduler/core/validator"
	"group-scheduler/modules/group/dto"
)

const (
	maxNameLength        = 120
	maxDescriptionLength = 1000
)

func ValidateCreateGroupRequest(req *dto.CreateGroupRequest) *validator.ValidationResult {
	result := validator.NewValidationResult()
	result.Required("name", req.Name)
	result.MaxLength("name", req.Name, maxNameLength)
	result.Required("description", req.Description)
	result.MaxLength("description", req.Description, maxDescriptionLength)
	return result
}

func ValidateUpdateGroupRequest(req *dto.UpdateGroupRequest) *validator.ValidationResult {
	result := validator.NewValidationResult()
	result.Required("name", req.Name)
	result.MaxLength("name", req.Name, maxNameLength)
	result.Required("description", req.Description)
	result.MaxLength("description", req.Description, maxDescriptionLength)
	return result
}
