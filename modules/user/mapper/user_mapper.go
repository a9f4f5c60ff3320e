package mapper

import (
	"strings"
	"time"

	"group-scheduler/core/constants"
	"group-scheduler/modules/user/dto"
	"group-scheduler/modules/user/entity"
)

func parseDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	t, err := time.Parse(constants.DateLayout, *value)
	if err != nil {
		return nil
	}
	return &t
}

func ToUserEntity(req *dto.CreateUserRequest) *entity.User {
	return &entity.User{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		BirthDate: parseDate(req.BirthDate),
	}
}

func ApplyUpdateRequest(user *entity.User, req *dto.UpdateUserRequest) {
	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.PhotoURL = req.PhotoURL
	user.BirthDate = parseDate(req.BirthDate)
}

func ToUserResponse(user *entity.User) *dto.UserResponse {
	var birthDate *string
	if user.BirthDate != nil {
		formatted := user.BirthDate.Format(constants.DateLayout)
		birthDate = &formatted
	}
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		PhotoURL:  user.PhotoURL,
		BirthDate: birthDate,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func ToUserResponses(users []entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *ToUserResponse(&users[i]))
	}
	return out
}
