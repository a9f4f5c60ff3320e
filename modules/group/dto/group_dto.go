package dto

import (
	"time"

	"group-scheduler/core/dto"
	calendardto "group-scheduler/modules/calendar/dto"

	"github.com/google/uuid"
)

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// CreatorID is only read when the request carries no bearer token.
	CreatorID *uuid.UUID `json:"creator_id,omitempty"`
}

type UpdateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GroupResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	CreatorID   uuid.UUID   `json:"creator_id"`
	MemberIDs   []uuid.UUID `json:"member_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// GroupDetailResponse is a group together with its aggregated calendar.
type GroupDetailResponse struct {
	GroupResponse
	Calendar *calendardto.CalendarResponse `json:"calendar"`
}

type MemberResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	IsCreator bool      `json:"is_creator"`
	JoinedAt  time.Time `json:"joined_at"`
}

type PaginatedGroupResponse = dto.Pagination[GroupResponse]
