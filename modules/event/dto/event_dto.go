package dto

import (
	"time"

	"github.com/google/uuid"
)

type EventRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
	// Times must be present; an empty list is allowed.
	Times            *[]string `json:"times"`
	DurationMinutes  *int      `json:"duration_minutes,omitempty"`
	Location         string    `json:"location"`
	ImageURL         *string   `json:"image_url,omitempty"`
	Type             string    `json:"type"`
	IsTimeChangePoll bool      `json:"is_time_change_poll"`
}

type EventResponse struct {
	ID               uuid.UUID   `json:"id"`
	GroupID          uuid.UUID   `json:"group_id"`
	CreatorID        uuid.UUID   `json:"creator_id"`
	Name             string      `json:"name"`
	Date             string      `json:"date"`
	Times            []string    `json:"times"`
	DurationMinutes  *int        `json:"duration_minutes,omitempty"`
	Location         string      `json:"location"`
	ImageURL         *string     `json:"image_url,omitempty"`
	Type             string      `json:"type"`
	IsTimeChangePoll bool        `json:"is_time_change_poll"`
	SignedUpUserIDs  []uuid.UUID `json:"signed_up_user_ids"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
