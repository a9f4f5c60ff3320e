package dto

import (
	"time"

	"github.com/google/uuid"
)

type RecurringBlockDto struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ExceptionDto struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

type CalendarRequest struct {
	RecurringBlocks []RecurringBlockDto `json:"recurring_blocks"`
	Exceptions      []ExceptionDto      `json:"exceptions"`
}

// CalendarResponse has nil ID and UserID when it is an aggregated view.
type CalendarResponse struct {
	ID              *uuid.UUID          `json:"id"`
	UserID          *uuid.UUID          `json:"user_id"`
	RecurringBlocks []RecurringBlockDto `json:"recurring_blocks"`
	Exceptions      []ExceptionDto      `json:"exceptions"`
	CreatedAt       *time.Time          `json:"created_at,omitempty"`
	UpdatedAt       *time.Time          `json:"updated_at,omitempty"`
}
