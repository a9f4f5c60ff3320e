package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Message string `json:"message"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
