package dto

import "github.com/google/uuid"

// Event change actions carried by EventChangedPayload.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

type GroupCreatedPayload struct {
	GroupID   uuid.UUID `json:"group_id"`
	CreatorID uuid.UUID `json:"creator_id"`
	Name      string    `json:"name"`
}

type EventChangedPayload struct {
	EventID uuid.UUID `json:"event_id"`
	GroupID uuid.UUID `json:"group_id"`
	ActorID uuid.UUID `json:"actor_id"`
	Action  string    `json:"action"`
	Name    string    `json:"name"`
}

type CommentCreatedPayload struct {
	CommentID uuid.UUID `json:"comment_id"`
	EventID   uuid.UUID `json:"event_id"`
	GroupID   uuid.UUID `json:"group_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Message   string    `json:"message"`
}
