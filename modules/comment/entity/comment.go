package entity

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `db:"id"`
	EventID   uuid.UUID `db:"event_id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Message   string    `db:"message"`
	Deleted   bool      `db:"deleted"`
	CreatedAt time.Time `db:"created_at"`
}
