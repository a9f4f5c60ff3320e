package entity

import (
	"time"

	"group-scheduler/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Event struct {
	GroupID          uuid.UUID      `db:"group_id"`
	CreatorID        uuid.UUID      `db:"creator_id"`
	Name             string         `db:"name"`
	Date             time.Time      `db:"date"`
	Times            pq.StringArray `db:"times"`
	DurationMinutes  *int           `db:"duration_minutes"`
	Location         string         `db:"location"`
	ImageURL         *string        `db:"image_url"`
	Type             string         `db:"type"`
	IsTimeChangePoll bool           `db:"is_time_change_poll"`
	Deleted          bool           `db:"deleted"`

	// SignedUpUserIDs is filled by the service in sign-up order.
	SignedUpUserIDs []uuid.UUID `db:"-"`

	entity.BaseEntity
}

// BelongsTo reports whether the event lives in groupID.
func (e *Event) BelongsTo(groupID uuid.UUID) bool {
	return e.GroupID == groupID
}
