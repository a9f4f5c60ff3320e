package entity

import (
	"slices"
	"time"

	"group-scheduler/core/entity"

	"github.com/google/uuid"
)

type Group struct {
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	CreatorID   uuid.UUID `db:"creator_id"`

	// MemberIDs is filled by the service, in joined order.
	MemberIDs []uuid.UUID `db:"-"`

	entity.BaseEntity
}

// IsMember reports whether userID is in the loaded member set.
func (g *Group) IsMember(userID uuid.UUID) bool {
	return slices.Contains(g.MemberIDs, userID)
}

func (g *Group) IsCreator(userID uuid.UUID) bool {
	return g.CreatorID == userID
}

type Member struct {
	UserID    uuid.UUID `db:"user_id"`
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	PhotoURL  *string   `db:"photo_url"`
	JoinedAt  time.Time `db:"joined_at"`
}

type PaginatedGroups = entity.Pagination[Group]
