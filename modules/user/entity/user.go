package entity

import (
	"time"

	"group-scheduler/core/entity"
)

type User struct {
	Email     string     `db:"email"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	PhotoURL  *string    `db:"photo_url"`
	BirthDate *time.Time `db:"birth_date"`

	entity.BaseEntity
}
