package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"group-scheduler/core/entity"

	"github.com/google/uuid"
)

// Weekdays in ISO order.
var Weekdays = []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

// RecurringBlock is a weekly availability interval. Times are HH:MM.
type RecurringBlock struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Exception overrides recurring blocks for an inclusive date range.
// Dates are YYYY-MM-DD.
type Exception struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

type RecurringBlocks []RecurringBlock

type Exceptions []Exception

type Calendar struct {
	UserID     uuid.UUID       `db:"user_id"`
	Blocks     RecurringBlocks `db:"blocks"`
	Exceptions Exceptions      `db:"exceptions"`
	entity.BaseEntity
}

func (b RecurringBlocks) Value() (driver.Value, error) {
	if b == nil {
		b = RecurringBlocks{}
	}
	return json.Marshal(b)
}

func (b *RecurringBlocks) Scan(value any) error {
	return scanJSON(value, b)
}

func (e Exceptions) Value() (driver.Value, error) {
	if e == nil {
		e = Exceptions{}
	}
	return json.Marshal(e)
}

func (e *Exceptions) Scan(value any) error {
	return scanJSON(value, e)
}

func scanJSON(value any, dest any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("type assertion to []byte failed")
	}
}
