package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"group-scheduler/core/entity"

	"github.com/google/uuid"
)

type Notification struct {
	UserID  uuid.UUID `db:"user_id" json:"user_id"`
	Entity  string    `db:"entity" json:"entity"`
	Type    string    `db:"type" json:"type"`
	Title   string    `db:"title" json:"title"`
	Message string    `db:"message" json:"message"`
	Data    JSONB     `db:"data" json:"data"`
	IsRead  bool      `db:"is_read" json:"is_read"`
	entity.BaseEntity
}

type JSONB map[string]any

// ToJSONB converts any JSON-encodable value into a JSONB object.
func ToJSONB(v any) (JSONB, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := JSONB{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a JSONB) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *JSONB) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*a = JSONB{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported JSONB source %T", value)
	}
}

type PaginatedNotifications = entity.Pagination[Notification]
