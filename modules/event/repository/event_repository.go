package repository

import (
	"context"
	"database/sql"
	"errors"

	"group-scheduler/core/database"
	"group-scheduler/core/logger"
	"group-scheduler/modules/event/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	SoftDeleteEvent(ctx context.Context, id uuid.UUID) (bool, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventByIDForShare(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventsByGroupID(ctx context.Context, groupID uuid.UUID) ([]entity.Event, error)

	AddSignup(ctx context.Context, eventID, userID uuid.UUID) error
	RemoveSignup(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	GetSignedUpUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
	GetSignedUpUserIDsByEventIDs(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}

type EventRepository struct {
	DB database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

const eventColumns = `id, group_id, creator_id, name, date, times, duration_minutes, location,
	image_url, type, is_time_change_poll, deleted, created_at, updated_at`

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (id, group_id, creator_id, name, date, times, duration_minutes,
			location, image_url, type, is_time_change_poll)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.ID, event.GroupID, event.CreatorID, event.Name, event.Date, event.Times,
		event.DurationMinutes, event.Location, event.ImageURL, event.Type, event.IsTimeChangePoll)
	if err != nil {
		logger.Error("EventRepository:CreateEvent", "error", err)
		return nil, err
	}
	return &created, nil
}

// UpdateEvent overwrites the mutable fields of a live event. It returns nil
// when the event is missing or already deleted.
func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		UPDATE events
		SET name = $1, date = $2, times = $3, duration_minutes = $4, location = $5,
			image_url = $6, type = $7, is_time_change_poll = $8, updated_at = NOW()
		WHERE id = $9 AND deleted = FALSE
		RETURNING ` + eventColumns

	var updated entity.Event
	err := r.DB.GetContext(ctx, &updated, query,
		event.Name, event.Date, event.Times, event.DurationMinutes, event.Location,
		event.ImageURL, event.Type, event.IsTimeChangePoll, event.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:UpdateEvent", "error", err)
		return nil, err
	}
	return &updated, nil
}

// SoftDeleteEvent reports whether a live event was marked deleted.
func (r *EventRepository) SoftDeleteEvent(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE events SET deleted = TRUE, updated_at = NOW() WHERE id = $1 AND deleted = FALSE`, id)
	if err != nil {
		logger.Error("EventRepository:SoftDeleteEvent", "error", err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *EventRepository) getEvent(ctx context.Context, query string, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	if err := r.DB.GetContext(ctx, &event, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:getEvent", "error", err)
		return nil, err
	}
	return &event, nil
}

// GetEventByID never returns soft-deleted events.
func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.getEvent(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 AND deleted = FALSE`, id)
}

// GetEventByIDForShare locks the live event row so a concurrent delete waits
// for the caller's transaction.
func (r *EventRepository) GetEventByIDForShare(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.getEvent(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 AND deleted = FALSE FOR SHARE`, id)
}

func (r *EventRepository) GetEventsByGroupID(ctx context.Context, groupID uuid.UUID) ([]entity.Event, error) {
	events := []entity.Event{}
	err := r.DB.SelectContext(ctx, &events,
		`SELECT `+eventColumns+` FROM events WHERE group_id = $1 AND deleted = FALSE ORDER BY date, created_at, id`, groupID)
	if err != nil {
		logger.Error("EventRepository:GetEventsByGroupID", "error", err)
		return nil, err
	}
	return events, nil
}

// AddSignup is idempotent.
func (r *EventRepository) AddSignup(ctx context.Context, eventID, userID uuid.UUID) error {
	query := `
		INSERT INTO event_signups (event_id, user_id, signed_up_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	if _, err := r.DB.ExecContext(ctx, query, eventID, userID); err != nil {
		logger.Error("EventRepository:AddSignup", "error", err)
		return err
	}
	return nil
}

// RemoveSignup reports whether the user was signed up.
func (r *EventRepository) RemoveSignup(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM event_signups WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		logger.Error("EventRepository:RemoveSignup", "error", err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *EventRepository) GetSignedUpUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.DB.SelectContext(ctx, &ids,
		`SELECT user_id FROM event_signups WHERE event_id = $1 ORDER BY signed_up_at, user_id`, eventID)
	if err != nil {
		logger.Error("EventRepository:GetSignedUpUserIDs", "error", err)
		return nil, err
	}
	return ids, nil
}

func (r *EventRepository) GetSignedUpUserIDsByEventIDs(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	result := make(map[uuid.UUID][]uuid.UUID, len(eventIDs))
	if len(eventIDs) == 0 {
		return result, nil
	}

	ids := make([]string, len(eventIDs))
	for i, id := range eventIDs {
		ids[i] = id.String()
	}

	var rows []struct {
		EventID uuid.UUID `db:"event_id"`
		UserID  uuid.UUID `db:"user_id"`
	}
	err := r.DB.SelectContext(ctx, &rows, `
		SELECT event_id, user_id
		FROM event_signups
		WHERE event_id = ANY($1::uuid[])
		ORDER BY signed_up_at, user_id`, pq.StringArray(ids))
	if err != nil {
		logger.Error("EventRepository:GetSignedUpUserIDsByEventIDs", "error", err)
		return nil, err
	}

	for _, row := range rows {
		result[row.EventID] = append(result[row.EventID], row.UserID)
	}
	return result, nil
}
