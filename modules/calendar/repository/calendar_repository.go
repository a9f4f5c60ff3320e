package repository

import (
	"context"
	"database/sql"
	"errors"

	"group-scheduler/core/database"
	"group-scheduler/core/logger"
	"group-scheduler/modules/calendar/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CalendarRepositoryInterface interface {
	UpsertCalendar(ctx context.Context, cal *entity.Calendar) (*entity.Calendar, error)
	ReplaceCalendar(ctx context.Context, cal *entity.Calendar) (*entity.Calendar, error)
	GetCalendarByID(ctx context.Context, id uuid.UUID) (*entity.Calendar, error)
	GetCalendarByUserID(ctx context.Context, userID uuid.UUID) (*entity.Calendar, error)
	GetCalendarsByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]entity.Calendar, error)
	GetCalendars(ctx context.Context) ([]entity.Calendar, error)
	DeleteCalendar(ctx context.Context, id uuid.UUID) error
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
}

type CalendarRepository struct {
	DB database.IDatabase
}

func NewCalendarRepository(db database.IDatabase) *CalendarRepository {
	return &CalendarRepository{DB: db}
}

const calendarColumns = `id, user_id, blocks, exceptions, created_at, updated_at`

// UpsertCalendar stores the user's calendar, replacing both collections when
// one already exists.
func (r *CalendarRepository) UpsertCalendar(ctx context.Context, cal *entity.Calendar) (*entity.Calendar, error) {
	query := `
		INSERT INTO calendars (id, user_id, blocks, exceptions)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET blocks = EXCLUDED.blocks, exceptions = EXCLUDED.exceptions, updated_at = NOW()
		RETURNING ` + calendarColumns

	var saved entity.Calendar
	if err := r.DB.GetContext(ctx, &saved, query, cal.ID, cal.UserID, cal.Blocks, cal.Exceptions); err != nil {
		logger.Error("CalendarRepository:UpsertCalendar", "error", err)
		return nil, err
	}
	return &saved, nil
}

// ReplaceCalendar overwrites an existing calendar and returns nil when the user
// has none.
func (r *CalendarRepository) ReplaceCalendar(ctx context.Context, cal *entity.Calendar) (*entity.Calendar, error) {
	query := `
		UPDATE calendars
		SET blocks = $1, exceptions = $2, updated_at = NOW()
		WHERE user_id = $3
		RETURNING ` + calendarColumns

	var saved entity.Calendar
	if err := r.DB.GetContext(ctx, &saved, query, cal.Blocks, cal.Exceptions, cal.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CalendarRepository:ReplaceCalendar", "error", err)
		return nil, err
	}
	return &saved, nil
}

func (r *CalendarRepository) getOne(ctx context.Context, query string, arg any) (*entity.Calendar, error) {
	var cal entity.Calendar
	if err := r.DB.GetContext(ctx, &cal, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CalendarRepository:getOne", "error", err)
		return nil, err
	}
	return &cal, nil
}

func (r *CalendarRepository) GetCalendarByID(ctx context.Context, id uuid.UUID) (*entity.Calendar, error) {
	return r.getOne(ctx, `SELECT `+calendarColumns+` FROM calendars WHERE id = $1`, id)
}

func (r *CalendarRepository) GetCalendarByUserID(ctx context.Context, userID uuid.UUID) (*entity.Calendar, error) {
	return r.getOne(ctx, `SELECT `+calendarColumns+` FROM calendars WHERE user_id = $1`, userID)
}

// GetCalendarsByUserIDs returns the calendars of the given users in the order
// of userIDs. Users without a calendar are skipped.
func (r *CalendarRepository) GetCalendarsByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]entity.Calendar, error) {
	if len(userIDs) == 0 {
		return []entity.Calendar{}, nil
	}

	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT c.id, c.user_id, c.blocks, c.exceptions, c.created_at, c.updated_at
		FROM calendars c
		JOIN unnest($1::uuid[]) WITH ORDINALITY AS m(user_id, ord) ON m.user_id = c.user_id
		ORDER BY m.ord
	`
	cals := []entity.Calendar{}
	if err := r.DB.SelectContext(ctx, &cals, query, pq.StringArray(ids)); err != nil {
		logger.Error("CalendarRepository:GetCalendarsByUserIDs", "error", err)
		return nil, err
	}
	return cals, nil
}

func (r *CalendarRepository) GetCalendars(ctx context.Context) ([]entity.Calendar, error) {
	cals := []entity.Calendar{}
	if err := r.DB.SelectContext(ctx, &cals, `SELECT `+calendarColumns+` FROM calendars ORDER BY created_at, id`); err != nil {
		logger.Error("CalendarRepository:GetCalendars", "error", err)
		return nil, err
	}
	return cals, nil
}

func (r *CalendarRepository) DeleteCalendar(ctx context.Context, id uuid.UUID) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM calendars WHERE id = $1`, id); err != nil {
		logger.Error("CalendarRepository:DeleteCalendar", "error", err)
		return err
	}
	return nil
}

func (r *CalendarRepository) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID)
	return exists, err
}
