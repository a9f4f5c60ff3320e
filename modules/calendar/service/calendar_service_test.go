package service

import (
	"context"
	"testing"
	"time"

	"group-scheduler/core/errors"
	"group-scheduler/modules/calendar/dto"
	"group-scheduler/modules/calendar/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalendarRepo struct {
	users     map[uuid.UUID]bool
	calendars map[uuid.UUID]*entity.Calendar
}

func newFakeCalendarRepo(users ...uuid.UUID) *fakeCalendarRepo {
	repo := &fakeCalendarRepo{users: map[uuid.UUID]bool{}, calendars: map[uuid.UUID]*entity.Calendar{}}
	for _, u := range users {
		repo.users[u] = true
	}
	return repo
}

func (r *fakeCalendarRepo) byUser(userID uuid.UUID) *entity.Calendar {
	for _, c := range r.calendars {
		if c.UserID == userID {
			return c
		}
	}
	return nil
}

func (r *fakeCalendarRepo) UpsertCalendar(_ context.Context, cal *entity.Calendar) (*entity.Calendar, error) {
	if existing := r.byUser(cal.UserID); existing != nil {
		existing.Blocks, existing.Exceptions = cal.Blocks, cal.Exceptions
		out := *existing
		return &out, nil
	}
	stored := *cal
	stored.CreatedAt = time.Now()
	r.calendars[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeCalendarRepo) ReplaceCalendar(_ context.Context, cal *entity.Calendar) (*entity.Calendar, error) {
	existing := r.byUser(cal.UserID)
	if existing == nil {
		return nil, nil
	}
	existing.Blocks, existing.Exceptions = cal.Blocks, cal.Exceptions
	out := *existing
	return &out, nil
}

func (r *fakeCalendarRepo) GetCalendarByID(_ context.Context, id uuid.UUID) (*entity.Calendar, error) {
	c, ok := r.calendars[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *fakeCalendarRepo) GetCalendarByUserID(_ context.Context, userID uuid.UUID) (*entity.Calendar, error) {
	c := r.byUser(userID)
	if c == nil {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *fakeCalendarRepo) GetCalendarsByUserIDs(_ context.Context, userIDs []uuid.UUID) ([]entity.Calendar, error) {
	out := []entity.Calendar{}
	for _, id := range userIDs {
		if c := r.byUser(id); c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCalendarRepo) GetCalendars(_ context.Context) ([]entity.Calendar, error) {
	out := []entity.Calendar{}
	for _, c := range r.calendars {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCalendarRepo) DeleteCalendar(_ context.Context, id uuid.UUID) error {
	delete(r.calendars, id)
	return nil
}

func (r *fakeCalendarRepo) UserExists(_ context.Context, userID uuid.UUID) (bool, error) {
	return r.users[userID], nil
}

type fakeMembers map[uuid.UUID][]uuid.UUID

func (m fakeMembers) GetMemberIDs(_ context.Context, groupID uuid.UUID) ([]uuid.UUID, *errors.AppError) {
	ids, ok := m[groupID]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}
	return ids, nil
}

func block(day, start, end string) dto.RecurringBlockDto {
	return dto.RecurringBlockDto{Weekday: day, StartTime: start, EndTime: end}
}

func TestAggregateForGroupIsUnion(t *testing.T) {
	u1, u2, u3 := uuid.New(), uuid.New(), uuid.New()
	groupID := uuid.New()
	repo := newFakeCalendarRepo(u1, u2, u3)
	svc := NewCalendarService(repo, fakeMembers{groupID: {u1, u2, u3}})
	ctx := context.Background()

	_, appErr := svc.UpsertCalendar(ctx, u1, &dto.CalendarRequest{
		RecurringBlocks: []dto.RecurringBlockDto{block("MONDAY", "09:00", "10:00")},
		Exceptions:      []dto.ExceptionDto{{StartDate: "2024-07-01", EndDate: "2024-07-10", Available: false}},
	})
	require.Nil(t, appErr)
	_, appErr = svc.UpsertCalendar(ctx, u2, &dto.CalendarRequest{
		RecurringBlocks: []dto.RecurringBlockDto{block("TUESDAY", "14:00", "15:00"), block("MONDAY", "09:00", "10:00")},
	})
	require.Nil(t, appErr)
	// u3 has no calendar and is skipped.

	agg, appErr := svc.AggregateForGroup(ctx, groupID)
	require.Nil(t, appErr)
	assert.Nil(t, agg.ID)
	assert.Nil(t, agg.UserID)
	assert.Equal(t, []dto.RecurringBlockDto{
		block("MONDAY", "09:00", "10:00"),
		block("TUESDAY", "14:00", "15:00"),
	}, agg.RecurringBlocks)
	assert.Equal(t, []dto.ExceptionDto{{StartDate: "2024-07-01", EndDate: "2024-07-10", Available: false}}, agg.Exceptions)
}

func TestAggregateForMissingGroup(t *testing.T) {
	svc := NewCalendarService(newFakeCalendarRepo(), fakeMembers{})

	_, appErr := svc.AggregateForGroup(context.Background(), uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestAggregateForGroupWithoutCalendars(t *testing.T) {
	groupID := uuid.New()
	svc := NewCalendarService(newFakeCalendarRepo(), fakeMembers{groupID: {uuid.New()}})

	agg, appErr := svc.AggregateForGroup(context.Background(), groupID)
	require.Nil(t, appErr)
	assert.Empty(t, agg.RecurringBlocks)
	assert.Empty(t, agg.Exceptions)
}

func TestUpsertCalendarReplacesCollections(t *testing.T) {
	user := uuid.New()
	repo := newFakeCalendarRepo(user)
	svc := NewCalendarService(repo, fakeMembers{})
	ctx := context.Background()

	first, appErr := svc.UpsertCalendar(ctx, user, &dto.CalendarRequest{
		RecurringBlocks: []dto.RecurringBlockDto{block("MONDAY", "09:00", "10:00"), block("FRIDAY", "16:00", "18:00")},
	})
	require.Nil(t, appErr)

	second, appErr := svc.UpsertCalendar(ctx, user, &dto.CalendarRequest{
		RecurringBlocks: []dto.RecurringBlockDto{block("sunday", "10:00", "11:00")},
	})
	require.Nil(t, appErr)

	assert.Equal(t, *first.ID, *second.ID)
	assert.Equal(t, []dto.RecurringBlockDto{block("SUNDAY", "10:00", "11:00")}, second.RecurringBlocks)
	assert.Empty(t, second.Exceptions)
	assert.Len(t, repo.calendars, 1)
}

func TestUpsertCalendarUnknownUser(t *testing.T) {
	svc := NewCalendarService(newFakeCalendarRepo(), fakeMembers{})

	_, appErr := svc.UpsertCalendar(context.Background(), uuid.New(), &dto.CalendarRequest{})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestUpdateCalendarRequiresExisting(t *testing.T) {
	user := uuid.New()
	svc := NewCalendarService(newFakeCalendarRepo(user), fakeMembers{})

	_, appErr := svc.UpdateCalendar(context.Background(), user, &dto.CalendarRequest{})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestDeleteCalendarOwnerOnly(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	repo := newFakeCalendarRepo(owner, other)
	svc := NewCalendarService(repo, fakeMembers{})
	ctx := context.Background()

	cal, appErr := svc.UpsertCalendar(ctx, owner, &dto.CalendarRequest{})
	require.Nil(t, appErr)

	appErr = svc.DeleteCalendar(ctx, *cal.ID, other)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	require.Nil(t, svc.DeleteCalendar(ctx, *cal.ID, owner))
	_, appErr = svc.GetCalendarByUserID(ctx, owner)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestExportGroupICS(t *testing.T) {
	user := uuid.New()
	groupID := uuid.New()
	repo := newFakeCalendarRepo(user)
	svc := NewCalendarService(repo, fakeMembers{groupID: {user}})
	svc.now = func() time.Time { return time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC) }

	_, appErr := svc.UpsertCalendar(context.Background(), user, &dto.CalendarRequest{
		RecurringBlocks: []dto.RecurringBlockDto{block("MONDAY", "09:00", "10:00")},
	})
	require.Nil(t, appErr)

	body, appErr := svc.ExportGroupICS(context.Background(), groupID)
	require.Nil(t, appErr)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")
	assert.Contains(t, string(body), "20240520T090000")
}
