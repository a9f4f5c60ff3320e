package service

import (
	"context"
	"testing"

	"group-scheduler/core/cache"
	"group-scheduler/core/errors"
	eventcache "group-scheduler/modules/event/cache"
	"group-scheduler/modules/event/dto"
	notificationdto "group-scheduler/modules/notification/dto"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     *EventService
	repo    *fakeEventRepo
	groups  *fakeGroups
	queue   *recordingQueue
	groupID uuid.UUID
	creator uuid.UUID
	member  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := &fixture{
		repo:    newFakeEventRepo(),
		groups:  newFakeGroups(),
		queue:   &recordingQueue{},
		creator: uuid.New(),
		member:  uuid.New(),
	}
	f.groupID = f.groups.addGroup(f.creator, f.member)
	f.svc = NewEventService(f.repo, passthroughTx{}, f.groups, eventcache.NewEventCache(cache.NewRedisCache(client)), f.queue)
	return f
}

func eventRequest(name string) *dto.EventRequest {
	times := []string{"18:00"}
	return &dto.EventRequest{
		Name:     name,
		Date:     "2024-06-01",
		Times:    &times,
		Location: "Park",
		Type:     "outdoor",
	}
}

func (f *fixture) createEvent(t *testing.T, name string) *dto.EventResponse {
	t.Helper()
	event, appErr := f.svc.CreateEvent(context.Background(), f.groupID, eventRequest(name), f.creator)
	require.Nil(t, appErr)
	return event
}

func TestCreateEventOnlyByGroupCreator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, appErr := f.svc.CreateEvent(ctx, f.groupID, eventRequest("Picnic"), f.member)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	_, appErr = f.svc.CreateEvent(ctx, uuid.New(), eventRequest("Picnic"), f.creator)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	event := f.createEvent(t, "Picnic")
	assert.Equal(t, f.creator, event.CreatorID)
	assert.Equal(t, "2024-06-01", event.Date)
	assert.Empty(t, event.SignedUpUserIDs)
	assert.Equal(t, []string{notificationdto.EventCreated}, f.queue.actions)
}

func TestUpdateEventRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, "Picnic")

	_, appErr := f.svc.UpdateEvent(ctx, f.groupID, event.ID, eventRequest("Renamed"), f.member)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	_, appErr = f.svc.UpdateEvent(ctx, uuid.New(), event.ID, eventRequest("Renamed"), f.creator)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	_, appErr = f.svc.SignUp(ctx, f.groupID, event.ID, f.member)
	require.Nil(t, appErr)

	updated, appErr := f.svc.UpdateEvent(ctx, f.groupID, event.ID, eventRequest("Renamed"), f.creator)
	require.Nil(t, appErr)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, f.creator, updated.CreatorID)
	assert.Equal(t, []uuid.UUID{f.member}, updated.SignedUpUserIDs)
}

func TestSignUpThenWithdrawRestoresState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, "Picnic")

	signed, appErr := f.svc.SignUp(ctx, f.groupID, event.ID, f.member)
	require.Nil(t, appErr)
	assert.Equal(t, []uuid.UUID{f.member}, signed.SignedUpUserIDs)

	signed, appErr = f.svc.SignUp(ctx, f.groupID, event.ID, f.member)
	require.Nil(t, appErr)
	assert.Len(t, signed.SignedUpUserIDs, 1)

	withdrawn, appErr := f.svc.Withdraw(ctx, f.groupID, event.ID, f.member)
	require.Nil(t, appErr)
	assert.Empty(t, withdrawn.SignedUpUserIDs)

	_, appErr = f.svc.Withdraw(ctx, f.groupID, event.ID, f.member)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotSignedUp, appErr.Code)
	assert.Equal(t, errors.KindInvalidState, appErr.Kind())
}

func TestSignUpRequiresMembership(t *testing.T) {
	f := newFixture(t)
	event := f.createEvent(t, "Picnic")

	_, appErr := f.svc.SignUp(context.Background(), f.groupID, event.ID, uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotGroupMember, appErr.Code)
	assert.Empty(t, f.repo.signups[event.ID])
}

func TestDeletedEventIsGone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, "Picnic")
	kept := f.createEvent(t, "Hike")

	appErr := f.svc.DeleteEvent(ctx, f.groupID, event.ID, f.member)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	require.Nil(t, f.svc.DeleteEvent(ctx, f.groupID, event.ID, f.creator))

	_, appErr = f.svc.GetEvent(ctx, f.groupID, event.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	_, appErr = f.svc.SignUp(ctx, f.groupID, event.ID, f.member)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	appErr = f.svc.DeleteEvent(ctx, f.groupID, event.ID, f.creator)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	events, appErr := f.svc.GetEventsByGroup(ctx, f.groupID)
	require.Nil(t, appErr)
	require.Len(t, events, 1)
	assert.Equal(t, kept.ID, events[0].ID)
	assert.True(t, f.repo.events[event.ID].Deleted)
}

func TestListByGroupServesFromCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createEvent(t, "Picnic")

	first, appErr := f.svc.GetEventsByGroup(ctx, f.groupID)
	require.Nil(t, appErr)
	second, appErr := f.svc.GetEventsByGroup(ctx, f.groupID)
	require.Nil(t, appErr)

	assert.Equal(t, 1, f.repo.listCalls)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestListByGroupUnknownGroup(t *testing.T) {
	f := newFixture(t)

	_, appErr := f.svc.GetEventsByGroup(context.Background(), uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestEditIsVisibleInNextList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, "Picnic")

	_, appErr := f.svc.GetEventsByGroup(ctx, f.groupID)
	require.Nil(t, appErr)

	_, appErr = f.svc.UpdateEvent(ctx, f.groupID, event.ID, eventRequest("Beach day"), f.creator)
	require.Nil(t, appErr)

	events, appErr := f.svc.GetEventsByGroup(ctx, f.groupID)
	require.Nil(t, appErr)
	require.Len(t, events, 1)
	assert.Equal(t, "Beach day", events[0].Name)
}

func TestMutationsInvalidateCachedList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, "Picnic")

	_, appErr := f.svc.GetEventsByGroup(ctx, f.groupID)
	require.Nil(t, appErr)

	f.createEvent(t, "Hike")
	events, appErr := f.svc.GetEventsByGroup(ctx, f.groupID)
	require.Nil(t, appErr)
	assert.Len(t, events, 2)

	_, appErr = f.svc.SignUp(ctx, f.groupID, event.ID, f.member)
	require.Nil(t, appErr)
	events, appErr = f.svc.GetEventsByGroup(ctx, f.groupID)
	require.Nil(t, appErr)
	for _, e := range events {
		if e.ID == event.ID {
			assert.Equal(t, []uuid.UUID{f.member}, e.SignedUpUserIDs)
		}
	}

	_, appErr = f.svc.Withdraw(ctx, f.groupID, event.ID, f.member)
	require.Nil(t, appErr)
	events, appErr = f.svc.GetEventsByGroup(ctx, f.groupID)
	require.Nil(t, appErr)
	for _, e := range events {
		assert.Empty(t, e.SignedUpUserIDs)
	}
}
