package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"group-scheduler/core/errors"
	"group-scheduler/modules/event/entity"
	notificationdto "group-scheduler/modules/notification/dto"

	"github.com/google/uuid"
)

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingQueue struct {
	mu      sync.Mutex
	actions []string
}

func (q *recordingQueue) Enqueue(_ context.Context, _ string, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if p, ok := payload.(notificationdto.EventChangedPayload); ok {
		q.actions = append(q.actions, p.Action)
	}
	return nil
}

type fakeGroups struct {
	creators map[uuid.UUID]uuid.UUID
	members  map[uuid.UUID][]uuid.UUID
}

func newFakeGroups() *fakeGroups {
	return &fakeGroups{
		creators: map[uuid.UUID]uuid.UUID{},
		members:  map[uuid.UUID][]uuid.UUID{},
	}
}

func (g *fakeGroups) addGroup(creator uuid.UUID, members ...uuid.UUID) uuid.UUID {
	id := uuid.New()
	g.creators[id] = creator
	g.members[id] = append([]uuid.UUID{creator}, members...)
	return id
}

func (g *fakeGroups) GetCreatorID(_ context.Context, groupID uuid.UUID) (uuid.UUID, *errors.AppError) {
	creator, ok := g.creators[groupID]
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}
	return creator, nil
}

func (g *fakeGroups) IsMember(_ context.Context, groupID, userID uuid.UUID) (bool, *errors.AppError) {
	return slices.Contains(g.members[groupID], userID), nil
}

type fakeEventRepo struct {
	events    map[uuid.UUID]*entity.Event
	signups   map[uuid.UUID][]uuid.UUID
	listCalls int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:  map[uuid.UUID]*entity.Event{},
		signups: map[uuid.UUID][]uuid.UUID{},
	}
}

func (r *fakeEventRepo) live(id uuid.UUID) *entity.Event {
	e, ok := r.events[id]
	if !ok || e.Deleted {
		return nil
	}
	out := *e
	return &out
}

func (r *fakeEventRepo) CreateEvent(_ context.Context, event *entity.Event) (*entity.Event, error) {
	stored := *event
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.events[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeEventRepo) UpdateEvent(_ context.Context, event *entity.Event) (*entity.Event, error) {
	if r.live(event.ID) == nil {
		return nil, nil
	}
	stored := *event
	stored.UpdatedAt = time.Now()
	r.events[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeEventRepo) SoftDeleteEvent(_ context.Context, id uuid.UUID) (bool, error) {
	if r.live(id) == nil {
		return false, nil
	}
	r.events[id].Deleted = true
	return true, nil
}

func (r *fakeEventRepo) GetEventByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.live(id), nil
}

func (r *fakeEventRepo) GetEventByIDForShare(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.live(id), nil
}

func (r *fakeEventRepo) GetEventsByGroupID(_ context.Context, groupID uuid.UUID) ([]entity.Event, error) {
	r.listCalls++
	out := []entity.Event{}
	for _, e := range r.events {
		if e.GroupID == groupID && !e.Deleted {
			out = append(out, *e)
		}
	}
	slices.SortFunc(out, func(a, b entity.Event) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (r *fakeEventRepo) AddSignup(_ context.Context, eventID, userID uuid.UUID) error {
	if !slices.Contains(r.signups[eventID], userID) {
		r.signups[eventID] = append(r.signups[eventID], userID)
	}
	return nil
}

func (r *fakeEventRepo) RemoveSignup(_ context.Context, eventID, userID uuid.UUID) (bool, error) {
	idx := slices.Index(r.signups[eventID], userID)
	if idx < 0 {
		return false, nil
	}
	r.signups[eventID] = slices.Delete(r.signups[eventID], idx, idx+1)
	return true, nil
}

func (r *fakeEventRepo) GetSignedUpUserIDs(_ context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	return append([]uuid.UUID{}, r.signups[eventID]...), nil
}

func (r *fakeEventRepo) GetSignedUpUserIDsByEventIDs(_ context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := map[uuid.UUID][]uuid.UUID{}
	for _, id := range eventIDs {
		if ids := r.signups[id]; len(ids) > 0 {
			out[id] = append([]uuid.UUID{}, ids...)
		}
	}
	return out, nil
}
