package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"group-scheduler/core/params"
	"group-scheduler/modules/group/entity"

	"github.com/google/uuid"
)

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingQueue struct {
	mu    sync.Mutex
	tasks []string
}

func (q *recordingQueue) Enqueue(_ context.Context, taskType string, _ any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, taskType)
	return nil
}

type fakeGroupRepo struct {
	users   map[uuid.UUID]bool
	groups  map[uuid.UUID]*entity.Group
	members map[uuid.UUID][]uuid.UUID
}

func newFakeGroupRepo(users ...uuid.UUID) *fakeGroupRepo {
	repo := &fakeGroupRepo{
		users:   map[uuid.UUID]bool{},
		groups:  map[uuid.UUID]*entity.Group{},
		members: map[uuid.UUID][]uuid.UUID{},
	}
	for _, u := range users {
		repo.users[u] = true
	}
	return repo
}

func (r *fakeGroupRepo) CreateGroup(_ context.Context, group *entity.Group) (*entity.Group, error) {
	stored := *group
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.groups[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeGroupRepo) UpdateGroup(_ context.Context, group *entity.Group) error {
	stored := r.groups[group.ID]
	stored.Name = group.Name
	stored.Description = group.Description
	return nil
}

func (r *fakeGroupRepo) GetGroupByID(_ context.Context, id uuid.UUID) (*entity.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	out := *g
	return &out, nil
}

func (r *fakeGroupRepo) GetGroupByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	return r.GetGroupByID(ctx, id)
}

func (r *fakeGroupRepo) GetGroupBySlug(_ context.Context, slug string) (*entity.Group, error) {
	for _, g := range r.groups {
		if g.Slug == slug {
			out := *g
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeGroupRepo) GetGroups(_ context.Context, p params.QueryParams) (*entity.PaginatedGroups, error) {
	items := []entity.Group{}
	for _, g := range r.groups {
		items = append(items, *g)
	}
	return &entity.PaginatedGroups{Items: items, TotalItems: len(items), PageNumber: p.PageNumber, PageSize: p.PageSize}, nil
}

func (r *fakeGroupRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	g, _ := r.GetGroupBySlug(ctx, slug)
	return g != nil, nil
}

func (r *fakeGroupRepo) AddMember(_ context.Context, groupID, userID uuid.UUID) error {
	if !slices.Contains(r.members[groupID], userID) {
		r.members[groupID] = append(r.members[groupID], userID)
	}
	return nil
}

func (r *fakeGroupRepo) RemoveMember(_ context.Context, groupID, userID uuid.UUID) (bool, error) {
	before := len(r.members[groupID])
	r.members[groupID] = slices.DeleteFunc(r.members[groupID], func(id uuid.UUID) bool { return id == userID })
	return len(r.members[groupID]) < before, nil
}

func (r *fakeGroupRepo) IsMember(_ context.Context, groupID, userID uuid.UUID) (bool, error) {
	return slices.Contains(r.members[groupID], userID), nil
}

func (r *fakeGroupRepo) GetMemberIDs(_ context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	return slices.Clone(r.members[groupID]), nil
}

func (r *fakeGroupRepo) GetMemberIDsByGroupIDs(_ context.Context, groupIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := map[uuid.UUID][]uuid.UUID{}
	for _, id := range groupIDs {
		out[id] = slices.Clone(r.members[id])
	}
	return out, nil
}

func (r *fakeGroupRepo) GetMembers(_ context.Context, groupID uuid.UUID) ([]entity.Member, error) {
	members := []entity.Member{}
	for _, id := range r.members[groupID] {
		members = append(members, entity.Member{UserID: id})
	}
	return members, nil
}

func (r *fakeGroupRepo) UserExists(_ context.Context, userID uuid.UUID) (bool, error) {
	return r.users[userID], nil
}
