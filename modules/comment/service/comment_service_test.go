package service

import (
	"context"
	"slices"
	"testing"
	"time"

	"group-scheduler/core/errors"
	"group-scheduler/modules/comment/dto"
	"group-scheduler/modules/comment/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGroups struct {
	creator uuid.UUID
	groupID uuid.UUID
	members []uuid.UUID
	users   []uuid.UUID
}

func (g *fakeGroups) GetCreatorID(_ context.Context, groupID uuid.UUID) (uuid.UUID, *errors.AppError) {
	if groupID != g.groupID {
		return uuid.Nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}
	return g.creator, nil
}

func (g *fakeGroups) IsMember(_ context.Context, groupID, userID uuid.UUID) (bool, *errors.AppError) {
	return groupID == g.groupID && slices.Contains(g.members, userID), nil
}

func (g *fakeGroups) UserExists(_ context.Context, userID uuid.UUID) (bool, *errors.AppError) {
	return slices.Contains(g.users, userID), nil
}

type fakeCommentRepo struct {
	events   map[uuid.UUID]uuid.UUID
	comments []*entity.Comment
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *entity.Comment) (*entity.Comment, error) {
	stored := *comment
	stored.CreatedAt = time.Now().Add(time.Duration(len(r.comments)) * time.Millisecond)
	r.comments = append(r.comments, &stored)
	out := stored
	return &out, nil
}

func (r *fakeCommentRepo) GetCommentByID(_ context.Context, eventID, commentID uuid.UUID) (*entity.Comment, error) {
	for _, c := range r.comments {
		if c.ID == commentID && c.EventID == eventID && !c.Deleted {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeCommentRepo) GetCommentsByEventID(_ context.Context, eventID uuid.UUID) ([]entity.Comment, error) {
	out := []entity.Comment{}
	for _, c := range r.comments {
		if c.EventID == eventID && !c.Deleted {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) SoftDeleteComment(_ context.Context, commentID uuid.UUID) (bool, error) {
	for _, c := range r.comments {
		if c.ID == commentID && !c.Deleted {
			c.Deleted = true
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCommentRepo) GetEventGroupID(_ context.Context, eventID uuid.UUID) (uuid.UUID, error) {
	return r.events[eventID], nil
}

type commentFixture struct {
	svc      *CommentService
	repo     *fakeCommentRepo
	groupID  uuid.UUID
	eventID  uuid.UUID
	creator  uuid.UUID
	author   uuid.UUID
	third    uuid.UUID
	outsider uuid.UUID
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		groupID:  uuid.New(),
		eventID:  uuid.New(),
		creator:  uuid.New(),
		author:   uuid.New(),
		third:    uuid.New(),
		outsider: uuid.New(),
	}
	groups := &fakeGroups{
		creator: f.creator,
		groupID: f.groupID,
		members: []uuid.UUID{f.creator, f.author, f.third},
		users:   []uuid.UUID{f.creator, f.author, f.third, f.outsider},
	}
	f.repo = &fakeCommentRepo{events: map[uuid.UUID]uuid.UUID{f.eventID: f.groupID}}
	f.svc = NewCommentService(f.repo, groups, nil)
	return f
}

func (f *commentFixture) post(t *testing.T, author uuid.UUID, message string) *dto.CommentResponse {
	t.Helper()
	comment, appErr := f.svc.CreateComment(context.Background(), f.groupID, f.eventID, author, &dto.CreateCommentRequest{Message: message})
	require.Nil(t, appErr)
	return comment
}

func TestNonMemberCannotReadOrWrite(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	_, appErr := f.svc.GetComments(ctx, f.groupID, f.eventID, f.outsider)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	_, appErr = f.svc.CreateComment(ctx, f.groupID, f.eventID, f.outsider, &dto.CreateCommentRequest{Message: "hello"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	assert.Empty(t, f.repo.comments)
}

func TestCreateCommentMissingEventOrAuthor(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	_, appErr := f.svc.CreateComment(ctx, f.groupID, uuid.New(), f.author, &dto.CreateCommentRequest{Message: "hi"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	_, appErr = f.svc.CreateComment(ctx, uuid.New(), f.eventID, f.author, &dto.CreateCommentRequest{Message: "hi"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	_, appErr = f.svc.CreateComment(ctx, f.groupID, f.eventID, uuid.New(), &dto.CreateCommentRequest{Message: "hi"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCommentsListedInCreationOrder(t *testing.T) {
	f := newCommentFixture()
	first := f.post(t, f.author, "first")
	second := f.post(t, f.third, "second")

	comments, appErr := f.svc.GetComments(context.Background(), f.groupID, f.eventID, f.creator)
	require.Nil(t, appErr)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
}

func TestDeleteCommentPermissions(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	byAuthor := f.post(t, f.author, "mine")
	moderated := f.post(t, f.author, "off topic")

	appErr := f.svc.DeleteComment(ctx, f.groupID, f.eventID, byAuthor.ID, f.third)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	require.Nil(t, f.svc.DeleteComment(ctx, f.groupID, f.eventID, byAuthor.ID, f.author))
	require.Nil(t, f.svc.DeleteComment(ctx, f.groupID, f.eventID, moderated.ID, f.creator))

	appErr = f.svc.DeleteComment(ctx, f.groupID, f.eventID, byAuthor.ID, f.author)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	comments, appErr := f.svc.GetComments(ctx, f.groupID, f.eventID, f.author)
	require.Nil(t, appErr)
	assert.Empty(t, comments)
	assert.Len(t, f.repo.comments, 2)
}
