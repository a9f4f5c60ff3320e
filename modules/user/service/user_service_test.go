package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"group-scheduler/core/errors"
	"group-scheduler/core/utils"
	"group-scheduler/modules/user/dto"
	"group-scheduler/modules/user/entity"
	"group-scheduler/modules/user/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users      map[uuid.UUID]*entity.User
	ownsGroups map[uuid.UUID]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}, ownsGroups: map[uuid.UUID]bool{}}
}

func (r *fakeUserRepo) byEmail(email string) *entity.User {
	for _, u := range r.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	if r.byEmail(user.Email) != nil {
		return nil, repository.ErrDuplicateEmail
	}
	stored := *user
	stored.CreatedAt = time.Now()
	r.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeUserRepo) UpsertUserByEmail(ctx context.Context, user *entity.User) (*entity.User, error) {
	if existing := r.byEmail(user.Email); existing != nil {
		out := *existing
		return &out, nil
	}
	return r.CreateUser(ctx, user)
}

func (r *fakeUserRepo) GetUsers(context.Context) ([]entity.User, error) {
	out := []entity.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	u := r.byEmail(email)
	if u == nil {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, nil
	}
	stored := *user
	r.users[user.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeUserRepo) UpdatePhotoURL(_ context.Context, id uuid.UUID, photoURL string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.PhotoURL = &photoURL
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id uuid.UUID) (bool, error) {
	if r.ownsGroups[id] {
		return false, repository.ErrUserOwnsGroups
	}
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (s *fakeStorage) Upload(_ context.Context, prefix, filename, _ string, body io.Reader) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	url := "https://cdn.example.com/" + prefix + "/" + uuid.NewString() + "-" + filename
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeStorage) Delete(_ context.Context, objectURL string) error {
	s.deleted = append(s.deleted, objectURL)
	return nil
}

func newTestService() (*UserService, *fakeUserRepo, *fakeStorage, *utils.TokenSigner) {
	repo := newFakeUserRepo()
	store := &fakeStorage{}
	signer := utils.NewTokenSigner("test-secret", "group-scheduler", time.Hour)
	return NewUserService(repo, signer, store), repo, store, signer
}

func TestCreateUserIssuesToken(t *testing.T) {
	svc, _, _, signer := newTestService()

	resp, appErr := svc.CreateUser(context.Background(), &dto.CreateUserRequest{Email: " Ana@Example.com ", FirstName: "Ana"})
	require.Nil(t, appErr)
	assert.Equal(t, "ana@example.com", resp.User.Email)

	claims, err := signer.ValidateAndParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, appErr := svc.CreateUser(ctx, &dto.CreateUserRequest{Email: "ana@example.com"})
	require.Nil(t, appErr)

	_, appErr = svc.CreateUser(ctx, &dto.CreateUserRequest{Email: "ana@example.com"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
}

func TestDeleteUserOwningGroupsIsForbidden(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	resp, appErr := svc.CreateUser(ctx, &dto.CreateUserRequest{Email: "ana@example.com"})
	require.Nil(t, appErr)
	repo.ownsGroups[resp.User.ID] = true

	appErr = svc.DeleteUser(ctx, resp.User.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	repo.ownsGroups[resp.User.ID] = false
	require.Nil(t, svc.DeleteUser(ctx, resp.User.ID))

	_, appErr = svc.GetUserByID(ctx, resp.User.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestUploadPhotoReplacesPrevious(t *testing.T) {
	svc, _, store, _ := newTestService()
	ctx := context.Background()

	resp, appErr := svc.CreateUser(ctx, &dto.CreateUserRequest{Email: "ana@example.com"})
	require.Nil(t, appErr)
	id := resp.User.ID

	_, appErr = svc.UploadPhoto(ctx, id, "notes.txt", "text/plain", strings.NewReader("hi"))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	first, appErr := svc.UploadPhoto(ctx, id, "me.png", "image/png", strings.NewReader("png"))
	require.Nil(t, appErr)
	require.NotNil(t, first.PhotoURL)

	second, appErr := svc.UploadPhoto(ctx, id, "me2.png", "image/png", strings.NewReader("png"))
	require.Nil(t, appErr)
	assert.NotEqual(t, *first.PhotoURL, *second.PhotoURL)
	assert.Equal(t, []string{*first.PhotoURL}, store.deleted)
}

func TestProvisionUserReusesExisting(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, appErr := svc.CreateUser(ctx, &dto.CreateUserRequest{Email: "ana@example.com"})
	require.Nil(t, appErr)

	provisioned, appErr := svc.ProvisionUser(ctx, dto.Profile{Email: "ANA@example.com", FirstName: "Ana"})
	require.Nil(t, appErr)
	assert.Equal(t, created.User.ID, provisioned.ID)

	_, appErr = svc.ProvisionUser(ctx, dto.Profile{})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}
