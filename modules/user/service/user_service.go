package service

import (
	"context"
	stderrors "errors"
	"io"
	"strings"

	"group-scheduler/core/constants"
	"group-scheduler/core/errors"
	"group-scheduler/core/logger"
	"group-scheduler/core/storage"
	"group-scheduler/modules/user/dto"
	"group-scheduler/modules/user/entity"
	"group-scheduler/modules/user/mapper"
	"group-scheduler/modules/user/repository"

	"github.com/google/uuid"
)

const photoPrefix = "users/photos"

// TokenIssuer signs access tokens for a user.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
}

type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, *errors.AppError)
	GetUsers(ctx context.Context) ([]dto.UserResponse, *errors.AppError)
	GetUserByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError)
	GetUserByEmail(ctx context.Context, email string) (*dto.UserResponse, *errors.AppError)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, *errors.AppError)
	DeleteUser(ctx context.Context, id uuid.UUID) *errors.AppError
	UploadPhoto(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*dto.UserResponse, *errors.AppError)
	ProvisionUser(ctx context.Context, profile dto.Profile) (*dto.UserResponse, *errors.AppError)
}

type UserService struct {
	repo    repository.UserRepositoryInterface
	tokens  TokenIssuer
	storage storage.FileStorage
}

func NewUserService(repo repository.UserRepositoryInterface, tokens TokenIssuer, storage storage.FileStorage) *UserService {
	return &UserService{
		repo:    repo,
		tokens:  tokens,
		storage: storage,
	}
}

func userNotFound() *errors.AppError {
	return errors.NewAppError(errors.ErrNotFound, "user not found", nil)
}

func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user := mapper.ToUserEntity(req)
	user.ID = uuid.New()

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if stderrors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "email already registered", err)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create user failed", err)
	}

	token, err := s.tokens.GenerateToken(created.ID, created.Email)
	if err != nil {
		logger.Error("UserService:CreateUser:GenerateToken", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	return &dto.CreateUserResponse{
		User:        *mapper.ToUserResponse(created),
		AccessToken: token,
	}, nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	users, err := s.repo.GetUsers(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get users failed", err)
	}
	return mapper.ToUserResponses(users), nil
}

func (s *UserService) found(user *entity.User, err error) (*dto.UserResponse, *errors.AppError) {
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if user == nil {
		return nil, userNotFound()
	}
	return mapper.ToUserResponse(user), nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	return s.found(s.repo.GetUserByID(ctx, id))
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	return s.found(s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email))))
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if user == nil {
		return nil, userNotFound()
	}

	mapper.ApplyUpdateRequest(user, req)
	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update user failed", err)
	}
	if updated == nil {
		return nil, userNotFound()
	}
	return mapper.ToUserResponse(updated), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if user == nil {
		return userNotFound()
	}

	deleted, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrUserOwnsGroups) {
			return errors.NewAppError(errors.ErrForbidden, "user owns groups", err)
		}
		return errors.NewAppError(errors.ErrDeleteFailed, "delete user failed", err)
	}
	if !deleted {
		return userNotFound()
	}

	if user.PhotoURL != nil && s.storage != nil {
		if err := s.storage.Delete(context.WithoutCancel(ctx), *user.PhotoURL); err != nil {
			logger.Warn("UserService:DeleteUser:DeletePhoto", "user_id", id, "error", err)
		}
	}
	return nil
}

// UploadPhoto stores an image and makes it the user's photo. The previous
// photo is removed from storage on a best-effort basis.
func (s *UserService) UploadPhoto(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "photo must be an image", nil)
	}
	if s.storage == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "file storage is not configured", nil)
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if user == nil {
		return nil, userNotFound()
	}

	url, err := s.storage.Upload(ctx, photoPrefix, filename, contentType, body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "upload photo failed", err)
	}

	updated, err := s.repo.UpdatePhotoURL(ctx, id, url)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update user failed", err)
	}
	if updated == nil {
		return nil, userNotFound()
	}

	if user.PhotoURL != nil {
		if err := s.storage.Delete(context.WithoutCancel(ctx), *user.PhotoURL); err != nil {
			logger.Warn("UserService:UploadPhoto:DeleteOld", "user_id", id, "error", err)
		}
	}
	return mapper.ToUserResponse(updated), nil
}

// ProvisionUser returns the user registered under profile.Email, creating it
// on first sign-in.
func (s *UserService) ProvisionUser(ctx context.Context, profile dto.Profile) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "email is required", nil)
	}

	user := &entity.User{
		Email:     email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
	}
	user.ID = uuid.New()
	if profile.PhotoURL != "" {
		photo := profile.PhotoURL
		user.PhotoURL = &photo
	}

	stored, err := s.repo.UpsertUserByEmail(ctx, user)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "provision user failed", err)
	}
	return mapper.ToUserResponse(stored), nil
}
