package repository

import (
	"context"
	"database/sql"
	"errors"

	"group-scheduler/core/database"
	"group-scheduler/core/logger"
	"group-scheduler/modules/user/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUserOwnsGroups = errors.New("user still owns groups or events")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpsertUserByEmail(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUsers(ctx context.Context) ([]entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (bool, error)
}

type UserRepository struct {
	DB database.IDatabase
}

func NewUserRepository(db database.IDatabase) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, email, first_name, last_name, photo_url, birth_date, created_at, updated_at`

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, email, first_name, last_name, photo_url, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.PhotoURL, user.BirthDate)
	if err != nil {
		if pqCode(err) == pqUniqueViolation {
			return nil, ErrDuplicateEmail
		}
		logger.Error("UserRepository:CreateUser", "error", err)
		return nil, err
	}
	return &created, nil
}

// UpsertUserByEmail inserts the user or returns the existing row for the same
// email. Names and photo of an existing user are only filled when empty.
func (r *UserRepository) UpsertUserByEmail(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, email, first_name, last_name, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			first_name = CASE WHEN users.first_name = '' THEN EXCLUDED.first_name ELSE users.first_name END,
			last_name  = CASE WHEN users.last_name = '' THEN EXCLUDED.last_name ELSE users.last_name END,
			photo_url  = COALESCE(users.photo_url, EXCLUDED.photo_url),
			updated_at = NOW()
		RETURNING ` + userColumns

	var stored entity.User
	err := r.DB.GetContext(ctx, &stored, query, user.ID, user.Email, user.FirstName, user.LastName, user.PhotoURL)
	if err != nil {
		logger.Error("UserRepository:UpsertUserByEmail", "error", err)
		return nil, err
	}
	return &stored, nil
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]entity.User, error) {
	users := []entity.User{}
	if err := r.DB.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`); err != nil {
		logger.Error("UserRepository:GetUsers", "error", err)
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) getUser(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var user entity.User
	if err := r.DB.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("UserRepository:getUser", "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	return r.getUser(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, photo_url = $3, birth_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+userColumns,
		user.FirstName, user.LastName, user.PhotoURL, user.BirthDate, user.ID)
}

func (r *UserRepository) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) (*entity.User, error) {
	return r.getUser(ctx, `
		UPDATE users SET photo_url = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns,
		photoURL, id)
}

// DeleteUser removes the user row. Memberships, sign-ups and calendars go with
// it; a user who still created groups or events cannot be removed.
func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return false, ErrUserOwnsGroups
		}
		logger.Error("UserRepository:DeleteUser", "error", err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
