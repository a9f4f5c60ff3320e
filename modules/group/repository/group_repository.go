package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"group-scheduler/core/database"
	"group-scheduler/core/logger"
	"group-scheduler/core/params"
	"group-scheduler/modules/group/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type GroupRepositoryInterface interface {
	CreateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error)
	UpdateGroup(ctx context.Context, group *entity.Group) error
	GetGroupByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	GetGroupByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*entity.Group, error)
	GetGroups(ctx context.Context, params params.QueryParams) (*entity.PaginatedGroups, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	GetMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)
	GetMemberIDsByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
	GetMembers(ctx context.Context, groupID uuid.UUID) ([]entity.Member, error)

	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
}

type GroupRepository struct {
	DB database.IDatabase
}

func NewGroupRepository(db database.IDatabase) *GroupRepository {
	return &GroupRepository{DB: db}
}

const groupColumns = `id, name, slug, description, creator_id, created_at, updated_at`

func (r *GroupRepository) CreateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	query := `
		INSERT INTO groups (id, name, slug, description, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + groupColumns

	var created entity.Group
	err := r.DB.GetContext(ctx, &created, query,
		group.ID, group.Name, group.Slug, group.Description, group.CreatorID)
	if err != nil {
		logger.Error("GroupRepository:CreateGroup", "error", err)
		return nil, err
	}
	return &created, nil
}

func (r *GroupRepository) UpdateGroup(ctx context.Context, group *entity.Group) error {
	query := `
		UPDATE groups
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, group.Name, group.Description, group.ID)
	if err != nil {
		logger.Error("GroupRepository:UpdateGroup", "error", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("group with id %s not found", group.ID)
	}
	return nil
}

func (r *GroupRepository) getGroup(ctx context.Context, query string, arg any) (*entity.Group, error) {
	var group entity.Group
	err := r.DB.GetContext(ctx, &group, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("GroupRepository:getGroup", "error", err)
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	return r.getGroup(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = $1`, id)
}

// GetGroupByIDForUpdate locks the group row until the surrounding transaction
// ends, serialising membership changes on the same group.
func (r *GroupRepository) GetGroupByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	return r.getGroup(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = $1 FOR UPDATE`, id)
}

func (r *GroupRepository) GetGroupBySlug(ctx context.Context, slug string) (*entity.Group, error) {
	return r.getGroup(ctx, `SELECT `+groupColumns+` FROM groups WHERE slug = $1`, slug)
}

func (r *GroupRepository) GetGroups(ctx context.Context, params params.QueryParams) (*entity.PaginatedGroups, error) {
	var (
		whereClause string
		args        []any
	)
	if params.Search != "" {
		whereClause = ` WHERE name ILIKE $1`
		args = append(args, "%"+params.Search+"%")
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM groups`+whereClause, args...); err != nil {
		logger.Error("GroupRepository:GetGroups:Count", "error", err)
		return nil, err
	}

	dataQuery := `SELECT ` + groupColumns + ` FROM groups` + whereClause +
		fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	groups := []entity.Group{}
	if err := r.DB.SelectContext(ctx, &groups, dataQuery, args...); err != nil {
		logger.Error("GroupRepository:GetGroups:Select", "error", err)
		return nil, err
	}

	return &entity.PaginatedGroups{
		Items:      groups,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *GroupRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM groups WHERE slug = $1)`, slug)
	return exists, err
}

// AddMember is idempotent: adding an existing member is a no-op.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	query := `
		INSERT INTO group_members (group_id, user_id, joined_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (group_id, user_id) DO NOTHING
	`
	if _, err := r.DB.ExecContext(ctx, query, groupID, userID); err != nil {
		logger.Error("GroupRepository:AddMember", "error", err)
		return err
	}
	return nil
}

// RemoveMember reports whether a membership row was deleted.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		logger.Error("GroupRepository:RemoveMember", "error", err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// IsMember takes a share lock on the membership row so that a concurrent
// leave or expel waits for the caller's transaction.
func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var one int
	err := r.DB.GetContext(ctx, &one,
		`SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2 FOR SHARE`, groupID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		logger.Error("GroupRepository:IsMember", "error", err)
		return false, err
	}
	return true, nil
}

func (r *GroupRepository) GetMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.DB.SelectContext(ctx, &ids,
		`SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY joined_at, user_id`, groupID)
	if err != nil {
		logger.Error("GroupRepository:GetMemberIDs", "error", err)
		return nil, err
	}
	return ids, nil
}

func (r *GroupRepository) GetMemberIDsByGroupIDs(ctx context.Context, groupIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	result := make(map[uuid.UUID][]uuid.UUID, len(groupIDs))
	if len(groupIDs) == 0 {
		return result, nil
	}

	ids := make([]string, len(groupIDs))
	for i, id := range groupIDs {
		ids[i] = id.String()
	}

	var rows []struct {
		GroupID uuid.UUID `db:"group_id"`
		UserID  uuid.UUID `db:"user_id"`
	}
	err := r.DB.SelectContext(ctx, &rows, `
		SELECT group_id, user_id
		FROM group_members
		WHERE group_id = ANY($1::uuid[])
		ORDER BY joined_at, user_id`, pq.StringArray(ids))
	if err != nil {
		logger.Error("GroupRepository:GetMemberIDsByGroupIDs", "error", err)
		return nil, err
	}

	for _, row := range rows {
		result[row.GroupID] = append(result[row.GroupID], row.UserID)
	}
	return result, nil
}

func (r *GroupRepository) GetMembers(ctx context.Context, groupID uuid.UUID) ([]entity.Member, error) {
	query := `
		SELECT u.id AS user_id, u.email, u.first_name, u.last_name, u.photo_url, gm.joined_at
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at, u.id
	`
	members := []entity.Member{}
	if err := r.DB.SelectContext(ctx, &members, query, groupID); err != nil {
		logger.Error("GroupRepository:GetMembers", "error", err)
		return nil, err
	}
	return members, nil
}

func (r *GroupRepository) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID)
	if err != nil {
		logger.Error("GroupRepository:UserExists", "error", err)
		return false, err
	}
	return exists, nil
}
