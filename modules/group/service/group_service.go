package service

import (
	"context"
	"strings"

	"group-scheduler/core/constants"
	"group-scheduler/core/database"
	"group-scheduler/core/errors"
	"group-scheduler/core/logger"
	"group-scheduler/core/params"
	"group-scheduler/core/queue"
	"group-scheduler/core/utils"
	"group-scheduler/modules/group/dto"
	"group-scheduler/modules/group/entity"
	"group-scheduler/modules/group/mapper"
	"group-scheduler/modules/group/repository"
	notificationdto "group-scheduler/modules/notification/dto"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, req *dto.CreateGroupRequest, creatorID uuid.UUID) (*dto.GroupResponse, *errors.AppError)
	UpdateGroup(ctx context.Context, groupID uuid.UUID, req *dto.UpdateGroupRequest, requesterID uuid.UUID) (*dto.GroupResponse, *errors.AppError)
	GetGroupByID(ctx context.Context, id uuid.UUID) (*dto.GroupResponse, *errors.AppError)
	GetGroupBySlug(ctx context.Context, slug string) (*dto.GroupResponse, *errors.AppError)
	GetGroups(ctx context.Context, params params.QueryParams) (*dto.PaginatedGroupResponse, *errors.AppError)
	GetMembers(ctx context.Context, groupID uuid.UUID) ([]dto.MemberResponse, *errors.AppError)

	Join(ctx context.Context, groupID, userID uuid.UUID) *errors.AppError
	Leave(ctx context.Context, groupID, userID uuid.UUID) *errors.AppError
	Expel(ctx context.Context, groupID, requesterID, targetID uuid.UUID) *errors.AppError

	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, *errors.AppError)
	GetCreatorID(ctx context.Context, groupID uuid.UUID) (uuid.UUID, *errors.AppError)
	GetMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, *errors.AppError)
	UserExists(ctx context.Context, userID uuid.UUID) (bool, *errors.AppError)
}

type GroupService struct {
	repo  repository.GroupRepositoryInterface
	tx    database.Transactor
	queue queue.Enqueuer
}

func NewGroupService(repo repository.GroupRepositoryInterface, tx database.Transactor, queue queue.Enqueuer) *GroupService {
	return &GroupService{
		repo:  repo,
		tx:    tx,
		queue: queue,
	}
}

func groupNotFound() *errors.AppError {
	return errors.NewAppError(errors.ErrNotFound, "group not found", nil)
}

func userNotFound() *errors.AppError {
	return errors.NewAppError(errors.ErrNotFound, "user not found", nil)
}

func (s *GroupService) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest, creatorID uuid.UUID) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group := mapper.ToGroupEntity(req, creatorID)
	group.ID = uuid.New()

	var created *entity.Group
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.UserExists(ctx, creatorID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
		}
		if !exists {
			return userNotFound()
		}

		group.Slug, err = s.uniqueSlug(ctx, group.Name)
		if err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "create group failed", err)
		}

		created, err = s.repo.CreateGroup(ctx, group)
		if err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "create group failed", err)
		}
		if err := s.repo.AddMember(ctx, created.ID, creatorID); err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "add creator to group failed", err)
		}
		created.MemberIDs = []uuid.UUID{creatorID}
		return nil
	})
	if err != nil {
		return nil, errors.AsAppError(err, errors.ErrCreateFailed, "create group failed")
	}

	logger.Info("GroupService:CreateGroup:Created", "group_id", created.ID, "creator_id", creatorID)
	s.enqueue(ctx, constants.TaskGroupCreated, notificationdto.GroupCreatedPayload{
		GroupID:   created.ID,
		CreatorID: creatorID,
		Name:      created.Name,
	})

	return mapper.ToGroupResponse(created), nil
}

// uniqueSlug derives a URL slug from name, adding a random suffix on collision.
func (s *GroupService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "group"
	}

	candidate := base
	for range 5 {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strings.ToLower(utils.GenerateID())
	}
	return base + "-" + uuid.NewString()[:8], nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, groupID uuid.UUID, req *dto.UpdateGroupRequest, requesterID uuid.UUID) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var group *entity.Group
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		group, err = s.repo.GetGroupByIDForUpdate(ctx, groupID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
		}
		if group == nil {
			return groupNotFound()
		}
		if !group.IsCreator(requesterID) {
			return errors.NewAppError(errors.ErrForbidden, "only the group creator can update the group", nil)
		}

		group.Name = strings.TrimSpace(req.Name)
		group.Description = strings.TrimSpace(req.Description)
		if err := s.repo.UpdateGroup(ctx, group); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "update group failed", err)
		}

		group.MemberIDs, err = s.repo.GetMemberIDs(ctx, groupID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get group members failed", err)
		}
		return nil
	})
	if err != nil {
		return nil, errors.AsAppError(err, errors.ErrUpdateFailed, "update group failed")
	}

	return mapper.ToGroupResponse(group), nil
}

func (s *GroupService) loadMembers(ctx context.Context, group *entity.Group) *errors.AppError {
	memberIDs, err := s.repo.GetMemberIDs(ctx, group.ID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get group members failed", err)
	}
	group.MemberIDs = memberIDs
	return nil
}

func (s *GroupService) GetGroupByID(ctx context.Context, id uuid.UUID) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group, err := s.repo.GetGroupByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return nil, groupNotFound()
	}
	if appErr := s.loadMembers(ctx, group); appErr != nil {
		return nil, appErr
	}
	return mapper.ToGroupResponse(group), nil
}

func (s *GroupService) GetGroupBySlug(ctx context.Context, slug string) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group, err := s.repo.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return nil, groupNotFound()
	}
	if appErr := s.loadMembers(ctx, group); appErr != nil {
		return nil, appErr
	}
	return mapper.ToGroupResponse(group), nil
}

func (s *GroupService) GetGroups(ctx context.Context, params params.QueryParams) (*dto.PaginatedGroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.GetGroups(ctx, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get groups failed", err)
	}

	groupIDs := make([]uuid.UUID, len(page.Items))
	for i := range page.Items {
		groupIDs[i] = page.Items[i].ID
	}
	members, err := s.repo.GetMemberIDsByGroupIDs(ctx, groupIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group members failed", err)
	}
	for i := range page.Items {
		page.Items[i].MemberIDs = members[page.Items[i].ID]
	}

	return mapper.ToGroupPaginationResponse(page), nil
}

func (s *GroupService) GetMembers(ctx context.Context, groupID uuid.UUID) ([]dto.MemberResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return nil, groupNotFound()
	}

	members, err := s.repo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group members failed", err)
	}
	return mapper.ToMemberResponses(members, group.CreatorID), nil
}

// lockGroupAndUser loads the group under a row lock and checks that userID
// exists. Must run inside a transaction.
func (s *GroupService) lockGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) (*entity.Group, error) {
	group, err := s.repo.GetGroupByIDForUpdate(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return nil, groupNotFound()
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if !exists {
		return nil, userNotFound()
	}
	return group, nil
}

func (s *GroupService) Join(ctx context.Context, groupID, userID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.lockGroupAndUser(ctx, groupID, userID); err != nil {
			return err
		}
		if err := s.repo.AddMember(ctx, groupID, userID); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "join group failed", err)
		}
		return nil
	})
	if err != nil {
		return errors.AsAppError(err, errors.ErrUpdateFailed, "join group failed")
	}

	logger.Info("GroupService:Join:Joined", "group_id", groupID, "user_id", userID)
	return nil
}

func (s *GroupService) Leave(ctx context.Context, groupID, userID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		group, err := s.lockGroupAndUser(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if group.IsCreator(userID) {
			return errors.NewAppError(errors.ErrCreatorCannotLeave, "the group creator cannot leave the group", nil)
		}
		if _, err := s.repo.RemoveMember(ctx, groupID, userID); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "leave group failed", err)
		}
		return nil
	})
	if err != nil {
		return errors.AsAppError(err, errors.ErrUpdateFailed, "leave group failed")
	}

	logger.Info("GroupService:Leave:Left", "group_id", groupID, "user_id", userID)
	return nil
}

// Expel removes targetID from the group. The target is not checked against the
// creator, unlike Leave.
func (s *GroupService) Expel(ctx context.Context, groupID, requesterID, targetID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		group, err := s.lockGroupAndUser(ctx, groupID, targetID)
		if err != nil {
			return err
		}
		if !group.IsCreator(requesterID) {
			return errors.NewAppError(errors.ErrForbidden, "only the group creator can expel members", nil)
		}
		if _, err := s.repo.RemoveMember(ctx, groupID, targetID); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "expel member failed", err)
		}
		return nil
	})
	if err != nil {
		return errors.AsAppError(err, errors.ErrUpdateFailed, "expel member failed")
	}

	logger.Info("GroupService:Expel:Expelled", "group_id", groupID, "target_id", targetID, "requester_id", requesterID)
	return nil
}

// IsMember reports membership under a share lock when ctx carries a
// transaction.
func (s *GroupService) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, *errors.AppError) {
	ok, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return false, errors.NewAppError(errors.ErrGetFailed, "check group membership failed", err)
	}
	return ok, nil
}

func (s *GroupService) GetCreatorID(ctx context.Context, groupID uuid.UUID) (uuid.UUID, *errors.AppError) {
	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return uuid.Nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return uuid.Nil, groupNotFound()
	}
	return group.CreatorID, nil
}

// GetMemberIDs returns the member ids in joined order, or NotFound when the
// group does not exist.
func (s *GroupService) GetMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, *errors.AppError) {
	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return nil, groupNotFound()
	}
	if appErr := s.loadMembers(ctx, group); appErr != nil {
		return nil, appErr
	}
	return group.MemberIDs, nil
}

func (s *GroupService) UserExists(ctx context.Context, userID uuid.UUID) (bool, *errors.AppError) {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return false, errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	return exists, nil
}

func (s *GroupService) enqueue(ctx context.Context, taskType string, payload any) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(context.WithoutCancel(ctx), taskType, payload); err != nil {
		logger.Error("GroupService:Enqueue", "type", taskType, "error", err)
	}
}
