package mapper

import (
	"strings"

	"group-scheduler/core/dto"
	groupdto "group-scheduler/modules/group/dto"
	"group-scheduler/modules/group/entity"

	"github.com/google/uuid"
)

func ToGroupEntity(req *groupdto.CreateGroupRequest, creatorID uuid.UUID) *entity.Group {
	return &entity.Group{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		CreatorID:   creatorID,
	}
}

func ToGroupResponse(group *entity.Group) *groupdto.GroupResponse {
	memberIDs := group.MemberIDs
	if memberIDs == nil {
		memberIDs = []uuid.UUID{}
	}
	return &groupdto.GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Slug:        group.Slug,
		Description: group.Description,
		CreatorID:   group.CreatorID,
		MemberIDs:   memberIDs,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
}

func ToMemberResponses(members []entity.Member, creatorID uuid.UUID) []groupdto.MemberResponse {
	responses := make([]groupdto.MemberResponse, len(members))
	for i, m := range members {
		responses[i] = groupdto.MemberResponse{
			UserID:    m.UserID,
			Email:     m.Email,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			PhotoURL:  m.PhotoURL,
			IsCreator: m.UserID == creatorID,
			JoinedAt:  m.JoinedAt,
		}
	}
	return responses
}

func ToGroupPaginationResponse(page *entity.PaginatedGroups) *groupdto.PaginatedGroupResponse {
	if page == nil {
		return &groupdto.PaginatedGroupResponse{Items: []groupdto.GroupResponse{}}
	}

	items := make([]groupdto.GroupResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToGroupResponse(&page.Items[i])
	}

	return &groupdto.PaginatedGroupResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: dto.TotalPages(page.TotalItems, page.PageSize),
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
