package controller

import (
	"context"
	"net/http"

	"group-scheduler/core/controller"
	"group-scheduler/core/errors"
	"group-scheduler/core/middleware"
	"group-scheduler/core/params"
	"group-scheduler/core/utils"
	calendardto "group-scheduler/modules/calendar/dto"
	"group-scheduler/modules/group/dto"
	"group-scheduler/modules/group/service"
	"group-scheduler/modules/group/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CalendarAggregator produces the combined availability of a group.
type CalendarAggregator interface {
	AggregateForGroup(ctx context.Context, groupID uuid.UUID) (*calendardto.CalendarResponse, *errors.AppError)
	ExportGroupICS(ctx context.Context, groupID uuid.UUID) ([]byte, *errors.AppError)
}

type GroupController struct {
	controller.BaseController
	GroupService service.GroupServiceInterface
	Calendars    CalendarAggregator
}

func NewGroupController(svc service.GroupServiceInterface, calendars CalendarAggregator) *GroupController {
	return &GroupController{
		BaseController: controller.NewBaseController(),
		GroupService:   svc,
		Calendars:      calendars,
	}
}

func (c *GroupController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, *errors.AppError) {
	userID := middleware.CurrentUserID(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return userID, nil
}

// GetGroups handles GET /groups
// @Summary List groups
// @Tags Group
// @Produce json
// @Param page_number query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Name filter"
// @Success 200 {object} dto.PaginatedGroupResponse
// @Router /groups [get]
func (c *GroupController) GetGroups(ctx echo.Context) error {
	queryParams := params.NewQueryParams(ctx)

	groups, err := c.GroupService.GetGroups(ctx.Request().Context(), *queryParams)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, groups, "get groups success")
}

// GetGroupByID handles GET /groups/:id
// @Summary Get a group with its aggregated calendar
// @Tags Group
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupDetailResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /groups/{id} [get]
func (c *GroupController) GetGroupByID(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	groupID := utils.ToUUID(ctx.Param("id"))

	group, err := c.GroupService.GetGroupByID(reqCtx, groupID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	cal, err := c.Calendars.AggregateForGroup(reqCtx, groupID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	return c.SuccessResponse(ctx, &dto.GroupDetailResponse{GroupResponse: *group, Calendar: cal}, "get group success")
}

// GetGroupBySlug handles GET /groups/by-slug/:slug
// @Summary Get a group by slug
// @Tags Group
// @Produce json
// @Param slug path string true "Group slug"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /groups/by-slug/{slug} [get]
func (c *GroupController) GetGroupBySlug(ctx echo.Context) error {
	group, err := c.GroupService.GetGroupBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, group, "get group success")
}

// CreateGroup handles POST /groups
// @Summary Create a group
// @Description The caller becomes creator and first member. Without a bearer token the body must carry creator_id.
// @Tags Group
// @Accept json
// @Produce json
// @Param request body dto.CreateGroupRequest true "Group"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} controller.ValidationResponse
// @Router /groups [post]
func (c *GroupController) CreateGroup(ctx echo.Context) error {
	req := new(dto.CreateGroupRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateCreateGroupRequest(req); result.HasError() {
		return c.ValidationFailed(ctx, result)
	}

	creatorID := middleware.CurrentUserID(ctx)
	if creatorID == uuid.Nil && req.CreatorID != nil {
		creatorID = *req.CreatorID
	}
	if creatorID == uuid.Nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidInput, "creator_id is required", nil))
	}

	group, err := c.GroupService.CreateGroup(ctx.Request().Context(), req, creatorID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.CreatedResponse(ctx, group, "create group success")
}

// UpdateGroup handles PUT /groups/:id
// @Summary Edit a group's name and description
// @Tags Group
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Group"
// @Success 200 {object} dto.GroupResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /groups/{id} [put]
func (c *GroupController) UpdateGroup(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	req := new(dto.UpdateGroupRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateUpdateGroupRequest(req); result.HasError() {
		return c.ValidationFailed(ctx, result)
	}

	group, err := c.GroupService.UpdateGroup(ctx.Request().Context(), utils.ToUUID(ctx.Param("id")), req, userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, group, "update group success")
}

// GetMembers handles GET /groups/:id/members
// @Summary List group members in join order
// @Tags Group
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} dto.MemberResponse
// @Router /groups/{id}/members [get]
func (c *GroupController) GetMembers(ctx echo.Context) error {
	members, err := c.GroupService.GetMembers(ctx.Request().Context(), utils.ToUUID(ctx.Param("id")))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, members, "get members success")
}

// Join handles POST /groups/:id/join
// @Summary Join a group
// @Tags Group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Router /groups/{id}/join [post]
func (c *GroupController) Join(ctx echo.Context) error {
	return c.changeMembership(ctx, c.GroupService.Join, "join group success")
}

// Leave handles POST /groups/:id/leave
// @Summary Leave a group
// @Tags Group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /groups/{id}/leave [post]
func (c *GroupController) Leave(ctx echo.Context) error {
	return c.changeMembership(ctx, c.GroupService.Leave, "leave group success")
}

func (c *GroupController) changeMembership(ctx echo.Context, change func(context.Context, uuid.UUID, uuid.UUID) *errors.AppError, message string) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	reqCtx := ctx.Request().Context()
	groupID := utils.ToUUID(ctx.Param("id"))
	if err := change(reqCtx, groupID, userID); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	group, err := c.GroupService.GetGroupByID(reqCtx, groupID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, group, message)
}

// Expel handles DELETE /groups/:id/expel/:userId
// @Summary Remove a member from a group
// @Tags Group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param userId path string true "Member ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /groups/{id}/expel/{userId} [delete]
func (c *GroupController) Expel(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	reqCtx := ctx.Request().Context()
	groupID := utils.ToUUID(ctx.Param("id"))
	if err := c.GroupService.Expel(reqCtx, groupID, userID, utils.ToUUID(ctx.Param("userId"))); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	group, err := c.GroupService.GetGroupByID(reqCtx, groupID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, group, "expel member success")
}

// GetCalendar handles GET /groups/:id/calendar
// @Summary Aggregated availability of every member
// @Tags Group
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} calendardto.CalendarResponse
// @Router /groups/{id}/calendar [get]
func (c *GroupController) GetCalendar(ctx echo.Context) error {
	cal, err := c.Calendars.AggregateForGroup(ctx.Request().Context(), utils.ToUUID(ctx.Param("id")))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, cal, "get group calendar success")
}

// ExportCalendar handles GET /groups/:id/calendar.ics
// @Summary Aggregated availability as iCalendar
// @Tags Group
// @Produce text/calendar
// @Param id path string true "Group ID"
// @Success 200 {string} string
// @Router /groups/{id}/calendar.ics [get]
func (c *GroupController) ExportCalendar(ctx echo.Context) error {
	body, err := c.Calendars.ExportGroupICS(ctx.Request().Context(), utils.ToUUID(ctx.Param("id")))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", body)
}
