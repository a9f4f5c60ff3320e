package controller

import (
	"group-scheduler/core/controller"
	"group-scheduler/core/errors"
	"group-scheduler/core/middleware"
	"group-scheduler/core/utils"
	"group-scheduler/modules/comment/dto"
	"group-scheduler/modules/comment/service"
	"group-scheduler/modules/comment/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CommentController struct {
	controller.BaseController
	CommentService service.CommentServiceInterface
}

func NewCommentController(svc service.CommentServiceInterface) *CommentController {
	return &CommentController{
		BaseController: controller.NewBaseController(),
		CommentService: svc,
	}
}

func (c *CommentController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, *errors.AppError) {
	userID := middleware.CurrentUserID(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return userID, nil
}

// GetComments handles GET /groups/:id/events/:eventId/comments
// @Summary List comments on an event
// @Tags Comment
// @Security BearerAuth
// @Produce json
// @Param id path string true "Group ID"
// @Param eventId path string true "Event ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /groups/{id}/events/{eventId}/comments [get]
func (c *CommentController) GetComments(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	comments, err := c.CommentService.GetComments(ctx.Request().Context(),
		utils.ToUUID(ctx.Param("id")), utils.ToUUID(ctx.Param("eventId")), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, comments, "get comments success")
}

// CreateComment handles POST /groups/:id/events/:eventId/comments
// @Summary Comment on an event
// @Tags Comment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param eventId path string true "Event ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.CommentResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /groups/{id}/events/{eventId}/comments [post]
func (c *CommentController) CreateComment(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	req := new(dto.CreateCommentRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateCreateCommentRequest(req); result.HasError() {
		return c.ValidationFailed(ctx, result)
	}

	comment, err := c.CommentService.CreateComment(ctx.Request().Context(),
		utils.ToUUID(ctx.Param("id")), utils.ToUUID(ctx.Param("eventId")), userID, req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.CreatedResponse(ctx, comment, "create comment success")
}

// DeleteComment handles DELETE /groups/:id/events/:eventId/comments/:commentId
// @Summary Delete a comment
// @Tags Comment
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param eventId path string true "Event ID"
// @Param commentId path string true "Comment ID"
// @Success 204
// @Failure 403 {object} controller.ErrorResponse
// @Router /groups/{id}/events/{eventId}/comments/{commentId} [delete]
func (c *CommentController) DeleteComment(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	err := c.CommentService.DeleteComment(ctx.Request().Context(),
		utils.ToUUID(ctx.Param("id")), utils.ToUUID(ctx.Param("eventId")), utils.ToUUID(ctx.Param("commentId")), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.NoContent(ctx)
}
