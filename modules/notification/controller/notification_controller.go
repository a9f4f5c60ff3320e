package controller

import (
	"group-scheduler/core/controller"
	"group-scheduler/core/errors"
	"group-scheduler/core/middleware"
	"group-scheduler/core/params"
	"group-scheduler/modules/notification/dto"
	"group-scheduler/modules/notification/service"
	"group-scheduler/modules/notification/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	controller.BaseController
	NotificationService service.NotificationServiceInterface
}

func NewNotificationController(svc service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		BaseController:      controller.NewBaseController(),
		NotificationService: svc,
	}
}

func (c *NotificationController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, *errors.AppError) {
	userID := middleware.CurrentUserID(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return userID, nil
}

// GetMyNotifications handles GET /notifications
// @Summary List the caller's notifications
// @Description Newest first
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Param page_number query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.PaginatedNotificationResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /notifications [get]
func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	result, err := c.NotificationService.GetMyNotifications(ctx.Request().Context(), userID, *params.NewQueryParams(ctx))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, result, "get notifications success")
}

// CountUnread handles GET /notifications/unread-count
// @Summary Count unread notifications
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UnreadCountResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /notifications/unread-count [get]
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	count, err := c.NotificationService.CountUnread(ctx.Request().Context(), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, count, "count unread success")
}

// MarkAsRead handles PUT /notifications/mark-read
// @Summary Mark notifications as read
// @Tags Notification
// @Security BearerAuth
// @Accept json
// @Param request body dto.MarkAsReadRequest true "Notification ids"
// @Success 204
// @Failure 400 {object} controller.ValidationResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /notifications/mark-read [put]
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	req := new(dto.MarkAsReadRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateMarkAsReadRequest(req); result.HasError() {
		return c.ValidationFailed(ctx, result)
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		ids = append(ids, uuid.MustParse(raw))
	}

	if err := c.NotificationService.MarkAsRead(ctx.Request().Context(), userID, ids); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.NoContent(ctx)
}

// MarkAllAsRead handles PUT /notifications/mark-all-read
// @Summary Mark every notification as read
// @Tags Notification
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} controller.ErrorResponse
// @Router /notifications/mark-all-read [put]
func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	if err := c.NotificationService.MarkAllAsRead(ctx.Request().Context(), userID); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.NoContent(ctx)
}
