package controller

import (
	"group-scheduler/core/controller"
	"group-scheduler/core/errors"
	"group-scheduler/core/middleware"
	"group-scheduler/core/utils"
	"group-scheduler/modules/event/dto"
	"group-scheduler/modules/event/service"
	"group-scheduler/modules/event/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

func (c *EventController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, *errors.AppError) {
	userID := middleware.CurrentUserID(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return userID, nil
}

func pathIDs(ctx echo.Context) (groupID, eventID uuid.UUID) {
	return utils.ToUUID(ctx.Param("id")), utils.ToUUID(ctx.Param("eventId"))
}

// GetEvents handles GET /groups/:id/events
// @Summary List a group's events
// @Tags Event
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} dto.EventResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /groups/{id}/events [get]
func (c *EventController) GetEvents(ctx echo.Context) error {
	events, err := c.EventService.GetEventsByGroup(ctx.Request().Context(), utils.ToUUID(ctx.Param("id")))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, events, "get events success")
}

// GetEvent handles GET /groups/:id/events/:eventId
// @Summary Get an event
// @Tags Event
// @Produce json
// @Param id path string true "Group ID"
// @Param eventId path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /groups/{id}/events/{eventId} [get]
func (c *EventController) GetEvent(ctx echo.Context) error {
	groupID, eventID := pathIDs(ctx)
	event, err := c.EventService.GetEvent(ctx.Request().Context(), groupID, eventID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, event, "get event success")
}

// CreateEvent handles POST /groups/:id/events
// @Summary Create an event
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body dto.EventRequest true "Event"
// @Success 201 {object} dto.EventResponse
// @Failure 400 {object} controller.ValidationResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /groups/{id}/events [post]
func (c *EventController) CreateEvent(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	req := new(dto.EventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateEventRequest(req); result.HasError() {
		return c.ValidationFailed(ctx, result)
	}

	event, err := c.EventService.CreateEvent(ctx.Request().Context(), utils.ToUUID(ctx.Param("id")), req, userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.CreatedResponse(ctx, event, "create event success")
}

// UpdateEvent handles PUT /groups/:id/events/:eventId
// @Summary Edit an event
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param eventId path string true "Event ID"
// @Param request body dto.EventRequest true "Event"
// @Success 200 {object} dto.EventResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /groups/{id}/events/{eventId} [put]
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	req := new(dto.EventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateEventRequest(req); result.HasError() {
		return c.ValidationFailed(ctx, result)
	}

	groupID, eventID := pathIDs(ctx)
	event, err := c.EventService.UpdateEvent(ctx.Request().Context(), groupID, eventID, req, userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, event, "update event success")
}

// DeleteEvent handles DELETE /groups/:id/events/:eventId
// @Summary Soft-delete an event
// @Tags Event
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param eventId path string true "Event ID"
// @Success 204
// @Failure 403 {object} controller.ErrorResponse
// @Router /groups/{id}/events/{eventId} [delete]
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	groupID, eventID := pathIDs(ctx)
	if err := c.EventService.DeleteEvent(ctx.Request().Context(), groupID, eventID, userID); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.NoContent(ctx)
}

// SignUp handles POST /groups/:id/events/:eventId/join
// @Summary Sign up for an event
// @Tags Event
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param eventId path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /groups/{id}/events/{eventId}/join [post]
func (c *EventController) SignUp(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	groupID, eventID := pathIDs(ctx)
	event, err := c.EventService.SignUp(ctx.Request().Context(), groupID, eventID, userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, event, "sign up success")
}

// Withdraw handles POST /groups/:id/events/:eventId/leave
// @Summary Withdraw from an event
// @Tags Event
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param eventId path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /groups/{id}/events/{eventId}/leave [post]
func (c *EventController) Withdraw(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	groupID, eventID := pathIDs(ctx)
	event, err := c.EventService.Withdraw(ctx.Request().Context(), groupID, eventID, userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, event, "withdraw success")
}
