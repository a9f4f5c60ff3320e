package controller

import (
	"group-scheduler/core/controller"
	"group-scheduler/core/errors"
	"group-scheduler/core/middleware"
	"group-scheduler/core/utils"
	"group-scheduler/modules/calendar/dto"
	"group-scheduler/modules/calendar/service"
	"group-scheduler/modules/calendar/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarServiceInterface
}

func NewCalendarController(svc service.CalendarServiceInterface) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: svc,
	}
}

func (c *CalendarController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, *errors.AppError) {
	userID := middleware.CurrentUserID(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return userID, nil
}

// GetCalendars handles GET /calendars
// @Summary List calendars
// @Tags Calendar
// @Produce json
// @Success 200 {array} dto.CalendarResponse
// @Router /calendars [get]
func (c *CalendarController) GetCalendars(ctx echo.Context) error {
	cals, err := c.CalendarService.GetCalendars(ctx.Request().Context())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, cals, "get calendars success")
}

// GetCalendarByID handles GET /calendars/:id
// @Summary Get a calendar
// @Tags Calendar
// @Produce json
// @Param id path string true "Calendar ID"
// @Success 200 {object} dto.CalendarResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /calendars/{id} [get]
func (c *CalendarController) GetCalendarByID(ctx echo.Context) error {
	cal, err := c.CalendarService.GetCalendarByID(ctx.Request().Context(), utils.ToUUID(ctx.Param("id")))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, cal, "get calendar success")
}

// GetCalendarByUserID handles GET /calendars/by-user/:userId
// @Summary Get a user's calendar
// @Tags Calendar
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.CalendarResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /calendars/by-user/{userId} [get]
func (c *CalendarController) GetCalendarByUserID(ctx echo.Context) error {
	cal, err := c.CalendarService.GetCalendarByUserID(ctx.Request().Context(), utils.ToUUID(ctx.Param("userId")))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, cal, "get calendar success")
}

// GetMyCalendar handles GET /calendars/me
// @Summary Get the caller's calendar
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.CalendarResponse
// @Router /calendars/me [get]
func (c *CalendarController) GetMyCalendar(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	cal, err := c.CalendarService.GetCalendarByUserID(ctx.Request().Context(), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, cal, "get calendar success")
}

// SaveCalendar handles POST /calendars
// @Summary Create or replace the caller's calendar
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CalendarRequest true "Recurring blocks and exceptions"
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} controller.ValidationResponse
// @Router /calendars [post]
func (c *CalendarController) SaveCalendar(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	req := new(dto.CalendarRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateCalendarRequest(req); result.HasError() {
		return c.ValidationFailed(ctx, result)
	}

	cal, appErr := c.CalendarService.UpsertCalendar(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, cal, "save calendar success")
}

// UpdateCalendar handles PUT /calendars
// @Summary Replace the caller's existing calendar
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CalendarRequest true "Recurring blocks and exceptions"
// @Success 200 {object} dto.CalendarResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /calendars [put]
func (c *CalendarController) UpdateCalendar(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	req := new(dto.CalendarRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateCalendarRequest(req); result.HasError() {
		return c.ValidationFailed(ctx, result)
	}

	cal, appErr := c.CalendarService.UpdateCalendar(ctx.Request().Context(), userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, cal, "update calendar success")
}

// DeleteCalendar handles DELETE /calendars/:id
// @Summary Delete a calendar owned by the caller
// @Tags Calendar
// @Security BearerAuth
// @Param id path string true "Calendar ID"
// @Success 204
// @Failure 403 {object} controller.ErrorResponse
// @Router /calendars/{id} [delete]
func (c *CalendarController) DeleteCalendar(ctx echo.Context) error {
	userID, appErr := c.getUserIDFromContext(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	if appErr := c.CalendarService.DeleteCalendar(ctx.Request().Context(), utils.ToUUID(ctx.Param("id")), userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.NoContent(ctx)
}
