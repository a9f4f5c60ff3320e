package router

import (
	"group-scheduler/core/middleware"
	"group-scheduler/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(controller *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{controller: controller}
}

func (r *CalendarRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	calendars := v1.Group("/calendars")
	calendars.GET("", r.controller.GetCalendars)
	calendars.GET("/by-user/:userId", r.controller.GetCalendarByUserID)
	calendars.GET("/me", r.controller.GetMyCalendar, mw.AuthMiddleware())
	calendars.GET("/:id", r.controller.GetCalendarByID)
	calendars.POST("", r.controller.SaveCalendar, mw.AuthMiddleware())
	calendars.PUT("", r.controller.UpdateCalendar, mw.AuthMiddleware())
	calendars.DELETE("/:id", r.controller.DeleteCalendar, mw.AuthMiddleware())
}
