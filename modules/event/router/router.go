package router

import (
	"group-scheduler/core/middleware"
	"group-scheduler/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{controller: controller}
}

func (r *EventRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	events := v1.Group("/groups/:id/events")
	events.GET("", r.controller.GetEvents)
	events.GET("/:eventId", r.controller.GetEvent)
	events.POST("", r.controller.CreateEvent, mw.AuthMiddleware())
	events.PUT("/:eventId", r.controller.UpdateEvent, mw.AuthMiddleware())
	events.DELETE("/:eventId", r.controller.DeleteEvent, mw.AuthMiddleware())
	events.POST("/:eventId/join", r.controller.SignUp, mw.AuthMiddleware())
	events.POST("/:eventId/leave", r.controller.Withdraw, mw.AuthMiddleware())
}
