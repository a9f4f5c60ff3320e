package router

import (
	"group-scheduler/core/middleware"
	"group-scheduler/modules/group/controller"

	"github.com/labstack/echo/v4"
)

type GroupRouter struct {
	controller *controller.GroupController
}

func NewGroupRouter(controller *controller.GroupController) *GroupRouter {
	return &GroupRouter{controller: controller}
}

func (r *GroupRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	groups := v1.Group("/groups")
	groups.GET("", r.controller.GetGroups)
	groups.POST("", r.controller.CreateGroup, mw.OptionalAuthMiddleware())
	groups.GET("/by-slug/:slug", r.controller.GetGroupBySlug)
	groups.GET("/:id", r.controller.GetGroupByID)
	groups.PUT("/:id", r.controller.UpdateGroup, mw.AuthMiddleware())
	groups.GET("/:id/members", r.controller.GetMembers)
	groups.POST("/:id/join", r.controller.Join, mw.AuthMiddleware())
	groups.POST("/:id/leave", r.controller.Leave, mw.AuthMiddleware())
	groups.DELETE("/:id/expel/:userId", r.controller.Expel, mw.AuthMiddleware())
	groups.GET("/:id/calendar", r.controller.GetCalendar)
	groups.GET("/:id/calendar.ics", r.controller.ExportCalendar)
}
