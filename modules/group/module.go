package group

import (
	"group-scheduler/core/database"
	"group-scheduler/core/middleware"
	"group-scheduler/core/queue"
	"group-scheduler/modules/group/controller"
	"group-scheduler/modules/group/repository"
	"group-scheduler/modules/group/router"
	"group-scheduler/modules/group/service"

	"github.com/labstack/echo/v4"
)

// NewService builds the group service. Other modules depend on it for
// membership checks, so it is constructed before any route is registered.
func NewService(db database.IDatabase, q queue.Enqueuer) *service.GroupService {
	return service.NewGroupService(repository.NewGroupRepository(db), db, q)
}

func Init(v1 *echo.Group, mw *middleware.Middleware, svc service.GroupServiceInterface, calendars controller.CalendarAggregator) {
	ctrl := controller.NewGroupController(svc, calendars)
	router.NewGroupRouter(ctrl).Register(v1, mw)
}
