package event

import (
	"group-scheduler/core/cache"
	"group-scheduler/core/database"
	"group-scheduler/core/middleware"
	"group-scheduler/core/queue"
	eventcache "group-scheduler/modules/event/cache"
	"group-scheduler/modules/event/controller"
	"group-scheduler/modules/event/repository"
	"group-scheduler/modules/event/router"
	"group-scheduler/modules/event/service"

	"github.com/labstack/echo/v4"
)

func Init(v1 *echo.Group, db database.IDatabase, c cache.Cache, q queue.Enqueuer, mw *middleware.Middleware, groups service.GroupDirectory) *service.EventService {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, db, groups, eventcache.NewEventCache(c), q)
	ctrl := controller.NewEventController(svc)

	router.NewEventRouter(ctrl).Register(v1, mw)

	return svc
}
