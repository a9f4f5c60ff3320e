package notification

import (
	"group-scheduler/core/database"
	"group-scheduler/core/middleware"
	"group-scheduler/modules/notification/controller"
	"group-scheduler/modules/notification/handler"
	"group-scheduler/modules/notification/repository"
	"group-scheduler/modules/notification/router"
	"group-scheduler/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init registers the inbox routes and the task handlers that fill the inbox.
func Init(v1 *echo.Group, db database.IDatabase, mw *middleware.Middleware, members service.MemberLister, publisher service.Publisher, worker handler.Registrar) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, members, publisher)

	handler.NewTaskHandler(svc).Register(worker)

	ctrl := controller.NewNotificationController(svc)
	router.NewNotificationRouter(ctrl).Register(v1, mw)

	return svc
}
