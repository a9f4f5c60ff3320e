package calendar

import (
	"group-scheduler/core/database"
	"group-scheduler/core/middleware"
	"group-scheduler/modules/calendar/controller"
	"group-scheduler/modules/calendar/repository"
	"group-scheduler/modules/calendar/router"
	"group-scheduler/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

func Init(v1 *echo.Group, db database.IDatabase, mw *middleware.Middleware, members service.MemberLister) *service.CalendarService {
	repo := repository.NewCalendarRepository(db)
	svc := service.NewCalendarService(repo, members)
	ctrl := controller.NewCalendarController(svc)

	router.NewCalendarRouter(ctrl).Register(v1, mw)

	return svc
}
