package comment

import (
	"group-scheduler/core/database"
	"group-scheduler/core/middleware"
	"group-scheduler/core/queue"
	"group-scheduler/modules/comment/controller"
	"group-scheduler/modules/comment/repository"
	"group-scheduler/modules/comment/router"
	"group-scheduler/modules/comment/service"

	"github.com/labstack/echo/v4"
)

func Init(v1 *echo.Group, db database.IDatabase, q queue.Enqueuer, mw *middleware.Middleware, groups service.GroupDirectory) {
	repo := repository.NewCommentRepository(db)
	svc := service.NewCommentService(repo, groups, q)
	ctrl := controller.NewCommentController(svc)

	router.NewCommentRouter(ctrl).Register(v1, mw)
}
