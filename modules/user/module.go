package user

import (
	"group-scheduler/core/database"
	"group-scheduler/core/middleware"
	"group-scheduler/core/storage"
	"group-scheduler/modules/user/controller"
	"group-scheduler/modules/user/repository"
	"group-scheduler/modules/user/router"
	"group-scheduler/modules/user/service"

	"github.com/labstack/echo/v4"
)

// NewService builds the user service. The auth module provisions users
// through it, so it exists before routes are registered.
func NewService(db database.IDatabase, tokens service.TokenIssuer, files storage.FileStorage) *service.UserService {
	return service.NewUserService(repository.NewUserRepository(db), tokens, files)
}

func Init(v1 *echo.Group, mw *middleware.Middleware, svc service.UserServiceInterface) {
	ctrl := controller.NewUserController(svc)
	router.NewUserRouter(ctrl).Register(v1, mw)
}
