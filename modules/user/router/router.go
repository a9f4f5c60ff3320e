package router

import (
	"group-scheduler/core/middleware"
	"group-scheduler/modules/user/controller"

	"github.com/labstack/echo/v4"
)

type UserRouter struct {
	controller *controller.UserController
}

func NewUserRouter(controller *controller.UserController) *UserRouter {
	return &UserRouter{controller: controller}
}

func (r *UserRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	users := v1.Group("/users")
	users.POST("", r.controller.CreateUser)
	users.GET("", r.controller.GetUsers)
	users.GET("/me", r.controller.GetMe, mw.AuthMiddleware())
	users.PUT("/me", r.controller.UpdateMe, mw.AuthMiddleware())
	users.DELETE("/me", r.controller.DeleteMe, mw.AuthMiddleware())
	users.POST("/me/photo", r.controller.UploadPhoto, mw.AuthMiddleware())
	users.GET("/by-email/:email", r.controller.GetUserByEmail)
	users.GET("/:id", r.controller.GetUserByID)
}
