package router

import (
	"group-scheduler/core/middleware"
	"group-scheduler/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

func (r *AuthRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	auth := v1.Group("/auth")
	auth.GET("/google/login", r.controller.GoogleLogin)
	auth.GET("/google/callback", r.controller.GoogleCallback)
	auth.POST("/logout", r.controller.Logout, mw.AuthMiddleware())
}
