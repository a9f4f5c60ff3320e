package auth

import (
	"group-scheduler/core/cache"
	"group-scheduler/core/config"
	"group-scheduler/core/logger"
	"group-scheduler/core/middleware"
	"group-scheduler/modules/auth/controller"
	"group-scheduler/modules/auth/router"
	"group-scheduler/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// NewService builds the auth service. Its VerifyToken backs the middleware
// every other module authenticates through.
func NewService(c cache.Cache, tokens service.TokenManager, users service.UserProvisioner, cfg config.GoogleAPIConfig) *service.AuthService {
	oauthConfig := service.NewGoogleOAuthConfig(cfg)
	if oauthConfig == nil {
		logger.Info("Auth:NewService:GoogleDisabled", "reason", "Google OAuth credentials not configured")
	}
	return service.NewAuthService(c, tokens, users, oauthConfig)
}

func Init(v1 *echo.Group, mw *middleware.Middleware, svc service.AuthServiceInterface) {
	ctrl := controller.NewAuthController(svc)
	router.NewAuthRouter(ctrl).Register(v1, mw)
}
