package controller

import (
	"net/http"

	"group-scheduler/core/controller"
	"group-scheduler/core/errors"
	"group-scheduler/core/logger"
	"group-scheduler/core/middleware"
	"group-scheduler/modules/auth/dto"
	"group-scheduler/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

// GoogleLogin handles GET /auth/google/login
// @Summary Start Google sign-in
// @Description Redirects to Google, or returns the URL as JSON when format=json
// @Tags Auth
// @Produce json
// @Param format query string false "json to receive the URL instead of a redirect"
// @Success 302
// @Success 200 {object} dto.GoogleAuthURLResponse
// @Router /auth/google/login [get]
func (c *AuthController) GoogleLogin(ctx echo.Context) error {
	authURL, err := c.AuthService.GetGoogleAuthURL(ctx.Request().Context())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	if ctx.QueryParam("format") == "json" {
		return c.SuccessResponse(ctx, dto.GoogleAuthURLResponse{AuthURL: authURL}, "Google auth url")
	}
	return ctx.Redirect(http.StatusFound, authURL)
}

// GoogleCallback handles GET /auth/google/callback
// @Summary Complete Google sign-in
// @Tags Auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State issued by /auth/google/login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /auth/google/callback [get]
func (c *AuthController) GoogleCallback(ctx echo.Context) error {
	if errParam := ctx.QueryParam("error"); errParam != "" {
		logger.Warn("AuthController:GoogleCallback:ProviderError", "error", errParam, "description", ctx.QueryParam("error_description"))
		return c.BadRequest(errors.ErrInvalidRequestData, "Google OAuth error: "+errParam)
	}

	code := ctx.QueryParam("code")
	if code == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "authorization code is required")
	}
	state := ctx.QueryParam("state")
	if state == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "state parameter is required")
	}

	resp, err := c.AuthService.HandleGoogleCallback(ctx.Request().Context(), code, state)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.SuccessResponse(ctx, resp, "Google login success")
}

// Logout handles POST /auth/logout
// @Summary Revoke the current access token
// @Tags Auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} controller.ErrorResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx echo.Context) error {
	token := middleware.CurrentToken(ctx)
	if token == "" {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil))
	}

	if err := c.AuthService.Logout(ctx.Request().Context(), token); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.NoContent(ctx)
}
