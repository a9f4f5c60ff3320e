package middleware

import (
	"context"

	"group-scheduler/core/constants"
	"group-scheduler/core/controller"
	"group-scheduler/core/errors"
	"group-scheduler/core/utils"

	"github.com/labstack/echo/v4"
)

// TokenVerifier resolves a bearer token into the caller's claims.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError)
}

type Middleware struct {
	verifier TokenVerifier
	base     controller.BaseController
}

func NewMiddleware(verifier TokenVerifier) *Middleware {
	return &Middleware{
		verifier: verifier,
		base:     controller.NewBaseController(),
	}
}

// AuthMiddleware rejects requests without a valid, non-revoked bearer token.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c)
			if err != nil {
				return m.base.ErrorResponse(c, errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing authorization header", err))
			}

			claims, appErr := m.verifier.VerifyToken(c.Request().Context(), token)
			if appErr != nil {
				return m.base.ErrorResponse(c, appErr)
			}

			c.Set(constants.ContextTokenData, claims)
			c.Set(constants.ContextToken, token)
			return next(c)
		}
	}
}

// OptionalAuthMiddleware resolves the caller when a valid token is present and
// lets the request through anonymously otherwise.
func (m *Middleware) OptionalAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c)
			if err != nil {
				return next(c)
			}

			claims, appErr := m.verifier.VerifyToken(c.Request().Context(), token)
			if appErr == nil {
				c.Set(constants.ContextTokenData, claims)
				c.Set(constants.ContextToken, token)
			}
			return next(c)
		}
	}
}
