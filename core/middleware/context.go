package middleware

import (
	"group-scheduler/core/constants"
	"group-scheduler/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CurrentUserID returns the authenticated caller id, or uuid.Nil.
func CurrentUserID(c echo.Context) uuid.UUID {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil
	}
	return claims.UserID
}

func CurrentToken(c echo.Context) string {
	token, _ := c.Get(constants.ContextToken).(string)
	return token
}
