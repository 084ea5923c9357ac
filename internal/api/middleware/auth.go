package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/loomra/crm-api/internal/token"
)

// ContextUserID is the echo context key holding the authenticated user id.
const ContextUserID = "userID"

// Auth validates the bearer token and injects the user id into the context.
// A missing token rejects with 401, a failed verification with 403; these are
// the only access-control enforcement points in the API.
func Auth(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")

			parts := strings.SplitN(authHeader, " ", 2)
			if authHeader == "" || len(parts) != 2 || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid token.")
			}

			c.Set(ContextUserID, userID)
			return next(c)
		}
	}
}
