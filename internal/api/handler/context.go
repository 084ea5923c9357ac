package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loomra/crm-api/internal/api/middleware"
)

// userIDFrom extracts the authenticated user id injected by the Auth
// middleware. Its presence proves the middleware ran; a handler reached
// without it rejects with 401.
func userIDFrom(c echo.Context) (int64, error) {
	userID, ok := c.Get(middleware.ContextUserID).(int64)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
	}
	return userID, nil
}
