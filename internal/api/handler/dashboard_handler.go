package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loomra/crm-api/internal/core/ports"
)

// DashboardHandler serves the per-user stats and recent-activity views.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats returns the caller's dashboard counters.
//
// @Summary      Dashboard stats
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DashboardStats
// @Failure      500  {object}  map[string]string
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error fetching dashboard stats."})
	}

	return c.JSON(http.StatusOK, stats)
}

// Activity returns the caller's merged recent-activity feed.
//
// @Summary      Dashboard activity
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ActivityItem
// @Failure      500  {object}  map[string]string
// @Router       /api/dashboard/activity [get]
func (h *DashboardHandler) Activity(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	activity, err := h.service.Activity(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error fetching dashboard activity."})
	}

	return c.JSON(http.StatusOK, activity)
}
