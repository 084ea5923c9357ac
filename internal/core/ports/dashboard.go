package ports

import (
	"context"

	"github.com/loomra/crm-api/internal/core/domain"
)

// DashboardService aggregates per-user stats and recent activity.
type DashboardService interface {
	Stats(ctx context.Context, userID int64) (*domain.DashboardStats, error)
	Activity(ctx context.Context, userID int64) ([]domain.ActivityItem, error)
}

// DashboardRepository runs the scoped aggregate queries behind the dashboard.
type DashboardRepository interface {
	Stats(ctx context.Context, userID int64) (*domain.DashboardStats, error)
	RecentClients(ctx context.Context, userID int64) ([]domain.ActivityItem, error)
	RecentTasks(ctx context.Context, userID int64) ([]domain.ActivityItem, error)
	UpcomingMeetings(ctx context.Context, userID int64) ([]domain.ActivityItem, error)
}
