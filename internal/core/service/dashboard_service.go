package service

import (
	"context"
	"sort"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

// activityLimit caps the merged recent-activity feed.
const activityLimit = 10

// DashboardService aggregates per-user counters and a best-effort recency
// view over clients, tasks, and meetings.
type DashboardService struct {
	repo ports.DashboardRepository
}

func NewDashboardService(repo ports.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Stats runs the four scoped count queries.
func (s *DashboardService) Stats(ctx context.Context, userID int64) (*domain.DashboardStats, error) {
	return s.repo.Stats(ctx, userID)
}

// Activity merges recent clients, recently touched tasks, and upcoming
// meetings, sorted newest first and truncated to activityLimit entries.
// Entries fall out of the view once outside their source window.
func (s *DashboardService) Activity(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
	clients, err := s.repo.RecentClients(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.RecentTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	meetings, err := s.repo.UpcomingMeetings(ctx, userID)
	if err != nil {
		return nil, err
	}

	activity := make([]domain.ActivityItem, 0, len(clients)+len(tasks)+len(meetings))
	activity = append(activity, clients...)
	activity = append(activity, tasks...)
	activity = append(activity, meetings...)

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Date.After(activity[j].Date)
	})

	if len(activity) > activityLimit {
		activity = activity[:activityLimit]
	}
	return activity, nil
}
