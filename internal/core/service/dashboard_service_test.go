package service

import (
	"context"
	"testing"
	"time"

	"github.com/loomra/crm-api/internal/core/domain"
)

type stubDashboardRepo struct {
	statsFn            func(ctx context.Context, userID int64) (*domain.DashboardStats, error)
	recentClientsFn    func(ctx context.Context, userID int64) ([]domain.ActivityItem, error)
	recentTasksFn      func(ctx context.Context, userID int64) ([]domain.ActivityItem, error)
	upcomingMeetingsFn func(ctx context.Context, userID int64) ([]domain.ActivityItem, error)
}

func (r *stubDashboardRepo) Stats(ctx context.Context, userID int64) (*domain.DashboardStats, error) {
	return r.statsFn(ctx, userID)
}

func (r *stubDashboardRepo) RecentClients(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
	return r.recentClientsFn(ctx, userID)
}

func (r *stubDashboardRepo) RecentTasks(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
	return r.recentTasksFn(ctx, userID)
}

func (r *stubDashboardRepo) UpcomingMeetings(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
	return r.upcomingMeetingsFn(ctx, userID)
}

func activityAt(id int64, typ string, offset time.Duration) domain.ActivityItem {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return domain.ActivityItem{ID: id, Type: typ, Title: typ, Date: base.Add(offset)}
}

func TestDashboardService_Activity_MergesSortedDesc(t *testing.T) {
	repo := &stubDashboardRepo{
		recentClientsFn: func(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
			return []domain.ActivityItem{activityAt(1, "client", 2 * time.Hour)}, nil
		},
		recentTasksFn: func(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
			return []domain.ActivityItem{activityAt(2, "task", 5 * time.Hour)}, nil
		},
		upcomingMeetingsFn: func(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
			return []domain.ActivityItem{activityAt(3, "meeting", 1 * time.Hour)}, nil
		},
	}
	svc := NewDashboardService(repo)

	activity, err := svc.Activity(context.Background(), 1)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(activity) != 3 {
		t.Fatalf("expected 3 items, got %d", len(activity))
	}
	for i := 1; i < len(activity); i++ {
		if activity[i].Date.After(activity[i-1].Date) {
			t.Fatalf("not sorted newest first: %v before %v", activity[i-1].Date, activity[i].Date)
		}
	}
	if activity[0].Type != "task" || activity[2].Type != "meeting" {
		t.Fatalf("unexpected ordering: %+v", activity)
	}
}

func TestDashboardService_Activity_TruncatesToTen(t *testing.T) {
	many := func(typ string, n int) []domain.ActivityItem {
		items := make([]domain.ActivityItem, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, activityAt(int64(i), typ, time.Duration(i)*time.Minute))
		}
		return items
	}
	repo := &stubDashboardRepo{
		recentClientsFn: func(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
			return many("client", 5), nil
		},
		recentTasksFn: func(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
			return many("task", 5), nil
		},
		upcomingMeetingsFn: func(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
			return many("meeting", 5), nil
		},
	}
	svc := NewDashboardService(repo)

	activity, err := svc.Activity(context.Background(), 1)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(activity) != 10 {
		t.Fatalf("expected 10 items, got %d", len(activity))
	}
}

func TestDashboardService_Activity_EmptySources(t *testing.T) {
	repo := &stubDashboardRepo{
		recentClientsFn: func(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
			return nil, nil
		},
		recentTasksFn: func(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
			return nil, nil
		},
		upcomingMeetingsFn: func(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
			return nil, nil
		},
	}
	svc := NewDashboardService(repo)

	activity, err := svc.Activity(context.Background(), 1)
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if activity == nil || len(activity) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", activity)
	}
}

func TestDashboardService_Stats_PassThrough(t *testing.T) {
	repo := &stubDashboardRepo{
		statsFn: func(ctx context.Context, userID int64) (*domain.DashboardStats, error) {
			return &domain.DashboardStats{TotalClients: 4, ActiveTasks: 2, UpcomingMeetings: 1, CompletedTasks: 3}, nil
		},
	}
	svc := NewDashboardService(repo)

	stats, err := svc.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalClients != 4 || stats.CompletedTasks != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
