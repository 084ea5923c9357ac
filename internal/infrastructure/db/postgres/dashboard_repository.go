package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

// activitySourceLimit caps each of the three recency queries feeding the
// activity view; the service merges and truncates the union.
const activitySourceLimit = 5

// DashboardRepository runs the scoped aggregate queries behind the dashboard.
type DashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Stats runs four independent count queries scoped to the user. Active tasks
// are those whose status is not "done"; upcoming meetings lie in the future.
func (r *DashboardRepository) Stats(ctx context.Context, userID int64) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	counts := []struct {
		query string
		args  []any
		dest  *int
	}{
		{`SELECT COUNT(*) FROM clients WHERE user_id = $1`, []any{userID}, &stats.TotalClients},
		{`SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND status != $2`, []any{userID, domain.TaskStatusDone}, &stats.ActiveTasks},
		{`SELECT COUNT(*) FROM meetings WHERE user_id = $1 AND date > NOW()`, []any{userID}, &stats.UpcomingMeetings},
		{`SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND status = $2`, []any{userID, domain.TaskStatusDone}, &stats.CompletedTasks},
	}

	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("dashboard count: %w", err)
		}
	}
	return stats, nil
}

// RecentClients returns the newest clients created in the last 30 days.
func (r *DashboardRepository) RecentClients(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM clients
		 WHERE user_id = $1 AND created_at > NOW() - INTERVAL '30 days'
		 ORDER BY created_at DESC LIMIT $2`,
		userID, activitySourceLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent clients: %w", err)
	}
	defer rows.Close()

	items := []domain.ActivityItem{}
	for rows.Next() {
		item := domain.ActivityItem{Type: "client"}
		var name string
		if err := rows.Scan(&item.ID, &name, &item.Date); err != nil {
			return nil, fmt.Errorf("scan recent client: %w", err)
		}
		item.Title = "New client: " + name
		items = append(items, item)
	}
	return items, rows.Err()
}

// RecentTasks returns the tasks most recently touched in the last 30 days.
func (r *DashboardRepository) RecentTasks(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, status, updated_at FROM tasks
		 WHERE user_id = $1 AND updated_at > NOW() - INTERVAL '30 days'
		 ORDER BY updated_at DESC LIMIT $2`,
		userID, activitySourceLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent tasks: %w", err)
	}
	defer rows.Close()

	items := []domain.ActivityItem{}
	for rows.Next() {
		item := domain.ActivityItem{Type: "task"}
		if err := rows.Scan(&item.ID, &item.Title, &item.Status, &item.Date); err != nil {
			return nil, fmt.Errorf("scan recent task: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpcomingMeetings returns the nearest future meetings.
func (r *DashboardRepository) UpcomingMeetings(ctx context.Context, userID int64) ([]domain.ActivityItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, date FROM meetings
		 WHERE user_id = $1 AND date > NOW()
		 ORDER BY date ASC LIMIT $2`,
		userID, activitySourceLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("upcoming meetings: %w", err)
	}
	defer rows.Close()

	items := []domain.ActivityItem{}
	for rows.Next() {
		item := domain.ActivityItem{Type: "meeting"}
		if err := rows.Scan(&item.ID, &item.Title, &item.Date); err != nil {
			return nil, fmt.Errorf("scan upcoming meeting: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

var _ ports.DashboardRepository = (*DashboardRepository)(nil)
