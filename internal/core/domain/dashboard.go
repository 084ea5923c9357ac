package domain

import "time"

// DashboardStats holds the per-user counters shown on the dashboard.
type DashboardStats struct {
	TotalClients     int `json:"totalClients"`
	ActiveTasks      int `json:"activeTasks"`
	UpcomingMeetings int `json:"upcomingMeetings"`
	CompletedTasks   int `json:"completedTasks"`
}

// ActivityItem is one entry in the recent-activity feed: a client created in
// the last 30 days, a task touched in the last 30 days, or an upcoming
// meeting. It is a recency view over live rows, not an event log.
type ActivityItem struct {
	ID     int64     `json:"id"`
	Type   string    `json:"type"`
	Title  string    `json:"title"`
	Date   time.Time `json:"date"`
	Status string    `json:"status,omitempty"`
}
