package domain

import "time"

// Client is a CRM contact owned by exactly one user. Tags is the aggregated
// tag list; CustomFields is only populated on detail reads.
type Client struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Company      string            `json:"company"`
	Address      string            `json:"address"`
	Notes        string            `json:"notes"`
	UserID       int64             `json:"user_id"`
	CreatedAt    time.Time         `json:"created_at"`
	Tags         []string          `json:"tags"`
	CustomFields map[string]string `json:"customFields,omitempty"`
}
