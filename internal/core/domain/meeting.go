package domain

import "time"

// Meeting types as stored.
const (
	MeetingTypeInPerson = "in_person"
	MeetingTypeVideo    = "video"
	MeetingTypePhone    = "phone"
)

// Meeting is a scheduled appointment owned by a user, optionally linked to a
// client. ClientName is only set on reads that join the clients table.
type Meeting struct {
	ID          int64
	Title       string
	Description string
	Date        time.Time
	Type        string
	Location    string
	ClientID    *int64
	ClientName  *string
	UserID      int64
}
