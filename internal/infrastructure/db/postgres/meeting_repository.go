package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

// MeetingRepository persists meetings. Meetings are insert-and-list only.
type MeetingRepository struct {
	db *sql.DB
}

func NewMeetingRepository(db *sql.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// FindAll returns the user's meetings left-joined to their client name,
// ordered by meeting date ascending.
func (r *MeetingRepository) FindAll(ctx context.Context, userID int64) ([]domain.Meeting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.title, m.description, m.date, m.type, m.location, m.client_id, c.name, m.user_id
		 FROM meetings m
		 LEFT JOIN clients c ON m.client_id = c.id
		 WHERE m.user_id = $1
		 ORDER BY m.date`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	return scanMeetings(rows)
}

// FindByClient returns the user's meetings referencing one client.
func (r *MeetingRepository) FindByClient(ctx context.Context, userID, clientID int64) ([]domain.Meeting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.title, m.description, m.date, m.type, m.location, m.client_id, c.name, m.user_id
		 FROM meetings m
		 LEFT JOIN clients c ON m.client_id = c.id
		 WHERE m.client_id = $1 AND m.user_id = $2
		 ORDER BY m.date`,
		clientID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list client meetings: %w", err)
	}
	defer rows.Close()

	return scanMeetings(rows)
}

// Create inserts the meeting row and returns it with its generated id.
func (r *MeetingRepository) Create(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO meetings (title, description, date, type, location, client_id, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		meeting.Title, meeting.Description, meeting.Date, meeting.Type, meeting.Location,
		nullInt(meeting.ClientID), meeting.UserID,
	).Scan(&meeting.ID)
	if err != nil {
		return nil, fmt.Errorf("insert meeting: %w", err)
	}
	return meeting, nil
}

func scanMeetings(rows *sql.Rows) ([]domain.Meeting, error) {
	meetings := []domain.Meeting{}
	for rows.Next() {
		var (
			meeting    domain.Meeting
			clientID   sql.NullInt64
			clientName sql.NullString
		)
		err := rows.Scan(&meeting.ID, &meeting.Title, &meeting.Description, &meeting.Date,
			&meeting.Type, &meeting.Location, &clientID, &clientName, &meeting.UserID)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		if clientID.Valid {
			meeting.ClientID = &clientID.Int64
		}
		if clientName.Valid {
			meeting.ClientName = &clientName.String
		}
		meetings = append(meetings, meeting)
	}
	return meetings, rows.Err()
}

// nullInt adapts an optional id to its driver representation.
func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// nullTime adapts an optional timestamp to its driver representation.
func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

var _ ports.MeetingRepository = (*MeetingRepository)(nil)
