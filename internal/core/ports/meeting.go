package ports

import (
	"context"
	"time"

	"github.com/loomra/crm-api/internal/core/domain"
)

// MeetingInput carries the fields submitted on meeting creation.
type MeetingInput struct {
	Title       string
	Description string
	Date        time.Time
	Type        string
	Location    string
	ClientID    *int64
}

// MeetingService implements meeting listing and creation. Meetings have no
// update or delete operation.
type MeetingService interface {
	List(ctx context.Context, userID int64) ([]domain.Meeting, error)
	ListForClient(ctx context.Context, userID, clientID int64) ([]domain.Meeting, error)
	Create(ctx context.Context, userID int64, in MeetingInput) (*domain.Meeting, error)
}

// MeetingRepository persists meetings. List reads join the client name.
type MeetingRepository interface {
	FindAll(ctx context.Context, userID int64) ([]domain.Meeting, error)
	FindByClient(ctx context.Context, userID, clientID int64) ([]domain.Meeting, error)
	Create(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error)
}
