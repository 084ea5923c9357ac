package service

import (
	"context"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

// MeetingService implements meeting listing and creation. There is no update
// or delete path for meetings.
type MeetingService struct {
	repo ports.MeetingRepository
}

func NewMeetingService(repo ports.MeetingRepository) *MeetingService {
	return &MeetingService{repo: repo}
}

// List returns the user's meetings joined with their client name, ordered by
// meeting date ascending.
func (s *MeetingService) List(ctx context.Context, userID int64) ([]domain.Meeting, error) {
	return s.repo.FindAll(ctx, userID)
}

// ListForClient returns the user's meetings referencing one client.
func (s *MeetingService) ListForClient(ctx context.Context, userID, clientID int64) ([]domain.Meeting, error) {
	return s.repo.FindByClient(ctx, userID, clientID)
}

// Create inserts a single meeting row.
func (s *MeetingService) Create(ctx context.Context, userID int64, in ports.MeetingInput) (*domain.Meeting, error) {
	return s.repo.Create(ctx, &domain.Meeting{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Type:        in.Type,
		Location:    in.Location,
		ClientID:    in.ClientID,
		UserID:      userID,
	})
}
