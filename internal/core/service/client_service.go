package service

import (
	"context"

	"github.com/loomra/crm-api/internal/api/metrics"
	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

// ClientService implements client CRUD. Every operation is scoped to the
// owning user; a valid id belonging to another user behaves exactly like a
// missing one.
type ClientService struct {
	repo ports.ClientRepository
}

func NewClientService(repo ports.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// List returns the user's clients with aggregated tags, ordered by name.
func (s *ClientService) List(ctx context.Context, userID int64) ([]domain.Client, error) {
	return s.repo.FindAll(ctx, userID)
}

// Get returns one client with its tags and custom-field map.
func (s *ClientService) Get(ctx context.Context, userID, clientID int64) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}

	fields, err := s.repo.FindCustomFields(ctx, clientID)
	if err != nil {
		return nil, err
	}
	client.CustomFields = fields
	return client, nil
}

// Create inserts the client plus its tag and custom-field rows in one
// transaction. The response echoes the submitted tags and custom fields
// rather than re-reading them from storage.
func (s *ClientService) Create(ctx context.Context, userID int64, in ports.ClientInput) (*domain.Client, error) {
	tags := []string{}
	if in.Tags != nil {
		tags = *in.Tags
	}
	fields := map[string]string{}
	if in.CustomFields != nil {
		fields = *in.CustomFields
	}

	created, err := s.repo.Create(ctx, &domain.Client{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Address: in.Address,
		Notes:   in.Notes,
		UserID:  userID,
	}, tags, fields)
	if err != nil {
		return nil, err
	}

	created.Tags = tags
	created.CustomFields = fields
	metrics.ClientsCreatedTotal.WithLabelValues("api").Inc()
	return created, nil
}

// Update rewrites the scalar fields and, when supplied, fully replaces the
// tag and custom-field sets (delete-then-reinsert, not a diff). Ownership is
// checked before the transaction opens; the result is re-read after commit.
func (s *ClientService) Update(ctx context.Context, userID, clientID int64, in ports.ClientInput) (*domain.Client, error) {
	existing, err := s.repo.FindByID(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrClientNotFound
	}

	if err := s.repo.Update(ctx, clientID, in); err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, clientID)
}

// Delete removes the client row; tags, custom fields, and dependent tasks
// and meetings go with it via ON DELETE CASCADE.
func (s *ClientService) Delete(ctx context.Context, userID, clientID int64) error {
	existing, err := s.repo.FindByID(ctx, userID, clientID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrClientNotFound
	}
	return s.repo.Delete(ctx, clientID)
}
