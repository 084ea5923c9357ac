package service

import (
	"context"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

// TaskService implements task listing and creation. There is no update or
// delete path for tasks.
type TaskService struct {
	repo ports.TaskRepository
}

func NewTaskService(repo ports.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// List returns the user's tasks joined with their client name, ordered by
// due date ascending.
func (s *TaskService) List(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.repo.FindAll(ctx, userID)
}

// ListForClient returns the user's tasks referencing one client.
func (s *TaskService) ListForClient(ctx context.Context, userID, clientID int64) ([]domain.Task, error) {
	return s.repo.FindByClient(ctx, userID, clientID)
}

// Create inserts a single task row. No validation beyond what the schema
// enforces; a single statement, so no transaction.
func (s *TaskService) Create(ctx context.Context, userID int64, in ports.TaskInput) (*domain.Task, error) {
	return s.repo.Create(ctx, &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		ClientID:    in.ClientID,
		UserID:      userID,
	})
}
