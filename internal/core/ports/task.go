package ports

import (
	"context"
	"time"

	"github.com/loomra/crm-api/internal/core/domain"
)

// TaskInput carries the fields submitted on task creation.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
	ClientID    *int64
}

// TaskService implements task listing and creation. Tasks have no update or
// delete operation.
type TaskService interface {
	List(ctx context.Context, userID int64) ([]domain.Task, error)
	ListForClient(ctx context.Context, userID, clientID int64) ([]domain.Task, error)
	Create(ctx context.Context, userID int64, in TaskInput) (*domain.Task, error)
}

// TaskRepository persists tasks. List reads join the client name.
type TaskRepository interface {
	FindAll(ctx context.Context, userID int64) ([]domain.Task, error)
	FindByClient(ctx context.Context, userID, clientID int64) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
}
