package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

// TaskRepository persists tasks. Tasks are insert-and-list only.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// FindAll returns the user's tasks left-joined to their client name, ordered
// by due date ascending.
func (r *TaskRepository) FindAll(ctx context.Context, userID int64) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date, t.client_id, c.name, t.user_id
		 FROM tasks t
		 LEFT JOIN clients c ON t.client_id = c.id
		 WHERE t.user_id = $1
		 ORDER BY t.due_date`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// FindByClient returns the user's tasks referencing one client.
func (r *TaskRepository) FindByClient(ctx context.Context, userID, clientID int64) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date, t.client_id, c.name, t.user_id
		 FROM tasks t
		 LEFT JOIN clients c ON t.client_id = c.id
		 WHERE t.client_id = $1 AND t.user_id = $2
		 ORDER BY t.due_date`,
		clientID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list client tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// Create inserts the task row and returns it with its generated id.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO tasks (title, description, status, priority, due_date, client_id, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		task.Title, task.Description, task.Status, task.Priority,
		nullTime(task.DueDate), nullInt(task.ClientID), task.UserID,
	).Scan(&task.ID)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func scanTasks(rows *sql.Rows) ([]domain.Task, error) {
	tasks := []domain.Task{}
	for rows.Next() {
		var (
			task       domain.Task
			dueDate    sql.NullTime
			clientID   sql.NullInt64
			clientName sql.NullString
		)
		err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
			&dueDate, &clientID, &clientName, &task.UserID)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if dueDate.Valid {
			task.DueDate = &dueDate.Time
		}
		if clientID.Valid {
			task.ClientID = &clientID.Int64
		}
		if clientName.Valid {
			task.ClientName = &clientName.String
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
