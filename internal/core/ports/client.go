package ports

import (
	"context"

	"github.com/loomra/crm-api/internal/core/domain"
)

// ClientInput carries the fields submitted on client create and update.
// Tags and CustomFields are pointers so callers can distinguish "not
// supplied" (leave child rows alone on update) from "supplied empty"
// (clear all child rows).
type ClientInput struct {
	Name         string
	Email        string
	Phone        string
	Company      string
	Address      string
	Notes        string
	Tags         *[]string
	CustomFields *map[string]string
}

// ClientService implements client CRUD scoped to the owning user.
type ClientService interface {
	List(ctx context.Context, userID int64) ([]domain.Client, error)
	Get(ctx context.Context, userID, clientID int64) (*domain.Client, error)
	Create(ctx context.Context, userID int64, in ClientInput) (*domain.Client, error)
	Update(ctx context.Context, userID, clientID int64, in ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, userID, clientID int64) error
}

// ImportRow is one parsed line of an uploaded client CSV.
type ImportRow struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Address string
	Notes   string
	Tags    []string
}

// ClientRepository persists clients and their tag / custom-field child rows.
// Multi-table writes (Create, Update, Import) run inside a single database
// transaction and roll back as a unit. FindByID returns (nil, nil) when the
// client does not exist or belongs to another user.
type ClientRepository interface {
	FindAll(ctx context.Context, userID int64) ([]domain.Client, error)
	FindByID(ctx context.Context, userID, clientID int64) (*domain.Client, error)
	FindCustomFields(ctx context.Context, clientID int64) (map[string]string, error)
	Create(ctx context.Context, client *domain.Client, tags []string, customFields map[string]string) (*domain.Client, error)
	Update(ctx context.Context, clientID int64, in ClientInput) error
	Delete(ctx context.Context, clientID int64) error
	Import(ctx context.Context, userID int64, rows []ImportRow) (int, error)
	FindForExport(ctx context.Context, userID int64, excludeInactive bool) ([]domain.Client, error)
}
