package ports

import (
	"context"

	"github.com/loomra/crm-api/internal/core/domain"
)

// RegisterInput carries the fields submitted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService implements registration, login, and current-user lookup.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID int64) (*domain.User, error)
}

// AuthRepository persists user accounts. Find methods return (nil, nil) when
// no row matches.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
