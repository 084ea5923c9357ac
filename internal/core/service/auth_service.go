package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/loomra/crm-api/internal/api/metrics"
	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
	"github.com/loomra/crm-api/internal/token"
)

// AuthService implements registration, login, and current-user lookup.
type AuthService struct {
	repo   ports.AuthRepository
	tokens *token.Service
}

func NewAuthService(repo ports.AuthRepository, tokens *token.Service) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates an account and returns a freshly issued token alongside
// the public user fields. The password is bcrypt-hashed and never stored or
// returned in clear.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}
	if existing != nil {
		metrics.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
		return "", nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	tok, err := s.tokens.Issue(created.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return tok, created, nil
}

// Login verifies the credentials and returns a new token plus the public
// user fields. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}
	if user == nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return tok, user, nil
}

// Me resolves the authenticated user id back to its account. The row can be
// gone even though the token is still valid.
func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
