package ports

import (
	"context"

	"github.com/contest/api/internal/core/domain"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	// Login verifies the credentials and returns a signed access token.
	Login(ctx context.Context, username, password string) (string, error)
}
