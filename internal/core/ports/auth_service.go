package ports

import (
	"context"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, nickname string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
}
