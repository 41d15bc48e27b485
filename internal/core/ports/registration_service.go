package ports

import (
	"context"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

// RegistrationEnrichInput identifies a registration whose display fields
// should be refreshed from the game API.
type RegistrationEnrichInput struct {
	UserID      string
	ServerID    string
	CharacterID string
}

// RegistrationService manages the "my page" roster on the backend.
type RegistrationService interface {
	List(ctx context.Context, userID string) ([]domain.RegisteredCharacterRef, error)
	Add(ctx context.Context, userID string, ref domain.RegisteredCharacterRef) (*domain.Registration, error)
	Remove(ctx context.Context, userID, serverID, characterID string) error
	Enrich(ctx context.Context, in RegistrationEnrichInput) error
}
