package ports

import (
	"context"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

// RegistrationRepository persists the per-user character registry.
type RegistrationRepository interface {
	Create(ctx context.Context, r *domain.Registration) error
	// ListByUser returns the user's registrations oldest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error)
	Delete(ctx context.Context, userID, serverID, characterID string) error
	// UpdateCharacterInfo backfills the display fields of one registration.
	UpdateCharacterInfo(ctx context.Context, userID, serverID, characterID, characterName, adventureName string) error
}
