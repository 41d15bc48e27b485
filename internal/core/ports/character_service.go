package ports

import (
	"context"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

// CharacterService exposes the game data the backend proxies to clients.
type CharacterService interface {
	Search(ctx context.Context, serverID, name string) ([]domain.CharacterDetail, error)
	Detail(ctx context.Context, serverID, characterID string) (*domain.CharacterDetail, error)
	Equipment(ctx context.Context, serverID, characterID string) (*domain.CharacterEquipment, error)
	ItemImage(ctx context.Context, itemID string) (string, error)
}
