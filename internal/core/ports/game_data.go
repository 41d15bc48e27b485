package ports

import (
	"context"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

// GameDataClient is the upstream game API (Neople).
type GameDataClient interface {
	SearchCharacters(ctx context.Context, serverID, name string) ([]domain.CharacterDetail, error)
	GetCharacter(ctx context.Context, serverID, characterID string) (*domain.CharacterDetail, error)
	GetEquipment(ctx context.Context, serverID, characterID string) ([]domain.EquipmentItem, error)
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	ItemImageURL(itemID string) string
}
