package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dnfmate/character-lookup/internal/api/metrics"
	"github.com/dnfmate/character-lookup/internal/core/domain"
	"github.com/dnfmate/character-lookup/internal/core/ports"
)

// ItemImageCache abstracts the item image URL cache (Redis).
type ItemImageCache interface {
	Get(ctx context.Context, itemID string) (string, bool, error)
	Set(ctx context.Context, itemID, url string) error
}

type CharacterService struct {
	game   ports.GameDataClient
	images ItemImageCache
	logger zerolog.Logger
}

func NewCharacterService(game ports.GameDataClient, images ItemImageCache, logger zerolog.Logger) *CharacterService {
	return &CharacterService{game: game, images: images, logger: logger}
}

func (s *CharacterService) Search(ctx context.Context, serverID, name string) ([]domain.CharacterDetail, error) {
	serverID = strings.TrimSpace(serverID)
	name = strings.TrimSpace(name)
	if serverID == "" || name == "" {
		return nil, domain.ErrInvalidIdentifier
	}
	rows, err := s.game.SearchCharacters(ctx, serverID, name)
	if err != nil {
		return nil, fmt.Errorf("search characters: %w", err)
	}
	return rows, nil
}

func (s *CharacterService) Detail(ctx context.Context, serverID, characterID string) (*domain.CharacterDetail, error) {
	if strings.TrimSpace(serverID) == "" || strings.TrimSpace(characterID) == "" {
		return nil, domain.ErrInvalidIdentifier
	}
	return s.game.GetCharacter(ctx, serverID, characterID)
}

// Equipment returns the character's basic info and current equipment. Only
// image URLs embedded upstream are carried; the rest are resolved per item
// through ItemImage.
func (s *CharacterService) Equipment(ctx context.Context, serverID, characterID string) (*domain.CharacterEquipment, error) {
	detail, err := s.Detail(ctx, serverID, characterID)
	if err != nil {
		return nil, err
	}
	items, err := s.game.GetEquipment(ctx, serverID, characterID)
	if err != nil {
		return nil, fmt.Errorf("equipment: %w", err)
	}
	if items == nil {
		items = []domain.EquipmentItem{}
	}
	return &domain.CharacterEquipment{Character: *detail, Equipment: items}, nil
}

// ItemImage resolves an item id to its image URL. Unknown items return
// domain.ErrItemNotFound. Cache failures are logged and bypassed.
func (s *CharacterService) ItemImage(ctx context.Context, itemID string) (string, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return "", domain.ErrInvalidIdentifier
	}

	if s.images != nil {
		url, ok, err := s.images.Get(ctx, itemID)
		if err != nil {
			s.logger.Warn().Err(err).Str("item_id", itemID).Msg("item image cache read failed")
		} else if ok {
			metrics.ItemImageCacheTotal.WithLabelValues("hit").Inc()
			return url, nil
		}
	}
	metrics.ItemImageCacheTotal.WithLabelValues("miss").Inc()

	if _, err := s.game.GetItem(ctx, itemID); err != nil {
		return "", err
	}
	url := s.game.ItemImageURL(itemID)

	if s.images != nil {
		if err := s.images.Set(ctx, itemID, url); err != nil {
			s.logger.Warn().Err(err).Str("item_id", itemID).Msg("item image cache write failed")
		}
	}
	return url, nil
}
