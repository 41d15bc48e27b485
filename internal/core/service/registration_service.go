package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dnfmate/character-lookup/internal/api/metrics"
	"github.com/dnfmate/character-lookup/internal/core/domain"
	"github.com/dnfmate/character-lookup/internal/core/ports"
)

type registrationService struct {
	repo ports.RegistrationRepository
	game ports.GameDataClient
	log  zerolog.Logger
}

// NewRegistrationService returns a RegistrationService implementation.
func NewRegistrationService(repo ports.RegistrationRepository, game ports.GameDataClient, log zerolog.Logger) ports.RegistrationService {
	return &registrationService{repo: repo, game: game, log: log}
}

func (s *registrationService) List(ctx context.Context, userID string) ([]domain.RegisteredCharacterRef, error) {
	regs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	refs := make([]domain.RegisteredCharacterRef, 0, len(regs))
	for _, r := range regs {
		refs = append(refs, r.RegisteredCharacterRef)
	}
	return refs, nil
}

// Add stores the registration as given. Display fields may be blank; they
// are backfilled by Enrich.
func (s *registrationService) Add(ctx context.Context, userID string, ref domain.RegisteredCharacterRef) (*domain.Registration, error) {
	ref.ServerID = strings.TrimSpace(ref.ServerID)
	ref.CharacterID = strings.TrimSpace(ref.CharacterID)
	if !ref.Resolvable() {
		return nil, domain.ErrInvalidIdentifier
	}

	reg := &domain.Registration{
		UserID:                 userID,
		RegisteredCharacterRef: ref,
		CreatedAt:              time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Str("server_id", ref.ServerID).
		Str("character_id", ref.CharacterID).
		Msg("character registered")
	return reg, nil
}

func (s *registrationService) Remove(ctx context.Context, userID, serverID, characterID string) error {
	if strings.TrimSpace(serverID) == "" || strings.TrimSpace(characterID) == "" {
		return domain.ErrInvalidIdentifier
	}
	return s.repo.Delete(ctx, userID, serverID, characterID)
}

// Enrich refreshes the stored character and adventure names from the game
// API.
func (s *registrationService) Enrich(ctx context.Context, in ports.RegistrationEnrichInput) error {
	detail, err := s.game.GetCharacter(ctx, in.ServerID, in.CharacterID)
	if err != nil {
		if errors.Is(err, domain.ErrCharacterNotFound) {
			metrics.RegistrationsEnrichedTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.RegistrationsEnrichedTotal.WithLabelValues("error").Inc()
		}
		return fmt.Errorf("enrich registration: %w", err)
	}

	if err := s.repo.UpdateCharacterInfo(ctx, in.UserID, in.ServerID, in.CharacterID, detail.CharacterName, detail.AdventureName); err != nil {
		metrics.RegistrationsEnrichedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("enrich registration: update: %w", err)
	}

	metrics.RegistrationsEnrichedTotal.WithLabelValues("ok").Inc()
	s.log.Debug().
		Str("user_id", in.UserID).
		Str("character_id", in.CharacterID).
		Str("character_name", detail.CharacterName).
		Msg("registration enriched")
	return nil
}
