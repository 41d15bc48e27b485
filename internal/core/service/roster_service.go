package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dnfmate/character-lookup/internal/api/metrics"
	"github.com/dnfmate/character-lookup/internal/core/domain"
	"github.com/dnfmate/character-lookup/internal/core/ports"
)

const (
	registrationsPath = "/registrations"

	defaultFetchTimeout   = 5 * time.Second
	defaultMaxConcurrency = 8
)

// RosterConfig bounds the per-character fan-out.
type RosterConfig struct {
	// FetchTimeout caps each detail fetch so one slow character cannot stall
	// the whole roster.
	FetchTimeout time.Duration
	// MaxConcurrency caps the number of detail fetches in flight.
	MaxConcurrency int
}

// RosterService turns the user's registrations into render-ready records.
type RosterService struct {
	fetcher ports.AuthenticatedFetcher
	details ports.CharacterDetailFetcher
	cfg     RosterConfig
	log     zerolog.Logger
}

// NewRosterService returns a RosterService. Zero config values fall back to
// the defaults (5s per fetch, 8 concurrent fetches).
func NewRosterService(fetcher ports.AuthenticatedFetcher, details ports.CharacterDetailFetcher, cfg RosterConfig, log zerolog.Logger) *RosterService {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = defaultMaxConcurrency
	}
	return &RosterService{fetcher: fetcher, details: details, cfg: cfg, log: log}
}

// Load fetches the registration list and hydrates every resolvable entry.
// The output keeps the registration order. Entries without identifiers are
// dropped; every other entry yields a record, degraded when its detail fetch
// failed. Only *domain.AuthenticationError is returned as an error; any
// other failure is logged and produces an empty list.
func (s *RosterService) Load(ctx context.Context) (out []domain.CharacterDetail, err error) {
	start := time.Now()
	outcome := "ok"

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("roster aggregation aborted")
			out, err, outcome = []domain.CharacterDetail{}, nil, "error"
		}
		metrics.RosterAggregationDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	refs, err := s.fetchRegistrations(ctx)
	if err != nil {
		if domain.IsAuthenticationError(err) {
			outcome = "unauthenticated"
			return nil, err
		}
		s.log.Error().Err(err).Msg("failed to load registrations")
		outcome = "error"
		return []domain.CharacterDetail{}, nil
	}

	return s.Hydrate(ctx, refs), nil
}

// Hydrate fans out one detail fetch per resolvable ref and waits for all of
// them to settle. Results are written to index slots, so output order equals
// input order.
func (s *RosterService) Hydrate(ctx context.Context, refs []domain.RegisteredCharacterRef) []domain.CharacterDetail {
	resolvable := make([]domain.RegisteredCharacterRef, 0, len(refs))
	for _, ref := range refs {
		if !ref.Resolvable() {
			metrics.RosterRecordsTotal.WithLabelValues("skipped").Inc()
			s.log.Debug().
				Str("server_id", ref.ServerID).
				Str("character_id", ref.CharacterID).
				Msg("skipping registration without identifiers")
			continue
		}
		resolvable = append(resolvable, ref)
	}

	out := make([]domain.CharacterDetail, len(resolvable))

	var g errgroup.Group
	g.SetLimit(s.cfg.MaxConcurrency)
	for i, ref := range resolvable {
		g.Go(func() error {
			out[i] = s.fetchOne(ctx, ref)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// fetchOne never fails: any error, nil result, timeout or panic becomes the
// degraded record for ref.
func (s *RosterService) fetchOne(ctx context.Context, ref domain.RegisteredCharacterRef) (detail domain.CharacterDetail) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Interface("panic", r).
				Str("server_id", ref.ServerID).
				Str("character_id", ref.CharacterID).
				Msg("character detail fetch panicked")
			metrics.RosterRecordsTotal.WithLabelValues("degraded").Inc()
			detail = domain.DegradedDetail(ref)
		}
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	d, err := s.details.FetchCharacterDetail(fetchCtx, ref.ServerID, ref.CharacterID)
	if err != nil || d == nil {
		s.log.Warn().
			Err(err).
			Str("server_id", ref.ServerID).
			Str("character_id", ref.CharacterID).
			Msg("using registration data for character")
		metrics.RosterRecordsTotal.WithLabelValues("degraded").Inc()
		return domain.DegradedDetail(ref)
	}

	metrics.RosterRecordsTotal.WithLabelValues("detail").Inc()
	return d.WithFallbacks(ref)
}

func (s *RosterService) fetchRegistrations(ctx context.Context) ([]domain.RegisteredCharacterRef, error) {
	resp, err := s.fetcher.Do(ctx, http.MethodGet, registrationsPath, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch registrations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &domain.AuthenticationError{Status: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch registrations: backend returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch registrations: read body: %w", err)
	}

	parsed := ParseRegistrations(body)
	switch parsed.Shape {
	case ShapeUnknown:
		s.log.Warn().Int("bytes", len(body)).Msg("unrecognized registration list shape, treating as empty")
	case ShapeNoCharacters:
		s.log.Debug().Msg("user has no registered characters")
	}

	return parsed.Entries, nil
}
