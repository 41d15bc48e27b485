package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/dnfmate/character-lookup/internal/api/metrics"
	"github.com/dnfmate/character-lookup/internal/core/domain"
	"github.com/dnfmate/character-lookup/internal/core/ports"
)

const itemImagePath = "/item-image/"

// ImageLookup resolves an item id to a displayable URL.
type ImageLookup interface {
	Resolve(ctx context.Context, itemID string) (string, bool)
}

// ImageResolver looks item images up through the backend proxy endpoint.
// It does not cache; see ImageURLCache.
type ImageResolver struct {
	fetcher ports.AuthenticatedFetcher
	log     zerolog.Logger
}

func NewImageResolver(fetcher ports.AuthenticatedFetcher, log zerolog.Logger) *ImageResolver {
	return &ImageResolver{fetcher: fetcher, log: log}
}

type itemImageResponse struct {
	ImageURL *string `json:"imageUrl"`
}

// Resolve returns the image URL for itemID. A blank id returns false without
// any request; every failure is logged and returns false so the caller can
// substitute a placeholder.
func (r *ImageResolver) Resolve(ctx context.Context, itemID string) (string, bool) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		metrics.ImageResolveTotal.WithLabelValues("skipped").Inc()
		return "", false
	}

	resp, err := r.fetcher.Do(ctx, http.MethodGet, itemImagePath+url.PathEscape(itemID), nil, nil)
	if err != nil {
		r.log.Error().Err(err).Str("item_id", itemID).Msg("item image lookup failed")
		metrics.ImageResolveTotal.WithLabelValues("miss").Inc()
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.log.Warn().Int("http_status", resp.StatusCode).Str("item_id", itemID).Msg("item image lookup returned error status")
		metrics.ImageResolveTotal.WithLabelValues("miss").Inc()
		return "", false
	}

	var payload itemImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		r.log.Error().Err(err).Str("item_id", itemID).Msg("failed to decode item image response")
		metrics.ImageResolveTotal.WithLabelValues("miss").Inc()
		return "", false
	}
	if payload.ImageURL == nil || strings.TrimSpace(*payload.ImageURL) == "" {
		metrics.ImageResolveTotal.WithLabelValues("miss").Inc()
		return "", false
	}

	metrics.ImageResolveTotal.WithLabelValues("resolved").Inc()
	return *payload.ImageURL, true
}

// ImageURLCache memoizes resolved item images for the lifetime of one view.
// A key is present only once a direct URL was supplied or a lookup finished;
// failed lookups are stored as the placeholder so they are not retried.
type ImageURLCache struct {
	lookup ImageLookup

	mu   sync.RWMutex
	urls map[string]string
	sf   singleflight.Group
}

func NewImageURLCache(lookup ImageLookup) *ImageURLCache {
	return &ImageURLCache{lookup: lookup, urls: make(map[string]string)}
}

// URL returns the image to render for itemID. directURL, when the caller's
// data already embeds one, is used as-is and recorded without a lookup.
func (c *ImageURLCache) URL(ctx context.Context, itemID, directURL string) string {
	itemID = strings.TrimSpace(itemID)

	if directURL != "" {
		if itemID != "" {
			c.mu.Lock()
			c.urls[itemID] = directURL
			c.mu.Unlock()
		}
		return directURL
	}
	if itemID == "" {
		return domain.PlaceholderImageURL
	}

	if u, ok := c.Peek(itemID); ok {
		return u
	}

	// The shared lookup outlives any single caller so one cancelled request
	// cannot hand the placeholder to every waiter.
	lookupCtx := context.WithoutCancel(ctx)
	v, _, _ := c.sf.Do(itemID, func() (any, error) {
		u, ok := c.lookup.Resolve(lookupCtx, itemID)
		if !ok {
			u = domain.PlaceholderImageURL
		}
		c.mu.Lock()
		c.urls[itemID] = u
		c.mu.Unlock()
		return u, nil
	})
	return v.(string)
}

// Peek returns a memoized URL without triggering a lookup.
func (c *ImageURLCache) Peek(itemID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.urls[itemID]
	return u, ok
}

// Len reports how many item ids have been resolved.
func (c *ImageURLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.urls)
}
