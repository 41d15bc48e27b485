// Package neople is the client for the Neople Dungeon&Fighter open API.
package neople

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/dnfmate/character-lookup/internal/api/metrics"
	"github.com/dnfmate/character-lookup/internal/core/domain"
)

const (
	DefaultBaseURL      = "https://api.neople.co.kr/df"
	DefaultImageBaseURL = "https://img-api.neople.co.kr/df"

	defaultRatePerSec = 10
	defaultTimeout    = 10 * time.Second
)

// ErrUpstream wraps non-2xx responses other than 404.
var ErrUpstream = errors.New("neople api error")

// Config holds the client settings.
type Config struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	// RatePerSec caps outbound requests; Neople enforces a per-key quota.
	RatePerSec float64
}

// Client implements ports.GameDataClient.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	imageURL   string
	apiKey     string
	log        zerolog.Logger
}

func NewClient(httpClient *http.Client, cfg Config, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = DefaultImageBaseURL
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = defaultRatePerSec
	}
	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSec), int(cfg.RatePerSec)+1),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		imageURL:   strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:     cfg.APIKey,
		log:        log,
	}
}

// SearchCharacters returns exact-name matches on one server ("all" searches
// every server).
func (c *Client) SearchCharacters(ctx context.Context, serverID, name string) ([]domain.CharacterDetail, error) {
	q := url.Values{}
	q.Set("characterName", name)
	q.Set("wordType", "match")

	body, err := c.get(ctx, "search", "/servers/"+url.PathEscape(serverID)+"/characters", q)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return []domain.CharacterDetail{}, nil
		}
		return nil, err
	}

	rows := gjson.GetBytes(body, "rows")
	out := make([]domain.CharacterDetail, 0, len(rows.Array()))
	rows.ForEach(func(_, row gjson.Result) bool {
		out = append(out, c.characterFrom(row))
		return true
	})
	return out, nil
}

func (c *Client) GetCharacter(ctx context.Context, serverID, characterID string) (*domain.CharacterDetail, error) {
	body, err := c.get(ctx, "character", characterPath(serverID, characterID), nil)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, err
	}
	d := c.characterFrom(gjson.ParseBytes(body))
	return &d, nil
}

func (c *Client) GetEquipment(ctx context.Context, serverID, characterID string) ([]domain.EquipmentItem, error) {
	body, err := c.get(ctx, "equipment", characterPath(serverID, characterID)+"/equip/equipment", nil)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, err
	}

	list := gjson.GetBytes(body, "equipment")
	items := make([]domain.EquipmentItem, 0, len(list.Array()))
	list.ForEach(func(_, e gjson.Result) bool {
		items = append(items, domain.EquipmentItem{
			SlotID:     e.Get("slotId").String(),
			SlotName:   e.Get("slotName").String(),
			ItemID:     e.Get("itemId").String(),
			ItemName:   e.Get("itemName").String(),
			ItemRarity: e.Get("itemRarity").String(),
			Reinforce:  int(e.Get("reinforce").Int()),
		})
		return true
	})
	return items, nil
}

func (c *Client) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	body, err := c.get(ctx, "item", "/items/"+url.PathEscape(itemID), nil)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	r := gjson.ParseBytes(body)
	if !r.Get("itemId").Exists() {
		return nil, domain.ErrItemNotFound
	}
	return &domain.Item{
		ItemID:     r.Get("itemId").String(),
		ItemName:   r.Get("itemName").String(),
		ItemRarity: r.Get("itemRarity").String(),
	}, nil
}

// ItemImageURL is the public image for an item. It needs no API key.
func (c *Client) ItemImageURL(itemID string) string {
	return c.imageURL + "/items/" + url.PathEscape(itemID)
}

// CharacterImageURL is the public full-body render of a character.
func (c *Client) CharacterImageURL(serverID, characterID string) string {
	return c.imageURL + characterPath(serverID, characterID) + "?zoom=1"
}

var errNotFound = errors.New("not found")

func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("neople %s: %w", endpoint, err)
	}

	if q == nil {
		q = url.Values{}
	}
	q.Set("apikey", c.apiKey)
	reqURL := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("neople %s: build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.NeopleRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("neople request failed")
		return nil, fmt.Errorf("neople %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	metrics.NeopleRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("neople %s: read body: %w", endpoint, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		code := gjson.GetBytes(body, "error.code").String()
		c.log.Warn().
			Int("http_status", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("error_code", code).
			Msg("neople returned error status")
		return nil, fmt.Errorf("%w: %s status %d %s", ErrUpstream, endpoint, resp.StatusCode, code)
	}
	return body, nil
}

func (c *Client) characterFrom(r gjson.Result) domain.CharacterDetail {
	d := domain.CharacterDetail{
		ServerID:      r.Get("serverId").String(),
		CharacterID:   r.Get("characterId").String(),
		CharacterName: r.Get("characterName").String(),
		Level:         int(r.Get("level").Int()),
		JobID:         r.Get("jobId").String(),
		JobGrowID:     r.Get("jobGrowId").String(),
		JobName:       r.Get("jobName").String(),
		JobGrowName:   r.Get("jobGrowName").String(),
		Fame:          int(r.Get("fame").Int()),
		AdventureName: r.Get("adventureName").String(),
	}
	if d.ServerID != "" && d.CharacterID != "" {
		d.ImageURL = c.CharacterImageURL(d.ServerID, d.CharacterID)
	}
	return d
}

func characterPath(serverID, characterID string) string {
	return "/servers/" + url.PathEscape(serverID) + "/characters/" + url.PathEscape(characterID)
}
