// Package backend is the HTTP client the web surface uses to talk to the
// backend API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/dnfmate/character-lookup/internal/api/metrics"
	"github.com/dnfmate/character-lookup/internal/core/domain"
	"github.com/dnfmate/character-lookup/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client performs backend requests. Requests made through Do carry the
// bearer token of the attached TokenSource, read at call time.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     ports.TokenSource
	log        zerolog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// WithTokens returns a copy of the client bound to ts. The copy shares the
// underlying http.Client.
func (c *Client) WithTokens(ts ports.TokenSource) *Client {
	clone := *c
	clone.tokens = ts
	return &clone
}

// Do sends an authenticated request. Content-Type defaults to
// application/json; caller headers override it. The Authorization header is
// added only when a token is present. The response is returned as-is,
// whatever its status.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return c.httpClient.Do(req)
}

// FetchCharacterDetail returns the normalized record for one character. The
// endpoint is public, so no token is sent. Blank identifiers return
// domain.ErrInvalidIdentifier without a request.
func (c *Client) FetchCharacterDetail(ctx context.Context, serverID, characterID string) (*domain.CharacterDetail, error) {
	serverID = strings.TrimSpace(serverID)
	characterID = strings.TrimSpace(characterID)
	if serverID == "" || characterID == "" {
		metrics.DetailFetchTotal.WithLabelValues("invalid_input").Inc()
		return nil, domain.ErrInvalidIdentifier
	}

	q := url.Values{}
	q.Set("server", serverID)
	q.Set("characterId", characterID)

	body, status, err := c.getPublic(ctx, "/character-detail?"+q.Encode())
	if err != nil {
		metrics.DetailFetchTotal.WithLabelValues("error").Inc()
		c.log.Error().Err(err).
			Str("server_id", serverID).
			Str("character_id", characterID).
			Msg("character detail request failed")
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		metrics.DetailFetchTotal.WithLabelValues("not_found").Inc()
		c.log.Warn().
			Str("server_id", serverID).
			Str("character_id", characterID).
			Msg("character not found")
		return nil, domain.ErrCharacterNotFound
	case status < 200 || status > 299:
		metrics.DetailFetchTotal.WithLabelValues("error").Inc()
		c.log.Error().
			Int("http_status", status).
			Str("server_id", serverID).
			Str("character_id", characterID).
			Msg("character detail returned error status")
		return nil, fmt.Errorf("character detail: backend returned status %d", status)
	}

	metrics.DetailFetchTotal.WithLabelValues("ok").Inc()
	d := parseCharacterDetail(body, serverID, characterID)
	return &d, nil
}

// FetchEquipment returns basic info plus equipment for the detail view.
func (c *Client) FetchEquipment(ctx context.Context, serverID, characterID string) (*domain.CharacterEquipment, error) {
	q := url.Values{}
	q.Set("server", serverID)
	q.Set("characterId", characterID)

	body, status, err := c.getPublic(ctx, "/character-detail/equipment?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, domain.ErrCharacterNotFound
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("equipment: backend returned status %d", status)
	}

	root := unwrapData(gjson.ParseBytes(body))
	out := &domain.CharacterEquipment{
		Character: detailFrom(root.Get("character"), serverID, characterID),
		Equipment: []domain.EquipmentItem{},
	}
	root.Get("equipment").ForEach(func(_, e gjson.Result) bool {
		out.Equipment = append(out.Equipment, domain.EquipmentItem{
			SlotID:     e.Get("slotId").String(),
			SlotName:   e.Get("slotName").String(),
			ItemID:     e.Get("itemId").String(),
			ItemName:   e.Get("itemName").String(),
			ItemRarity: e.Get("itemRarity").String(),
			Reinforce:  int(e.Get("reinforce").Int()),
			ImageURL:   e.Get("imageUrl").String(),
		})
		return true
	})
	return out, nil
}

// SearchCharacters runs the public character search.
func (c *Client) SearchCharacters(ctx context.Context, serverID, name string) ([]domain.CharacterDetail, error) {
	q := url.Values{}
	q.Set("server", serverID)
	q.Set("name", name)

	body, status, err := c.getPublic(ctx, "/characters?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("search: backend returned status %d", status)
	}

	rows := []domain.CharacterDetail{}
	unwrapData(gjson.ParseBytes(body)).ForEach(func(_, r gjson.Result) bool {
		rows = append(rows, detailFrom(r, "", ""))
		return true
	})
	return rows, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token pair and the user identity.
// Rejected credentials return domain.ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.SessionUser, error) {
	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.Do(ctx, http.MethodPost, "/auth/login", bytes.NewReader(payload), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("login: read body: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("login: backend returned status %d", resp.StatusCode)
	}

	r := gjson.ParseBytes(body)
	pair := &domain.TokenPair{
		AccessToken:  r.Get("accessToken").String(),
		RefreshToken: r.Get("refreshToken").String(),
	}
	if pair.AccessToken == "" {
		return nil, nil, errors.New("login: response carried no access token")
	}
	user := &domain.SessionUser{
		UserID:   r.Get("user.id").String(),
		Nickname: r.Get("user.nickname").String(),
	}
	return pair, user, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh trades a refresh token for a new token pair. A rejected or blank
// token returns domain.ErrInvalidToken.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, domain.ErrInvalidToken
	}
	payload, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, http.MethodPost, "/auth/refresh", bytes.NewReader(payload), nil)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("refresh: read body: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, domain.ErrInvalidToken
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("refresh: backend returned status %d", resp.StatusCode)
	}

	r := gjson.ParseBytes(body)
	pair := &domain.TokenPair{
		AccessToken:  r.Get("accessToken").String(),
		RefreshToken: r.Get("refreshToken").String(),
	}
	if pair.AccessToken == "" {
		return nil, errors.New("refresh: response carried no access token")
	}
	return pair, nil
}

type addRegistrationRequest struct {
	ServerID    string `json:"serverId"`
	CharacterID string `json:"characterId"`
}

// AddRegistration registers a character for the current user.
func (c *Client) AddRegistration(ctx context.Context, serverID, characterID string) error {
	payload, err := json.Marshal(addRegistrationRequest{ServerID: serverID, CharacterID: characterID})
	if err != nil {
		return err
	}
	resp, err := c.Do(ctx, http.MethodPost, "/registrations", bytes.NewReader(payload), nil)
	if err != nil {
		return fmt.Errorf("add registration: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &domain.AuthenticationError{Status: resp.StatusCode}
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrRegistrationExists
	case resp.StatusCode == http.StatusBadRequest:
		return domain.ErrInvalidIdentifier
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("add registration: backend returned status %d", resp.StatusCode)
	}
	return nil
}

// DeleteRegistration removes a character from the current user's roster.
func (c *Client) DeleteRegistration(ctx context.Context, serverID, characterID string) error {
	path := "/registrations/" + url.PathEscape(serverID) + "/" + url.PathEscape(characterID)
	resp, err := c.Do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &domain.AuthenticationError{Status: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrRegistrationNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("delete registration: backend returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) getPublic(ctx context.Context, pathAndQuery string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// parseCharacterDetail decodes a detail body best-effort. Missing or
// mistyped fields fall back to their zero value or domain.UnknownValue.
func parseCharacterDetail(body []byte, serverID, characterID string) domain.CharacterDetail {
	if !gjson.ValidBytes(body) {
		return detailFrom(gjson.Result{}, serverID, characterID)
	}
	return detailFrom(unwrapData(gjson.ParseBytes(body)), serverID, characterID)
}

func detailFrom(r gjson.Result, serverID, characterID string) domain.CharacterDetail {
	d := domain.CharacterDetail{
		ServerID:      stringOr(r.Get("serverId"), serverID),
		CharacterID:   stringOr(r.Get("characterId"), characterID),
		CharacterName: stringOr(r.Get("characterName"), domain.UnknownValue),
		Level:         intOrZero(r.Get("level")),
		JobID:         stringOr(r.Get("jobId"), ""),
		JobGrowID:     stringOr(r.Get("jobGrowId"), ""),
		JobName:       stringOr(r.Get("jobName"), domain.UnknownValue),
		JobGrowName:   stringOr(r.Get("jobGrowName"), domain.UnknownValue),
		Fame:          intOrZero(r.Get("fame")),
		ImageURL:      stringOr(r.Get("imageUrl"), ""),
		AdventureName: stringOr(r.Get("adventureName"), domain.UnknownValue),
	}
	return d
}

// unwrapData accepts both a bare payload and a {"data": ...} envelope.
func unwrapData(r gjson.Result) gjson.Result {
	if r.IsObject() {
		if d := r.Get("data"); d.Exists() && (d.IsObject() || d.IsArray()) {
			return d
		}
	}
	return r
}

func stringOr(r gjson.Result, fallback string) string {
	if r.Type != gjson.String {
		return fallback
	}
	if s := strings.TrimSpace(r.Str); s != "" {
		return s
	}
	return fallback
}

func intOrZero(r gjson.Result) int {
	if r.Type != gjson.Number {
		return 0
	}
	return int(r.Int())
}
