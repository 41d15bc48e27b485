package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dnfmate/character-lookup/internal/api/metrics"
	"github.com/dnfmate/character-lookup/internal/core/domain"
	"github.com/dnfmate/character-lookup/internal/core/ports"
)

const (
	// LogoutNotice is shown to the user after ClearAuth.
	LogoutNotice = "로그아웃 되었습니다."
	// HomePath is where ClearAuth sends the browser.
	HomePath = "/"
)

// TokenStore holds the session in memory and mirrors it to durable storage
// and the access token cookie. All writes go through its methods; the
// external stores are best-effort mirrors reconciled by InitializeAuth.
type TokenStore struct {
	mu      sync.RWMutex
	session domain.Session

	storage ports.DurableStorage
	cookies ports.CookieJar
	events  ports.SessionEvents
	log     zerolog.Logger
}

// NewTokenStore returns an uninitialized store (IsLoading=true).
func NewTokenStore(storage ports.DurableStorage, cookies ports.CookieJar, events ports.SessionEvents, log zerolog.Logger) *TokenStore {
	return &TokenStore{
		session: domain.Session{IsLoading: true},
		storage: storage,
		cookies: cookies,
		events:  events,
		log:     log,
	}
}

// SetTokens stores both tokens in memory, durable storage and (access token
// only) the cookie. Mirror failures are logged; memory is always updated.
func (s *TokenStore) SetTokens(ctx context.Context, access, refresh string) {
	s.mu.Lock()
	s.session.AccessToken = access
	s.session.RefreshToken = refresh
	s.session.IsLoggedIn = access != ""
	s.mu.Unlock()

	metrics.SessionOperationsTotal.WithLabelValues("set_tokens").Inc()

	if err := s.storage.Set(ctx, domain.StorageKeyAccessToken, access); err != nil {
		s.log.Warn().Err(err).Str("key", domain.StorageKeyAccessToken).Msg("failed to persist access token")
	}
	if err := s.storage.Set(ctx, domain.StorageKeyRefreshToken, refresh); err != nil {
		s.log.Warn().Err(err).Str("key", domain.StorageKeyRefreshToken).Msg("failed to persist refresh token")
	}
	if err := s.cookies.Set(domain.CookieAccessToken, access, domain.AccessTokenCookieTTL); err != nil {
		s.log.Error().Err(err).Msg("failed to write access token cookie")
	}
}

// SetUser stores the user identity in memory and durable storage.
func (s *TokenStore) SetUser(ctx context.Context, user *domain.SessionUser) {
	var stored *domain.SessionUser
	if user != nil {
		u := *user
		stored = &u
	}

	s.mu.Lock()
	s.session.User = stored
	s.mu.Unlock()

	metrics.SessionOperationsTotal.WithLabelValues("set_user").Inc()

	if stored == nil {
		if err := s.storage.Delete(ctx, domain.StorageKeyUser); err != nil {
			s.log.Warn().Err(err).Msg("failed to remove stored user")
		}
		return
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode user")
		return
	}
	if err := s.storage.Set(ctx, domain.StorageKeyUser, string(raw)); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist user")
	}
}

// InitializeAuth reconciles memory, durable storage and the cookie, marks
// the store as loaded and returns the resulting session.
func (s *TokenStore) InitializeAuth(ctx context.Context) domain.Session {
	stored := s.loadStored(ctx)
	cookieToken, _ := s.cookies.Get(domain.CookieAccessToken)

	s.mu.Lock()
	s.session = Reconcile(s.session, stored, cookieToken)
	snapshot := s.session.Clone()
	s.mu.Unlock()

	metrics.SessionOperationsTotal.WithLabelValues("initialize").Inc()
	s.log.Debug().
		Bool("logged_in", snapshot.IsLoggedIn).
		Bool("cookie_token", cookieToken != "").
		Msg("session initialized")

	return snapshot
}

// ClearAuth wipes every copy of the session, notifies the user and sends the
// browser home. Navigation is a hard reset: in-flight work for the current
// page is abandoned.
func (s *TokenStore) ClearAuth(ctx context.Context) {
	s.mu.Lock()
	s.session = domain.Session{IsLoading: true}
	s.mu.Unlock()

	metrics.SessionOperationsTotal.WithLabelValues("clear").Inc()

	if err := s.storage.Delete(ctx, domain.StorageKeyAccessToken, domain.StorageKeyRefreshToken, domain.StorageKeyUser); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear durable session storage")
	}
	if err := s.cookies.Delete(domain.CookieAccessToken); err != nil {
		s.log.Error().Err(err).Msg("failed to clear access token cookie")
	}

	if s.events != nil {
		s.events.Notify(LogoutNotice)
		s.events.Navigate(HomePath)
	}
}

// SetIsLoading lets callers gate rendering on initialization.
func (s *TokenStore) SetIsLoading(loading bool) {
	s.mu.Lock()
	s.session.IsLoading = loading
	s.mu.Unlock()
}

// Session returns a copy of the current session.
func (s *TokenStore) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

// AccessToken satisfies ports.TokenSource.
func (s *TokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken
}

func (s *TokenStore) loadStored(ctx context.Context) domain.StoredSession {
	var stored domain.StoredSession

	stored.AccessToken = s.readKey(ctx, domain.StorageKeyAccessToken)
	stored.RefreshToken = s.readKey(ctx, domain.StorageKeyRefreshToken)

	if raw := s.readKey(ctx, domain.StorageKeyUser); raw != "" {
		var u domain.SessionUser
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			s.log.Warn().Err(err).Msg("ignoring malformed stored user")
		} else {
			stored.User = &u
		}
	}
	return stored
}

func (s *TokenStore) readKey(ctx context.Context, key string) string {
	v, found, err := s.storage.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to read durable session storage")
		return ""
	}
	if !found {
		return ""
	}
	return v
}

// Reconcile merges the three copies of the session.
//
//	access token: memory > cookie > durable storage
//	refresh token, user: durable storage, unconditionally
//
// The result is always loaded (IsLoading=false) and IsLoggedIn follows the
// access token.
func Reconcile(memory domain.Session, stored domain.StoredSession, cookieToken string) domain.Session {
	access := memory.AccessToken
	if access == "" {
		access = cookieToken
	}
	if access == "" {
		access = stored.AccessToken
	}

	out := domain.Session{
		AccessToken:  access,
		RefreshToken: stored.RefreshToken,
		IsLoggedIn:   access != "",
		IsLoading:    false,
	}
	if stored.User != nil {
		u := *stored.User
		out.User = &u
	}
	return out
}
