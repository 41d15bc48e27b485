package ports

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

// DurableStorage is the client-side persistent key/value store that
// survives reloads. Get reports found=false for a missing key.
type DurableStorage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// CookieJar reads and writes the cookies visible to server-rendered requests.
type CookieJar interface {
	Get(name string) (string, bool)
	Set(name, value string, maxAge time.Duration) error
	Delete(name string) error
}

// SessionEvents receives the user-facing side effects of a logout.
type SessionEvents interface {
	Notify(message string)
	Navigate(path string)
}

// TokenSource yields the current access token, or "" when logged out.
type TokenSource interface {
	AccessToken() string
}

// AuthenticatedFetcher performs backend requests with the bearer token
// attached. Non-2xx responses are returned, not turned into errors.
type AuthenticatedFetcher interface {
	Do(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error)
}

// CharacterDetailFetcher retrieves one normalized character record.
// A nil detail with a non-nil error means "no data"; the caller decides
// whether to skip it or show an empty state.
type CharacterDetailFetcher interface {
	FetchCharacterDetail(ctx context.Context, serverID, characterID string) (*domain.CharacterDetail, error)
}
