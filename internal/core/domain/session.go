package domain

import "time"

// Durable storage keys and the cookie mirrored from the access token.
const (
	StorageKeyAccessToken  = "accessToken"
	StorageKeyRefreshToken = "refreshToken"
	StorageKeyUser         = "user"

	CookieAccessToken    = "accessToken"
	AccessTokenCookieTTL = 7 * 24 * time.Hour
)

// SessionUser is the identity shown in the UI for the logged-in account.
type SessionUser struct {
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
}

// Session is the client's authentication state.
// IsLoggedIn always equals AccessToken != "".
type Session struct {
	AccessToken  string       `json:"-"`
	RefreshToken string       `json:"-"`
	User         *SessionUser `json:"user"`
	IsLoggedIn   bool         `json:"isLoggedIn"`
	IsLoading    bool         `json:"isLoading"`
}

// StoredSession is the subset of Session mirrored to durable storage.
type StoredSession struct {
	AccessToken  string
	RefreshToken string
	User         *SessionUser
}

// Clone returns a deep copy so callers never share the User pointer.
func (s Session) Clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
