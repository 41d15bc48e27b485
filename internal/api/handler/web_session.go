package handler

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

const (
	deviceCookie = "deviceId"
	flashCookie  = "flash"
	deviceMaxAge = 30 * 24 * time.Hour
)

// echoCookieJar implements ports.CookieJar over one request/response pair.
// Writes are visible to later reads in the same request.
type echoCookieJar struct {
	c       echo.Context
	secure  bool
	written map[string]*string
}

func newEchoCookieJar(c echo.Context, secure bool) *echoCookieJar {
	return &echoCookieJar{c: c, secure: secure, written: make(map[string]*string)}
}

func (j *echoCookieJar) Get(name string) (string, bool) {
	if v, ok := j.written[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	ck, err := j.c.Cookie(name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

func (j *echoCookieJar) Set(name, value string, maxAge time.Duration) error {
	j.c.SetCookie(j.cookie(name, value, int(maxAge.Seconds())))
	v := value
	j.written[name] = &v
	return nil
}

func (j *echoCookieJar) Delete(name string) error {
	j.c.SetCookie(j.cookie(name, "", -1))
	j.written[name] = nil
	return nil
}

// cookie builds a root-path cookie. The access token stays script-readable so
// client-rendered code sees the same login state as server handlers.
func (j *echoCookieJar) cookie(name, value string, maxAge int) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: name != domain.CookieAccessToken,
		SameSite: http.SameSiteLaxMode,
		Secure:   j.secure,
	}
	if maxAge > 0 {
		ck.Expires = time.Now().Add(time.Duration(maxAge) * time.Second)
	}
	return ck
}

// webEvents records session side effects so the handler can turn them into
// a flash cookie and a redirect.
type webEvents struct {
	notice   string
	location string
}

func (e *webEvents) Notify(message string) { e.notice = message }
func (e *webEvents) Navigate(path string)  { e.location = path }

// deviceID returns the device cookie, issuing a new one when it is missing
// or malformed.
func deviceID(c echo.Context, jar *echoCookieJar) string {
	if v, ok := jar.Get(deviceCookie); ok {
		if _, err := uuid.Parse(v); err == nil {
			return v
		}
	}
	id := uuid.NewString()
	_ = jar.Set(deviceCookie, id, deviceMaxAge)
	return id
}

// setFlash stores a one-shot notice. Cookie values must be ASCII, so the
// message is base64url encoded.
func setFlash(jar *echoCookieJar, message string) {
	_ = jar.Set(flashCookie, base64.RawURLEncoding.EncodeToString([]byte(message)), time.Minute)
}

// popFlash reads and clears the notice set by a previous response.
func popFlash(jar *echoCookieJar) string {
	v, ok := jar.Get(flashCookie)
	if !ok {
		return ""
	}
	_ = jar.Delete(flashCookie)
	raw, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return ""
	}
	return string(raw)
}
