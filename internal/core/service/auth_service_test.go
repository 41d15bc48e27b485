package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

type stubAuthRepo struct {
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Email
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func parseClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour, 0)

	user, err := svc.Register(context.Background(), "Alice@Example.com ", "pass123", "alice")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour, 0)

	cases := []struct{ email, password, nickname string }{
		{"", "pass", "nick"},
		{"a@example.com", "", "nick"},
		{"a@example.com", "pass", " "},
	}
	for _, c := range cases {
		if _, err := svc.Register(context.Background(), c.email, c.password, c.nickname); err != domain.ErrInvalidCredentials {
			t.Fatalf("Register(%q, %q, %q): expected ErrInvalidCredentials, got %v", c.email, c.password, c.nickname, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour, 0)

	_, _ = svc.Register(context.Background(), "bob@example.com", "pass", "bob")
	if _, err := svc.Register(context.Background(), "bob@example.com", "pass2", "bobby"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour, 0)

	if _, err := svc.Register(context.Background(), "carol@example.com", "s3cret", "carol"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if user == nil || user.Nickname != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	access := parseClaims(t, pair.AccessToken, "secret")
	if access["typ"] != domain.TokenTypeAccess {
		t.Fatalf("expected access typ, got %v", access["typ"])
	}
	if access["sub"] != user.ID {
		t.Fatalf("expected sub %s, got %v", user.ID, access["sub"])
	}
	if access["nickname"] != "carol" {
		t.Fatalf("expected nickname claim, got %v", access["nickname"])
	}
	refresh := parseClaims(t, pair.RefreshToken, "secret")
	if refresh["typ"] != domain.TokenTypeRefresh {
		t.Fatalf("expected refresh typ, got %v", refresh["typ"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour, 0)

	_, _ = svc.Register(context.Background(), "dave@example.com", "goodpass", "dave")
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserIsInvalidCredentials(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour, 0)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", time.Hour, 0)
	_, _ = svc.Register(context.Background(), "erin@example.com", "pw", "erin")
	pair, _, err := svc.Login(context.Background(), "erin@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if next.AccessToken == "" || next.RefreshToken == "" {
		t.Fatalf("expected new pair, got %+v", next)
	}

	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("access token must not refresh, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	other := NewAuthService(newStubAuthRepo(), "other-secret", time.Hour, 0)
	if _, err := other.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}
