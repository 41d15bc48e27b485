package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/dnfmate/character-lookup/internal/api/handler"
	"github.com/dnfmate/character-lookup/internal/core/domain"
	"github.com/dnfmate/character-lookup/internal/core/ports"
	"github.com/dnfmate/character-lookup/internal/core/service"
	"github.com/dnfmate/character-lookup/internal/infrastructure/backend"
)

type fixedGame struct {
	items map[string]bool
}

func (g fixedGame) SearchCharacters(context.Context, string, string) ([]domain.CharacterDetail, error) {
	return []domain.CharacterDetail{}, nil
}

func (g fixedGame) GetCharacter(_ context.Context, serverID, characterID string) (*domain.CharacterDetail, error) {
	if characterID != "c1" {
		return nil, domain.ErrCharacterNotFound
	}
	return &domain.CharacterDetail{ServerID: serverID, CharacterID: characterID, CharacterName: "Alpha", Level: 110}, nil
}

func (g fixedGame) GetEquipment(context.Context, string, string) ([]domain.EquipmentItem, error) {
	return []domain.EquipmentItem{
		{SlotID: "WEAPON", ItemID: "w1", ItemName: "Sword"},
		{SlotID: "AMULET", ItemID: "a1", ItemName: "Gone"},
		{SlotID: "SUPPORT", ItemID: "w1", ItemName: "Sword copy"},
		{SlotID: "TITLE", ItemID: ""},
	}, nil
}

func (g fixedGame) GetItem(_ context.Context, itemID string) (*domain.Item, error) {
	if !g.items[itemID] {
		return nil, domain.ErrItemNotFound
	}
	return &domain.Item{ItemID: itemID}, nil
}

func (g fixedGame) ItemImageURL(itemID string) string {
	return "https://img.test/items/" + itemID
}

type memDevice struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memDevice) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memDevice) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memDevice) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestWebCharacterDetail_ResolvesImagesThroughItemImageEndpoint(t *testing.T) {
	var (
		e       *echo.Echo
		lookups atomic.Int32
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/item-image/") {
			lookups.Add(1)
		}
		e.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	client := backend.NewClient(srv.URL, srv.Client(), zerolog.Nop())
	device := &memDevice{data: make(map[string]string)}
	web := handler.NewWebHandler(
		func(ts ports.TokenSource) handler.WebBackend { return client.WithTokens(ts) },
		func(string) ports.DurableStorage { return device },
		handler.WebConfig{},
		zerolog.Nop(),
	)

	reg := prometheus.NewRegistry()
	e = NewRouter(Dependencies{
		JWTSecret:     testSecret,
		Auth:          nopAuth{},
		Registrations: &listOnlyRegistrations{},
		Characters:    service.NewCharacterService(fixedGame{items: map[string]bool{"w1": true}}, nil, zerolog.Nop()),
		Dispatcher:    nopDispatcher{},
		Web:           web,
		Registerer:    reg,
		Gatherer:      reg,
		Logger:        zerolog.Nop(),
	})

	resp, err := srv.Client().Get(srv.URL + "/web/characters/cain/c1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var eq domain.CharacterEquipment
	if err := json.NewDecoder(resp.Body).Decode(&eq); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if eq.Character.CharacterName != "Alpha" || len(eq.Equipment) != 4 {
		t.Fatalf("unexpected payload: %+v", eq)
	}

	want := []string{
		"https://img.test/items/w1",
		domain.PlaceholderImageURL,
		"https://img.test/items/w1",
		domain.PlaceholderImageURL,
	}
	for i, item := range eq.Equipment {
		if item.ImageURL != want[i] {
			t.Fatalf("item %d (%s): image %q, want %q", i, item.ItemID, item.ImageURL, want[i])
		}
	}

	// w1 and a1 each cost one round trip; the repeated w1 and the blank id cost none.
	if got := lookups.Load(); got != 2 {
		t.Fatalf("expected 2 item-image lookups, got %d", got)
	}
}
