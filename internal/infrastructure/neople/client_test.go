package neople

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.Client(), Config{
		BaseURL:      server.URL,
		ImageBaseURL: "https://img.test/df",
		APIKey:       "key-1",
		RatePerSec:   1000,
	}, zerolog.Nop())
}

func TestClient_SearchCharacters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/servers/cain/characters" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("apikey") != "key-1" || q.Get("characterName") != "홍길동" || q.Get("wordType") != "match" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rows":[{"serverId":"cain","characterId":"abc","characterName":"홍길동","level":110,"jobName":"거너","jobGrowName":"眞 레인저","fame":50000}]}`))
	})

	rows, err := c.SearchCharacters(context.Background(), "cain", "홍길동")
	if err != nil {
		t.Fatalf("SearchCharacters: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.CharacterID != "abc" || r.Level != 110 || r.Fame != 50000 || r.JobGrowName != "眞 레인저" {
		t.Fatalf("unexpected row: %+v", r)
	}
	if r.ImageURL != "https://img.test/df/servers/cain/characters/abc?zoom=1" {
		t.Fatalf("ImageURL = %s", r.ImageURL)
	}
}

func TestClient_GetCharacterNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"status":404,"code":"DNF001"}}`))
	})

	if _, err := c.GetCharacter(context.Background(), "cain", "missing"); !errors.Is(err, domain.ErrCharacterNotFound) {
		t.Fatalf("expected ErrCharacterNotFound, got %v", err)
	}
}

func TestClient_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"status":400,"code":"API001"}}`))
	})

	_, err := c.GetCharacter(context.Background(), "cain", "abc")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestClient_GetEquipment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/servers/cain/characters/abc/equip/equipment" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"characterId":"abc","equipment":[
			{"slotId":"WEAPON","slotName":"무기","itemId":"w1","itemName":"검","itemRarity":"에픽","reinforce":12},
			{"slotId":"TITLE","slotName":"칭호","itemId":"t1","itemName":"칭호","itemRarity":"레어","reinforce":0}
		]}`))
	})

	items, err := c.GetEquipment(context.Background(), "cain", "abc")
	if err != nil {
		t.Fatalf("GetEquipment: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].SlotID != "WEAPON" || items[0].Reinforce != 12 || items[0].ItemRarity != "에픽" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestClient_GetItem(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/items/i1" {
			_, _ = w.Write([]byte(`{"itemId":"i1","itemName":"반지","itemRarity":"유니크"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	it, err := c.GetItem(context.Background(), "i1")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if it.ItemName != "반지" {
		t.Fatalf("unexpected item: %+v", it)
	}
	if _, err := c.GetItem(context.Background(), "nope"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if got := c.ItemImageURL("i1"); got != "https://img.test/df/items/i1" {
		t.Fatalf("ItemImageURL = %s", got)
	}
}

func TestClient_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request must not be sent")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.GetCharacter(ctx, "cain", "abc"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
