package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

type stubCharacterService struct{}

func (stubCharacterService) Search(_ context.Context, serverID, name string) ([]domain.CharacterDetail, error) {
	if name == "" {
		return nil, domain.ErrInvalidIdentifier
	}
	return []domain.CharacterDetail{{ServerID: serverID, CharacterID: "c1", CharacterName: name}}, nil
}

func (stubCharacterService) Detail(_ context.Context, serverID, characterID string) (*domain.CharacterDetail, error) {
	if characterID != "c1" {
		return nil, domain.ErrCharacterNotFound
	}
	return &domain.CharacterDetail{ServerID: serverID, CharacterID: characterID, CharacterName: "Alpha", Level: 110}, nil
}

func (stubCharacterService) Equipment(_ context.Context, serverID, characterID string) (*domain.CharacterEquipment, error) {
	return &domain.CharacterEquipment{
		Character: domain.CharacterDetail{ServerID: serverID, CharacterID: characterID},
		Equipment: []domain.EquipmentItem{{SlotID: "WEAPON", ItemID: "w1"}},
	}, nil
}

func (stubCharacterService) ItemImage(_ context.Context, itemID string) (string, error) {
	if itemID != "w1" {
		return "", domain.ErrItemNotFound
	}
	return "https://img/w1", nil
}

func TestCharacterHandler_Search(t *testing.T) {
	e := newTestEcho()
	handler := NewCharacterHandler(stubCharacterService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/characters?server=cain&name=Alpha", nil), rec)
	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || len(resp.Data) != 1 || resp.Data[0].CharacterName != "Alpha" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/characters?server=cain", nil), httptest.NewRecorder())
	if err := handler.Search(c); !errors.Is(err, domain.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestCharacterHandler_Detail(t *testing.T) {
	e := newTestEcho()
	handler := NewCharacterHandler(stubCharacterService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/character-detail?server=cain&characterId=c1", nil), rec)
	if err := handler.Detail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var d domain.CharacterDetail
	_ = json.Unmarshal(rec.Body.Bytes(), &d)
	if d.CharacterName != "Alpha" || d.Level != 110 {
		t.Fatalf("unexpected detail: %+v", d)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/character-detail?server=cain&characterId=zz", nil), httptest.NewRecorder())
	if err := handler.Detail(c); !errors.Is(err, domain.ErrCharacterNotFound) {
		t.Fatalf("expected ErrCharacterNotFound, got %v", err)
	}
}

func TestCharacterHandler_ItemImage(t *testing.T) {
	e := newTestEcho()
	handler := NewCharacterHandler(stubCharacterService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("itemId")
	c.SetParamValues("w1")
	if err := handler.ItemImage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "{\"imageUrl\":\"https://img/w1\"}\n" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}
