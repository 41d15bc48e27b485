package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dnfmate/character-lookup/internal/core/domain"
	"github.com/dnfmate/character-lookup/internal/core/ports"
)

type stubRegistrationService struct {
	refs    []domain.RegisteredCharacterRef
	addErr  error
	removed [3]string
}

func (s *stubRegistrationService) List(context.Context, string) ([]domain.RegisteredCharacterRef, error) {
	return s.refs, nil
}

func (s *stubRegistrationService) Add(_ context.Context, userID string, ref domain.RegisteredCharacterRef) (*domain.Registration, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &domain.Registration{UserID: userID, RegisteredCharacterRef: ref}, nil
}

func (s *stubRegistrationService) Remove(_ context.Context, userID, serverID, characterID string) error {
	s.removed = [3]string{userID, serverID, characterID}
	return nil
}

func (s *stubRegistrationService) Enrich(context.Context, ports.RegistrationEnrichInput) error {
	return nil
}

type recordingDispatcher struct {
	queued []ports.RegistrationEnrichInput
}

func (d *recordingDispatcher) Enqueue(in ports.RegistrationEnrichInput) bool {
	d.queued = append(d.queued, in)
	return true
}

func TestRegistrationHandler_ListShapes(t *testing.T) {
	e := newTestEcho()
	svc := &stubRegistrationService{}
	handler := NewRegistrationHandler(svc, nil)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/registrations", nil), rec)
	c.Set("user_id", "u1")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var empty map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &empty)
	if empty["message"] != domain.NoCharactersMessage || empty["success"] != true {
		t.Fatalf("unexpected empty response: %v", empty)
	}
	if _, has := empty["data"]; has {
		t.Fatalf("empty roster must not carry data")
	}

	svc.refs = []domain.RegisteredCharacterRef{{ServerID: "cain", CharacterID: "c1"}}
	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/registrations", nil), rec)
	c.Set("user_id", "u1")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var full registrationListResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &full)
	if len(full.Data) != 1 || full.Data[0].CharacterID != "c1" || full.Message != "" {
		t.Fatalf("unexpected response: %+v", full)
	}
}

func TestRegistrationHandler_RequiresUser(t *testing.T) {
	e := newTestEcho()
	handler := NewRegistrationHandler(&stubRegistrationService{}, nil)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/registrations", nil), httptest.NewRecorder())
	if code := httpErrorCode(t, handler.List(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestRegistrationHandler_AddEnqueuesEnrichment(t *testing.T) {
	e := newTestEcho()
	dispatcher := &recordingDispatcher{}
	handler := NewRegistrationHandler(&stubRegistrationService{}, dispatcher)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/registrations", `{"serverId":"cain","characterId":"c1"}`), rec)
	c.Set("user_id", "u1")
	if err := handler.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(dispatcher.queued) != 1 || dispatcher.queued[0].UserID != "u1" || dispatcher.queued[0].CharacterID != "c1" {
		t.Fatalf("unexpected enqueued work: %+v", dispatcher.queued)
	}
}

func TestRegistrationHandler_AddErrors(t *testing.T) {
	e := newTestEcho()
	dispatcher := &recordingDispatcher{}
	svc := &stubRegistrationService{addErr: domain.ErrRegistrationExists}
	handler := NewRegistrationHandler(svc, dispatcher)

	c := e.NewContext(jsonRequest(http.MethodPost, "/registrations", `{"serverId":"cain","characterId":"c1"}`), httptest.NewRecorder())
	c.Set("user_id", "u1")
	if err := handler.Add(c); !errors.Is(err, domain.ErrRegistrationExists) {
		t.Fatalf("expected ErrRegistrationExists, got %v", err)
	}
	if len(dispatcher.queued) != 0 {
		t.Fatalf("failed add must not enqueue")
	}

	c = e.NewContext(jsonRequest(http.MethodPost, "/registrations", `{"serverId":"cain"}`), httptest.NewRecorder())
	c.Set("user_id", "u1")
	if code := httpErrorCode(t, handler.Add(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestRegistrationHandler_Remove(t *testing.T) {
	e := newTestEcho()
	svc := &stubRegistrationService{}
	handler := NewRegistrationHandler(svc, nil)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.Set("user_id", "u1")
	c.SetParamNames("serverId", "characterId")
	c.SetParamValues("cain", "c1")

	if err := handler.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.removed != [3]string{"u1", "cain", "c1"} {
		t.Fatalf("unexpected remove args: %v", svc.removed)
	}
}
