package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dnfmate/character-lookup/internal/core/domain"
	"github.com/dnfmate/character-lookup/internal/core/ports"
	"github.com/dnfmate/character-lookup/internal/core/service"
)

// LoginPath is where the web surface sends users whose session was rejected.
const LoginPath = "/login"

// WebBackend is the backend API as seen by one web request.
type WebBackend interface {
	ports.AuthenticatedFetcher
	ports.CharacterDetailFetcher
	Login(ctx context.Context, email, password string) (*domain.TokenPair, *domain.SessionUser, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	AddRegistration(ctx context.Context, serverID, characterID string) error
	DeleteRegistration(ctx context.Context, serverID, characterID string) error
	SearchCharacters(ctx context.Context, serverID, name string) ([]domain.CharacterDetail, error)
	FetchEquipment(ctx context.Context, serverID, characterID string) (*domain.CharacterEquipment, error)
}

// BackendFactory binds the backend client to a request's token source.
type BackendFactory func(ts ports.TokenSource) WebBackend

// StorageFactory returns the durable storage of one device.
type StorageFactory func(deviceID string) ports.DurableStorage

// WebConfig tunes the web surface.
type WebConfig struct {
	Roster        service.RosterConfig
	SecureCookies bool
}

// WebHandler serves the server-rendered side of the UI. Every request gets
// its own Token Store reconciled from the request cookies and the device's
// durable storage.
type WebHandler struct {
	backends BackendFactory
	storage  StorageFactory
	cfg      WebConfig
	log      zerolog.Logger
}

func NewWebHandler(backends BackendFactory, storage StorageFactory, cfg WebConfig, log zerolog.Logger) *WebHandler {
	return &WebHandler{backends: backends, storage: storage, cfg: cfg, log: log}
}

// webRequest bundles the per-request client core.
type webRequest struct {
	jar     *echoCookieJar
	events  *webEvents
	store   *service.TokenStore
	backend WebBackend
	session domain.Session
}

func (h *WebHandler) begin(c echo.Context) *webRequest {
	jar := newEchoCookieJar(c, h.cfg.SecureCookies)
	events := &webEvents{}
	device := deviceID(c, jar)

	store := service.NewTokenStore(h.storage(device), jar, events, h.log.With().Str("device_id", device).Logger())
	session := store.InitializeAuth(c.Request().Context())

	return &webRequest{
		jar:     jar,
		events:  events,
		store:   store,
		backend: h.backends(store),
		session: session,
	}
}

type webLoginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type sessionResponse struct {
	IsLoggedIn bool                `json:"isLoggedIn"`
	IsLoading  bool                `json:"isLoading"`
	User       *domain.SessionUser `json:"user,omitempty"`
	Notice     string              `json:"notice,omitempty"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{IsLoggedIn: s.IsLoggedIn, IsLoading: s.IsLoading, User: s.User}
}

// Login handles POST /web/login.
func (h *WebHandler) Login(c echo.Context) error {
	var req webLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	wr := h.begin(c)
	ctx := c.Request().Context()

	pair, user, err := wr.backend.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	wr.store.SetTokens(ctx, pair.AccessToken, pair.RefreshToken)
	wr.store.SetUser(ctx, user)
	return c.JSON(http.StatusOK, toSessionResponse(wr.store.Session()))
}

// Refresh handles POST /web/refresh. The stored refresh token is traded for a
// new pair; a missing or rejected token sends the browser to the login page.
func (h *WebHandler) Refresh(c echo.Context) error {
	wr := h.begin(c)
	if err := h.refresh(c.Request().Context(), wr); err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return c.Redirect(http.StatusSeeOther, LoginPath)
		}
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(wr.store.Session()))
}

// refresh replaces the session tokens using the stored refresh token.
func (h *WebHandler) refresh(ctx context.Context, wr *webRequest) error {
	rt := wr.store.Session().RefreshToken
	if rt == "" {
		return domain.ErrInvalidToken
	}
	pair, err := wr.backend.Refresh(ctx, rt)
	if err != nil {
		h.log.Info().Err(err).Msg("session refresh failed")
		return err
	}
	wr.store.SetTokens(ctx, pair.AccessToken, pair.RefreshToken)
	return nil
}

// Logout handles POST /web/logout.
func (h *WebHandler) Logout(c echo.Context) error {
	wr := h.begin(c)
	wr.store.ClearAuth(c.Request().Context())
	return h.finishNavigation(c, wr)
}

// Session handles GET /web/session.
func (h *WebHandler) Session(c echo.Context) error {
	wr := h.begin(c)
	resp := toSessionResponse(wr.session)
	resp.Notice = popFlash(wr.jar)
	return c.JSON(http.StatusOK, resp)
}

type myPageResponse struct {
	Characters []domain.CharacterDetail `json:"characters"`
	Message    string                   `json:"message,omitempty"`
}

// MyPage handles GET /web/my-page.
func (h *WebHandler) MyPage(c echo.Context) error {
	wr := h.begin(c)
	roster := service.NewRosterService(wr.backend, wr.backend, h.cfg.Roster, h.log)

	ctx := c.Request().Context()

	characters, err := roster.Load(ctx)
	if domain.IsAuthenticationError(err) && h.refresh(ctx, wr) == nil {
		characters, err = roster.Load(ctx)
	}
	if err != nil {
		if domain.IsAuthenticationError(err) {
			return c.Redirect(http.StatusSeeOther, LoginPath)
		}
		return err
	}

	resp := myPageResponse{Characters: characters}
	if len(characters) == 0 {
		resp.Message = domain.NoCharactersMessage
	}
	return c.JSON(http.StatusOK, resp)
}

type webAddCharacterRequest struct {
	ServerID    string `json:"serverId"    form:"serverId"    validate:"required"`
	CharacterID string `json:"characterId" form:"characterId" validate:"required"`
}

// AddCharacter handles POST /web/my-page/characters.
func (h *WebHandler) AddCharacter(c echo.Context) error {
	var req webAddCharacterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	wr := h.begin(c)
	if err := wr.backend.AddRegistration(c.Request().Context(), req.ServerID, req.CharacterID); err != nil {
		if domain.IsAuthenticationError(err) {
			return c.Redirect(http.StatusSeeOther, LoginPath)
		}
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// RemoveCharacter handles DELETE /web/my-page/characters/:serverId/:characterId.
func (h *WebHandler) RemoveCharacter(c echo.Context) error {
	wr := h.begin(c)
	if err := wr.backend.DeleteRegistration(c.Request().Context(), c.Param("serverId"), c.Param("characterId")); err != nil {
		if domain.IsAuthenticationError(err) {
			return c.Redirect(http.StatusSeeOther, LoginPath)
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type webSearchResponse struct {
	Server     string                   `json:"server"`
	Name       string                   `json:"name"`
	Characters []domain.CharacterDetail `json:"characters"`
}

// Search handles GET /web/search?server=&name=.
func (h *WebHandler) Search(c echo.Context) error {
	server := strings.TrimSpace(c.QueryParam("server"))
	name := strings.TrimSpace(c.QueryParam("name"))
	if server == "" {
		server = "all"
	}
	if _, known := domain.Servers[server]; !known && server != "all" {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown server")
	}
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	wr := h.begin(c)
	rows, err := wr.backend.SearchCharacters(c.Request().Context(), server, name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, webSearchResponse{Server: server, Name: name, Characters: rows})
}

// CharacterDetail handles GET /web/characters/:serverId/:characterId. Item
// images are resolved through one cache per view.
func (h *WebHandler) CharacterDetail(c echo.Context) error {
	wr := h.begin(c)
	ctx := c.Request().Context()

	eq, err := wr.backend.FetchEquipment(ctx, c.Param("serverId"), c.Param("characterId"))
	if err != nil {
		if errors.Is(err, domain.ErrCharacterNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "character not found")
		}
		return err
	}

	images := service.NewImageURLCache(service.NewImageResolver(wr.backend, h.log))
	for i := range eq.Equipment {
		eq.Equipment[i].ImageURL = images.URL(ctx, eq.Equipment[i].ItemID, eq.Equipment[i].ImageURL)
	}
	return c.JSON(http.StatusOK, eq)
}

func (h *WebHandler) finishNavigation(c echo.Context, wr *webRequest) error {
	if wr.events.notice != "" {
		setFlash(wr.jar, wr.events.notice)
	}
	location := wr.events.location
	if location == "" {
		location = service.HomePath
	}
	return c.Redirect(http.StatusSeeOther, location)
}
