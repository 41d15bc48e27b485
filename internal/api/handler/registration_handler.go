package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnfmate/character-lookup/internal/core/domain"
	"github.com/dnfmate/character-lookup/internal/core/ports"
)

// EnrichDispatcher is the interface the handler uses to enqueue enrichments.
type EnrichDispatcher interface {
	Enqueue(in ports.RegistrationEnrichInput) bool
}

// RegistrationHandler serves the authenticated user's character roster.
type RegistrationHandler struct {
	service    ports.RegistrationService
	dispatcher EnrichDispatcher
}

func NewRegistrationHandler(service ports.RegistrationService, dispatcher EnrichDispatcher) *RegistrationHandler {
	return &RegistrationHandler{service: service, dispatcher: dispatcher}
}

// List handles GET /registrations.
//
// @Summary      List registered characters
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  registrationListResponse
// @Failure      401  {object}  errorResponse
// @Router       /registrations [get]
func (h *RegistrationHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	refs, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return c.JSON(http.StatusOK, registrationListResponse{Success: true, Message: domain.NoCharactersMessage})
	}
	return c.JSON(http.StatusOK, registrationListResponse{Success: true, Data: refs})
}

// Add handles POST /registrations. Display names are filled in
// asynchronously.
//
// @Summary      Register a character
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addRegistrationRequest  true  "Character to register"
// @Success      201   {object}  registrationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /registrations [post]
func (h *RegistrationHandler) Add(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reg, err := h.service.Add(c.Request().Context(), userID, domain.RegisteredCharacterRef{
		ServerID:    req.ServerID,
		CharacterID: req.CharacterID,
	})
	if err != nil {
		return err
	}

	if h.dispatcher != nil {
		h.dispatcher.Enqueue(ports.RegistrationEnrichInput{
			UserID:      userID,
			ServerID:    reg.ServerID,
			CharacterID: reg.CharacterID,
		})
	}
	return c.JSON(http.StatusCreated, registrationResponse{Success: true, Data: reg.RegisteredCharacterRef})
}

// Remove handles DELETE /registrations/:serverId/:characterId.
//
// @Summary      Remove a registered character
// @Tags         registrations
// @Security     BearerAuth
// @Param        serverId     path  string  true  "Server id"
// @Param        characterId  path  string  true  "Character id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /registrations/{serverId}/{characterId} [delete]
func (h *RegistrationHandler) Remove(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.Request().Context(), userID, c.Param("serverId"), c.Param("characterId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
