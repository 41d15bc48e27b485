package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnfmate/character-lookup/internal/core/ports"
)

// CharacterHandler proxies the public game data endpoints.
type CharacterHandler struct {
	service ports.CharacterService
}

func NewCharacterHandler(service ports.CharacterService) *CharacterHandler {
	return &CharacterHandler{service: service}
}

// Search handles GET /characters.
//
// @Summary      Search characters by name
// @Tags         characters
// @Produce      json
// @Param        server  query     string  true  "Server id, or all"
// @Param        name    query     string  true  "Exact character name"
// @Success      200     {object}  searchResponse
// @Failure      400     {object}  errorResponse
// @Router       /characters [get]
func (h *CharacterHandler) Search(c echo.Context) error {
	rows, err := h.service.Search(c.Request().Context(), c.QueryParam("server"), c.QueryParam("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, searchResponse{Success: true, Data: rows})
}

// Detail handles GET /character-detail.
//
// @Summary      Character basic info
// @Tags         characters
// @Produce      json
// @Param        server       query     string  true  "Server id"
// @Param        characterId  query     string  true  "Character id"
// @Success      200          {object}  domain.CharacterDetail
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /character-detail [get]
func (h *CharacterHandler) Detail(c echo.Context) error {
	d, err := h.service.Detail(c.Request().Context(), c.QueryParam("server"), c.QueryParam("characterId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Equipment handles GET /character-detail/equipment.
//
// @Summary      Character equipment
// @Tags         characters
// @Produce      json
// @Param        server       query     string  true  "Server id"
// @Param        characterId  query     string  true  "Character id"
// @Success      200          {object}  domain.CharacterEquipment
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /character-detail/equipment [get]
func (h *CharacterHandler) Equipment(c echo.Context) error {
	eq, err := h.service.Equipment(c.Request().Context(), c.QueryParam("server"), c.QueryParam("characterId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eq)
}

// ItemImage handles GET /item-image/:itemId.
//
// @Summary      Item image URL
// @Tags         characters
// @Produce      json
// @Param        itemId  path      string  true  "Item id"
// @Success      200     {object}  itemImageResponse
// @Failure      404     {object}  errorResponse
// @Router       /item-image/{itemId} [get]
func (h *CharacterHandler) ItemImage(c echo.Context) error {
	u, err := h.service.ItemImage(c.Request().Context(), c.Param("itemId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, itemImageResponse{ImageURL: u})
}
