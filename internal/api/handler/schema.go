package handler

import "github.com/dnfmate/character-lookup/internal/core/domain"

// errorResponse mirrors the central error envelope for swagger docs.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"required,max=30"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type userPayload struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

type registerResponse struct {
	User userPayload `json:"user"`
}

type loginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         userPayload `json:"user"`
}

type addRegistrationRequest struct {
	ServerID    string `json:"serverId"    validate:"required"`
	CharacterID string `json:"characterId" validate:"required"`
}

// registrationListResponse is the roster envelope. Data and Message are
// mutually exclusive: an empty roster carries only the message.
type registrationListResponse struct {
	Success bool                            `json:"success"`
	Data    []domain.RegisteredCharacterRef `json:"data,omitempty"`
	Message string                          `json:"message,omitempty"`
}

type registrationResponse struct {
	Success bool                          `json:"success"`
	Data    domain.RegisteredCharacterRef `json:"data"`
}

type searchResponse struct {
	Success bool                     `json:"success"`
	Data    []domain.CharacterDetail `json:"data"`
}

type itemImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

func toUserPayload(u *domain.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email, Nickname: u.Nickname, Role: u.Role}
}
