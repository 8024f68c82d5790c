package handlers

import (
	"net/http"

	"github.com/isdelr/todo-be/internal/auth"
	"github.com/isdelr/todo-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenIssuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, tokens *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens}
}

// AuthPayload defines the structure for register and login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the public part of a user returned on login.
type UserSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	User        UserSummary `json:"user"`
}

// Register handles new user registration. No token is issued.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		writeServiceError(w, err, "Failed to register user")
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("Registered user")
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registration successful"})
}

// Login handles user authentication and token generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		writeServiceError(w, err, "Failed to log in")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate JWT")
		writeServiceError(w, err, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		User:        UserSummary{ID: user.ID, Email: user.Email},
	})
}
