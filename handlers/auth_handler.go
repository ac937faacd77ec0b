package handlers

import (
	"net/http"

	"github.com/lbarasti/chess-social/middleware"
	"github.com/lbarasti/chess-social/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CreateSessionHandler exchanges a Lichess bearer token for a server
// session JWT. POST /auth/session with the Lichess token in Authorization.
func (h *AuthHandler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	session, identity, err := h.authService.Login(r.Context(), token)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"token": session, "user": identity}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
