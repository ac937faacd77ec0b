package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lbarasti/chess-social/middleware"
	"github.com/lbarasti/chess-social/services"
)

type ChallengeHandler struct {
	challengeService services.ChallengeService
}

func NewChallengeHandler(challengeService services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// ChallengeMatchHandler issues a Lichess challenge for one of the caller's
// fixtures. POST /matches/{matchID}/challenge. The bearer must be a real
// Lichess token: server session JWTs cannot act on the Lichess API and are
// rejected upstream.
func (h *ChallengeHandler) ChallengeMatchHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	token, err := middleware.TokenFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	matchID := chi.URLParam(r, "matchID")

	challenge, err := h.challengeService.ChallengeMatch(r.Context(), token, matchID, identity)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, challenge, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
