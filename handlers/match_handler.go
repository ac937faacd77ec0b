package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lbarasti/chess-social/middleware"
	"github.com/lbarasti/chess-social/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

type updateMatchRequest struct {
	Result   optionalString `json:"result"`
	GameLink optionalString `json:"gameLink"`
}

// UpdateMatchHandler records a result and/or game link for a match.
// PUT /matches/{matchID}. A null result clears it; an empty game link
// clears the link.
func (h *MatchHandler) UpdateMatchHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	matchID := chi.URLParam(r, "matchID")

	var req updateMatchRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Update(r.Context(), matchID, services.MatchUpdateInput{
		Result:      req.Result.Value,
		SetResult:   req.Result.Set,
		GameLink:    req.GameLink.Value,
		SetGameLink: req.GameLink.Set,
	}, identity)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
