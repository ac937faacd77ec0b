package handlers

import (
	"net/http"
	"strings"

	"github.com/lbarasti/chess-social/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// AutocompleteHandler proxies Lichess username search.
// GET /players/autocomplete?term=...
func (h *PlayerHandler) AutocompleteHandler(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	usernames, err := h.playerService.Autocomplete(r.Context(), term)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"usernames": usernames}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListPlayersHandler returns known players for a comma-separated id list.
// GET /players?ids=alice,bob
func (h *PlayerHandler) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if raw := r.URL.Query().Get("ids"); raw != "" {
		ids = strings.Split(raw, ",")
	}

	players, err := h.playerService.ListByIDs(r.Context(), ids)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
