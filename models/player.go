package models

import "strings"

// Player is a tournament participant. The ID is the player's Lichess
// username, lower-cased, and acts as the canonical key everywhere:
// registration under differing case must not create duplicates.
type Player struct {
	ID         string `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	LichessURL string `json:"lichessUrl" db:"lichess_url"`
}

// NormalizePlayerID canonicalizes a Lichess username into a player id.
func NormalizePlayerID(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
