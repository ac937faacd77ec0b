package models

import "time"

// Bounds enforced before fixture generation ever runs.
const (
	MinPlayers = 2
	MaxPlayers = 20
	MinRounds  = 1
	MaxRounds  = 4
)

// Tournament is a round-robin event played on Lichess. PlayerIDs is the
// ordered, duplicate-free set of registered player identities, captured at
// creation time and immutable afterwards. IsComplete is a cached projection
// of the match set: it is recomputed from a fresh read of all matches on
// every result write and never trusted as an input.
type Tournament struct {
	ID                string             `json:"id" db:"id"`
	Name              string             `json:"name" db:"name"`
	CreatorID         *string            `json:"creator_id,omitempty" db:"creator_id"`
	CreatedAt         time.Time          `json:"created_at" db:"created_at"`
	Rounds            int                `json:"rounds" db:"rounds"`
	PlayerIDs         []string           `json:"player_ids" db:"player_ids"`
	ChallengeSettings *ChallengeSettings `json:"challenge_settings,omitempty" db:"challenge_settings"`
	IsComplete        bool               `json:"is_complete" db:"is_complete"`

	// Loaded separately, not columns on the tournaments table.
	Players []Player `json:"players,omitempty" db:"-"`
	Matches []Match  `json:"matches,omitempty" db:"-"`
}

// HasPlayer reports whether the identity belongs to the tournament's
// registered player set. The input is normalized before comparison.
func (t *Tournament) HasPlayer(identity string) bool {
	id := NormalizePlayerID(identity)
	for _, p := range t.PlayerIDs {
		if p == id {
			return true
		}
	}
	return false
}
