package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Valid values for Match.Result. A nil result means the game has not been
// played yet.
const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "0.5-0.5"
)

// Match is a single fixture between two players of a tournament. Matches are
// created once, together with their tournament, and only ever mutated by
// setting or clearing Result and GameLink.
type Match struct {
	ID           string  `json:"id" db:"id"`
	TournamentID string  `json:"tournament_id" db:"tournament_id"`
	Round        int     `json:"round" db:"round"`
	OrderInRound int     `json:"order_in_round" db:"order_in_round"`
	White        string  `json:"white" db:"white"`
	Black        string  `json:"black" db:"black"`
	Result       *string `json:"result" db:"result"`
	GameLink     *string `json:"gameLink,omitempty" db:"game_link"`
}

// Played reports whether the match has a recorded result.
func (m *Match) Played() bool {
	return m.Result != nil
}

// ValidResult reports whether s is one of the three legal result strings.
func ValidResult(s string) bool {
	switch s {
	case ResultWhiteWins, ResultBlackWins, ResultDraw:
		return true
	}
	return false
}

// ParseResult splits a result string into the white and black scores.
// Only the three legal result strings parse; anything else is a
// data-integrity error and must be rejected before it is persisted.
func ParseResult(s string) (white, black float64, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed result %q", s)
	}
	white, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed result %q: %w", s, err)
	}
	black, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed result %q: %w", s, err)
	}
	return white, black, nil
}
