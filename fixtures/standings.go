package fixtures

import (
	"sort"

	"github.com/lbarasti/chess-social/models"
)

// PlayerStats is one row of the standings table. Points use standard chess
// scoring: win 1, draw 0.5, loss 0.
type PlayerStats struct {
	PlayerID string  `json:"playerId"`
	Played   int     `json:"played"`
	Won      int     `json:"won"`
	Drawn    int     `json:"drawn"`
	Lost     int     `json:"lost"`
	Points   float64 `json:"points"`
}

// CalculateStandings folds the tournament's matches into one stats record
// per player. Players with no decided matches still appear, all-zero.
// Matches without a result are skipped entirely and do not count as played.
//
// The ranking is sorted by points descending; equal points are broken by
// player id ascending so the output is deterministic for a given match set.
func CalculateStandings(playerIDs []string, matches []models.Match) []PlayerStats {
	index := make(map[string]*PlayerStats, len(playerIDs))
	for _, id := range playerIDs {
		index[id] = &PlayerStats{PlayerID: id}
	}

	for _, m := range matches {
		if m.Result == nil {
			continue
		}
		whiteScore, blackScore, err := models.ParseResult(*m.Result)
		if err != nil {
			// Malformed results are rejected at write time; a row that still
			// carries one cannot be attributed to either player.
			continue
		}
		white, black := index[m.White], index[m.Black]
		if white == nil || black == nil {
			continue
		}

		white.Played++
		black.Played++

		switch {
		case whiteScore > blackScore:
			white.Won++
			white.Points++
			black.Lost++
		case blackScore > whiteScore:
			black.Won++
			black.Points++
			white.Lost++
		default:
			white.Drawn++
			white.Points += 0.5
			black.Drawn++
			black.Points += 0.5
		}
	}

	standings := make([]PlayerStats, 0, len(playerIDs))
	for _, id := range playerIDs {
		standings = append(standings, *index[id])
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].PlayerID < standings[j].PlayerID
	})
	return standings
}
