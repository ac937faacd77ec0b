package fixtures

import (
	"fmt"

	"github.com/lbarasti/chess-social/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate creates matches for a round-robin tournament: every unordered
// pair of players meets once per round, for params.Rounds rounds.
//
// Output is round-major, then pair order (i, j) with i < j in the input
// order. Colors alternate by round parity: on even-indexed rounds player[i]
// takes white, on odd-indexed rounds the colors are swapped, so across any
// two consecutive rounds each pairing plays both colors once. A single
// round-robin (Rounds = 1) carries no color-balance guarantee.
func (g *RoundRobinGenerator) Generate(params GenerateParams) ([]models.Match, error) {
	players := params.PlayerIDs
	rounds := params.Rounds

	if len(players) < models.MinPlayers || len(players) > models.MaxPlayers {
		return nil, fmt.Errorf("RoundRobinGenerator: need between %d and %d players, got %d",
			models.MinPlayers, models.MaxPlayers, len(players))
	}
	if rounds < models.MinRounds || rounds > models.MaxRounds {
		return nil, fmt.Errorf("RoundRobinGenerator: rounds must be between %d and %d, got %d",
			models.MinRounds, models.MaxRounds, rounds)
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p] {
			return nil, fmt.Errorf("RoundRobinGenerator: duplicate player %q", p)
		}
		seen[p] = true
	}

	matches := make([]models.Match, 0, rounds*len(players)*(len(players)-1)/2)
	for round := 0; round < rounds; round++ {
		order := 0
		for i := 0; i < len(players); i++ {
			for j := i + 1; j < len(players); j++ {
				white, black := players[i], players[j]
				if round%2 == 1 {
					white, black = black, white
				}
				matches = append(matches, models.Match{
					Round:        round,
					OrderInRound: order,
					White:        white,
					Black:        black,
				})
				order++
			}
		}
	}
	return matches, nil
}
