package fixtures

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func playerList(n int) []string {
	players := make([]string, n)
	for i := range players {
		players[i] = fmt.Sprintf("player%02d", i)
	}
	return players
}

func TestRoundRobinMatchCount(t *testing.T) {
	g := NewRoundRobinGenerator()

	for n := 2; n <= 20; n++ {
		for rounds := 1; rounds <= 4; rounds++ {
			matches, err := g.Generate(GenerateParams{PlayerIDs: playerList(n), Rounds: rounds})
			require.NoError(t, err, "n=%d rounds=%d", n, rounds)
			require.Len(t, matches, rounds*n*(n-1)/2, "n=%d rounds=%d", n, rounds)

			pairCount := make(map[string]int)
			for _, m := range matches {
				require.NotEqual(t, m.White, m.Black, "a player cannot face themselves")
				a, b := m.White, m.Black
				if a > b {
					a, b = b, a
				}
				pairCount[a+"|"+b]++
			}
			// Every unordered pair appears exactly once per round.
			require.Len(t, pairCount, n*(n-1)/2)
			for pair, count := range pairCount {
				require.Equal(t, rounds, count, "pair %s", pair)
			}
		}
	}
}

func TestRoundRobinColorAlternation(t *testing.T) {
	g := NewRoundRobinGenerator()
	players := playerList(6)

	matches, err := g.Generate(GenerateParams{PlayerIDs: players, Rounds: 4})
	require.NoError(t, err)

	// whiteByRound[round][pair] records who had white.
	whiteByRound := make(map[int]map[string]string)
	for _, m := range matches {
		a, b := m.White, m.Black
		if a > b {
			a, b = b, a
		}
		if whiteByRound[m.Round] == nil {
			whiteByRound[m.Round] = make(map[string]string)
		}
		whiteByRound[m.Round][a+"|"+b] = m.White
	}

	for round := 0; round < 3; round++ {
		for pair, white := range whiteByRound[round] {
			next := whiteByRound[round+1][pair]
			require.NotEqual(t, white, next,
				"pair %s must swap colors between rounds %d and %d", pair, round, round+1)
		}
	}
}

func TestRoundRobinDeterministicOrder(t *testing.T) {
	g := NewRoundRobinGenerator()
	players := []string{"alice", "bob", "carol"}

	matches, err := g.Generate(GenerateParams{PlayerIDs: players, Rounds: 2})
	require.NoError(t, err)
	require.Len(t, matches, 6)

	type pairing struct {
		round        int
		white, black string
	}
	expected := []pairing{
		{0, "alice", "bob"},
		{0, "alice", "carol"},
		{0, "bob", "carol"},
		{1, "bob", "alice"},
		{1, "carol", "alice"},
		{1, "carol", "bob"},
	}
	for i, want := range expected {
		require.Equal(t, want.round, matches[i].Round, "match %d round", i)
		require.Equal(t, want.white, matches[i].White, "match %d white", i)
		require.Equal(t, want.black, matches[i].Black, "match %d black", i)
	}

	again, err := g.Generate(GenerateParams{PlayerIDs: players, Rounds: 2})
	require.NoError(t, err)
	require.Equal(t, matches, again, "generation must be deterministic")
}

func TestRoundRobinRejectsBadInput(t *testing.T) {
	g := NewRoundRobinGenerator()

	tests := []struct {
		name    string
		players []string
		rounds  int
	}{
		{"one player", playerList(1), 1},
		{"no players", nil, 2},
		{"too many players", playerList(21), 1},
		{"zero rounds", playerList(4), 0},
		{"too many rounds", playerList(4), 5},
		{"duplicate players", []string{"alice", "bob", "alice"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := g.Generate(GenerateParams{PlayerIDs: tt.players, Rounds: tt.rounds})
			require.Error(t, err)
			require.Nil(t, matches)
		})
	}
}

func TestRoundRobinEmitsNoIDs(t *testing.T) {
	g := NewRoundRobinGenerator()
	matches, err := g.Generate(GenerateParams{PlayerIDs: playerList(3), Rounds: 1})
	require.NoError(t, err)
	for _, m := range matches {
		require.Empty(t, m.ID, "ids are assigned by the orchestrator")
		require.Nil(t, m.Result, "new fixtures start unplayed")
	}
}
