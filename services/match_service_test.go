package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lbarasti/chess-social/fixtures"
	"github.com/lbarasti/chess-social/models"
)

type matchServiceFixture struct {
	txRunner       *fakeTxRunner
	tournamentRepo *fakeTournamentRepo
	matchRepo      *fakeMatchRepo
	notifier       *fakeNotifier
	uploader       *fakeUploader
	svc            MatchService
}

// newMatchServiceFixture sets up a two-player, two-match tournament where the
// first match already has a result.
func newMatchServiceFixture() *matchServiceFixture {
	tournament := &models.Tournament{
		ID:        "t1",
		Name:      "Winter League",
		PlayerIDs: []string{"alice", "bob"},
	}
	matchRepo := &fakeMatchRepo{matches: []models.Match{
		{ID: "m1", TournamentID: "t1", Round: 0, White: "alice", Black: "bob", Result: strPtr(models.ResultDraw)},
		{ID: "m2", TournamentID: "t1", Round: 1, White: "bob", Black: "alice"},
	}}
	f := &matchServiceFixture{
		txRunner:       &fakeTxRunner{},
		tournamentRepo: newFakeTournamentRepo(tournament),
		matchRepo:      matchRepo,
		notifier:       &fakeNotifier{},
		uploader:       &fakeUploader{},
	}
	f.svc = NewMatchService(f.txRunner, f.matchRepo, f.tournamentRepo, f.notifier, f.uploader, testLogger())
	return f
}

func TestUpdateMatchRecordsResult(t *testing.T) {
	f := newMatchServiceFixture()

	updated, err := f.svc.Update(context.Background(), "m2",
		MatchUpdateInput{Result: strPtr(models.ResultWhiteWins), SetResult: true},
		Identity{ID: "alice"})
	require.NoError(t, err)
	require.NotNil(t, updated.Result)
	require.Equal(t, models.ResultWhiteWins, *updated.Result)
	require.Equal(t, 1, f.txRunner.calls)
}

func TestUpdateMatchValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   MatchUpdateInput
		wantErr error
	}{
		{"nothing to update", MatchUpdateInput{}, ErrNothingToUpdate},
		{
			"unknown result",
			MatchUpdateInput{Result: strPtr("2-0"), SetResult: true},
			ErrInvalidResult,
		},
		{
			"foreign game link",
			MatchUpdateInput{GameLink: strPtr("https://chess.com/game/1"), SetGameLink: true},
			ErrInvalidGameLink,
		},
		{
			"malformed game link",
			MatchUpdateInput{GameLink: strPtr("https://lichess.org/tooshort/white/x"), SetGameLink: true},
			ErrInvalidGameLink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchServiceFixture()
			_, err := f.svc.Update(context.Background(), "m2", tt.input, Identity{ID: "alice"})
			require.ErrorIs(t, err, tt.wantErr)
			require.Zero(t, f.txRunner.calls, "invalid input must not reach the database")
			require.Empty(t, f.notifier.events)
		})
	}
}

func TestUpdateMatchAuthorization(t *testing.T) {
	f := newMatchServiceFixture()

	// Any registered player may edit any match, including games they are not
	// playing in. m2 is bob vs alice; both may write, a stranger may not.
	_, err := f.svc.Update(context.Background(), "m2",
		MatchUpdateInput{Result: strPtr(models.ResultDraw), SetResult: true},
		Identity{ID: "mallory"})
	require.ErrorIs(t, err, ErrNotTournamentPlayer)
	require.Zero(t, f.txRunner.calls)

	_, err = f.svc.Update(context.Background(), "m2",
		MatchUpdateInput{Result: strPtr(models.ResultDraw), SetResult: true},
		Identity{ID: "bob"})
	require.NoError(t, err)
}

func TestUpdateMatchNotFound(t *testing.T) {
	f := newMatchServiceFixture()
	_, err := f.svc.Update(context.Background(), "missing",
		MatchUpdateInput{Result: strPtr(models.ResultDraw), SetResult: true},
		Identity{ID: "alice"})
	require.ErrorIs(t, err, ErrMatchNotFound)
}

func TestUpdateMatchClearsGameLink(t *testing.T) {
	f := newMatchServiceFixture()
	f.matchRepo.matches[1].GameLink = strPtr("https://lichess.org/abcd1234")

	updated, err := f.svc.Update(context.Background(), "m2",
		MatchUpdateInput{GameLink: strPtr(""), SetGameLink: true},
		Identity{ID: "alice"})
	require.NoError(t, err)
	require.Nil(t, updated.GameLink, "an empty string clears the stored link")
}

func TestUpdateMatchCompletionTransition(t *testing.T) {
	f := newMatchServiceFixture()

	// Writing the last missing result completes the tournament.
	_, err := f.svc.Update(context.Background(), "m2",
		MatchUpdateInput{Result: strPtr(models.ResultBlackWins), SetResult: true},
		Identity{ID: "alice"})
	require.NoError(t, err)

	require.Equal(t, []bool{true}, f.tournamentRepo.completionWrites)
	require.True(t, f.tournamentRepo.tournaments["t1"].IsComplete)

	require.Len(t, f.notifier.events, 2)
	require.Equal(t, fixtures.EventMatchUpdated, f.notifier.events[0].eventType)
	require.Equal(t, fixtures.EventTournamentCompleted, f.notifier.events[1].eventType)
	require.Equal(t, []string{"tournaments/t1/standings.json"}, f.uploader.uploads)
}

func TestUpdateMatchReopensTournament(t *testing.T) {
	f := newMatchServiceFixture()
	f.matchRepo.matches[1].Result = strPtr(models.ResultBlackWins)
	f.tournamentRepo.tournaments["t1"].IsComplete = true

	// Clearing a result must flip the flag back, derived from a fresh read.
	_, err := f.svc.Update(context.Background(), "m2",
		MatchUpdateInput{Result: nil, SetResult: true},
		Identity{ID: "bob"})
	require.NoError(t, err)

	require.Equal(t, []bool{false}, f.tournamentRepo.completionWrites)
	require.False(t, f.tournamentRepo.tournaments["t1"].IsComplete)

	// Reopening is not a completion transition: no completed event, no archive.
	require.Len(t, f.notifier.events, 1)
	require.Equal(t, fixtures.EventMatchUpdated, f.notifier.events[0].eventType)
	require.Empty(t, f.uploader.uploads)
}

func TestUpdateMatchAlreadyCompleteDoesNotReannounce(t *testing.T) {
	f := newMatchServiceFixture()
	f.matchRepo.matches[1].Result = strPtr(models.ResultBlackWins)
	f.tournamentRepo.tournaments["t1"].IsComplete = true

	// Attaching a game link to a finished tournament keeps it complete but
	// must not fire a second completion announcement.
	_, err := f.svc.Update(context.Background(), "m2",
		MatchUpdateInput{GameLink: strPtr("https://lichess.org/abcd1234/black"), SetGameLink: true},
		Identity{ID: "alice"})
	require.NoError(t, err)

	require.Len(t, f.notifier.events, 1)
	require.Equal(t, fixtures.EventMatchUpdated, f.notifier.events[0].eventType)
	require.Empty(t, f.uploader.uploads)
}
