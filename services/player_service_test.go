package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lbarasti/chess-social/models"
)

func TestAutocomplete(t *testing.T) {
	searcher := &fakeSearcher{usernames: []string{"alice", "alicia"}}
	svc := NewPlayerService(newFakePlayerRepo(), searcher)

	usernames, err := svc.Autocomplete(context.Background(), "ali")
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "alicia"}, usernames)
}

func TestAutocompleteTermTooShort(t *testing.T) {
	svc := NewPlayerService(newFakePlayerRepo(), &fakeSearcher{})

	_, err := svc.Autocomplete(context.Background(), "al")
	require.ErrorIs(t, err, ErrTermTooShort)
}

func TestAutocompleteNoMatches(t *testing.T) {
	svc := NewPlayerService(newFakePlayerRepo(), &fakeSearcher{})

	usernames, err := svc.Autocomplete(context.Background(), "zzz")
	require.NoError(t, err)
	require.NotNil(t, usernames, "clients get an empty list, not null")
	require.Empty(t, usernames)
}

func TestAutocompleteLichessDown(t *testing.T) {
	svc := NewPlayerService(newFakePlayerRepo(), &fakeSearcher{err: errors.New("timeout")})

	_, err := svc.Autocomplete(context.Background(), "ali")
	require.ErrorIs(t, err, ErrExternalDependency)
}

func TestListPlayersByIDsNormalizes(t *testing.T) {
	playerRepo := newFakePlayerRepo()
	playerRepo.players["alice"] = models.Player{ID: "alice", Name: "Alice"}
	svc := NewPlayerService(playerRepo, &fakeSearcher{})

	players, err := svc.ListByIDs(context.Background(), []string{" Alice "})
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Equal(t, "alice", players[0].ID)
}
