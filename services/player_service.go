package services

import (
	"context"
	"fmt"

	"github.com/lbarasti/chess-social/models"
	"github.com/lbarasti/chess-social/repositories"
)

// UsernameSearcher looks up usernames on the external chess server.
// Implemented by lichess.Client.
type UsernameSearcher interface {
	AutocompleteUsernames(ctx context.Context, term string) ([]string, error)
}

type PlayerService interface {
	// Autocomplete proxies the Lichess username search for the registration
	// form. Lichess requires at least three characters.
	Autocomplete(ctx context.Context, term string) ([]string, error)

	// ListByIDs returns known players for the given identities.
	ListByIDs(ctx context.Context, ids []string) ([]models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	searcher   UsernameSearcher
}

func NewPlayerService(playerRepo repositories.PlayerRepository, searcher UsernameSearcher) PlayerService {
	return &playerService{playerRepo: playerRepo, searcher: searcher}
}

func (s *playerService) Autocomplete(ctx context.Context, term string) ([]string, error) {
	if len(term) < 3 {
		return nil, ErrTermTooShort
	}
	usernames, err := s.searcher.AutocompleteUsernames(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalDependency, err)
	}
	if usernames == nil {
		usernames = []string{}
	}
	return usernames, nil
}

func (s *playerService) ListByIDs(ctx context.Context, ids []string) ([]models.Player, error) {
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		normalized = append(normalized, models.NormalizePlayerID(id))
	}
	players, err := s.playerRepo.ListByIDs(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: listing players: %v", ErrExternalDependency, err)
	}
	return players, nil
}
