package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lbarasti/chess-social/fixtures"
	"github.com/lbarasti/chess-social/lichess"
	"github.com/lbarasti/chess-social/models"
	"github.com/lbarasti/chess-social/repositories"
	"github.com/lbarasti/chess-social/storage"
)

// MatchUpdateInput is a partial match mutation: each field carries a Set
// flag so that "clear the result" (nil value, flag set) is distinct from
// "leave the result alone" (flag unset).
type MatchUpdateInput struct {
	Result      *string
	SetResult   bool
	GameLink    *string
	SetGameLink bool
}

// Notifier pushes tournament events to live subscribers. Satisfied by
// *fixtures.Hub.
type Notifier interface {
	Broadcast(tournamentID string, eventType string, payload interface{})
}

type MatchService interface {
	// Update writes a result and/or game link to a match and recomputes the
	// tournament's completion flag from a fresh read of all its matches,
	// atomically with the write.
	Update(ctx context.Context, matchID string, input MatchUpdateInput, actor Identity) (*models.Match, error)
}

type matchService struct {
	txRunner       repositories.TxRunner
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	notifier       Notifier             // optional
	uploader       storage.FileUploader // optional
	logger         *slog.Logger
}

func NewMatchService(
	txRunner repositories.TxRunner,
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	notifier Notifier,
	uploader storage.FileUploader,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		txRunner:       txRunner,
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		notifier:       notifier,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *matchService) Update(ctx context.Context, matchID string, input MatchUpdateInput, actor Identity) (*models.Match, error) {
	if !input.SetResult && !input.SetGameLink {
		return nil, ErrNothingToUpdate
	}
	if input.SetResult && input.Result != nil && !models.ValidResult(*input.Result) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidResult, *input.Result)
	}

	// Game links are validated at write time; an empty string clears the
	// link. Reads never rewrite stored links.
	gameLink := input.GameLink
	if input.SetGameLink && gameLink != nil {
		if *gameLink == "" {
			gameLink = nil
		} else if !lichess.ValidGameURL(*gameLink) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidGameLink, *input.GameLink)
		}
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("%w: loading match: %v", ErrExternalDependency, err)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading tournament: %v", ErrExternalDependency, err)
	}
	// Any registered participant may edit any match of the tournament, not
	// just their own games.
	if !tournament.HasPlayer(actor.ID) {
		return nil, ErrNotTournamentPlayer
	}

	var (
		updated    *models.Match
		allMatches []models.Match
		complete   bool
	)
	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		updated, err = s.matchRepo.Update(ctx, exec, matchID, repositories.MatchUpdate{
			Result:      input.Result,
			SetResult:   input.SetResult,
			GameLink:    gameLink,
			SetGameLink: input.SetGameLink,
		})
		if err != nil {
			return err
		}
		// Completion is recomputed from the full match set as seen by this
		// transaction, never from the previously persisted flag.
		allMatches, err = s.matchRepo.ListByTournament(ctx, exec, match.TournamentID)
		if err != nil {
			return err
		}
		complete = fixtures.Complete(allMatches)
		return s.tournamentRepo.UpdateCompletion(ctx, exec, match.TournamentID, complete)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("%w: updating match: %v", ErrExternalDependency, err)
	}

	if s.notifier != nil {
		s.notifier.Broadcast(match.TournamentID, fixtures.EventMatchUpdated, updated)
		if complete && !tournament.IsComplete {
			s.notifier.Broadcast(match.TournamentID, fixtures.EventTournamentCompleted, nil)
		}
	}
	if complete && !tournament.IsComplete {
		s.archiveStandings(ctx, tournament, allMatches)
	}

	return updated, nil
}

// archiveStandings uploads the final standings snapshot once a tournament
// completes. The result write is already committed at this point: archive
// failures are logged and never surfaced to the caller.
func (s *matchService) archiveStandings(ctx context.Context, tournament *models.Tournament, matches []models.Match) {
	if s.uploader == nil {
		return
	}
	standings := fixtures.CalculateStandings(tournament.PlayerIDs, matches)
	payload, err := json.Marshal(map[string]interface{}{
		"tournament_id": tournament.ID,
		"name":          tournament.Name,
		"standings":     standings,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal standings archive",
			slog.String("tournament_id", tournament.ID), slog.Any("error", err))
		return
	}

	key := standingsArchiveKey(tournament.ID)
	if _, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload)); err != nil {
		s.logger.ErrorContext(ctx, "failed to upload standings archive",
			slog.String("tournament_id", tournament.ID), slog.Any("error", err))
		return
	}
	s.logger.InfoContext(ctx, "standings archived",
		slog.String("tournament_id", tournament.ID), slog.String("key", key))
}
