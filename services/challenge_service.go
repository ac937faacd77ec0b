package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lbarasti/chess-social/lichess"
	"github.com/lbarasti/chess-social/models"
	"github.com/lbarasti/chess-social/repositories"
)

// ChallengeClient issues game challenges on the external chess server.
// Implemented by lichess.Client.
type ChallengeClient interface {
	CreateChallenge(ctx context.Context, token, opponent, color string, settings *models.ChallengeSettings) (*lichess.Challenge, error)
}

type ChallengeService interface {
	// ChallengeMatch opens a Lichess challenge for one of the actor's own
	// fixtures: the opponent and the actor's color come from the match
	// pairing, the settings from the tournament, verbatim.
	ChallengeMatch(ctx context.Context, token string, matchID string, actor Identity) (*lichess.Challenge, error)
}

type challengeService struct {
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	client         ChallengeClient
	logger         *slog.Logger
}

func NewChallengeService(
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	client ChallengeClient,
	logger *slog.Logger,
) ChallengeService {
	return &challengeService{
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		client:         client,
		logger:         logger,
	}
}

func (s *challengeService) ChallengeMatch(ctx context.Context, token string, matchID string, actor Identity) (*lichess.Challenge, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("%w: loading match: %v", ErrExternalDependency, err)
	}

	var color, opponent string
	switch actor.ID {
	case match.White:
		color, opponent = "white", match.Black
	case match.Black:
		color, opponent = "black", match.White
	default:
		return nil, ErrNotMatchParticipant
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading tournament: %v", ErrExternalDependency, err)
	}

	challenge, err := s.client.CreateChallenge(ctx, token, opponent, color, tournament.ChallengeSettings)
	if err != nil {
		if errors.Is(err, lichess.ErrInvalidToken) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("%w: %v", ErrExternalDependency, err)
	}

	s.logger.InfoContext(ctx, "challenge issued",
		slog.String("match_id", matchID),
		slog.String("challenger", actor.ID),
		slog.String("opponent", opponent),
		slog.String("game_url", challenge.URL))
	return challenge, nil
}
