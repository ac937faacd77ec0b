package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lbarasti/chess-social/fixtures"
	"github.com/lbarasti/chess-social/lichess"
	"github.com/lbarasti/chess-social/models"
	"github.com/lbarasti/chess-social/repositories"
	"github.com/lbarasti/chess-social/storage"
)

// PlayerInput is one registered player as submitted by the client.
type PlayerInput struct {
	Name            string `json:"name"`
	LichessUsername string `json:"lichessUsername"`
}

type CreateTournamentInput struct {
	Name              string                    `json:"name"`
	Type              string                    `json:"type"`
	Rounds            int                       `json:"rounds"`
	Players           []PlayerInput             `json:"players"`
	ChallengeSettings *models.ChallengeSettings `json:"challengeSettings,omitempty"`
}

// TournamentView is a tournament with its matches, players and the standings
// derived from them on read.
type TournamentView struct {
	models.Tournament
	Standings []fixtures.PlayerStats `json:"standings"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput, creator Identity) (*models.Tournament, error)
	Get(ctx context.Context, id string) (*TournamentView, error)
	List(ctx context.Context) ([]models.Tournament, error)
	Delete(ctx context.Context, id string, actor Identity) error
}

type tournamentService struct {
	txRunner       repositories.TxRunner
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	playerRepo     repositories.PlayerRepository
	generator      fixtures.Generator
	uploader       storage.FileUploader // optional
	logger         *slog.Logger
}

func NewTournamentService(
	txRunner repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	generator fixtures.Generator,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		txRunner:       txRunner,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		generator:      generator,
		uploader:       uploader,
		logger:         logger,
	}
}

// Create validates the input, generates the full fixture list and persists
// the tournament together with its matches in a single transaction. Nothing
// is written if any part fails.
func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput, creator Identity) (*models.Tournament, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTournamentNameRequired
	}
	if input.Type != "" && input.Type != "round-robin" {
		return nil, ErrUnsupportedFormat
	}
	if input.Rounds < models.MinRounds || input.Rounds > models.MaxRounds {
		return nil, ErrInvalidRoundCount
	}
	if len(input.Players) < models.MinPlayers || len(input.Players) > models.MaxPlayers {
		return nil, ErrInvalidPlayerCount
	}
	if input.ChallengeSettings != nil {
		if err := input.ChallengeSettings.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidChallengeSettings, err)
		}
	}

	players := make([]models.Player, 0, len(input.Players))
	playerIDs := make([]string, 0, len(input.Players))
	seen := make(map[string]bool, len(input.Players))
	for _, p := range input.Players {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.LichessUsername) == "" {
			return nil, ErrPlayerFieldsRequired
		}
		id := models.NormalizePlayerID(p.LichessUsername)
		if seen[id] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, id)
		}
		seen[id] = true
		playerIDs = append(playerIDs, id)
		players = append(players, models.Player{
			ID:         id,
			Name:       strings.TrimSpace(p.Name),
			LichessURL: lichess.ProfileURL(id),
		})
	}

	matches, err := s.generator.Generate(fixtures.GenerateParams{
		PlayerIDs: playerIDs,
		Rounds:    input.Rounds,
	})
	if err != nil {
		return nil, fmt.Errorf("fixture generation failed: %w", err)
	}

	creatorID := creator.ID
	tournament := &models.Tournament{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(input.Name),
		CreatorID:         &creatorID,
		Rounds:            input.Rounds,
		PlayerIDs:         playerIDs,
		ChallengeSettings: input.ChallengeSettings,
	}
	for i := range matches {
		matches[i].ID = uuid.New().String()
		matches[i].TournamentID = tournament.ID
	}

	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.playerRepo.UpsertAll(ctx, exec, players); err != nil {
			return err
		}
		if err := s.tournamentRepo.Create(ctx, exec, tournament); err != nil {
			return err
		}
		return s.matchRepo.CreateAll(ctx, exec, matches)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating tournament: %v", ErrExternalDependency, err)
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.String("tournament_id", tournament.ID),
		slog.String("creator", creator.ID),
		slog.Int("players", len(playerIDs)),
		slog.Int("matches", len(matches)))

	tournament.Players = players
	tournament.Matches = matches
	return tournament, nil
}

// Get loads a tournament with its matches and players and derives standings
// and the completion state from the authoritative match set.
func (s *tournamentService) Get(ctx context.Context, id string) (*TournamentView, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: loading tournament: %v", ErrExternalDependency, err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gCtx, nil, id)
		if err != nil {
			return err
		}
		tournament.Matches = matches
		return nil
	})
	g.Go(func() error {
		players, err := s.playerRepo.ListByIDs(gCtx, tournament.PlayerIDs)
		if err != nil {
			return err
		}
		tournament.Players = players
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: loading tournament details: %v", ErrExternalDependency, err)
	}

	// The persisted flag is only a cache; the view reports the state derived
	// from the matches just read.
	tournament.IsComplete = fixtures.Complete(tournament.Matches)

	return &TournamentView{
		Tournament: *tournament,
		Standings:  fixtures.CalculateStandings(tournament.PlayerIDs, tournament.Matches),
	}, nil
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing tournaments: %v", ErrExternalDependency, err)
	}
	return tournaments, nil
}

// Delete removes a tournament and all its matches. Only the creator may
// delete; legacy tournaments without a recorded creator cannot be deleted.
func (s *tournamentService) Delete(ctx context.Context, id string, actor Identity) error {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("%w: loading tournament: %v", ErrExternalDependency, err)
	}
	if tournament.CreatorID == nil || *tournament.CreatorID != actor.ID {
		return ErrCreatorOnly
	}

	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.DeleteByTournament(ctx, exec, id); err != nil {
			return err
		}
		return s.tournamentRepo.Delete(ctx, exec, id)
	})
	if err != nil {
		return fmt.Errorf("%w: deleting tournament: %v", ErrExternalDependency, err)
	}

	if s.uploader != nil {
		if err := s.uploader.Delete(ctx, standingsArchiveKey(id)); err != nil {
			s.logger.WarnContext(ctx, "failed to delete standings archive",
				slog.String("tournament_id", id), slog.Any("error", err))
		}
	}

	s.logger.InfoContext(ctx, "tournament deleted",
		slog.String("tournament_id", id), slog.String("actor", actor.ID))
	return nil
}

func standingsArchiveKey(tournamentID string) string {
	return "tournaments/" + tournamentID + "/standings.json"
}
