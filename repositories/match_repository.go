package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lbarasti/chess-social/models"
)

var ErrMatchNotFound = errors.New("match not found")

// MatchUpdate describes a partial update: only fields whose Set flag is true
// are written, and a nil value clears the column.
type MatchUpdate struct {
	Result      *string
	SetResult   bool
	GameLink    *string
	SetGameLink bool
}

// Empty reports whether the update touches nothing.
func (u MatchUpdate) Empty() bool {
	return !u.SetResult && !u.SetGameLink
}

type MatchRepository interface {
	CreateAll(ctx context.Context, exec SQLExecutor, matches []models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]models.Match, error)
	Update(ctx context.Context, exec SQLExecutor, id string, update MatchUpdate) (*models.Match, error)
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

// CreateAll inserts the full fixture batch of a tournament. It must run
// inside the same transaction as the tournament insert: either the whole
// fixture list is persisted, or nothing is.
func (r *postgresMatchRepository) CreateAll(ctx context.Context, exec SQLExecutor, matches []models.Match) error {
	query := `
		INSERT INTO matches (id, tournament_id, round, order_in_round, white, black, result, game_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i := range matches {
		m := &matches[i]
		if _, err := exec.ExecContext(ctx, query,
			m.ID, m.TournamentID, m.Round, m.OrderInRound, m.White, m.Black, m.Result, m.GameLink,
		); err != nil {
			return fmt.Errorf("failed to insert match %q: %w", m.ID, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, round, order_in_round, white, black, result, game_link
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.TournamentID,
		&match.Round,
		&match.OrderInRound,
		&match.White,
		&match.Black,
		&match.Result,
		&match.GameLink,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %q: %w", id, err)
	}
	return match, nil
}

// ListByTournament returns the tournament's matches in fixture order. It
// accepts an executor so the completion recompute can read through the same
// transaction that wrote the result.
func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) ([]models.Match, error) {
	if exec == nil {
		exec = r.db
	}
	query := `
		SELECT id, tournament_id, round, order_in_round, white, black, result, game_link
		FROM matches
		WHERE tournament_id = $1
		ORDER BY round ASC, order_in_round ASC`

	rows, err := exec.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %q: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := rows.Scan(
			&m.ID,
			&m.TournamentID,
			&m.Round,
			&m.OrderInRound,
			&m.White,
			&m.Black,
			&m.Result,
			&m.GameLink,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, exec SQLExecutor, id string, update MatchUpdate) (*models.Match, error) {
	if update.Empty() {
		return nil, errors.New("match update has no fields to set")
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString("UPDATE matches SET ")
	args := make([]interface{}, 0, 3)
	placeholderIndex := 1

	if update.SetResult {
		queryBuilder.WriteString("result = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, update.Result)
		placeholderIndex++
	}
	if update.SetGameLink {
		if update.SetResult {
			queryBuilder.WriteString(", ")
		}
		queryBuilder.WriteString("game_link = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, update.GameLink)
		placeholderIndex++
	}

	queryBuilder.WriteString(" WHERE id = $")
	queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
	queryBuilder.WriteString(" RETURNING id, tournament_id, round, order_in_round, white, black, result, game_link")
	args = append(args, id)

	match := &models.Match{}
	err := exec.QueryRowContext(ctx, queryBuilder.String(), args...).Scan(
		&match.ID,
		&match.TournamentID,
		&match.Round,
		&match.OrderInRound,
		&match.White,
		&match.Black,
		&match.Result,
		&match.GameLink,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %q: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID string) error {
	query := `DELETE FROM matches WHERE tournament_id = $1`
	if _, err := exec.ExecContext(ctx, query, tournamentID); err != nil {
		return fmt.Errorf("failed to delete matches for tournament %q: %w", tournamentID, err)
	}
	return nil
}
