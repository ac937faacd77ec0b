package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/lbarasti/chess-social/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	UpdateCompletion(ctx context.Context, exec SQLExecutor, id string, complete bool) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error {
	settings, err := marshalSettings(tournament.ChallengeSettings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tournaments (id, name, creator_id, rounds, player_ids, challenge_settings, is_complete)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err = exec.QueryRowContext(ctx, query,
		tournament.ID,
		tournament.Name,
		tournament.CreatorID,
		tournament.Rounds,
		pq.Array(tournament.PlayerIDs),
		settings,
		tournament.IsComplete,
	).Scan(&tournament.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tournament %q: %w", tournament.ID, err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `
		SELECT id, name, creator_id, created_at, rounds, player_ids, challenge_settings, is_complete
		FROM tournaments
		WHERE id = $1`

	tournament := &models.Tournament{}
	var settings []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tournament.ID,
		&tournament.Name,
		&tournament.CreatorID,
		&tournament.CreatedAt,
		&tournament.Rounds,
		pq.Array(&tournament.PlayerIDs),
		&settings,
		&tournament.IsComplete,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament %q: %w", id, err)
	}
	if tournament.ChallengeSettings, err = unmarshalSettings(settings); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `
		SELECT id, name, creator_id, created_at, rounds, player_ids, challenge_settings, is_complete
		FROM tournaments
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		var settings []byte
		if scanErr := rows.Scan(
			&t.ID,
			&t.Name,
			&t.CreatorID,
			&t.CreatedAt,
			&t.Rounds,
			pq.Array(&t.PlayerIDs),
			&settings,
			&t.IsComplete,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", scanErr)
		}
		if t.ChallengeSettings, err = unmarshalSettings(settings); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) UpdateCompletion(ctx context.Context, exec SQLExecutor, id string, complete bool) error {
	query := `UPDATE tournaments SET is_complete = $1 WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, complete, id)
	if err != nil {
		return fmt.Errorf("failed to update completion for tournament %q: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Delete removes the tournament row. Matches are removed by the caller in
// the same transaction; the two deletes together form the cascade.
func (r *postgresTournamentRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	query := `DELETE FROM tournaments WHERE id = $1`
	result, err := exec.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %q: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func marshalSettings(settings *models.ChallengeSettings) ([]byte, error) {
	if settings == nil {
		return nil, nil
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal challenge settings: %w", err)
	}
	return data, nil
}

func unmarshalSettings(data []byte) (*models.ChallengeSettings, error) {
	if len(data) == 0 {
		return nil, nil
	}
	settings := &models.ChallengeSettings{}
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge settings: %w", err)
	}
	return settings, nil
}
