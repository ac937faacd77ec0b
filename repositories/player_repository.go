package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/lbarasti/chess-social/models"
)

type PlayerRepository interface {
	UpsertAll(ctx context.Context, exec SQLExecutor, players []models.Player) error
	ListByIDs(ctx context.Context, ids []string) ([]models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

// UpsertAll registers players globally. The id is the canonical lower-cased
// Lichess username, so re-registering a known player just refreshes the
// display name and profile link.
func (r *postgresPlayerRepository) UpsertAll(ctx context.Context, exec SQLExecutor, players []models.Player) error {
	query := `
		INSERT INTO players (id, name, lichess_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, lichess_url = EXCLUDED.lichess_url`

	for _, p := range players {
		if _, err := exec.ExecContext(ctx, query, p.ID, p.Name, p.LichessURL); err != nil {
			return fmt.Errorf("failed to upsert player %q: %w", p.ID, err)
		}
	}
	return nil
}

// ListByIDs returns the players for the given ids, in the order the ids were
// passed. Unknown ids are silently absent from the result.
func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Player, error) {
	query := `
		SELECT id, name, lichess_url
		FROM players
		WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]models.Player, len(ids))
	for rows.Next() {
		var p models.Player
		if scanErr := rows.Scan(&p.ID, &p.Name, &p.LichessURL); scanErr != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", scanErr)
		}
		byID[p.ID] = p
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}

	players := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			players = append(players, p)
		}
	}
	return players, nil
}
