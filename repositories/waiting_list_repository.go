package repositories

import (
	"context"
	"database/sql"
	"time"
)

// WaitingListRepository persists the per-tournament queue of players
// deferred from pairing. Insertion order is the queue order.
type WaitingListRepository interface {
	Add(ctx context.Context, id, tournamentID, playerID string, addedAt time.Time) error
	ListPlayers(ctx context.Context, tournamentID string) ([]string, error)
	Clear(ctx context.Context, tournamentID string) error
}

type postgresWaitingListRepository struct {
	db *sql.DB
}

func NewPostgresWaitingListRepository(db *sql.DB) WaitingListRepository {
	return &postgresWaitingListRepository{db: db}
}

func (r *postgresWaitingListRepository) Add(ctx context.Context, id, tournamentID, playerID string, addedAt time.Time) error {
	query := `
		INSERT INTO waiting_list (id, tournament_id, player_id, added_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, id, tournamentID, playerID, addedAt)
	return err
}

func (r *postgresWaitingListRepository) ListPlayers(ctx context.Context, tournamentID string) ([]string, error) {
	// The id is a sortable xid, so it breaks ties between entries added
	// within the same timestamp.
	query := `
		SELECT player_id FROM waiting_list
		WHERE tournament_id = $1 ORDER BY added_at, id`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]string, 0)
	for rows.Next() {
		var playerID string
		if err := rows.Scan(&playerID); err != nil {
			return nil, err
		}
		players = append(players, playerID)
	}
	return players, rows.Err()
}

func (r *postgresWaitingListRepository) Clear(ctx context.Context, tournamentID string) error {
	query := `DELETE FROM waiting_list WHERE tournament_id = $1`
	_, err := r.db.ExecContext(ctx, query, tournamentID)
	return err
}
