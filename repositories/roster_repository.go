package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/matchplay/models"
	"github.com/lib/pq"
)

var (
	ErrRosterEntryNotFound = errors.New("tournament roster entry not found")
	ErrRosterPlayerInvalid = errors.New("roster player or tournament invalid")
)

// RosterRepository manages the per-tournament player list and its
// able_to_play eligibility flags.
type RosterRepository interface {
	// Add enrolls a player. Enrollment is append-only and idempotent; it
	// also guarantees a standings row exists for the pair.
	Add(ctx context.Context, tournamentID, playerID string, addedAt time.Time) error
	ListByTournament(ctx context.Context, tournamentID string) ([]*models.TournamentPlayer, error)
	SetAbleToPlay(ctx context.Context, tournamentID, playerID string, able bool) error
	CountEligible(ctx context.Context, tournamentID string) (int, error)
}

type postgresRosterRepository struct {
	db *sql.DB
}

func NewPostgresRosterRepository(db *sql.DB) RosterRepository {
	return &postgresRosterRepository{db: db}
}

func (r *postgresRosterRepository) Add(ctx context.Context, tournamentID, playerID string, addedAt time.Time) error {
	query := `
		INSERT INTO tournament_players (tournament_id, player_id, added_at, able_to_play)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (tournament_id, player_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, tournamentID, playerID, addedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrRosterPlayerInvalid
		}
		return err
	}

	statsQuery := `
		INSERT INTO standings (tournament_id, player_id, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (tournament_id, player_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, statsQuery, tournamentID, playerID, addedAt)
	return err
}

func (r *postgresRosterRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.TournamentPlayer, error) {
	query := `
		SELECT tp.tournament_id, tp.player_id, p.name, tp.added_at, tp.able_to_play
		FROM tournament_players tp
		JOIN players p ON p.id = tp.player_id
		WHERE tp.tournament_id = $1
		ORDER BY tp.added_at, tp.player_id`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.TournamentPlayer, 0)
	for rows.Next() {
		var e models.TournamentPlayer
		if err := rows.Scan(&e.TournamentID, &e.PlayerID, &e.PlayerName, &e.AddedAt, &e.AbleToPlay); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *postgresRosterRepository) SetAbleToPlay(ctx context.Context, tournamentID, playerID string, able bool) error {
	query := `
		UPDATE tournament_players SET able_to_play = $1
		WHERE tournament_id = $2 AND player_id = $3`
	result, err := r.db.ExecContext(ctx, query, able, tournamentID, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRosterEntryNotFound)
}

func (r *postgresRosterRepository) CountEligible(ctx context.Context, tournamentID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM tournament_players
		WHERE tournament_id = $1 AND able_to_play = TRUE`
	var count int
	err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(&count)
	return count, err
}
