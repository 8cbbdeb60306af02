package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/matchplay/models"
)

var ErrStandingNotFound = errors.New("standing not found")

// StandingRepository persists the per-tournament-per-player projections.
// Standings are recomputed wholesale, so the interface is built around reset
// and upsert rather than targeted increments.
type StandingRepository interface {
	ResetByTournament(ctx context.Context, tournamentID string) error
	Upsert(ctx context.Context, standing *models.Standing) error
	ListByTournament(ctx context.Context, tournamentID string) ([]*models.Standing, error)
	PointsByPlayer(ctx context.Context, tournamentID string) (map[string]float64, error)
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) ResetByTournament(ctx context.Context, tournamentID string) error {
	query := `
		UPDATE standings
		SET wins = 0, draws = 0, losses = 0, matches_played = 0, points = 0, updated_at = NOW()
		WHERE tournament_id = $1`
	_, err := r.db.ExecContext(ctx, query, tournamentID)
	return err
}

func (r *postgresStandingRepository) Upsert(ctx context.Context, standing *models.Standing) error {
	query := `
		INSERT INTO standings
			(tournament_id, player_id, wins, draws, losses, matches_played, points, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (tournament_id, player_id) DO UPDATE SET
			wins = EXCLUDED.wins,
			draws = EXCLUDED.draws,
			losses = EXCLUDED.losses,
			matches_played = EXCLUDED.matches_played,
			points = EXCLUDED.points,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		standing.TournamentID, standing.PlayerID,
		standing.Wins, standing.Draws, standing.Losses,
		standing.MatchesPlayed, standing.Points,
	)
	return err
}

func (r *postgresStandingRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.Standing, error) {
	query := `
		SELECT s.tournament_id, s.player_id, p.name, s.wins, s.draws, s.losses,
		       s.matches_played, s.points, s.updated_at
		FROM standings s
		JOIN players p ON p.id = s.player_id
		WHERE s.tournament_id = $1
		ORDER BY s.points DESC, s.wins DESC, s.player_id`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.Standing, 0)
	for rows.Next() {
		var s models.Standing
		err := rows.Scan(
			&s.TournamentID, &s.PlayerID, &s.PlayerName, &s.Wins, &s.Draws,
			&s.Losses, &s.MatchesPlayed, &s.Points, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		standings = append(standings, &s)
	}
	return standings, rows.Err()
}

func (r *postgresStandingRepository) PointsByPlayer(ctx context.Context, tournamentID string) (map[string]float64, error) {
	query := `SELECT player_id, points FROM standings WHERE tournament_id = $1`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make(map[string]float64)
	for rows.Next() {
		var playerID string
		var p float64
		if err := rows.Scan(&playerID, &p); err != nil {
			return nil, err
		}
		points[playerID] = p
	}
	return points, rows.Err()
}
