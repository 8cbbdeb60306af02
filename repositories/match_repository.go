package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/matchplay/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchAlreadyResolved = errors.New("match already has a recorded result")
	ErrMatchRoundInvalid    = errors.New("match round or tournament conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListByRound(ctx context.Context, roundID string) ([]*models.Match, error)
	ListResolvedByTournament(ctx context.Context, tournamentID string) ([]*models.Match, error)

	// UpdateResult sets the result fields exactly once. Recording onto an
	// already-resolved match fails with ErrMatchAlreadyResolved; the guard
	// lives in the UPDATE itself, so it holds under concurrency.
	UpdateResult(ctx context.Context, matchID string, result *models.MatchResult) error

	CountPendingByTournament(ctx context.Context, tournamentID string) (int, error)
	CountPendingByRound(ctx context.Context, roundID string) (int, error)

	PairPlayed(ctx context.Context, tournamentID, playerA, playerB string) (bool, error)
	GroupPlayed(ctx context.Context, tournamentID string, playerIDs []string) (bool, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	rankings, err := marshalRankings(match.Rankings)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO matches
			(id, round_id, tournament_id, player_ids, scheduled_at, result,
			 winner_ids, rankings, auto_bye, players_per_match)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.db.ExecContext(ctx, query,
		match.ID,
		match.RoundID,
		match.TournamentID,
		pq.Array(match.PlayerIDs),
		match.ScheduledAt,
		outcomeValue(match.Result),
		pq.Array(match.WinnerIDs),
		rankings,
		match.AutoBye,
		match.PlayersPerMatch,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMatchRoundInvalid
		}
		return err
	}
	return nil
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var (
		m         models.Match
		playerIDs pq.StringArray
		result    sql.NullString
		winnerIDs pq.StringArray
		rankings  []byte
	)
	err := rowScanner.Scan(
		&m.ID, &m.RoundID, &m.TournamentID, &playerIDs, &m.ScheduledAt,
		&result, &winnerIDs, &rankings, &m.AutoBye, &m.PlayersPerMatch,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	m.PlayerIDs = playerIDs
	m.WinnerIDs = winnerIDs
	if result.Valid {
		outcome := models.MatchOutcome(result.String)
		m.Result = &outcome
	}
	if len(rankings) > 0 {
		if err := json.Unmarshal(rankings, &m.Rankings); err != nil {
			return nil, fmt.Errorf("failed to decode match rankings: %w", err)
		}
	}
	return &m, nil
}

const matchColumns = `
	id, round_id, tournament_id, player_ids, scheduled_at, result,
	winner_ids, rankings, auto_bye, players_per_match`

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) listMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, err := r.scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) ListByRound(ctx context.Context, roundID string) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE round_id = $1 ORDER BY scheduled_at, id`
	return r.listMatches(ctx, query, roundID)
}

func (r *postgresMatchRepository) ListResolvedByTournament(ctx context.Context, tournamentID string) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches
		WHERE tournament_id = $1 AND result IS NOT NULL
		ORDER BY scheduled_at, id`
	return r.listMatches(ctx, query, tournamentID)
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, matchID string, result *models.MatchResult) error {
	outcome := models.OutcomeComplete
	if result.IsDraw {
		outcome = models.OutcomeDraw
	}
	rankings, err := marshalRankings(result.Rankings)
	if err != nil {
		return err
	}
	query := `
		UPDATE matches
		SET result = $1, winner_ids = $2, rankings = $3
		WHERE id = $4 AND result IS NULL`
	res, err := r.db.ExecContext(ctx, query, string(outcome), pq.Array(result.WinnerIDs), rankings, matchID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		// Either the match does not exist or its result is already set.
		if _, getErr := r.GetByID(ctx, matchID); getErr != nil {
			return getErr
		}
		return ErrMatchAlreadyResolved
	}
	return nil
}

func (r *postgresMatchRepository) CountPendingByTournament(ctx context.Context, tournamentID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM matches
		WHERE tournament_id = $1 AND result IS NULL AND auto_bye = FALSE`
	var count int
	err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) CountPendingByRound(ctx context.Context, roundID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM matches
		WHERE round_id = $1 AND result IS NULL AND auto_bye = FALSE`
	var count int
	err := r.db.QueryRowContext(ctx, query, roundID).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) PairPlayed(ctx context.Context, tournamentID, playerA, playerB string) (bool, error) {
	return r.GroupPlayed(ctx, tournamentID, []string{playerA, playerB})
}

// GroupPlayed checks for an existing match with exactly this participant
// set, in any order. Mutual array containment is set equality.
func (r *postgresMatchRepository) GroupPlayed(ctx context.Context, tournamentID string, playerIDs []string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM matches
		WHERE tournament_id = $1 AND player_ids @> $2 AND player_ids <@ $2`
	var count int
	if err := r.db.QueryRowContext(ctx, query, tournamentID, pq.Array(playerIDs)).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func marshalRankings(rankings map[string]int) ([]byte, error) {
	if len(rankings) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(rankings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode match rankings: %w", err)
	}
	return data, nil
}

func outcomeValue(outcome *models.MatchOutcome) interface{} {
	if outcome == nil {
		return nil
	}
	return string(*outcome)
}
