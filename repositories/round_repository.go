package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/matchplay/models"
	"github.com/lib/pq"
)

var (
	ErrRoundNotFound          = errors.New("round not found")
	ErrRoundTournamentInvalid = errors.New("round tournament conflict or invalid")
	ErrRoundOrdinalConflict   = errors.New("round ordinal already taken for tournament")
)

type RoundRepository interface {
	Create(ctx context.Context, round *models.Round) error
	GetByID(ctx context.Context, id string) (*models.Round, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]*models.Round, error)
	CountByTournament(ctx context.Context, tournamentID string) (int, error)
	LatestByType(ctx context.Context, tournamentID, roundType string) (*models.Round, error)
	ExistsOfType(ctx context.Context, tournamentID, roundType string) (bool, error)
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

func (r *postgresRoundRepository) Create(ctx context.Context, round *models.Round) error {
	query := `
		INSERT INTO rounds (id, tournament_id, round_type, ordinal, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		round.ID, round.TournamentID, round.RoundType, round.Ordinal, round.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrRoundOrdinalConflict
			case "23503":
				return ErrRoundTournamentInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresRoundRepository) scanRound(rowScanner interface{ Scan(...interface{}) error }) (*models.Round, error) {
	var rd models.Round
	err := rowScanner.Scan(&rd.ID, &rd.TournamentID, &rd.RoundType, &rd.Ordinal, &rd.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return &rd, nil
}

func (r *postgresRoundRepository) GetByID(ctx context.Context, id string) (*models.Round, error) {
	query := `
		SELECT id, tournament_id, round_type, ordinal, created_at
		FROM rounds WHERE id = $1`
	return r.scanRound(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRoundRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.Round, error) {
	query := `
		SELECT id, tournament_id, round_type, ordinal, created_at
		FROM rounds WHERE tournament_id = $1 ORDER BY ordinal`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]*models.Round, 0)
	for rows.Next() {
		rd, err := r.scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, rd)
	}
	return rounds, rows.Err()
}

func (r *postgresRoundRepository) CountByTournament(ctx context.Context, tournamentID string) (int, error) {
	query := `SELECT COUNT(*) FROM rounds WHERE tournament_id = $1`
	var count int
	err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(&count)
	return count, err
}

func (r *postgresRoundRepository) LatestByType(ctx context.Context, tournamentID, roundType string) (*models.Round, error) {
	query := `
		SELECT id, tournament_id, round_type, ordinal, created_at
		FROM rounds WHERE tournament_id = $1 AND round_type = $2
		ORDER BY ordinal DESC LIMIT 1`
	return r.scanRound(r.db.QueryRowContext(ctx, query, tournamentID, roundType))
}

func (r *postgresRoundRepository) ExistsOfType(ctx context.Context, tournamentID, roundType string) (bool, error) {
	query := `SELECT COUNT(*) FROM rounds WHERE tournament_id = $1 AND round_type = $2`
	var count int
	if err := r.db.QueryRowContext(ctx, query, tournamentID, roundType).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
