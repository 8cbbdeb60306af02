package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dosada05/matchplay/calculators"
	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/repositories"
	"github.com/Dosada05/matchplay/storage"
	"github.com/Dosada05/matchplay/strategies"
	"github.com/Dosada05/matchplay/utils"
	"golang.org/x/sync/errgroup"
)

// DefaultCalculatorName scores tournaments that never picked one explicitly.
const DefaultCalculatorName = "standard"

// StrategyInfo describes one registered matchmaking strategy for the
// introspection endpoints.
type StrategyInfo struct {
	Name                 string `json:"name"`
	SupportsHeadToHead   bool   `json:"supports_head_to_head"`
	SupportsLargerGroups bool   `json:"supports_larger_groups"`
}

type TournamentService interface {
	CreatePlayer(ctx context.Context, name string) (*models.Player, error)
	GetPlayer(ctx context.Context, playerID string) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]*models.Player, error)

	CreateTournament(ctx context.Context, name, defaultCalculator string) (*models.Tournament, error)
	GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]*models.Tournament, error)
	AddPlayer(ctx context.Context, tournamentID, playerID string) error
	SetDefaultCalculator(ctx context.Context, tournamentID, calculator string) error
	GetStandings(ctx context.Context, tournamentID string) ([]*models.Standing, error)
	UploadLogo(ctx context.Context, tournamentID, contentType string, file io.Reader) (*models.Tournament, error)

	ListStrategies() []StrategyInfo
	StrategiesForPlayerCount(playersPerMatch int) []string
	ListCalculators() []string
}

type tournamentService struct {
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	rosterRepo     repositories.RosterRepository
	roundRepo      repositories.RoundRepository
	standingRepo   repositories.StandingRepository
	strategies     *strategies.Registry
	calculators    *calculators.Registry
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	rosterRepo repositories.RosterRepository,
	roundRepo repositories.RoundRepository,
	standingRepo repositories.StandingRepository,
	strategyRegistry *strategies.Registry,
	calculatorRegistry *calculators.Registry,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		rosterRepo:     rosterRepo,
		roundRepo:      roundRepo,
		standingRepo:   standingRepo,
		strategies:     strategyRegistry,
		calculators:    calculatorRegistry,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *tournamentService) CreatePlayer(ctx context.Context, name string) (*models.Player, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	player := &models.Player{
		ID:        utils.NewID(),
		Name:      name,
		CreatedAt: utils.Now(),
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, mapRepositoryError(err)
	}
	s.logger.InfoContext(ctx, "player created", slog.String("player_id", player.ID))
	return player, nil
}

func (s *tournamentService) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return player, nil
}

func (s *tournamentService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	return s.playerRepo.List(ctx)
}

func (s *tournamentService) CreateTournament(ctx context.Context, name, defaultCalculator string) (*models.Tournament, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if defaultCalculator == "" {
		defaultCalculator = DefaultCalculatorName
	}
	if _, ok := s.calculators.Get(defaultCalculator); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, defaultCalculator)
	}
	tournament := &models.Tournament{
		ID:                utils.NewID(),
		Name:              name,
		CreatedAt:         utils.Now(),
		DefaultCalculator: defaultCalculator,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, mapRepositoryError(err)
	}
	s.logger.InfoContext(ctx, "tournament created",
		slog.String("tournament_id", tournament.ID),
		slog.String("default_calculator", defaultCalculator),
	)
	return tournament, nil
}

// GetTournament returns the tournament with its roster, rounds and standings
// loaded in parallel.
func (s *tournamentService) GetTournament(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		roster, err := s.rosterRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("loading roster: %w", err)
		}
		tournament.Players = make([]models.TournamentPlayer, len(roster))
		for i, entry := range roster {
			tournament.Players[i] = *entry
		}
		return nil
	})

	g.Go(func() error {
		rounds, err := s.roundRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("loading rounds: %w", err)
		}
		tournament.Rounds = make([]models.Round, len(rounds))
		for i, round := range rounds {
			tournament.Rounds[i] = *round
		}
		return nil
	})

	g.Go(func() error {
		standings, err := s.standingRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("loading standings: %w", err)
		}
		tournament.Standings = make([]models.Standing, len(standings))
		for i, standing := range standings {
			tournament.Standings[i] = *standing
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tournaments {
		s.populateLogoURL(t)
	}
	return tournaments, nil
}

func (s *tournamentService) AddPlayer(ctx context.Context, tournamentID, playerID string) error {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return mapRepositoryError(err)
	}
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.rosterRepo.Add(ctx, tournamentID, playerID, utils.Now()); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.InfoContext(ctx, "player added to tournament",
		slog.String("tournament_id", tournamentID),
		slog.String("player_id", playerID),
	)
	return nil
}

func (s *tournamentService) SetDefaultCalculator(ctx context.Context, tournamentID, calculator string) error {
	if _, ok := s.calculators.Get(calculator); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCalculator, calculator)
	}
	if err := s.tournamentRepo.UpdateDefaultCalculator(ctx, tournamentID, calculator); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *tournamentService) GetStandings(ctx context.Context, tournamentID string) ([]*models.Standing, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	return s.standingRepo.ListByTournament(ctx, tournamentID)
}

func (s *tournamentService) UploadLogo(ctx context.Context, tournamentID, contentType string, file io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageNotConfigured
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%s/logo%s", tournamentID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("uploading tournament logo: %w", err)
	}
	if err := s.tournamentRepo.UpdateLogoKey(ctx, tournamentID, &key); err != nil {
		return nil, mapRepositoryError(err)
	}

	if tournament.LogoKey != nil && *tournament.LogoKey != key {
		// Old logo had a different extension; drop the stale object.
		if err := s.uploader.Delete(ctx, *tournament.LogoKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous logo",
				slog.String("tournament_id", tournamentID),
				slog.String("key", *tournament.LogoKey),
				slog.Any("error", err),
			)
		}
	}

	tournament.LogoKey = &key
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) populateLogoURL(tournament *models.Tournament) {
	if tournament == nil || tournament.LogoKey == nil || *tournament.LogoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*tournament.LogoKey); url != "" {
		tournament.LogoURL = &url
	}
}

func (s *tournamentService) ListStrategies() []StrategyInfo {
	names := s.strategies.List()
	infos := make([]StrategyInfo, 0, len(names))
	for _, name := range names {
		strategy, _ := s.strategies.Get(name)
		infos = append(infos, StrategyInfo{
			Name:                 name,
			SupportsHeadToHead:   strategy.SupportsPlayersPerMatch(2),
			SupportsLargerGroups: strategy.SupportsPlayersPerMatch(3),
		})
	}
	return infos
}

func (s *tournamentService) StrategiesForPlayerCount(playersPerMatch int) []string {
	return s.strategies.ForPlayerCount(playersPerMatch)
}

func (s *tournamentService) ListCalculators() []string {
	return s.calculators.List()
}
