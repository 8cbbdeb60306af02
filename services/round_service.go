package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/matchplay/calculators"
	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/repositories"
	"github.com/Dosada05/matchplay/strategies"
	"github.com/Dosada05/matchplay/utils"
)

// Broadcaster pushes events to the websocket clients subscribed to a
// tournament room. The realtime hub satisfies it; services tolerate nil.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// EventMessage is the envelope every websocket event is wrapped in.
type EventMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

const (
	EventRoundCreated          = "ROUND_CREATED"
	EventMatchUpdated          = "MATCH_UPDATED"
	EventStandingsUpdated      = "STANDINGS_UPDATED"
	EventWaitingListReconciled = "WAITING_LIST_RECONCILED"
	EventTournamentWinner      = "TOURNAMENT_WINNER"
)

// TournamentWinnerPayload announces the decided winner of a knockout
// tournament.
type TournamentWinnerPayload struct {
	TournamentID string `json:"tournament_id"`
	WinnerID     string `json:"winner_id"`
	WinnerName   string `json:"winner_name,omitempty"`
	IsAutoWin    bool   `json:"is_auto_win"`
	Message      string `json:"message"`
}

// RoundView is what round creation returns: the persisted round, its matches
// and the players deferred to the waiting list.
type RoundView struct {
	Round          *models.Round   `json:"round"`
	Matches        []*models.Match `json:"matches"`
	WaitingPlayers []string        `json:"waiting_players"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
}

type RoundService interface {
	CreateRound(ctx context.Context, config models.RoundConfig) (*RoundView, error)

	// RecordResult records the outcome of a match exactly once, then runs
	// the post-result pipeline: knockout eliminations, waiting list
	// reconciliation and a full standings recomputation. calculatorName
	// overrides the tournament default when non-empty.
	RecordResult(ctx context.Context, matchID string, result *models.MatchResult, calculatorName string) (*models.Match, error)

	ListRounds(ctx context.Context, tournamentID string) ([]*models.Round, error)
	ListMatches(ctx context.Context, roundID string) ([]*models.Match, error)
}

type roundService struct {
	tournamentRepo repositories.TournamentRepository
	rosterRepo     repositories.RosterRepository
	roundRepo      repositories.RoundRepository
	matchRepo      repositories.MatchRepository
	standingRepo   repositories.StandingRepository
	waitingRepo    repositories.WaitingListRepository
	strategies     *strategies.Registry
	calculators    *calculators.Registry
	hub            Broadcaster
	logger         *slog.Logger
	locks          *tournamentLocks
}

func NewRoundService(
	tournamentRepo repositories.TournamentRepository,
	rosterRepo repositories.RosterRepository,
	roundRepo repositories.RoundRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
	waitingRepo repositories.WaitingListRepository,
	strategyRegistry *strategies.Registry,
	calculatorRegistry *calculators.Registry,
	hub Broadcaster,
	logger *slog.Logger,
) RoundService {
	return &roundService{
		tournamentRepo: tournamentRepo,
		rosterRepo:     rosterRepo,
		roundRepo:      roundRepo,
		matchRepo:      matchRepo,
		standingRepo:   standingRepo,
		waitingRepo:    waitingRepo,
		strategies:     strategyRegistry,
		calculators:    calculatorRegistry,
		hub:            hub,
		logger:         logger,
		locks:          newTournamentLocks(),
	}
}

func (s *roundService) CreateRound(ctx context.Context, config models.RoundConfig) (*RoundView, error) {
	if config.PlayersPerMatch == 0 {
		config.PlayersPerMatch = 2
	}
	if config.PlayersPerMatch < 2 {
		return nil, ErrInvalidPlayersPerMatch
	}

	strategy, ok := s.strategies.Get(config.RoundType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, config.RoundType)
	}
	if !strategy.SupportsPlayersPerMatch(config.PlayersPerMatch) {
		return nil, fmt.Errorf("%w: %s with %d players",
			ErrUnsupportedPlayerCount, config.RoundType, config.PlayersPerMatch)
	}

	unlock := s.locks.acquire(config.TournamentID)
	defer unlock()

	if _, err := s.tournamentRepo.GetByID(ctx, config.TournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}

	// A new round never starts while any real match of the tournament is
	// unresolved, regardless of which round it belongs to.
	pending, err := s.matchRepo.CountPendingByTournament(ctx, config.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("counting pending matches: %w", err)
	}
	if pending > 0 {
		return nil, fmt.Errorf("%w: %d unresolved", ErrPendingMatchesExist, pending)
	}

	pool, err := s.eligiblePlayers(ctx, config.TournamentID)
	if err != nil {
		return nil, err
	}

	if len(pool) <= 1 {
		decided, err := s.inKnockoutFlow(ctx, config.TournamentID, config.RoundType)
		if err != nil {
			return nil, err
		}
		if decided {
			return nil, ErrTournamentDecided
		}
	}
	if len(pool) == 0 {
		return nil, ErrNoEligiblePlayers
	}

	ordinal, err := s.roundRepo.CountByTournament(ctx, config.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("counting rounds: %w", err)
	}

	round := &models.Round{
		ID:           utils.NewID(),
		TournamentID: config.TournamentID,
		RoundType:    config.RoundType,
		Ordinal:      ordinal + 1,
		CreatedAt:    utils.Now(),
	}
	if err := s.roundRepo.Create(ctx, round); err != nil {
		return nil, mapRepositoryError(err)
	}

	result, err := strategy.CreateMatches(ctx, config.TournamentID, round.ID, pool, config)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", config.RoundType, err)
	}

	for _, match := range result.Matches {
		if err := s.matchRepo.Create(ctx, match); err != nil {
			return nil, fmt.Errorf("persisting match: %w", err)
		}
	}
	if config.RoundType == models.RoundTypeKnockout {
		// The knockout queue is rebuilt from this round's leftovers. A stale
		// entry from an earlier round could belong to a player this round
		// just eliminated.
		if err := s.waitingRepo.Clear(ctx, config.TournamentID); err != nil {
			return nil, fmt.Errorf("clearing waiting list: %w", err)
		}
	}
	for _, playerID := range result.WaitingPlayers {
		if err := s.waitingRepo.Add(ctx, utils.NewID(), config.TournamentID, playerID, utils.Now()); err != nil {
			return nil, fmt.Errorf("queueing waiting player: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "round created",
		slog.String("tournament_id", config.TournamentID),
		slog.String("round_id", round.ID),
		slog.String("round_type", round.RoundType),
		slog.Int("ordinal", round.Ordinal),
		slog.Int("matches", len(result.Matches)),
		slog.Int("waiting", len(result.WaitingPlayers)),
	)

	view := &RoundView{
		Round:          round,
		Matches:        result.Matches,
		WaitingPlayers: result.WaitingPlayers,
		Metadata:       result.Metadata,
	}
	s.broadcast(config.TournamentID, EventRoundCreated, view)
	return view, nil
}

func (s *roundService) RecordResult(ctx context.Context, matchID string, result *models.MatchResult, calculatorName string) (*models.Match, error) {
	if result == nil {
		return nil, ErrInvalidResult
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	unlock := s.locks.acquire(match.TournamentID)
	defer unlock()

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	calculator, err := s.resolveCalculator(calculatorName, tournament)
	if err != nil {
		return nil, err
	}
	if err := validateResult(match, result); err != nil {
		return nil, err
	}

	if err := s.matchRepo.UpdateResult(ctx, matchID, result); err != nil {
		return nil, mapRepositoryError(err)
	}

	round, err := s.roundRepo.GetByID(ctx, match.RoundID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if round.RoundType == models.RoundTypeKnockout && !result.IsDraw {
		if err := s.applyElimination(ctx, match, result); err != nil {
			return nil, err
		}
	}

	if err := s.reconcileWaitingList(ctx, match.TournamentID); err != nil {
		return nil, err
	}
	if err := s.recomputeStandings(ctx, match.TournamentID, calculator); err != nil {
		return nil, err
	}

	updated, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "match result recorded",
		slog.String("tournament_id", match.TournamentID),
		slog.String("match_id", matchID),
		slog.Bool("draw", result.IsDraw),
		slog.String("calculator", calculator.Name()),
	)

	s.broadcast(match.TournamentID, EventMatchUpdated, updated)
	if standings, err := s.standingRepo.ListByTournament(ctx, match.TournamentID); err == nil {
		s.broadcast(match.TournamentID, EventStandingsUpdated, standings)
	}
	if err := s.announceWinnerIfDecided(ctx, match.TournamentID); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *roundService) ListRounds(ctx context.Context, tournamentID string) ([]*models.Round, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, mapRepositoryError(err)
	}
	return s.roundRepo.ListByTournament(ctx, tournamentID)
}

func (s *roundService) ListMatches(ctx context.Context, roundID string) ([]*models.Match, error) {
	if _, err := s.roundRepo.GetByID(ctx, roundID); err != nil {
		return nil, mapRepositoryError(err)
	}
	return s.matchRepo.ListByRound(ctx, roundID)
}

// eligiblePlayers returns the able-to-play roster in enrollment order.
func (s *roundService) eligiblePlayers(ctx context.Context, tournamentID string) ([]string, error) {
	roster, err := s.rosterRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	pool := make([]string, 0, len(roster))
	for _, entry := range roster {
		if entry.AbleToPlay {
			pool = append(pool, entry.PlayerID)
		}
	}
	return pool, nil
}

// inKnockoutFlow reports whether the tournament is in (or entering) a
// knockout progression, which is the only mode with a terminal state.
func (s *roundService) inKnockoutFlow(ctx context.Context, tournamentID, roundType string) (bool, error) {
	if roundType == models.RoundTypeKnockout {
		return true, nil
	}
	exists, err := s.roundRepo.ExistsOfType(ctx, tournamentID, models.RoundTypeKnockout)
	if err != nil {
		return false, fmt.Errorf("checking knockout rounds: %w", err)
	}
	return exists, nil
}

func (s *roundService) resolveCalculator(name string, tournament *models.Tournament) (calculators.PointsCalculator, error) {
	if name == "" {
		name = tournament.DefaultCalculator
	}
	if name == "" {
		name = DefaultCalculatorName
	}
	calculator, ok := s.calculators.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
	}
	return calculator, nil
}

func validateResult(match *models.Match, result *models.MatchResult) error {
	if !result.IsDraw && len(result.WinnerIDs) == 0 {
		return fmt.Errorf("%w: non-draw result needs at least one winner", ErrInvalidResult)
	}
	for _, winnerID := range result.WinnerIDs {
		if !match.HasPlayer(winnerID) {
			return fmt.Errorf("%w: %s", ErrWinnerNotInMatch, winnerID)
		}
	}
	for playerID := range result.Rankings {
		if !match.HasPlayer(playerID) {
			return fmt.Errorf("%w: %s", ErrRankedPlayerNotInMatch, playerID)
		}
	}
	// For a decided match the rank-1 holders are exactly the winners;
	// anything else would let the calculators score a non-winner on top.
	if !result.IsDraw && len(result.Rankings) > 0 {
		winners := make(map[string]struct{}, len(result.WinnerIDs))
		for _, id := range result.WinnerIDs {
			winners[id] = struct{}{}
		}
		topRanked := 0
		for playerID, rank := range result.Rankings {
			if rank != 1 {
				continue
			}
			topRanked++
			if _, ok := winners[playerID]; !ok {
				return fmt.Errorf("%w: rank 1 player %s is not a winner", ErrInvalidResult, playerID)
			}
		}
		if topRanked != len(winners) {
			return fmt.Errorf("%w: winners and rank 1 players must match", ErrInvalidResult)
		}
	}
	return nil
}

// applyElimination flips eligibility after a decisive knockout match: losers
// are out, winners stay in.
func (s *roundService) applyElimination(ctx context.Context, match *models.Match, result *models.MatchResult) error {
	winners := make(map[string]struct{}, len(result.WinnerIDs))
	for _, id := range result.WinnerIDs {
		winners[id] = struct{}{}
	}
	for _, playerID := range match.PlayerIDs {
		_, won := winners[playerID]
		if err := s.rosterRepo.SetAbleToPlay(ctx, match.TournamentID, playerID, won); err != nil {
			return fmt.Errorf("updating eligibility for %s: %w", playerID, err)
		}
	}
	return nil
}

// reconcileWaitingList drains the waiting queue once the newest knockout
// round has no pending matches left. Two queued players at a time become a
// new match in that round; a lone survivor of the whole tournament advances
// with an auto-bye instead.
func (s *roundService) reconcileWaitingList(ctx context.Context, tournamentID string) error {
	latest, err := s.roundRepo.LatestByType(ctx, tournamentID, models.RoundTypeKnockout)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil
		}
		return fmt.Errorf("loading latest knockout round: %w", err)
	}

	pendingInRound, err := s.matchRepo.CountPendingByRound(ctx, latest.ID)
	if err != nil {
		return fmt.Errorf("counting pending round matches: %w", err)
	}
	if pendingInRound > 0 {
		return nil
	}

	waiting, err := s.waitingRepo.ListPlayers(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("loading waiting list: %w", err)
	}
	if len(waiting) == 0 {
		return nil
	}

	if len(waiting) == 1 {
		pendingAll, err := s.matchRepo.CountPendingByTournament(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("counting pending matches: %w", err)
		}
		if pendingAll > 0 {
			return nil
		}
		// Everyone else is done; the last queued player advances unopposed.
		bye := strategies.AutoByeMatch(tournamentID, latest.ID, waiting[0])
		if err := s.matchRepo.Create(ctx, bye); err != nil {
			return fmt.Errorf("persisting auto-bye: %w", err)
		}
		if err := s.waitingRepo.Clear(ctx, tournamentID); err != nil {
			return fmt.Errorf("clearing waiting list: %w", err)
		}
		s.logger.InfoContext(ctx, "waiting player advanced with auto-bye",
			slog.String("tournament_id", tournamentID),
			slog.String("player_id", waiting[0]),
		)
		s.broadcast(tournamentID, EventWaitingListReconciled, []*models.Match{bye})
		return nil
	}

	created := make([]*models.Match, 0, len(waiting)/2)
	for len(waiting) >= 2 {
		match := &models.Match{
			ID:              utils.NewID(),
			RoundID:         latest.ID,
			TournamentID:    tournamentID,
			PlayerIDs:       []string{waiting[0], waiting[1]},
			ScheduledAt:     utils.Now(),
			PlayersPerMatch: 2,
		}
		if err := s.matchRepo.Create(ctx, match); err != nil {
			return fmt.Errorf("persisting reconciliation match: %w", err)
		}
		created = append(created, match)
		waiting = waiting[2:]
	}

	if err := s.waitingRepo.Clear(ctx, tournamentID); err != nil {
		return fmt.Errorf("clearing waiting list: %w", err)
	}
	for _, playerID := range waiting {
		if err := s.waitingRepo.Add(ctx, utils.NewID(), tournamentID, playerID, utils.Now()); err != nil {
			return fmt.Errorf("re-queueing waiting player: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "waiting list reconciled",
		slog.String("tournament_id", tournamentID),
		slog.Int("matches_created", len(created)),
		slog.Int("requeued", len(waiting)),
	)
	s.broadcast(tournamentID, EventWaitingListReconciled, created)
	return nil
}

// recomputeStandings rebuilds the whole standings table by replaying every
// resolved match of the tournament through the given calculator. Replaying
// instead of incrementing keeps the projection correct no matter how many
// times or in which order results arrive.
func (s *roundService) recomputeStandings(ctx context.Context, tournamentID string, calculator calculators.PointsCalculator) error {
	if err := s.standingRepo.ResetByTournament(ctx, tournamentID); err != nil {
		return fmt.Errorf("resetting standings: %w", err)
	}

	roster, err := s.rosterRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}
	stats := make(map[string]*models.Standing, len(roster))
	order := make([]string, 0, len(roster))
	for _, entry := range roster {
		stats[entry.PlayerID] = &models.Standing{
			TournamentID: tournamentID,
			PlayerID:     entry.PlayerID,
		}
		order = append(order, entry.PlayerID)
	}

	resolved, err := s.matchRepo.ListResolvedByTournament(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("loading resolved matches: %w", err)
	}

	for _, match := range resolved {
		replay := match.ToResult()
		for _, playerID := range match.PlayerIDs {
			standing, ok := stats[playerID]
			if !ok {
				// Matches may reference players since removed from the
				// roster snapshot; score them anyway.
				standing = &models.Standing{TournamentID: tournamentID, PlayerID: playerID}
				stats[playerID] = standing
				order = append(order, playerID)
			}
			standing.MatchesPlayed++
			standing.Points += calculator.CalculatePoints(playerID, match, replay)
			switch {
			case match.IsDraw():
				standing.Draws++
			case match.HasWinner(playerID):
				standing.Wins++
			default:
				standing.Losses++
			}
		}
	}

	for _, playerID := range order {
		if err := s.standingRepo.Upsert(ctx, stats[playerID]); err != nil {
			return fmt.Errorf("upserting standing for %s: %w", playerID, err)
		}
	}
	return nil
}

// announceWinnerIfDecided broadcasts the tournament winner once a knockout
// progression is down to a single eligible player.
func (s *roundService) announceWinnerIfDecided(ctx context.Context, tournamentID string) error {
	exists, err := s.roundRepo.ExistsOfType(ctx, tournamentID, models.RoundTypeKnockout)
	if err != nil {
		return fmt.Errorf("checking knockout rounds: %w", err)
	}
	if !exists {
		return nil
	}

	roster, err := s.rosterRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}
	var winner *models.TournamentPlayer
	eligible := 0
	for _, entry := range roster {
		if entry.AbleToPlay {
			eligible++
			winner = entry
		}
	}
	if eligible != 1 {
		return nil
	}

	s.logger.InfoContext(ctx, "tournament decided",
		slog.String("tournament_id", tournamentID),
		slog.String("winner_id", winner.PlayerID),
	)
	s.broadcast(tournamentID, EventTournamentWinner, TournamentWinnerPayload{
		TournamentID: tournamentID,
		WinnerID:     winner.PlayerID,
		WinnerName:   winner.PlayerName,
		Message:      fmt.Sprintf("%s wins the tournament", winner.PlayerName),
	})
	return nil
}

func (s *roundService) broadcast(tournamentID, eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(tournamentID, EventMessage{
		Type:    eventType,
		Payload: payload,
		RoomID:  tournamentID,
	})
}
