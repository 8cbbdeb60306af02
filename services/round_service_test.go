package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Dosada05/matchplay/calculators"
	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/repositories"
	"github.com/Dosada05/matchplay/strategies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	mu     sync.Mutex
	events []EventMessage
}

func (h *fakeHub) BroadcastToRoom(roomID string, message interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if event, ok := message.(EventMessage); ok {
		h.events = append(h.events, event)
	}
}

func (h *fakeHub) eventsOfType(eventType string) []EventMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []EventMessage
	for _, e := range h.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type testEnv struct {
	repos       *repositories.InMemory
	hub         *fakeHub
	tournaments TournamentService
	rounds      RoundService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repos := repositories.NewInMemory()

	calculatorRegistry := calculators.NewRegistry()
	calculatorRegistry.Register(calculators.NewStandardCalculator())
	calculatorRegistry.Register(calculators.NewThreePointCalculator())
	calculatorRegistry.Register(calculators.NewRankingCalculator())

	strategyRegistry := strategies.NewRegistry()
	strategyRegistry.Register(strategies.NewRoundRobinStrategy(repos.Matches))
	strategyRegistry.Register(strategies.NewKnockoutStrategy())
	strategyRegistry.Register(strategies.NewSwissStrategy(repos.Matches, repos.Standings))
	strategyRegistry.Register(strategies.NewFreeForAllStrategy())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := &fakeHub{}

	return &testEnv{
		repos: repos,
		hub:   hub,
		tournaments: NewTournamentService(
			repos.Players, repos.Tournaments, repos.Roster, repos.Rounds,
			repos.Standings, strategyRegistry, calculatorRegistry, nil, logger,
		),
		rounds: NewRoundService(
			repos.Tournaments, repos.Roster, repos.Rounds, repos.Matches,
			repos.Standings, repos.WaitingList, strategyRegistry,
			calculatorRegistry, hub, logger,
		),
	}
}

// setup creates a tournament with the named players enrolled in order and
// returns the tournament id plus name->player-id mapping.
func (e *testEnv) setup(t *testing.T, names ...string) (string, map[string]string) {
	t.Helper()
	ctx := context.Background()
	tournament, err := e.tournaments.CreateTournament(ctx, "test open", "")
	require.NoError(t, err)

	ids := make(map[string]string, len(names))
	for _, name := range names {
		player, err := e.tournaments.CreatePlayer(ctx, name)
		require.NoError(t, err)
		require.NoError(t, e.tournaments.AddPlayer(ctx, tournament.ID, player.ID))
		ids[name] = player.ID
	}
	return tournament.ID, ids
}

func win(winnerID string) *models.MatchResult {
	return &models.MatchResult{WinnerIDs: []string{winnerID}}
}

func TestCreateRoundUnknownStrategy(t *testing.T) {
	env := newTestEnv(t)
	tid, _ := env.setup(t, "alice", "bob")

	_, err := env.rounds.CreateRound(context.Background(), models.RoundConfig{
		TournamentID: tid, RoundType: "ladder",
	})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestCreateRoundUnsupportedPlayerCount(t *testing.T) {
	env := newTestEnv(t)
	tid, _ := env.setup(t, "alice", "bob", "carol")

	_, err := env.rounds.CreateRound(context.Background(), models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeSwiss, PlayersPerMatch: 3,
	})
	assert.ErrorIs(t, err, ErrUnsupportedPlayerCount)
}

func TestCreateRoundBlockedByPendingMatches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, _ := env.setup(t, "alice", "bob", "carol", "dave")

	_, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeKnockout,
	})
	require.NoError(t, err)

	_, err = env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeKnockout,
	})
	assert.ErrorIs(t, err, ErrPendingMatchesExist,
		"a second round must wait for all results of the first")
}

func TestCreateRoundNoEligiblePlayers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tournament, err := env.tournaments.CreateTournament(ctx, "empty", "")
	require.NoError(t, err)

	_, err = env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tournament.ID, RoundType: models.RoundTypeRoundRobin,
	})
	assert.ErrorIs(t, err, ErrNoEligiblePlayers)
}

func TestCreateRoundOrdinalsIncrement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob")

	first, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeRoundRobin,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Round.Ordinal)
	require.Len(t, first.Matches, 1)

	_, err = env.rounds.RecordResult(ctx, first.Matches[0].ID, win(ids["alice"]), "")
	require.NoError(t, err)

	second, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeFreeForAll,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Round.Ordinal)
}

func TestRecordResultRejectsDoubleRecording(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeRoundRobin,
	})
	require.NoError(t, err)
	require.Len(t, view.Matches, 1)
	matchID := view.Matches[0].ID

	_, err = env.rounds.RecordResult(ctx, matchID, win(ids["alice"]), "")
	require.NoError(t, err)

	_, err = env.rounds.RecordResult(ctx, matchID, win(ids["bob"]), "")
	assert.ErrorIs(t, err, ErrMatchAlreadyResolved)

	// The first result stands.
	match, err := env.repos.Matches.GetByID(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, []string{ids["alice"]}, match.WinnerIDs)
}

func TestRecordResultValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, _ := env.setup(t, "alice", "bob")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeRoundRobin,
	})
	require.NoError(t, err)
	matchID := view.Matches[0].ID

	_, err = env.rounds.RecordResult(ctx, matchID, &models.MatchResult{}, "")
	assert.ErrorIs(t, err, ErrInvalidResult, "non-draw needs a winner")

	_, err = env.rounds.RecordResult(ctx, matchID, win("stranger"), "")
	assert.ErrorIs(t, err, ErrWinnerNotInMatch)

	_, err = env.rounds.RecordResult(ctx, matchID, nil, "")
	assert.ErrorIs(t, err, ErrInvalidResult)

	_, err = env.rounds.RecordResult(ctx, "missing", win("whoever"), "")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestRecordResultUnknownCalculatorOverride(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeRoundRobin,
	})
	require.NoError(t, err)

	_, err = env.rounds.RecordResult(ctx, view.Matches[0].ID, win(ids["alice"]), "nonsense")
	assert.ErrorIs(t, err, ErrUnknownCalculator)

	// The failed call must not have recorded anything.
	match, err := env.repos.Matches.GetByID(ctx, view.Matches[0].ID)
	require.NoError(t, err)
	assert.False(t, match.Resolved())
}

func TestStandingsRecomputedFromFullReplay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob", "carol")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeRoundRobin,
	})
	require.NoError(t, err)
	require.Len(t, view.Matches, 3)

	for _, m := range view.Matches {
		winner := m.PlayerIDs[0]
		if m.HasPlayer(ids["alice"]) {
			winner = ids["alice"]
		}
		_, err := env.rounds.RecordResult(ctx, m.ID, win(winner), "")
		require.NoError(t, err)
	}

	standings, err := env.tournaments.GetStandings(ctx, tid)
	require.NoError(t, err)
	require.Len(t, standings, 3)

	assert.Equal(t, ids["alice"], standings[0].PlayerID)
	assert.Equal(t, 2, standings[0].Wins)
	assert.Equal(t, 0, standings[0].Losses)
	assert.InDelta(t, 2.0, standings[0].Points, 1e-9)
	for _, s := range standings {
		assert.Equal(t, 2, s.MatchesPlayed)
	}
}

func TestDrawSplitsPoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, _ := env.setup(t, "alice", "bob")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeRoundRobin,
	})
	require.NoError(t, err)

	_, err = env.rounds.RecordResult(ctx, view.Matches[0].ID, &models.MatchResult{IsDraw: true}, "")
	require.NoError(t, err)

	standings, err := env.tournaments.GetStandings(ctx, tid)
	require.NoError(t, err)
	for _, s := range standings {
		assert.Equal(t, 1, s.Draws)
		assert.InDelta(t, 0.5, s.Points, 1e-9, "standard calculator splits a draw evenly")
	}
}

func TestKnockoutEliminationFlipsEligibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeKnockout,
	})
	require.NoError(t, err)
	require.Len(t, view.Matches, 1)

	_, err = env.rounds.RecordResult(ctx, view.Matches[0].ID, win(ids["alice"]), "")
	require.NoError(t, err)

	roster, err := env.repos.Roster.ListByTournament(ctx, tid)
	require.NoError(t, err)
	for _, entry := range roster {
		switch entry.PlayerID {
		case ids["alice"]:
			assert.True(t, entry.AbleToPlay)
		case ids["bob"]:
			assert.False(t, entry.AbleToPlay, "knockout loser is eliminated")
		}
	}
}

func TestKnockoutDrawEliminatesNobody(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, _ := env.setup(t, "alice", "bob")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeKnockout,
	})
	require.NoError(t, err)

	_, err = env.rounds.RecordResult(ctx, view.Matches[0].ID, &models.MatchResult{IsDraw: true}, "")
	require.NoError(t, err)

	eligible, err := env.repos.Roster.CountEligible(ctx, tid)
	require.NoError(t, err)
	assert.Equal(t, 2, eligible)
}

func TestWaitingListReconciliationAdvancesLonePlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob", "carol", "dave", "erin")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeKnockout,
	})
	require.NoError(t, err)
	require.Len(t, view.Matches, 2)
	assert.Equal(t, []string{ids["carol"]}, view.WaitingPlayers,
		"the odd player out goes to the waiting list")

	_, err = env.rounds.RecordResult(ctx, view.Matches[0].ID, win(ids["alice"]), "")
	require.NoError(t, err)

	// One match still pending: carol stays queued.
	queued, err := env.repos.WaitingList.ListPlayers(ctx, tid)
	require.NoError(t, err)
	assert.Equal(t, []string{ids["carol"]}, queued)

	_, err = env.rounds.RecordResult(ctx, view.Matches[1].ID, win(ids["bob"]), "")
	require.NoError(t, err)

	// Round drained, carol was alone: she advances with an auto-bye.
	queued, err = env.repos.WaitingList.ListPlayers(ctx, tid)
	require.NoError(t, err)
	assert.Empty(t, queued)

	matches, err := env.repos.Matches.ListByRound(ctx, view.Round.ID)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	bye := matches[2]
	assert.True(t, bye.AutoBye)
	assert.Equal(t, []string{ids["carol"]}, bye.PlayerIDs)
	assert.Equal(t, []string{ids["carol"]}, bye.WinnerIDs)

	// The auto-bye replays as a win in the standings.
	standings, err := env.tournaments.GetStandings(ctx, tid)
	require.NoError(t, err)
	byPlayer := make(map[string]*models.Standing)
	for _, s := range standings {
		byPlayer[s.PlayerID] = s
	}
	assert.Equal(t, 1, byPlayer[ids["carol"]].Wins)
	assert.InDelta(t, 1.0, byPlayer[ids["carol"]].Points, 1e-9)
}

func TestWaitingListReconciliationPairsQueuedPlayers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob", "carol", "dave", "erin", "frank", "grace")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeKnockout,
	})
	require.NoError(t, err)
	// 7 players: (alice,grace), (bob,frank), (carol,erin) and dave queued.
	require.Len(t, view.Matches, 3)
	require.Equal(t, []string{ids["dave"]}, view.WaitingPlayers)

	winners := []string{ids["alice"], ids["bob"], ids["carol"]}
	for i, m := range view.Matches[:2] {
		_, err := env.rounds.RecordResult(ctx, m.ID, win(winners[i]), "")
		require.NoError(t, err)
	}

	// Last pending match of the round resolves; dave is alone in the queue
	// but the tournament is fully drained, so he gets the auto-bye.
	_, err = env.rounds.RecordResult(ctx, view.Matches[2].ID, win(winners[2]), "")
	require.NoError(t, err)

	queued, err := env.repos.WaitingList.ListPlayers(ctx, tid)
	require.NoError(t, err)
	assert.Empty(t, queued)

	eligible, err := env.repos.Roster.CountEligible(ctx, tid)
	require.NoError(t, err)
	assert.Equal(t, 4, eligible, "three winners plus the advanced dave")
}

func TestKnockoutRoundClearsStaleWaitingEntries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob", "carol", "dave", "erin")

	swiss, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeSwiss,
	})
	require.NoError(t, err)
	require.Len(t, swiss.Matches, 2)
	require.Equal(t, []string{ids["erin"]}, swiss.WaitingPlayers)

	for _, m := range swiss.Matches {
		_, err := env.rounds.RecordResult(ctx, m.ID, win(m.PlayerIDs[0]), "")
		require.NoError(t, err)
	}

	knockout, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeKnockout,
	})
	require.NoError(t, err)
	// (alice,erin), (bob,dave); carol is the leftover.
	require.Len(t, knockout.Matches, 2)
	require.Equal(t, []string{ids["carol"]}, knockout.WaitingPlayers)

	// The queue holds this round's leftover only; erin's stale swiss entry
	// is gone.
	queued, err := env.repos.WaitingList.ListPlayers(ctx, tid)
	require.NoError(t, err)
	assert.Equal(t, []string{ids["carol"]}, queued)

	for _, m := range knockout.Matches {
		_, err := env.rounds.RecordResult(ctx, m.ID, win(m.PlayerIDs[0]), "")
		require.NoError(t, err)
	}

	// erin lost her knockout match; the reconciler must not schedule her
	// again. Carol, alone in the queue, advances with the auto-bye.
	roster, err := env.repos.Roster.ListByTournament(ctx, tid)
	require.NoError(t, err)
	for _, entry := range roster {
		if entry.PlayerID == ids["erin"] {
			assert.False(t, entry.AbleToPlay)
		}
	}

	matches, err := env.repos.Matches.ListByRound(ctx, knockout.Round.ID)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	bye := matches[2]
	assert.True(t, bye.AutoBye)
	assert.Equal(t, []string{ids["carol"]}, bye.PlayerIDs)
	assert.False(t, bye.HasPlayer(ids["erin"]))
}

func TestKnockoutRunsToSingleWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob", "carol", "dave")

	playUntilDecided := func() {
		for rounds := 0; rounds < 5; rounds++ {
			view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
				TournamentID: tid, RoundType: models.RoundTypeKnockout,
			})
			if err != nil {
				require.ErrorIs(t, err, ErrTournamentDecided)
				return
			}
			for _, m := range view.Matches {
				if m.Resolved() {
					continue
				}
				// Alice always wins; otherwise the first player does.
				winner := m.PlayerIDs[0]
				if m.HasPlayer(ids["alice"]) {
					winner = ids["alice"]
				}
				_, err := env.rounds.RecordResult(ctx, m.ID, win(winner), "")
				require.NoError(t, err)
			}
		}
		t.Fatal("tournament never reached a decided state")
	}
	playUntilDecided()

	eligible, err := env.repos.Roster.CountEligible(ctx, tid)
	require.NoError(t, err)
	assert.Equal(t, 1, eligible)

	winnerEvents := env.hub.eventsOfType(EventTournamentWinner)
	require.NotEmpty(t, winnerEvents)
	payload, ok := winnerEvents[len(winnerEvents)-1].Payload.(TournamentWinnerPayload)
	require.True(t, ok)
	assert.Equal(t, ids["alice"], payload.WinnerID)

	_, err = env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeKnockout,
	})
	assert.ErrorIs(t, err, ErrTournamentDecided)
}

func TestRoundCreatedBroadcast(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, _ := env.setup(t, "alice", "bob")

	_, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeRoundRobin,
	})
	require.NoError(t, err)

	events := env.hub.eventsOfType(EventRoundCreated)
	require.Len(t, events, 1)
	assert.Equal(t, tid, events[0].RoomID)
}

func TestRecordResultWithRankedCalculator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob", "carol")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeFreeForAll,
	})
	require.NoError(t, err)
	require.Len(t, view.Matches, 1)

	result := &models.MatchResult{
		WinnerIDs: []string{ids["bob"]},
		Rankings: map[string]int{
			ids["bob"]:   1,
			ids["alice"]: 2,
			ids["carol"]: 3,
		},
	}
	_, err = env.rounds.RecordResult(ctx, view.Matches[0].ID, result, "ranking")
	require.NoError(t, err)

	standings, err := env.tournaments.GetStandings(ctx, tid)
	require.NoError(t, err)
	byPlayer := make(map[string]float64)
	for _, s := range standings {
		byPlayer[s.PlayerID] = s.Points
	}
	assert.InDelta(t, 3.0, byPlayer[ids["bob"]], 1e-9)
	assert.InDelta(t, 2.0, byPlayer[ids["alice"]], 1e-9)
	assert.InDelta(t, 1.0, byPlayer[ids["carol"]], 1e-9)
}

func TestRecordResultRejectsWinnerRankMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob", "carol")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeFreeForAll,
	})
	require.NoError(t, err)
	require.Len(t, view.Matches, 1)

	// alice is declared the winner but bob holds rank 1.
	result := &models.MatchResult{
		WinnerIDs: []string{ids["alice"]},
		Rankings: map[string]int{
			ids["bob"]:   1,
			ids["alice"]: 2,
			ids["carol"]: 3,
		},
	}
	_, err = env.rounds.RecordResult(ctx, view.Matches[0].ID, result, "ranking")
	assert.ErrorIs(t, err, ErrInvalidResult)

	// A winner missing from a non-empty ranking is just as inconsistent.
	result = &models.MatchResult{
		WinnerIDs: []string{ids["alice"]},
		Rankings:  map[string]int{ids["bob"]: 2, ids["carol"]: 3},
	}
	_, err = env.rounds.RecordResult(ctx, view.Matches[0].ID, result, "ranking")
	assert.ErrorIs(t, err, ErrInvalidResult)

	match, err := env.repos.Matches.GetByID(ctx, view.Matches[0].ID)
	require.NoError(t, err)
	assert.False(t, match.Resolved(), "rejected results must not be recorded")
}

func TestStandingsIndependentOfResultOrder(t *testing.T) {
	play := func(t *testing.T, reversed bool) map[string]models.Standing {
		env := newTestEnv(t)
		ctx := context.Background()
		tid, ids := env.setup(t, "alice", "bob", "carol")

		view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
			TournamentID: tid, RoundType: models.RoundTypeRoundRobin,
		})
		require.NoError(t, err)
		require.Len(t, view.Matches, 3)

		matches := append([]*models.Match(nil), view.Matches...)
		if reversed {
			for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
				matches[i], matches[j] = matches[j], matches[i]
			}
		}

		// Fixed outcomes per pairing: alice beats bob, bob beats carol,
		// alice and carol draw.
		for _, m := range matches {
			var result *models.MatchResult
			switch {
			case m.HasPlayer(ids["alice"]) && m.HasPlayer(ids["bob"]):
				result = win(ids["alice"])
			case m.HasPlayer(ids["bob"]) && m.HasPlayer(ids["carol"]):
				result = win(ids["bob"])
			default:
				result = &models.MatchResult{IsDraw: true}
			}
			_, err := env.rounds.RecordResult(ctx, m.ID, result, "")
			require.NoError(t, err)
		}

		names := make(map[string]string, len(ids))
		for name, id := range ids {
			names[id] = name
		}
		standings, err := env.tournaments.GetStandings(ctx, tid)
		require.NoError(t, err)
		byName := make(map[string]models.Standing, len(standings))
		for _, s := range standings {
			byName[names[s.PlayerID]] = models.Standing{
				Wins:          s.Wins,
				Draws:         s.Draws,
				Losses:        s.Losses,
				MatchesPlayed: s.MatchesPlayed,
				Points:        s.Points,
			}
		}
		return byName
	}

	assert.Equal(t, play(t, false), play(t, true),
		"full replay makes standings independent of result arrival order")
}
