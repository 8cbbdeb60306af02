package services

import (
	"context"
	"testing"

	"github.com/Dosada05/matchplay/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlayerValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tournaments.CreatePlayer(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrPlayerNameRequired)

	player, err := env.tournaments.CreatePlayer(context.Background(), "  alice  ")
	require.NoError(t, err)
	assert.Equal(t, "alice", player.Name)
	assert.NotEmpty(t, player.ID)
}

func TestCreateTournamentDefaultsCalculator(t *testing.T) {
	env := newTestEnv(t)

	tournament, err := env.tournaments.CreateTournament(context.Background(), "spring cup", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultCalculatorName, tournament.DefaultCalculator)

	_, err = env.tournaments.CreateTournament(context.Background(), "broken", "nonsense")
	assert.ErrorIs(t, err, ErrUnknownCalculator)

	_, err = env.tournaments.CreateTournament(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrTournamentNameRequired)
}

func TestSetDefaultCalculator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tournament, err := env.tournaments.CreateTournament(ctx, "spring cup", "")
	require.NoError(t, err)

	require.NoError(t, env.tournaments.SetDefaultCalculator(ctx, tournament.ID, "three_point"))

	loaded, err := env.tournaments.GetTournament(ctx, tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, "three_point", loaded.DefaultCalculator)

	assert.ErrorIs(t, env.tournaments.SetDefaultCalculator(ctx, tournament.ID, "nonsense"), ErrUnknownCalculator)
	assert.ErrorIs(t, env.tournaments.SetDefaultCalculator(ctx, "missing", "standard"), ErrTournamentNotFound)
}

func TestAddPlayerChecksBothSides(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tournament, err := env.tournaments.CreateTournament(ctx, "spring cup", "")
	require.NoError(t, err)
	player, err := env.tournaments.CreatePlayer(ctx, "alice")
	require.NoError(t, err)

	assert.ErrorIs(t, env.tournaments.AddPlayer(ctx, "missing", player.ID), ErrTournamentNotFound)
	assert.ErrorIs(t, env.tournaments.AddPlayer(ctx, tournament.ID, "missing"), ErrPlayerNotFound)

	require.NoError(t, env.tournaments.AddPlayer(ctx, tournament.ID, player.ID))
	// Enrollment is idempotent.
	require.NoError(t, env.tournaments.AddPlayer(ctx, tournament.ID, player.ID))

	roster, err := env.repos.Roster.ListByTournament(ctx, tournament.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 1)
}

func TestGetTournamentAggregatesLinkedData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tid, ids := env.setup(t, "alice", "bob")

	view, err := env.rounds.CreateRound(ctx, models.RoundConfig{
		TournamentID: tid, RoundType: models.RoundTypeRoundRobin,
	})
	require.NoError(t, err)
	_, err = env.rounds.RecordResult(ctx, view.Matches[0].ID, win(ids["alice"]), "")
	require.NoError(t, err)

	tournament, err := env.tournaments.GetTournament(ctx, tid)
	require.NoError(t, err)
	assert.Len(t, tournament.Players, 2)
	assert.Len(t, tournament.Rounds, 1)
	require.Len(t, tournament.Standings, 2)
	assert.Equal(t, ids["alice"], tournament.Standings[0].PlayerID)
}

func TestIntrospectionLists(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, []string{"ranking", "standard", "three_point"}, env.tournaments.ListCalculators())

	infos := env.tournaments.ListStrategies()
	require.Len(t, infos, 4)
	byName := make(map[string]StrategyInfo)
	for _, info := range infos {
		byName[info.Name] = info
	}
	assert.True(t, byName[models.RoundTypeSwiss].SupportsHeadToHead)
	assert.False(t, byName[models.RoundTypeSwiss].SupportsLargerGroups)
	assert.True(t, byName[models.RoundTypeRoundRobin].SupportsLargerGroups)

	assert.NotContains(t, env.tournaments.StrategiesForPlayerCount(3), models.RoundTypeSwiss)
}

func TestUploadLogoWithoutStorage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tournament, err := env.tournaments.CreateTournament(ctx, "spring cup", "")
	require.NoError(t, err)

	_, err = env.tournaments.UploadLogo(ctx, tournament.ID, "image/png", nil)
	assert.ErrorIs(t, err, ErrLogoStorageNotConfigured)
}
