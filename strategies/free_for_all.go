package strategies

import (
	"context"

	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/utils"
)

// FreeForAllStrategy puts every eligible player into a single match. The
// configured players-per-match is ignored; the pool size decides it.
type FreeForAllStrategy struct{}

func NewFreeForAllStrategy() *FreeForAllStrategy {
	return &FreeForAllStrategy{}
}

func (s *FreeForAllStrategy) Name() string {
	return models.RoundTypeFreeForAll
}

func (s *FreeForAllStrategy) SupportsPlayersPerMatch(n int) bool {
	return true
}

func (s *FreeForAllStrategy) CreateMatches(ctx context.Context, tournamentID, roundID string, playerIDs []string, config models.RoundConfig) (*Result, error) {
	if len(playerIDs) == 0 {
		return &Result{Matches: []*models.Match{}, WaitingPlayers: []string{}, Metadata: map[string]any{}}, nil
	}

	match := &models.Match{
		ID:              utils.NewID(),
		RoundID:         roundID,
		TournamentID:    tournamentID,
		PlayerIDs:       append([]string(nil), playerIDs...),
		ScheduledAt:     utils.Now(),
		PlayersPerMatch: len(playerIDs),
	}

	return &Result{
		Matches:        []*models.Match{match},
		WaitingPlayers: []string{},
		Metadata:       map[string]any{"total_players": len(playerIDs)},
	}, nil
}
