package strategies

import (
	"context"

	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/utils"
)

// KnockoutStrategy pairs the strongest remaining player against the weakest
// (first against last of the already-ordered pool) until fewer than
// players-per-match remain. A lone leftover with no match in the round is
// advanced immediately with a synthetic auto-bye; any larger remainder goes
// to the tournament waiting list.
type KnockoutStrategy struct{}

func NewKnockoutStrategy() *KnockoutStrategy {
	return &KnockoutStrategy{}
}

func (s *KnockoutStrategy) Name() string {
	return models.RoundTypeKnockout
}

func (s *KnockoutStrategy) SupportsPlayersPerMatch(n int) bool {
	return n >= 2
}

func (s *KnockoutStrategy) CreateMatches(ctx context.Context, tournamentID, roundID string, playerIDs []string, config models.RoundConfig) (*Result, error) {
	if len(playerIDs) == 0 {
		return &Result{Matches: []*models.Match{}, WaitingPlayers: []string{}, Metadata: map[string]any{}}, nil
	}

	pool := append([]string(nil), playerIDs...)
	perMatch := config.PlayersPerMatch
	matches := make([]*models.Match, 0, len(pool)/perMatch)

	for len(pool) >= perMatch {
		var group []string
		if perMatch == 2 {
			// Seed by position: top of the pool meets the bottom.
			group = []string{pool[0], pool[len(pool)-1]}
			pool = pool[1 : len(pool)-1]
		} else {
			group = append([]string(nil), pool[:perMatch]...)
			pool = pool[perMatch:]
		}
		matches = append(matches, &models.Match{
			ID:              utils.NewID(),
			RoundID:         roundID,
			TournamentID:    tournamentID,
			PlayerIDs:       group,
			ScheduledAt:     utils.Now(),
			PlayersPerMatch: perMatch,
		})
	}

	waiting := pool
	if len(waiting) == 1 && len(matches) == 0 {
		matches = append(matches, AutoByeMatch(tournamentID, roundID, waiting[0]))
		waiting = nil
	}
	if waiting == nil {
		waiting = []string{}
	}

	return &Result{
		Matches:        matches,
		WaitingPlayers: waiting,
		Metadata: map[string]any{
			"players_per_match": perMatch,
			"matches_created":   len(matches),
		},
	}, nil
}

// AutoByeMatch synthesizes a pre-resolved single-participant match that
// advances a player with no available opponent. The reconciler uses the same
// construction when a lone waiting player remains.
func AutoByeMatch(tournamentID, roundID, playerID string) *models.Match {
	outcome := models.OutcomeAuto
	return &models.Match{
		ID:              utils.NewID(),
		RoundID:         roundID,
		TournamentID:    tournamentID,
		PlayerIDs:       []string{playerID},
		ScheduledAt:     utils.Now(),
		Result:          &outcome,
		WinnerIDs:       []string{playerID},
		AutoBye:         true,
		PlayersPerMatch: 1,
	}
}
