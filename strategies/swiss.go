package strategies

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/utils"
)

// SwissStrategy orders the pool by descending points and walks it with a
// greedy forward scan: each unpaired player takes the first unpaired
// candidate they have not met yet. The scan does not backtrack, so it can
// leave more players unpaired than a full matching would. That behaviour is
// deliberate and must stay reproducible; do not replace it with an optimal
// matcher.
type SwissStrategy struct {
	history   PairingHistory
	standings StandingsSource
}

func NewSwissStrategy(history PairingHistory, standings StandingsSource) *SwissStrategy {
	return &SwissStrategy{history: history, standings: standings}
}

func (s *SwissStrategy) Name() string {
	return models.RoundTypeSwiss
}

func (s *SwissStrategy) SupportsPlayersPerMatch(n int) bool {
	return n == 2
}

func (s *SwissStrategy) CreateMatches(ctx context.Context, tournamentID, roundID string, playerIDs []string, config models.RoundConfig) (*Result, error) {
	if len(playerIDs) < 2 {
		waiting := append([]string(nil), playerIDs...)
		return &Result{Matches: []*models.Match{}, WaitingPlayers: waiting, Metadata: map[string]any{}}, nil
	}

	points, err := s.standings.PointsByPlayer(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("swiss: loading standings failed: %w", err)
	}

	ordered := append([]string(nil), playerIDs...)
	// Stable sort keeps source order among equal scores, which makes the
	// pairing deterministic.
	sort.SliceStable(ordered, func(i, j int) bool {
		return points[ordered[i]] > points[ordered[j]]
	})

	matches := make([]*models.Match, 0, len(ordered)/2)
	paired := make(map[string]bool, len(ordered))
	waiting := []string{}

	for i, p1 := range ordered {
		if paired[p1] {
			continue
		}
		opponent := ""
		for _, candidate := range ordered[i+1:] {
			if paired[candidate] {
				continue
			}
			played, err := s.history.PairPlayed(ctx, tournamentID, p1, candidate)
			if err != nil {
				return nil, fmt.Errorf("swiss: pairing history check failed: %w", err)
			}
			if !played {
				opponent = candidate
				break
			}
		}
		if opponent == "" {
			waiting = append(waiting, p1)
			continue
		}
		matches = append(matches, &models.Match{
			ID:              utils.NewID(),
			RoundID:         roundID,
			TournamentID:    tournamentID,
			PlayerIDs:       []string{p1, opponent},
			ScheduledAt:     utils.Now(),
			PlayersPerMatch: 2,
		})
		paired[p1] = true
		paired[opponent] = true
	}

	return &Result{
		Matches:        matches,
		WaitingPlayers: waiting,
		Metadata:       map[string]any{"pairing_method": "swiss"},
	}, nil
}
