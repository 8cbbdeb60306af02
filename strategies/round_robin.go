package strategies

import (
	"context"
	"fmt"

	"github.com/Dosada05/matchplay/models"
	"github.com/Dosada05/matchplay/utils"
)

// byeSentinel pads an odd pool so the circle method always works on an even
// count. It never reaches a persisted match.
const byeSentinel = "BYE"

// RoundRobinStrategy generates the full everyone-plays-everyone schedule in
// one round using the circle method. Pairs that already met in the
// tournament are skipped, which makes re-entry idempotent.
type RoundRobinStrategy struct {
	history PairingHistory
}

func NewRoundRobinStrategy(history PairingHistory) *RoundRobinStrategy {
	return &RoundRobinStrategy{history: history}
}

func (s *RoundRobinStrategy) Name() string {
	return models.RoundTypeRoundRobin
}

func (s *RoundRobinStrategy) SupportsPlayersPerMatch(n int) bool {
	return n >= 2
}

func (s *RoundRobinStrategy) CreateMatches(ctx context.Context, tournamentID, roundID string, playerIDs []string, config models.RoundConfig) (*Result, error) {
	if len(playerIDs) == 0 {
		return &Result{Matches: []*models.Match{}, WaitingPlayers: []string{}, Metadata: map[string]any{}}, nil
	}

	if config.PlayersPerMatch != 2 {
		return s.createGroupMatches(ctx, tournamentID, roundID, playerIDs, config.PlayersPerMatch)
	}

	players := append([]string(nil), playerIDs...)
	byeAdded := false
	if len(players)%2 == 1 {
		players = append(players, byeSentinel)
		byeAdded = true
	}

	n := len(players)
	passes := n - 1
	matches := make([]*models.Match, 0, n*passes/2)

	for pass := 0; pass < passes; pass++ {
		for i := 0; i < n/2; i++ {
			p1 := players[i]
			p2 := players[n-1-i]
			if p1 == byeSentinel || p2 == byeSentinel {
				continue
			}
			played, err := s.history.PairPlayed(ctx, tournamentID, p1, p2)
			if err != nil {
				return nil, fmt.Errorf("round robin: pairing history check failed: %w", err)
			}
			if played {
				continue
			}
			matches = append(matches, &models.Match{
				ID:              utils.NewID(),
				RoundID:         roundID,
				TournamentID:    tournamentID,
				PlayerIDs:       []string{p1, p2},
				ScheduledAt:     utils.Now(),
				PlayersPerMatch: 2,
			})
		}
		// Rotate: keep the first position fixed, move the last element to
		// position 1.
		last := players[n-1]
		copy(players[2:], players[1:n-1])
		players[1] = last
	}

	waiting := []string{}
	if byeAdded {
		scheduled := make(map[string]struct{})
		for _, m := range matches {
			for _, id := range m.PlayerIDs {
				scheduled[id] = struct{}{}
			}
		}
		for _, id := range playerIDs {
			if _, ok := scheduled[id]; !ok {
				waiting = append(waiting, id)
			}
		}
	}

	return &Result{
		Matches:        matches,
		WaitingPlayers: waiting,
		Metadata:       map[string]any{"passes_generated": passes},
	}, nil
}

// createGroupMatches handles n-player round robin by generating every
// combination of size n from the pool, skipping groups that already played
// together.
func (s *RoundRobinStrategy) createGroupMatches(ctx context.Context, tournamentID, roundID string, playerIDs []string, size int) (*Result, error) {
	if size < 2 || size > len(playerIDs) {
		return &Result{Matches: []*models.Match{}, WaitingPlayers: []string{}, Metadata: map[string]any{}}, nil
	}

	matches := make([]*models.Match, 0)
	total := 0
	var walkErr error

	combinations(playerIDs, size, func(combo []string) bool {
		total++
		played, err := s.history.GroupPlayed(ctx, tournamentID, combo)
		if err != nil {
			walkErr = fmt.Errorf("round robin: group history check failed: %w", err)
			return false
		}
		if played {
			return true
		}
		matches = append(matches, &models.Match{
			ID:              utils.NewID(),
			RoundID:         roundID,
			TournamentID:    tournamentID,
			PlayerIDs:       append([]string(nil), combo...),
			ScheduledAt:     utils.Now(),
			PlayersPerMatch: size,
		})
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return &Result{
		Matches:        matches,
		WaitingPlayers: []string{},
		Metadata:       map[string]any{"total_combinations": total},
	}, nil
}

// combinations visits every k-sized combination of pool in lexicographic
// index order. The visited slice is reused between calls; the callback
// returns false to stop early.
func combinations(pool []string, k int, visit func([]string) bool) {
	combo := make([]string, k)
	var walk func(start, depth int) bool
	walk = func(start, depth int) bool {
		if depth == k {
			return visit(combo)
		}
		for i := start; i <= len(pool)-(k-depth); i++ {
			combo[depth] = pool[i]
			if !walk(i+1, depth+1) {
				return false
			}
		}
		return true
	}
	walk(0, 0)
}
