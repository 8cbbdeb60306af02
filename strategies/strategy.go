package strategies

import (
	"context"
	"sort"

	"github.com/Dosada05/matchplay/models"
)

// PairingHistory answers "have these players already met in this
// tournament". Strategies use it for rematch avoidance; the match repository
// satisfies it.
type PairingHistory interface {
	PairPlayed(ctx context.Context, tournamentID, playerA, playerB string) (bool, error)
	GroupPlayed(ctx context.Context, tournamentID string, playerIDs []string) (bool, error)
}

// StandingsSource exposes the current points per player, used by the swiss
// strategy to order its pool.
type StandingsSource interface {
	PointsByPlayer(ctx context.Context, tournamentID string) (map[string]float64, error)
}

// Result is what a strategy produces for one round. Matches are returned
// unpersisted; the orchestrator saves each exactly once.
type Result struct {
	Matches        []*models.Match
	WaitingPlayers []string
	Metadata       map[string]any
}

// MatchmakingStrategy turns a pool of eligible players into the matches of a
// round. Implementations must not mutate the playerIDs slice they are given.
type MatchmakingStrategy interface {
	Name() string

	// SupportsPlayersPerMatch is checked by the orchestrator before
	// CreateMatches is ever invoked with that configuration.
	SupportsPlayersPerMatch(n int) bool

	CreateMatches(ctx context.Context, tournamentID, roundID string, playerIDs []string, config models.RoundConfig) (*Result, error)
}

// Registry maps strategy names to implementations. Like the calculator
// registry it is populated once at startup.
type Registry struct {
	strategies map[string]MatchmakingStrategy
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]MatchmakingStrategy)}
}

func (r *Registry) Register(s MatchmakingStrategy) {
	r.strategies[s.Name()] = s
}

func (r *Registry) Get(name string) (MatchmakingStrategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}

// List returns the registered strategy names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForPlayerCount returns the names of strategies that support n-player
// matches, sorted.
func (r *Registry) ForPlayerCount(n int) []string {
	names := make([]string, 0, len(r.strategies))
	for name, s := range r.strategies {
		if s.SupportsPlayersPerMatch(n) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
