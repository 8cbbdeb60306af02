package calculators

import (
	"sort"

	"github.com/Dosada05/matchplay/models"
)

// PointsCalculator turns a recorded result into a per-player point delta.
// Implementations must be pure: deterministic, no side effects, no state
// mutated by CalculatePoints.
type PointsCalculator interface {
	Name() string
	CalculatePoints(playerID string, match *models.Match, result *models.MatchResult) float64
}

// Registry maps calculator names to implementations. Registration happens at
// startup; lookups afterwards are read-only, so no locking is needed.
type Registry struct {
	calculators map[string]PointsCalculator
}

func NewRegistry() *Registry {
	return &Registry{calculators: make(map[string]PointsCalculator)}
}

func (r *Registry) Register(c PointsCalculator) {
	r.calculators[c.Name()] = c
}

func (r *Registry) Get(name string) (PointsCalculator, bool) {
	c, ok := r.calculators[name]
	return c, ok
}

// List returns the registered calculator names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.calculators))
	for name := range r.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
