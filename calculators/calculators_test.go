package calculators

import (
	"testing"

	"github.com/Dosada05/matchplay/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPlayerMatch() *models.Match {
	return &models.Match{ID: "m1", PlayerIDs: []string{"a", "b"}, PlayersPerMatch: 2}
}

func TestStandardCalculator(t *testing.T) {
	c := NewStandardCalculator()
	m := twoPlayerMatch()

	win := &models.MatchResult{MatchID: "m1", WinnerIDs: []string{"a"}}
	assert.Equal(t, 1.0, c.CalculatePoints("a", m, win))
	assert.Equal(t, 0.0, c.CalculatePoints("b", m, win))

	draw := &models.MatchResult{MatchID: "m1", IsDraw: true}
	assert.Equal(t, 0.5, c.CalculatePoints("a", m, draw))
	assert.Equal(t, 0.5, c.CalculatePoints("b", m, draw))

	four := &models.Match{ID: "m2", PlayerIDs: []string{"a", "b", "c", "d"}, PlayersPerMatch: 4}
	assert.Equal(t, 0.25, c.CalculatePoints("c", four, draw))
}

func TestThreePointCalculator(t *testing.T) {
	c := NewThreePointCalculator()
	m := twoPlayerMatch()

	win := &models.MatchResult{MatchID: "m1", WinnerIDs: []string{"b"}}
	assert.Equal(t, 3.0, c.CalculatePoints("b", m, win))
	assert.Equal(t, 0.0, c.CalculatePoints("a", m, win))

	draw := &models.MatchResult{MatchID: "m1", IsDraw: true}
	assert.Equal(t, 1.0, c.CalculatePoints("a", m, draw))
}

func TestEloCalculator(t *testing.T) {
	c := NewEloCalculator(32)
	m := twoPlayerMatch()

	win := &models.MatchResult{MatchID: "m1", WinnerIDs: []string{"a"}}
	assert.Equal(t, 16.0, c.CalculatePoints("a", m, win))
	assert.Equal(t, -16.0, c.CalculatePoints("b", m, win))

	draw := &models.MatchResult{MatchID: "m1", IsDraw: true}
	assert.Equal(t, 0.0, c.CalculatePoints("a", m, draw))
}

func TestEloCalculatorDefaultsKFactor(t *testing.T) {
	c := NewEloCalculator(0)
	m := twoPlayerMatch()
	win := &models.MatchResult{MatchID: "m1", WinnerIDs: []string{"a"}}
	assert.Equal(t, 16.0, c.CalculatePoints("a", m, win))
}

func TestRankingCalculator(t *testing.T) {
	c := NewRankingCalculator()
	m := &models.Match{ID: "m1", PlayerIDs: []string{"a", "b", "c"}, PlayersPerMatch: 3}
	res := &models.MatchResult{
		MatchID:   "m1",
		WinnerIDs: []string{"a"},
		Rankings:  map[string]int{"a": 1, "b": 2, "c": 3},
	}

	assert.Equal(t, 3.0, c.CalculatePoints("a", m, res))
	assert.Equal(t, 2.0, c.CalculatePoints("b", m, res))
	assert.Equal(t, 1.0, c.CalculatePoints("c", m, res))
	assert.Equal(t, 0.0, c.CalculatePoints("unranked", m, res))
}

func TestPercentageCalculator(t *testing.T) {
	c := NewPercentageCalculator()
	m := &models.Match{ID: "m1", PlayerIDs: []string{"a", "b", "c"}, PlayersPerMatch: 3}
	res := &models.MatchResult{
		MatchID:   "m1",
		WinnerIDs: []string{"a"},
		Rankings:  map[string]int{"a": 1, "b": 2, "c": 3},
	}

	assert.Equal(t, 100.0, c.CalculatePoints("a", m, res))
	assert.Equal(t, 50.0, c.CalculatePoints("b", m, res))
	assert.Equal(t, 0.0, c.CalculatePoints("c", m, res))
	assert.Equal(t, 0.0, c.CalculatePoints("missing", m, res))
}

func TestPercentageCalculatorSingleParticipant(t *testing.T) {
	c := NewPercentageCalculator()
	m := &models.Match{ID: "m1", PlayerIDs: []string{"a"}, PlayersPerMatch: 1}
	res := &models.MatchResult{MatchID: "m1", WinnerIDs: []string{"a"}, Rankings: map[string]int{"a": 1}}
	assert.Equal(t, 0.0, c.CalculatePoints("a", m, res))
}

func TestCustomWeightedCalculator(t *testing.T) {
	c := NewCustomWeightedCalculator(map[int]float64{1: 10, 2: 5, 3: 2})
	m := &models.Match{ID: "m1", PlayerIDs: []string{"a", "b", "c"}, PlayersPerMatch: 3}

	res := &models.MatchResult{
		MatchID:   "m1",
		WinnerIDs: []string{"a"},
		Rankings:  map[string]int{"a": 1, "b": 2, "c": 3},
	}
	assert.Equal(t, 10.0, c.CalculatePoints("a", m, res))
	assert.Equal(t, 5.0, c.CalculatePoints("b", m, res))
	assert.Equal(t, 2.0, c.CalculatePoints("c", m, res))

	draw := &models.MatchResult{MatchID: "m1", IsDraw: true}
	assert.InDelta(t, 17.0/3.0, c.CalculatePoints("a", m, draw), 1e-9)
	assert.InDelta(t, 17.0/3.0, c.CalculatePoints("b", m, draw), 1e-9)

	assert.Equal(t, 0.0, c.CalculatePoints("a", m, &models.MatchResult{MatchID: "m1", WinnerIDs: []string{"b"}}))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(NewStandardCalculator())
	r.Register(NewThreePointCalculator())
	r.Register(NewEloCalculator(32))

	c, ok := r.Get("standard")
	require.True(t, ok)
	assert.Equal(t, "standard", c.Name())

	_, ok = r.Get("nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"elo", "standard", "three_point"}, r.List())
}
