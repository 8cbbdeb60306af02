package calculators

import "github.com/Dosada05/matchplay/models"

// StandardCalculator awards 1.0 for a win, an equal split of 1.0 across all
// participants for a draw, and 0.0 for a loss.
type StandardCalculator struct{}

func NewStandardCalculator() *StandardCalculator {
	return &StandardCalculator{}
}

func (c *StandardCalculator) Name() string {
	return "standard"
}

func (c *StandardCalculator) CalculatePoints(playerID string, match *models.Match, result *models.MatchResult) float64 {
	if result.IsDraw {
		return 1.0 / float64(len(match.PlayerIDs))
	}
	for _, id := range result.WinnerIDs {
		if id == playerID {
			return 1.0
		}
	}
	return 0.0
}

// ThreePointCalculator uses football-style scoring: win 3, draw 1, loss 0.
type ThreePointCalculator struct{}

func NewThreePointCalculator() *ThreePointCalculator {
	return &ThreePointCalculator{}
}

func (c *ThreePointCalculator) Name() string {
	return "three_point"
}

func (c *ThreePointCalculator) CalculatePoints(playerID string, match *models.Match, result *models.MatchResult) float64 {
	if result.IsDraw {
		return 1.0
	}
	for _, id := range result.WinnerIDs {
		if id == playerID {
			return 3.0
		}
	}
	return 0.0
}

// EloCalculator produces a rating delta of K * (actual - 0.5) with actual
// being 1, 0.5 or 0 for win, draw or loss. It does not model opponent
// strength; that is a documented simplification, not a bug.
type EloCalculator struct {
	kFactor float64
}

func NewEloCalculator(kFactor float64) *EloCalculator {
	if kFactor <= 0 {
		kFactor = 32
	}
	return &EloCalculator{kFactor: kFactor}
}

func (c *EloCalculator) Name() string {
	return "elo"
}

func (c *EloCalculator) CalculatePoints(playerID string, match *models.Match, result *models.MatchResult) float64 {
	actual := 0.0
	if result.IsDraw {
		actual = 0.5
	} else {
		for _, id := range result.WinnerIDs {
			if id == playerID {
				actual = 1.0
				break
			}
		}
	}
	const expected = 0.5
	return c.kFactor * (actual - expected)
}
