package calculators

import "github.com/Dosada05/matchplay/models"

// RankingCalculator awards points by finishing position in n-player games:
// 1st place gets n points, 2nd gets n-1, and so on. Players without a rank
// entry get nothing.
type RankingCalculator struct{}

func NewRankingCalculator() *RankingCalculator {
	return &RankingCalculator{}
}

func (c *RankingCalculator) Name() string {
	return "ranking"
}

func (c *RankingCalculator) CalculatePoints(playerID string, match *models.Match, result *models.MatchResult) float64 {
	rank, ok := result.Rankings[playerID]
	if !ok {
		return 0.0
	}
	points := len(match.PlayerIDs) - rank + 1
	if points < 0 {
		points = 0
	}
	return float64(points)
}

// PercentageCalculator scores the share of opponents a player finished ahead
// of, scaled to 0-100. A single-participant match scores 0 to avoid dividing
// by zero.
type PercentageCalculator struct{}

func NewPercentageCalculator() *PercentageCalculator {
	return &PercentageCalculator{}
}

func (c *PercentageCalculator) Name() string {
	return "percentage"
}

func (c *PercentageCalculator) CalculatePoints(playerID string, match *models.Match, result *models.MatchResult) float64 {
	rank, ok := result.Rankings[playerID]
	if !ok {
		return 0.0
	}
	total := len(match.PlayerIDs)
	if total <= 1 {
		return 0.0
	}
	beaten := total - rank
	return float64(beaten) / float64(total-1) * 100
}

// CustomWeightedCalculator maps finishing ranks to configured point values,
// e.g. {1: 10, 2: 5, 3: 2}. A draw distributes the total of all weights
// evenly across the participants; unranked players get nothing.
type CustomWeightedCalculator struct {
	weights map[int]float64
}

func NewCustomWeightedCalculator(weights map[int]float64) *CustomWeightedCalculator {
	return &CustomWeightedCalculator{weights: weights}
}

func (c *CustomWeightedCalculator) Name() string {
	return "custom_weighted"
}

func (c *CustomWeightedCalculator) CalculatePoints(playerID string, match *models.Match, result *models.MatchResult) float64 {
	if result.IsDraw {
		var total float64
		for _, w := range c.weights {
			total += w
		}
		return total / float64(len(match.PlayerIDs))
	}
	rank, ok := result.Rankings[playerID]
	if !ok {
		return 0.0
	}
	return c.weights[rank]
}
