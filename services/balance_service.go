package services

import (
	"math"
)

// Recommended share of daily intake per macronutrient. Score and
// highlight/needs-improvement picks are both driven by how far the
// actual ratios drift outside these ranges.
var nutrientRanges = map[string][2]float64{
	"carbohydrates": {0.45, 0.65},
	"protein":       {0.10, 0.35},
	"fat":           {0.20, 0.35},
}

type BalanceService struct{}

func NewBalanceService() *BalanceService { return &BalanceService{} }

// BalanceScore rates a day's macro split on a 0-100 scale. Starting
// from 100, each nutrient loses points proportional to how far its
// actual share falls outside the recommended range.
func (s *BalanceService) BalanceScore(nutrients map[string]float64) int {
	total := 0.0
	for _, v := range nutrients {
		total += v
	}
	if total == 0 {
		return 0
	}

	score := 100.0
	for nutrient, r := range nutrientRanges {
		actual := nutrients[nutrient] / total
		if actual < r[0] {
			score -= (r[0] - actual) * 100
		} else if actual > r[1] {
			score -= (actual - r[1]) * 100
		}
	}

	score = math.Round(score)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}

// AnalyzeNutrients picks the nutrient that best fits its recommended
// range (highlight) and the one that deviates most (needs improvement).
func (s *BalanceService) AnalyzeNutrients(nutrients map[string]float64) (highlight, needsImprovement string) {
	total := 0.0
	for _, v := range nutrients {
		total += v
	}
	if total == 0 {
		return "carbohydrates", "protein"
	}

	best, worst := "", ""
	bestDev, worstDev := math.MaxFloat64, -1.0
	for nutrient, r := range nutrientRanges {
		actual := nutrients[nutrient] / total
		dev := 0.0
		if actual < r[0] {
			dev = r[0] - actual
		} else if actual > r[1] {
			dev = actual - r[1]
		}
		if dev < bestDev || (dev == bestDev && nutrient < best) {
			best, bestDev = nutrient, dev
		}
		if dev > worstDev || (dev == worstDev && nutrient < worst) {
			worst, worstDev = nutrient, dev
		}
	}
	return best, worst
}
