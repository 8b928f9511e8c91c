package services

import (
	"strings"
)

// Per-serving nutrition facts for a known food.
type NutritionInfo struct {
	Calories  float64            `json:"calories"`
	Nutrients map[string]float64 `json:"nutrients"` // carbohydrates, protein, fat (g)
}

// NutritionLookup resolves a recognized label to nutrition facts,
// reporting how closely the label matched a known food (0..1).
type NutritionLookup interface {
	Lookup(name string) (food string, info NutritionInfo, similarity float64, ok bool)
}

// Labels whose best match scores below this are dropped.
const MinMenuSimilarity = 0.6

// NutritionService matches free-form labels against a built-in food
// table using bigram similarity, so near-misses from the recognizer
// ("fried rice dish") still resolve.
type NutritionService struct {
	foods map[string]NutritionInfo
}

func NewNutritionService() *NutritionService {
	return &NutritionService{foods: defaultFoodTable}
}

func (s *NutritionService) Lookup(name string) (string, NutritionInfo, float64, bool) {
	query := normalizeFoodName(name)
	if query == "" {
		return "", NutritionInfo{}, 0, false
	}

	bestFood := ""
	bestScore := 0.0
	for food := range s.foods {
		score := bigramSimilarity(query, normalizeFoodName(food))
		if score > bestScore || (score == bestScore && food < bestFood) {
			bestFood, bestScore = food, score
		}
	}

	if bestScore < MinMenuSimilarity {
		return "", NutritionInfo{}, bestScore, false
	}
	return bestFood, s.foods[bestFood], bestScore, true
}

func normalizeFoodName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// bigramSimilarity is the Sørensen–Dice coefficient over character
// bigrams. Identical strings score 1; single-character queries fall
// back to an exact comparison.
func bigramSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	counts := make(map[string]int)
	for i := 0; i+2 <= len(a); i++ {
		counts[a[i:i+2]]++
	}
	overlap := 0
	for i := 0; i+2 <= len(b); i++ {
		bg := b[i : i+2]
		if counts[bg] > 0 {
			counts[bg]--
			overlap++
		}
	}
	return 2 * float64(overlap) / float64(len(a)-1+len(b)-1)
}

var defaultFoodTable = map[string]NutritionInfo{
	"rice": {
		Calories:  300,
		Nutrients: map[string]float64{"carbohydrates": 66, "protein": 5.5, "fat": 0.6},
	},
	"fried rice": {
		Calories:  520,
		Nutrients: map[string]float64{"carbohydrates": 72, "protein": 12, "fat": 18},
	},
	"kimchi stew": {
		Calories:  250,
		Nutrients: map[string]float64{"carbohydrates": 12, "protein": 18, "fat": 14},
	},
	"bibimbap": {
		Calories:  560,
		Nutrients: map[string]float64{"carbohydrates": 82, "protein": 20, "fat": 16},
	},
	"bulgogi": {
		Calories:  420,
		Nutrients: map[string]float64{"carbohydrates": 14, "protein": 32, "fat": 24},
	},
	"ramen": {
		Calories:  500,
		Nutrients: map[string]float64{"carbohydrates": 68, "protein": 10, "fat": 20},
	},
	"salad": {
		Calories:  150,
		Nutrients: map[string]float64{"carbohydrates": 10, "protein": 4, "fat": 10},
	},
	"chicken breast": {
		Calories:  165,
		Nutrients: map[string]float64{"carbohydrates": 0, "protein": 31, "fat": 3.6},
	},
	"pizza": {
		Calories:  285,
		Nutrients: map[string]float64{"carbohydrates": 36, "protein": 12, "fat": 10},
	},
	"hamburger": {
		Calories:  540,
		Nutrients: map[string]float64{"carbohydrates": 40, "protein": 25, "fat": 29},
	},
	"sandwich": {
		Calories:  320,
		Nutrients: map[string]float64{"carbohydrates": 38, "protein": 15, "fat": 11},
	},
	"pasta": {
		Calories:  380,
		Nutrients: map[string]float64{"carbohydrates": 58, "protein": 13, "fat": 9},
	},
	"sushi": {
		Calories:  350,
		Nutrients: map[string]float64{"carbohydrates": 65, "protein": 15, "fat": 3},
	},
	"apple": {
		Calories:  95,
		Nutrients: map[string]float64{"carbohydrates": 25, "protein": 0.5, "fat": 0.3},
	},
	"banana": {
		Calories:  105,
		Nutrients: map[string]float64{"carbohydrates": 27, "protein": 1.3, "fat": 0.4},
	},
	"yogurt": {
		Calories:  110,
		Nutrients: map[string]float64{"carbohydrates": 16, "protein": 6, "fat": 2.5},
	},
	"soup": {
		Calories:  120,
		Nutrients: map[string]float64{"carbohydrates": 14, "protein": 6, "fat": 4},
	},
	"steak": {
		Calories:  450,
		Nutrients: map[string]float64{"carbohydrates": 0, "protein": 40, "fat": 30},
	},
	"bread": {
		Calories:  180,
		Nutrients: map[string]float64{"carbohydrates": 34, "protein": 6, "fat": 2},
	},
	"egg": {
		Calories:  78,
		Nutrients: map[string]float64{"carbohydrates": 0.6, "protein": 6.3, "fat": 5.3},
	},
}
