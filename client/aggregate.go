package client

import (
	"math"
)

// Health messages for the goal ladder.
const (
	MsgFirstMeal = "Log your first meal of the day"
	MsgRoomLeft  = "You still have room to spare today"
	MsgNearGoal  = "You're closing in on your daily goal"
	MsgGoalMet   = "You hit your calorie goal exactly"
	MsgCutBack   = "You're over your goal, consider cutting back"
)

// Totals folds a set of entries into calorie and nutrient sums.
// Absent fields already decoded to zero, so plain addition with a zero
// identity is the whole computation.
func Totals(entries []MealEntry) (calories float64, nutrients Nutrients) {
	for _, e := range entries {
		calories += e.Calories
		nutrients.Carbohydrates += e.Nutrients.Carbohydrates
		nutrients.Protein += e.Nutrients.Protein
		nutrients.Fat += e.Nutrients.Fat
	}
	return calories, nutrients
}

// DayTotals folds a grouped day into overall sums.
func DayTotals(day DayMeals) (calories float64, nutrients Nutrients) {
	for _, entries := range day {
		c, n := Totals(entries)
		calories += c
		nutrients.Carbohydrates += n.Carbohydrates
		nutrients.Protein += n.Protein
		nutrients.Fat += n.Fat
	}
	return calories, nutrients
}

// PerMealTypeCalories returns the calorie subtotal per meal type.
func PerMealTypeCalories(day DayMeals) map[string]float64 {
	subtotals := make(map[string]float64, len(day))
	for mealType, entries := range day {
		c, _ := Totals(entries)
		subtotals[mealType] = c
	}
	return subtotals
}

// PercentOfGoal is the stored (unclamped) percentage: 2x the goal
// yields 200. A non-positive goal yields 0.
func PercentOfGoal(total float64, goal int) int {
	if goal <= 0 {
		return 0
	}
	return int(math.Round(total / float64(goal) * 100))
}

// DisplayPercent clamps for rendering as a progress indicator.
func DisplayPercent(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// HealthMessage maps the goal percentage to its canned message.
func HealthMessage(percent int) string {
	switch {
	case percent <= 0:
		return MsgFirstMeal
	case percent < 70:
		return MsgRoomLeft
	case percent < 100:
		return MsgNearGoal
	case percent == 100:
		return MsgGoalMet
	default:
		return MsgCutBack
	}
}
