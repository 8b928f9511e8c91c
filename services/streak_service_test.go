package services_test

import (
	"testing"
	"time"

	"balance/models"
	"balance/services"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("bad day %q: %v", s, err)
	}
	return d
}

func TestSummarizeByDay(t *testing.T) {
	meals := []models.Meal{
		{Timestamp: day(t, "2026-03-01").Add(8 * time.Hour), Calories: 400},
		{Timestamp: day(t, "2026-03-01").Add(19 * time.Hour), Calories: 900},
		{Timestamp: day(t, "2026-03-02").Add(12 * time.Hour), Calories: 2500},
	}

	days := services.SummarizeByDay(meals, 2000)

	d1 := days["2026-03-01"]
	if d1.TotalCalories != 1300 || d1.MealCount != 2 || !d1.GoalMet {
		t.Fatalf("day 1 = %+v", d1)
	}
	d2 := days["2026-03-02"]
	if d2.TotalCalories != 2500 || d2.GoalMet {
		t.Fatalf("day 2 = %+v", d2)
	}
}

func TestComputeStreak(t *testing.T) {
	now := day(t, "2026-03-10").Add(10 * time.Hour)

	days := map[string]services.DaySummary{
		// current run: 8th-10th
		"2026-03-10": {TotalCalories: 1500, MealCount: 2, GoalMet: true},
		"2026-03-09": {TotalCalories: 1800, MealCount: 3, GoalMet: true},
		"2026-03-08": {TotalCalories: 2600, MealCount: 3},
		// earlier, longer run: 1st-4th
		"2026-03-04": {TotalCalories: 1200, MealCount: 1, GoalMet: true},
		"2026-03-03": {TotalCalories: 1900, MealCount: 2, GoalMet: true},
		"2026-03-02": {TotalCalories: 1500, MealCount: 2, GoalMet: true},
		"2026-03-01": {TotalCalories: 1400, MealCount: 2, GoalMet: true},
	}

	stats := services.ComputeStreak(days, now)

	if stats.CurrentStreak != 3 {
		t.Fatalf("current = %d, want 3", stats.CurrentStreak)
	}
	if stats.LongestStreak != 4 {
		t.Fatalf("longest = %d, want 4", stats.LongestStreak)
	}
	if stats.TotalPerfectDays != 6 {
		t.Fatalf("perfect days = %d, want 6", stats.TotalPerfectDays)
	}
}

func TestComputeStreakTodayNotLoggedYet(t *testing.T) {
	// nothing logged today: the run ending yesterday still counts
	now := day(t, "2026-03-11").Add(9 * time.Hour)
	days := map[string]services.DaySummary{
		"2026-03-10": {TotalCalories: 1500, MealCount: 2, GoalMet: true},
		"2026-03-09": {TotalCalories: 1600, MealCount: 2, GoalMet: true},
	}

	stats := services.ComputeStreak(days, now)
	if stats.CurrentStreak != 2 {
		t.Fatalf("current = %d, want 2", stats.CurrentStreak)
	}
}

func TestComputeStreakEmpty(t *testing.T) {
	stats := services.ComputeStreak(map[string]services.DaySummary{}, time.Now())
	if stats.CurrentStreak != 0 || stats.LongestStreak != 0 || stats.TotalPerfectDays != 0 {
		t.Fatalf("stats = %+v, want zeros", stats)
	}
}
