package services

import (
	"sort"
	"time"

	"balance/config"
	"balance/models"
)

type StreakService struct{}

func NewStreakService() *StreakService { return &StreakService{} }

type StreakStats struct {
	CurrentStreak    int `json:"currentStreak"`
	LongestStreak    int `json:"longestStreak"`
	TotalPerfectDays int `json:"totalPerfectDays"`
}

type DaySummary struct {
	TotalCalories float64 `json:"totalCalories"`
	MealCount     int     `json:"mealCount"`
	GoalMet       bool    `json:"goalMet"`
}

// MonthlySummary aggregates one calendar month into a per-day map
// keyed by YYYY-MM-DD, the shape the calendar view renders from.
func (s *StreakService) MonthlySummary(userID uint, year, month int, goal int) (map[string]DaySummary, error) {
	loc := time.Local
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0)

	var meals []models.Meal
	err := config.DB.
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, from, to).
		Order("timestamp ASC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}

	return SummarizeByDay(meals, goal), nil
}

// Streak computes logging-streak stats over the user's full history.
func (s *StreakService) Streak(userID uint, goal int) (*StreakStats, error) {
	var meals []models.Meal
	err := config.DB.
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}

	stats := ComputeStreak(SummarizeByDay(meals, goal), time.Now())
	return &stats, nil
}

// ---------- pure helpers ----------

func SummarizeByDay(meals []models.Meal, goal int) map[string]DaySummary {
	days := make(map[string]DaySummary)
	for _, m := range meals {
		key := m.Timestamp.Format("2006-01-02")
		d := days[key]
		d.TotalCalories += m.Calories
		d.MealCount++
		days[key] = d
	}
	for key, d := range days {
		d.GoalMet = d.TotalCalories > 0 && d.TotalCalories <= float64(goal)
		days[key] = d
	}
	return days
}

// ComputeStreak derives streak stats from per-day summaries. The
// current streak counts consecutive logged days ending today, or
// yesterday when today has no entries yet; a perfect day is one whose
// intake met the calorie goal.
func ComputeStreak(days map[string]DaySummary, now time.Time) StreakStats {
	var stats StreakStats

	for _, d := range days {
		if d.GoalMet {
			stats.TotalPerfectDays++
		}
	}

	// current streak: walk backwards from today (or yesterday)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if _, ok := days[day.Format("2006-01-02")]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	for {
		if _, ok := days[day.Format("2006-01-02")]; !ok {
			break
		}
		stats.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}

	// longest streak over the whole history
	run := 0
	prev := time.Time{}
	for _, key := range sortedDayKeys(days) {
		d, _ := time.ParseInLocation("2006-01-02", key, now.Location())
		if !prev.IsZero() && prev.AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > stats.LongestStreak {
			stats.LongestStreak = run
		}
		prev = d
	}

	return stats
}

// YYYY-MM-DD keys sort lexicographically
func sortedDayKeys(days map[string]DaySummary) []string {
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
