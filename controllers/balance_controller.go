package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"balance/config"
	"balance/models"
	"balance/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BalanceController struct {
	Meals   *services.MealService
	Balance *services.BalanceService
	Streaks *services.StreakService
}

func NewBalanceController(meals *services.MealService, bal *services.BalanceService, streaks *services.StreakService) *BalanceController {
	return &BalanceController{Meals: meals, Balance: bal, Streaks: streaks}
}

// mealEntry is the wire shape of one logged food.
type mealEntry struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	Calories  float64            `json:"calories"`
	Nutrients map[string]float64 `json:"nutrients"`
	Timestamp time.Time          `json:"timestamp"`
}

func toMealEntry(m models.Meal) mealEntry {
	return mealEntry{
		ID:       m.ID,
		Name:     m.FoodName,
		Calories: m.Calories,
		Nutrients: map[string]float64{
			"carbohydrates": m.Carbohydrates,
			"protein":       m.Protein,
			"fat":           m.Fat,
		},
		Timestamp: m.Timestamp,
	}
}

// GetStats returns today's nutrition aggregate for the current user.
// With no meals logged the numeric fields come back null, which the
// dashboard renders as the first-meal prompt.
func (h *BalanceController) GetStats(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "unauthorized"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	meals, err := h.Meals.ListMealsByDate(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if len(meals) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"balance_score":      nil,
			"total_calories":     nil,
			"daily_calorie_goal": user.DailyCalorieGoal,
			"highlight":          "",
			"needs_improvement":  "",
			"nutrients": gin.H{
				"carbohydrates": nil,
				"protein":       nil,
				"fat":           nil,
			},
		})
		return
	}

	totalCalories, nutrients := services.NutrientTotals(meals)
	score := h.Balance.BalanceScore(nutrients)
	highlight, needsImprovement := h.Balance.AnalyzeNutrients(nutrients)

	c.JSON(http.StatusOK, gin.H{
		"balance_score":      score,
		"total_calories":     totalCalories,
		"daily_calorie_goal": user.DailyCalorieGoal,
		"highlight":          highlight,
		"needs_improvement":  needsImprovement,
		"nutrients":          nutrients,
	})
}

// ListMeals returns the day's meals grouped by type. The date query
// parameter defaults to today.
func (h *BalanceController) ListMeals(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "unauthorized"})
		return
	}

	date := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid date format, use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	meals, err := h.Meals.ListMealsByDate(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	grouped := services.GroupByType(meals)
	out := make(map[string][]mealEntry, len(grouped))
	for mealType, ms := range grouped {
		entries := make([]mealEntry, 0, len(ms))
		for _, m := range ms {
			entries = append(entries, toMealEntry(m))
		}
		out[mealType] = entries
	}
	c.JSON(http.StatusOK, out)
}

func (h *BalanceController) AddMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "unauthorized"})
		return
	}

	var req services.MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	meal, err := h.Meals.AddMeal(userID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMealType) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save meal: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Meal added successfully", "meal_id": meal.ID})
}

func (h *BalanceController) GetMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "unauthorized"})
		return
	}

	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid meal id"})
		return
	}

	meal, err := h.Meals.GetMeal(userID, uint(mealID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        meal.ID,
		"food_name": meal.FoodName,
		"meal_type": meal.MealType,
		"calories":  meal.Calories,
		"nutrients": gin.H{
			"carbohydrates": meal.Carbohydrates,
			"protein":       meal.Protein,
			"fat":           meal.Fat,
		},
		"timestamp": meal.Timestamp,
	})
}

func (h *BalanceController) UpdateMeal(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "unauthorized"})
		return
	}

	mealID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid meal id"})
		return
	}

	var req services.MealUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	meal, err := h.Meals.UpdateMeal(userID, uint(mealID), req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Meal not found"})
		case errors.Is(err, services.ErrInvalidMealType):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal updated successfully", "meal_id": meal.ID})
}

// GetMonthly returns the per-day calendar aggregate for one month.
func (h *BalanceController) GetMonthly(c *gin.Context) {
	userID, ok := authorizedPathUser(c)
	if !ok {
		return
	}

	year, err1 := strconv.Atoi(c.Param("year"))
	month, err2 := strconv.Atoi(c.Param("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid year/month"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	summary, err := h.Streaks.MonthlySummary(userID, year, month, user.DailyCalorieGoal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetStreak returns consecutive-logging streak stats.
func (h *BalanceController) GetStreak(c *gin.Context) {
	userID, ok := authorizedPathUser(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	stats, err := h.Streaks.Streak(userID, user.DailyCalorieGoal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// --- helpers ---

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// authorizedPathUser resolves the :userId path segment and rejects the
// request unless it names the authenticated user.
func authorizedPathUser(c *gin.Context) (uint, bool) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "unauthorized"})
		return 0, false
	}

	pathID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid user id"})
		return 0, false
	}
	if uint(pathID) != userID {
		c.JSON(http.StatusForbidden, gin.H{"detail": "forbidden"})
		return 0, false
	}
	return userID, true
}
