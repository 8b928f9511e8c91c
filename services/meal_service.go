// services/meal_service.go
package services

import (
	"errors"
	"time"

	"balance/config"
	"balance/models"
)

var ErrInvalidMealType = errors.New("meal_type must be breakfast, lunch, dinner or snack")

// NormalizeMealType lowercase-validates a meal type. Snack is folded
// into dinner so every stored row uses one of the three buckets.
func NormalizeMealType(t string) (string, error) {
	switch t {
	case models.MealBreakfast, models.MealLunch, models.MealDinner:
		return t, nil
	case "snack":
		return models.MealDinner, nil
	default:
		return "", ErrInvalidMealType
	}
}

// DayWindow returns the [start, end) bounds of the local day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

type MealService struct {
	hub *RealtimeHub
}

func NewMealService(hub *RealtimeHub) *MealService {
	return &MealService{hub: hub}
}

type MealRequest struct {
	MealType      string    `json:"meal_type" binding:"required"`
	Timestamp     time.Time `json:"timestamp"`
	FoodName      string    `json:"food_name" binding:"required"`
	ServingSize   string    `json:"serving_size"`
	Calories      float64   `json:"calories"`
	Carbohydrates float64   `json:"carbohydrates"`
	Protein       float64   `json:"protein"`
	Fat           float64   `json:"fat"`
}

func (s *MealService) AddMeal(userID uint, req MealRequest) (*models.Meal, error) {
	mealType, err := NormalizeMealType(req.MealType)
	if err != nil {
		return nil, err
	}
	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	meal := &models.Meal{
		UserID:        userID,
		MealType:      mealType,
		Timestamp:     ts,
		FoodName:      req.FoodName,
		ServingSize:   req.ServingSize,
		Calories:      req.Calories,
		Carbohydrates: req.Carbohydrates,
		Protein:       req.Protein,
		Fat:           req.Fat,
	}
	if err := config.DB.Create(meal).Error; err != nil {
		return nil, err
	}

	s.notifyChanged(userID)
	return meal, nil
}

func (s *MealService) GetMeal(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &meal, nil
}

type MealUpdateRequest struct {
	MealType      string  `json:"meal_type"`
	FoodName      string  `json:"food_name"`
	Calories      float64 `json:"calories"`
	Carbohydrates float64 `json:"carbohydrates"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
}

func (s *MealService) UpdateMeal(userID, mealID uint, req MealUpdateRequest) (*models.Meal, error) {
	var meal models.Meal
	if err := config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return nil, err
	}

	if req.MealType != "" {
		mealType, err := NormalizeMealType(req.MealType)
		if err != nil {
			return nil, err
		}
		meal.MealType = mealType
	}
	if req.FoodName != "" {
		meal.FoodName = req.FoodName
	}
	meal.Calories = req.Calories
	meal.Carbohydrates = req.Carbohydrates
	meal.Protein = req.Protein
	meal.Fat = req.Fat

	if err := config.DB.Save(&meal).Error; err != nil {
		return nil, err
	}

	s.notifyChanged(userID)
	return &meal, nil
}

func (s *MealService) ListMealsByDate(userID uint, date time.Time) ([]models.Meal, error) {
	start, end := DayWindow(date)
	var meals []models.Meal
	err := config.DB.
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Order("timestamp ASC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) ListMealsByRange(userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, from, to).
		Order("timestamp ASC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) notifyChanged(userID uint) {
	if s.hub != nil {
		s.hub.NotifyMealsChanged(userID)
	}
}

// ---------- pure aggregation helpers ----------

// GroupByType buckets meals under breakfast/lunch/dinner. All three
// keys are always present so clients can iterate a fixed shape.
func GroupByType(meals []models.Meal) map[string][]models.Meal {
	grouped := map[string][]models.Meal{
		models.MealBreakfast: {},
		models.MealLunch:     {},
		models.MealDinner:    {},
	}
	for _, m := range meals {
		grouped[m.MealType] = append(grouped[m.MealType], m)
	}
	return grouped
}

// NutrientTotals sums calories and macros across a set of meals.
func NutrientTotals(meals []models.Meal) (calories float64, nutrients map[string]float64) {
	nutrients = map[string]float64{
		"carbohydrates": 0,
		"protein":       0,
		"fat":           0,
	}
	for _, m := range meals {
		calories += m.Calories
		nutrients["carbohydrates"] += m.Carbohydrates
		nutrients["protein"] += m.Protein
		nutrients["fat"] += m.Fat
	}
	return calories, nutrients
}
