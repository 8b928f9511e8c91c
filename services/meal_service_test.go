package services_test

import (
	"testing"
	"time"

	"balance/models"
	"balance/services"
)

func TestNormalizeMealType(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"breakfast", "breakfast", false},
		{"lunch", "lunch", false},
		{"dinner", "dinner", false},
		{"snack", "dinner", false}, // snack folds into dinner
		{"brunch", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := services.NormalizeMealType(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)
	start, end := services.DayWindow(at)

	if !start.Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("start = %v", start)
	}
	if !end.Equal(start.Add(24 * time.Hour)) {
		t.Fatalf("end = %v", end)
	}
}

func TestGroupByType(t *testing.T) {
	meals := []models.Meal{
		{MealType: models.MealBreakfast, FoodName: "rice"},
		{MealType: models.MealDinner, FoodName: "stew"},
		{MealType: models.MealBreakfast, FoodName: "egg"},
	}

	grouped := services.GroupByType(meals)

	if len(grouped) != 3 {
		t.Fatalf("expected all three buckets, got %d", len(grouped))
	}
	if len(grouped[models.MealBreakfast]) != 2 {
		t.Fatalf("breakfast = %d entries", len(grouped[models.MealBreakfast]))
	}
	if len(grouped[models.MealLunch]) != 0 {
		t.Fatal("lunch bucket should exist and be empty")
	}
	if len(grouped[models.MealDinner]) != 1 {
		t.Fatalf("dinner = %d entries", len(grouped[models.MealDinner]))
	}
}

func TestNutrientTotals(t *testing.T) {
	meals := []models.Meal{
		{Calories: 300, Carbohydrates: 60, Protein: 5, Fat: 1},
		{Calories: 450, Protein: 30}, // absent fields count as 0
	}

	calories, nutrients := services.NutrientTotals(meals)

	if calories != 750 {
		t.Fatalf("calories = %v, want 750", calories)
	}
	if nutrients["carbohydrates"] != 60 || nutrients["protein"] != 35 || nutrients["fat"] != 1 {
		t.Fatalf("nutrients = %v", nutrients)
	}
}

func TestNutrientTotalsEmpty(t *testing.T) {
	calories, nutrients := services.NutrientTotals(nil)
	if calories != 0 {
		t.Fatalf("calories = %v, want 0", calories)
	}
	for k, v := range nutrients {
		if v != 0 {
			t.Fatalf("%s = %v, want 0", k, v)
		}
	}
}
