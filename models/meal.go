package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal types. Snack is folded into dinner at the boundary, so only
// these three values ever reach the database.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
)

// One logged food entry. Each food the user saves becomes its own row,
// keyed to a meal type and a timestamp; the nutrition snapshot is
// stored denormalized so history survives later edits to lookups.
type Meal struct {
	gorm.Model
	UserID        uint      `gorm:"index;not null"`
	MealType      string    `gorm:"type:varchar(16);not null"`
	Timestamp     time.Time `gorm:"index;not null"`
	FoodName      string    `gorm:"not null"`
	ServingSize   string
	Calories      float64
	Carbohydrates float64
	Protein       float64
	Fat           float64
	ImageURL      string
}
