package models

import (
	"gorm.io/gorm"
)

// A User is either a registered account or a guest created by the
// token endpoint; guests keep Email and Password empty.
type User struct {
	gorm.Model
	Email            string `gorm:"index"`
	Password         string
	FullName         string
	DailyCalorieGoal int `gorm:"default:2000"`
}
