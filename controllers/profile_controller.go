package controllers

import (
	"net/http"

	"balance/config"
	"balance/models"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"user_id":            user.ID,
		"email":              user.Email,
		"full_name":          user.FullName,
		"daily_calorie_goal": user.DailyCalorieGoal,
	})
}

type ProfileInput struct {
	FullName         string `json:"full_name"`
	DailyCalorieGoal *int   `json:"daily_calorie_goal"`
}

func UpdateProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "unauthorized"})
		return
	}

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.DailyCalorieGoal != nil {
		if *input.DailyCalorieGoal <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "daily_calorie_goal must be positive"})
			return
		}
		user.DailyCalorieGoal = *input.DailyCalorieGoal
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully"})
}
