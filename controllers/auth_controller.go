package controllers

import (
	"net/http"

	"balance/config"
	"balance/models"
	"balance/utils"

	"github.com/gin-gonic/gin"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      uint   `json:"user_id"`
}

// IssueToken is the guest-style login: it creates a fresh user with
// default settings and hands back a bearer token for it.
func IssueToken(c *gin.Context) {
	user := models.User{DailyCalorieGoal: 2000}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user: " + err.Error()})
		return
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", UserID: user.ID})
}

type RegisterInput struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FullName         string `json:"full_name"`
	DailyCalorieGoal *int   `json:"daily_calorie_goal"`
}

// Register creates an account. Every field is optional: the signup
// form collects email and name but only the calorie goal affects
// behavior, so a bare body still yields a working user.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	goal := 2000
	if input.DailyCalorieGoal != nil && *input.DailyCalorieGoal > 0 {
		goal = *input.DailyCalorieGoal
	}

	user := models.User{
		Email:            input.Email,
		FullName:         input.FullName,
		DailyCalorieGoal: goal,
	}
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to hash password"})
			return
		}
		user.Password = hashed
	}

	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create user: " + err.Error()})
		return
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", UserID: user.ID})
}
