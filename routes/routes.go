package routes

import (
	"balance/controllers"
	"balance/middlewares"
	"balance/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(hub *services.RealtimeHub, rec services.FoodRecognizer, nut services.NutritionLookup) *gin.Engine {
	r := gin.Default()

	mealSvc := services.NewMealService(hub)
	balCtl := controllers.NewBalanceController(mealSvc, services.NewBalanceService(), services.NewStreakService())
	foodCtl := controllers.NewFoodController(rec, nut)
	rtCtl := controllers.NewRealtimeController(hub)

	v1 := r.Group("/api/v1")

	bal := v1.Group("/balance")
	{
		// public auth routes
		bal.POST("/token", controllers.IssueToken)
		bal.POST("/register", controllers.Register)

		authed := bal.Group("")
		authed.Use(middlewares.AuthMiddleware())
		{
			authed.GET("/stats", balCtl.GetStats)
			authed.GET("/meals", balCtl.ListMeals)
			authed.POST("/meals", balCtl.AddMeal)
			authed.GET("/meals/:id", balCtl.GetMeal)
			authed.PUT("/meals/:id", balCtl.UpdateMeal)
			authed.GET("/monthly/:userId/:year/:month", balCtl.GetMonthly)
			authed.GET("/streak/:userId", balCtl.GetStreak)
			authed.GET("/profile", controllers.GetProfile)
			authed.PUT("/profile", controllers.UpdateProfile)
			authed.GET("/ws", rtCtl.MealEventsWS)
		}
	}

	// image analysis stays public: the capture flow runs before login
	v1.POST("/food/analyze", foodCtl.Analyze)

	return r
}
