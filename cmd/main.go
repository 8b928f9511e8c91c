package main

import (
	"log"

	"balance/config"
	"balance/routes"
	"balance/services"
	"balance/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	rec, err := services.NewRekognitionService()
	if err != nil {
		log.Fatalf("Failed to init recognition service: %v", err)
	}

	hub := services.NewRealtimeHub()
	r := routes.SetupRouter(hub, rec, services.NewNutritionService())
	r.Run(":8000")
}
