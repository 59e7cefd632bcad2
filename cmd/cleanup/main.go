package main

import (
	"fmt"
	"log"

	"github.com/Jamuna1221/WattLab/database"
	"github.com/Jamuna1221/WattLab/services"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	settings := services.NewSettingsService(database.DB)
	alerts := services.NewAlertService(database.DB, settings)

	fmt.Printf("Start cleanup (retention: %d days)...\n", settings.AlertRetentionDays())

	purged, err := alerts.PurgeExpired()
	if err != nil {
		log.Fatalf("Failed to purge alerts: %v", err)
	}
	fmt.Printf("✅ Purged %d expired alerts\n", purged)

	fmt.Println("Cleanup finished successfully")
}
