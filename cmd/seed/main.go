package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/Jamuna1221/WattLab/database"
	"github.com/Jamuna1221/WattLab/models"
	"github.com/Jamuna1221/WattLab/services"
	"github.com/joho/godotenv"
)

type demoAppliance struct {
	name       string
	kind       models.ApplianceType
	ratedPower float64
	location   string
}

var demoAppliances = []demoAppliance{
	{"Air Conditioner", models.ApplianceHVAC, 1500, "Living Room"},
	{"Refrigerator", models.ApplianceKitchen, 800, "Kitchen"},
	{"Washing Machine", models.ApplianceLaundry, 1200, "Utility Room"},
	{"Water Heater", models.ApplianceWaterHeating, 2000, "Bathroom"},
}

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

	fmt.Println("🌱 Starting seed...")

	auth := services.NewAuthService(database.DB, services.NewLocalIdentity(database.DB))
	appliances := services.NewApplianceService(database.DB)
	energy := services.NewEnergyService(database.DB)
	alerts := services.NewAlertService(database.DB, services.NewSettingsService(database.DB))

	seedUser(auth, "WattLab Admin", "admin@wattlab.com", models.RoleAdmin)
	user := seedUser(auth, "Demo User", "user@wattlab.com", models.RoleUser)

	if user == nil {
		fmt.Println("⚠️  Demo user already present. Skipping appliance seeding.")
		return
	}

	now := time.Now()
	for _, spec := range demoAppliances {
		appliance, err := appliances.Add(user.ID, services.NewApplianceRequest{
			Name:       spec.name,
			Type:       spec.kind,
			RatedPower: spec.ratedPower,
			Location:   spec.location,
		})
		if err != nil {
			log.Fatalf("Failed to seed appliance %s: %v", spec.name, err)
		}

		// 30 days of daily readings scaled off the rated power
		for day := 30; day >= 1; day-- {
			base := spec.ratedPower / 1000.0 // kWh per hour of runtime
			hours := 1.0 + rand.Float64()*4.0
			_, err := energy.RecordReading(user.ID, appliance.ID,
				roundTenth(base*hours),
				now.AddDate(0, 0, -day))
			if err != nil {
				log.Fatalf("Failed to seed reading for %s: %v", spec.name, err)
			}
		}
		fmt.Printf("✅ Seeded %s with 30 days of readings\n", spec.name)
	}

	if _, err := alerts.Create(user.ID, nil, "High consumption detected on Air Conditioner", models.SeverityWarning); err != nil {
		log.Fatalf("Failed to seed alert: %v", err)
	}
	if _, err := alerts.Create(user.ID, nil, "Your monthly usage is 15% higher than usual", models.SeverityInfo); err != nil {
		log.Fatalf("Failed to seed alert: %v", err)
	}
	fmt.Println("✅ Seeded demo alerts")

	fmt.Println("🌱 Seed finished successfully")
}

func seedUser(auth *services.AuthService, name, email string, role models.UserRole) *models.User {
	user, err := auth.Register(name, email, "wattlab-demo")
	if err != nil {
		log.Printf("⚠️ Skipping %s: %v", email, err)
		return nil
	}

	if role != models.RoleUser {
		if err := database.DB.Model(user).Update("role", role).Error; err != nil {
			log.Fatalf("Failed to set role for %s: %v", email, err)
		}
		user.Role = role
	}

	fmt.Printf("✅ Seeded %s (%s)\n", email, role)
	return user
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
