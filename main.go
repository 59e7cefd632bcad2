package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Jamuna1221/WattLab/database"
	"github.com/Jamuna1221/WattLab/handlers"
	"github.com/Jamuna1221/WattLab/natsserver"
	"github.com/Jamuna1221/WattLab/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
	defer database.Close()

	handlers.Init(database.DB)

	// Start embedded NATS server for the live dashboard feed
	natsConfig := natsserver.DefaultConfig()
	if p := os.Getenv("NATS_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			natsConfig.Port = parsed
		}
	}
	natsServer, err := natsserver.New(natsConfig)
	if err != nil {
		log.Fatalf("❌ Failed to start NATS server: %v", err)
	}
	defer natsServer.Shutdown()
	handlers.SetEmbeddedNATS(natsServer)

	// Initialize feed hub for WebSocket streaming
	feedHub := services.NewFeedHub(natsServer)
	go feedHub.Run()
	handlers.SetFeedHub(feedHub)
	log.Println("📺 Feed hub initialized")

	// Setup Gin router
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS middleware
	config := cors.DefaultConfig()
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowOrigins = strings.Split(origins, ",")
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(config))

	// Service banner
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "WattLab API Server - Intelligent Energy Monitoring System",
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// WebSocket route for the live dashboard feed
	router.GET("/ws/feed", handlers.AuthMiddleware(), handlers.HandleFeedWebSocket)

	// API Routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
			auth.POST("/register", handlers.Register)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(handlers.AuthMiddleware())
		{
			// Appliance registry
			appliances := protected.Group("/appliances")
			{
				appliances.GET("", handlers.GetAppliances)
				appliances.POST("", handlers.PostAppliance)
				appliances.DELETE("/:id", handlers.DeleteAppliance)
			}

			// Energy aggregation and reading ingest
			energy := protected.Group("/energy")
			{
				energy.GET("", handlers.GetEnergy)
				energy.POST("/readings", handlers.PostReading)
			}

			// Alert feed
			alerts := protected.Group("/alerts")
			{
				alerts.GET("", handlers.GetAlerts)
				alerts.POST("", handlers.PostAlert)
			}

			// Bill prediction and recommendations
			ml := protected.Group("/ml")
			{
				ml.GET("/predict-bill", handlers.GetBillPrediction)
				ml.GET("/recommendations", handlers.GetRecommendations)
			}

			// Feed hub stats
			protected.GET("/feed/stats", handlers.GetFeedStats)

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(handlers.RequireAdmin())
			{
				admin.GET("/users", handlers.GetUsers)
				admin.POST("/users", handlers.CreateUser)
				admin.PATCH("/users/:id/status", handlers.UpdateUserStatus)
				admin.DELETE("/users/:id", handlers.DeleteUser)
				admin.GET("/stats", handlers.GetSystemStats)
				admin.GET("/settings", handlers.GetSettings)
				admin.PUT("/settings", handlers.UpdateSettings)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Printf("🚀 WattLab API Server running on http://localhost:%s", port)
	log.Printf("📊 Environment: %s", envName())
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func envName() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "development"
}
