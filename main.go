package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"careconnect-server/internal/config"
	"careconnect-server/internal/models"
	"careconnect-server/internal/repository"
	"careconnect-server/internal/routes"
	"careconnect-server/internal/scheduler"
	"careconnect-server/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := logrus.New()
	if cfg.Environment == "development" {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	store := repository.NewGormStore(db)

	// Build the service layer once and inject it into the handlers
	services := &routes.Services{
		Auth:     service.NewAuthService(store, logger),
		Profiles: service.NewProfileService(store, service.StubVerifier{}, logger),
		Matching: service.NewMatchingService(store, logger),
		Appointments: service.NewAppointmentService(
			store,
			&service.StubGateway{Logger: logger},
			service.LeastRecentlyAssigned{},
			logger,
		),
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, store, cfg, services)

	// Daily appointment reminders
	reminders := scheduler.NewReminders(store, logger)
	if err := reminders.Start(cfg.ReminderCronSpec); err != nil {
		log.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer reminders.Stop()

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.WithField("port", cfg.Port).Info("server starting")
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
