package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careconnect-server/internal/config"
	"careconnect-server/internal/handlers"
	"careconnect-server/internal/middleware"
	"careconnect-server/internal/models"
	"careconnect-server/internal/repository"
	"careconnect-server/internal/service"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, store repository.Store, cfg *config.Config, services *Services) {
	authHandler := handlers.NewAuthHandler(services.Auth, store, cfg)
	profileHandler := handlers.NewProfileHandler(services.Profiles)
	caregiverHandler := handlers.NewCaregiverHandler(services.Matching, services.Appointments)
	appointmentHandler := handlers.NewAppointmentHandler(services.Appointments, services.Profiles)

	// Public routes (no authentication required)
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to CareConnect"})
	})
	router.GET("/about", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "CareConnect matches patients with qualified caregivers"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	router.POST("/signup", authHandler.SignUp)
	router.POST("/login", authHandler.Login)
	router.POST("/refresh_token", authHandler.RefreshToken)
	router.GET("/logout", authHandler.Logout)

	// Authenticated routes
	private := router.Group("")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		private.GET("/profile", authHandler.GetProfile)

		private.POST("/register/patient", middleware.RoleAuthMiddleware(models.RolePatient), profileHandler.RegisterPatient)
		private.POST("/register/caregiver", middleware.RoleAuthMiddleware(models.RoleCaregiver), profileHandler.RegisterCaregiver)
		private.POST("/availability", middleware.RoleAuthMiddleware(models.RoleCaregiver), profileHandler.SetAvailability)
		private.GET("/license/:id", profileHandler.DownloadLicense)

		private.GET("/search_caregivers", caregiverHandler.SearchCaregivers)
		private.POST("/search_caregivers", caregiverHandler.SearchCaregivers)
		private.POST("/select_caregiver", middleware.RoleAuthMiddleware(models.RolePatient), caregiverHandler.SelectCaregiver)
		private.GET("/caregiver_reviews/:id", caregiverHandler.CaregiverReviews)

		private.POST("/schedule_appointment", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.Schedule)
		private.GET("/appointments", appointmentHandler.List)
		private.POST("/confirm_payment", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.ConfirmPayment)
		private.POST("/dispatch_caregiver/:id", appointmentHandler.Dispatch)
		private.GET("/caregiving_session/:id", appointmentHandler.Session)
		private.POST("/complete_and_feedback/:id", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.Complete)
		private.POST("/cancel_appointment/:id", appointmentHandler.Cancel)
		private.POST("/reschedule_appointment/:id", appointmentHandler.Reschedule)
	}
}

// Services bundles the constructed service layer handed to SetupRoutes.
type Services struct {
	Auth         *service.AuthService
	Profiles     *service.ProfileService
	Matching     *service.MatchingService
	Appointments *service.AppointmentService
}
