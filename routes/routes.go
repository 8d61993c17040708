package routes

import (
	"ClinicFlow/cache"
	"ClinicFlow/config"
	"ClinicFlow/controllers"
	"ClinicFlow/handlers"
	"ClinicFlow/middlewares"
	"ClinicFlow/realtime"
	"ClinicFlow/repositories"
	"ClinicFlow/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.example.com", "https://example-dev.com"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Realtime hub: queue mutations fan out notifications through it
	hub := realtime.NewHub()
	realtimeHandler := realtime.NewHandler(hub)

	// Initialize repositories, services, and handlers
	patientRepo := repositories.NewPatientRepository(cache)
	doctorRepo := repositories.NewDoctorRepository(cache)
	roomRepo := repositories.NewRoomRepository(cache)
	catalogRepo := repositories.NewCatalogRepository(cache)
	sessionRepo := repositories.NewCareSessionRepository(cache)
	invoiceRepo := repositories.NewInvoiceRepository(cache)
	userRepo := repositories.NewUserRepository(db, cache)

	sessionService := services.NewCareSessionService(sessionRepo, patientRepo, doctorRepo, roomRepo, catalogRepo, hub)
	queueService := services.NewQueueService(sessionRepo, doctorRepo)
	billingService := services.NewBillingService(sessionRepo, invoiceRepo, hub)
	userService := services.NewUserService(userRepo)

	sessionHandler := handlers.NewCareSessionHandler(sessionService, queueService)
	queueHandler := handlers.NewQueueHandler(queueService)
	billingHandler := handlers.NewBillingHandler(billingService)
	patientHandler := handlers.NewPatientHandler(services.NewPatientService(patientRepo))
	doctorHandler := handlers.NewDoctorHandler(services.NewDoctorService(doctorRepo))
	roomHandler := handlers.NewRoomHandler(services.NewRoomService(roomRepo))
	catalogHandler := handlers.NewCatalogHandler(services.NewCatalogService(catalogRepo))
	authHandler := handlers.NewAuthHandler(userService)

	// Register routes
	controllers.SetupClinicRoutes(
		router,
		sessionHandler,
		queueHandler,
		billingHandler,
		patientHandler,
		doctorHandler,
		roomHandler,
		catalogHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	// WebSocket endpoint sits behind the same token middleware as the API
	router.GET("/ws", middlewares.TokenAuthMiddleware(), realtimeHandler.HandleConnect)

	controllers.SetupRootRoute(router)

	return router
}
