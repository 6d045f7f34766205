package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/yasshp/Mr-System/config"
	"github.com/yasshp/Mr-System/database"
	"github.com/yasshp/Mr-System/handlers"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Connect to database
	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Initialize tables
	if err := db.InitializeTables(); err != nil {
		log.Fatal("Failed to initialize tables:", err)
	}

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS middleware (React dashboard on Vercel + localhost)
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "MR Scheduling API is running",
		})
	})

	// Initialize handlers
	handlers.InitializeHandlers(db)

	// Admin bootstrap route (no auth required for initial setup)
	router.POST("/setup-admin", handlers.CreateAdminUser)

	// Authentication
	router.POST("/auth/login", handlers.Login)

	// Schedule routes (protected)
	schedule := router.Group("/schedule")
	schedule.Use(handlers.AuthMiddleware())
	{
		schedule.GET("/daily/:mr_id/:date", handlers.GetDailySchedule)
		schedule.PUT("/status", handlers.UpdateStatus)
	}

	// Report routes (protected)
	reports := router.Group("/reports")
	reports.Use(handlers.AuthMiddleware())
	{
		reports.GET("/activity", handlers.GetActivityReport)
		reports.GET("/compliance", handlers.GetComplianceReport)
		reports.GET("/customer-behaviour", handlers.GetCustomerBehaviourReport)
		reports.GET("/travel", handlers.GetTravelReport)
	}

	// Admin routes (protected with admin middleware)
	admin := router.Group("/admin")
	admin.Use(handlers.AuthMiddleware(), handlers.AdminMiddleware())
	{
		admin.GET("/mrs", handlers.GetMRs)
		admin.GET("/table/:table", handlers.GetTableData)
		admin.POST("/generate-schedule", handlers.GenerateSchedule)
	}

	// Start server
	log.Printf("Starting MR Scheduling API on 0.0.0.0:%s", config.AppConfig.ServerPort)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+config.AppConfig.ServerPort, c.Handler(router)))
}
