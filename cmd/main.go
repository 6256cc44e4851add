package main

import (
	"log"
	"net/http"
	"os"
	"runtime"
	"time"

	"subhealth/database"
	"subhealth/internal/cache"
	"subhealth/internal/controllers"
	"subhealth/internal/repository"
	"subhealth/internal/risk"
	"subhealth/internal/services"
	"subhealth/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections()

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	labRepo := repository.NewLabRepository(database.DB)
	vitalsRepo := repository.NewVitalsRepository(database.DB)
	lifestyleRepo := repository.NewLifestyleRepository(database.DB)
	allergyRepo := repository.NewAllergyRepository(database.DB)
	familyRepo := repository.NewFamilyHistoryRepository(database.DB)
	geneticRepo := repository.NewGeneticRepository(database.DB)
	metricsRepo := repository.NewMetricsRepository(database.DB)
	riskScoreRepo := repository.NewRiskScoreRepository(database.DB)
	jobRepo := repository.NewRecomputeJobRepository(database.DB)

	// Risk engine and fuser run on the fixed default weights.
	engine, err := risk.NewEngine(risk.DefaultEngineConfig())
	if err != nil {
		log.Fatalf("Failed to build risk engine: %v", err)
	}
	fuser, err := risk.NewFuser(risk.DefaultFusionConfig())
	if err != nil {
		log.Fatalf("Failed to build risk fuser: %v", err)
	}

	// Redis is optional; responses just go uncached when unavailable.
	redisClient, err := cache.NewRedisClient()
	if err != nil {
		log.Printf("Warning: Redis unavailable, responses will not be cached: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Services
	snapshotService := services.NewSnapshotService(
		labRepo, vitalsRepo, lifestyleRepo, allergyRepo, familyRepo, metricsRepo)
	riskService := services.NewRiskService(snapshotService, engine)
	contextualService := services.NewContextualRiskService(
		snapshotService, labRepo, lifestyleRepo, geneticRepo, familyRepo, riskScoreRepo, fuser)

	workerCount := runtime.NumCPU()
	if workerCount < 3 {
		workerCount = 3
	}

	recomputeWorker := services.NewRecomputeWorker(jobRepo, contextualService, redisClient, workerCount)
	log.Printf("Starting recompute worker with %d workers...", workerCount)
	recomputeWorker.Start()
	defer recomputeWorker.Stop()

	// Controllers
	authController := controllers.NewAuthController(userRepo)
	riskController := controllers.NewRiskController(
		riskService, contextualService, jobRepo, recomputeWorker, redisClient)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message":  "SubHealth risk API is running",
			"version":  "1.0.0",
			"status":   "healthy",
			"scoring":  "Deterministic multimodal fusion",
			"recompute": "Async recompute jobs via RabbitMQ",
		})
	})

	routes.RegisterAuthRoutes(router, authController)
	routes.RegisterRiskRoutes(router, riskController)

	router.GET("/debug/stats", func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		c.JSON(200, gin.H{
			"goroutines": runtime.NumGoroutine(),
			"memory_mb":  m.Alloc / 1024 / 1024,
			"workers":    workerCount,
			"job_worker": recomputeWorker.GetStatus(),
		})
	})

	router.GET("/debug/database", func(c *gin.Context) {
		sqlDB, err := database.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{
				"database_health": false,
				"error":           err.Error(),
			})
			return
		}

		var result int
		row := sqlDB.QueryRowContext(c.Request.Context(), "SELECT 1")
		err = row.Scan(&result)
		isHealthy := err == nil && result == 1

		c.JSON(200, gin.H{
			"database_health": isHealthy,
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("Health Check: http://localhost:%s/risk/health", port)
	log.Printf("Database Health: http://localhost:%s/debug/database", port)

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
