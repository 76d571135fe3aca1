package main

import (
	"log"
	"studyforge/backend/cache"
	"studyforge/backend/config"
	"studyforge/backend/middleware"
	"studyforge/backend/routes"
	"studyforge/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Optional redis question cache
	var redisCache *cache.Client
	if cfg.RedisAddr != "" {
		redisCache, err = cache.NewClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Printf("Redis unavailable, question cache disabled: %v", err)
			redisCache = nil
		}
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, routes.Deps{
		Cache:  redisCache,
		Logger: logger,
	})

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
