package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"ecomadmin/config"
	"ecomadmin/editor"
	"ecomadmin/middleware"
	"ecomadmin/routes"
	"ecomadmin/worker"
)

func main() {
	logger := log.New(os.Stdout, "ADMIN: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis backs draft slots and export rate limiting when enabled
	if err := config.ConnectRedis(); err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Error reporting
	if err := config.InitSentry(); err != nil {
		logger.Printf("Failed to initialize Sentry: %v", err)
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = config.AppConfig.AllowedOrigins
	app.Use(middleware.CORS(corsConfig))

	// Draft slots: Redis when available, in-memory otherwise
	var drafts editor.DraftStore
	if config.AppConfig.Redis.Enabled && config.RedisClient != nil {
		ttl := time.Duration(config.AppConfig.DraftTTLDays) * 24 * time.Hour
		drafts = editor.NewRedisDraftStore(config.RedisClient, ttl)
	} else {
		drafts = editor.NewMemoryDraftStore()
	}

	// Initialize and start the PDF export worker
	exportLogger := logrus.New()
	exportLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	exportWorker := worker.NewExportWorker(config.DB, exportLogger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go exportWorker.Start(ctx)

	// Setup routes
	routes.SetupRoutes(app, config.DB, drafts, exportWorker)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
