package main

import (
	"commission-central/internal/config"
	"commission-central/internal/database"
	"commission-central/internal/repository"
	"commission-central/internal/router"
	"commission-central/internal/service"
	"commission-central/internal/utils"
	"commission-central/internal/worker"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

func main() {
	log := utils.GetLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	deps := router.Dependencies{Logger: log}

	// Commission data source
	switch cfg.DataSource {
	case "mysql":
		db, err := database.NewMySQL(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		deps.Commissions = repository.NewSQLCommissionRepository(db)
	case "sqlite":
		db, err := database.NewSQLite(cfg)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		deps.Commissions = repository.NewSQLCommissionRepository(db)
	default:
		deps.Commissions = repository.NewSampleCommissionRepository()
	}

	// Import session store
	switch cfg.SessionStore {
	case "redis":
		redisClient, err := database.NewRedis(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		deps.Sessions = repository.NewRedisSessionStore(redisClient, cfg.ImportSessionTTL)
	default:
		deps.Sessions = repository.NewMemorySessionStore(cfg.ImportSessionTTL)
	}

	// Import progress ticker
	switch cfg.Ticker {
	case "asynq":
		asynqClient := asynq.NewClient(database.AsynqRedisOpt(cfg))
		defer asynqClient.Close()
		deps.Ticker = worker.NewAsynqTicker(asynqClient, cfg.ImportTickInterval, log)
	default:
		localTicker := service.NewLocalTicker(cfg.ImportTickInterval, log)
		defer localTicker.Close()
		deps.Ticker = localTicker
	}

	// Initialize template engine
	engine := html.New("./views", ".html")
	engine.Reload(cfg.AppEnv == "development")

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		Views:        engine,
		BodyLimit:    cfg.UploadMaxSize,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	// Setup routes
	router.Setup(app, cfg, deps)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\nGracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := fmt.Sprintf(":%s", cfg.AppPort)
	log.WithFields(logrus.Fields{
		"data_source":   cfg.DataSource,
		"session_store": cfg.SessionStore,
		"ticker":        cfg.Ticker,
	}).Infof("Server starting on %s", port)
	if err := app.Listen(port); err != nil {
		log.Errorf("Failed to start server: %v", err)
	}

	fmt.Println("Server exited")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check if request expects JSON
	if c.Accepts("text/html", "application/json") == "application/json" {
		return c.Status(code).JSON(utils.Response{
			Success: false,
			Message: message,
			Error:   err.Error(),
		})
	}

	// Return HTML error page
	return c.Status(code).Render("error", fiber.Map{
		"Code":    code,
		"Message": message,
	})
}
