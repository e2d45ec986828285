package main

import (
	"commission-central/internal/config"
	"commission-central/internal/database"
	"commission-central/internal/repository"
	"commission-central/internal/service"
	"commission-central/internal/utils"
	"commission-central/internal/worker"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
)

func main() {
	log := utils.GetLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.SessionStore != "redis" {
		log.Fatalf("Worker requires SESSION_STORE=redis, got %q", cfg.SessionStore)
	}

	// Initialize Redis
	redisClient, err := database.NewRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Tick chain wiring
	asynqClient := asynq.NewClient(database.AsynqRedisOpt(cfg))
	defer asynqClient.Close()

	ticker := worker.NewAsynqTicker(asynqClient, cfg.ImportTickInterval, log)
	store := repository.NewRedisSessionStore(redisClient, cfg.ImportSessionTTL)
	controller := service.NewImportController(store, ticker, cfg.ImportTickStep, log)

	// Create Asynq server
	srv := asynq.NewServer(
		database.AsynqRedisOpt(cfg),
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.WithError(err).WithField("task_type", task.Type()).Error("Task failed")
			}),
			Logger: log,
		},
	)

	// Register task handlers
	mux := asynq.NewServeMux()
	worker.RegisterHandlers(mux, worker.NewImportTickHandler(controller, ticker, log))

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\nGracefully shutting down worker...")
		srv.Shutdown()
	}()

	// Start worker
	log.Infof("Worker starting with concurrency: %d", cfg.WorkerConcurrency)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}

	fmt.Println("Worker exited")
}
