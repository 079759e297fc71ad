package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"doc-analytics-be/internal/bootstrap"
	"doc-analytics-be/internal/config"
	"doc-analytics-be/internal/tracer"
	"doc-analytics-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		log.Panicf("Unable to migrate schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Run the TCP server until a shutdown signal arrives
	if err := container.Server.Listen(); err != nil {
		log.Panicf("Unable to bind TCP listener: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- container.Server.Serve(context.Background())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received %v, shutting down...", sig)
		container.Server.Shutdown()
	case err := <-errCh:
		if err != nil {
			log.Printf("Server error: %v", err)
		}
	}

	if container.NatsPublisher != nil {
		container.NatsPublisher.Close()
	}
	log.Println("Shutdown complete")
}
