// Package startup prepares the application server
package startup

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AtRiskMedia/wealthstack-go/internal/application/container"
	"github.com/AtRiskMedia/wealthstack-go/internal/infrastructure/caching/cleanup"
	"github.com/AtRiskMedia/wealthstack-go/internal/presentation/http/server"
	"github.com/AtRiskMedia/wealthstack-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `

  ██ ██ ██ ▄▄▄▄▄ ▄▄▄▄▄ ██    ▄▄▄▄▄▄ ██  ██ ▄▄▄▄▄ ▄▄▄▄▄▄ ▄▄▄▄▄ ██ ▄▄
  ██ ██ ██ ██▄▄▄ ▄▄▄██ ██      ██   ██▄▄██ ▄▄▄▄▄   ██   ▄▄▄▄▄ ██▀█▄
  ▀█▄██▄█▀ ██▄▄▄ ██▄██ ██▄▄▄   ██   ██  ██ ▄▄▄██   ██   ██▄██ ██ ██
` + "\033[97m" + `
  made by At Risk Media
` + "\033[0m")

	// Step 1: Create dependency injection container
	log.Println("Initializing dependency injection container...")
	appContainer, err := container.NewContainer()
	if err != nil {
		return err
	}
	log.Println("✓ Dependency injection container created with singleton services.")

	logger := appContainer.Logger
	logger.Startup().Info("Container initialization complete - switching to channeled logging")

	// Step 2: Attach bus-driven projectors (activity feed + email relay)
	appContainer.Start()
	logger.Startup().Info("Event bus projectors attached", "subscribers", appContainer.Bus.SubscriberCount())

	// Step 3: Start background retention worker
	logger.Startup().Info("Starting background retention worker...")
	startWorkerTime := time.Now()

	cleanupConfig := cleanup.NewConfig()
	cleanupWorker := cleanup.NewWorker(appContainer.CacheManager, cleanupConfig, logger)
	go cleanupWorker.Start(ctx)

	logger.Startup().Info("Background retention worker started", "duration", time.Since(startWorkerTime))

	// Step 4: Start HTTP server
	logger.Startup().Info("Starting HTTP server...")
	startServerTime := time.Now()

	port := config.Port
	httpServer := server.New(port, appContainer)

	logger.Startup().Info("HTTP server initialized", "port", port, "duration", time.Since(startServerTime))

	// Step 5: Setup graceful shutdown
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	totalStartupTime := time.Since(start)
	logger.Startup().Info("Application startup complete",
		"totalDuration", totalStartupTime,
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	// Cancel background tasks
	cancelBackgroundTasks()

	// Stop server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	// Detach projectors
	appContainer.Stop()
	logger.Shutdown().Info("Event bus projectors detached")

	elapsed := time.Since(start)
	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", elapsed,
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
