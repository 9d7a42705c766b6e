package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Tomlord1122/todo-server/internal/config"
	"github.com/Tomlord1122/todo-server/internal/logging"
	"github.com/Tomlord1122/todo-server/internal/repository"
	"github.com/Tomlord1122/todo-server/internal/server"
	"github.com/Tomlord1122/todo-server/internal/service"

	_ "github.com/joho/godotenv/autoload"
)

func gracefulShutdown(apiServer *http.Server, logger *log.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The server has 5 seconds to finish the requests it is currently handling
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		logger.Error("Server forced to shutdown", "err", err)
	}

	logger.Info("Server exiting")

	done <- true
}

func main() {
	logger := logging.New(os.Stderr, logging.DefaultOptions())

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("Failed to load configuration", "err", err)
	}
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))
	logger.SetFormatter(logging.ParseFormatter(cfg.LogFormat))

	// The store lives for the lifetime of the process; nothing is persisted.
	todoRepo := repository.NewMemoryTodoRepository()

	todoService := service.NewTodoService(todoRepo, logger)
	randomService := service.NewRandomService()

	apiServer := server.NewHTTPServer(cfg, todoService, randomService, logger)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, logger, done)

	logger.Info("Starting server", "addr", apiServer.Addr, "request_timeout", cfg.RequestTimeout)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("HTTP server ListenAndServe error", "err", err)
	}

	<-done
	logger.Info("Graceful shutdown complete.")
}
