package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Tomlord1122/todo-server/internal/config"
	"github.com/Tomlord1122/todo-server/internal/service"
)

type Server struct {
	cfg           *config.Config
	todoService   service.TodoService
	randomService service.RandomService
	logger        *log.Logger
}

// New builds the application server without binding it to a listener.
func New(cfg *config.Config, todoService service.TodoService, randomService service.RandomService, logger *log.Logger) *Server {
	return &Server{
		cfg:           cfg,
		todoService:   todoService,
		randomService: randomService,
		logger:        logger,
	}
}

// NewHTTPServer wraps the application routes in an http.Server listening on cfg.Addr().
func NewHTTPServer(cfg *config.Config, todoService service.TodoService, randomService service.RandomService, logger *log.Logger) *http.Server {
	appServer := New(cfg, todoService, randomService, logger)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
	}

	return server
}
