// Package server exposes roadmap export, metrics and progress tracking over
// HTTP.
package server

import (
	"context"
	"log"
	"time"

	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/careerpath/roadmappdf/internal/progress"
	"github.com/careerpath/roadmappdf/internal/report"
	"github.com/gofiber/fiber/v3"
)

// Renderer produces a document. *report.Assembler satisfies it.
type Renderer interface {
	Render(rec *model.RoleRecord, state model.ProgressState) (*report.Artifact, error)
}

// Config holds HTTP server settings.
type Config struct {
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP front end.
type Server struct {
	app      *fiber.App
	renderer Renderer
	store    progress.Store
	logger   *log.Logger
}

// New builds the fiber app and registers every route.
func New(cfg Config, renderer Renderer, store progress.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if store == nil {
		store = progress.NewMemory()
	}
	app := fiber.New(fiber.Config{
		AppName:      "roadmappdf",
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	s := &Server{app: app, renderer: renderer, store: store, logger: logger}

	app.Use(accessLog(logger))
	app.Use(errorMiddleware(logger))
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.health)

	v1 := s.app.Group("/api/v1")
	v1.Post("/roadmaps/export", s.export)
	v1.Post("/roadmaps/metrics", s.metrics)

	p := v1.Group("/progress")
	p.Get("/:role", s.getProgress)
	p.Put("/:role", s.putProgress)
	p.Post("/:role/toggle", s.toggleProgress)
}

// App returns the underlying fiber app, for tests and embedding.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Printf("[HTTP] listening on %s", addr)
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
