package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hireai/resume-intake/internal/export"
	"github.com/hireai/resume-intake/internal/pipeline"
	"github.com/hireai/resume-intake/internal/repository"
)

// Server exposes the intake API over HTTP.
type Server struct {
	app *fiber.App
	log *slog.Logger
}

func New(pipe *pipeline.Pipeline, candidates repository.CandidateRepository, exporter *export.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	app := fiber.New(fiber.Config{
		AppName:               "resume-intake",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	h := &handlers{pipe: pipe, candidates: candidates, exporter: exporter, log: log}

	api := app.Group("/api/v1")
	api.Get("/health", h.health)
	api.Post("/parse", h.parse)
	api.Get("/uploads/:id/candidate", h.candidate)
	api.Get("/uploads/:id/questions", h.questions)
	api.Get("/candidates/export", h.exportXLSX)

	return &Server{app: app, log: log}
}

func (s *Server) Listen(addr string) error {
	s.log.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
