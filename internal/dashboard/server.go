package dashboard

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/akshaytechonsy/postdeck/internal/domain"
	"github.com/akshaytechonsy/postdeck/internal/feed"
)

// Server is the presentation boundary: a JSON state API for the client app
// plus a server-rendered chart page.
type Server struct {
	app  *fiber.App
	feed *feed.Service
	log  *zap.Logger
}

func New(svc *feed.Service, log *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	s := &Server{app: app, feed: svc, log: log}

	app.Get("/", s.handleDashboard)
	app.Get("/api/feed", s.handleFeed)
	app.Post("/api/refresh", s.handleRefresh)
	app.Post("/api/generate", s.handleGenerate)

	return s
}

func (s *Server) Listen(port string) error {
	s.log.Info("dashboard listening", zap.String("port", port))
	return s.app.Listen(":" + port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleFeed(c *fiber.Ctx) error {
	return c.JSON(s.feed.Snapshot())
}

func (s *Server) handleRefresh(c *fiber.Ctx) error {
	// A refresh runs to completion even if the client goes away.
	if err := s.feed.Refresh(context.WithoutCancel(c.UserContext())); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(s.feed.Snapshot())
	}
	return c.JSON(s.feed.Snapshot())
}

func (s *Server) handleGenerate(c *fiber.Ctx) error {
	err := s.feed.Generate(context.WithoutCancel(c.UserContext()))
	switch {
	case errors.Is(err, domain.ErrGenerationInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case err != nil:
		return c.Status(fiber.StatusBadGateway).JSON(s.feed.Snapshot())
	}
	return c.JSON(s.feed.Snapshot())
}
