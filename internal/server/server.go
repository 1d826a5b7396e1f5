package server

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/julianstephens/tend/internal/auth"
	"github.com/julianstephens/tend/internal/config"
	"github.com/julianstephens/tend/internal/dateutil"
	apperrors "github.com/julianstephens/tend/internal/errors"
	"github.com/julianstephens/tend/internal/logger"
	"github.com/julianstephens/tend/internal/storage"
)

// Server wires the storage provider and token issuer into the HTTP API.
type Server struct {
	store    storage.Provider
	issuer   *auth.TokenIssuer
	clock    dateutil.Clock
	validate *validator.Validate
}

func New(cfg config.Config, store storage.Provider) *Server {
	return &Server{
		store:    store,
		issuer:   auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour),
		clock:    dateutil.SystemClock{},
		validate: validator.New(),
	}
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestLogger)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api")
	api.Post("/auth/register", s.register)
	api.Post("/auth/login", s.login)

	authed := api.Group("", auth.Middleware(s.issuer))

	authed.Get("/habits", s.listHabits)
	authed.Post("/habits", s.createHabit)
	authed.Get("/habits/:id", s.getHabit)
	authed.Put("/habits/:id", s.updateHabit)
	authed.Delete("/habits/:id", s.deleteHabit)
	authed.Post("/habits/:id/restore", s.restoreHabit)

	authed.Post("/habits/:id/completions", s.toggleCompletion)
	authed.Get("/habits/:id/completions", s.listCompletions)
	authed.Post("/completions/batch", s.batchCompletions)

	authed.Get("/habits/:id/summary", s.habitSummary)
	authed.Get("/reports/overview", s.overviewReport)
	authed.Get("/reports/journal", s.journalReport)
	authed.Get("/habits/:id/correlation", s.correlationReport)

	authed.Get("/notes", s.listNotes)
	authed.Get("/notes/:day", s.getNote)
	authed.Put("/notes/:day", s.saveNote)
	authed.Delete("/notes/:day", s.deleteNote)

	authed.Get("/options", s.getOptions)
	authed.Put("/options", s.saveOptions)

	return app
}

// requestLogger assigns a request id and logs method, path, status and
// latency for every request.
func requestLogger(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = utils.UUID()
	}
	c.Set("X-Request-ID", id)

	start := time.Now()
	err := c.Next()
	logger.Info("request",
		"id", id,
		"method", c.Method(),
		"path", c.OriginalURL(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start))
	return err
}

// errorHandler maps application errors onto HTTP statuses. Core precondition
// violations surface as 400s here; missing records become 404s.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
	case errors.Is(err, storage.ErrNotFound):
		status = fiber.StatusNotFound
	default:
		switch apperrors.KindOf(err) {
		case apperrors.KindInvalid:
			status = fiber.StatusBadRequest
		case apperrors.KindNotFound:
			status = fiber.StatusNotFound
		case apperrors.KindUnauthorized:
			status = fiber.StatusUnauthorized
		case apperrors.KindConflict:
			status = fiber.StatusConflict
		}
	}

	if status == fiber.StatusInternalServerError {
		logger.Error("request failed", "path", c.OriginalURL(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
