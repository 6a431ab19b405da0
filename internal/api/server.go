// Package api exposes the catalog over HTTP.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/showdeck/showdeck/internal/auth"
	"github.com/showdeck/showdeck/internal/catalog"
	"github.com/showdeck/showdeck/internal/config"
	"github.com/showdeck/showdeck/internal/library"
	"github.com/showdeck/showdeck/internal/userstate"
)

// Server handles HTTP requests for the ShowDeck API.
type Server struct {
	echo   *echo.Echo
	db     *sql.DB
	logger zerolog.Logger
	cfg    *config.Config

	libraryService *library.Service
	stateService   *userstate.Service
	authService    *auth.Service
	enricher       *catalog.Enricher
}

// NewServer creates a new API server instance.
func NewServer(db *sql.DB, cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	authService, err := auth.NewService(db, cfg.Auth.JWTSecret)
	if err != nil {
		return nil, err
	}

	stateService := userstate.NewService(db, logger)

	s := &Server{
		echo:           e,
		db:             db,
		logger:         logger,
		cfg:            cfg,
		libraryService: library.NewService(db, logger),
		stateService:   stateService,
		authService:    authService,
		enricher:       catalog.NewEnricher(stateService, logger),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(requestID())
	s.echo.Use(middleware.BodyLimit("1M"))
}

// Start begins serving HTTP requests. It blocks until the server stops.
func (s *Server) Start(address string) error {
	s.logger.Info().Str("address", address).Msg("Starting HTTP server")
	if err := s.echo.Start(address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
