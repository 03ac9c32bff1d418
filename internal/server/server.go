// Package server exposes the journal and mood endpoints over HTTP with echo.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/easeaico/aura/internal/journal"
	"github.com/easeaico/aura/internal/metrics"
	"github.com/easeaico/aura/internal/mood"
	"github.com/easeaico/aura/internal/types"
)

// JournalService is the journal use-case layer.
type JournalService interface {
	Create(ctx context.Context, sub types.JournalSubmission) (journal.EntryResponse, error)
	List(ctx context.Context) ([]journal.EntryResponse, error)
	Stats(ctx context.Context, rangeName string) (journal.Stats, error)
	Clear(ctx context.Context) (int64, error)
}

// MoodEngine classifies camera frames and audio clips.
type MoodEngine interface {
	AnalyzeVisual(ctx context.Context, img []byte, mimeType string) mood.Result
	Fuse(ctx context.Context, img []byte, mimeType string, clip []byte) mood.Result
}

// Pinger reports database health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds HTTP settings.
type Config struct {
	Addr        string
	StaticDir   string
	CORSOrigins []string
	BodyLimit   string
	Version     string
}

// Server is the HTTP surface.
type Server struct {
	echo    *echo.Echo
	cfg     Config
	journal JournalService
	moods   MoodEngine
	metrics *metrics.Metrics
	db      Pinger
}

// apiPrefixes are never served by the SPA fallback.
var apiPrefixes = []string{"/api/", "/journal/", "/mood/", "/analyze-", "/data/", "/metrics"}

// New builds the echo instance and registers routes. m and db may be nil.
func New(cfg Config, journalSvc JournalService, moods MoodEngine, m *metrics.Metrics, db Pinger) *Server {
	s := &Server{
		echo:    echo.New(),
		cfg:     cfg,
		journal: journalSvc,
		moods:   moods,
		metrics: m,
		db:      db,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(s.requestLogger)

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))
	if s.cfg.BodyLimit != "" {
		s.echo.Use(middleware.BodyLimit(s.cfg.BodyLimit))
	}

	if s.cfg.StaticDir != "" {
		s.echo.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  s.cfg.StaticDir,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				return isAPIPath(c.Request().URL.Path)
			},
		}))
	}
}

func (s *Server) setupRoutes() {
	s.echo.GET("/api/health", s.health)
	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))
	}

	s.echo.POST("/journal/entries", s.createEntry)
	s.echo.GET("/journal/entries", s.listEntries)
	s.echo.GET("/mood/stats", s.moodStats)
	s.echo.POST("/analyze-visual", s.analyzeVisual)
	s.echo.POST("/analyze-multi-modal", s.analyzeMultiModal)
	s.echo.DELETE("/data/clear", s.clearData)
}

// requestLogger logs each request and records it in metrics.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		elapsed := time.Since(start)

		req := c.Request()
		status := c.Response().Status
		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		slog.Info("http request",
			"method", req.Method,
			"path", path,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID))
		if s.metrics != nil {
			s.metrics.RecordHTTPRequest(req.Method, path, status, elapsed)
		}
		return nil
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("http server listening", "addr", s.cfg.Addr, "static_dir", s.cfg.StaticDir)
	if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func isAPIPath(path string) bool {
	for _, prefix := range apiPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
