package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/easeaico/aura/internal/journal"
	"github.com/easeaico/aura/internal/types"
	"github.com/easeaico/aura/internal/utils"
)

type errorResponse struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

type mediaRequest struct {
	Image string `json:"image"`
	Audio string `json:"audio,omitempty"`
}

type healthResponse struct {
	Status    string   `json:"status"`
	Version   string   `json:"version,omitempty"`
	Database  string   `json:"database"`
	Endpoints []string `json:"endpoints"`
}

func (s *Server) health(c echo.Context) error {
	db := "ok"
	if s.db == nil {
		db = "unknown"
	} else if err := s.db.Ping(c.Request().Context()); err != nil {
		slog.Warn("database ping failed", "error", err.Error())
		db = "unavailable"
	}
	return c.JSON(http.StatusOK, healthResponse{
		Status:    "Aura API is running",
		Version:   s.cfg.Version,
		Database:  db,
		Endpoints: []string{"/journal/entries", "/mood/stats", "/analyze-visual", "/analyze-multi-modal", "/data/clear"},
	})
}

func (s *Server) createEntry(c echo.Context) error {
	var sub types.JournalSubmission
	if err := c.Bind(&sub); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
	}

	resp, err := s.journal.Create(c.Request().Context(), sub)
	if err != nil {
		var verr *journal.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, errorResponse{Detail: verr.Error(), Fields: verr.Fields})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Detail: "failed to save journal entry"})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) listEntries(c echo.Context) error {
	entries, err := s.journal.List(c.Request().Context())
	if err != nil {
		slog.Error("failed to list journal entries", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Detail: "failed to load journal entries"})
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) moodStats(c echo.Context) error {
	stats, err := s.journal.Stats(c.Request().Context(), c.QueryParam("range"))
	if err != nil {
		slog.Error("failed to load mood stats", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Detail: "failed to load mood stats"})
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) clearData(c echo.Context) error {
	n, err := s.journal.Clear(c.Request().Context())
	if err != nil {
		slog.Error("failed to clear journal", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Detail: "failed to clear journal entries"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "All entries deleted.", "deleted": n})
}

// analyzeVisual never fails on perceptual problems; a missing or undecodable image gets the canned reply.
func (s *Server) analyzeVisual(c echo.Context) error {
	var req mediaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
	}

	img, mimeType, err := decodeMedia(req.Image)
	if err != nil {
		slog.Warn("failed to decode image", "error", err.Error())
	}
	res := s.moods.AnalyzeVisual(c.Request().Context(), img, mimeType)
	if s.metrics != nil {
		s.metrics.RecordMood("visual", string(res.Mood))
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) analyzeMultiModal(c echo.Context) error {
	var req mediaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
	}
	if strings.TrimSpace(req.Image) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "image is required", Fields: map[string]string{"image": "is required"}})
	}

	img, mimeType, err := decodeMedia(req.Image)
	if err != nil {
		slog.Warn("failed to decode image", "error", err.Error())
	}
	clip, _, err := decodeMedia(req.Audio)
	if err != nil {
		slog.Warn("failed to decode audio", "error", err.Error())
	}

	res := s.moods.Fuse(c.Request().Context(), img, mimeType, clip)
	if s.metrics != nil {
		s.metrics.RecordMood("multi_modal", string(res.Mood))
	}
	return c.JSON(http.StatusOK, res)
}

// decodeMedia decodes a base64 payload, optionally wrapped in a data URL.
func decodeMedia(raw string) ([]byte, string, error) {
	payload, mimeType := utils.StripDataURL(raw)
	if payload == "" {
		return nil, mimeType, nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, mimeType, fmt.Errorf("failed to decode base64 payload: %w", err)
		}
	}
	return data, mimeType, nil
}
