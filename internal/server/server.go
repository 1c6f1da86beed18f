// Package server exposes the dashboard page, a JSON API over the same tools,
// and the health and metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"strconv"
	"time"

	"tool-dashboard/internal/common/audit"
	"tool-dashboard/internal/common/errors"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/toolkit"
	"tool-dashboard/internal/router"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
	maxBodyBytes        = 1 << 20
)

type Server struct {
	router  *router.Router
	logger  logger.Logger
	history audit.HistoryReader
	ready   func(ctx context.Context) error
	page    *template.Template
	title   string
	version string
	mux     *chi.Mux
}

type Options struct {
	Logger logger.Logger
	// History backs GET /api/history. Nil disables the endpoint.
	History audit.HistoryReader
	// Ready is consulted by GET /ready. Nil means always ready.
	Ready   func(ctx context.Context) error
	Title   string
	Version string
	// Metrics replaces the default Prometheus handler.
	Metrics http.Handler
}

func New(r *router.Router, opts Options) (*Server, error) {
	if r == nil {
		return nil, fmt.Errorf("router is required")
	}

	page, err := parsePage()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := &Server{
		router:  r,
		logger:  log,
		history: opts.History,
		ready:   opts.Ready,
		page:    page,
		title:   opts.Title,
		version: opts.Version,
	}
	if s.title == "" {
		s.title = "All-in-One Dashboard"
	}

	metricsHandler := opts.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(s.requestLogger)
	mux.Use(middleware.Recoverer)

	mux.Get("/", s.handlePage)
	mux.Post("/tools/{tool}", s.handleSubmit)

	mux.Route("/api", func(api chi.Router) {
		api.Get("/tools", s.handleCatalog)
		api.Post("/tools/{tool}", s.handleAPISubmit)
		api.Get("/history", s.handleHistory)
	})

	mux.Get("/health", s.handleHealth)
	mux.Get("/ready", s.handleReady)
	mux.Handle("/metrics", metricsHandler)

	s.mux = mux
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ==========================
// Page
// ==========================

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: s.title, Tools: s.router.Descriptors()}

	if name := r.URL.Query().Get("tool"); name != "" {
		d, ok := s.router.Lookup(name)
		if !ok {
			data.Outcome = toolkit.Failure(name, errors.NewToolNotFoundError(name))
			s.render(w, http.StatusNotFound, data)
			return
		}
		data.Active = &d
	} else if len(data.Tools) > 0 {
		data.Active = &data.Tools[0]
	}

	s.render(w, http.StatusOK, data)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tool")
	data := pageData{Title: s.title, Tools: s.router.Descriptors()}

	d, ok := s.router.Lookup(name)
	if !ok {
		data.Outcome = s.router.Dispatch(r.Context(), name, toolkit.Form{})
		s.render(w, http.StatusNotFound, data)
		return
	}
	data.Active = &d

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		data.Outcome = toolkit.Failure(name, errors.NewValidationError("unreadable form body"))
		s.render(w, http.StatusBadRequest, data)
		return
	}

	form := toolkit.FormFromValues(r.PostForm, d.Fields)
	data.Values = form
	data.Outcome = s.router.Dispatch(r.Context(), name, form)

	s.render(w, http.StatusOK, data)
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("Failed to render page", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// ==========================
// JSON API
// ==========================

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.router.Catalog(s.version)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (s *Server) handleAPISubmit(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tool")

	d, ok := s.router.Lookup(name)
	if !ok {
		outcome := s.router.Dispatch(r.Context(), name, toolkit.Form{})
		writeJSON(w, statusFor(outcome), outcome)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	form, err := readForm(r, d.Fields)
	if err != nil {
		outcome := toolkit.Failure(name, errors.NewValidationError(err.Error()))
		writeJSON(w, http.StatusBadRequest, outcome)
		return
	}

	outcome := s.router.Dispatch(r.Context(), name, form)
	writeJSON(w, statusFor(outcome), outcome)
}

// readForm accepts a flat JSON object of strings or a urlencoded form.
func readForm(r *http.Request, fields []toolkit.Field) (toolkit.Form, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("body must be a JSON object of string fields: %v", err)
		}
		return toolkit.FormFromMap(body, fields), nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("unreadable form body: %v", err)
	}
	return toolkit.FormFromValues(r.PostForm, fields), nil
}

func statusFor(outcome *toolkit.Outcome) int {
	switch errors.ErrorCode(outcome.ErrorCode) {
	case errors.ErrCodeToolNotFound, errors.ErrCodeToolDisabled:
		return http.StatusNotFound
	case errors.ErrCodeValidationFailed, errors.ErrCodeInvalidArgument:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusOK
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "submission history is not enabled"})
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to read submission history", map[string]interface{}{
			"error": err.Error(),
		})
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
		return
	}
	if records == nil {
		records = []audit.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// ==========================
// Health
// ==========================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestLogger logs one line per request. Form values are never logged.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("HTTP request", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		})
	})
}
