// Package api serves the visualization pipeline over HTTP.
//
// # Routes
//
//	POST /model-to-vis                  body: DFJSON or DFpkl model
//	POST /model-comparison-to-vis       multipart form: base, incoming
//	POST /model-envelope-edges-to-vis   body: DFJSON or DFpkl model
//	GET  /healthz
//	GET  /metrics                       Prometheus exposition
//
// Options travel as query parameters named like the CLI flags with
// dashes turned into underscores (output_format, color_by, room_attr, ...).
// Responses carry the serialized output with X-Cache set to hit or miss.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ladybug-tools/dragonfly-display/pkg/buildinfo"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/observability"
	"github.com/ladybug-tools/dragonfly-display/pkg/output"
	"github.com/ladybug-tools/dragonfly-display/pkg/pipeline"
)

// DefaultMaxUpload caps request bodies when Server.MaxUpload is zero.
const DefaultMaxUpload = 64 << 20

// Server handles visualization requests.
type Server struct {
	Runner    *pipeline.Runner
	Formatter *output.Formatter
	// Defaults seed the options of every request before query parameters
	// are applied.
	Defaults      pipeline.Options
	DefaultFormat string
	MaxUpload     int64
	// Gatherer backs /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer
	Logger   *log.Logger
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metricsHandler())
	r.Post("/model-to-vis", s.handleModelToVis)
	r.Post("/model-comparison-to-vis", s.handleComparison)
	r.Post("/model-envelope-edges-to-vis", s.handleEnvelope)
	return r
}

func (s *Server) metricsHandler() http.Handler {
	if s.Gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})
}

// observe reports every request to the HTTP hooks and the log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		observability.HTTP().OnRequest(r.Context(), r.Method, route)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger().Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

func (s *Server) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger().Debug("write response", "error", err)
	}
}

type errorBody struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string, details map[string]any) {
	s.writeJSON(w, status, errorBody{Error: code, Message: message, Details: details})
}

// fail maps err to its HTTP status and writes it.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := string(errors.GetCodeOr(err, errors.ErrCodeInternal))
	if status >= http.StatusInternalServerError {
		s.logger().Error("request failed", "path", r.URL.Path, "error", err)
	}
	s.writeError(w, status, code, errors.UserMessage(err), nil)
}
