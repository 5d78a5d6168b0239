package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/abaddouh/igazolo/internal/metrics"
	"github.com/abaddouh/igazolo/internal/output"
	"github.com/abaddouh/igazolo/internal/stamper"
)

const (
	serviceName = "igazolas-api"
	usage       = "GET /generate?from_date=YYYY-MM-DD&to_date=YYYY-MM-DD"
	example     = "GET /generate?from_date=2025-12-01&to_date=2025-12-05"
)

// Renderer is the part of the stamper the server needs.
type Renderer interface {
	Render(from, to stamper.Date) (*stamper.Result, error)
}

type Server struct {
	port     int
	renderer Renderer
	quality  int
	metrics  *metrics.Metrics
	logger   *slog.Logger
	srv      *http.Server
}

func New(port int, renderer Renderer, quality int, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Server{
		port:     port,
		renderer: renderer,
		quality:  quality,
		metrics:  m,
		logger:   logger,
	}
}

// Handler returns the routed handler, wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", s.generateHandler)
	mux.HandleFunc("/health", s.healthHandler)
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/", s.indexHandler)
	return s.withRequestID(mux)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting HTTP server", "port", s.port)

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	q := r.URL.Query()
	fromText := q.Get("from_date")
	if fromText == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "Missing required parameter: from_date",
			"usage":   usage,
			"example": example,
		})
		return
	}

	start := time.Now()
	args := []string{fromText}
	if to := q.Get("to_date"); to != "" {
		args = append(args, to)
	}

	from, to, err := stamper.ParseRange(args)
	if err != nil {
		s.fail(w, err, start)
		return
	}
	res, err := s.renderer.Render(from, to)
	if err != nil {
		s.fail(w, err, start)
		return
	}

	var buf bytes.Buffer
	if err := output.EncodeJPEG(&buf, res.Image, s.quality); err != nil {
		s.fail(w, err, start)
		return
	}
	s.metrics.RecordStamp("success", time.Since(start))

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error, start time.Time) {
	status := http.StatusInternalServerError
	result := string(stamper.KindIO)

	var se *stamper.Error
	if errors.As(err, &se) {
		result = string(se.Kind)
		if se.Kind == stamper.KindInput {
			status = http.StatusBadRequest
		}
	}
	s.metrics.RecordStamp(result, time.Since(start))

	s.logger.Warn("generate failed", "error", err, "status", status)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	type param struct {
		Required    bool   `json:"required"`
		Format      string `json:"format"`
		Description string `json:"description"`
	}
	type endpoint struct {
		Method      string           `json:"method"`
		Description string           `json:"description"`
		Parameters  map[string]param `json:"parameters,omitempty"`
		Examples    []string         `json:"examples,omitempty"`
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"service": "Igazolas Image Generator API",
		"endpoints": map[string]endpoint{
			"/generate": {
				Method:      http.MethodGet,
				Description: "Generate igazolas image with dates",
				Parameters: map[string]param{
					"from_date": {Required: true, Format: "YYYY-MM-DD or YYYY.MM.DD", Description: "Start date for the certificate"},
					"to_date":   {Required: false, Format: "YYYY-MM-DD or YYYY.MM.DD", Description: "End date for the certificate (defaults to from_date)"},
				},
				Examples: []string{
					"/generate?from_date=2025-12-01",
					"/generate?from_date=2025-12-01&to_date=2025-12-05",
					"/generate?from_date=2025.12.01&to_date=2025.12.05",
				},
			},
			"/health": {
				Method:      http.MethodGet,
				Description: "Health check endpoint",
			},
			"/metrics": {
				Method:      http.MethodGet,
				Description: "Prometheus metrics",
			},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
