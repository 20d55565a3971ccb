package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bureau-cli/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Config holds HTTP server options.
type Config struct {
	// Addr is the listen address.
	Addr string

	// UploadDir receives temporary upload files. Empty means the OS temp dir.
	UploadDir string

	// MaxUploadBytes caps the request body of an upload.
	MaxUploadBytes int64

	// RatePerSecond and Burst bound upload requests across all clients.
	RatePerSecond float64
	Burst         int
}

// ConfigFromSettings converts server settings into a Config.
func ConfigFromSettings(s domain.ServerSettings) Config {
	return Config{
		Addr:           s.Addr,
		UploadDir:      s.UploadDir,
		MaxUploadBytes: int64(s.MaxUploadMB) << 20,
		RatePerSecond:  s.RatePerSecond,
		Burst:          s.Burst,
	}
}

// Server serves the report API.
type Server struct {
	ingest  driving.IngestService
	reports driving.ReportService
	cfg     Config
	limiter *rate.Limiter
	router  chi.Router
}

// NewServer creates a server over the given services.
func NewServer(ingest driving.IngestService, reports driving.ReportService, cfg Config) (*Server, error) {
	if ingest == nil {
		return nil, errors.New("ingest service is required")
	}
	if reports == nil {
		return nil, errors.New("report service is required")
	}

	defaults := ConfigFromSettings(domain.DefaultAppSettings().Server)
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = defaults.RatePerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}

	s := &Server{
		ingest:  ingest,
		reports: reports,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.With(s.rateLimit).Post("/upload", s.handleUpload)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/pan/{pan}", s.handleReportByPAN)
		r.Get("/reports/{id}", s.handleGetReport)
	})

	return r
}

// Run serves HTTP on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", s.cfg.Addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// rateLimit rejects requests beyond the configured token bucket.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, ReasonRateLimited, "Too many requests", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("%s %s -> %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
