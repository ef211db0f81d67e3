// Package web serves the meal page over HTTP, with health and metrics endpoints.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/etnz/schoolmeal"
	"github.com/etnz/schoolmeal/date"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"golang.org/x/time/rate"
)

// Server serves the meal page of one school.
type Server struct {
	cfg     *Config
	fetcher schoolmeal.Fetcher
	school  string
	table   schoolmeal.Recommendations
	limiter *rate.Limiter
	md      goldmark.Markdown
	today   func() date.Date
	srv     *http.Server
}

// New returns a server fetching meals from f. A nil cfg uses DefaultConfig.
func New(cfg *Config, f schoolmeal.Fetcher, school string) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Server{
		cfg:     cfg,
		fetcher: f,
		school:  school,
		table:   schoolmeal.DefaultRecommendations(),
		limiter: rate.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// charts are inline svg
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		today: date.Today,
	}
	s.srv = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.withMiddleware("page", s.handlePage))

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %q: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("serving meal page on http://%s", lis.Addr())
		if err := s.srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed", false)
		return
	}
	respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Timestamp: time.Now()})
}
