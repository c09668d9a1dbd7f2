package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"connectivity-api/internal/config"
	"connectivity-api/internal/models"
)

// Version is reported by the health endpoints.
const Version = "1.0.0"

// Server handles web requests
type Server struct {
	cfg    config.Config
	prober models.Prober
	log    *zap.Logger
	srv    *http.Server
}

// New creates a new web server
func New(cfg config.Config, prober models.Prober, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{cfg: cfg, prober: prober, log: log}
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.Handler(),
		// Write timeout must outlast the slowest probe (traceroute, 60s).
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.TracerouteTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Handler builds the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ping", s.handlePing)
	mux.HandleFunc("/ping/chart", s.handlePingChart)
	mux.HandleFunc("/ping/bulk", s.handleBulkPing)
	mux.HandleFunc("/traceroute", s.handleTraceroute)
	mux.HandleFunc("/allowed-hosts", s.handleAllowedHosts)

	return s.withRequestLog(mux)
}

// Start starts the web server
func (s *Server) Start() error {
	s.log.Info("web server starting", zap.Int("port", s.cfg.Port))
	return s.srv.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
