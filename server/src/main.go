// server/src/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// Server ties the aggregator together: registry, fallback engine, live
// clients, cache, metrics and the HTTP front end.
type Server struct {
	cfg    Config
	logger log.Logger

	registry     *Registry
	engine       *FallbackEngine
	orchestrator *Orchestrator
	nasa         *NASAClient
	cache        *ResponseCache
	metrics      *MetricsCollector
	limiter      *IPRateLimiter

	httpServer  *http.Server
	httpsServer *http.Server
	wg          sync.WaitGroup
}

// NewServer wires every component from config. reg receives the Prometheus
// collectors; production passes the default registerer.
func NewServer(cfg Config, logger log.Logger, reg prometheus.Registerer) *Server {
	registry := NewRegistry(InitSolarSystemBodies())
	metrics := NewMetricsCollector(reg)
	engine := NewFallbackEngine(registry, logger)
	horizons := NewHorizonsClient(cfg.HorizonsTimeout, cfg.UpstreamRPS, logger)

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		engine:   engine,
		orchestrator: NewOrchestrator(registry, horizons, engine, metrics,
			logger, cfg.HorizonsTimeout),
		nasa:    NewNASAClient(cfg.NASAAPIKey, cfg.HorizonsTimeout, cfg.UpstreamRPS, logger),
		cache:   NewResponseCache(cfg.CacheTTL),
		metrics: metrics,
		limiter: NewIPRateLimiter(rate.Limit(float64(cfg.ClientRPM)/60.0), cfg.ClientRPM/10+1),
	}
	return s
}

// Start launches the API listener, the optional TLS listener and the
// metrics endpoint.
func (s *Server) Start() {
	go func() {
		if err := s.metrics.ServeMetrics(s.cfg.MetricsAddr); err != nil {
			level.Error(s.logger).Log("msg", "metrics server error", "err", err)
		}
	}()

	handler := s.routes()

	s.httpServer = &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 5 * time.Minute,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		level.Info(s.logger).Log("msg", "starting HTTP server", "addr", s.cfg.ListenAddr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			level.Error(s.logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	if s.cfg.EnableTLS {
		s.httpsServer = &http.Server{
			Addr:         ":443",
			Handler:      handler,
			TLSConfig:    setupTLS(s.cfg.TLSHosts),
			ReadTimeout:  2 * time.Minute,
			WriteTimeout: 5 * time.Minute,
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			level.Info(s.logger).Log("msg", "starting HTTPS server", "addr", ":443")
			if err := s.httpsServer.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
				level.Error(s.logger).Log("msg", "HTTPS server error", "err", err)
			}
		}()
	}
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			level.Warn(s.logger).Log("msg", "HTTP shutdown error", "err", err)
		}
	}
	if s.httpsServer != nil {
		if err := s.httpsServer.Shutdown(ctx); err != nil {
			level.Warn(s.logger).Log("msg", "HTTPS shutdown error", "err", err)
		}
	}
	s.wg.Wait()
}

// newLogger builds the process logger at the configured level.
func newLogger(logLevel string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

	var opt level.Option
	switch logLevel {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.NewLogfmtLogger(os.Stderr).Log("msg", "config error", "err", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	server := NewServer(cfg, logger, prometheus.DefaultRegisterer)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	server.Start()
	level.Info(logger).Log("msg", "solar system aggregator started",
		"bodies", server.registry.Len(), "listen", cfg.ListenAddr)

	<-signals
	level.Info(logger).Log("msg", "shutting down")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	server.Shutdown(ctx)

	level.Info(logger).Log("msg", "shutdown complete")
}
