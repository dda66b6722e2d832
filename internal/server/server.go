// Package server exposes the turn service over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/uniguide/internal/metrics"
	"github.com/alexanderramin/uniguide/internal/service"
	"github.com/gin-gonic/gin"
)

// Config is the dependency bag passed to New.
type Config struct {
	Addr        string
	Mode        string
	RatePerMin  int
	TurnTimeout time.Duration
	SessionID   string
	Turns       service.TurnService
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// Server is the gin-based HTTP adapter.
type Server struct {
	gin     *gin.Engine
	cfg     Config
	limiter *rateLimiter
	logger  *slog.Logger
}

// New validates cfg and registers all routes.
func New(cfg Config) (*Server, error) {
	if cfg.Turns == nil {
		return nil, errors.New("turn service is required")
	}
	if cfg.SessionID == "" {
		return nil, errors.New("session id is required")
	}
	if cfg.Mode == "" {
		cfg.Mode = gin.ReleaseMode
	}
	if cfg.RatePerMin <= 0 {
		cfg.RatePerMin = 60
	}
	if cfg.TurnTimeout <= 0 {
		cfg.TurnTimeout = 60 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gin.SetMode(cfg.Mode)

	srv := &Server{
		gin:     gin.New(),
		cfg:     cfg,
		limiter: newRateLimiter(cfg.RatePerMin),
		logger:  logger,
	}
	srv.mapHandlers()
	return srv, nil
}

// Handler returns the routed engine.
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) mapHandlers() {
	s.gin.Use(gin.Recovery(), s.requestMetrics())

	s.gin.GET("/healthz", s.healthCheck)
	s.gin.GET("/metrics", gin.WrapH(s.cfg.Metrics.Handler()))

	api := s.gin.Group("/api/v1")
	api.POST("/chat", s.rateLimit(), s.chat)
}

func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.Metrics == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		s.cfg.Metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.limiter.Allow(c.ClientIP()); err != nil {
			s.logger.Warn("request rate limited", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
