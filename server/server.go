package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/poiesic/gamerec/core"
	"github.com/poiesic/gamerec/present"
	"golang.org/x/sync/singleflight"
)

// Recommender is the core the server exposes.
type Recommender interface {
	Recommend(ctx context.Context, query, tone string) ([]present.Recommendation, error)
	GameCount() int
	ChunkCount() int
	Manifest() core.Manifest
}

// Server is the HTTP boundary around a Recommender.
type Server struct {
	rec             Recommender
	router          *gin.Engine
	cache           *resultCache[[]present.Recommendation]
	group           singleflight.Group
	logger          *slog.Logger
	cacheSize       int
	cacheTTL        time.Duration
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithCache keeps up to size results for ttl. A size of 0 disables caching.
func WithCache(size int, ttl time.Duration) Option {
	return func(s *Server) error {
		s.cacheSize = size
		s.cacheTTL = ttl
		return nil
	}
}

// WithTimeouts sets the HTTP read and write timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) error {
		s.readTimeout = read
		s.writeTimeout = write
		return nil
	}
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests.
// Default is 5s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) error {
		s.shutdownTimeout = d
		return nil
	}
}

// New creates a server for rec.
func New(rec Recommender, opts ...Option) (*Server, error) {
	s := &Server{
		rec:             rec,
		logger:          slog.Default(),
		readTimeout:     10 * time.Second,
		writeTimeout:    60 * time.Second,
		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "server")

	cache, err := newResultCache[[]present.Recommendation](s.cacheSize, s.cacheTTL)
	if err != nil {
		return nil, err
	}
	s.cache = cache

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(recovery(s.logger))
	r.Use(requestID())
	r.Use(accessLog(s.logger))
	r.Use(corsPolicy())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.POST("/recommend", s.handleRecommend)
	r.GET("/test", s.handleTest)
	r.GET("/health", s.handleHealth)
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
