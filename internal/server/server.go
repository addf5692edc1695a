package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/glbctl/glb"
	"github.com/danmuck/glbctl/internal/config"
	"github.com/danmuck/glbctl/internal/inspect"
	"github.com/danmuck/glbctl/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP inspection service.
type Server struct {
	Node     string
	Addr     string
	Appeared time.Time

	maxContainerBytes uint32
	inspector         *inspect.Inspector
	logger            zerolog.Logger
	router            *gin.Engine
}

func New(cfg config.ServerConfig, logger zerolog.Logger) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Node))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  normalizeOrigins(cfg.CorsOrigins),
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Encoding"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		Node:              cfg.Node,
		Addr:              cfg.Addr,
		Appeared:          time.Now(),
		maxContainerBytes: cfg.MaxContainerBytes,
		inspector: inspect.New(inspect.Options{
			Limits:   glb.Limits{MaxLength: cfg.MaxContainerBytes},
			PoolSize: cfg.BufferPoolSize,
			Logger:   logger,
		}),
		logger: logger,
		router: r,
	}
	s.RegisterRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on s.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("node", s.Node).Str("addr", s.Addr).Msg("inspection service listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
