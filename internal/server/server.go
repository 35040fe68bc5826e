// Package server exposes the resolver over HTTP
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ppiankov/orgresolve/internal/logging"
	"github.com/ppiankov/orgresolve/internal/model"
	"github.com/ppiankov/orgresolve/internal/pipeline"
)

// Server is the HTTP boundary over a Pipeline
type Server struct {
	pipeline *pipeline.Pipeline
	engine   *gin.Engine
	http     *http.Server
}

// New builds the router for p
func New(p *pipeline.Pipeline, cfg model.ServerConfig) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{pipeline: p, engine: gin.New()}
	s.engine.Use(RequestID(), Recovery(), Metrics(), AccessLog())
	s.routes()

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.GET("/company-autocomplete", s.autocomplete)
	api.POST("/intelligent-search", s.intelligentSearch)
	api.GET("/data-supplement-status", s.supplementStatus)
	api.GET("/popular-companies", s.popular)
	api.GET("/company-info", s.companyInfo)
	api.POST("/companies", s.addCompany)
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info(ctx, "http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logging.Info(ctx, "http server shutting down")
	return s.http.Shutdown(shutdownCtx)
}
