// Package server exposes the scraped payload over a small JSON API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kapu/hsr-banner-tracker-go/internal/domain"
	"github.com/kapu/hsr-banner-tracker-go/internal/service"
	"go.uber.org/zap"
)

type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

type Dependencies struct {
	Tracker *service.Tracker
	Store   *service.FileStore
	Cache   *service.PayloadCache
	Logger  *zap.Logger
}

func New(port int, deps *Dependencies) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	h := &wishHandler{deps: deps}
	router.GET("/healthz", h.Health)
	router.GET("/api/hsr_wish", h.GetWishData)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: deps.Logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

type wishHandler struct {
	deps *Dependencies
}

func (h *wishHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetWishData serves the payload cheapest-first: Redis copy, then the cache
// file verbatim, then a live scrape cycle. A total failure still answers 200
// with an error body; existing clients only look at the body.
func (h *wishHandler) GetWishData(c *gin.Context) {
	ctx := c.Request.Context()

	if payload, ok := h.deps.Cache.Get(ctx); ok {
		c.JSON(http.StatusOK, payload)
		return
	}

	raw, err := h.deps.Store.LoadRaw()
	if err != nil {
		h.deps.Logger.Warn("Cache file unreadable, falling back to live fetch", zap.Error(err))
	}
	if raw != nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
		return
	}

	payload, err := h.deps.Tracker.Refresh(ctx)
	if payload != nil {
		// Persistence failures were already logged; the computed payload
		// still answers this request.
		c.JSON(http.StatusOK, payload)
		return
	}

	h.deps.Logger.Error("Live fetch failed", zap.Error(err))
	c.JSON(http.StatusOK, domain.ErrorResult{Error: err.Error()})
}
