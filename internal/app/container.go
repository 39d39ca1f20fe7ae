package app

import (
	"fmt"

	"github.com/kapu/hsr-banner-tracker-go/internal/config"
	"github.com/kapu/hsr-banner-tracker-go/internal/server"
	"github.com/kapu/hsr-banner-tracker-go/internal/service"
	"go.uber.org/zap"
)

// Container bundles the assembled services. All construction happens in
// Build so the binary entry points stay focused on lifecycle.
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Tracker   *service.Tracker
	Store     *service.FileStore
	Cache     *service.PayloadCache
	Scheduler *service.RefreshScheduler
}

func Build(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	store := service.NewFileStore(cfg.Store.CacheFile, logger)

	// Redis is optional; a nil cache is a valid always-miss cache.
	var cache *service.PayloadCache
	if cfg.RedisEnabled() {
		var err error
		cache, err = service.NewPayloadCache(cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create payload cache: %w", err)
		}
	}

	banners := service.NewBannerScraper(cfg.Sources, logger)
	versions := service.NewVersionScraper(cfg.Sources, logger)
	tracker := service.NewTracker(banners, versions, store, cache, logger)

	var scheduler *service.RefreshScheduler
	if cfg.Refresh.Spec != "" {
		var err error
		scheduler, err = service.NewRefreshScheduler(cfg.Refresh.Spec, tracker, logger)
		if err != nil {
			cache.Close()
			return nil, fmt.Errorf("failed to create refresh scheduler: %w", err)
		}
	}

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Tracker:   tracker,
		Store:     store,
		Cache:     cache,
		Scheduler: scheduler,
	}, nil
}

// NewServer builds the HTTP server on top of the assembled services.
func (c *Container) NewServer() *server.Server {
	return server.New(c.Config.Server.Port, &server.Dependencies{
		Tracker: c.Tracker,
		Store:   c.Store,
		Cache:   c.Cache,
		Logger:  c.Logger,
	})
}

// Close releases held connections.
func (c *Container) Close() {
	c.Cache.Close()
}
