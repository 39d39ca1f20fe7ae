package service

import (
	"context"
	"time"

	"github.com/kapu/hsr-banner-tracker-go/internal/domain"
	"github.com/kapu/hsr-banner-tracker-go/internal/util"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

const lastUpdatedLayout = "2006-01-02 15:04:05"

type bannerSource interface {
	Fetch(ctx context.Context) ([]*domain.BannerRecord, error)
}

type forecastSource interface {
	Fetch(ctx context.Context) (*domain.VersionForecast, error)
}

// Tracker runs a scrape cycle: both sources fetched independently, banner
// failures fatal for the cycle, version failures degrading the payload.
type Tracker struct {
	banners  bannerSource
	versions forecastSource
	store    *FileStore
	cache    *PayloadCache
	logger   *zap.Logger
}

func NewTracker(banners bannerSource, versions forecastSource, store *FileStore, cache *PayloadCache, logger *zap.Logger) *Tracker {
	return &Tracker{
		banners:  banners,
		versions: versions,
		store:    store,
		cache:    cache,
		logger:   logger,
	}
}

// Produce fetches and assembles a fresh payload without persisting it.
func (t *Tracker) Produce(ctx context.Context) (*domain.ResultPayload, error) {
	var (
		banners     []*domain.BannerRecord
		bannersErr  error
		forecast    *domain.VersionForecast
		forecastErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		banners, bannersErr = t.banners.Fetch(ctx)
	})
	wg.Go(func() {
		forecast, forecastErr = t.versions.Fetch(ctx)
	})
	wg.Wait()

	if bannersErr != nil {
		return nil, bannersErr
	}

	if forecastErr != nil {
		// Degraded payload: banners without the forecast block.
		t.logger.Warn("Version forecast unavailable", zap.Error(forecastErr))
		forecast = nil
	}

	now := util.NowCST()
	return &domain.ResultPayload{
		GeneratedAt:     now.Format(time.RFC3339),
		LastUpdated:     now.Format(lastUpdatedLayout),
		Banners:         banners,
		VersionForecast: forecast,
	}, nil
}

// Refresh runs one full cycle: scrape, cache, persist. A scrape failure
// returns (nil, err). A persistence failure still returns the computed
// payload alongside the error, so a live request can be answered from it.
func (t *Tracker) Refresh(ctx context.Context) (*domain.ResultPayload, error) {
	payload, err := t.Produce(ctx)
	if err != nil {
		return nil, err
	}

	t.cache.Set(ctx, payload)

	if err := t.store.Save(payload); err != nil {
		t.logger.Error("Failed to persist payload", zap.Error(err))
		return payload, err
	}

	return payload, nil
}
