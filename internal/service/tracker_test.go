package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kapu/hsr-banner-tracker-go/internal/domain"
	"github.com/kapu/hsr-banner-tracker-go/pkg/errors"
	"go.uber.org/zap"
)

type fakeBannerSource struct {
	records []*domain.BannerRecord
	err     error
	calls   int
}

func (f *fakeBannerSource) Fetch(_ context.Context) ([]*domain.BannerRecord, error) {
	f.calls++
	return f.records, f.err
}

type fakeForecastSource struct {
	forecast *domain.VersionForecast
	err      error
}

func (f *fakeForecastSource) Fetch(_ context.Context) (*domain.VersionForecast, error) {
	return f.forecast, f.err
}

func newTestTracker(t *testing.T, banners *fakeBannerSource, versions *fakeForecastSource) (*Tracker, *FileStore) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "data.json"), zap.NewNop())
	return NewTracker(banners, versions, store, nil, zap.NewNop()), store
}

func TestTrackerProduceMergesBothSources(t *testing.T) {
	banners := &fakeBannerSource{records: testPayload().Banners}
	versions := &fakeForecastSource{forecast: testPayload().VersionForecast}
	tracker, _ := newTestTracker(t, banners, versions)

	payload, err := tracker.Produce(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payload.Banners) != 1 {
		t.Fatalf("expected 1 banner, got %d", len(payload.Banners))
	}
	if payload.VersionForecast == nil {
		t.Fatalf("expected forecast to be present")
	}
	if payload.GeneratedAt == "" || payload.LastUpdated == "" {
		t.Fatalf("expected timestamps, got %+v", payload)
	}
}

func TestTrackerBannerFailureIsFatal(t *testing.T) {
	banners := &fakeBannerSource{err: errors.NewNoRecordsError("no valid banner records", "banner_wiki")}
	versions := &fakeForecastSource{forecast: testPayload().VersionForecast}
	tracker, _ := newTestTracker(t, banners, versions)

	payload, err := tracker.Produce(context.Background())
	if payload != nil {
		t.Fatalf("expected no payload, got %+v", payload)
	}
	if !errors.IsNoRecordsError(err) {
		t.Fatalf("expected NoRecordsError, got %v", err)
	}
}

func TestTrackerForecastFailureDegrades(t *testing.T) {
	banners := &fakeBannerSource{records: testPayload().Banners}
	versions := &fakeForecastSource{err: errors.NewDateParseError("release date unparseable", "version_wiki", "soon™", nil)}
	tracker, _ := newTestTracker(t, banners, versions)

	payload, err := tracker.Produce(context.Background())
	if err != nil {
		t.Fatalf("expected degraded success, got %v", err)
	}
	if payload.VersionForecast != nil {
		t.Fatalf("expected forecast to be absent, got %+v", payload.VersionForecast)
	}
	if len(payload.Banners) != 1 {
		t.Fatalf("expected banners to survive, got %d", len(payload.Banners))
	}
}

func TestTrackerRefreshPersists(t *testing.T) {
	banners := &fakeBannerSource{records: testPayload().Banners}
	versions := &fakeForecastSource{forecast: testPayload().VersionForecast}
	tracker, store := newTestTracker(t, banners, versions)

	payload, err := tracker.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if saved == nil || saved.LastUpdated != payload.LastUpdated {
		t.Fatalf("expected persisted payload to match, got %+v", saved)
	}
}

func TestTrackerRefreshReturnsPayloadOnPersistFailure(t *testing.T) {
	banners := &fakeBannerSource{records: testPayload().Banners}
	versions := &fakeForecastSource{forecast: testPayload().VersionForecast}

	// Point the store at a directory path so the rename fails.
	dir := t.TempDir()
	store := NewFileStore(dir, zap.NewNop())
	tracker := NewTracker(banners, versions, store, nil, zap.NewNop())

	payload, err := tracker.Refresh(context.Background())
	if err == nil {
		t.Fatalf("expected a persistence error")
	}
	if payload == nil {
		t.Fatalf("expected the computed payload despite persistence failure")
	}
}
