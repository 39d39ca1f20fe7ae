package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kapu/hsr-banner-tracker-go/internal/config"
	"github.com/kapu/hsr-banner-tracker-go/pkg/errors"
	"go.uber.org/zap"
)

func newVersionScraperForURL(url string) *VersionScraper {
	return NewVersionScraper(config.SourcesConfig{
		VersionWikiURL: url,
		UserAgent:      "test-agent",
		Timeout:        5 * time.Second,
	}, zap.NewNop())
}

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
}

func TestVersionScraperReadsLabeledColumns(t *testing.T) {
	// Columns deliberately out of the usual order; labels must win over
	// positions.
	srv := serveHTML(t, `<html><body><table class="article-table">
		<thead><tr><th>发布日期</th><th>版本</th><th>标题</th></tr></thead>
		<tbody>
		<tr><td>2025-03-12</td><td>3.1</td><td><a href="/w">光坠之后</a></td></tr>
		<tr><td>2025-01-29</td><td>3.0</td><td>再创世的凯歌</td></tr>
		</tbody></table></body></html>`)
	defer srv.Close()

	forecast, err := newVersionScraperForURL(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if forecast.CurrentVersion != "3.1" {
		t.Fatalf("unexpected version: %q", forecast.CurrentVersion)
	}
	if forecast.CurrentVersionTitle != "光坠之后" {
		t.Fatalf("expected link text as title, got %q", forecast.CurrentVersionTitle)
	}
	if forecast.CurrentVersionReleaseDate != "2025-03-12" {
		t.Fatalf("unexpected release date: %q", forecast.CurrentVersionReleaseDate)
	}
	if forecast.NextVersionReleaseDate != "2025-04-23" {
		t.Fatalf("unexpected next release: %q", forecast.NextVersionReleaseDate)
	}
	if forecast.NextVersionBroadcastDate != "2025-04-11" {
		t.Fatalf("unexpected next broadcast: %q", forecast.NextVersionBroadcastDate)
	}
}

func TestVersionScraperPositionalFallback(t *testing.T) {
	// No recognizable header labels and no thead: columns 0/1/2 apply and
	// the first row is consumed as the header.
	srv := serveHTML(t, `<html><body><table class="wikitable">
		<tr><th>a</th><th>b</th><th>c</th></tr>
		<tr><td>3.1</td><td>光坠之后</td><td>2025-03-12</td></tr>
		</table></body></html>`)
	defer srv.Close()

	forecast, err := newVersionScraperForURL(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forecast.CurrentVersion != "3.1" || forecast.CurrentVersionTitle != "光坠之后" {
		t.Fatalf("unexpected forecast: %+v", forecast)
	}
}

func TestVersionScraperMissingTable(t *testing.T) {
	srv := serveHTML(t, "<html><body><p>nothing here</p></body></html>")
	defer srv.Close()

	_, err := newVersionScraperForURL(srv.URL).Fetch(context.Background())
	if !errors.IsStructureError(err) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestVersionScraperTooFewColumns(t *testing.T) {
	srv := serveHTML(t, `<html><body><table class="article-table">
		<tr><th>版本</th><th>标题</th><th>发布日期</th></tr>
		<tr><td>3.1</td></tr>
		</table></body></html>`)
	defer srv.Close()

	_, err := newVersionScraperForURL(srv.URL).Fetch(context.Background())
	if !errors.IsStructureError(err) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestVersionScraperUnparseableDate(t *testing.T) {
	srv := serveHTML(t, `<html><body><table class="article-table">
		<tr><th>版本</th><th>标题</th><th>发布日期</th></tr>
		<tr><td>3.1</td><td>光坠之后</td><td>2025年3月12日</td></tr>
		</table></body></html>`)
	defer srv.Close()

	_, err := newVersionScraperForURL(srv.URL).Fetch(context.Background())
	if !errors.IsDateParseError(err) {
		t.Fatalf("expected DateParseError, got %v", err)
	}
}

func TestVersionScraperTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newVersionScraperForURL(srv.URL).Fetch(context.Background())
	if !errors.IsTransportError(err) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}
