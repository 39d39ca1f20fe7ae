package service

import (
	"context"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/hsr-banner-tracker-go/internal/config"
	"github.com/kapu/hsr-banner-tracker-go/internal/domain"
	"github.com/kapu/hsr-banner-tracker-go/internal/util"
	"github.com/kapu/hsr-banner-tracker-go/pkg/errors"
	"go.uber.org/zap"
)

const (
	versionTableSelector         = "table.article-table"
	versionTableFallbackSelector = "table.wikitable"

	versionColumnLabel = "版本"
	titleColumnLabel   = "标题"
	dateColumnLabel    = "发布日期"

	releaseDateLayout = "2006-01-02"
)

// VersionScraper reads the latest release row off the fan wiki's version
// table and derives the next-version forecast from it.
type VersionScraper struct {
	httpClient *http.Client
	logger     *zap.Logger
	url        string
	userAgent  string
}

func NewVersionScraper(cfg config.SourcesConfig, logger *zap.Logger) *VersionScraper {
	return &VersionScraper{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		url:        cfg.VersionWikiURL,
		userAgent:  cfg.UserAgent,
	}
}

func (s *VersionScraper) Fetch(ctx context.Context) (*domain.VersionForecast, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.NewTransportError("failed to build request", "version_wiki", s.url, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransportError("version wiki unreachable", "version_wiki", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewTransportError(
			"version wiki returned status "+resp.Status, "version_wiki", s.url, nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.NewStructureError("version wiki HTML unparseable", "version_wiki", "document")
	}

	return s.parseVersionTable(doc)
}

func (s *VersionScraper) parseVersionTable(doc *goquery.Document) (*domain.VersionForecast, error) {
	table := doc.Find(versionTableSelector).First()
	if table.Length() == 0 {
		table = doc.Find(versionTableFallbackSelector).First()
	}
	if table.Length() == 0 {
		return nil, errors.NewStructureError("version table not found", "version_wiki", versionTableSelector)
	}

	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, errors.NewStructureError("version table has no rows", "version_wiki", "tr")
	}

	headerRow := table.Find("thead tr").First()
	if headerRow.Length() == 0 {
		headerRow = rows.First()
	}

	// Column labels decide the indexes, with positional fallback when the
	// wiki drops or relabels headers.
	versionIdx, titleIdx, dateIdx := 0, 1, 2
	headerRow.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		switch util.CollapseWhitespace(cell.Text()) {
		case versionColumnLabel:
			versionIdx = i
		case titleColumnLabel:
			titleIdx = i
		case dateColumnLabel:
			dateIdx = i
		}
	})

	if rows.Length() < 2 {
		return nil, errors.NewStructureError("version table has no data rows", "version_wiki", "tr")
	}

	// First data row is the latest release.
	latest := rows.Eq(1)
	cells := latest.Find("td")
	maxIdx := versionIdx
	if titleIdx > maxIdx {
		maxIdx = titleIdx
	}
	if dateIdx > maxIdx {
		maxIdx = dateIdx
	}
	if cells.Length() <= maxIdx {
		return nil, errors.NewStructureError("version row has too few columns", "version_wiki", "td")
	}

	version := util.CollapseWhitespace(cells.Eq(versionIdx).Text())

	titleCell := cells.Eq(titleIdx)
	title := util.CollapseWhitespace(titleCell.Text())
	if link := titleCell.Find("a").First(); link.Length() > 0 {
		title = util.CollapseWhitespace(link.Text())
	}

	dateText := util.CollapseWhitespace(cells.Eq(dateIdx).Text())
	releaseDate, err := time.Parse(releaseDateLayout, dateText)
	if err != nil {
		return nil, errors.NewDateParseError("release date unparseable", "version_wiki", dateText, err)
	}

	nextRelease, nextBroadcast := forecastNextVersion(releaseDate)

	s.logger.Info("Version wiki scraped",
		zap.String("version", version),
		zap.String("release_date", dateText),
		zap.String("next_release", nextRelease.Format(releaseDateLayout)))

	return &domain.VersionForecast{
		CurrentVersion:            version,
		CurrentVersionTitle:       title,
		CurrentVersionReleaseDate: releaseDate.Format(releaseDateLayout),
		NextVersionReleaseDate:    nextRelease.Format(releaseDateLayout),
		NextVersionBroadcastDate:  nextBroadcast.Format(releaseDateLayout),
	}, nil
}
