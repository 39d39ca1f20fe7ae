package service

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/hsr-banner-tracker-go/internal/config"
	"github.com/kapu/hsr-banner-tracker-go/internal/domain"
	"github.com/kapu/hsr-banner-tracker-go/internal/util"
	"github.com/kapu/hsr-banner-tracker-go/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Selectors and labels form the implicit contract with the biligame wish
// page; when the wiki redesigns, these are what break.
const (
	bannerContainerSelector = `div.row[style="margin:0 -5px;"]`
	bannerTableSelector     = "table.wikitable"

	timeHeaderLabel    = "时间"
	versionHeaderLabel = "版本"
	characterMarker    = "角色"

	unknownTimeRange = "时间未知"
)

var (
	fiveStarHeaderPattern = regexp.MustCompile(`5星(角色|光锥)`)
	fourStarHeaderPattern = regexp.MustCompile(`4星(角色|光锥)`)
)

// BannerScraper pulls the wish schedule tables off the banner wiki and
// normalizes them into BannerRecords.
type BannerScraper struct {
	httpClient *http.Client
	logger     *zap.Logger
	url        string
	userAgent  string
}

func NewBannerScraper(cfg config.SourcesConfig, logger *zap.Logger) *BannerScraper {
	return &BannerScraper{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		url:        cfg.BannerWikiURL,
		userAgent:  cfg.UserAgent,
	}
}

// Fetch scrapes every banner table in document order. Tables without a
// 5-star field are skipped silently; zero usable tables is an error distinct
// from transport failure.
func (s *BannerScraper) Fetch(ctx context.Context) ([]*domain.BannerRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.NewTransportError("failed to build request", "banner_wiki", s.url, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransportError("banner wiki unreachable", "banner_wiki", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewTransportError(
			"banner wiki returned status "+resp.Status, "banner_wiki", s.url, nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.NewStructureError("banner wiki HTML unparseable", "banner_wiki", "document")
	}

	container := doc.Find(bannerContainerSelector)
	if container.Length() == 0 {
		return nil, errors.NewStructureError("no banner data located", "banner_wiki", bannerContainerSelector)
	}

	records := make([]*domain.BannerRecord, 0, 8)
	skipped := 0
	container.Find(bannerTableSelector).Each(func(i int, table *goquery.Selection) {
		record := s.parseBannerTable(table.Get(0))
		if record == nil {
			skipped++
			return
		}
		records = append(records, record)
	})

	if len(records) == 0 {
		return nil, errors.NewNoRecordsError("no valid banner records", "banner_wiki")
	}

	s.logger.Info("Banner wiki scraped",
		zap.Int("banners", len(records)),
		zap.Int("skipped_tables", skipped))

	return records, nil
}

// parseBannerTable assembles one BannerRecord, or nil when the table has no
// 5-star field and is presumed not to be a banner table.
func (s *BannerScraper) parseBannerTable(table *html.Node) *domain.BannerRecord {
	five := findFieldRegex(table, fiveStarHeaderPattern)
	if five == nil {
		return nil
	}

	record := &domain.BannerRecord{
		Version:         unknownVersion,
		FiveStarKind:    rewardKindFromHeader(five.Header),
		FiveStarContent: util.CollapseWhitespace(nodeText(five.Cell)),
	}
	record.PoolType = domain.PoolTypeFor(record.FiveStarKind)

	rawTime := unknownTimeRange
	if tm := findField(table, timeHeaderLabel); tm != nil {
		rawTime = util.StripTabs(nodeText(tm.Cell))
	}
	record.TimeRangeRaw = util.CollapseWhitespace(rawTime)
	record.Start, record.End = parseTimeRange(rawTime)

	if ver := findField(table, versionHeaderLabel); ver != nil {
		text := util.CollapseWhitespace(nodeText(ver.Cell))
		if m := versionPattern.FindString(text); m != "" {
			record.Version = m
		} else {
			record.Version = text
		}
	}

	if four := findFieldRegex(table, fourStarHeaderPattern); four != nil {
		record.FourStarKind = rewardKindFromHeader(four.Header)
		record.FourStarContent = strings.Join(cellItems(four.Cell), ", ")
	}

	return record
}

func rewardKindFromHeader(header string) domain.RewardKind {
	if strings.Contains(header, characterMarker) {
		return domain.RewardKindCharacter
	}
	return domain.RewardKindLightCone
}
