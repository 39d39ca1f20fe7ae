package service

import (
	"regexp"
	"strings"

	"github.com/kapu/hsr-banner-tracker-go/internal/util"
)

var (
	datetimePattern = regexp.MustCompile(`\d{4}/\d{1,2}/\d{1,2} \d{1,2}:\d{2}`)
	versionPattern  = regexp.MustCompile(`(\d+\.\d+)`)
)

// versionTriggerMarker appears in time cells for banners that open when a
// version rolls out instead of at a fixed timestamp ("after the X.Y update").
const versionTriggerMarker = "版本更新后"

const unknownVersion = "未知版本"

// parseTimeRange splits a free-text banner time range into start and end.
//
// The wikis are inconsistent, so matching runs in priority order: two
// recognizable timestamps win outright; a single timestamp is an end time,
// with the start either empty or a version-trigger qualifier; with no
// timestamp at all the text is split on the first known separator, and as a
// last resort returned whole as the start.
func parseTimeRange(raw string) (start, end string) {
	text := util.CollapseWhitespace(raw)

	dates := datetimePattern.FindAllString(text, -1)
	switch len(dates) {
	case 2:
		return dates[0], dates[1]
	case 1:
		if strings.Contains(text, versionTriggerMarker) {
			version := unknownVersion
			if m := versionPattern.FindString(text); m != "" {
				version = m
			}
			return version + versionTriggerMarker, dates[0]
		}
		return "", dates[0]
	}

	for _, sep := range []string{"~", "-", "至"} {
		if strings.Contains(text, sep) {
			parts := strings.SplitN(text, sep, 2)
			if len(parts) == 2 {
				return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
			}
		}
	}

	return text, ""
}
