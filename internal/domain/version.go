package domain

// VersionForecast predicts the next patch dates from the latest known release.
// Dates are formatted YYYY-MM-DD.
type VersionForecast struct {
	CurrentVersion            string `json:"current_version"`
	CurrentVersionTitle       string `json:"current_version_title"`
	CurrentVersionReleaseDate string `json:"current_version_release_date"`
	NextVersionReleaseDate    string `json:"next_version_release_date"`
	NextVersionBroadcastDate  string `json:"next_version_broadcast_date"`
}

// ResultPayload is the top-level document served by the API and written to
// the cache file. VersionForecast is nil when the version wiki was
// unreachable or unparseable; banners keep their source table order.
type ResultPayload struct {
	GeneratedAt     string           `json:"generated_at"`
	LastUpdated     string           `json:"last_updated"`
	Banners         []*BannerRecord  `json:"banners"`
	VersionForecast *VersionForecast `json:"version_forecast,omitempty"`
}

// ErrorResult is the body returned when no cache exists and the live scrape
// failed. Served with status 200 for compatibility with existing clients.
type ErrorResult struct {
	Error string `json:"error"`
}
