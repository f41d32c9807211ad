package model

// EnvConfig holds all environment-derived settings.
type EnvConfig struct {
	Port        string
	Environment string

	FrontendOrigins []string

	// External providers
	YahooBaseURL          string
	SECBaseURL            string
	SECTickerURL          string
	SECUserAgent          string
	StockTimeoutSeconds   int
	RequestTimeoutSeconds int

	// Inbound rate limiting
	RateLimitPerMinute      int
	RateLimitPerHour        int
	BatchRateLimitPerMinute int
	BatchRateLimitPerHour   int

	// Caching
	CacheTTLSeconds    int
	FilingsTTLSeconds  int
	EnvelopeTTLSeconds int
	CacheCapacity      int

	// Search
	MinSearchQueryLength int
	MaxSearchResults     int
	DefaultFilingsLimit  int
	MaxFilingsPerRequest int

	// Directory refresh
	DirectoryRefreshMinutes int
}
