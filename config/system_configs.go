package config

import (
	"os"
	"strconv"
	"strings"

	"backend/model"

	"github.com/joho/godotenv"
)

type SystemConfigs struct {
	Config *model.EnvConfig
}

// LoadConfigs reads the environment (a .env file is honored when present)
// and applies defaults for anything unset.
func LoadConfigs() (*SystemConfigs, error) {
	godotenv.Load()

	cfg := &model.EnvConfig{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		FrontendOrigins: strings.Split(getEnv("FRONTEND_ORIGINS",
			"http://localhost:3000,http://localhost:5173"), ","),

		YahooBaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
		SECBaseURL:   getEnv("SEC_EDGAR_BASE_URL", "https://data.sec.gov"),
		SECTickerURL: getEnv("SEC_TICKER_URL", "https://www.sec.gov/files/company_tickers.json"),
		SECUserAgent: getEnv("SEC_USER_AGENT", "Company Lookup Dashboard/2.0 (admin@example.com)"),

		StockTimeoutSeconds:   getEnvInt("STOCK_TIMEOUT_SECONDS", 10),
		RequestTimeoutSeconds: getEnvInt("REQUEST_TIMEOUT", 30),

		RateLimitPerMinute:      getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		RateLimitPerHour:        getEnvInt("RATE_LIMIT_PER_HOUR", 1000),
		BatchRateLimitPerMinute: getEnvInt("BATCH_RATE_LIMIT_PER_MINUTE", 10),
		BatchRateLimitPerHour:   getEnvInt("BATCH_RATE_LIMIT_PER_HOUR", 200),

		CacheTTLSeconds:    getEnvInt("CACHE_TTL_SECONDS", 300),
		FilingsTTLSeconds:  getEnvInt("FILINGS_TTL_SECONDS", 600),
		EnvelopeTTLSeconds: getEnvInt("ENVELOPE_TTL_SECONDS", 300),
		CacheCapacity:      getEnvInt("CACHE_CAPACITY", 2048),

		MinSearchQueryLength: getEnvInt("MIN_SEARCH_QUERY_LENGTH", 2),
		MaxSearchResults:     getEnvInt("MAX_SEARCH_RESULTS", 20),
		DefaultFilingsLimit:  getEnvInt("DEFAULT_FILINGS_LIMIT", 10),
		MaxFilingsPerRequest: getEnvInt("MAX_FILINGS_PER_REQUEST", 50),

		DirectoryRefreshMinutes: getEnvInt("DIRECTORY_REFRESH_MINUTES", 720),
	}

	return &SystemConfigs{Config: cfg}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
