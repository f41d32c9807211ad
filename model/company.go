package model

import "time"

// MatchType classifies how a search query matched a directory entry.
type MatchType string

const (
	MatchExactTicker MatchType = "exact_ticker"
	MatchExactName   MatchType = "exact_name"
	MatchFuzzyName   MatchType = "fuzzy_name"
	MatchFuzzyTicker MatchType = "fuzzy_ticker"
)

// Exact reports whether the match came from an exact ticker or name hit.
func (m MatchType) Exact() bool {
	return m == MatchExactTicker || m == MatchExactName
}

// CompanyRecord is a single immutable entry of the company directory.
// CIK is always 10 digits, zero-padded.
type CompanyRecord struct {
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	CIK      string `json:"cik"`
	Exchange string `json:"exchange"`
}

// MatchResult pairs a directory entry with its score for one query.
type MatchResult struct {
	Company    CompanyRecord `json:"company"`
	MatchScore float64       `json:"match_score"`
	MatchType  MatchType     `json:"match_type"`
}

// SearchResult is the data payload of a company search.
type SearchResult struct {
	Query        string        `json:"query"`
	Results      []MatchResult `json:"results"`
	TotalResults int           `json:"total_results"`
	TookMs       int64         `json:"took_ms"`
	Suggestions  []string      `json:"suggestions,omitempty"`
}

// SearchSuggestion is one autocomplete entry of the suggestions endpoint.
type SearchSuggestion struct {
	Ticker    string    `json:"ticker"`
	Name      string    `json:"name"`
	MatchType MatchType `json:"match_type"`
}

// CompanyLookupResult is the data payload of a full company lookup.
type CompanyLookupResult struct {
	Company       CompanyRecord     `json:"company"`
	StockQuote    *StockQuote       `json:"stock_quote"`
	RecentFilings []Filing          `json:"recent_filings"`
	LastUpdated   time.Time         `json:"last_updated"`
	DataSources   map[string]string `json:"data_sources"`
}
