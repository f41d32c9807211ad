package model

import "time"

// MarketState reflects the trading session reported by the quote provider.
type MarketState string

const (
	MarketRegular MarketState = "REGULAR"
	MarketPre     MarketState = "PRE"
	MarketPost    MarketState = "POST"
	MarketClosed  MarketState = "CLOSED"
)

// StockQuote is a point-in-time quote. Change fields are nil when the
// provider did not report a usable previous close.
type StockQuote struct {
	Symbol        string      `json:"symbol"`
	Price         float64     `json:"price"`
	Currency      string      `json:"currency"`
	Change        *float64    `json:"change"`
	ChangePercent *float64    `json:"change_percent"`
	Volume        *int64      `json:"volume"`
	MarketCap     *int64      `json:"market_cap"`
	LastUpdated   time.Time   `json:"last_updated"`
	MarketState   MarketState `json:"market_state"`
}

// StockData is the detailed quote view. The shared fields mirror StockQuote
// so they can be copied over field-by-field.
type StockData struct {
	Symbol           string      `json:"symbol"`
	Price            float64     `json:"price"`
	Currency         string      `json:"currency"`
	Change           *float64    `json:"change"`
	ChangePercent    *float64    `json:"change_percent"`
	Volume           *int64      `json:"volume"`
	MarketCap        *int64      `json:"market_cap"`
	LastUpdated      time.Time   `json:"last_updated"`
	MarketState      MarketState `json:"market_state"`
	PreviousClose    *float64    `json:"previous_close"`
	FiftyTwoWeekHigh *float64    `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  *float64    `json:"fifty_two_week_low"`
	Exchange         string      `json:"exchange,omitempty"`
}

// BatchSummary counts the outcome of a batch quote request.
type BatchSummary struct {
	TotalRequested int `json:"total_requested"`
	Successful     int `json:"successful"`
	Failed         int `json:"failed"`
}

// BatchQuotesResult maps each requested ticker to its quote, nil for tickers
// that failed to resolve.
type BatchQuotesResult struct {
	Quotes  map[string]*StockQuote `json:"quotes"`
	Summary BatchSummary           `json:"summary"`
}
