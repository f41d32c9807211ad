package model

// YahooChartResponse is the top-level container of the v8 chart endpoint.
type YahooChartResponse struct {
	Chart ChartData `json:"chart"`
}

type ChartData struct {
	Result []ChartResult  `json:"result"`
	Error  *YahooAPIError `json:"error"`
}

type YahooAPIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ChartResult struct {
	Meta ChartMeta `json:"meta"`
}

// ChartMeta carries the quote fields we read from the chart metadata block.
type ChartMeta struct {
	Symbol              string  `json:"symbol"`
	Currency            string  `json:"currency"`
	ExchangeName        string  `json:"exchangeName"`
	MarketState         string  `json:"marketState"`
	RegularMarketPrice  float64 `json:"regularMarketPrice"`
	PreviousClose       float64 `json:"previousClose"`
	ChartPreviousClose  float64 `json:"chartPreviousClose"`
	RegularMarketVolume int64   `json:"regularMarketVolume"`
	MarketCap           int64   `json:"marketCap"`
	RegularMarketTime   int64   `json:"regularMarketTime"`
	FiftyTwoWeekHigh    float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow     float64 `json:"fiftyTwoWeekLow"`
}
