package service

import (
	"context"
	"sync"

	"backend/cache"
	"backend/limiter"
	"backend/model"
)

func testConfig() *model.EnvConfig {
	return &model.EnvConfig{
		CacheTTLSeconds:      300,
		FilingsTTLSeconds:    600,
		EnvelopeTTLSeconds:   300,
		CacheCapacity:        64,
		MinSearchQueryLength: 2,
		MaxSearchResults:     20,
		DefaultFilingsLimit:  10,
		MaxFilingsPerRequest: 50,
	}
}

func seededDirectory() *DirectoryService {
	d := NewDirectoryService(nil)
	d.Replace([]model.CompanyRecord{
		{Name: "Apple Inc.", Ticker: "AAPL", CIK: "0000320193", Exchange: "US"},
		{Name: "Microsoft Corporation", Ticker: "MSFT", CIK: "0000789019", Exchange: "US"},
		{Name: "Alphabet Inc.", Ticker: "GOOGL", CIK: "0001652044", Exchange: "US"},
		{Name: "Amazon.com, Inc.", Ticker: "AMZN", CIK: "0001018724", Exchange: "US"},
		{Name: "Tesla, Inc.", Ticker: "TSLA", CIK: "0001318605", Exchange: "US"},
	})
	return d
}

type fakeStockProvider struct {
	mu    sync.Mutex
	metas map[string]*model.ChartMeta
	errs  map[string]error
	calls map[string]int
}

func newFakeStockProvider() *fakeStockProvider {
	return &fakeStockProvider{
		metas: make(map[string]*model.ChartMeta),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *fakeStockProvider) FetchChart(ctx context.Context, symbol string) (*model.ChartMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[symbol]++
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	return f.metas[symbol], nil
}

func (f *fakeStockProvider) callCount(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[symbol]
}

type fakeFilingsProvider struct {
	mu    sync.Mutex
	sub   *model.SECSubmissionsResponse
	err   error
	calls int
}

func (f *fakeFilingsProvider) FetchSubmissions(ctx context.Context, cik string) (*model.SECSubmissionsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

func appleMeta() *model.ChartMeta {
	return &model.ChartMeta{
		Symbol:              "AAPL",
		Currency:            "usd",
		ExchangeName:        "NMS",
		MarketState:         "REGULAR",
		RegularMarketPrice:  123.456,
		PreviousClose:       120,
		RegularMarketVolume: 55_000_000,
		MarketCap:           3_000_000_000_000,
		RegularMarketTime:   1767225600,
		FiftyTwoWeekHigh:    199.99,
		FiftyTwoWeekLow:     101.5,
	}
}

func appleSubmissions() *model.SECSubmissionsResponse {
	sub := &model.SECSubmissionsResponse{CIK: "0000320193", EntityName: "Apple Inc."}
	sub.Filings.Recent = model.SECRecentFilings{
		AccessionNumber: []string{
			"0000320193-24-000123",
			"000032019324000100",
			"0000320193-24-000123",
			"0000320193-23-000077",
		},
		FilingDate:      []string{"2024-11-01", "2024-08-01", "2024-11-01", "2023-10-27"},
		Form:            []string{"10-K", "10-Q", "10-K", "10-K"},
		PrimaryDocument: []string{"aapl-20240928.htm", "aapl-20240629.htm", "dup.htm"},
		IsXBRL:          []int{1, 1, 1},
	}
	return sub
}

func testLimiter(perMinute int) *limiter.Limiter {
	return limiter.New(limiter.Limits{PerMinute: perMinute, PerHour: perMinute * 10})
}

func newTestCache() *cache.TTLCache {
	return cache.New(64)
}
