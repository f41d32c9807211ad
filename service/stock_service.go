package service

import (
	"context"
	"math"
	"strings"
	"time"

	"backend/cache"
	"backend/model"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// StockProvider is the outbound surface the stock service needs; the Yahoo
// client satisfies it.
type StockProvider interface {
	FetchChart(ctx context.Context, symbol string) (*model.ChartMeta, error)
}

type StockService interface {
	// GetQuote returns the quote and whether it was served from cache.
	GetQuote(ctx context.Context, symbol string) (*model.StockQuote, bool, error)
	GetDetailed(ctx context.Context, symbol string) (*model.StockData, bool, error)
}

type StockServiceImpl struct {
	provider StockProvider
	cache    *cache.TTLCache
	ttl      time.Duration
}

func NewStockService(provider StockProvider, ttlCache *cache.TTLCache, cfg *model.EnvConfig) StockService {
	return &StockServiceImpl{
		provider: provider,
		cache:    ttlCache,
		ttl:      time.Duration(cfg.CacheTTLSeconds) * time.Second,
	}
}

func (s *StockServiceImpl) GetQuote(ctx context.Context, symbol string) (*model.StockQuote, bool, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	key := cache.Key("stock", "quote", symbol)
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.StockQuote), true, nil
	}

	meta, err := s.provider.FetchChart(ctx, symbol)
	if err != nil {
		return nil, false, err
	}

	quote := buildQuote(symbol, meta)
	s.cache.Set(key, quote, s.ttl)
	log.Debug().Str("symbol", symbol).Float64("price", quote.Price).Msg("Stock quote fetched")
	return quote, false, nil
}

func (s *StockServiceImpl) GetDetailed(ctx context.Context, symbol string) (*model.StockData, bool, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	key := cache.Key("stock", "detail", symbol)
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.StockData), true, nil
	}

	meta, err := s.provider.FetchChart(ctx, symbol)
	if err != nil {
		return nil, false, err
	}

	quote := buildQuote(symbol, meta)
	var data model.StockData
	if err := copier.Copy(&data, quote); err != nil {
		return nil, false, err
	}
	if pc := previousClose(meta); pc > 0 {
		data.PreviousClose = ptr(round2(pc))
	}
	if meta.FiftyTwoWeekHigh > 0 {
		data.FiftyTwoWeekHigh = ptr(round2(meta.FiftyTwoWeekHigh))
	}
	if meta.FiftyTwoWeekLow > 0 {
		data.FiftyTwoWeekLow = ptr(round2(meta.FiftyTwoWeekLow))
	}
	data.Exchange = meta.ExchangeName

	s.cache.Set(key, &data, s.ttl)
	return &data, false, nil
}

func buildQuote(symbol string, meta *model.ChartMeta) *model.StockQuote {
	quote := &model.StockQuote{
		Symbol:      symbol,
		Price:       round2(meta.RegularMarketPrice),
		Currency:    strings.ToUpper(meta.Currency),
		LastUpdated: time.Now().UTC(),
		MarketState: marketState(meta.MarketState),
	}
	if quote.Currency == "" {
		quote.Currency = "USD"
	}
	if pc := previousClose(meta); pc > 0 {
		change := meta.RegularMarketPrice - pc
		quote.Change = ptr(round2(change))
		quote.ChangePercent = ptr(round2(change / pc * 100))
	}
	if meta.RegularMarketVolume > 0 {
		quote.Volume = ptr(meta.RegularMarketVolume)
	}
	if meta.MarketCap > 0 {
		quote.MarketCap = ptr(meta.MarketCap)
	}
	if meta.RegularMarketTime > 0 {
		quote.LastUpdated = time.Unix(meta.RegularMarketTime, 0).UTC()
	}
	return quote
}

func previousClose(meta *model.ChartMeta) float64 {
	if meta.PreviousClose > 0 {
		return meta.PreviousClose
	}
	return meta.ChartPreviousClose
}

func marketState(raw string) model.MarketState {
	switch state := model.MarketState(strings.ToUpper(raw)); state {
	case model.MarketRegular, model.MarketPre, model.MarketPost, model.MarketClosed:
		return state
	default:
		return model.MarketClosed
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func ptr[T any](v T) *T {
	return &v
}
