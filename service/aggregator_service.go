package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"backend/cache"
	"backend/customerrors"
	"backend/limiter"
	"backend/model"
	"backend/util"
	"backend/validator"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const maxBatchTickers = 20

// AggregatorService orchestrates company lookups: rate-limit check, identity
// resolution, concurrent provider fan-out and envelope assembly.
type AggregatorService interface {
	Lookup(ctx context.Context, query string, opts model.LookupOptions) *model.Envelope
	Search(ctx context.Context, req model.SearchRequest, ro model.RequestOptions) *model.Envelope
	Suggest(ctx context.Context, query string, limit int, ro model.RequestOptions) *model.Envelope
	BatchQuotes(ctx context.Context, tickers []string, ro model.RequestOptions) *model.Envelope
	CompanyByTicker(ctx context.Context, ticker string, ro model.RequestOptions) *model.Envelope
	StockBySymbol(ctx context.Context, symbol string, detailed bool, ro model.RequestOptions) *model.Envelope
	FilingsByCIK(ctx context.Context, req model.FilingsRequest, ro model.RequestOptions) *model.Envelope
}

type AggregatorServiceImpl struct {
	companies    CompanyService
	stocks       StockService
	filings      FilingsService
	envelopes    *cache.TTLCache
	limiter      *limiter.Limiter
	batchLimiter *limiter.Limiter
	envelopeTTL  time.Duration
	stockTTL     time.Duration
	filingsTTL   time.Duration
}

func NewAggregatorService(
	companies CompanyService,
	stocks StockService,
	filings FilingsService,
	envelopes *cache.TTLCache,
	lim *limiter.Limiter,
	batchLim *limiter.Limiter,
	cfg *model.EnvConfig,
) AggregatorService {
	return &AggregatorServiceImpl{
		companies:    companies,
		stocks:       stocks,
		filings:      filings,
		envelopes:    envelopes,
		limiter:      lim,
		batchLimiter: batchLim,
		envelopeTTL:  time.Duration(cfg.EnvelopeTTLSeconds) * time.Second,
		stockTTL:     time.Duration(cfg.CacheTTLSeconds) * time.Second,
		filingsTTL:   time.Duration(cfg.FilingsTTLSeconds) * time.Second,
	}
}

// Lookup resolves query to a company and fans out to the requested providers
// concurrently. A provider failure never aborts its sibling; outcomes are
// merged into one envelope per the success/partial/error invariant.
func (a *AggregatorServiceImpl) Lookup(ctx context.Context, query string, opts model.LookupOptions) *model.Envelope {
	b := NewEnvelope(opts.RequestID)

	if res := a.limiter.Check(opts.ClientKey); !res.Allowed {
		return b.RateLimited(res.RetryAfter).Build()
	}

	key := lookupKey(query, opts)
	if cached, found := a.envelopes.Get(key); found {
		return b.FromCached(cached.(*model.Envelope)).Build()
	}

	match, err := a.companies.Resolve(query)
	if err != nil {
		return b.Fail(err).Build()
	}
	company := match.Company

	var (
		quote         *model.StockQuote
		quoteErr      error
		recentFilings []model.Filing
		filingsErr    error
	)

	// Each sub-fetch records its own outcome and always returns nil, so a
	// failing sibling cannot cancel the group.
	var g errgroup.Group
	if opts.IncludeStock {
		g.Go(func() error {
			quote, _, quoteErr = a.stocks.GetQuote(ctx, company.Ticker)
			return nil
		})
	}
	if opts.IncludeFilings {
		g.Go(func() error {
			recentFilings, _, filingsErr = a.filings.GetRecentFilings(ctx, company.CIK, nil, opts.FilingsLimit)
			return nil
		})
	}
	g.Wait()

	requested, failed := 0, 0
	dataSources := map[string]string{"company_info": "SEC EDGAR directory"}
	if opts.IncludeStock {
		requested++
		if quoteErr != nil {
			failed++
			b.AddError(ErrorDetailFor(quoteErr))
			log.Warn().Err(quoteErr).Str("request_id", opts.RequestID).
				Str("ticker", company.Ticker).Msg("Stock sub-fetch failed")
		} else {
			dataSources["stock_quote"] = "Yahoo Finance"
		}
	}
	if opts.IncludeFilings {
		requested++
		if filingsErr != nil {
			failed++
			b.AddError(ErrorDetailFor(filingsErr))
			log.Warn().Err(filingsErr).Str("request_id", opts.RequestID).
				Str("cik", company.CIK).Msg("Filings sub-fetch failed")
		} else {
			dataSources["filings"] = "SEC EDGAR API"
		}
	}
	if recentFilings == nil {
		recentFilings = []model.Filing{}
	}

	b.Data(&model.CompanyLookupResult{
		Company:       company,
		StockQuote:    quote,
		RecentFilings: recentFilings,
		LastUpdated:   time.Now().UTC(),
		DataSources:   dataSources,
	})
	b.Meta("match_score", match.MatchScore)
	b.Meta("data_completeness", map[string]bool{
		"company_info": true,
		"stock_quote":  opts.IncludeStock && quoteErr == nil,
		"filings":      opts.IncludeFilings && filingsErr == nil,
	})

	switch {
	case failed == 0:
		b.Status(model.StatusSuccess).Message("Complete company information retrieved for " + company.Name)
	case failed < requested:
		b.Status(model.StatusPartial).Message("Partial company information retrieved for " + company.Name)
	default:
		b.Status(model.StatusError).Message("Company data retrieval failed for " + company.Name)
	}

	env := b.Build()
	if env.Status != model.StatusError {
		a.envelopes.Set(key, env, a.lookupTTL(opts))
	}
	return env
}

// Search runs the fuzzy matcher and wraps the ranked results.
func (a *AggregatorServiceImpl) Search(ctx context.Context, req model.SearchRequest, ro model.RequestOptions) *model.Envelope {
	b := NewEnvelope(ro.RequestID)

	if res := a.limiter.Check(ro.ClientKey); !res.Allowed {
		return b.RateLimited(res.RetryAfter).Build()
	}

	result, err := a.companies.Search(req.Query, req.Limit)
	if err != nil {
		return b.Fail(err).Build()
	}

	return b.Data(result).
		Message(strconv.Itoa(result.TotalResults) + " companies found").
		Build()
}

// Suggest returns lightweight autocomplete entries for a partial query.
func (a *AggregatorServiceImpl) Suggest(ctx context.Context, query string, limit int, ro model.RequestOptions) *model.Envelope {
	b := NewEnvelope(ro.RequestID)

	if res := a.limiter.Check(ro.ClientKey); !res.Allowed {
		return b.RateLimited(res.RetryAfter).Build()
	}

	result, err := a.companies.Search(query, limit)
	if err != nil {
		return b.Fail(err).Build()
	}

	suggestions := make([]model.SearchSuggestion, 0, len(result.Results))
	for _, m := range result.Results {
		suggestions = append(suggestions, model.SearchSuggestion{
			Ticker:    m.Company.Ticker,
			Name:      m.Company.Name,
			MatchType: m.MatchType,
		})
	}

	return b.Data(map[string]any{
		"query":       result.Query,
		"suggestions": suggestions,
	}).
		Message(strconv.Itoa(len(suggestions)) + " suggestions found").
		Build()
}

// BatchQuotes fetches one quote per ticker concurrently. A failing ticker
// maps to nil and bumps the failed counter; it never aborts the batch.
func (a *AggregatorServiceImpl) BatchQuotes(ctx context.Context, tickers []string, ro model.RequestOptions) *model.Envelope {
	b := NewEnvelope(ro.RequestID)

	if res := a.batchLimiter.Check(ro.ClientKey); !res.Allowed {
		return b.RateLimited(res.RetryAfter).Build()
	}
	if len(tickers) == 0 {
		return b.Fail(customerrors.NewValidationError("tickers", "at least one ticker is required")).Build()
	}
	if len(tickers) > maxBatchTickers {
		return b.Fail(customerrors.NewValidationError("tickers",
			"maximum "+strconv.Itoa(maxBatchTickers)+" tickers per request")).Build()
	}

	validated := make([]string, 0, len(tickers))
	unique := make([]string, 0, len(tickers))
	seen := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if !validator.ValidTicker(t) {
			return b.Fail(customerrors.NewValidationError("tickers", "invalid ticker: "+t)).Build()
		}
		validated = append(validated, t)
		if !seen[t] {
			seen[t] = true
			unique = append(unique, t)
		}
	}

	quotes := make(map[string]*model.StockQuote, len(unique))
	var mu sync.Mutex
	var g errgroup.Group
	for _, ticker := range unique {
		ticker := ticker
		g.Go(func() error {
			quote, _, err := a.stocks.GetQuote(ctx, ticker)
			if err != nil {
				log.Warn().Err(err).Str("request_id", ro.RequestID).
					Str("ticker", ticker).Msg("Batch quote failed")
				quote = nil
			}
			mu.Lock()
			quotes[ticker] = quote
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	// The summary counts requested tickers, duplicates included, even though a
	// repeated ticker is only fetched once.
	successful := 0
	for _, t := range validated {
		if quotes[t] != nil {
			successful++
		}
	}
	failed := len(validated) - successful

	b.Data(&model.BatchQuotesResult{
		Quotes: quotes,
		Summary: model.BatchSummary{
			TotalRequested: len(validated),
			Successful:     successful,
			Failed:         failed,
		},
	})
	b.Meta("batch_size", len(validated))

	switch {
	case failed == 0:
		b.Status(model.StatusSuccess).Message("Retrieved quotes for all " + strconv.Itoa(successful) + " tickers")
	case successful > 0:
		b.Status(model.StatusPartial).
			Message("Retrieved " + strconv.Itoa(successful) + "/" + strconv.Itoa(len(validated)) + " quotes successfully")
	default:
		b.Status(model.StatusError).Message("Failed to retrieve any stock quotes")
	}
	return b.Build()
}

// CompanyByTicker returns the directory entry for an exact ticker.
func (a *AggregatorServiceImpl) CompanyByTicker(ctx context.Context, ticker string, ro model.RequestOptions) *model.Envelope {
	b := NewEnvelope(ro.RequestID)

	if res := a.limiter.Check(ro.ClientKey); !res.Allowed {
		return b.RateLimited(res.RetryAfter).Build()
	}

	match, err := a.companies.Resolve(ticker)
	if err != nil {
		return b.Fail(err).Build()
	}
	if match.MatchType != model.MatchExactTicker {
		return b.Fail(customerrors.ErrCompanyNotFound).Build()
	}

	return b.Data(match.Company).
		Message("Company information retrieved for " + match.Company.Ticker).
		Build()
}

// StockBySymbol returns a single quote, detailed when requested.
func (a *AggregatorServiceImpl) StockBySymbol(ctx context.Context, symbol string, detailed bool, ro model.RequestOptions) *model.Envelope {
	b := NewEnvelope(ro.RequestID)

	if res := a.limiter.Check(ro.ClientKey); !res.Allowed {
		return b.RateLimited(res.RetryAfter).Build()
	}

	var (
		data   any
		cached bool
		err    error
	)
	if detailed {
		data, cached, err = a.stocks.GetDetailed(ctx, symbol)
	} else {
		data, cached, err = a.stocks.GetQuote(ctx, symbol)
	}
	if err != nil {
		return b.Fail(err).Build()
	}

	return b.Data(data).
		Meta("cached", cached).
		Meta("data_sources", map[string]string{"stock_quote": "Yahoo Finance"}).
		Message("Stock quote retrieved for " + strings.ToUpper(strings.TrimSpace(symbol))).
		Build()
}

// FilingsByCIK returns the filings history for one CIK.
func (a *AggregatorServiceImpl) FilingsByCIK(ctx context.Context, req model.FilingsRequest, ro model.RequestOptions) *model.Envelope {
	b := NewEnvelope(ro.RequestID)

	if res := a.limiter.Check(ro.ClientKey); !res.Allowed {
		return b.RateLimited(res.RetryAfter).Build()
	}

	filings, cached, err := a.filings.GetRecentFilings(ctx, req.CIK, req.FormTypes, req.Limit)
	if err != nil {
		return b.Fail(err).Build()
	}

	cik := req.CIK
	if normalized, ok := util.NormalizeCIK(req.CIK); ok {
		cik = normalized
	}
	return b.Data(map[string]any{
		"cik":           cik,
		"filings":       filings,
		"total_filings": len(filings),
	}).
		Meta("cached", cached).
		Meta("data_sources", map[string]string{"filings": "SEC EDGAR API"}).
		Message("Retrieved " + strconv.Itoa(len(filings)) + " filings").
		Build()
}

// lookupKey derives the envelope cache key from the normalized request
// signature so equivalent requests collide regardless of parameter order.
func lookupKey(query string, opts model.LookupOptions) string {
	return cache.Key("lookup", util.NormalizeQuery(query),
		"s="+strconv.FormatBool(opts.IncludeStock),
		"f="+strconv.FormatBool(opts.IncludeFilings),
		"n="+strconv.Itoa(opts.FilingsLimit))
}

// lookupTTL keeps the cached envelope from outliving its most volatile
// ingredient.
func (a *AggregatorServiceImpl) lookupTTL(opts model.LookupOptions) time.Duration {
	ttl := a.envelopeTTL
	if opts.IncludeStock && a.stockTTL < ttl {
		ttl = a.stockTTL
	}
	if opts.IncludeFilings && a.filingsTTL < ttl {
		ttl = a.filingsTTL
	}
	return ttl
}
