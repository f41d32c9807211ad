package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backend/customerrors"
	"backend/model"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const secProvider = "sec"

// SECClient talks to SEC EDGAR. Every call carries the contact-bearing
// User-Agent required by SEC fair-use policy and is paced by an outbound
// limiter (EDGAR allows 10 requests per second).
type SECClient struct {
	client    *resty.Client
	outbound  *rate.Limiter
	tickerURL string
}

func NewSECClient(cfg *model.EnvConfig) *SECClient {
	client := resty.New().
		SetBaseURL(cfg.SECBaseURL).
		SetTimeout(time.Duration(cfg.RequestTimeoutSeconds) * time.Second).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": cfg.SECUserAgent,
		}).
		SetRetryCount(1).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(retryTransient)

	return &SECClient{
		client:    client,
		outbound:  rate.NewLimiter(rate.Limit(10), 10),
		tickerURL: cfg.SECTickerURL,
	}
}

// FetchCompanyTickers downloads the full company directory snapshot.
func (s *SECClient) FetchCompanyTickers(ctx context.Context) ([]model.CompanyRecord, error) {
	if err := s.outbound.Wait(ctx); err != nil {
		return nil, customerrors.NewProviderError(secProvider, customerrors.KindTimeout, err)
	}

	var raw map[string]model.SECTickerEntry
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&raw).
		Get(s.tickerURL)

	if err != nil || !resp.IsSuccess() {
		return nil, classify(secProvider, resp, err)
	}
	if len(raw) == 0 {
		return nil, customerrors.NewProviderError(secProvider, customerrors.KindMalformed,
			fmt.Errorf("empty ticker file"))
	}

	records := make([]model.CompanyRecord, 0, len(raw))
	for _, e := range raw {
		ticker := strings.ToUpper(strings.TrimSpace(e.Ticker))
		if ticker == "" || e.Title == "" {
			continue
		}
		records = append(records, model.CompanyRecord{
			Name:     e.Title,
			Ticker:   ticker,
			CIK:      fmt.Sprintf("%010d", e.CIK),
			Exchange: "US",
		})
	}
	return records, nil
}

// FetchSubmissions retrieves the filing history for a zero-padded CIK.
func (s *SECClient) FetchSubmissions(ctx context.Context, cik string) (*model.SECSubmissionsResponse, error) {
	if err := s.outbound.Wait(ctx); err != nil {
		return nil, customerrors.NewProviderError(secProvider, customerrors.KindTimeout, err)
	}

	var sub model.SECSubmissionsResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&sub).
		Get("/submissions/CIK" + cik + ".json")

	if err != nil || !resp.IsSuccess() {
		return nil, classify(secProvider, resp, err)
	}

	recent := sub.Filings.Recent
	if len(recent.Form) != len(recent.AccessionNumber) || len(recent.Form) != len(recent.FilingDate) {
		return nil, customerrors.NewProviderError(secProvider, customerrors.KindMalformed,
			fmt.Errorf("submissions columns disagree for CIK %s", cik))
	}
	return &sub, nil
}
