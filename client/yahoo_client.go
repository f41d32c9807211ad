package client

import (
	"context"
	"fmt"
	"time"

	"backend/customerrors"
	"backend/model"

	"github.com/go-resty/resty/v2"
)

const yahooProvider = "yahoo"

type YahooClient struct {
	client *resty.Client
}

func NewYahooClient(cfg *model.EnvConfig) *YahooClient {
	client := resty.New().
		SetBaseURL(cfg.YahooBaseURL).
		SetTimeout(time.Duration(cfg.StockTimeoutSeconds) * time.Second).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
		}).
		SetRetryCount(1).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(retryTransient)

	return &YahooClient{client: client}
}

// FetchChart retrieves the chart metadata block for one symbol, which carries
// the current quote fields.
func (y *YahooClient) FetchChart(ctx context.Context, symbol string) (*model.ChartMeta, error) {
	var chartResponse model.YahooChartResponse
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"range":    "1d",
			"interval": "1d",
		}).
		SetResult(&chartResponse).
		Get("/v8/finance/chart/" + symbol)

	if err != nil || !resp.IsSuccess() {
		return nil, classify(yahooProvider, resp, err)
	}

	if chartResponse.Chart.Error != nil {
		return nil, customerrors.NewProviderError(yahooProvider, customerrors.KindNotFound,
			fmt.Errorf("%s: %s", chartResponse.Chart.Error.Code, chartResponse.Chart.Error.Description))
	}
	if len(chartResponse.Chart.Result) == 0 || chartResponse.Chart.Result[0].Meta.RegularMarketPrice <= 0 {
		return nil, customerrors.NewProviderError(yahooProvider, customerrors.KindMalformed,
			fmt.Errorf("chart response missing meta for %s", symbol))
	}

	meta := chartResponse.Chart.Result[0].Meta
	return &meta, nil
}
