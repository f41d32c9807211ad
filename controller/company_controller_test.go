package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/middleware"
	"backend/model"
	"backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAggregator returns one canned envelope for every operation.
type stubAggregator struct {
	env *model.Envelope
}

func (s *stubAggregator) Lookup(ctx context.Context, query string, opts model.LookupOptions) *model.Envelope {
	return s.env
}

func (s *stubAggregator) Search(ctx context.Context, req model.SearchRequest, ro model.RequestOptions) *model.Envelope {
	return s.env
}

func (s *stubAggregator) Suggest(ctx context.Context, query string, limit int, ro model.RequestOptions) *model.Envelope {
	return s.env
}

func (s *stubAggregator) BatchQuotes(ctx context.Context, tickers []string, ro model.RequestOptions) *model.Envelope {
	return s.env
}

func (s *stubAggregator) CompanyByTicker(ctx context.Context, ticker string, ro model.RequestOptions) *model.Envelope {
	return s.env
}

func (s *stubAggregator) StockBySymbol(ctx context.Context, symbol string, detailed bool, ro model.RequestOptions) *model.Envelope {
	return s.env
}

func (s *stubAggregator) FilingsByCIK(ctx context.Context, req model.FilingsRequest, ro model.RequestOptions) *model.Envelope {
	return s.env
}

func testRouter(env *model.Envelope) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api/v1")
	NewCompanyController(&stubAggregator{env: env}).RegisterRoutes(api)
	return r
}

func serve(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorEnvelope(errType model.ErrorType, code string) *model.Envelope {
	return &model.Envelope{
		Status:   model.StatusError,
		Metadata: map[string]any{},
		Errors:   []model.ErrorDetail{{Type: errType, Code: code, Message: "failed"}},
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		env      *model.Envelope
		wantCode int
	}{
		{"success", &model.Envelope{Status: model.StatusSuccess, Metadata: map[string]any{}}, http.StatusOK},
		{"partial stays 200", &model.Envelope{Status: model.StatusPartial, Metadata: map[string]any{}}, http.StatusOK},
		{"validation", errorEnvelope(model.ErrTypeValidation, "INVALID_REQUEST"), http.StatusBadRequest},
		{"not found", errorEnvelope(model.ErrTypeNotFound, "COMPANY_NOT_FOUND"), http.StatusNotFound},
		{"rate limited", errorEnvelope(model.ErrTypeRateLimit, "RATE_LIMIT_EXCEEDED"), http.StatusTooManyRequests},
		{"timeout", errorEnvelope(model.ErrTypeTimeout, "PROVIDER_TIMEOUT"), http.StatusGatewayTimeout},
		{"upstream", errorEnvelope(model.ErrTypeExternalAPI, "PROVIDER_ERROR"), http.StatusBadGateway},
		{"internal", errorEnvelope(model.ErrTypeInternal, "INTERNAL_ERROR"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(t, testRouter(tc.env), "/api/v1/company/lookup?q=apple")
			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestRateLimitedResponseSetsRetryAfterHeader(t *testing.T) {
	env := errorEnvelope(model.ErrTypeRateLimit, "RATE_LIMIT_EXCEEDED")
	env.Metadata["retry_after_seconds"] = 42

	w := serve(t, testRouter(env), "/api/v1/search?q=apple")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
}

func TestShortQueryRejectedBeforeAggregator(t *testing.T) {
	w := serve(t, testRouter(&model.Envelope{Status: model.StatusSuccess}), "/api/v1/search?q=a")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var env model.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, model.StatusError, env.Status)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, model.ErrTypeValidation, env.Errors[0].Type)
}

func TestSuggestionsRoute(t *testing.T) {
	env := &model.Envelope{Status: model.StatusSuccess, Metadata: map[string]any{}}
	w := serve(t, testRouter(env), "/api/v1/search/suggestions?q=micro")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, testRouter(env), "/api/v1/search/suggestions?q=m")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidTickerRejected(t *testing.T) {
	w := serve(t, testRouter(&model.Envelope{Status: model.StatusSuccess}), "/api/v1/stock/TOOLONGTICKER")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidCIKRejected(t *testing.T) {
	w := serve(t, testRouter(&model.Envelope{Status: model.StatusSuccess}), "/api/v1/filings/notacik")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResponseCarriesRequestIDHeader(t *testing.T) {
	env := &model.Envelope{Status: model.StatusSuccess, Metadata: map[string]any{}}
	w := serve(t, testRouter(env), "/api/v1/company/AAPL")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestInboundRequestIDIsHonored(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := testRouter(&model.Envelope{Status: model.StatusSuccess, Metadata: map[string]any{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/company/AAPL", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "caller-supplied-id", w.Header().Get("X-Request-ID"))
}

var _ service.AggregatorService = (*stubAggregator)(nil)
