package service

import (
	"errors"
	"testing"
	"time"

	"backend/customerrors"
	"backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStampsTimestampAndTiming(t *testing.T) {
	env := NewEnvelope("req-9").Data("payload").Build()

	assert.Equal(t, model.StatusSuccess, env.Status)
	assert.Equal(t, "req-9", env.RequestID)
	assert.Equal(t, "payload", env.Data)
	assert.Equal(t, false, env.Metadata["cached"])
	assert.WithinDuration(t, time.Now().UTC(), env.Timestamp, 5*time.Second)
	_, ok := env.Metadata["response_time_ms"].(int64)
	assert.True(t, ok)
}

func TestFailMarksEnvelopeError(t *testing.T) {
	env := NewEnvelope("r").Fail(customerrors.ErrCompanyNotFound).Build()

	assert.Equal(t, model.StatusError, env.Status)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, model.ErrTypeNotFound, env.Errors[0].Type)
	assert.Equal(t, env.Errors[0].Message, env.Message)
}

func TestFailHidesUnclassifiedErrorDetail(t *testing.T) {
	env := NewEnvelope("r").Fail(errors.New("pq: connection reset")).Build()

	require.Len(t, env.Errors, 1)
	assert.Equal(t, model.ErrTypeInternal, env.Errors[0].Type)
	assert.NotContains(t, env.Errors[0].Message, "pq:")
}

func TestRateLimitedCarriesRetryAfter(t *testing.T) {
	env := NewEnvelope("r").RateLimited(42 * time.Second).Build()

	assert.Equal(t, model.StatusError, env.Status)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", env.Errors[0].Code)
	assert.Equal(t, 42, env.Metadata["retry_after_seconds"])
}

func TestFromCachedSharesPayload(t *testing.T) {
	data := &model.CompanyLookupResult{}
	prior := NewEnvelope("a").Data(data).Message("done").Build()

	replay := NewEnvelope("b").FromCached(prior).Build()

	assert.Same(t, prior.Data, replay.Data)
	assert.Equal(t, prior.Message, replay.Message)
	assert.Equal(t, true, replay.Metadata["cached"])
	assert.Equal(t, "b", replay.RequestID)
}

func TestUpstreamRetryHintSurvivesIntoEnvelope(t *testing.T) {
	pe := customerrors.NewProviderError("yahoo", customerrors.KindRateLimited, nil)
	pe.RetryAfter = 30 * time.Second

	env := NewEnvelope("r").Fail(pe).Build()

	require.Len(t, env.Errors, 1)
	assert.Equal(t, "PROVIDER_RATE_LIMITED", env.Errors[0].Code)
	assert.Equal(t, 30, env.Errors[0].RetryAfterSeconds)
}

func TestProviderRateLimitWithoutHint(t *testing.T) {
	detail := ErrorDetailFor(customerrors.NewProviderError("sec", customerrors.KindRateLimited, nil))

	assert.Zero(t, detail.RetryAfterSeconds)
}

func TestErrorDetailForTaxonomy(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		errType model.ErrorType
		code    string
	}{
		{"validation", customerrors.NewValidationError("q", "too short"), model.ErrTypeValidation, "INVALID_REQUEST"},
		{"not found", customerrors.ErrCompanyNotFound, model.ErrTypeNotFound, "COMPANY_NOT_FOUND"},
		{"rate limit", &customerrors.RateLimitError{RetryAfter: time.Minute}, model.ErrTypeRateLimit, "RATE_LIMIT_EXCEEDED"},
		{"provider timeout", customerrors.NewProviderError("yahoo", customerrors.KindTimeout, nil), model.ErrTypeTimeout, "PROVIDER_TIMEOUT"},
		{"provider 404", customerrors.NewProviderError("yahoo", customerrors.KindNotFound, nil), model.ErrTypeNotFound, "DATA_NOT_FOUND"},
		{"provider 429", customerrors.NewProviderError("sec", customerrors.KindRateLimited, nil), model.ErrTypeExternalAPI, "PROVIDER_RATE_LIMITED"},
		{"malformed", customerrors.NewProviderError("sec", customerrors.KindMalformed, nil), model.ErrTypeExternalAPI, "MALFORMED_RESPONSE"},
		{"transient", customerrors.NewProviderError("yahoo", customerrors.KindTransient, nil), model.ErrTypeExternalAPI, "PROVIDER_ERROR"},
		{"unknown", errors.New("boom"), model.ErrTypeInternal, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			detail := ErrorDetailFor(tc.err)
			assert.Equal(t, tc.errType, detail.Type)
			assert.Equal(t, tc.code, detail.Code)
		})
	}
}
