package service

import (
	"errors"
	"time"

	"backend/customerrors"
	"backend/model"

	"github.com/rs/zerolog/log"
)

// EnvelopeBuilder assembles the uniform status/data/errors/metadata envelope
// returned by every aggregator operation.
type EnvelopeBuilder struct {
	started time.Time
	env     *model.Envelope
}

func NewEnvelope(requestID string) *EnvelopeBuilder {
	return &EnvelopeBuilder{
		started: time.Now(),
		env: &model.Envelope{
			Status:    model.StatusSuccess,
			Metadata:  map[string]any{"cached": false},
			RequestID: requestID,
		},
	}
}

func (b *EnvelopeBuilder) Status(s model.Status) *EnvelopeBuilder {
	b.env.Status = s
	return b
}

func (b *EnvelopeBuilder) Message(msg string) *EnvelopeBuilder {
	b.env.Message = msg
	return b
}

func (b *EnvelopeBuilder) Data(data any) *EnvelopeBuilder {
	b.env.Data = data
	return b
}

func (b *EnvelopeBuilder) Meta(key string, value any) *EnvelopeBuilder {
	b.env.Metadata[key] = value
	return b
}

func (b *EnvelopeBuilder) AddError(detail model.ErrorDetail) *EnvelopeBuilder {
	b.env.Errors = append(b.env.Errors, detail)
	return b
}

// Fail classifies err, records it and marks the whole envelope as failed.
// Unclassified errors surface with a static message only; the raw detail
// stays in the logs.
func (b *EnvelopeBuilder) Fail(err error) *EnvelopeBuilder {
	detail := ErrorDetailFor(err)
	if detail.Type == model.ErrTypeInternal {
		log.Error().Err(err).Str("request_id", b.env.RequestID).Msg("Unexpected failure")
	}
	return b.Status(model.StatusError).Message(detail.Message).AddError(detail)
}

// RateLimited builds the local-limiter denial envelope.
func (b *EnvelopeBuilder) RateLimited(retryAfter time.Duration) *EnvelopeBuilder {
	b.Fail(&customerrors.RateLimitError{RetryAfter: retryAfter})
	b.Meta("retry_after_seconds", int(retryAfter.Seconds()))
	return b
}

// FromCached replays a previously assembled envelope. The data payload is
// shared untouched so repeated lookups serialize identically; only the
// metadata reflects the cache hit.
func (b *EnvelopeBuilder) FromCached(prior *model.Envelope) *EnvelopeBuilder {
	b.env.Status = prior.Status
	b.env.Message = prior.Message
	b.env.Data = prior.Data
	b.env.Errors = prior.Errors
	b.Meta("cached", true)
	return b
}

// Build stamps the envelope and returns it.
func (b *EnvelopeBuilder) Build() *model.Envelope {
	b.env.Timestamp = time.Now().UTC()
	b.env.Metadata["response_time_ms"] = time.Since(b.started).Milliseconds()
	return b.env
}

// ErrorDetailFor maps an error from the taxonomy onto a structured envelope
// entry.
func ErrorDetailFor(err error) model.ErrorDetail {
	var ve *customerrors.ValidationError
	if errors.As(err, &ve) {
		return model.ErrorDetail{
			Type:    model.ErrTypeValidation,
			Message: ve.Error(),
			Code:    "INVALID_REQUEST",
			Field:   ve.Field,
		}
	}

	var rl *customerrors.RateLimitError
	if errors.As(err, &rl) {
		return model.ErrorDetail{
			Type:    model.ErrTypeRateLimit,
			Message: rl.Error(),
			Code:    "RATE_LIMIT_EXCEEDED",
		}
	}

	if errors.Is(err, customerrors.ErrCompanyNotFound) {
		return model.ErrorDetail{
			Type:    model.ErrTypeNotFound,
			Message: err.Error(),
			Code:    "COMPANY_NOT_FOUND",
		}
	}

	if pe, ok := customerrors.AsProviderError(err); ok {
		detail := model.ErrorDetail{Message: pe.Error(), Source: pe.Provider}
		switch pe.Kind {
		case customerrors.KindTimeout:
			detail.Type = model.ErrTypeTimeout
			detail.Code = "PROVIDER_TIMEOUT"
		case customerrors.KindNotFound:
			detail.Type = model.ErrTypeNotFound
			detail.Code = "DATA_NOT_FOUND"
		case customerrors.KindRateLimited:
			detail.Type = model.ErrTypeExternalAPI
			detail.Code = "PROVIDER_RATE_LIMITED"
			detail.RetryAfterSeconds = int(pe.RetryAfter.Seconds())
		case customerrors.KindMalformed:
			detail.Type = model.ErrTypeExternalAPI
			detail.Code = "MALFORMED_RESPONSE"
		default:
			detail.Type = model.ErrTypeExternalAPI
			detail.Code = "PROVIDER_ERROR"
		}
		return detail
	}

	return model.ErrorDetail{
		Type:    model.ErrTypeInternal,
		Message: "An unexpected error occurred",
		Code:    "INTERNAL_ERROR",
	}
}
