package model

import "time"

// Status is the top-level outcome of an aggregated response.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusError   Status = "error"
	StatusWarning Status = "warning"
)

// ErrorType classifies entries of Envelope.Errors.
type ErrorType string

const (
	ErrTypeValidation  ErrorType = "validation_error"
	ErrTypeNotFound    ErrorType = "not_found"
	ErrTypeRateLimit   ErrorType = "rate_limit_exceeded"
	ErrTypeExternalAPI ErrorType = "external_api_error"
	ErrTypeTimeout     ErrorType = "timeout_error"
	ErrTypeInternal    ErrorType = "internal_server_error"
)

// ErrorDetail is one structured error inside an envelope. RetryAfterSeconds is
// set when the upstream provider supplied a retry hint.
type ErrorDetail struct {
	Type              ErrorType `json:"type"`
	Message           string    `json:"message"`
	Code              string    `json:"code,omitempty"`
	Field             string    `json:"field,omitempty"`
	Source            string    `json:"source,omitempty"`
	RetryAfterSeconds int       `json:"retry_after_seconds,omitempty"`
}

// Envelope is the uniform wrapper returned by every aggregator operation.
// Status is "success" iff every requested sub-fetch succeeded, "partial" iff
// at least one succeeded and at least one failed, "error" otherwise.
type Envelope struct {
	Status    Status         `json:"status"`
	Message   string         `json:"message,omitempty"`
	Data      any            `json:"data"`
	Errors    []ErrorDetail  `json:"errors,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	RequestID string         `json:"request_id,omitempty"`
}
