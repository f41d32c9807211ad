package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"backend/customerrors"

	"github.com/go-resty/resty/v2"
)

// classify translates a resty outcome into a tagged provider error so callers
// never see raw transport failures.
func classify(provider string, resp *resty.Response, err error) error {
	if err != nil {
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			return customerrors.NewProviderError(provider, customerrors.KindTimeout, err)
		}
		return customerrors.NewProviderError(provider, customerrors.KindTransient, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return customerrors.NewProviderError(provider, customerrors.KindNotFound,
			fmt.Errorf("status %d", resp.StatusCode()))
	case resp.StatusCode() == http.StatusTooManyRequests:
		pe := customerrors.NewProviderError(provider, customerrors.KindRateLimited,
			fmt.Errorf("status %d", resp.StatusCode()))
		pe.RetryAfter = retryAfter(resp)
		return pe
	default:
		return customerrors.NewProviderError(provider, customerrors.KindTransient,
			fmt.Errorf("status %d", resp.StatusCode()))
	}
}

func retryAfter(resp *resty.Response) time.Duration {
	if s := resp.Header().Get("Retry-After"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return 0
}

// retryTransient is the shared retry condition: one extra attempt for network
// errors and 5xx responses, never for timeouts.
func retryTransient(resp *resty.Response, err error) bool {
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return false
		}
		return true
	}
	return resp.StatusCode() >= http.StatusInternalServerError
}
