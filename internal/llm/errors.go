package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

var (
	ErrUnauthorized      = errors.New("llm unauthorized")
	ErrUnavailable       = errors.New("llm unavailable")
	ErrRateLimited       = errors.New("llm rate limited")
	ErrEmptyResponse     = errors.New("llm empty response")
	ErrMalformedResponse = errors.New("llm malformed response")
)

// IsTransient reports whether err is an authentication or network failure,
// the only kinds worth another attempt with the same prompt.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrUnavailable) || errors.Is(err, ErrRateLimited) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// CheckStatus maps an HTTP response status to the package sentinels. It
// returns nil for 2xx responses.
func CheckStatus(provider string, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", provider, ErrUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", provider, ErrRateLimited)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s: %w (%s)", provider, ErrUnavailable, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s error: %s - %s", provider, resp.Status, string(body))
	}
	return nil
}
