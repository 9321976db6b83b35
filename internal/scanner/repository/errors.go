package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderThrottled is returned when a provider answers with "too many requests".
	ErrProviderThrottled = errors.New("provider throttled the request")
	// ErrProviderUnavailable is returned once throttling retries are exhausted or the circuit is open.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrProviderNoData means the symbol is unknown or the payload was empty.
	ErrProviderNoData = errors.New("provider returned no data")
)

// APIError is a non-2xx provider response that is not a throttling signal.
type APIError struct {
	Provider   string
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: %s (status: %d, endpoint: %s)", e.Provider, e.Message, e.StatusCode, e.Endpoint)
}
