package apiclient

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/pkg/errors"
)

var (
	// ErrMissingBaseURL is returned by New when no base URL is configured.
	ErrMissingBaseURL = errors.New("API base URL is not configured")
	// ErrNetworkFailure is matched by connection-level failures (reset, refused, DNS).
	ErrNetworkFailure = errors.New("network error")
	// ErrTimeoutFailure is matched by requests that exceeded the transport timeout.
	ErrTimeoutFailure = errors.New("request timeout")
	// ErrMalformedResponse is returned when a 2xx body is not valid JSON.
	ErrMalformedResponse = errors.New("malformed response body")
)

// TransportError is a non-2xx HTTP response.
type TransportError struct {
	Method string
	URL    string
	Status int
	// Body is the parsed JSON error body, nil when the body was not JSON.
	Body any
	// Raw is the unparsed body, kept for diagnostics.
	Raw []byte
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: upstream returned status %d", e.Method, e.URL, e.Status)
}

// Message extracts a human-readable message from the parsed body, if one is present.
func (e *TransportError) Message() string {
	m, ok := e.Body.(map[string]any)
	if !ok {
		return ""
	}
	if s, ok := m["message"].(string); ok {
		return s
	}
	if meta, ok := m["meta"].(map[string]any); ok {
		if s, ok := meta["message"].(string); ok {
			return s
		}
	}
	return ""
}

// RequestError is a request that never produced an HTTP response.
type RequestError struct {
	Method string
	URL    string
	// Kind is ErrNetworkFailure or ErrTimeoutFailure.
	Kind error
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Method, e.URL, e.Kind, e.Err)
}

// Is lets errors.Is match the failure class.
func (e *RequestError) Is(target error) bool {
	return target == e.Kind
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// classify turns a client.Do or body read error into a *RequestError.
// Caller cancellation is returned as the context error, which is not retryable.
func classify(ctx context.Context, method, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	kind := ErrNetworkFailure
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = ErrTimeoutFailure
	}
	return &RequestError{Method: method, URL: url, Kind: kind, Err: err}
}

// IsRetryable reports whether err is a transient network condition.
// Gateway statuses whose body is not a JSON error are treated as transient too.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrNetworkFailure) || errors.Is(err, ErrTimeoutFailure) {
		return true
	}
	var te *TransportError
	if errors.As(err, &te) && te.Body == nil {
		switch te.Status {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}
