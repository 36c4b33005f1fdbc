package httpclient

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"golek-ongkir/internal/core/logger"

	"go.uber.org/zap"
)

// maxLoggedBody caps how much of a request or response body ends up in a log entry.
const maxLoggedBody = 4 << 10

// Options configures the client returned by NewClient.
type Options struct {
	// Timeout bounds the whole request, including reading the body.
	Timeout time.Duration
	// Headers are set on every outgoing request, overriding caller values.
	Headers map[string]string
	// Proxy routes traffic through an outbound proxy when enabled.
	Proxy ProxySettings
}

// HeaderRoundTripper sets a fixed header set on every request.
type HeaderRoundTripper struct {
	Headers map[string]string
	Proxied http.RoundTripper
}

// RoundTrip clones the request before touching headers, as RoundTripper requires.
func (h *HeaderRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(h.Headers) == 0 {
		return h.Proxied.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	for k, v := range h.Headers {
		r.Header.Set(k, v)
	}
	return h.Proxied.RoundTrip(r)
}

// LoggingRoundTripper captures request and response details for debugging.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	// Logger receives the entries. Nil falls back to the global logger.
	Logger *zap.Logger
}

// RoundTrip executes the request and logs method, URL, bodies, status and duration.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	log := lrt.Logger
	if log == nil {
		log = logger.Get()
	}
	start := time.Now()

	reqBody, err := peekRequestBody(req)
	if err != nil {
		return nil, err
	}

	log.Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.ByteString("body", truncate(reqBody)),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		log.Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	respBody, err := peekResponseBody(resp)
	if err != nil {
		log.Warn("HTTP Response Body Unreadable",
			zap.String("url", req.URL.String()),
			zap.Int("status_code", resp.StatusCode),
			zap.Error(err),
		)
	}

	log.Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
		zap.ByteString("body", truncate(respBody)),
	)

	return resp, nil
}

// peekRequestBody reads the body and puts an identical reader back.
func peekRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	if req.GetBody != nil {
		rc, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	b, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(bytes.NewReader(b))
	return b, nil
}

// peekResponseBody reads at most maxLoggedBody bytes for the log and chains them back
// in front of the unread remainder, so the caller still sees every byte and any size
// limit it applies still holds. On a read error the peeked bytes are followed by the error.
func peekResponseBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
	var rest io.Reader = resp.Body
	if err != nil {
		rest = errReader{err}
	}
	resp.Body = peekedBody{Reader: io.MultiReader(bytes.NewReader(b), rest), Closer: resp.Body}
	return b, err
}

type peekedBody struct {
	io.Reader
	io.Closer
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func truncate(b []byte) []byte {
	if len(b) > maxLoggedBody {
		return b[:maxLoggedBody]
	}
	return b
}

// NewClient returns an http.Client with fixed headers and logging middleware.
func NewClient(opts Options) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if proxyFunc := opts.Proxy.ProxyFunc(); proxyFunc != nil {
		base.Proxy = proxyFunc
	}

	return &http.Client{
		Transport: &HeaderRoundTripper{
			Headers: opts.Headers,
			Proxied: &LoggingRoundTripper{
				Proxied: base,
				Logger:  logger.Named("http"),
			},
		},
		Timeout: opts.Timeout,
	}
}
