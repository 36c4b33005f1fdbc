package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// Client performs JSON requests against the configured base URL.
// Headers, timeout and logging come from the *http.Client it is given.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
}

// New creates a Client. An empty or relative baseURL is rejected.
func New(baseURL string, httpc *http.Client) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrMissingBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base url %q is not absolute", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{baseURL: u, httpc: httpc}, nil
}

// Get issues GET {base}{path}?{query} and returns the JSON body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues POST {base}{path} with body encoded as JSON and returns the JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "encode request body")
	}
	return c.do(ctx, http.MethodPost, path, nil, b)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (json.RawMessage, error) {
	endpoint := c.endpoint(path, query)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, classify(ctx, method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, classify(ctx, method, endpoint, err)
	}

	if resp.StatusCode/100 != 2 {
		te := &TransportError{Method: method, URL: endpoint, Status: resp.StatusCode, Raw: raw}
		var parsed any
		if len(raw) > 0 && json.Unmarshal(raw, &parsed) == nil {
			te.Body = parsed
		}
		return nil, te
	}

	if !json.Valid(raw) {
		return nil, errors.Wrapf(ErrMalformedResponse, "%s %s", method, endpoint)
	}
	return json.RawMessage(raw), nil
}
