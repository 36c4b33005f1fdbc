package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MissingBaseURL(t *testing.T) {
	_, err := New("", nil)
	assert.ErrorIs(t, err, ErrMissingBaseURL)

	_, err = New("localhost:8000", nil)
	assert.Error(t, err)
}

func TestClient_Get(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cities", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("province"))
		w.Write([]byte(`{"error":false,"data":[]}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/api/", ts.Client())
	require.NoError(t, err)

	body, err := c.Get(context.Background(), "/cities", url.Values{"province": {"12"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":false,"data":[]}`, string(body))
}

func TestClient_Post(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/track", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"courier":"jne","waybill":"X1"}`, string(b))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, ts.Client())
	require.NoError(t, err)

	body, err := c.Post(context.Background(), "track", map[string]string{"courier": "jne", "waybill": "X1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestClient_TransportErrorWithBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid waybill"}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, ts.Client())
	require.NoError(t, err)

	_, err = c.Post(context.Background(), "/track", map[string]string{})

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusUnprocessableEntity, te.Status)
	assert.Equal(t, "invalid waybill", te.Message())
	assert.False(t, IsRetryable(err))
}

func TestClient_ServerErrorWithJSONBodyNotRetryable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"meta":{"message":"courier down"}}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, ts.Client())
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/provinces", nil)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "courier down", te.Message())
	assert.False(t, IsRetryable(err))
}

func TestClient_GatewayPageRetryable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, ts.Client())
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/provinces", nil)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Nil(t, te.Body)
	assert.Equal(t, "<html>bad gateway</html>", string(te.Raw))
	assert.True(t, IsRetryable(err))
}

func TestClient_MalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, ts.Client())
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/provinces", nil)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.False(t, IsRetryable(err))
}

func TestClient_NetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := ts.URL
	ts.Close()

	c, err := New(addr, &http.Client{Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/provinces", nil)
	assert.ErrorIs(t, err, ErrNetworkFailure)
	assert.True(t, IsRetryable(err))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	c, err := New(ts.URL, &http.Client{Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/provinces", nil)
	assert.ErrorIs(t, err, ErrTimeoutFailure)
	assert.True(t, IsRetryable(err))
}

func TestClient_CallerCancellation(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	c, err := New(ts.URL, ts.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Get(ctx, "/provinces", nil)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, IsRetryable(err))
}

func TestClient_PostEncodeError(t *testing.T) {
	c, err := New("http://example.invalid", nil)
	require.NoError(t, err)

	_, err = c.Post(context.Background(), "/cost", map[string]any{"bad": make(chan int)})
	var ute *json.UnsupportedTypeError
	assert.ErrorAs(t, err, &ute)
}
