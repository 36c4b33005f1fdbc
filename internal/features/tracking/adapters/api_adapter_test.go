package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/apperror"
	"golek-ongkir/internal/core/retry"
	"golek-ongkir/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *APIAdapter {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := apiclient.New(ts.URL, ts.Client())
	require.NoError(t, err)
	return NewAPIAdapter(client, retry.NewPolicy(3, 0, nil, apiclient.IsRetryable))
}

func TestAPIAdapter_Track_RequestBody(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/track", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"courier": "pos", "waybill": "P123"}, body)

		w.Write([]byte(`{"error":false,"data":{"meta":{"message":"OK","code":200,"status":"DELIVERED"},"data":{"waybill_number":"P123","status":{"status_code":"DELIVERED","status":"DELIVERED"},"manifest":[]}}}`))
	})

	env, err := adapter.Track(context.Background(), domain.TrackQuery{Courier: "pos", Waybill: "P123"})
	require.NoError(t, err)
	require.NotNil(t, env.Data)
	assert.Equal(t, "P123", env.Data.Data.WaybillNumber)
	assert.Equal(t, "DELIVERED", env.Data.Meta.Status)
}

func TestAPIAdapter_Track_ForwardsPhoneDigits(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "12345", body["last_phone_number"])
		w.Write([]byte(legacyBody))
	})

	env, err := adapter.Track(context.Background(), domain.TrackQuery{Courier: "jne", Waybill: "CGK123", LastPhoneNumber: "12345"})
	require.NoError(t, err)
	require.NotNil(t, env.Data)
	assert.Equal(t, "Jakarta", env.Data.Data.Destination)
	assert.Equal(t, "WITH DELIVERY COURIER", env.Data.Data.Manifest[0].Desc)
}

func TestAPIAdapter_Track_ErrorEnvelope(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":true,"status":404,"message":"Invalid waybill"}`))
	})

	env, err := adapter.Track(context.Background(), domain.TrackQuery{Courier: "jne", Waybill: "nope"})
	require.NoError(t, err)
	assert.True(t, env.Error)
	assert.Equal(t, 404, env.Status)
	assert.Equal(t, "Invalid waybill", env.Message)
}

func TestAPIAdapter_Track_UnrecognizedShape(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"ok"}`))
	})

	_, err := adapter.Track(context.Background(), domain.TrackQuery{Courier: "jne", Waybill: "X"})
	var nerr *apperror.NormalizationError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "tracking", nerr.Kind)
}

func TestAPIAdapter_Track_TransportError(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"meta":{"message":"waybill not found","code":400,"status":"error"}}`))
	})

	_, err := adapter.Track(context.Background(), domain.TrackQuery{Courier: "jne", Waybill: "X"})
	var te *apiclient.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "waybill not found", te.Message())
}
