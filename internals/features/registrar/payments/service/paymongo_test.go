package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection reset by peer")
}

func TestCreatePaymentIntentSendsCentavos(t *testing.T) {
	var captured map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payment_intents", r.URL.Path)
		require.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("sk_test_123:")), r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"pi_abc","attributes":{"status":"awaiting_payment_method"}}}`))
	}))
	defer srv.Close()

	client := NewPayMongoClient("sk_test_123", srv.URL)

	intent, err := client.CreatePaymentIntent(context.Background(), decimal.NewFromFloat(150.50), "Document Request #7 - Cruz, Juan", map[string]string{"request_id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "pi_abc", intent.ID)
	assert.Equal(t, "awaiting_payment_method", intent.Status)

	attrs := captured["data"].(map[string]any)["attributes"].(map[string]any)
	assert.Equal(t, float64(15050), attrs["amount"])
	assert.Equal(t, "PHP", attrs["currency"])
	assert.Equal(t, "automatic", attrs["capture_type"])
	assert.Equal(t, "Document Request #7 - Cruz, Juan", attrs["description"])

	allowed := attrs["payment_method_allowed"].([]any)
	assert.Len(t, allowed, 7)
	assert.Contains(t, allowed, "gcash")
	assert.Contains(t, allowed, "grab_pay")
}

func TestCreatePaymentIntentJoinsErrorDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"detail":"amount is required"},{"detail":"currency is invalid"}]}`))
	}))
	defer srv.Close()

	client := NewPayMongoClient("sk_test_123", srv.URL)

	_, err := client.CreatePaymentIntent(context.Background(), decimal.NewFromInt(100), "", nil)
	require.Error(t, err)

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusBadRequest, ge.HTTPCode)
	assert.Contains(t, ge.Message, "amount is required, currency is invalid")
}

func TestAttachPaymentMethodReturnsRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/payment_methods":
			var payload map[string]any
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &payload))
			attrs := payload["data"].(map[string]any)["attributes"].(map[string]any)
			assert.Equal(t, "gcash", attrs["type"])

			_, _ = w.Write([]byte(`{"data":{"id":"pm_xyz","attributes":{}}}`))
		case "/payment_intents/pi_abc/attach":
			_, _ = w.Write([]byte(`{"data":{"id":"pi_abc","attributes":{"status":"awaiting_next_action","next_action":{"redirect":{"url":"https://pay.example/redirect"}}}}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewPayMongoClient("sk_test_123", srv.URL)

	result, err := client.AttachPaymentMethod(context.Background(), "pi_abc", "gcash", BillingInfo{
		Name:  "Cruz, Juan",
		Email: "juan@example.com",
		Phone: "09171234567",
	}, "http://localhost:8000/payments/return?request_id=7&payment_intent=pi_abc")
	require.NoError(t, err)
	assert.Equal(t, "awaiting_next_action", result.Status)
	assert.Equal(t, "https://pay.example/redirect", result.RedirectURL)
}

func TestTransportFailureRetriesOnceOverFallback(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("sk_test_123:")), r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"pi_abc","attributes":{"status":"awaiting_payment_method"}}}`))
	}))
	defer srv.Close()

	client := NewPayMongoClient("sk_test_123", srv.URL)
	client.client.Transport = failingTransport{}

	intent, err := client.CreatePaymentIntent(context.Background(), decimal.NewFromInt(100), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "pi_abc", intent.ID)
	assert.Equal(t, 1, calls)
}

func TestBothTransportsFailingSurfacesGatewayError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	deadAddr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := NewPayMongoClient("sk_test_123", "http://"+deadAddr)
	client.client.Transport = failingTransport{}

	_, err = client.CreatePaymentIntent(context.Background(), decimal.NewFromInt(100), "", nil)
	require.Error(t, err)

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Zero(t, ge.HTTPCode)
	assert.Contains(t, ge.Message, "HTTP request failed on both transports")
}

func TestAttachPaymentMethodFailsWhenMethodRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payment_methods", r.URL.Path)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"detail":"billing.phone format is invalid"}]}`))
	}))
	defer srv.Close()

	client := NewPayMongoClient("sk_test_123", srv.URL)

	_, err := client.AttachPaymentMethod(context.Background(), "pi_abc", "gcash", BillingInfo{}, "http://localhost:8000/payments/return")
	require.Error(t, err)

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Contains(t, ge.Message, "Failed to create payment method")
	assert.Contains(t, ge.Message, "billing.phone format is invalid")
}
