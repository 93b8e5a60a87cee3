package midtrans

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/config"
	"github.com/rupavo/payments-api/pkg/errors"
)

func TestCoreAPIURL(t *testing.T) {
	assert.Equal(t, "https://api.sandbox.midtrans.com",
		coreAPIURL("https://app.sandbox.midtrans.com/snap/v1"))
	assert.Equal(t, "https://api.midtrans.com",
		coreAPIURL("https://app.midtrans.com/snap/v1"))
}

func TestCreateSnapTransaction(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var req SnapRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "order-1", req.TransactionDetails.OrderID)
		assert.Equal(t, int64(140000), req.TransactionDetails.GrossAmount)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"snap-token-abc","redirect_url":"https://example.test/redirect"}`))
	}))
	defer server.Close()

	client := NewClient(config.MidtransConfig{
		SnapURL:   server.URL + "/snap/v1",
		ServerKey: "server-key",
	}, zap.NewNop())

	resp, err := client.CreateSnapTransaction(context.Background(), SnapRequest{
		TransactionDetails: TransactionDetails{OrderID: "order-1", GrossAmount: 140000},
	})
	require.NoError(t, err)

	assert.Equal(t, "/snap/v1/transactions", gotPath)
	// Basic auth is base64(serverKey + ":")
	assert.Equal(t, "Basic c2VydmVyLWtleTo=", gotAuth)
	assert.Equal(t, "snap-token-abc", resp.Token)
	assert.Equal(t, "https://example.test/redirect", resp.RedirectURL)
	assert.JSONEq(t, `{"token":"snap-token-abc","redirect_url":"https://example.test/redirect"}`, string(resp.Raw))
}

func TestCreateSnapTransactionGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error_messages":["unauthorized"]}`))
	}))
	defer server.Close()

	client := NewClient(config.MidtransConfig{
		SnapURL:   server.URL + "/snap/v1",
		ServerKey: "wrong-key",
	}, zap.NewNop())

	_, err := client.CreateSnapTransaction(context.Background(), SnapRequest{
		TransactionDetails: TransactionDetails{OrderID: "order-1", GrossAmount: 140000},
	})
	var gatewayErr *errors.ErrGateway
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, http.StatusUnauthorized, gatewayErr.StatusCode)
	assert.Contains(t, gatewayErr.Body, "unauthorized")
}

func TestGetTransactionStatus(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"transaction_id": "mt-123",
			"order_id": "kopi-rupa-a1b2c3d4-1700000000000",
			"gross_amount": "140000.00",
			"payment_type": "qris",
			"transaction_status": "settlement",
			"status_code": "200"
		}`))
	}))
	defer server.Close()

	client := NewClient(config.MidtransConfig{
		SnapURL:   server.URL + "/snap/v1",
		ServerKey: "server-key",
	}, zap.NewNop())

	n, raw, err := client.GetTransactionStatus(context.Background(), "kopi-rupa-a1b2c3d4-1700000000000")
	require.NoError(t, err)

	// The status endpoint lives on the core API base, not under /snap/v1
	assert.Equal(t, "/v2/kopi-rupa-a1b2c3d4-1700000000000/status", gotPath)
	assert.Equal(t, "Basic c2VydmVyLWtleTo=", gotAuth)
	assert.Equal(t, "settlement", n.TransactionStatus)
	assert.Equal(t, "mt-123", n.TransactionID)
	assert.Contains(t, string(raw), "settlement")
}

func TestGetTransactionStatusNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_code":"404","status_message":"Transaction doesn't exist."}`))
	}))
	defer server.Close()

	client := NewClient(config.MidtransConfig{
		SnapURL:   server.URL + "/snap/v1",
		ServerKey: "server-key",
	}, zap.NewNop())

	_, _, err := client.GetTransactionStatus(context.Background(), "no-such-order")
	var gatewayErr *errors.ErrGateway
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, http.StatusNotFound, gatewayErr.StatusCode)
}
