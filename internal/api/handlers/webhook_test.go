package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/midtrans"
	"github.com/rupavo/payments-api/internal/service"
	"github.com/rupavo/payments-api/pkg/errors"
)

type fakeWebhookService struct {
	result  *service.NotificationResult
	err     error
	calls   int
	lastRaw []byte
}

func (f *fakeWebhookService) HandleNotification(_ context.Context, _ midtrans.Notification, rawPayload []byte) (*service.NotificationResult, error) {
	f.calls++
	f.lastRaw = rawPayload
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func postNotification(t *testing.T, svc WebhookService, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/v1/payments/notification", HandleNotification(svc, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/v1/payments/notification", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func notificationBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(midtrans.Notification{
		TransactionID:     "mt-123",
		OrderID:           "kopi-rupa-a1b2c3d4-1700000000000",
		GrossAmount:       "140000.00",
		PaymentType:       "qris",
		TransactionStatus: "settlement",
		SignatureKey:      "aabbcc",
		StatusCode:        "200",
	})
	require.NoError(t, err)
	return body
}

func TestHandleNotificationOK(t *testing.T) {
	svc := &fakeWebhookService{result: &service.NotificationResult{
		Status:      "settlement",
		OrderStatus: "confirmed",
	}}

	w := postNotification(t, svc, notificationBody(t))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "settlement", resp["status"])
	assert.Equal(t, "confirmed", resp["order_status"])

	assert.Equal(t, 1, svc.calls)
	// The raw body reaches the service byte for byte
	assert.JSONEq(t, string(notificationBody(t)), string(svc.lastRaw))
}

func TestHandleNotificationMalformedBody(t *testing.T) {
	svc := &fakeWebhookService{}

	w := postNotification(t, svc, []byte(`{not json`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestHandleNotificationMissingFields(t *testing.T) {
	svc := &fakeWebhookService{}

	// No order_id and no signature_key
	w := postNotification(t, svc, []byte(`{"transaction_status":"settlement"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestHandleNotificationBadSignature(t *testing.T) {
	svc := &fakeWebhookService{err: &errors.ErrUnauthorized{Message: "invalid signature"}}

	w := postNotification(t, svc, notificationBody(t))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	svc := &fakeWebhookService{err: &errors.ErrNotFound{Resource: "transaction", ID: "x"}}

	w := postNotification(t, svc, notificationBody(t))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleNotificationInternalError(t *testing.T) {
	svc := &fakeWebhookService{err: fmt.Errorf("database is down")}

	w := postNotification(t, svc, notificationBody(t))

	// Non-2xx tells the gateway to redeliver later
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal error", resp["error"])
}
