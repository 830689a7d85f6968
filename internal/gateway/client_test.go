package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second}, zap.NewNop().Sugar())
}

func TestPlaceOrderSuccess(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload domain.OrderPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "rest-1", payload.Restaurant)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"order": map[string]any{"order_id": "order-123", "status": "PENDING"},
		})
	})

	order, err := client.PlaceOrder(context.Background(), domain.OrderPayload{Restaurant: "rest-1"})
	require.NoError(t, err)

	assert.Equal(t, "order-123", order.OrderID)
	assert.Equal(t, "PENDING", order.Status)
}

func TestPlaceOrderValidationRejection(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]string{
				{"field": "address", "message": "address is outside the delivery zone"},
				{"field": "restaurant", "message": "restaurant is not accepting orders"},
			},
		})
	})

	_, err := client.PlaceOrder(context.Background(), domain.OrderPayload{})
	require.Error(t, err)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, FailureValidation, subErr.Kind)
	assert.Equal(t, "address is outside the delivery zone", subErr.Message)
	assert.Len(t, subErr.Fields, 2)
}

func TestPlaceOrderServerError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{})
	})

	_, err := client.PlaceOrder(context.Background(), domain.OrderPayload{})
	require.Error(t, err)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, FailureTransport, subErr.Kind)
}

func TestPlaceOrderUnreachable(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, zap.NewNop().Sugar())

	_, err := client.PlaceOrder(context.Background(), domain.OrderPayload{})
	require.Error(t, err)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, FailureTransport, subErr.Kind)
	assert.Equal(t, "order service unreachable", subErr.Message)
}
