package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"numguru/internal/domain/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateOrder(t *testing.T) {
	var got createOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_ABC","entity":"order","amount":499,"currency":"USD","receipt":"rcpt_1","status":"created"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key_id", "key_secret", time.Second, nil, nil)
	order, err := c.CreateOrder(context.Background(), payment.GatewayOrderRequest{Amount: 499, Currency: "USD", Receipt: "rcpt_1"})
	require.NoError(t, err)

	assert.Equal(t, createOrderRequest{Amount: 499, Currency: "USD", Receipt: "rcpt_1"}, got)
	assert.Equal(t, "order_ABC", order.ID)
	assert.Equal(t, int64(499), order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestClient_CreateOrder_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"The amount must be atleast INR 1.00"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "id", "secret", time.Second, nil, nil)
	_, err := c.CreateOrder(context.Background(), payment.GatewayOrderRequest{Amount: 1, Currency: "INR", Receipt: "r"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "BAD_REQUEST_ERROR", apiErr.Code)
	assert.Contains(t, apiErr.Error(), "atleast")
}

func TestClient_CreateOrder_MissingCredentials(t *testing.T) {
	c := NewClient("", "", "", 0, nil, nil)
	_, err := c.CreateOrder(context.Background(), payment.GatewayOrderRequest{Amount: 1})
	assert.True(t, errors.Is(err, ErrMissingCredentials))
}
