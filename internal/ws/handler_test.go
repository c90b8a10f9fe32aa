package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"numguru/internal/domain/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrders map[string]payment.Order

func (s stubOrders) Get(_ context.Context, orderID string) (payment.Order, error) {
	o, ok := s[orderID]
	if !ok {
		return payment.Order{}, payment.ErrOrderNotFound
	}
	return o, nil
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://numguru.online/", " https://www.numguru.online"})

	cases := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://numguru.online", true},
		{"https://NUMGURU.online/", true},
		{"https://www.numguru.online", true},
		{"https://evil.example", false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/ws/payments?order_id=order_1", nil)
		if tc.origin != "" {
			r.Header.Set("Origin", tc.origin)
		}
		assert.Equal(t, tc.want, check(r), "origin %q", tc.origin)
	}

	r := httptest.NewRequest("GET", "/ws/payments", nil)
	r.Header.Set("Origin", "https://anything.example")
	assert.True(t, originChecker([]string{"*"})(r))
}

func TestHandler_Snapshot(t *testing.T) {
	updated := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	h := NewHandler(nil, stubOrders{
		"order_1": {OrderID: "order_1", Status: payment.StatusCaptured, PaymentID: "pay_1", UpdatedAt: updated},
	}, nil, nil)

	msg, ok := h.snapshot("order_1")
	require.True(t, ok)

	var evt PaymentStatusEvent
	require.NoError(t, json.Unmarshal(msg, &evt))
	assert.Equal(t, EventTypePaymentStatus, evt.Type)
	assert.Equal(t, "order_1", evt.OrderID)
	assert.Equal(t, payment.StatusCaptured, evt.Status)
	assert.Equal(t, "snapshot", evt.Source)
	assert.True(t, evt.Timestamp.Equal(updated))

	_, ok = h.snapshot("order_missing")
	assert.False(t, ok)

	_, ok = NewHandler(nil, nil, nil, nil).snapshot("order_1")
	assert.False(t, ok)
}
