package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"numguru/internal/domain/payment"
)

// PaymentOrderRepository keeps the ledger in process memory. It is used when
// no database is configured and in tests.
type PaymentOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]payment.Order
	now    func() time.Time
}

func NewPaymentOrderRepository() *PaymentOrderRepository {
	return &PaymentOrderRepository{orders: make(map[string]payment.Order), now: time.Now}
}

func (r *PaymentOrderRepository) Create(_ context.Context, o payment.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.OrderID]; ok {
		return payment.ErrOrderAlreadyExists
	}
	now := r.now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
	if o.Status == "" {
		o.Status = payment.StatusCreated
	}
	r.orders[o.OrderID] = o
	return nil
}

func (r *PaymentOrderRepository) Get(_ context.Context, orderID string) (payment.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[strings.TrimSpace(orderID)]
	if !ok {
		return payment.Order{}, payment.ErrOrderNotFound
	}
	return o, nil
}

func (r *PaymentOrderRepository) UpdateStatus(_ context.Context, orderID string, status payment.Status, paymentID string) (payment.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[strings.TrimSpace(orderID)]
	if !ok {
		return payment.Order{}, payment.ErrOrderNotFound
	}
	if !o.Status.Advances(status) {
		return o, nil
	}
	o.Status = status
	if paymentID != "" {
		o.PaymentID = paymentID
	}
	o.UpdatedAt = r.now().UTC()
	r.orders[o.OrderID] = o
	return o, nil
}

func (r *PaymentOrderRepository) BindReading(_ context.Context, orderID, readingKey string) (payment.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[strings.TrimSpace(orderID)]
	if !ok {
		return payment.Order{}, payment.ErrOrderNotFound
	}
	if o.ReadingKey != "" || readingKey == "" {
		return o, nil
	}
	o.ReadingKey = readingKey
	o.UpdatedAt = r.now().UTC()
	r.orders[o.OrderID] = o
	return o, nil
}

var _ payment.Repository = (*PaymentOrderRepository)(nil)
