package payment

import (
	"context"
	"errors"
	"time"
)

type Status string

const (
	StatusCreated  Status = "created"
	StatusVerified Status = "verified"
	StatusCaptured Status = "captured"
	StatusFailed   Status = "failed"
)

const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
)

var (
	ErrOrderNotFound      = errors.New("payment order not found")
	ErrOrderAlreadyExists = errors.New("payment order already exists")
)

// Order is one checkout attempt. Amount is in minor units (paise, cents).
type Order struct {
	OrderID    string
	Receipt    string
	Amount     int64
	Currency   string
	Status     Status
	PaymentID  string
	ReadingKey string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Advances reports whether moving from s to next is a forward transition.
// A captured or failed order is final, and verification never downgrades a
// capture that arrived first by webhook.
func (s Status) Advances(next Status) bool {
	switch s {
	case StatusCreated:
		return next == StatusVerified || next == StatusCaptured || next == StatusFailed
	case StatusVerified:
		return next == StatusCaptured || next == StatusFailed
	default:
		return false
	}
}

func SupportedCurrency(c string) bool {
	return c == CurrencyINR || c == CurrencyUSD
}

type Repository interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, orderID string) (Order, error)
	// UpdateStatus applies status and paymentID when the transition advances
	// the order. It returns the stored order after the call.
	UpdateStatus(ctx context.Context, orderID string, status Status, paymentID string) (Order, error)
	// BindReading records readingKey on an order that has none. An order
	// already bound keeps its key. It returns the stored order after the call.
	BindReading(ctx context.Context, orderID, readingKey string) (Order, error)
}

type GatewayOrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// Gateway creates orders at the payment provider.
type Gateway interface {
	CreateOrder(ctx context.Context, req GatewayOrderRequest) (GatewayOrder, error)
}

// StatusEvent is pushed to subscribers of an order whenever its status moves.
type StatusEvent struct {
	OrderID   string    `json:"order_id"`
	PaymentID string    `json:"payment_id,omitempty"`
	Status    Status    `json:"status"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

type EventPublisher interface {
	PublishStatus(evt StatusEvent)
}
