package ws

import (
	"encoding/json"

	"numguru/internal/domain/payment"
)

const (
	EventTypePaymentStatus = "payment_status"

	sourceSnapshot = "snapshot"
)

// PaymentStatusEvent is the frame subscribers receive.
type PaymentStatusEvent struct {
	Type string `json:"type"`
	payment.StatusEvent
}

// PaymentNotifier publishes order status changes to the order's subscribers.
type PaymentNotifier struct {
	hub *Hub
}

func NewPaymentNotifier(hub *Hub) *PaymentNotifier {
	return &PaymentNotifier{hub: hub}
}

func (n *PaymentNotifier) PublishStatus(evt payment.StatusEvent) {
	if n == nil || n.hub == nil || evt.OrderID == "" {
		return
	}
	b, err := encodeStatus(evt)
	if err != nil {
		return
	}
	n.hub.Publish(evt.OrderID, b)
}

func encodeStatus(evt payment.StatusEvent) ([]byte, error) {
	return json.Marshal(PaymentStatusEvent{Type: EventTypePaymentStatus, StatusEvent: evt})
}

// snapshotMessage describes the stored state of o as a status event.
func snapshotMessage(o payment.Order) ([]byte, error) {
	return encodeStatus(payment.StatusEvent{
		OrderID:   o.OrderID,
		PaymentID: o.PaymentID,
		Status:    o.Status,
		Source:    sourceSnapshot,
		Timestamp: o.UpdatedAt.UTC(),
	})
}

var _ payment.EventPublisher = (*PaymentNotifier)(nil)
