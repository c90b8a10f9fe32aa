package payment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"numguru/internal/domain/payment"

	"go.uber.org/zap"
)

const (
	webhookDedupeTTL    = 48 * time.Hour
	webhookDedupePrefix = "payments:webhook:"
	releaseTimeout      = 2 * time.Second
)

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

type WebhookResult struct {
	Event     string         `json:"event"`
	OrderID   string         `json:"order_id,omitempty"`
	Status    payment.Status `json:"status,omitempty"`
	Duplicate bool           `json:"duplicate"`
	Ignored   bool           `json:"ignored"`
}

// HandleWebhook authenticates a gateway webhook by HMAC over the raw body and
// applies payment.captured, order.paid and payment.failed to the ledger.
// Each event id is processed at most once while the de-duplication store is
// reachable; without it delivery is at-least-once.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature, eventID string) (WebhookResult, error) {
	if s.cfg.WebhookSecret == "" {
		s.metrics.RecordPayment("webhook", "not_configured")
		return WebhookResult{}, ErrNotConfigured
	}
	if !ValidSignature(s.cfg.WebhookSecret, string(body), signature) {
		s.metrics.RecordPayment("webhook", "bad_signature")
		return WebhookResult{}, ErrInvalidSignature
	}

	var p webhookPayload
	if err := json.Unmarshal(body, &p); err != nil || p.Event == "" {
		s.metrics.RecordPayment("webhook", "invalid")
		return WebhookResult{}, fmt.Errorf("%w: malformed webhook body", ErrInvalidInput)
	}
	res := WebhookResult{Event: p.Event}

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		sum := sha256.Sum256(body)
		eventID = hex.EncodeToString(sum[:])
	}
	dedupeKey := ""
	if s.dedupe != nil {
		fresh, err := s.dedupe.SetIfNotExists(ctx, webhookDedupePrefix+eventID, "1", webhookDedupeTTL)
		switch {
		case err != nil:
			s.logger.Debug("webhook de-duplication unavailable", zap.Error(err))
		case !fresh:
			s.metrics.RecordPayment("webhook", "duplicate")
			res.Duplicate = true
			return res, nil
		default:
			dedupeKey = webhookDedupePrefix + eventID
		}
	}

	var status payment.Status
	orderID := p.Payload.Payment.Entity.OrderID
	paymentID := p.Payload.Payment.Entity.ID
	switch p.Event {
	case "payment.captured":
		status = payment.StatusCaptured
	case "order.paid":
		status = payment.StatusCaptured
		if orderID == "" {
			orderID = p.Payload.Order.Entity.ID
		}
	case "payment.failed":
		status = payment.StatusFailed
	default:
		s.metrics.RecordPayment("webhook", "ignored")
		res.Ignored = true
		return res, nil
	}
	if orderID == "" {
		s.metrics.RecordPayment("webhook", "invalid")
		return res, fmt.Errorf("%w: webhook without order id", ErrInvalidInput)
	}
	res.OrderID = orderID

	o, err := s.orders.UpdateStatus(ctx, orderID, status, paymentID)
	if err != nil {
		if errors.Is(err, payment.ErrOrderNotFound) {
			s.logger.Warn("webhook for unknown order", zap.String("event", p.Event), zap.String("order_id", orderID))
			s.metrics.RecordPayment("webhook", "unknown_order")
			res.Ignored = true
			return res, nil
		}
		s.metrics.RecordPayment("webhook", "error")
		s.releaseDedupe(dedupeKey)
		return res, fmt.Errorf("%w: update order: %w", ErrInternal, err)
	}

	res.Status = o.Status
	s.publish(o, "webhook")
	s.metrics.RecordPayment("webhook", "ok")
	s.logger.Info("payment webhook applied",
		zap.String("event", p.Event),
		zap.String("order_id", orderID),
		zap.String("status", string(o.Status)),
	)
	return res, nil
}

// releaseDedupe forgets an event whose processing failed so a redelivery is
// applied.
func (s *Service) releaseDedupe(key string) {
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	if err := s.dedupe.Delete(ctx, key); err != nil {
		s.logger.Warn("release webhook de-duplication key", zap.String("key", key), zap.Error(err))
	}
}
