package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"numguru/internal/domain/payment"
	"numguru/internal/observability"
	"numguru/internal/pkg/logger"
	"numguru/internal/pkg/unlock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotConfigured    = errors.New("payment gateway not configured")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrGateway          = errors.New("payment gateway error")
	ErrInternal         = errors.New("internal error")
)

const (
	receiptPrefix = "receipt_"
	// per order, in minor units
	maxMinorAmount = 1_000_000_00
)

type Config struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

// Deduper remembers keys for a while. SetIfNotExists reports false for a key
// that is already present.
type Deduper interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	cfg     Config
	gateway payment.Gateway
	orders  payment.Repository
	tokens  unlock.Service
	events  payment.EventPublisher
	dedupe  Deduper
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

type Deps struct {
	Gateway payment.Gateway
	Orders  payment.Repository
	Tokens  unlock.Service
	Events  payment.EventPublisher
	Dedupe  Deduper
	Metrics *observability.Metrics
	Logger  *zap.Logger
}

func NewService(cfg Config, d Deps) *Service {
	return &Service{
		cfg:     cfg,
		gateway: d.Gateway,
		orders:  d.Orders,
		tokens:  d.Tokens,
		events:  d.Events,
		dedupe:  d.Dedupe,
		metrics: d.Metrics,
		logger:  logger.OrNop(d.Logger),
		now:     time.Now,
	}
}

type CreateOrderInput struct {
	// Amount is in major units (rupees, dollars).
	Amount   float64
	Currency string
	// Name and DOB optionally tie the order to the reading it pays for.
	Name string
	DOB  time.Time
}

type CreateOrderOutput struct {
	OrderID  string `json:"order_id"`
	KeyID    string `json:"key_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (CreateOrderOutput, error) {
	minor, currency, err := normalizeAmount(in.Amount, in.Currency)
	if err != nil {
		s.metrics.RecordPayment("create_order", "invalid")
		return CreateOrderOutput{}, err
	}
	if s.cfg.KeyID == "" || s.cfg.KeySecret == "" || s.gateway == nil {
		s.logger.Error("razorpay keys not configured")
		s.metrics.RecordPayment("create_order", "not_configured")
		return CreateOrderOutput{}, ErrNotConfigured
	}

	requested := ""
	if strings.TrimSpace(in.Name) != "" && !in.DOB.IsZero() {
		requested = unlock.ReadingKey(in.Name, in.DOB)
	}

	out := VerifyOutput{Verified: true}
	o, err := s.orders.UpdateStatus(ctx, orderID, payment.StatusVerified, paymentID)
	if err == nil {
		s.publish(o, "verify")
		if o.ReadingKey == "" && requested != "" {
			o, err = s.orders.BindReading(ctx, orderID, requested)
		}
	}
	switch {
	case errors.Is(err, payment.ErrOrderNotFound):
		s.logger.Warn("verified payment for unknown order, no unlock issued", zap.String("order_id", orderID))
		s.metrics.RecordPayment("verify", "unknown_order")
		return out, nil
	case err != nil:
		s.logger.Error("update payment order, no unlock issued", zap.String("order_id", orderID), zap.Error(err))
		s.metrics.RecordPayment("verify", "ledger_error")
		return out, nil
	}

	// An order unlocks exactly the reading it is bound to.
	if requested != "" && requested != o.ReadingKey {
		s.logger.Warn("verify names a different reading than the paid order", zap.String("order_id", orderID))
		s.metrics.RecordPayment("verify", "reading_mismatch")
		return out, nil
	}
	if o.ReadingKey != "" && s.tokens != nil {
		tok, err := s.tokens.Issue(o.ReadingKey, orderID, paymentID)
		if err != nil {
			s.metrics.RecordPayment("verify", "token_error")
			return VerifyOutput{}, fmt.Errorf("%w: issue unlock token: %w", ErrInternal, err)
		}
		out.UnlockToken = &tok
	}

	s.metrics.RecordPayment("verify", "ok")
	return out, nil
}

func (s *Service) publish(o payment.Order, source string) {
	if s.events == nil {
		return
	}
	s.events.PublishStatus(payment.StatusEvent{
		OrderID:   o.OrderID,
		PaymentID: o.PaymentID,
		Status:    o.Status,
		Source:    source,
		Timestamp: s.now().UTC(),
	})
}

// ValidSignature compares hex(HMAC-SHA256(secret, payload)) with signature in
// constant time. Hex case is ignored.
func ValidSignature(secret, payload, signature string) bool {
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hmac.Equal(mac.Sum(nil), got)
}

// Sign is the counterpart of ValidSignature.
func Sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func normalizeAmount(amount float64, currency string) (int64, string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, "", fmt.Errorf("%w: valid amount is required", ErrInvalidInput)
	}
	minor := int64(math.Round(amount * 100))
	if minor <= 0 || minor > maxMinorAmount {
		return 0, "", fmt.Errorf("%w: valid amount is required", ErrInvalidInput)
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = payment.CurrencyINR
	}
	if !payment.SupportedCurrency(currency) {
		return 0, "", fmt.Errorf("%w: unsupported currency %q", ErrInvalidInput, currency)
	}
	return minor, currency, nil
}
