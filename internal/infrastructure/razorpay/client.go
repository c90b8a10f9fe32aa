package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"numguru/internal/domain/payment"
	"numguru/internal/observability"
	"numguru/internal/pkg/logger"

	"go.uber.org/zap"
)

var ErrMissingCredentials = errors.New("razorpay credentials missing")

// APIError is a non-2xx answer from the orders API.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("razorpay: status=%d code=%s: %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("razorpay: status=%d", e.StatusCode)
}

// Body rebuilds the error document the orders API answered with.
func (e *APIError) Body() map[string]any {
	return map[string]any{
		"error": map[string]string{
			"code":        e.Code,
			"description": e.Description,
		},
	}
}

type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
	logger    *zap.Logger
	metrics   *observability.Metrics
}

func NewClient(baseURL, keyID, keySecret string, timeout time.Duration, l *zap.Logger, metrics *observability.Metrics) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}
	return &Client{
		baseURL:   baseURL,
		keyID:     strings.TrimSpace(keyID),
		keySecret: strings.TrimSpace(keySecret),
		client:    &http.Client{Timeout: timeout},
		logger:    logger.OrNop(l),
		metrics:   metrics,
	}
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) CreateOrder(ctx context.Context, in payment.GatewayOrderRequest) (payment.GatewayOrder, error) {
	if c == nil || c.client == nil {
		return payment.GatewayOrder{}, errors.New("nil razorpay client")
	}
	if c.keyID == "" || c.keySecret == "" {
		return payment.GatewayOrder{}, ErrMissingCredentials
	}
	endpoint := c.baseURL + "/v1/orders"

	b, err := json.Marshal(createOrderRequest{
		Amount:   in.Amount,
		Currency: in.Currency,
		Receipt:  in.Receipt,
		Notes:    in.Notes,
	})
	if err != nil {
		return payment.GatewayOrder{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return payment.GatewayOrder{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	start := time.Now()
	resp, err := c.client.Do(req)
	c.metrics.ObserveUpstream("razorpay", time.Since(start))
	if err != nil {
		return payment.GatewayOrder{}, fmt.Errorf("razorpay create order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er errorResponse
		if json.Unmarshal(rb, &er) == nil {
			apiErr.Code = er.Error.Code
			apiErr.Description = er.Error.Description
		}
		c.logger.Warn("razorpay create order failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("body", strings.TrimSpace(string(rb))),
		)
		return payment.GatewayOrder{}, apiErr
	}

	var out orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return payment.GatewayOrder{}, fmt.Errorf("decode razorpay order: %w", err)
	}
	if out.ID == "" {
		return payment.GatewayOrder{}, errors.New("razorpay order without id")
	}

	return payment.GatewayOrder{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Receipt:  out.Receipt,
		Status:   out.Status,
	}, nil
}

var _ payment.Gateway = (*Client)(nil)
