package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"numguru/internal/pkg/unlock"
)

// Amount accepts a JSON number or a numeric string. Anything else decodes to
// zero, which the payment service rejects.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

type CreateOrderRequest struct {
	Amount   Amount `json:"amount"`
	Currency string `json:"currency"`
	Name     string `json:"name"`
	DOB      string `json:"dob"`
}

// VerifyPaymentRequest uses the field names the checkout widget hands back.
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	Name      string `json:"name"`
	DOB       string `json:"dob"`
}

type VerifyPaymentResponse struct {
	Verified        bool       `json:"verified"`
	UnlockToken     string     `json:"unlock_token,omitempty"`
	UnlockExpiresAt *time.Time `json:"unlock_expires_at,omitempty"`
}

func NewVerifyPaymentResponse(verified bool, tok *unlock.Token) VerifyPaymentResponse {
	res := VerifyPaymentResponse{Verified: verified}
	if tok != nil {
		exp := tok.ExpiresAt
		res.UnlockToken = tok.Value
		res.UnlockExpiresAt = &exp
	}
	return res
}

// LegacyError is the body of the original checkout endpoints on failure.
type LegacyError struct {
	Error string `json:"error"`
}

type LegacyVerifyResponse struct {
	Verified bool   `json:"verified"`
	Error    string `json:"error,omitempty"`
}
