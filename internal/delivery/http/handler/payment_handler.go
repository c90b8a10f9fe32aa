package handler

import (
	"context"
	"strings"
	"time"

	"numguru/internal/delivery/http/dto"
	"numguru/internal/delivery/http/middleware"
	"numguru/internal/pkg/response"
	paymentuc "numguru/internal/usecase/payment"
	readinguc "numguru/internal/usecase/reading"

	"github.com/gofiber/fiber/v3"
)

const (
	HeaderRazorpaySignature = "X-Razorpay-Signature"
	HeaderRazorpayEventID   = "X-Razorpay-Event-Id"
)

type PaymentUsecase interface {
	CreateOrder(ctx context.Context, in paymentuc.CreateOrderInput) (paymentuc.CreateOrderOutput, error)
	Verify(ctx context.Context, in paymentuc.VerifyInput) (paymentuc.VerifyOutput, error)
	HandleWebhook(ctx context.Context, body []byte, signature, eventID string) (paymentuc.WebhookResult, error)
}

type PaymentHandler struct {
	uc PaymentUsecase
}

func NewPaymentHandler(uc PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

func (h *PaymentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/payments/orders", h.CreateOrder)
	r.Post("/payments/verify", h.Verify)
	r.Post("/payments/webhook", h.Webhook)
}

func (h *PaymentHandler) CreateOrder(c fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	name, dob, err := optionalReading(req.Name, req.DOB)
	if err != nil {
		return mapReadingError(err)
	}

	out, err := h.uc.CreateOrder(c.Context(), paymentuc.CreateOrderInput{
		Amount:   float64(req.Amount),
		Currency: req.Currency,
		Name:     name,
		DOB:      dob,
	})
	if err != nil {
		return mapPaymentError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, out)
}

func (h *PaymentHandler) Verify(c fiber.Ctx) error {
	var req dto.VerifyPaymentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	name, dob, err := optionalReading(req.Name, req.DOB)
	if err != nil {
		return mapReadingError(err)
	}

	out, err := h.uc.Verify(c.Context(), paymentuc.VerifyInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
		Name:      name,
		DOB:       dob,
	})
	if err != nil {
		return mapPaymentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewVerifyPaymentResponse(out.Verified, out.UnlockToken))
}

func (h *PaymentHandler) Webhook(c fiber.Ctx) error {
	res, err := h.uc.HandleWebhook(c.Context(), c.Body(), c.Get(HeaderRazorpaySignature), c.Get(HeaderRazorpayEventID))
	if err != nil {
		return mapPaymentError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

// optionalReading parses name and dob when either is present. Both are then
// required.
func optionalReading(rawName, rawDOB string) (string, time.Time, error) {
	if strings.TrimSpace(rawName) == "" && strings.TrimSpace(rawDOB) == "" {
		return "", time.Time{}, nil
	}
	name, err := readinguc.ParseName(rawName)
	if err != nil {
		return "", time.Time{}, err
	}
	dob, err := readinguc.ParseDOB(rawDOB)
	if err != nil {
		return "", time.Time{}, err
	}
	return name, dob, nil
}
