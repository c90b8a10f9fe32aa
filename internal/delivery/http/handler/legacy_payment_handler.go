package handler

import (
	"errors"

	"numguru/internal/delivery/http/dto"
	"numguru/internal/infrastructure/razorpay"
	"numguru/internal/pkg/logger"
	"numguru/internal/pkg/response"
	paymentuc "numguru/internal/usecase/payment"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// LegacyPaymentHandler serves the checkout endpoints the deployed frontend
// already calls. Bodies are written without the response envelope.
type LegacyPaymentHandler struct {
	uc     PaymentUsecase
	logger *zap.Logger
}

func NewLegacyPaymentHandler(uc PaymentUsecase, l *zap.Logger) *LegacyPaymentHandler {
	return &LegacyPaymentHandler{uc: uc, logger: logger.OrNop(l)}
}

func (h *LegacyPaymentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/create-razorpay-order", h.CreateOrder)
	r.Post("/verify-razorpay-payment", h.Verify)
	r.All("/create-razorpay-order", methodNotAllowed)
	r.All("/verify-razorpay-payment", methodNotAllowed)
}

func (h *LegacyPaymentHandler) CreateOrder(c fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Raw(c, fiber.StatusBadRequest, dto.LegacyError{Error: "Valid amount is required"})
	}

	out, err := h.uc.CreateOrder(c.Context(), paymentuc.CreateOrderInput{
		Amount:   float64(req.Amount),
		Currency: req.Currency,
	})
	if err == nil {
		return response.Raw(c, fiber.StatusOK, out)
	}

	var apiErr *razorpay.APIError
	switch {
	case errors.Is(err, paymentuc.ErrInvalidInput):
		return response.Raw(c, fiber.StatusBadRequest, dto.LegacyError{Error: "Valid amount is required"})
	case errors.Is(err, paymentuc.ErrNotConfigured):
		return response.Raw(c, fiber.StatusInternalServerError, dto.LegacyError{Error: "Razorpay keys not configured"})
	case errors.As(err, &apiErr):
		return response.Raw(c, apiErr.StatusCode, apiErr.Body())
	default:
		h.logger.Error("legacy create order failed", zap.Error(err))
		return response.Raw(c, fiber.StatusInternalServerError, dto.LegacyError{Error: "Failed to create order"})
	}
}

func (h *LegacyPaymentHandler) Verify(c fiber.Ctx) error {
	var req dto.VerifyPaymentRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Raw(c, fiber.StatusBadRequest, dto.LegacyVerifyResponse{Verified: false, Error: "Invalid signature"})
	}

	_, err := h.uc.Verify(c.Context(), paymentuc.VerifyInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	switch {
	case err == nil:
		return response.Raw(c, fiber.StatusOK, dto.LegacyVerifyResponse{Verified: true})
	case errors.Is(err, paymentuc.ErrNotConfigured):
		return response.Raw(c, fiber.StatusInternalServerError, dto.LegacyError{Error: "Razorpay secret not configured"})
	case errors.Is(err, paymentuc.ErrInvalidSignature), errors.Is(err, paymentuc.ErrInvalidInput):
		return response.Raw(c, fiber.StatusBadRequest, dto.LegacyVerifyResponse{Verified: false, Error: "Invalid signature"})
	default:
		h.logger.Error("legacy verify failed", zap.Error(err))
		return response.Raw(c, fiber.StatusInternalServerError, dto.LegacyError{Error: "Verification failed"})
	}
}

func methodNotAllowed(c fiber.Ctx) error {
	return response.Raw(c, fiber.StatusMethodNotAllowed, dto.LegacyError{Error: "Method not allowed"})
}
