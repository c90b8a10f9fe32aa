package v1

import (
	"numguru/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterPayments(r fiber.Router, paymentHandler *handler.PaymentHandler) {
	if r == nil {
		return
	}
	if paymentHandler == nil {
		return
	}

	paymentHandler.RegisterRoutes(r)
}
