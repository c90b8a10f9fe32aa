package v1

import (
	"numguru/internal/delivery/http/handler"
	"numguru/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Reading *handler.ReadingHandler
	Pricing *handler.PricingHandler
	Payment *handler.PaymentHandler
	Blog    *handler.BlogHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	unlockMw := middleware.NewUnlockTokenMiddleware()

	RegisterReadings(r.Group("", unlockMw.Middleware()), h.Reading)
	RegisterPayments(r, h.Payment)
	if h.Pricing != nil {
		h.Pricing.RegisterRoutes(r)
	}
	if h.Blog != nil {
		h.Blog.RegisterRoutes(r)
	}
}
