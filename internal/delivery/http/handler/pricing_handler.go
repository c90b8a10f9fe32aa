package handler

import (
	"context"
	"strings"

	"numguru/internal/pkg/response"
	pricinguc "numguru/internal/usecase/pricing"

	"github.com/gofiber/fiber/v3"
)

type PricingUsecase interface {
	Quote(ctx context.Context, ip string) pricinguc.Quote
}

type PricingHandler struct {
	uc PricingUsecase
}

func NewPricingHandler(uc PricingUsecase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

func (h *PricingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/pricing", h.Get)
}

func (h *PricingHandler) Get(c fiber.Ctx) error {
	q := h.uc.Quote(c.Context(), clientIP(c))
	return response.Success(c, fiber.StatusOK, response.MessageOK, q)
}

// clientIP prefers the first X-Forwarded-For hop.
func clientIP(c fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return c.IP()
}
