package handler

import (
	"context"
	"time"

	"numguru/internal/delivery/http/dto"
	"numguru/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const healthCheckTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness. A failing dependency marks the service
// degraded but still answers 200.
type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	out := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			out[name] = p
		}
	}
	return &HealthHandler{checks: out}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	res := dto.HealthResponse{Status: "ok"}
	if len(h.checks) > 0 {
		res.Checks = make(map[string]string, len(h.checks))
	}

	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			res.Checks[name] = "down"
			res.Status = "degraded"
			continue
		}
		res.Checks[name] = "up"
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
