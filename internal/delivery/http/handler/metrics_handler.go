package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type MetricsHandler struct {
	h http.Handler
}

func NewMetricsHandler(h http.Handler) *MetricsHandler {
	return &MetricsHandler{h: h}
}

func (m *MetricsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil || m.h == nil {
		return
	}
	r.Get("/metrics", adaptor.HTTPHandler(m.h))
}
