package v1

import (
	"numguru/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterReadings(r fiber.Router, readingHandler *handler.ReadingHandler) {
	if r == nil {
		return
	}
	if readingHandler == nil {
		return
	}

	readingHandler.RegisterRoutes(r)
}
