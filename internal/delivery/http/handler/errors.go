package handler

import (
	"errors"

	"numguru/internal/delivery/http/middleware"
	"numguru/internal/domain/blog"
	"numguru/internal/pkg/response"
	paymentuc "numguru/internal/usecase/payment"
	readinguc "numguru/internal/usecase/reading"

	"github.com/gofiber/fiber/v3"
)

func mapReadingError(err error) error {
	switch {
	case errors.Is(err, readinguc.ErrInvalidShareCode):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid share code", nil, err)
	case errors.Is(err, readinguc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "A name and a valid date of birth (YYYY-MM-DD) are required", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapPaymentError(err error) error {
	switch {
	case errors.Is(err, paymentuc.ErrInvalidSignature):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid signature", map[string]bool{"verified": false}, err)
	case errors.Is(err, paymentuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid payment request", nil, err)
	case errors.Is(err, paymentuc.ErrNotConfigured):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Payments are not configured", nil, err)
	case errors.Is(err, paymentuc.ErrGateway):
		return middleware.NewAppError(fiber.StatusBadGateway, "Payment gateway error", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapBlogError(err error) error {
	if errors.Is(err, blog.ErrPostNotFound) {
		return middleware.NewAppError(fiber.StatusNotFound, "Post not found", nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
