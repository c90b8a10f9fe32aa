package handler

import (
	"context"

	"numguru/internal/delivery/http/dto"
	"numguru/internal/delivery/http/middleware"
	"numguru/internal/domain/numerology"
	"numguru/internal/pkg/response"
	readinguc "numguru/internal/usecase/reading"

	"github.com/gofiber/fiber/v3"
)

type ReadingUsecase interface {
	Generate(ctx context.Context, in readinguc.Input) (readinguc.View, error)
	Shared(ctx context.Context, code, unlockToken string) (readinguc.View, error)
	FreeReport(ctx context.Context, dob string) (numerology.FreeReport, error)
}

type ReadingHandler struct {
	uc ReadingUsecase
}

func NewReadingHandler(uc ReadingUsecase) *ReadingHandler {
	return &ReadingHandler{uc: uc}
}

// RegisterRoutes expects r to carry the unlock token middleware.
func (h *ReadingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/readings", h.Create)
	r.Get("/readings/shared/:code", h.Shared)
	r.Post("/reports/free", h.FreeReport)
}

func (h *ReadingHandler) Create(c fiber.Ctx) error {
	var req dto.ReadingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	token := req.UnlockToken
	if token == "" {
		token = middleware.UnlockToken(c)
	}

	view, err := h.uc.Generate(c.Context(), readinguc.Input{Name: req.Name, DOB: req.DOB, UnlockToken: token})
	if err != nil {
		return mapReadingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, view)
}

func (h *ReadingHandler) Shared(c fiber.Ctx) error {
	view, err := h.uc.Shared(c.Context(), c.Params("code"), middleware.UnlockToken(c))
	if err != nil {
		return mapReadingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, view)
}

func (h *ReadingHandler) FreeReport(c fiber.Ctx) error {
	var req dto.FreeReportRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	report, err := h.uc.FreeReport(c.Context(), req.DOB)
	if err != nil {
		return mapReadingError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, report)
}
