package handler

import (
	"bytes"
	"time"

	"numguru/internal/delivery/http/middleware"
	"numguru/internal/pkg/response"
	"numguru/internal/sitemap"

	"github.com/gofiber/fiber/v3"
)

type SlugLister interface {
	Slugs() ([]string, error)
}

type SitemapHandler struct {
	baseURL string
	slugs   SlugLister
	now     func() time.Time
}

func NewSitemapHandler(baseURL string, slugs SlugLister) *SitemapHandler {
	return &SitemapHandler{baseURL: baseURL, slugs: slugs, now: time.Now}
}

func (h *SitemapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/sitemap.xml", h.Sitemap)
}

func (h *SitemapHandler) Sitemap(c fiber.Ctx) error {
	slugs, err := h.slugs.Slugs()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	var buf bytes.Buffer
	if err := sitemap.Write(&buf, sitemap.Build(h.baseURL, slugs, h.now())); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.XML(c, fiber.StatusOK, buf.Bytes())
}
