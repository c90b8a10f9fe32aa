package handler

import (
	"context"

	"numguru/internal/domain/blog"
	"numguru/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type BlogUsecase interface {
	List(ctx context.Context) ([]blog.Summary, error)
	Get(ctx context.Context, slug string) (blog.Post, error)
	Slugs() ([]string, error)
}

type BlogHandler struct {
	uc BlogUsecase
}

func NewBlogHandler(uc BlogUsecase) *BlogHandler {
	return &BlogHandler{uc: uc}
}

func (h *BlogHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/blog/posts", h.List)
	r.Get("/blog/posts/:slug", h.Get)
}

func (h *BlogHandler) List(c fiber.Ctx) error {
	posts, err := h.uc.List(c.Context())
	if err != nil {
		return mapBlogError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, posts)
}

func (h *BlogHandler) Get(c fiber.Ctx) error {
	post, err := h.uc.Get(c.Context(), c.Params("slug"))
	if err != nil {
		return mapBlogError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, post)
}
