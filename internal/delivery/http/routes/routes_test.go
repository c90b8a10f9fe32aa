package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"numguru/internal/delivery/http/handler"
	v1 "numguru/internal/delivery/http/routes/v1"
	"numguru/internal/pkg/unlock"
	readinguc "numguru/internal/usecase/reading"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_MountsRoutes(t *testing.T) {
	app := fiber.New()
	reg := &Registry{
		Health: handler.NewHealthHandler(nil),
		V1: v1.Handlers{
			Reading: handler.NewReadingHandler(readinguc.NewService(unlock.NewHMACService("s", time.Hour), nil, nil)),
		},
	}
	reg.Register(app)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/v1/readings/shared/Sm9obiBTbWl0aHw2NDI3Mjk2MDAwMDA", http.StatusOK},
		{http.MethodGet, "/api/v1/pricing", http.StatusNotFound},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, tc.path)
	}
}

func TestRegistry_NilSafe(t *testing.T) {
	var reg *Registry
	reg.Register(fiber.New())
	(&Registry{}).Register(nil)
}
