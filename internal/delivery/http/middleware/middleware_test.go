package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"numguru/internal/observability"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out), string(b))
	return out
}

func TestErrorMiddleware_Normalises(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/bad", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "Invalid share code", map[string]string{"field": "code"}, errors.New("decode"))
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password wrong", "secret", errors.New("boom"))
	})
	app.Get("/gateway", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadGateway, "razorpay said no", nil, nil)
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		return errors.New("plain")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("kaboom")
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/bad", 400, "Invalid share code"},
		{"/internal", 500, "internal server error"},
		{"/gateway", 502, "bad gateway"},
		{"/plain", 500, "internal server error"},
		{"/panic", 500, "internal server error"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
		b := body(t, resp)
		assert.EqualValues(t, tc.status, b["status"], tc.path)
		assert.Equal(t, tc.message, b["message"], tc.path)
		if tc.status >= 500 {
			assert.Nil(t, b["data"], tc.path)
		}
	}
}

func TestUnlockTokenMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewUnlockTokenMiddleware().Middleware())
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString(UnlockToken(c))
	})

	for header, want := range map[string]string{
		"Bearer abc.def": "abc.def",
		"bearer  xyz ":   "xyz",
		"Basic abc":      "",
		"Bearer":         "",
		"":               "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, want, string(b), header)
	}
}

func TestAccessLogMiddleware_SetsRequestID(t *testing.T) {
	metrics, err := observability.NewMetrics("test", nil)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(NewAccessLogMiddleware(nil, metrics).Middleware())
	app.Get("/ok", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "rid-1", resp.Header.Get(HeaderRequestID))
}
