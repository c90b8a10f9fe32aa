package app

import (
	"fmt"
	"strings"

	"numguru/internal/config"
	"numguru/internal/delivery/http/handler"
	"numguru/internal/delivery/http/middleware"
	"numguru/internal/delivery/http/routes"
	v1 "numguru/internal/delivery/http/routes/v1"
	"numguru/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: 1 << 20,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, l *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, l)
	if err != nil {
		return nil, nil, err
	}
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(c.Logger, c.Metrics)
	errMw := middleware.NewErrorMiddleware(c.Logger)

	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
	app.Use(cors.New(corsConfig(c.Config.App)))
}

func allowedOrigins(cfg config.AppConfig) []string {
	if len(cfg.CORSOrigins) > 0 {
		return cfg.CORSOrigins
	}
	if cfg.IsDevelopment() {
		return []string{"*"}
	}
	return []string{cfg.PublicBaseURL}
}

func corsConfig(cfg config.AppConfig) cors.Config {
	return cors.Config{
		AllowOrigins: allowedOrigins(cfg),
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders: []string{fiber.HeaderContentType, fiber.HeaderAuthorization, middleware.HeaderRequestID},
	}
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	checks := map[string]handler.Pinger{}
	if c.Cache != nil {
		checks["redis"] = c.Cache
	}
	if c.DB != nil {
		checks["database"] = c.DB
	}

	reg := &routes.Registry{
		Health:  handler.NewHealthHandler(checks),
		Metrics: handler.NewMetricsHandler(c.Metrics.Handler()),
		Sitemap: handler.NewSitemapHandler(c.Config.App.PublicBaseURL, c.Blog),
		Legacy:  handler.NewLegacyPaymentHandler(c.Payments, c.Logger),
		WS:      ws.NewHandler(c.Hub, c.Orders, allowedOrigins(c.Config.App), c.Logger),
		V1: v1.Handlers{
			Reading: handler.NewReadingHandler(c.Readings),
			Pricing: handler.NewPricingHandler(c.Pricing),
			Payment: handler.NewPaymentHandler(c.Payments),
			Blog:    handler.NewBlogHandler(c.Blog),
		},
	}
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
