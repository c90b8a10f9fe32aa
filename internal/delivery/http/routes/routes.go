package routes

import (
	"numguru/internal/delivery/http/handler"
	v1 "numguru/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Router interface {
	RegisterRoutes(r fiber.Router)
}

// Registry holds every handler mounted on the app. Nil entries are skipped.
type Registry struct {
	Health  *handler.HealthHandler
	Metrics *handler.MetricsHandler
	Sitemap *handler.SitemapHandler
	Legacy  *handler.LegacyPaymentHandler
	WS      Router
	V1      v1.Handlers
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	r.registerRoot(app)
	r.registerAPI(app)
}

func (r *Registry) registerRoot(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.Metrics != nil {
		r.Metrics.RegisterRoutes(app)
	}
	if r.Sitemap != nil {
		r.Sitemap.RegisterRoutes(app)
	}
	if r.WS != nil {
		r.WS.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	if r.Legacy != nil {
		r.Legacy.RegisterRoutes(api)
	}
	RegisterV1(api.Group("/v1"), r.V1)
}
