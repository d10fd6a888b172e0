package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Abhisg5/trafficDetector/internal/service"
)

// SetupRoutes configures all HTTP routes.
func SetupRoutes(app *fiber.App, svc *service.TrafficService) {
	handler := NewHandler(svc)

	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1/traffic")
	{
		api.Get("/collect/:location", handler.CollectTraffic)
		api.Post("/bulk-collect", handler.BulkCollect)
		api.Get("/current/:location", handler.CurrentTraffic)
		api.Get("/historical/:location", handler.HistoricalTraffic)
		api.Get("/hotspots", handler.Hotspots)
	}
}
