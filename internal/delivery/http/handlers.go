package http

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/internal/hotspot"
	"github.com/Abhisg5/trafficDetector/internal/service"
)

// Handler contains all HTTP handlers.
type Handler struct {
	svc *service.TrafficService
}

// NewHandler creates a new handler.
func NewHandler(svc *service.TrafficService) *Handler {
	return &Handler{svc: svc}
}

// HealthCheck returns service health status.
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	if err := h.svc.Health(c.Context()); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "storage unavailable")
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "trafficdetector",
	})
}

// CollectTraffic collects live readings for one location and persists them.
func (h *Handler) CollectTraffic(c *fiber.Ctx) error {
	location := pathLocation(c)
	sources := splitSources(c.Query("sources"))

	readings, ids, err := h.svc.CollectAndSave(c.Context(), location, sources)
	if err != nil {
		return mapError(err)
	}
	if len(readings) == 0 {
		return fiber.NewError(fiber.StatusNotFound,
			"No traffic data available for this location. Please check your API keys.")
	}

	return c.JSON(fiber.Map{
		"message":     "Traffic data collected successfully",
		"location":    location,
		"sources":     sources,
		"data_points": len(readings),
		"saved_ids":   ids,
		"timestamp":   time.Now().UTC(),
	})
}

// bulkCollectRequest is the body of POST /bulk-collect.
type bulkCollectRequest struct {
	Locations []string `json:"locations"`
	Sources   []string `json:"sources"`
}

// BulkCollect collects readings for several locations sequentially,
// reporting per-location outcomes.
func (h *Handler) BulkCollect(c *fiber.Ctx) error {
	var req bulkCollectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.Locations) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No locations given")
	}

	results := make([]fiber.Map, 0, len(req.Locations))
	for _, location := range req.Locations {
		readings, ids, err := h.svc.CollectAndSave(c.Context(), location, req.Sources)
		if err != nil {
			results = append(results, fiber.Map{
				"location": location,
				"status":   "error",
				"error":    err.Error(),
			})
			continue
		}
		results = append(results, fiber.Map{
			"location":    location,
			"status":      "success",
			"data_points": len(readings),
			"saved_ids":   ids,
		})
	}

	return c.JSON(fiber.Map{
		"message":         "Bulk traffic data collection completed",
		"total_locations": len(req.Locations),
		"results":         results,
	})
}

// CurrentTraffic returns the most recent stored reading for a location.
func (h *Handler) CurrentTraffic(c *fiber.Ctx) error {
	reading, err := h.svc.Current(c.Context(), pathLocation(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(reading)
}

// HistoricalTraffic summarizes stored readings for a location over a
// trailing window.
func (h *Handler) HistoricalTraffic(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)

	summary, err := h.svc.Historical(c.Context(), pathLocation(c), days)
	if err != nil {
		return mapError(err)
	}
	if summary.TotalDataPoints == 0 {
		return fiber.NewError(fiber.StatusNotFound, "No historical traffic data found")
	}
	return c.JSON(summary)
}

// Hotspots runs a hotspot analysis over a region and window.
func (h *Handler) Hotspots(c *fiber.Ctx) error {
	region := c.Query("region")
	if region == "" {
		return fiber.NewError(fiber.StatusBadRequest, "region is required")
	}

	params := hotspot.Params{
		Region:        region,
		WindowDays:    c.QueryInt("days", 90),
		MinCongestion: c.QueryFloat("min_congestion", 0.4),
		TopN:          c.QueryInt("limit", hotspot.DefaultTopN),
	}

	report, err := h.svc.Hotspots(c.Context(), params)
	if err != nil {
		return mapError(err)
	}
	if report.TotalDataPoints == 0 {
		return fiber.NewError(fiber.StatusNotFound, "No traffic data found for region: "+region)
	}
	return c.JSON(report)
}

// pathLocation decodes the :location path parameter; place names contain
// spaces.
func pathLocation(c *fiber.Ctx) string {
	raw := c.Params("location")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func splitSources(q string) []string {
	if q == "" {
		return nil
	}
	parts := strings.Split(q, ",")
	sources := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sources = append(sources, p)
		}
	}
	return sources
}

// mapError translates core sentinel errors to HTTP statuses. Anything
// unclassified is a storage or internal failure.
func mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoReadings):
		return fiber.NewError(fiber.StatusNotFound, "No traffic data found for location")
	case errors.Is(err, domain.ErrInvalidArgument):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
