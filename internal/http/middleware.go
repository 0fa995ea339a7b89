package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/metrics"
)

// Metrics records request counts and latency by route template. Errors are
// rendered here so the recorded status is the one the client sees.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		endpoint := c.Route().Path
		metrics.RequestDuration.WithLabelValues(c.Method(), endpoint).Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(c.Method(), endpoint, strconv.Itoa(c.Response().StatusCode())).Inc()
		return nil
	}
}
