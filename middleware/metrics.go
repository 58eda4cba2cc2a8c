package middleware

import (
	"strconv"
	"time"

	"warrantyhub/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestMetrics records request latency by matched route.
func RequestMetrics(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	code := c.Response().StatusCode()
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
		} else {
			code = fiber.StatusInternalServerError
		}
	}

	route := c.Route().Path
	if route == "" {
		route = "unmatched"
	}
	utils.HTTPRequestDuration.
		WithLabelValues(c.Method(), route, strconv.Itoa(code)).
		Observe(time.Since(start).Seconds())

	return err
}
