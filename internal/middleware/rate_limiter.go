package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// ============================================================================
// RATE LIMITING MIDDLEWARE
// ============================================================================
// Protege el backend contra abuso. Dos niveles: un límite general laxo y
// uno estricto para /result, que dispara una consulta al feed del portal
// en cada hit.

// GlobalRateLimiter - Limitador general para todos los endpoints
// 300 requests por minuto por IP
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

// FeedRateLimiter - Limitador para endpoints que consultan el feed del
// portal (operación costosa y ajena). 30 requests por minuto por IP.
func FeedRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			// por IP + endpoint para mejor granularidad
			return c.IP() + ":" + c.Path()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Feed rate limit exceeded",
				"retry_after": 60,
				"message":     "This endpoint queries the live classroom feed and is limited to 30 requests per minute.",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
