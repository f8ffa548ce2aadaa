package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDKey es la key de c.Locals donde queda el identificador
const RequestIDKey = "request_id"

// RequestID asigna un identificador único a cada request y lo expone en el
// header X-Request-ID. Los handlers lo incluyen en sus logs para poder
// correlacionar un reporte del frontend con la traza del servidor.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(RequestIDKey, id)
		c.Set("X-Request-ID", id)
		return c.Next()
	}
}
