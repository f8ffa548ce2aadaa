package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/watclassroom/internal/middleware"
)

// campusLocation es la zona horaria fija que ancla "ahora" para el filtro
// de slots. Servicio de un solo campus: America/Toronto por contrato.
var campusLocation = loadCampusLocation()

func loadCampusLocation() *time.Location {
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		// sin tzdata en la imagen; mejor UTC que horas locales ambiguas
		log.Printf("no se pudo cargar America/Toronto, usando UTC: %v", err)
		return time.UTC
	}
	return loc
}

// requestID recupera el identificador que dejó el middleware, para logs
func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.RequestIDKey).(string); ok {
		return id
	}
	return "-"
}
