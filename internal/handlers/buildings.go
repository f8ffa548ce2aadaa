// ============================================================================
// Buildings Handler - WatClassroom
// ============================================================================
// Endpoint con el dataset de edificios para el dropdown de ubicación del
// frontend.
// ============================================================================

package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/watclassroom/internal/buildings"
)

// BuildingsHandler expone el dataset de ubicaciones
type BuildingsHandler struct {
	store *buildings.Store
}

// NewBuildingsHandler crea el handler sobre el store de edificios
func NewBuildingsHandler(store *buildings.Store) *BuildingsHandler {
	return &BuildingsHandler{store: store}
}

// GetAllBuildings maneja GET /all_buildings
// Retorna {"MC": {"name": ..., "latitude": ..., "longitude": ...}, ...}
// 500 si el dataset no se puede cargar; el detalle queda solo en los logs.
func (h *BuildingsHandler) GetAllBuildings(c *fiber.Ctx) error {
	data, err := h.store.Load()
	if err != nil {
		log.Printf("[%s] dataset de edificios no disponible: %v", requestID(c), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Datos de edificios no disponibles",
		})
	}
	return c.JSON(data)
}
