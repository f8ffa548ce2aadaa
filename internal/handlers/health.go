// ============================================================================
// Health Handler - WatClassroom
// ============================================================================

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/watclassroom/internal/buildings"
	"github.com/yourorg/watclassroom/internal/portal"
)

// HealthResponse es la respuesta del health check
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthHandler verifica las dependencias del servicio
type HealthHandler struct {
	store  *buildings.Store
	portal *portal.Client
}

// NewHealthHandler crea el handler de health check
func NewHealthHandler(store *buildings.Store, client *portal.Client) *HealthHandler {
	return &HealthHandler{store: store, portal: client}
}

// Check maneja GET /health. Reporta el estado del dataset de edificios y
// del feed del portal. Cualquier dependencia caída -> 503 con el detalle
// por servicio, para que el monitoreo sepa qué se cayó.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	services := make(map[string]string)
	healthy := true

	if _, err := h.store.Load(); err != nil {
		services["buildings"] = "error: " + err.Error()
		healthy = false
	} else {
		services["buildings"] = "ok"
	}

	if err := h.portal.HealthCheck(c.Context()); err != nil {
		services["portal_feed"] = "error: " + err.Error()
		healthy = false
	} else {
		services["portal_feed"] = "ok"
	}

	status := "healthy"
	code := fiber.StatusOK
	if !healthy {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
	})
}
