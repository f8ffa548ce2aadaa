package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/watclassroom/internal/buildings"
	"github.com/yourorg/watclassroom/internal/handlers"
	"github.com/yourorg/watclassroom/internal/middleware"
	"github.com/yourorg/watclassroom/internal/portal"
)

// Register monta todos los endpoints del servicio.
//
// Las rutas quedan en la raíz (sin prefijo /api) porque el frontend
// existente consume /all_buildings y /result/{code} tal cual.
func Register(app *fiber.App, store *buildings.Store, client *portal.Client) {
	// ============================================================================
	// MIDDLEWARE GLOBAL
	// ============================================================================
	app.Use(middleware.RequestID())
	app.Use(middleware.GlobalRateLimiter()) // 300 req/min por IP

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(store, client)
	buildingsHandler := handlers.NewBuildingsHandler(store)
	classroomHandler := handlers.NewClassroomHandler(store, client)

	// ============================================================================
	// API PÚBLICA (Endpoints para el frontend)
	// ============================================================================

	// Health check para monitoreo
	app.Get("/health", healthHandler.Check)

	// Dataset de edificios para el dropdown de ubicación
	app.Get("/all_buildings", buildingsHandler.GetAllBuildings)

	// Salas abiertas ordenadas por cercanía al edificio indicado.
	// RATE LIMITING: FeedRateLimiter (30 req/min) - cada hit consulta el
	// feed del portal en vivo
	app.Get("/result/:buildingCode", middleware.FeedRateLimiter(), classroomHandler.GetOpenClassrooms)
}
