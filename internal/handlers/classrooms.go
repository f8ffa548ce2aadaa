// ============================================================================
// Open Classrooms Handler - WatClassroom
// ============================================================================
// Endpoint principal: GET /result/:buildingCode ejecuta el pipeline completo
// (normalizar feed -> rankear por distancia -> filtrar por ventana horaria)
// y retorna los slots abiertos ordenados por cercanía al edificio pedido.
// ============================================================================

package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/watclassroom/internal/buildings"
	"github.com/yourorg/watclassroom/internal/classroom"
	"github.com/yourorg/watclassroom/internal/portal"
	"github.com/yourorg/watclassroom/internal/validation"
)

// ClassroomHandler orquesta las tres etapas del pipeline
type ClassroomHandler struct {
	store  *buildings.Store
	portal *portal.Client

	// now se inyecta en tests para fijar la hora del filtro
	now func() time.Time
}

// NewClassroomHandler crea el handler. El reloj queda anclado a la zona
// horaria del campus: los horarios del feed son hora civil de Waterloo.
func NewClassroomHandler(store *buildings.Store, client *portal.Client) *ClassroomHandler {
	return &ClassroomHandler{
		store:  store,
		portal: client,
		now: func() time.Time {
			return time.Now().In(campusLocation)
		},
	}
}

// GetOpenClassrooms maneja GET /result/:buildingCode
//
// Respuestas:
//   - 200: SlotMap ordenado por distancia, solo slots en curso o que
//     empiezan dentro de la próxima hora
//   - 400: código de edificio con formato inválido o fuera del dataset
//   - 500: dataset de edificios no disponible
//   - 502: feed del portal caído o con esquema irreconocible
func (h *ClassroomHandler) GetOpenClassrooms(c *fiber.Ctx) error {
	code := c.Params("buildingCode")
	if err := validation.ValidateBuildingCode(code); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":        "Código de edificio inválido",
			"buildingCode": code,
		})
	}

	locations, err := h.store.Load()
	if err != nil {
		log.Printf("[%s] dataset de edificios no disponible: %v", requestID(c), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Datos de edificios no disponibles",
		})
	}

	// validar contra el dataset antes de tocar el feed: un código
	// desconocido no justifica el round-trip al portal
	if _, ok := locations[code]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":        "Edificio desconocido",
			"buildingCode": code,
		})
	}

	features, err := h.portal.FetchFeatures(c.Context())
	if err != nil {
		log.Printf("[%s] feed del portal falló: %v", requestID(c), err)
		if errors.Is(err, classroom.ErrUpstreamUnavailable) || errors.Is(err, classroom.ErrUpstreamProtocol) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "El feed de salas abiertas no está disponible",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error interno procesando el feed",
		})
	}

	slots := classroom.Normalize(features)

	ranked, err := classroom.RankByDistance(code, slots, locations)
	if err != nil {
		// el código ya pasó la validación contra el dataset, así que esto
		// solo puede ser una inconsistencia interna
		log.Printf("[%s] ranking falló para %s: %v", requestID(c), code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error interno procesando el feed",
		})
	}

	open := classroom.FilterByTime(ranked, h.now())
	return c.JSON(open)
}
