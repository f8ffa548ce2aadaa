// ============================================================================
// Proximity Ranker - WatClassroom
// ============================================================================
// Reordena el SlotMap por distancia geodésica ascendente desde el edificio
// de referencia. Distancia elipsoidal (Vincenty) en metros, no great-circle
// plano, vía github.com/jftuga/geodist.
// ============================================================================

package classroom

import (
	"fmt"
	"log"
	"sort"

	"github.com/jftuga/geodist"

	"github.com/yourorg/watclassroom/internal/models"
)

// RankByDistance produce un SlotMap nuevo con los mismos edificios
// reordenados por cercanía al edificio de referencia. Empates conservan el
// orden relativo de entrada (sort estable). Edificios del feed que no
// existen en el dataset de ubicaciones se omiten con advertencia: el feed
// del portal y el dataset se mantienen por separado y pueden discrepar.
// Si refCode no existe en el dataset retorna ErrUnknownBuilding.
func RankByDistance(refCode string, slots *SlotMap, buildings models.BuildingMap) (*SlotMap, error) {
	ref, ok := buildings[refCode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuilding, refCode)
	}
	origin := geodist.Coord{Lat: ref.Latitude, Lon: ref.Longitude}

	type rankedBuilding struct {
		entry  *BuildingSlots
		meters float64
	}

	ranked := make([]rankedBuilding, 0, slots.Len())
	for _, b := range slots.Buildings() {
		loc, ok := buildings[b.Code]
		if !ok {
			log.Printf("edificio %s sin ubicación conocida, se omite del ranking", b.Code)
			continue
		}
		target := geodist.Coord{Lat: loc.Latitude, Lon: loc.Longitude}
		ranked = append(ranked, rankedBuilding{entry: b, meters: metersBetween(origin, target)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].meters < ranked[j].meters
	})

	out := NewSlotMap()
	for _, r := range ranked {
		out.Add(r.entry)
	}
	return out, nil
}

// metersBetween calcula la distancia elipsoidal (Vincenty) en metros entre
// dos coordenadas. Si Vincenty no converge (puntos casi antipodales) cae a
// haversine, que siempre entrega un valor.
func metersBetween(a, b geodist.Coord) float64 {
	if a == b {
		return 0
	}
	_, km, err := geodist.VincentyDistance(a, b)
	if err != nil {
		_, km = geodist.HaversineDistance(a, b)
	}
	return km * 1000
}
