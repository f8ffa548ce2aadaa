// ============================================================================
// Buildings Store - WatClassroom
// ============================================================================
// Dataset de ubicaciones de edificios (buildings.json), cargado una sola
// vez y cacheado por la vida del proceso. No hay invalidación: para
// refrescar el dataset se reinicia el servicio (o se regenera el archivo
// con cmd/cli y se reinicia).
// ============================================================================

package buildings

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/bluele/gcache"

	"github.com/yourorg/watclassroom/internal/classroom"
	"github.com/yourorg/watclassroom/internal/models"
	"github.com/yourorg/watclassroom/internal/validation"
)

const snapshotKey = "buildings"

// Store memoiza el snapshot de edificios detrás de un gcache con
// LoaderFunc: las primeras llamadas concurrentes se coalescen en una sola
// lectura del archivo (single flight) y todas observan el mismo snapshot o
// el mismo error de carga. Después de la primera carga exitosa las lecturas
// no tocan el disco.
type Store struct {
	path  string
	cache gcache.Cache
	reads atomic.Int64
}

// NewStore crea un Store para el archivo de dataset indicado. No lee nada
// todavía: la carga es perezosa, en el primer Load.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.cache = gcache.New(1).
		Simple().
		LoaderFunc(func(interface{}) (interface{}, error) {
			return s.readSnapshot()
		}).
		Build()
	return s
}

// Load retorna el snapshot de edificios. El map retornado se comparte entre
// todos los callers y es inmutable por contrato: nadie debe modificarlo.
func (s *Store) Load() (models.BuildingMap, error) {
	v, err := s.cache.Get(snapshotKey)
	if err != nil {
		return nil, err
	}
	return v.(models.BuildingMap), nil
}

// Reads retorna cuántas veces se leyó el archivo desde disco. Para
// diagnóstico y tests del single flight.
func (s *Store) Reads() int64 {
	return s.reads.Load()
}

// readSnapshot lee y valida el dataset. Solo lo invoca el LoaderFunc del
// cache, a lo más una vez por carga exitosa.
func (s *Store) readSnapshot() (models.BuildingMap, error) {
	s.reads.Add(1)

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: leyendo %s: %v", classroom.ErrDataUnavailable, s.path, err)
	}

	var parsed models.BuildingMap
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parseando %s: %v", classroom.ErrDataUnavailable, s.path, err)
	}

	valid := make(models.BuildingMap, len(parsed))
	for code, b := range parsed {
		if code == "" {
			continue
		}
		if err := validation.ValidateCoordinatePair(b.Latitude, b.Longitude, code); err != nil {
			log.Printf("edificio %s con coordenadas inválidas, se omite: %v", code, err)
			continue
		}
		// (0,0) pasa los checks de rango pero es el placeholder típico de
		// una coordenada nunca llenada
		if validation.IsZeroCoordinate(b.Latitude, b.Longitude) {
			log.Printf("edificio %s con coordenada (0,0), se omite", code)
			continue
		}
		valid[code] = b
	}

	log.Printf("dataset de edificios cargado: %d entradas (%s)", len(valid), s.path)
	return valid, nil
}
