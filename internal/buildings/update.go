// ============================================================================
// Buildings Updater - WatClassroom
// ============================================================================
// Regenera buildings.json desde el Open Data API de UWaterloo. Se usa desde
// cmd/cli, no desde el servidor: el dataset es data de referencia versionada
// que cambia un par de veces al año.
// ============================================================================

package buildings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/yourorg/watclassroom/internal/models"
	"github.com/yourorg/watclassroom/internal/validation"
)

// DefaultOpenDataURL es la base del Open Data API v3 de UWaterloo
const DefaultOpenDataURL = "https://openapi.data.uwaterloo.ca/v3"

// entrada de /v3/Locations; latitud/longitud como punteros porque el API
// entrega null para edificios sin coordenadas
type locationEntry struct {
	BuildingCode string   `json:"buildingCode"`
	BuildingName string   `json:"buildingName"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// FetchLocations consulta /Locations y arma el dataset. Requiere el header
// x-api-key del Open Data API. Entradas sin código o sin coordenadas se
// descartan con advertencia.
func FetchLocations(ctx context.Context, baseURL, apiKey string) (models.BuildingMap, error) {
	url := strings.TrimSuffix(baseURL, "/") + "/Locations"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creando request a %s: %w", url, err)
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("accept", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultando %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("Open Data API retornó status %d: %s", resp.StatusCode, string(body))
	}

	var entries []locationEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parseando respuesta de /Locations: %w", err)
	}

	out := make(models.BuildingMap, len(entries))
	for _, e := range entries {
		if e.BuildingCode == "" || e.Latitude == nil || e.Longitude == nil {
			continue
		}
		if err := validation.ValidateCoordinatePair(*e.Latitude, *e.Longitude, e.BuildingCode); err != nil {
			log.Printf("ubicación %s descartada: %v", e.BuildingCode, err)
			continue
		}
		if err := validation.ValidateWaterlooRegion(*e.Latitude, *e.Longitude); err != nil {
			log.Printf("ubicación %s fuera del campus, se descarta: %v", e.BuildingCode, err)
			continue
		}
		out[e.BuildingCode] = models.Building{
			Name:      e.BuildingName,
			Latitude:  *e.Latitude,
			Longitude: *e.Longitude,
		}
	}
	return out, nil
}

// SaveSnapshot escribe el dataset con indentación, mismo formato que el
// archivo versionado
func SaveSnapshot(path string, buildings models.BuildingMap) error {
	data, err := json.MarshalIndent(buildings, "", "    ")
	if err != nil {
		return fmt.Errorf("serializando dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("escribiendo %s: %w", path, err)
	}
	return nil
}
