// ============================================================================
// Portal OpenClassrooms Client - WatClassroom
// ============================================================================
// Cliente del feed OpenClassrooms del portal de UWaterloo. El feed es
// público (sin API key) pero su disponibilidad y esquema no los controla
// este servicio, así que el cliente impone timeout explícito y clasifica
// cada fallo en la taxonomía del pipeline.
// ============================================================================

package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/yourorg/watclassroom/internal/classroom"
)

const (
	defaultFeedURL = "https://portalapi2.uwaterloo.ca/v2/map/OpenClassrooms"
	defaultTimeout = 15 * time.Second
)

// Client consulta el feed OpenClassrooms
type Client struct {
	feedURL    string
	httpClient *http.Client
}

// NewClient crea un cliente configurado por entorno:
//   - OPEN_CLASSROOM_URL: URL del feed (default: portal de UWaterloo)
//   - PORTAL_TIMEOUT_SECONDS: timeout del request (default: 15s)
func NewClient() *Client {
	feedURL := os.Getenv("OPEN_CLASSROOM_URL")
	if feedURL == "" {
		feedURL = defaultFeedURL
	}

	timeout := defaultTimeout
	if v := os.Getenv("PORTAL_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope del feed: {"data": {"features": [...]}}
type feedEnvelope struct {
	Data *struct {
		Features []classroom.Feature `json:"features"`
	} `json:"data"`
}

// FetchFeatures descarga el feed y retorna los features crudos para el
// normalizer. Fallos de transporte, timeout o status no exitoso ->
// ErrUpstreamUnavailable; cuerpo que no es JSON o sin data.features ->
// ErrUpstreamProtocol. No hay reintentos: un feed caído hace fallar el
// request completo.
func (c *Client) FetchFeatures(ctx context.Context) ([]classroom.Feature, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creando request: %v", classroom.ErrUpstreamUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// incluye el caso timeout
		return nil, fmt.Errorf("%w: %v", classroom.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", classroom.ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: leyendo respuesta: %v", classroom.ErrUpstreamUnavailable, err)
	}

	var envelope feedEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: cuerpo no es JSON: %v", classroom.ErrUpstreamProtocol, err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("%w: falta data.features (fragmento: %.120s)", classroom.ErrUpstreamProtocol, string(body))
	}

	return envelope.Data.Features, nil
}

// FeedURL retorna la URL configurada, para logs y health checks
func (c *Client) FeedURL() string {
	return c.feedURL
}

// HealthCheck verifica que el host del feed responda. Usa HEAD con timeout
// corto para no descargar el feed completo en cada health check.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.feedURL, nil)
	if err != nil {
		return fmt.Errorf("feed no disponible: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("feed no disponible: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("feed health check failed: %d", resp.StatusCode)
	}
	return nil
}
