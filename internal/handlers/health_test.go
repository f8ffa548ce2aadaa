package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/watclassroom/internal/buildings"
	"github.com/yourorg/watclassroom/internal/portal"
)

func TestHealthCheckHealthy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(upstream.Close)
	t.Setenv("OPEN_CLASSROOM_URL", upstream.URL)

	store := buildings.NewStore(writeDataset(t))
	app := fiber.New()
	app.Get("/health", NewHealthHandler(store, portal.NewClient()).Check)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("Expected healthy, got %s", health.Status)
	}
	if health.Services["buildings"] != "ok" || health.Services["portal_feed"] != "ok" {
		t.Errorf("Unexpected services: %v", health.Services)
	}
}

func TestHealthCheckDegraded(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(upstream.Close)
	t.Setenv("OPEN_CLASSROOM_URL", upstream.URL)

	store := buildings.NewStore(filepath.Join(t.TempDir(), "no-such.json"))
	app := fiber.New()
	app.Get("/health", NewHealthHandler(store, portal.NewClient()).Check)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if health.Status != "degraded" {
		t.Errorf("Expected degraded, got %s", health.Status)
	}
}
