package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/watclassroom/internal/buildings"
	"github.com/yourorg/watclassroom/internal/portal"
)

const testDataset = `{
    "DC": {"name": "William G. Davis Computer Research Centre", "latitude": 43.4727, "longitude": -80.5435},
    "MC": {"name": "Mathematics & Computer Building", "latitude": 43.4723, "longitude": -80.5449},
    "PHY": {"name": "Physics", "latitude": 43.4706, "longitude": -80.5461}
}`

// feed con un slot en curso (MC2061) y uno futuro dentro de la próxima
// hora (DC1350, con slots doblemente codificados como los entrega el
// portal a veces)
const testFeed = `{"data":{"features":[
    {"properties":{
        "buildingCode":"MC",
        "buildingName":"Mathematics & Computer Building",
        "supportOpenClassroom":true,
        "openClassroomSlots":{"data":[{"roomNumber":"2061","Schedule":[{"Slots":[{"StartTime":"09:00:00","EndTime":"17:00:00"}]}]}]}
    }},
    {"properties":{
        "buildingCode":"DC",
        "buildingName":"William G. Davis Computer Research Centre",
        "supportOpenClassroom":true,
        "openClassroomSlots":"{\"data\":[{\"roomNumber\":\"1350\",\"Schedule\":[{\"Slots\":[{\"StartTime\":\"11:00:00\",\"EndTime\":\"12:00:00\"}]}]}]}"
    }},
    {"properties":{
        "buildingCode":"PHY",
        "buildingName":"Physics",
        "supportOpenClassroom":true,
        "openClassroomSlots":{"data":[{"roomNumber":"150","Schedule":[{"Slots":[{"StartTime":"20:00:00","EndTime":"22:00:00"}]}]}]}
    }}
]}}`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buildings.json")
	if err := os.WriteFile(path, []byte(testDataset), 0644); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}
	return path
}

// testNow fija la hora del filtro: 10:30 hora de Waterloo. MC2061 está en
// curso, DC1350 empieza dentro de la próxima hora, PHY150 queda fuera.
func testNow(t *testing.T) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Fatalf("Failed to load timezone: %v", err)
	}
	return time.Date(2025, 3, 10, 10, 30, 0, 0, loc)
}

func newTestApp(t *testing.T, feedHandler http.HandlerFunc) *fiber.App {
	t.Helper()

	upstream := httptest.NewServer(feedHandler)
	t.Cleanup(upstream.Close)
	t.Setenv("OPEN_CLASSROOM_URL", upstream.URL)

	store := buildings.NewStore(writeDataset(t))
	client := portal.NewClient()

	classroomHandler := NewClassroomHandler(store, client)
	classroomHandler.now = func() time.Time { return testNow(t) }
	buildingsHandler := NewBuildingsHandler(store)

	app := fiber.New()
	app.Get("/all_buildings", buildingsHandler.GetAllBuildings)
	app.Get("/result/:buildingCode", classroomHandler.GetOpenClassrooms)
	return app
}

func serveFeed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(testFeed))
}

func TestGetOpenClassroomsPipeline(t *testing.T) {
	app := newTestApp(t, serveFeed)

	req := httptest.NewRequest(http.MethodGet, "/result/MC", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	raw := string(body)

	// MC es la referencia: debe aparecer antes que DC en el JSON
	mcIdx := strings.Index(raw, `"MC"`)
	dcIdx := strings.Index(raw, `"DC"`)
	if mcIdx == -1 || dcIdx == -1 {
		t.Fatalf("Expected MC and DC in response, got %s", raw)
	}
	if mcIdx > dcIdx {
		t.Errorf("Expected MC before DC, got %s", raw)
	}

	// PHY150 (20:00-22:00) queda fuera de la ventana a las 10:30
	if strings.Contains(raw, "PHY150") {
		t.Errorf("Expected PHY150 filtered out, got %s", raw)
	}

	var decoded map[string]map[string][][2]string
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if got := decoded["MC"]["MC2061"]; len(got) != 1 || got[0] != [2]string{"09:00:00", "17:00:00"} {
		t.Errorf("Unexpected MC2061 slots: %v", got)
	}
	if got := decoded["DC"]["DC1350"]; len(got) != 1 || got[0] != [2]string{"11:00:00", "12:00:00"} {
		t.Errorf("Unexpected DC1350 slots: %v", got)
	}
}

func TestGetOpenClassroomsInvalidCode(t *testing.T) {
	app := newTestApp(t, serveFeed)

	for _, code := range []string{"mc", "MC%202061", "..%2Fetc"} {
		req := httptest.NewRequest(http.MethodGet, "/result/"+code, nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Code %q: expected 400, got %d", code, resp.StatusCode)
		}
	}
}

func TestGetOpenClassroomsUnknownBuilding(t *testing.T) {
	app := newTestApp(t, serveFeed)

	req := httptest.NewRequest(http.MethodGet, "/result/ZZ", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"buildingCode":"ZZ"`) {
		t.Errorf("Expected offending code in body, got %s", body)
	}
}

func TestGetOpenClassroomsUpstreamDown(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/result/MC", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", resp.StatusCode)
	}
}

func TestGetOpenClassroomsUpstreamGarbage(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>mantenimiento</html>"))
	})

	req := httptest.NewRequest(http.MethodGet, "/result/MC", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", resp.StatusCode)
	}
}

func TestGetAllBuildings(t *testing.T) {
	app := newTestApp(t, serveFeed)

	req := httptest.NewRequest(http.MethodGet, "/all_buildings", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var decoded map[string]struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Errorf("Expected 3 buildings, got %d", len(decoded))
	}
	if decoded["MC"].Name != "Mathematics & Computer Building" {
		t.Errorf("Unexpected MC entry: %+v", decoded["MC"])
	}
}

func TestGetAllBuildingsDatasetMissing(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(serveFeed))
	t.Cleanup(upstream.Close)
	t.Setenv("OPEN_CLASSROOM_URL", upstream.URL)

	store := buildings.NewStore(filepath.Join(t.TempDir(), "no-such.json"))
	app := fiber.New()
	app.Get("/all_buildings", NewBuildingsHandler(store).GetAllBuildings)

	req := httptest.NewRequest(http.MethodGet, "/all_buildings", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", resp.StatusCode)
	}
}
