package report_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/EpiScoping/BirthProxy-Backend/internal/births"
	"github.com/EpiScoping/BirthProxy-Backend/internal/census"
	"github.com/EpiScoping/BirthProxy-Backend/internal/compare"
	"github.com/EpiScoping/BirthProxy-Backend/internal/db"
	"github.com/EpiScoping/BirthProxy-Backend/internal/middleware"
	"github.com/EpiScoping/BirthProxy-Backend/internal/report"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

// dbAvailable tracks whether the database connection was established.
var dbAvailable bool

// testServer is the shared httptest server for all integration tests.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	// Load .env.local relative to the repo root (two directories up).
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" {
		// No database available — skip all integration tests gracefully.
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	// Set up tables (idempotent).
	report.Init()

	// Mount report routes on a Chi router, matching production setup in main.go.
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Mount("/reports", report.SetupRoutes())

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

// createTestRun inserts a run with a unique target state plus matching count
// rows, and registers cleanup for all of them.
func createTestRun(t *testing.T) compare.Run {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	state := fmt.Sprintf("T%s", uuid.New().String()[:6])
	run := compare.Run{
		ID:             uuid.New(),
		TargetState:    state,
		CensusFile:     "testdata/extract.csv",
		CensusDigest:   "deadbeef",
		BirthsFile:     "testdata/births.csv",
		BirthsDigest:   "cafef00d",
		Rows:           2,
		MatchedRows:    2,
		Correlation:    0.99,
		HistogramEdges: pq.Float64Array{0, 10, 20},
		CensusBins:     pq.Int64Array{1, 1},
		BirthsBins:     pq.Int64Array{2, 0},
		Caveats:        pq.StringArray{"integration fixture"},
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.DB.Create(&run).Error; err != nil {
		t.Fatalf("failed to create test run: %v", err)
	}

	counts := []census.Count{
		{Postcode: 98801, State: state, AgeZero: 10},
		{Postcode: 98802, State: state, AgeZero: 7},
	}
	if err := db.DB.Create(&counts).Error; err != nil {
		t.Fatalf("failed to create census counts: %v", err)
	}
	birthCounts := []births.Count{
		{Postcode: 98801, ReportedBirths: 12},
		{Postcode: 98802, ReportedBirths: 6},
	}
	if err := db.DB.Create(&birthCounts).Error; err != nil {
		t.Fatalf("failed to create births counts: %v", err)
	}

	t.Cleanup(func() {
		db.DB.Where("id = ?", run.ID).Delete(&compare.Run{})
		db.DB.Where("state = ?", state).Delete(&census.Count{})
		db.DB.Where("postcode IN ?", []int{98801, 98802}).Delete(&births.Count{})
	})

	return run
}

func getJSON(t *testing.T, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(testServer.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp
}

// TestRunEndpoint verifies a stored run is returned by id with its arrays
// intact.
func TestRunEndpoint(t *testing.T) {
	run := createTestRun(t)

	var got compare.Run
	resp := getJSON(t, "/reports/runs/"+run.ID.String(), &got)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got.ID != run.ID || got.TargetState != run.TargetState {
		t.Errorf("got run %s/%s, want %s/%s", got.ID, got.TargetState, run.ID, run.TargetState)
	}
	if len(got.HistogramEdges) != 3 || len(got.CensusBins) != 2 {
		t.Errorf("arrays not preserved: %d edges, %d bins", len(got.HistogramEdges), len(got.CensusBins))
	}
}

// TestRunEndpoint_BadID verifies a non-UUID id is rejected with 400.
func TestRunEndpoint_BadID(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	resp := getJSON(t, "/reports/runs/not-a-uuid", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

// TestRunEndpoint_NotFound verifies an unknown run id returns 404.
func TestRunEndpoint_NotFound(t *testing.T) {
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	resp := getJSON(t, "/reports/runs/"+uuid.New().String(), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

// TestLatestRunEndpoint verifies the most recent run is served.
func TestLatestRunEndpoint(t *testing.T) {
	run := createTestRun(t)

	var got compare.Run
	resp := getJSON(t, "/reports/runs/latest", &got)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got.ID != run.ID {
		t.Errorf("latest run = %s, want %s (just inserted)", got.ID, run.ID)
	}
}

// TestScatterEndpoint verifies the scatter series is rebuilt from the count
// tables for the run's target state.
func TestScatterEndpoint(t *testing.T) {
	run := createTestRun(t)

	var pts []compare.Point
	resp := getJSON(t, "/reports/runs/"+run.ID.String()+"/scatter", &pts)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	if pts[0].Postcode != 98801 || pts[0].Census != 10 || pts[0].Births != 12 {
		t.Errorf("first point = %+v, want {98801 10 12}", pts[0])
	}
}

// TestHistogramEndpoint verifies the stored bins round-trip through the API.
func TestHistogramEndpoint(t *testing.T) {
	run := createTestRun(t)

	var hist compare.HistogramSeries
	resp := getJSON(t, "/reports/runs/"+run.ID.String()+"/histogram", &hist)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(hist.Edges) != 3 || len(hist.Census) != 2 || len(hist.Births) != 2 {
		t.Errorf("histogram shape = %d/%d/%d, want 3/2/2", len(hist.Edges), len(hist.Census), len(hist.Births))
	}
	if hist.Births[0] != 2 {
		t.Errorf("first births bin = %d, want 2", hist.Births[0])
	}
}
