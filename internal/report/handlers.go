package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EpiScoping/BirthProxy-Backend/internal/compare"
	"github.com/EpiScoping/BirthProxy-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ListRunsHandler(w http.ResponseWriter, r *http.Request) {
	var runs []compare.Run

	result := db.DB.Order("created_at desc").Find(&runs)
	if result.Error != nil {
		http.Error(w, "DB error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if len(runs) == 0 {
		http.Error(w, "No runs found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(runs); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func LatestRunHandler(w http.ResponseWriter, r *http.Request) {
	var run compare.Run

	err := db.DB.Order("created_at desc").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "No runs found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(run); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func findRun(w http.ResponseWriter, r *http.Request) (compare.Run, bool) {
	var run compare.Run

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid run id", http.StatusBadRequest)
		return run, false
	}

	err = db.DB.First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Run not found", http.StatusNotFound)
		return run, false
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return run, false
	}
	return run, true
}

func RunHandler(w http.ResponseWriter, r *http.Request) {
	run, ok := findRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(run); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ScatterHandler rebuilds the scatter series for a run from the persisted
// count tables, matched on postcode and restricted to the run's target state.
func ScatterHandler(w http.ResponseWriter, r *http.Request) {
	run, ok := findRun(w, r)
	if !ok {
		return
	}

	var points []compare.Point
	query := `
		SELECT
			c.postcode,
			c.age_zero AS census,
			b.reported_births AS births
		FROM census.age_zero_counts c
		JOIN births.mothers_postcode_counts b ON b.postcode = c.postcode
		WHERE c.state = ?
		ORDER BY c.postcode
	`
	if err := db.DB.Raw(query, run.TargetState).Scan(&points).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(points) == 0 {
		http.Error(w, "No matched counts for run", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(points); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func HistogramHandler(w http.ResponseWriter, r *http.Request) {
	run, ok := findRun(w, r)
	if !ok {
		return
	}

	hist := compare.HistogramSeries{
		Edges:  run.HistogramEdges,
		Census: run.CensusBins,
		Births: run.BirthsBins,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(hist); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
