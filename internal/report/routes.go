package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/runs", ListRunsHandler)
	r.Get("/runs/latest", LatestRunHandler)
	r.Get("/runs/{id}", RunHandler)
	r.Get("/runs/{id}/scatter", ScatterHandler)
	r.Get("/runs/{id}/histogram", HistogramHandler)

	return r
}
