// Package pipeline runs the full comparison: clean the census extract, write
// the cleaned CSV next to the original, load the births release, outer-join
// on postcode, restrict to the target state, and compute the report. Each
// stage runs to completion before the next; any failure aborts the run.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/EpiScoping/BirthProxy-Backend/internal/births"
	"github.com/EpiScoping/BirthProxy-Backend/internal/census"
	"github.com/EpiScoping/BirthProxy-Backend/internal/compare"
	"github.com/EpiScoping/BirthProxy-Backend/internal/db"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Config struct {
	CensusPath  string
	BirthsPath  string
	TargetState string
	Bins        int
	DatabaseURL string
	Persist     bool
}

// Caveats recorded on every run. The comparison is a scoping check, not an
// adjusted estimate.
var caveats = pq.StringArray{
	"count distributions are right-skewed; no outlier handling or correction applied",
	"Age==0 at place of usual residence approximates mother's postcode at birth",
}

// Run executes the pipeline and returns the report. When cfg.Persist is set,
// the cleaned counts, births counts, and run record are stored in one
// transaction.
func Run(cfg Config) (*compare.Report, error) {
	if cfg.TargetState == "" {
		return nil, errors.New("target state is required")
	}
	if cfg.Bins < 1 {
		return nil, fmt.Errorf("bins must be positive, got %d", cfg.Bins)
	}
	if cfg.Persist && cfg.DatabaseURL == "" {
		return nil, errors.New("refusing to persist: no database URL configured")
	}

	censusRecs, err := census.ParseCSV(cfg.CensusPath)
	if err != nil {
		return nil, fmt.Errorf("census: %w", err)
	}

	cleanedPath := census.CleanedPath(cfg.CensusPath)
	if err := census.WriteCleaned(cleanedPath, censusRecs); err != nil {
		return nil, fmt.Errorf("write cleaned census: %w", err)
	}

	birthRecs, err := births.ParseCSV(cfg.BirthsPath)
	if err != nil {
		return nil, fmt.Errorf("births: %w", err)
	}

	rows := compare.FilterState(compare.OuterJoin(censusRecs, birthRecs), cfg.TargetState)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows for state %q after join", cfg.TargetState)
	}

	r, err := compare.Pearson(rows)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	hist, err := compare.Histogram(rows, cfg.Bins)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}

	censusDigest, err := Fingerprint(cfg.CensusPath)
	if err != nil {
		return nil, err
	}
	birthsDigest, err := Fingerprint(cfg.BirthsPath)
	if err != nil {
		return nil, err
	}

	report := &compare.Report{
		Run: compare.Run{
			ID:             uuid.New(),
			TargetState:    cfg.TargetState,
			CensusFile:     cfg.CensusPath,
			CensusDigest:   censusDigest,
			BirthsFile:     cfg.BirthsPath,
			BirthsDigest:   birthsDigest,
			Rows:           len(rows),
			MatchedRows:    len(compare.Scatter(rows)),
			Correlation:    r,
			HistogramEdges: pq.Float64Array(hist.Edges),
			CensusBins:     pq.Int64Array(hist.Census),
			BirthsBins:     pq.Int64Array(hist.Births),
			Caveats:        caveats,
			CreatedAt:      time.Now().UTC(),
		},
		CensusSummary: compare.Summarize(compare.CensusSeries(rows)),
		BirthsSummary: compare.Summarize(compare.BirthsSeries(rows)),
		Histogram:     hist,
		Scatter:       compare.Scatter(rows),
		CleanedPath:   cleanedPath,
	}

	if cfg.Persist {
		if err := persist(cfg.DatabaseURL, censusRecs, birthRecs, report.Run); err != nil {
			return nil, fmt.Errorf("persist: %w", err)
		}
	}

	return report, nil
}

func persist(dbURL string, cs []census.Record, bs []births.Record, run compare.Run) error {
	g, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		return err
	}

	for _, schema := range []string{"census", "births", "compare"} {
		if err := db.EnsureSchema(g, schema); err != nil {
			return fmt.Errorf("create schema %s: %w", schema, err)
		}
	}
	if err := g.AutoMigrate(&census.Count{}, &births.Count{}, &compare.Run{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return g.Transaction(func(tx *gorm.DB) error {
		counts := census.Counts(cs)
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&counts).Error; err != nil {
			return fmt.Errorf("upsert census counts: %w", err)
		}
		birthCounts := births.Counts(bs)
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&birthCounts).Error; err != nil {
			return fmt.Errorf("upsert births counts: %w", err)
		}
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		return nil
	})
}
