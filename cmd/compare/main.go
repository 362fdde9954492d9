package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/EpiScoping/BirthProxy-Backend/internal/compare"
	"github.com/EpiScoping/BirthProxy-Backend/internal/config"
	"github.com/EpiScoping/BirthProxy-Backend/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML config file")
		censusPath = flag.String("census", "", "path to the ABS age-zero-by-postcode extract")
		birthsPath = flag.String("births", "", "path to the births-by-mother's-postcode CSV")
		state      = flag.String("state", "", "target state label (default QLD)")
		bins       = flag.Int("bins", 0, "histogram bin count (default 20)")
		persist    = flag.Bool("persist", false, "store counts and the run record in Postgres (needs DATABASE_URL)")
	)
	flag.Parse()
	_ = godotenv.Load(".env.local")

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Flags override file values
	if *censusPath != "" {
		cfg.CensusPath = *censusPath
	}
	if *birthsPath != "" {
		cfg.BirthsPath = *birthsPath
	}
	if *state != "" {
		cfg.TargetState = *state
	}
	if *bins != 0 {
		cfg.Bins = *bins
	}
	if *persist {
		cfg.Persist = true
	}

	if cfg.CensusPath == "" || cfg.BirthsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	report, err := pipeline.Run(pipeline.Config{
		CensusPath:  cfg.CensusPath,
		BirthsPath:  cfg.BirthsPath,
		TargetState: cfg.TargetState,
		Bins:        cfg.Bins,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Persist:     cfg.Persist,
	})
	if err != nil {
		log.Fatal(err)
	}

	printReport(report)
}

func printReport(r *compare.Report) {
	fmt.Printf("Cleaned census written to %s\n", r.CleanedPath)
	fmt.Printf("State %s: %d postcodes, %d matched in both sources\n",
		r.Run.TargetState, r.Run.Rows, r.Run.MatchedRows)
	fmt.Printf("Pearson correlation (Age==0 vs reported births): %.6f\n", r.Run.Correlation)

	printSummary("Age==0", r.CensusSummary)
	printSummary("Reported births", r.BirthsSummary)

	for _, c := range r.Run.Caveats {
		fmt.Printf("Caveat: %s\n", c)
	}
	fmt.Printf("Run %s: %d scatter points, %d histogram bins\n",
		r.Run.ID, len(r.Scatter), len(r.Histogram.Census))
}

func printSummary(name string, s compare.Summary) {
	fmt.Printf("%s: n=%d min=%.0f max=%.0f mean=%.1f median=%.1f sd=%.1f\n",
		name, s.N, s.Min, s.Max, s.Mean, s.Median, s.StdDev)
}
