package main

import (
	"flag"
	"log"
	"os"

	"github.com/EpiScoping/BirthProxy-Backend/internal/census"
)

func main() {
	var (
		csvPath = flag.String("csv", "", "path to the ABS age-zero-by-postcode extract")
		outPath = flag.String("out", "", "cleaned output path (default: <csv>-cleaned.csv)")
	)
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	recs, err := census.ParseCSV(*csvPath)
	if err != nil {
		log.Fatal(err)
	}

	out := *outPath
	if out == "" {
		out = census.CleanedPath(*csvPath)
	}
	if err := census.WriteCleaned(out, recs); err != nil {
		log.Fatal(err)
	}

	log.Printf("Cleaned %d rows -> %s", len(recs), out)
}
