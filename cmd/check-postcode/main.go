package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	postcode := flag.Int("postcode", 0, "postcode to inspect (required)")
	flag.Parse()
	if *postcode == 0 {
		flag.Usage()
		os.Exit(2)
	}

	godotenv.Load(".env.local")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB connection error: %v", err)
	}

	// Show both sides for this postcode, whether or not they match
	type Result struct {
		Postcode       int
		State          *string
		AgeZero        *int
		ReportedBirths *int
	}

	var result Result
	query := `
		SELECT
			COALESCE(c.postcode, b.postcode) AS postcode,
			c.state,
			c.age_zero,
			b.reported_births
		FROM census.age_zero_counts c
		FULL OUTER JOIN births.mothers_postcode_counts b ON b.postcode = c.postcode
		WHERE COALESCE(c.postcode, b.postcode) = ?
	`

	res := db.Raw(query, *postcode).Scan(&result)
	if res.Error != nil {
		log.Fatalf("Query error: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Fatalf("Postcode %d not present in either source", *postcode)
	}

	state := "unknown"
	if result.State != nil {
		state = *result.State
	}
	fmt.Printf("Postcode %d (state %s)\n", result.Postcode, state)
	if result.AgeZero != nil {
		fmt.Printf("  census Age==0 count:  %d\n", *result.AgeZero)
	} else {
		fmt.Println("  census Age==0 count:  absent")
	}
	if result.ReportedBirths != nil {
		fmt.Printf("  reported births:      %d\n", *result.ReportedBirths)
	} else {
		fmt.Println("  reported births:      absent")
	}
}
