package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/EpiScoping/BirthProxy-Backend/internal/births"
	"github.com/EpiScoping/BirthProxy-Backend/internal/census"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// CLI flags
var (
	cleanedPath = flag.String("cleaned", "", "Path to a cleaned census CSV (required)")
	birthsPath  = flag.String("births", "", "Path to the births-by-mother's-postcode CSV (required)")
	dsn         = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun      = flag.Bool("dry-run", false, "Parse + validate only; no DB writes")
	confirm     = flag.Bool("confirm", false, "Required to perform destructive replace")
)

type Counts struct {
	Census int64
	Births int64
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *cleanedPath == "" || *birthsPath == "" {
		fatalf("--cleaned and --births are required")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	censusRows, err := census.ReadCleaned(*cleanedPath)
	if err != nil {
		fatalf("census CSV error: %v", err)
	}
	birthRows, err := births.ParseCSV(*birthsPath)
	if err != nil {
		fatalf("births CSV error: %v", err)
	}

	fmt.Printf("Loaded %d census rows from %s\n", len(censusRows), *cleanedPath)
	fmt.Printf("Loaded %d births rows from %s\n", len(birthRows), *birthsPath)

	if *dryRun {
		fmt.Println("Tables affected (destructive): census.age_zero_counts, births.mothers_postcode_counts")
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	if !*confirm {
		fatalf("Refusing to run without --confirm. Add --dry-run to preview.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	if err := ensureTables(ctx, db); err != nil {
		fatalf("ensure tables: %v", err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		fatalf("begin tx: %v", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if already committed
	}()

	before, err := countAll(ctx, tx)
	if err != nil {
		fatalf("pre-count: %v", err)
	}
	fmt.Printf("Before: census=%d births=%d\n", before.Census, before.Births)

	// Destructive replace
	if _, err := tx.ExecContext(ctx, `DELETE FROM census.age_zero_counts`); err != nil {
		fatalf("wipe census counts: %v", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM births.mothers_postcode_counts`); err != nil {
		fatalf("wipe births counts: %v", err)
	}

	if err := insertAll(ctx, tx, censusRows, birthRows); err != nil {
		fatalf("insert data: %v", err)
	}

	after, err := countAll(ctx, tx)
	if err != nil {
		fatalf("post-count: %v", err)
	}
	fmt.Printf("After:  census=%d births=%d\n", after.Census, after.Births)

	if after.Census != int64(len(censusRows)) || after.Births != int64(len(birthRows)) {
		fatalf("sanity check failed: census=%d/%d births=%d/%d",
			after.Census, len(censusRows), after.Births, len(birthRows))
	}

	if err := tx.Commit(); err != nil {
		fatalf("commit: %v", err)
	}
	fmt.Println("Seed complete ✅")
}

func ensureTables(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS census`,
		`CREATE SCHEMA IF NOT EXISTS births`,
		`CREATE TABLE IF NOT EXISTS census.age_zero_counts (
			postcode bigint PRIMARY KEY,
			state text,
			age_zero bigint
		)`,
		`CREATE TABLE IF NOT EXISTS births.mothers_postcode_counts (
			postcode bigint PRIMARY KEY,
			reported_births bigint
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func countAll(ctx context.Context, tx *sql.Tx) (Counts, error) {
	var c Counts
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM census.age_zero_counts`).Scan(&c.Census); err != nil {
		return c, err
	}
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM births.mothers_postcode_counts`).Scan(&c.Births); err != nil {
		return c, err
	}
	return c, nil
}

func insertAll(ctx context.Context, tx *sql.Tx, cs []census.Record, bs []births.Record) error {
	// prepared statements for speed & safety
	censusStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO census.age_zero_counts (postcode, state, age_zero) VALUES ($1,$2,$3)`)
	if err != nil {
		return err
	}
	defer censusStmt.Close()

	birthsStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO births.mothers_postcode_counts (postcode, reported_births) VALUES ($1,$2)`)
	if err != nil {
		return err
	}
	defer birthsStmt.Close()

	for _, r := range cs {
		if _, err := censusStmt.ExecContext(ctx, r.Postcode, r.State, r.AgeZero); err != nil {
			return fmt.Errorf("insert census postcode %d: %w", r.Postcode, err)
		}
	}
	for _, r := range bs {
		if _, err := birthsStmt.ExecContext(ctx, r.Postcode, r.ReportedBirths); err != nil {
			return fmt.Errorf("insert births postcode %d: %w", r.Postcode, err)
		}
	}
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
