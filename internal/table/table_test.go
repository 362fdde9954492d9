package table_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/EpiScoping/BirthProxy-Backend/internal/table"
)

// writeFile writes contents to a temp file and returns its path.
func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

// TestReadRows_SkipsHeaderAndFooter verifies that the configured number of
// leading and trailing rows is dropped and only data rows are returned.
func TestReadRows_SkipsHeaderAndFooter(t *testing.T) {
	contents := strings.Join([]string{
		"Export banner",
		"Another banner line",
		`"7250, TAS",42`,
		`"4000, QLD",10`,
		"Footer note",
	}, "\n") + "\n"
	path := writeFile(t, "data.csv", contents)

	rows, err := table.ReadRows(path, 2, 1)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(rows))
	}
	if rows[0][0] != "7250, TAS" || rows[0][1] != "42" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
}

// TestReadRows_SkipCountsTooLarge verifies the error when the skip counts
// leave no data rows (wrong counts for the file).
func TestReadRows_SkipCountsTooLarge(t *testing.T) {
	path := writeFile(t, "small.csv", "a,b\nc,d\n")

	if _, err := table.ReadRows(path, 2, 1); err == nil {
		t.Fatal("expected error for skip counts >= row count, got nil")
	}
}

// TestReadRows_MissingFile verifies that a missing file surfaces immediately.
func TestReadRows_MissingFile(t *testing.T) {
	if _, err := table.ReadRows(filepath.Join(t.TempDir(), "nope.csv"), 0, 0); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

// TestReadNamed_ColumnsAndBOM verifies header-name access and that a UTF-8
// BOM on the first header cell is stripped.
func TestReadNamed_ColumnsAndBOM(t *testing.T) {
	path := writeFile(t, "births.csv", "\ufeffPostcode,Transactions\n4000,12\n4001,19\n")

	tab, err := table.ReadNamed(path)
	if err != nil {
		t.Fatalf("ReadNamed: %v", err)
	}
	if err := tab.Require("Postcode", "Transactions"); err != nil {
		t.Fatalf("Require: %v", err)
	}
	if got := tab.Get(0, "Postcode"); got != "4000" {
		t.Errorf("Get(0, Postcode) = %q, want 4000", got)
	}
	if got := tab.Get(1, "Transactions"); got != "19" {
		t.Errorf("Get(1, Transactions) = %q, want 19", got)
	}
}

// TestReadNamed_MissingColumn verifies Require reports the absent column.
func TestReadNamed_MissingColumn(t *testing.T) {
	path := writeFile(t, "births.csv", "Postcode,Count\n4000,12\n")

	tab, err := table.ReadNamed(path)
	if err != nil {
		t.Fatalf("ReadNamed: %v", err)
	}
	err = tab.Require("Postcode", "Transactions")
	if err == nil || !strings.Contains(err.Error(), "Transactions") {
		t.Fatalf("expected missing-column error naming Transactions, got %v", err)
	}
}
