package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadRows reads a delimited text file and returns its data rows, dropping a
// fixed number of leading and trailing rows. The skip counts are
// dataset-specific and must be supplied by the caller; they are never
// inferred. Skipped rows are often free text from the exporting tool rather
// than valid CSV, so quoting and field counts are not enforced.
func ReadRows(path string, skipHeader, skipFooter int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}

	if len(records) <= skipHeader+skipFooter {
		return nil, fmt.Errorf("%s: %d rows, need more than %d skipped rows", path, len(records), skipHeader+skipFooter)
	}

	return records[skipHeader : len(records)-skipFooter], nil
}

// Table is an in-memory table with named columns, read from a CSV whose
// first row is the header.
type Table struct {
	Columns []string
	Rows    [][]string

	col map[string]int
}

// ReadNamed reads a headered CSV into a Table.
func ReadNamed(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{col: map[string]int{}}
	for i, h := range header {
		name := strings.TrimSpace(h)
		t.Columns = append(t.Columns, name)
		t.col[name] = i
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}

// Require returns an error unless every named column is present.
func (t *Table) Require(names ...string) error {
	for _, n := range names {
		if _, ok := t.col[n]; !ok {
			return fmt.Errorf("missing required column: %s", n)
		}
	}
	return nil
}

// Get returns the trimmed cell at row i, column name, or "" if the row is
// short or the column unknown.
func (t *Table) Get(i int, name string) string {
	j, ok := t.col[name]
	if !ok || j >= len(t.Rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][j])
}
