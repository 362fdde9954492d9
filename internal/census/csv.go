package census

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/EpiScoping/BirthProxy-Backend/internal/table"
)

// ABS TableBuilder exports wrap the data rows in free-text banners; these
// counts match the "Counting Persons, Place of Usual Residence" extract and
// must be adjusted if the extract is rebuilt with different options.
const (
	HeaderRows = 7
	FooterRows = 11
)

// Record is one cleaned row of the extract: persons aged zero at a postal
// area of usual residence.
type Record struct {
	Postcode int
	State    string
	AgeZero  int
}

// NormalizeSeparator rewrites the exporter's " crosses " phrasing for
// border-straddling postal areas to the canonical ", " separator. Applying it
// to an already-canonical value is a no-op.
func NormalizeSeparator(s string) string {
	return strings.ReplaceAll(s, " crosses ", ", ")
}

// SplitPOAState splits a combined "postcode, state" field into its parts.
func SplitPOAState(s string) (int, string, error) {
	parts := strings.Split(NormalizeSeparator(s), ", ")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, "", fmt.Errorf("want \"postcode, state\", got %q", s)
	}
	poa, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("postcode %q: %w", parts[0], err)
	}
	if poa < 0 {
		return 0, "", fmt.Errorf("negative postcode %d", poa)
	}
	return poa, parts[1], nil
}

// ParseCSV loads and cleans the ABS extract at path. Only the first two
// columns are used: the combined "POA_2016, State" field and the Age==0
// count. Malformed rows abort the parse with a row-numbered error.
func ParseCSV(path string) ([]Record, error) {
	rows, err := table.ReadRows(path, HeaderRows, FooterRows)
	if err != nil {
		return nil, err
	}

	var out []Record
	for i, rec := range rows {
		if len(rec) < 2 {
			return nil, fmt.Errorf("row %d: want at least 2 columns, got %d", i+HeaderRows+1, len(rec))
		}
		poa, state, err := SplitPOAState(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+HeaderRows+1, err)
		}
		count, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("row %d: count %q: %w", i+HeaderRows+1, rec[1], err)
		}
		if count < 0 {
			return nil, fmt.Errorf("row %d: negative count %d", i+HeaderRows+1, count)
		}
		out = append(out, Record{Postcode: poa, State: state, AgeZero: count})
	}

	return out, nil
}

// CleanedPath derives the output path for a cleaned extract: the -cleaned
// suffix lands before the extension, so "X.csv" becomes "X-cleaned.csv".
func CleanedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-cleaned" + ext
}

// WriteCleaned writes records as a headered CSV with columns
// POA_2016, State, Age==0.
func WriteCleaned(path string, recs []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"POA_2016", "State", "Age==0"}); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{strconv.Itoa(r.Postcode), r.State, strconv.Itoa(r.AgeZero)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// ReadCleaned reads a file previously written by WriteCleaned.
func ReadCleaned(path string) ([]Record, error) {
	t, err := table.ReadNamed(path)
	if err != nil {
		return nil, err
	}
	if err := t.Require("POA_2016", "State", "Age==0"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var out []Record
	for i := range t.Rows {
		poa, err := strconv.Atoi(t.Get(i, "POA_2016"))
		if err != nil {
			return nil, fmt.Errorf("row %d: POA_2016: %w", i+2, err)
		}
		count, err := strconv.Atoi(t.Get(i, "Age==0"))
		if err != nil {
			return nil, fmt.Errorf("row %d: Age==0: %w", i+2, err)
		}
		out = append(out, Record{Postcode: poa, State: t.Get(i, "State"), AgeZero: count})
	}
	return out, nil
}
