// Package births loads the Queensland births-by-mother's-postcode open data
// release. The upstream file labels the births count "Transactions" (registry
// terminology); that name is matched verbatim at the I/O boundary and becomes
// ReportedBirths everywhere else.
package births

import (
	"fmt"
	"strconv"

	"github.com/EpiScoping/BirthProxy-Backend/internal/table"
)

// Record is one row of the births release.
type Record struct {
	Postcode       int
	ReportedBirths int
}

// ParseCSV loads the births CSV at path by header name.
func ParseCSV(path string) ([]Record, error) {
	t, err := table.ReadNamed(path)
	if err != nil {
		return nil, err
	}
	if err := t.Require("Postcode", "Transactions"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var out []Record
	for i := range t.Rows {
		poa, err := strconv.Atoi(t.Get(i, "Postcode"))
		if err != nil {
			return nil, fmt.Errorf("row %d: Postcode: %w", i+2, err)
		}
		n, err := strconv.Atoi(t.Get(i, "Transactions"))
		if err != nil {
			return nil, fmt.Errorf("row %d: Transactions: %w", i+2, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("row %d: negative Transactions count %d", i+2, n)
		}
		out = append(out, Record{Postcode: poa, ReportedBirths: n})
	}
	return out, nil
}
