package compare

import (
	"github.com/EpiScoping/BirthProxy-Backend/internal/births"
	"github.com/EpiScoping/BirthProxy-Backend/internal/census"
)

// Row is one postcode of the outer-aligned comparison. A side with no row
// for the postcode stays nil, never zero; births-only postcodes have no
// state label because the births release does not carry one.
type Row struct {
	Postcode       int    `json:"postcode"`
	State          string `json:"state,omitempty"`
	CensusCount    *int   `json:"census_count,omitempty"`
	ReportedBirths *int   `json:"reported_births,omitempty"`
}

// OuterJoin aligns the two sources on postcode, one output row per distinct
// postcode present in either. Output order is census file order followed by
// births-only postcodes in file order.
func OuterJoin(cs []census.Record, bs []births.Record) []Row {
	byPOA := make(map[int]*Row, len(cs))
	var order []int

	for _, c := range cs {
		count := c.AgeZero
		byPOA[c.Postcode] = &Row{Postcode: c.Postcode, State: c.State, CensusCount: &count}
		order = append(order, c.Postcode)
	}
	for _, b := range bs {
		n := b.ReportedBirths
		if row, ok := byPOA[b.Postcode]; ok {
			row.ReportedBirths = &n
			continue
		}
		byPOA[b.Postcode] = &Row{Postcode: b.Postcode, ReportedBirths: &n}
		order = append(order, b.Postcode)
	}

	out := make([]Row, 0, len(order))
	for _, poa := range order {
		out = append(out, *byPOA[poa])
	}
	return out
}

// FilterState retains only rows whose state label equals state. Rows without
// a label (births-only postcodes) are dropped.
func FilterState(rows []Row, state string) []Row {
	var out []Row
	for _, r := range rows {
		if r.State == state {
			out = append(out, r)
		}
	}
	return out
}
