package compare

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Run is the persisted provenance record of one comparison: which inputs
// were used (path plus content fingerprint), what was compared, and the
// headline numbers. Scatter points are not stored; the report API rebuilds
// them from the persisted count tables.
type Run struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TargetState    string          `json:"target_state"`
	CensusFile     string          `json:"census_file"`
	CensusDigest   string          `json:"census_digest"`
	BirthsFile     string          `json:"births_file"`
	BirthsDigest   string          `json:"births_digest"`
	Rows           int             `json:"rows"`
	MatchedRows    int             `json:"matched_rows"`
	Correlation    float64         `json:"correlation"`
	HistogramEdges pq.Float64Array `gorm:"type:float8[]" json:"histogram_edges"`
	CensusBins     pq.Int64Array   `gorm:"type:bigint[]" json:"census_bins"`
	BirthsBins     pq.Int64Array   `gorm:"type:bigint[]" json:"births_bins"`
	Caveats        pq.StringArray  `gorm:"type:text[]" json:"caveats"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (Run) TableName() string {
	return "compare.runs"
}

// Report bundles everything one comparison produces for inspection.
type Report struct {
	Run           Run             `json:"run"`
	CensusSummary Summary         `json:"census_summary"`
	BirthsSummary Summary         `json:"births_summary"`
	Histogram     HistogramSeries `json:"histogram"`
	Scatter       []Point         `json:"scatter"`
	CleanedPath   string          `json:"cleaned_path"`
}
