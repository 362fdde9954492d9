package census

// Count is the persisted form of a cleaned extract row.
type Count struct {
	Postcode int    `gorm:"primaryKey" json:"postcode"`
	State    string `json:"state"`
	AgeZero  int    `json:"age_zero"`
}

func (Count) TableName() string {
	return "census.age_zero_counts"
}

// Counts converts cleaned records to their persisted form.
func Counts(recs []Record) []Count {
	out := make([]Count, 0, len(recs))
	for _, r := range recs {
		out = append(out, Count{Postcode: r.Postcode, State: r.State, AgeZero: r.AgeZero})
	}
	return out
}
