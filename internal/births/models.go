package births

// Count is the persisted form of a births row.
type Count struct {
	Postcode       int `gorm:"primaryKey" json:"postcode"`
	ReportedBirths int `json:"reported_births"`
}

func (Count) TableName() string {
	return "births.mothers_postcode_counts"
}

// Counts converts parsed records to their persisted form.
func Counts(recs []Record) []Count {
	out := make([]Count, 0, len(recs))
	for _, r := range recs {
		out = append(out, Count{Postcode: r.Postcode, ReportedBirths: r.ReportedBirths})
	}
	return out
}
