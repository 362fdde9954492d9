package compare

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrTooFewPairs is returned when fewer than two postcodes have counts from
// both sources, leaving the correlation undefined.
var ErrTooFewPairs = errors.New("fewer than two complete pairs")

// Pairs returns the census and births counts for rows where both are
// present, in row order.
func Pairs(rows []Row) (xs, ys []float64) {
	for _, r := range rows {
		if r.CensusCount == nil || r.ReportedBirths == nil {
			continue
		}
		xs = append(xs, float64(*r.CensusCount))
		ys = append(ys, float64(*r.ReportedBirths))
	}
	return xs, ys
}

// Pearson computes the Pearson correlation coefficient between census counts
// and reported births over the matched rows.
func Pearson(rows []Row) (float64, error) {
	xs, ys := Pairs(rows)
	if len(xs) < 2 {
		return 0, ErrTooFewPairs
	}

	mx, my := mean(xs), mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, errors.New("zero variance in one series")
	}
	return sxy / math.Sqrt(sxx*syy), nil
}

// Summary holds descriptive statistics for one series.
type Summary struct {
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes descriptive statistics for vals. A zero Summary is
// returned for an empty series.
func Summarize(vals []float64) Summary {
	if len(vals) == 0 {
		return Summary{}
	}

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	m := mean(sorted)
	var ss float64
	for _, v := range sorted {
		ss += (v - m) * (v - m)
	}
	sd := 0.0
	if len(sorted) > 1 {
		sd = math.Sqrt(ss / float64(len(sorted)-1))
	}

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return Summary{
		N:      len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   m,
		Median: median,
		StdDev: sd,
	}
}

// CensusSeries returns every present census count as float64.
func CensusSeries(rows []Row) []float64 {
	var out []float64
	for _, r := range rows {
		if r.CensusCount != nil {
			out = append(out, float64(*r.CensusCount))
		}
	}
	return out
}

// BirthsSeries returns every present births count as float64.
func BirthsSeries(rows []Row) []float64 {
	var out []float64
	for _, r := range rows {
		if r.ReportedBirths != nil {
			out = append(out, float64(*r.ReportedBirths))
		}
	}
	return out
}

// HistogramSeries is a two-series histogram over shared bins spanning zero to
// the maximum observed value across both series. Edges has len(Census)+1
// entries; a value equal to the top edge lands in the last bin.
type HistogramSeries struct {
	Edges  []float64 `json:"edges"`
	Census []int64   `json:"census"`
	Births []int64   `json:"births"`
}

// Histogram bins both series over bins equal-width bins.
func Histogram(rows []Row, bins int) (HistogramSeries, error) {
	if bins < 1 {
		return HistogramSeries{}, errors.New("bins must be positive")
	}
	cs, bs := CensusSeries(rows), BirthsSeries(rows)
	if len(cs) == 0 && len(bs) == 0 {
		return HistogramSeries{}, errors.New("no observations to bin")
	}

	max := 0.0
	for _, v := range append(append([]float64(nil), cs...), bs...) {
		if v < 0 {
			return HistogramSeries{}, fmt.Errorf("negative observation %g cannot be binned", v)
		}
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1 // all-zero counts still get a degenerate 0..1 range
	}

	h := HistogramSeries{
		Edges:  make([]float64, bins+1),
		Census: make([]int64, bins),
		Births: make([]int64, bins),
	}
	width := max / float64(bins)
	for i := 0; i <= bins; i++ {
		h.Edges[i] = width * float64(i)
	}

	bin := func(v float64) int {
		i := int(v / width)
		if i >= bins {
			i = bins - 1
		}
		return i
	}
	for _, v := range cs {
		h.Census[bin(v)]++
	}
	for _, v := range bs {
		h.Births[bin(v)]++
	}
	return h, nil
}

// Point is one scatter observation: census count against reported births for
// a matched postcode.
type Point struct {
	Postcode int `json:"postcode"`
	Census   int `json:"census"`
	Births   int `json:"births"`
}

// Scatter returns the matched rows as plot-ready points.
func Scatter(rows []Row) []Point {
	var out []Point
	for _, r := range rows {
		if r.CensusCount == nil || r.ReportedBirths == nil {
			continue
		}
		out = append(out, Point{Postcode: r.Postcode, Census: *r.CensusCount, Births: *r.ReportedBirths})
	}
	return out
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
