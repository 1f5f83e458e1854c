// Package deviation compares aligned per-year aggregate series produced
// by different estimation methods and computes their agreement
// statistics.
//
// Alignment is strict: a year contributes to a pairwise comparison only
// when both series carry a usable value for it. Missing years are
// excluded, never treated as zero.
package deviation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Series is a per-year value map, typically the output of an aggregation
// over one source variant.
type Series map[int]float64

// FromYearSums wraps an aggregation result as a Series.
func FromYearSums(sums map[int]float64) Series {
	s := make(Series, len(sums))
	for year, v := range sums {
		s[year] = v
	}
	return s
}

// DropZeros returns a copy of the series with exact zeros removed. In the
// source extraction a stored zero marks an unfilled cell rather than true
// zero economic activity, so comparison series reinterpret zeros as
// missing before statistics are computed. Plain aggregation never applies
// this; it is a comparison-only convention.
func (s Series) DropZeros() Series {
	out := make(Series, len(s))
	for year, v := range s {
		if v != 0 {
			out[year] = v
		}
	}
	return out
}

// Years returns the series' years in ascending order.
func (s Series) Years() []int {
	years := make([]int, 0, len(s))
	for year := range s {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// Comparison holds the pairwise statistics between a reference series and
// an estimate series over their aligned years.
type Comparison struct {
	// Years are the aligned years, ascending.
	Years []int `json:"years"`
	// Diff is estimate minus reference per aligned year.
	Diff map[int]float64 `json:"difference"`
	// PctDiff is 100*Diff/reference per aligned year; years where the
	// reference is zero are absent (excluded, not infinite).
	PctDiff map[int]float64 `json:"percent_difference"`

	MeanDiff   float64 `json:"mean_difference"`
	MedianDiff float64 `json:"median_difference"`
	MAE        float64 `json:"mean_absolute_error"`
	RMSE       float64 `json:"root_mean_squared_error"`

	// MeanPctDiff is the mean of PctDiff over the years where it is
	// defined; HasPct is false when no year defines it.
	MeanPctDiff float64 `json:"mean_percent_difference"`
	HasPct      bool    `json:"has_percent_difference"`
}

// Compare computes the deviation of est from ref over their aligned
// years. It returns nil when no aligned year exists, signaling
// "insufficient data" distinctly so callers can render that instead of a
// misleading number.
func Compare(ref, est Series) *Comparison {
	var years []int
	for year := range ref {
		if _, ok := est[year]; ok {
			years = append(years, year)
		}
	}
	if len(years) == 0 {
		return nil
	}
	sort.Ints(years)

	c := &Comparison{
		Years:   years,
		Diff:    make(map[int]float64, len(years)),
		PctDiff: make(map[int]float64, len(years)),
	}

	diffs := make([]float64, 0, len(years))
	absDiffs := make([]float64, 0, len(years))
	sqDiffs := make([]float64, 0, len(years))
	var pctDiffs []float64

	for _, year := range years {
		d := est[year] - ref[year]
		c.Diff[year] = d
		diffs = append(diffs, d)
		absDiffs = append(absDiffs, math.Abs(d))
		sqDiffs = append(sqDiffs, d*d)

		if ref[year] != 0 {
			pct := 100 * d / ref[year]
			c.PctDiff[year] = pct
			pctDiffs = append(pctDiffs, pct)
		}
	}

	c.MeanDiff = stat.Mean(diffs, nil)
	c.MedianDiff = median(diffs)
	c.MAE = stat.Mean(absDiffs, nil)
	c.RMSE = math.Sqrt(stat.Mean(sqDiffs, nil))

	if len(pctDiffs) > 0 {
		c.MeanPctDiff = stat.Mean(pctDiffs, nil)
		c.HasPct = true
	}

	return c
}

// median is the conventional sample median: middle element for odd
// counts, midpoint of the two middle elements for even counts.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
