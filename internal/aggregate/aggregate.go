// Package aggregate reduces filtered panel views to per-year group sums
// and computes the top-N-plus-other decomposition used by stacked charts.
//
// Null handling is strict throughout: a missing value contributes nothing
// to a sum, and a (year, group) pair whose every contribution is missing
// is omitted from the output entirely so downstream charts render a gap
// rather than a misleading zero.
package aggregate

import (
	"fmt"
	"sort"

	"oceanwatch/internal/panel"
)

// Row is one aggregated output value for a (year, group) pair. Group is
// empty for ungrouped per-year sums.
type Row struct {
	Year  int
	Group string
	Value float64
}

// KeyFunc extracts the grouping key from a record.
type KeyFunc func(*panel.Record) string

// ByUnit groups records by economic unit name.
func ByUnit(r *panel.Record) string { return r.UnitName }

// ByGeography groups records by geography name.
func ByGeography(r *panel.Record) string { return r.GeoName }

// SumByYear sums one source-tagged metric per year over the view. Years
// where every contributing value is missing do not appear in the result.
func SumByYear(v panel.View, cell panel.Cell) map[int]float64 {
	sums := make(map[int]float64)
	v.Each(func(r *panel.Record) {
		if f, ok := r.Value(cell); ok {
			sums[r.Year] += f
		}
	})
	return sums
}

// SumByYearAndGroup sums one source-tagged metric per (year, group) pair.
// Output rows are ordered by year ascending, then group name ascending.
// Pairs with no present values are omitted.
func SumByYearAndGroup(v panel.View, cell panel.Cell, key KeyFunc) []Row {
	type pair struct {
		year  int
		group string
	}
	sums := make(map[pair]float64)
	v.Each(func(r *panel.Record) {
		if f, ok := r.Value(cell); ok {
			sums[pair{year: r.Year, group: key(r)}] += f
		}
	})

	rows := make([]Row, 0, len(sums))
	for k, sum := range sums {
		rows = append(rows, Row{Year: k.year, Group: k.group, Value: sum})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Group < rows[j].Group
	})
	return rows
}

// TopNPlusOther keeps, for each year independently, the n largest groups
// by value and folds the remainder into a single bucket labeled
// otherLabel. Ties are broken alphabetically by group name, so the result
// is deterministic regardless of input order. Years with n or fewer
// groups keep every group individually and get no bucket.
//
// Output order: year ascending, then rank order, bucket last.
func TopNPlusOther(rows []Row, n int, otherLabel string) []Row {
	byYear := make(map[int][]Row)
	var years []int
	for _, row := range rows {
		if _, ok := byYear[row.Year]; !ok {
			years = append(years, row.Year)
		}
		byYear[row.Year] = append(byYear[row.Year], row)
	}
	sort.Ints(years)

	var out []Row
	for _, year := range years {
		group := byYear[year]

		// A year where every group value is zero carries no signal for
		// the decomposition; drop it rather than ranking zeros.
		allZero := true
		for _, row := range group {
			if row.Value != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			if group[i].Value != group[j].Value {
				return group[i].Value > group[j].Value
			}
			return group[i].Group < group[j].Group
		})

		if len(group) <= n {
			out = append(out, group...)
			continue
		}

		out = append(out, group[:n]...)
		other := Row{Year: year, Group: otherLabel}
		for _, row := range group[n:] {
			other.Value += row.Value
		}
		out = append(out, other)
	}
	return out
}

// OtherLabel returns the bucket label for a scale, e.g. "All Other
// States".
func OtherLabel(scale panel.GeoScale) string {
	if scale == panel.ScaleCounty {
		return "All Other Counties"
	}
	return fmt.Sprintf("All Other %ss", scale)
}

// ToMillions rescales a raw dollar amount for display. This is a
// presentation-stage transform: stored panel values stay in raw dollars.
func ToMillions(v float64) float64 {
	return v / 1e6
}
