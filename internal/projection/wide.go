package projection

import (
	"sort"

	"oceanwatch/internal/panel"
)

// WideRow is one (year, [group]) row of a pivoted table, with one value
// slot per source column. A missing slot stays missing; it is never
// filled with zero.
type WideRow struct {
	Year   int           `json:"year"`
	Group  string        `json:"group,omitempty"`
	Values []panel.Value `json:"values"`
}

// WideTable is the long table pivoted on the source column, the shape
// simple two/three-line comparison charts consume.
type WideTable struct {
	Sources []string  `json:"sources"`
	Rows    []WideRow `json:"rows"`
}

// Pivot pivots the long table on its source column. Source column order
// is first-seen order in the long table; rows are ordered by year then
// group.
func (t *LongTable) Pivot() *WideTable {
	wide := &WideTable{}

	sourceIdx := make(map[string]int)
	for _, row := range t.Rows {
		if _, ok := sourceIdx[row.Source]; !ok {
			sourceIdx[row.Source] = len(wide.Sources)
			wide.Sources = append(wide.Sources, row.Source)
		}
	}

	type key struct {
		year  int
		group string
	}
	rowIdx := make(map[key]int)
	for _, row := range t.Rows {
		k := key{year: row.Year, group: row.Group}
		i, ok := rowIdx[k]
		if !ok {
			i = len(wide.Rows)
			rowIdx[k] = i
			wide.Rows = append(wide.Rows, WideRow{
				Year:   row.Year,
				Group:  row.Group,
				Values: make([]panel.Value, len(wide.Sources)),
			})
		}
		wide.Rows[i].Values[sourceIdx[row.Source]] = panel.Some(row.Value)
	}

	sort.Slice(wide.Rows, func(i, j int) bool {
		if wide.Rows[i].Year != wide.Rows[j].Year {
			return wide.Rows[i].Year < wide.Rows[j].Year
		}
		return wide.Rows[i].Group < wide.Rows[j].Group
	})

	return wide
}
