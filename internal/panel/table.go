package panel

import "sort"

// Value is a nullable observation. An invalid Value means "not measured",
// which is distinct from a measured zero everywhere in this system.
type Value struct {
	F     float64
	Valid bool
}

// Some returns a present Value.
func Some(f float64) Value {
	return Value{F: f, Valid: true}
}

// None returns a missing Value.
func None() Value {
	return Value{}
}

// Cell addresses one source-tagged metric field on a record.
type Cell struct {
	Metric MetricKind
	Source SourceVariant
}

// Record is one row of the panel: a single (geography, economic unit,
// year) observation carrying every source-tagged metric value present in
// the source file.
type Record struct {
	GeoName   string
	Scale     GeoScale
	StateCode string
	UnitName  string
	Level     AggLevel
	Year      int
	Values    map[Cell]Value
}

// Value returns the observation for the given cell, reporting presence.
func (r *Record) Value(c Cell) (float64, bool) {
	v, ok := r.Values[c]
	if !ok || !v.Valid {
		return 0, false
	}
	return v.F, true
}

// Table is an immutable loaded panel. The records slice is never modified
// after construction; filtering produces index-sharing Views.
type Table struct {
	records []Record

	yearMin int
	yearMax int

	geosByScale  map[GeoScale][]string
	unitsByLevel map[AggLevel][]string
	years        []int
}

// NewTable builds a Table from records and precomputes the dimension
// catalogs used for clamping and UI dropdowns.
func NewTable(records []Record) *Table {
	t := &Table{
		records:      records,
		geosByScale:  make(map[GeoScale][]string),
		unitsByLevel: make(map[AggLevel][]string),
	}

	geoSeen := make(map[GeoScale]map[string]bool)
	unitSeen := make(map[AggLevel]map[string]bool)
	yearSeen := make(map[int]bool)

	for i := range records {
		r := &records[i]
		if geoSeen[r.Scale] == nil {
			geoSeen[r.Scale] = make(map[string]bool)
		}
		if !geoSeen[r.Scale][r.GeoName] {
			geoSeen[r.Scale][r.GeoName] = true
			t.geosByScale[r.Scale] = append(t.geosByScale[r.Scale], r.GeoName)
		}
		if unitSeen[r.Level] == nil {
			unitSeen[r.Level] = make(map[string]bool)
		}
		if !unitSeen[r.Level][r.UnitName] {
			unitSeen[r.Level][r.UnitName] = true
			t.unitsByLevel[r.Level] = append(t.unitsByLevel[r.Level], r.UnitName)
		}
		if !yearSeen[r.Year] {
			yearSeen[r.Year] = true
			t.years = append(t.years, r.Year)
		}
	}

	for scale := range t.geosByScale {
		sort.Strings(t.geosByScale[scale])
	}
	for level := range t.unitsByLevel {
		sort.Strings(t.unitsByLevel[level])
	}
	sort.Ints(t.years)

	if len(t.years) > 0 {
		t.yearMin = t.years[0]
		t.yearMax = t.years[len(t.years)-1]
	}

	return t
}

// Len returns the number of records in the panel.
func (t *Table) Len() int { return len(t.records) }

// YearMin returns the earliest observed year (0 for an empty panel).
func (t *Table) YearMin() int { return t.yearMin }

// YearMax returns the latest observed year (0 for an empty panel).
func (t *Table) YearMax() int { return t.yearMax }

// Years returns all observed years in ascending order.
func (t *Table) Years() []int {
	out := make([]int, len(t.years))
	copy(out, t.years)
	return out
}

// Geographies returns the sorted distinct geography names at a scale.
func (t *Table) Geographies(scale GeoScale) []string {
	src := t.geosByScale[scale]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Units returns the sorted distinct economic unit names at a level.
func (t *Table) Units(level AggLevel) []string {
	src := t.unitsByLevel[level]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// All returns a view over every record.
func (t *Table) All() View {
	idx := make([]int, len(t.records))
	for i := range idx {
		idx[i] = i
	}
	return View{table: t, idx: idx}
}

// View is a logical subset of a Table: it shares the table's record
// storage and holds only row indices, so filtering never copies metric
// data.
type View struct {
	table *Table
	idx   []int
}

// Len returns the number of rows in the view.
func (v View) Len() int { return len(v.idx) }

// Table returns the backing panel table.
func (v View) Table() *Table { return v.table }

// Filter returns a new view holding only the rows for which keep returns
// true. Input row order is preserved.
func (v View) Filter(keep func(*Record) bool) View {
	out := View{table: v.table}
	for _, i := range v.idx {
		if keep(&v.table.records[i]) {
			out.idx = append(out.idx, i)
		}
	}
	return out
}

// Each calls fn for every record in the view, in view order.
func (v View) Each(fn func(*Record)) {
	for _, i := range v.idx {
		fn(&v.table.records[i])
	}
}

// Records materializes the view's record pointers in view order. The
// pointed-to records must not be mutated.
func (v View) Records() []*Record {
	out := make([]*Record, 0, len(v.idx))
	for _, i := range v.idx {
		out = append(out, &v.table.records[i])
	}
	return out
}
