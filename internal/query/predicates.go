package query

import "oceanwatch/internal/panel"

// Predicate reports whether a panel record satisfies one filter
// dimension. Predicates are conjunctive and commutative: applying them in
// any order yields the same row set, which callers rely on when composing
// filters incrementally.
type Predicate func(*panel.Record) bool

// ClampYears resolves the spec's year bounds against the table's
// observed range. Out-of-range bounds are clamped, never rejected.
func (s Spec) ClampYears(t *panel.Table) (int, int) {
	yearMin, yearMax := s.YearMin, s.YearMax
	if t.Len() > 0 {
		if yearMin < t.YearMin() {
			yearMin = t.YearMin()
		}
		if yearMax > t.YearMax() {
			yearMax = t.YearMax()
		}
	}
	return yearMin, yearMax
}

// Predicates translates the spec into one predicate per dimension against
// the given table.
func (s Spec) Predicates(t *panel.Table) []Predicate {
	yearMin, yearMax := s.ClampYears(t)

	preds := []Predicate{
		func(r *panel.Record) bool { return r.Year >= yearMin && r.Year <= yearMax },
		// The scale predicate applies even when every geography is
		// selected: "all" means all at this scale, otherwise state,
		// county and region rows would be summed together.
		func(r *panel.Record) bool { return r.Scale == s.Scale },
		// Likewise the level predicate always applies; sector-level and
		// industry-level rows are different decompositions of the same
		// activity and must never be mixed.
		func(r *panel.Record) bool { return r.Level == s.Level },
	}

	if !s.AllGeographies() {
		geoName := s.GeoName
		preds = append(preds, func(r *panel.Record) bool { return r.GeoName == geoName })
	}
	if !s.AllUnits() {
		unitName := s.UnitName
		preds = append(preds, func(r *panel.Record) bool { return r.UnitName == unitName })
	}

	return preds
}

// Apply filters the view through every predicate. An empty result is a
// valid state, not an error; a scale or unit with no matching rows simply
// yields a zero-length view.
func Apply(v panel.View, preds ...Predicate) panel.View {
	for _, p := range preds {
		v = v.Filter(p)
	}
	return v
}
