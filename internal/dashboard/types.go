package dashboard

import (
	"fmt"

	"oceanwatch/internal/deviation"
	"oceanwatch/internal/panel"
	"oceanwatch/internal/projection"
	"oceanwatch/internal/query"
)

// GroupBy selects the grouping axis for a view.
type GroupBy int

const (
	// GroupNone yields per-year series, one per source variant.
	GroupNone GroupBy = iota
	// GroupUnit yields one series per economic unit.
	GroupUnit
	// GroupGeography yields one series per geography, collapsing to
	// top-contributors-plus-other when every geography is selected.
	GroupGeography
)

// ParseGroupBy maps the wire value to a GroupBy. Empty means GroupNone.
func ParseGroupBy(s string) (GroupBy, error) {
	switch s {
	case "", "none":
		return GroupNone, nil
	case "unit":
		return GroupUnit, nil
	case "geography":
		return GroupGeography, nil
	}
	return 0, fmt.Errorf("unknown group_by %q", s)
}

// ComparisonMode selects which estimate series are shown and compared
// against the reference.
type ComparisonMode int

const (
	// CompareNone shows only the primary estimate, with no statistics.
	CompareNone ComparisonMode = iota
	// CompareImputed shows the reference and the imputed estimate and
	// compares the pair.
	CompareImputed
	// CompareAll shows all three series and compares both estimates
	// against the reference.
	CompareAll
)

// ParseComparisonMode maps the wire value to a ComparisonMode. Empty
// means CompareNone.
func ParseComparisonMode(s string) (ComparisonMode, error) {
	switch s {
	case "", "none":
		return CompareNone, nil
	case "imputed":
		return CompareImputed, nil
	case "all":
		return CompareAll, nil
	}
	return 0, fmt.Errorf("unknown comparison mode %q", s)
}

// Sources returns the source variants included in a view for this mode,
// in display order.
func (m ComparisonMode) Sources() []panel.SourceVariant {
	switch m {
	case CompareImputed:
		return []panel.SourceVariant{panel.SourceReference, panel.SourceImputed}
	case CompareAll:
		return []panel.SourceVariant{panel.SourceReference, panel.SourceImputed, panel.SourceRaw}
	}
	return []panel.SourceVariant{panel.SourceImputed}
}

// SourcePair names one pairwise comparison.
type SourcePair struct {
	Ref panel.SourceVariant
	Est panel.SourceVariant
}

// Pairs returns the pairwise comparisons computed for this mode.
func (m ComparisonMode) Pairs() []SourcePair {
	switch m {
	case CompareImputed:
		return []SourcePair{{Ref: panel.SourceReference, Est: panel.SourceImputed}}
	case CompareAll:
		return []SourcePair{
			{Ref: panel.SourceReference, Est: panel.SourceImputed},
			{Ref: panel.SourceReference, Est: panel.SourceRaw},
		}
	}
	return nil
}

// Request describes one view computation.
type Request struct {
	Spec       query.Spec
	Metric     panel.MetricKind
	GroupBy    GroupBy
	Comparison ComparisonMode
}

// Validate checks the request. Errors wrap query.ErrInvalidSpec so the
// transport layer can map them to a 400.
func (r Request) Validate() error {
	if err := r.Spec.Validate(); err != nil {
		return err
	}
	if !r.Metric.IsValid() {
		return fmt.Errorf("%w: unknown metric %d", query.ErrInvalidSpec, int(r.Metric))
	}
	return nil
}

// ViewResult is the complete answer to one view computation. Callers
// must check IsEmpty rather than inferring emptiness from the table, and
// a nil or missing Stats entry means insufficient aligned data, not an
// error.
type ViewResult struct {
	Metric    string                            `json:"metric"`
	AxisLabel string                            `json:"axis_label"`
	YearMin   int                               `json:"year_min"`
	YearMax   int                               `json:"year_max"`
	Table     *projection.LongTable             `json:"table"`
	Stats     map[string]*deviation.Comparison  `json:"comparison_stats,omitempty"`
	IsEmpty   bool                              `json:"is_empty"`
}

// Dimensions is the selectable dimension catalog for the loaded panel.
type Dimensions struct {
	Scales      []string            `json:"scales"`
	Geographies map[string][]string `json:"geographies"`
	Levels      []string            `json:"levels"`
	Units       map[string][]string `json:"units"`
	Metrics     []string            `json:"metrics"`
	Sources     []string            `json:"sources"`
	YearMin     int                 `json:"year_min"`
	YearMax     int                 `json:"year_max"`
}

// OutlierRequest describes one cross-group comparison.
type OutlierRequest struct {
	Spec    query.Spec
	Metric  panel.MetricKind
	GroupBy GroupBy
}

// Validate checks the request.
func (r OutlierRequest) Validate() error {
	if err := r.Spec.Validate(); err != nil {
		return err
	}
	if !r.Metric.IsValid() {
		return fmt.Errorf("%w: unknown metric %d", query.ErrInvalidSpec, int(r.Metric))
	}
	if r.GroupBy == GroupNone {
		return fmt.Errorf("%w: cross-group comparison requires a grouping axis", query.ErrInvalidSpec)
	}
	return nil
}

// OutlierReport is the cross-group comparison result: the per-group mean
// percent differences partitioned by the Tukey fence.
type OutlierReport struct {
	Metric  string          `json:"metric"`
	Fence   deviation.Fence `json:"fence"`
	IsEmpty bool            `json:"is_empty"`
}
