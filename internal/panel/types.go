package panel

import "fmt"

// GeoScale identifies the granularity of a geography. A geography name
// belongs to exactly one scale within a loaded panel; scales are never
// summed together.
type GeoScale int

const (
	ScaleState GeoScale = iota
	ScaleCounty
	ScaleRegion
)

var geoScaleLabels = map[GeoScale]string{
	ScaleState:  "State",
	ScaleCounty: "County",
	ScaleRegion: "Region",
}

// String returns the display label for the scale.
func (g GeoScale) String() string {
	if label, ok := geoScaleLabels[g]; ok {
		return label
	}
	return fmt.Sprintf("GeoScale(%d)", int(g))
}

// IsValid reports whether g is one of the defined scales.
func (g GeoScale) IsValid() bool {
	_, ok := geoScaleLabels[g]
	return ok
}

// ParseGeoScale maps a display label back to its GeoScale.
func ParseGeoScale(label string) (GeoScale, error) {
	for scale, l := range geoScaleLabels {
		if l == label {
			return scale, nil
		}
	}
	return 0, fmt.Errorf("unknown geography scale %q", label)
}

// GeoScales returns all scales in declaration order.
func GeoScales() []GeoScale {
	return []GeoScale{ScaleState, ScaleCounty, ScaleRegion}
}

// AggLevel identifies whether a record's economic unit is a top-level
// sector or a finer-grained industry. The two levels are disjoint
// decompositions of the same activity and must never be summed together.
type AggLevel int

const (
	LevelSector AggLevel = iota
	LevelIndustry
)

var aggLevelLabels = map[AggLevel]string{
	LevelSector:   "Sector",
	LevelIndustry: "Industry",
}

// String returns the display label for the level.
func (a AggLevel) String() string {
	if label, ok := aggLevelLabels[a]; ok {
		return label
	}
	return fmt.Sprintf("AggLevel(%d)", int(a))
}

// IsValid reports whether a is one of the defined levels.
func (a AggLevel) IsValid() bool {
	_, ok := aggLevelLabels[a]
	return ok
}

// ParseAggLevel maps a display label back to its AggLevel.
func ParseAggLevel(label string) (AggLevel, error) {
	for level, l := range aggLevelLabels {
		if l == label {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown aggregation level %q", label)
}

// AggLevels returns all levels in declaration order.
func AggLevels() []AggLevel {
	return []AggLevel{LevelSector, LevelIndustry}
}

// MetricKind identifies one of the measured marine economy statistics.
type MetricKind int

const (
	MetricEstablishments MetricKind = iota
	MetricEmployment
	MetricWages
	MetricRealWages
	MetricGDP
	MetricRealGDP
)

var metricLabels = map[MetricKind]string{
	MetricEstablishments: "Establishments",
	MetricEmployment:     "Employment",
	MetricWages:          "Wages",
	MetricRealWages:      "RealWages",
	MetricGDP:            "GDP",
	MetricRealGDP:        "RealGDP",
}

// String returns the column/display label for the metric.
func (m MetricKind) String() string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return fmt.Sprintf("MetricKind(%d)", int(m))
}

// IsValid reports whether m is one of the defined metrics.
func (m MetricKind) IsValid() bool {
	_, ok := metricLabels[m]
	return ok
}

// IsCurrency reports whether the metric is a dollar amount. Currency
// metrics are stored in raw dollars and rescaled to millions only at the
// presentation boundary.
func (m MetricKind) IsCurrency() bool {
	switch m {
	case MetricWages, MetricRealWages, MetricGDP, MetricRealGDP:
		return true
	}
	return false
}

// ParseMetricKind maps a display label back to its MetricKind.
func ParseMetricKind(label string) (MetricKind, error) {
	for metric, l := range metricLabels {
		if l == label {
			return metric, nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", label)
}

// MetricKinds returns all metrics in declaration order.
func MetricKinds() []MetricKind {
	return []MetricKind{
		MetricEstablishments,
		MetricEmployment,
		MetricWages,
		MetricRealWages,
		MetricGDP,
		MetricRealGDP,
	}
}

// SourceVariant identifies which estimation method produced a value.
type SourceVariant int

const (
	// SourceReference is the authoritative legacy ENOW series the
	// estimates are compared against.
	SourceReference SourceVariant = iota
	// SourceImputed is the primary estimate: public QCEW records with
	// imputation for suppressed cells.
	SourceImputed
	// SourceRaw is the alternative estimate: public QCEW records with no
	// imputation.
	SourceRaw
)

var sourceLabels = map[SourceVariant]string{
	SourceReference: "ENOW",
	SourceImputed:   "QCEW with imputation",
	SourceRaw:       "QCEW without imputation",
}

// sourcePrefixes maps each variant to its panel CSV column prefix.
var sourcePrefixes = map[SourceVariant]string{
	SourceReference: "ENOW",
	SourceImputed:   "NQ",
	SourceRaw:       "NP",
}

// String returns the display label for the source variant.
func (s SourceVariant) String() string {
	if label, ok := sourceLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("SourceVariant(%d)", int(s))
}

// IsValid reports whether s is one of the defined variants.
func (s SourceVariant) IsValid() bool {
	_, ok := sourceLabels[s]
	return ok
}

// ColumnName returns the panel CSV column holding this variant's value
// for the given metric, e.g. "NQ_Employment".
func (s SourceVariant) ColumnName(m MetricKind) string {
	return sourcePrefixes[s] + "_" + m.String()
}

// ParseSourceVariant maps a display label back to its SourceVariant.
func ParseSourceVariant(label string) (SourceVariant, error) {
	for source, l := range sourceLabels {
		if l == label {
			return source, nil
		}
	}
	return 0, fmt.Errorf("unknown source variant %q", label)
}

// SourceVariants returns all variants in declaration order.
func SourceVariants() []SourceVariant {
	return []SourceVariant{SourceReference, SourceImputed, SourceRaw}
}

func init() {
	// The label maps are the single source of truth for the enum <->
	// display mapping; an entry missing here is a programmer error, so
	// fail at startup rather than at first lookup.
	for _, g := range GeoScales() {
		if _, ok := geoScaleLabels[g]; !ok {
			panic(fmt.Sprintf("panel: missing label for geography scale %d", int(g)))
		}
	}
	for _, a := range AggLevels() {
		if _, ok := aggLevelLabels[a]; !ok {
			panic(fmt.Sprintf("panel: missing label for aggregation level %d", int(a)))
		}
	}
	for _, m := range MetricKinds() {
		if _, ok := metricLabels[m]; !ok {
			panic(fmt.Sprintf("panel: missing label for metric %d", int(m)))
		}
	}
	for _, s := range SourceVariants() {
		if _, ok := sourceLabels[s]; !ok {
			panic(fmt.Sprintf("panel: missing label for source variant %d", int(s)))
		}
		if _, ok := sourcePrefixes[s]; !ok {
			panic(fmt.Sprintf("panel: missing column prefix for source variant %d", int(s)))
		}
	}
}
