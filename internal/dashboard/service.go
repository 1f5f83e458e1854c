// Package dashboard is the service layer behind the exploration UI: it
// runs the full filter → aggregate → compare → project pipeline for one
// request at a time over the read-only loaded panel. Every request is
// stateless and independently computable; no shared mutable state exists
// after the panel loads.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"oceanwatch/internal/aggregate"
	"oceanwatch/internal/deviation"
	"oceanwatch/internal/panel"
	"oceanwatch/internal/projection"
	"oceanwatch/internal/query"
)

// DefaultTopN is how many individual geographies keep their identity in
// the top-contributors decomposition before the remainder is bucketed.
const DefaultTopN = 3

// Service computes dashboard views over the cached panel.
type Service struct {
	store  *panel.Store
	source string
	logger *slog.Logger
	topN   int
}

// NewService creates a dashboard service bound to one panel source path.
func NewService(store *panel.Store, source string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		source: source,
		logger: logger.With(slog.String("component", "dashboard_service")),
		topN:   DefaultTopN,
	}
}

// ComputeView runs one full recomputation pass for a filter selection.
// Empty results and insufficient comparison data are valid outcomes
// encoded in the ViewResult, never errors.
func (s *Service) ComputeView(ctx context.Context, req Request) (*ViewResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	table, err := s.store.Get(ctx, s.source)
	if err != nil {
		return nil, err
	}

	view := query.Apply(table.All(), req.Spec.Predicates(table)...)
	yearMin, yearMax := req.Spec.ClampYears(table)

	s.logger.InfoContext(ctx, "computing view",
		slog.String("scale", req.Spec.Scale.String()),
		slog.String("geography", req.Spec.GeoName),
		slog.String("unit", req.Spec.UnitName),
		slog.String("metric", req.Metric.String()),
		slog.Int("matched_rows", view.Len()))

	result := &ViewResult{
		Metric:    req.Metric.String(),
		AxisLabel: projection.AxisLabel(req.Metric, yearMin),
		YearMin:   yearMin,
		YearMax:   yearMax,
	}

	if req.GroupBy == GroupNone {
		result.Table, result.Stats = s.computeSeries(view, req)
	} else {
		result.Table = s.computeGrouped(view, req)
	}
	result.IsEmpty = len(result.Table.Rows) == 0

	return result, nil
}

// computeSeries builds the ungrouped per-year series for each requested
// source variant, plus pairwise deviation statistics for the comparison
// mode.
func (s *Service) computeSeries(view panel.View, req Request) (*projection.LongTable, map[string]*deviation.Comparison) {
	rescale := req.Metric.IsCurrency()

	series := make(map[panel.SourceVariant]deviation.Series)
	for _, source := range req.Comparison.Sources() {
		sums := aggregate.SumByYear(view, panel.Cell{Metric: req.Metric, Source: source})
		if rescale {
			for year, v := range sums {
				sums[year] = aggregate.ToMillions(v)
			}
		}
		series[source] = deviation.FromYearSums(sums)
	}

	table := &projection.LongTable{}
	years := unionYears(series)
	for _, year := range years {
		for _, source := range req.Comparison.Sources() {
			if v, ok := series[source][year]; ok {
				table.Rows = append(table.Rows, projection.LongRow{
					Year:   year,
					Source: source.String(),
					Value:  v,
				})
			}
		}
	}

	var stats map[string]*deviation.Comparison
	for _, pair := range req.Comparison.Pairs() {
		// The zero-as-missing convention applies to comparison series
		// only: a stored zero marks an unfilled extraction cell.
		ref := series[pair.Ref].DropZeros()
		est := series[pair.Est].DropZeros()
		c := deviation.Compare(ref, est)
		if c == nil {
			continue // insufficient aligned data for this pair
		}
		if stats == nil {
			stats = make(map[string]*deviation.Comparison)
		}
		stats[fmt.Sprintf("%s vs %s", pair.Est, pair.Ref)] = c
	}

	return table, stats
}

// computeGrouped builds the grouped decomposition of the primary estimate
// series. With every geography selected and a single economic unit, the
// per-geography view collapses to top contributors plus an "all other"
// bucket.
func (s *Service) computeGrouped(view panel.View, req Request) *projection.LongTable {
	cell := panel.Cell{Metric: req.Metric, Source: panel.SourceImputed}

	var key aggregate.KeyFunc
	switch req.GroupBy {
	case GroupGeography:
		key = aggregate.ByGeography
	default:
		key = aggregate.ByUnit
	}

	rows := aggregate.SumByYearAndGroup(view, cell, key)

	if req.GroupBy == GroupGeography && req.Spec.AllGeographies() && !req.Spec.AllUnits() {
		rows = aggregate.TopNPlusOther(rows, s.topN, aggregate.OtherLabel(req.Spec.Scale))
	}

	table := &projection.LongTable{HasGroup: true}
	rescale := req.Metric.IsCurrency()
	for _, row := range rows {
		v := row.Value
		if rescale {
			v = aggregate.ToMillions(v)
		}
		table.Rows = append(table.Rows, projection.LongRow{
			Year:   row.Year,
			Group:  row.Group,
			Source: panel.SourceImputed.String(),
			Value:  v,
		})
	}
	return table
}

// Dimensions returns the selectable dimension catalog for the panel,
// driving the frontend's dropdowns.
func (s *Service) Dimensions(ctx context.Context) (*Dimensions, error) {
	table, err := s.store.Get(ctx, s.source)
	if err != nil {
		return nil, err
	}

	d := &Dimensions{
		Geographies: make(map[string][]string),
		Units:       make(map[string][]string),
		YearMin:     table.YearMin(),
		YearMax:     table.YearMax(),
	}
	for _, scale := range panel.GeoScales() {
		d.Scales = append(d.Scales, scale.String())
		d.Geographies[scale.String()] = table.Geographies(scale)
	}
	for _, level := range panel.AggLevels() {
		d.Levels = append(d.Levels, level.String())
		d.Units[level.String()] = table.Units(level)
	}
	for _, metric := range panel.MetricKinds() {
		d.Metrics = append(d.Metrics, metric.String())
	}
	for _, source := range panel.SourceVariants() {
		d.Sources = append(d.Sources, source.String())
	}
	return d, nil
}

// CompareAcrossGroups computes the mean percent difference of the primary
// estimate against the reference for every group in the filtered slice,
// then applies a Tukey fence over those per-group summary values to flag
// outlying groups. The fence runs over the summary statistics, never the
// raw panel rows.
func (s *Service) CompareAcrossGroups(ctx context.Context, req OutlierRequest) (*OutlierReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	table, err := s.store.Get(ctx, s.source)
	if err != nil {
		return nil, err
	}

	view := query.Apply(table.All(), req.Spec.Predicates(table)...)
	rescale := req.Metric.IsCurrency()

	var key aggregate.KeyFunc
	if req.GroupBy == GroupGeography {
		key = aggregate.ByGeography
	} else {
		key = aggregate.ByUnit
	}

	refSeries := groupSeries(view, panel.Cell{Metric: req.Metric, Source: panel.SourceReference}, key, rescale)
	estSeries := groupSeries(view, panel.Cell{Metric: req.Metric, Source: panel.SourceImputed}, key, rescale)

	var stats []deviation.GroupStat
	for group, ref := range refSeries {
		est, ok := estSeries[group]
		if !ok {
			continue
		}
		c := deviation.Compare(ref.DropZeros(), est.DropZeros())
		if c == nil || !c.HasPct {
			continue
		}
		stats = append(stats, deviation.GroupStat{Group: group, Value: c.MeanPctDiff})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Group < stats[j].Group })

	report := &OutlierReport{
		Metric:  req.Metric.String(),
		Fence:   deviation.TukeyFence(stats),
		IsEmpty: len(stats) == 0,
	}

	s.logger.InfoContext(ctx, "computed cross-group comparison",
		slog.String("metric", req.Metric.String()),
		slog.Int("groups", len(stats)),
		slog.Int("excluded", len(report.Fence.Cut)))

	return report, nil
}

func groupSeries(view panel.View, cell panel.Cell, key aggregate.KeyFunc, rescale bool) map[string]deviation.Series {
	out := make(map[string]deviation.Series)
	for _, row := range aggregate.SumByYearAndGroup(view, cell, key) {
		if out[row.Group] == nil {
			out[row.Group] = make(deviation.Series)
		}
		v := row.Value
		if rescale {
			v = aggregate.ToMillions(v)
		}
		out[row.Group][row.Year] = v
	}
	return out
}

func unionYears(series map[panel.SourceVariant]deviation.Series) []int {
	seen := make(map[int]bool)
	var years []int
	for _, s := range series {
		for year := range s {
			if !seen[year] {
				seen[year] = true
				years = append(years, year)
			}
		}
	}
	sort.Ints(years)
	return years
}
