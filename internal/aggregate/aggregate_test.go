package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oceanwatch/internal/panel"
)

var empCell = panel.Cell{Metric: panel.MetricEmployment, Source: panel.SourceImputed}

func rec(geo, unit string, year int, v panel.Value) panel.Record {
	return panel.Record{
		GeoName:  geo,
		Scale:    panel.ScaleState,
		UnitName: unit,
		Level:    panel.LevelSector,
		Year:     year,
		Values:   map[panel.Cell]panel.Value{empCell: v},
	}
}

func viewOf(records ...panel.Record) panel.View {
	return panel.NewTable(records).All()
}

func TestSumByYearSkipsNulls(t *testing.T) {
	view := viewOf(
		rec("California", "Tourism and Recreation", 2020, panel.Some(100)),
		rec("Oregon", "Tourism and Recreation", 2020, panel.None()),
		rec("Washington", "Tourism and Recreation", 2020, panel.Some(50)),
	)

	sums := SumByYear(view, empCell)

	// A null contribution is skipped, not zeroed, and does not poison
	// the total.
	require.Len(t, sums, 1)
	assert.Equal(t, 150.0, sums[2020])
}

func TestSumByYearOmitsAllNullYears(t *testing.T) {
	view := viewOf(
		rec("Wyoming", "Tourism and Recreation", 2020, panel.None()),
		rec("Wyoming", "Tourism and Recreation", 2021, panel.None()),
		rec("California", "Tourism and Recreation", 2021, panel.Some(10)),
	)

	sums := SumByYear(view, empCell)

	// 2020 has only null contributions: no entry at all, not zero.
	_, ok := sums[2020]
	assert.False(t, ok)
	assert.Equal(t, 10.0, sums[2021])
}

func TestSumByYearAndGroupOrderingAndNulls(t *testing.T) {
	view := viewOf(
		rec("Oregon", "Tourism and Recreation", 2021, panel.Some(30)),
		rec("California", "Tourism and Recreation", 2020, panel.Some(100)),
		rec("California", "Tourism and Recreation", 2020, panel.Some(20)),
		rec("Wyoming", "Tourism and Recreation", 2020, panel.None()),
		rec("Oregon", "Tourism and Recreation", 2020, panel.Some(40)),
	)

	rows := SumByYearAndGroup(view, empCell, ByGeography)

	// Wyoming never appears: every contribution was null.
	require.Equal(t, []Row{
		{Year: 2020, Group: "California", Value: 120},
		{Year: 2020, Group: "Oregon", Value: 40},
		{Year: 2021, Group: "Oregon", Value: 30},
	}, rows)
}

func TestTopNPlusOtherBasic(t *testing.T) {
	rows := []Row{
		{Year: 2020, Group: "California", Value: 500},
		{Year: 2020, Group: "Florida", Value: 400},
		{Year: 2020, Group: "Texas", Value: 300},
		{Year: 2020, Group: "Oregon", Value: 200},
		{Year: 2020, Group: "Maine", Value: 100},
	}

	out := TopNPlusOther(rows, 3, "All Other States")

	require.Len(t, out, 4)
	assert.Equal(t, Row{Year: 2020, Group: "California", Value: 500}, out[0])
	assert.Equal(t, Row{Year: 2020, Group: "Florida", Value: 400}, out[1])
	assert.Equal(t, Row{Year: 2020, Group: "Texas", Value: 300}, out[2])
	assert.Equal(t, Row{Year: 2020, Group: "All Other States", Value: 300}, out[3])
}

func TestTopNPlusOtherCompleteness(t *testing.T) {
	rows := []Row{
		{Year: 2020, Group: "A", Value: 17.3},
		{Year: 2020, Group: "B", Value: 252.1},
		{Year: 2020, Group: "C", Value: 98.6},
		{Year: 2020, Group: "D", Value: 0.4},
		{Year: 2020, Group: "E", Value: 1204.9},
		{Year: 2020, Group: "F", Value: 33.3},
		{Year: 2021, Group: "A", Value: 5},
		{Year: 2021, Group: "B", Value: 7},
	}

	out := TopNPlusOther(rows, 3, "All Other States")

	totals := map[int]float64{}
	for _, row := range rows {
		totals[row.Year] += row.Value
	}
	decomposed := map[int]float64{}
	for _, row := range out {
		decomposed[row.Year] += row.Value
	}

	for year, want := range totals {
		assert.InEpsilon(t, want, decomposed[year], 1e-6, "year %d", year)
	}
}

func TestTopNPlusOtherTieBreakAlphabetical(t *testing.T) {
	// Ties rank alphabetically by group name regardless of input order,
	// so the decomposition is deterministic.
	rows := []Row{
		{Year: 2020, Group: "Zeta", Value: 100},
		{Year: 2020, Group: "Alpha", Value: 100},
		{Year: 2020, Group: "Mid", Value: 100},
		{Year: 2020, Group: "Beta", Value: 100},
	}

	out := TopNPlusOther(rows, 3, "All Other States")

	require.Len(t, out, 4)
	assert.Equal(t, "Alpha", out[0].Group)
	assert.Equal(t, "Beta", out[1].Group)
	assert.Equal(t, "Mid", out[2].Group)
	assert.Equal(t, Row{Year: 2020, Group: "All Other States", Value: 100}, out[3])
}

func TestTopNPlusOtherFewGroups(t *testing.T) {
	rows := []Row{
		{Year: 2020, Group: "California", Value: 500},
		{Year: 2020, Group: "Oregon", Value: 100},
	}

	out := TopNPlusOther(rows, 3, "All Other States")

	// Fewer groups than n: everyone keeps their identity, no bucket.
	require.Len(t, out, 2)
	for _, row := range out {
		assert.NotEqual(t, "All Other States", row.Group)
	}
}

func TestTopNPlusOtherDropsAllZeroYears(t *testing.T) {
	rows := []Row{
		{Year: 2020, Group: "California", Value: 0},
		{Year: 2020, Group: "Oregon", Value: 0},
		{Year: 2021, Group: "California", Value: 10},
	}

	out := TopNPlusOther(rows, 3, "All Other States")

	require.Len(t, out, 1)
	assert.Equal(t, 2021, out[0].Year)
}

func TestOtherLabel(t *testing.T) {
	assert.Equal(t, "All Other States", OtherLabel(panel.ScaleState))
	assert.Equal(t, "All Other Counties", OtherLabel(panel.ScaleCounty))
	assert.Equal(t, "All Other Regions", OtherLabel(panel.ScaleRegion))
}

func TestToMillions(t *testing.T) {
	assert.Equal(t, 2100.0, ToMillions(2.1e9))
	assert.True(t, math.Abs(ToMillions(1)-1e-6) < 1e-18)
}
