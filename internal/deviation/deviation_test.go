package deviation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareSingleAlignedYear(t *testing.T) {
	// Reference has both years; the estimate is missing 2021, so 2021 is
	// excluded from every statistic instead of being treated as zero.
	ref := Series{2020: 1000, 2021: 1100}
	est := Series{2020: 1050}

	c := Compare(ref, est)
	require.NotNil(t, c)

	assert.Equal(t, []int{2020}, c.Years)
	assert.Equal(t, 50.0, c.Diff[2020])
	assert.InDelta(t, 5.0, c.PctDiff[2020], 1e-12)
	assert.Equal(t, 50.0, c.MAE)
	assert.Equal(t, 50.0, c.RMSE)
	assert.Equal(t, 50.0, c.MeanDiff)
	assert.Equal(t, 50.0, c.MedianDiff)
	require.True(t, c.HasPct)
	assert.InDelta(t, 5.0, c.MeanPctDiff, 1e-12)

	_, ok := c.Diff[2021]
	assert.False(t, ok)
}

func TestCompareMultipleYears(t *testing.T) {
	ref := Series{2019: 100, 2020: 200, 2021: 400}
	est := Series{2019: 110, 2020: 180, 2021: 400}

	c := Compare(ref, est)
	require.NotNil(t, c)

	assert.Equal(t, []int{2019, 2020, 2021}, c.Years)
	assert.Equal(t, 10.0, c.Diff[2019])
	assert.Equal(t, -20.0, c.Diff[2020])
	assert.Equal(t, 0.0, c.Diff[2021])

	// MAE = (10+20+0)/3, RMSE = sqrt((100+400+0)/3).
	assert.InDelta(t, 10.0, c.MAE, 1e-12)
	assert.InDelta(t, 12.90994448, c.RMSE, 1e-6)
	assert.InDelta(t, -10.0/3.0, c.MeanDiff, 1e-12)
	assert.Equal(t, 0.0, c.MedianDiff)
	assert.InDelta(t, (10.0-10.0+0.0)/3.0, c.MeanPctDiff, 1e-12)
}

func TestCompareAntisymmetric(t *testing.T) {
	a := Series{2019: 120, 2020: 340, 2021: 980}
	b := Series{2019: 100, 2020: 400, 2021: 900}

	ab := Compare(a, b)
	ba := Compare(b, a)
	require.NotNil(t, ab)
	require.NotNil(t, ba)

	require.Equal(t, ab.Years, ba.Years)
	for _, year := range ab.Years {
		assert.Equal(t, ab.Diff[year], -ba.Diff[year], "year %d", year)
	}
	assert.Equal(t, ab.MAE, ba.MAE)
	assert.Equal(t, ab.RMSE, ba.RMSE)
}

func TestCompareZeroReferenceExcludedFromPct(t *testing.T) {
	ref := Series{2020: 0, 2021: 100}
	est := Series{2020: 50, 2021: 110}

	c := Compare(ref, est)
	require.NotNil(t, c)

	// 2020 still contributes to absolute statistics but its percent
	// difference is excluded, not infinite.
	assert.Equal(t, 50.0, c.Diff[2020])
	_, ok := c.PctDiff[2020]
	assert.False(t, ok)
	require.True(t, c.HasPct)
	assert.InDelta(t, 10.0, c.MeanPctDiff, 1e-12)
}

func TestCompareNoAlignedYears(t *testing.T) {
	tests := []struct {
		name string
		ref  Series
		est  Series
	}{
		{"disjoint years", Series{2019: 1}, Series{2020: 1}},
		{"empty reference", Series{}, Series{2020: 1}},
		{"both empty", Series{}, Series{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Insufficient data is signaled distinctly, not as zeros.
			assert.Nil(t, Compare(tt.ref, tt.est))
		})
	}
}

func TestComparePctUndefinedEverywhere(t *testing.T) {
	ref := Series{2020: 0}
	est := Series{2020: 10}

	c := Compare(ref, est)
	require.NotNil(t, c)
	assert.False(t, c.HasPct)
}

func TestDropZeros(t *testing.T) {
	s := Series{2019: 0, 2020: 100, 2021: 0, 2022: -5}

	dropped := s.DropZeros()

	assert.Equal(t, Series{2020: 100, 2022: -5}, dropped)
	// The original is untouched.
	assert.Len(t, s, 4)
}

func TestDropZerosBeforeCompare(t *testing.T) {
	// A stored zero in either series marks an unfilled extraction cell;
	// after reinterpretation that year must vanish from the comparison.
	ref := Series{2020: 0, 2021: 100}.DropZeros()
	est := Series{2020: 50, 2021: 110}.DropZeros()

	c := Compare(ref, est)
	require.NotNil(t, c)
	assert.Equal(t, []int{2021}, c.Years)
}

func TestSeriesYears(t *testing.T) {
	s := Series{2021: 1, 2019: 2, 2020: 3}
	assert.Equal(t, []int{2019, 2020, 2021}, s.Years())
}

func TestFromYearSums(t *testing.T) {
	sums := map[int]float64{2020: 1.5}
	s := FromYearSums(sums)

	s[2021] = 2.0
	_, ok := sums[2021]
	assert.False(t, ok, "FromYearSums must copy")
}
