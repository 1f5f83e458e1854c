package projection

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oceanwatch/internal/panel"
)

func sampleTable() *LongTable {
	return &LongTable{
		HasGroup: false,
		Rows: []LongRow{
			{Year: 2020, Source: "ENOW", Value: 1000},
			{Year: 2020, Source: "QCEW with imputation", Value: 1050.25},
			{Year: 2021, Source: "ENOW", Value: 1100},
			{Year: 2021, Source: "QCEW with imputation", Value: 0.0000015},
		},
	}
}

func TestWriteCSVRawValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleTable().WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "year,source,value", lines[0])
	assert.Equal(t, "2020,ENOW,1000", lines[1])
	// Raw numeric round-trip: '.' decimal separator, no thousands
	// separators, no currency symbols.
	assert.Equal(t, "2020,QCEW with imputation,1050.25", lines[2])
	assert.NotContains(t, buf.String(), "$")
	assert.NotContains(t, lines[1], ",0") // no grouping inside numbers
}

func TestCSVRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		table *LongTable
	}{
		{"ungrouped", sampleTable()},
		{
			"grouped",
			&LongTable{
				HasGroup: true,
				Rows: []LongRow{
					{Year: 2020, Group: "California", Source: "QCEW with imputation", Value: 500},
					{Year: 2020, Group: "All Other States", Source: "QCEW with imputation", Value: 300.5},
				},
			},
		},
		{"empty", &LongTable{HasGroup: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.table.WriteCSV(&buf))

			parsed, err := ReadCSV(&buf)
			require.NoError(t, err)

			assert.Equal(t, tt.table.HasGroup, parsed.HasGroup)
			require.Len(t, parsed.Rows, len(tt.table.Rows))
			for i, want := range tt.table.Rows {
				got := parsed.Rows[i]
				assert.Equal(t, want.Year, got.Year)
				assert.Equal(t, want.Group, got.Group)
				assert.Equal(t, want.Source, got.Source)
				assert.InDelta(t, want.Value, got.Value, 1e-9)
			}
		})
	}
}

func TestReadCSVRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"wrong column count", "a,b\n"},
		{"bad year", "year,source,value\nMMXX,ENOW,1\n"},
		{"bad value", "year,source,value\n2020,ENOW,one\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestPivot(t *testing.T) {
	wide := sampleTable().Pivot()

	// Source columns keep first-seen order.
	require.Equal(t, []string{"ENOW", "QCEW with imputation"}, wide.Sources)
	require.Len(t, wide.Rows, 2)

	assert.Equal(t, 2020, wide.Rows[0].Year)
	assert.Equal(t, panel.Some(1000), wide.Rows[0].Values[0])
	assert.Equal(t, panel.Some(1050.25), wide.Rows[0].Values[1])
}

func TestPivotMissingCellsStayMissing(t *testing.T) {
	table := &LongTable{
		Rows: []LongRow{
			{Year: 2020, Source: "ENOW", Value: 1000},
			{Year: 2020, Source: "QCEW with imputation", Value: 1050},
			{Year: 2021, Source: "ENOW", Value: 1100},
		},
	}

	wide := table.Pivot()
	require.Len(t, wide.Rows, 2)

	row2021 := wide.Rows[1]
	assert.Equal(t, 2021, row2021.Year)
	assert.True(t, row2021.Values[0].Valid)
	// The estimate had no 2021 value: the cell is missing, not zero.
	assert.False(t, row2021.Values[1].Valid)
}
