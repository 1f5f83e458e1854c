// Package projection shapes aggregated and analyzed results for the two
// downstream consumers: interactive charts and downloadable flat files.
// The long-form (tidy) table is the canonical shape; the wide form and
// the file exports all derive from it without re-deriving any values.
package projection

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// LongRow is one (year, [group], source, value) observation. Group is
// empty for ungrouped tables.
type LongRow struct {
	Year   int     `json:"year"`
	Group  string  `json:"group,omitempty"`
	Source string  `json:"source"`
	Value  float64 `json:"value"`
}

// LongTable is the canonical tidy result shape.
type LongTable struct {
	// HasGroup records whether the group column is meaningful; it also
	// fixes the exported column set.
	HasGroup bool      `json:"has_group"`
	Rows     []LongRow `json:"rows"`
}

// Columns returns the export column names in order.
func (t *LongTable) Columns() []string {
	if t.HasGroup {
		return []string{"year", "group", "source", "value"}
	}
	return []string{"year", "source", "value"}
}

// WriteCSV writes the table as UTF-8 CSV with a header row, '.' as the
// decimal separator and no thousands separators. Values round-trip
// losslessly: no display formatting happens here.
func (t *LongTable) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Rows {
		record := []string{strconv.Itoa(row.Year)}
		if t.HasGroup {
			record = append(record, row.Group)
		}
		record = append(record, row.Source, strconv.FormatFloat(row.Value, 'g', -1, 64))
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV parses a table previously written by WriteCSV.
func ReadCSV(r io.Reader) (*LongTable, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	table := &LongTable{}
	switch len(header) {
	case 3:
		// year, source, value
	case 4:
		table.HasGroup = true
	default:
		return nil, fmt.Errorf("unexpected column count %d", len(header))
	}

	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		row := LongRow{}
		idx := 0
		row.Year, err = strconv.Atoi(record[idx])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad year %q", line, record[idx])
		}
		idx++
		if table.HasGroup {
			row.Group = record[idx]
			idx++
		}
		row.Source = record[idx]
		idx++
		row.Value, err = strconv.ParseFloat(record[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad value %q", line, record[idx])
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
