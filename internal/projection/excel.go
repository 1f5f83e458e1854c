package projection

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"oceanwatch/internal/deviation"
)

const (
	viewSheet  = "View"
	statsSheet = "Statistics"
)

// NewWorkbook builds an Excel workbook from the long table: the raw
// long-form rows on a "View" sheet and, when comparison statistics are
// present, one block per comparison pair on a "Statistics" sheet. Values
// are written as raw numbers; any currency formatting is left to the
// spreadsheet user. The caller owns the returned file and must Close it.
func NewWorkbook(table *LongTable, stats map[string]*deviation.Comparison) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", viewSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := fillWorkbook(f, table, stats); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteExcel builds the workbook and saves it at path.
func WriteExcel(path string, table *LongTable, stats map[string]*deviation.Comparison) error {
	f, err := NewWorkbook(table, stats)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func fillWorkbook(f *excelize.File, table *LongTable, stats map[string]*deviation.Comparison) error {

	for col, name := range table.Columns() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(viewSheet, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range table.Rows {
		values := []interface{}{row.Year}
		if table.HasGroup {
			values = append(values, row.Group)
		}
		values = append(values, row.Source, row.Value)

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(viewSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i, err)
			}
		}
	}

	if len(stats) > 0 {
		if err := writeStatsSheet(f, stats); err != nil {
			return err
		}
	}

	return nil
}

func writeStatsSheet(f *excelize.File, stats map[string]*deviation.Comparison) error {
	if _, err := f.NewSheet(statsSheet); err != nil {
		return fmt.Errorf("create statistics sheet: %w", err)
	}

	labels := make([]string, 0, len(stats))
	for label := range stats {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	row := 1
	set := func(col int, v interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(statsSheet, cell, v)
	}

	for _, label := range labels {
		c := stats[label]
		if c == nil {
			continue
		}

		if err := set(1, label); err != nil {
			return fmt.Errorf("write statistics: %w", err)
		}
		row++

		lines := []struct {
			name  string
			value interface{}
		}{
			{"aligned years", len(c.Years)},
			{"mean difference", c.MeanDiff},
			{"median difference", c.MedianDiff},
			{"mean absolute error", c.MAE},
			{"root mean squared error", c.RMSE},
		}
		for _, line := range lines {
			if err := set(1, line.name); err != nil {
				return fmt.Errorf("write statistics: %w", err)
			}
			if err := set(2, line.value); err != nil {
				return fmt.Errorf("write statistics: %w", err)
			}
			row++
		}
		if c.HasPct {
			if err := set(1, "mean percent difference"); err != nil {
				return fmt.Errorf("write statistics: %w", err)
			}
			if err := set(2, c.MeanPctDiff); err != nil {
				return fmt.Errorf("write statistics: %w", err)
			}
			row++
		}
		row++ // blank line between blocks
	}

	return nil
}
