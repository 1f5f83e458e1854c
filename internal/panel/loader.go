package panel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ErrPanelNotFound indicates the requested panel source does not exist or
// could not be opened. Other panel sources remain usable.
var ErrPanelNotFound = errors.New("panel source not found")

// Required dimension columns of the combined-sectors panel CSV. Metric
// columns follow the "{prefix}_{Metric}" convention, e.g. NQ_Employment.
const (
	colGeoName   = "GeoName"
	colGeoScale  = "GeoScale"
	colStateCode = "StateCode"
	colUnitName  = "OceanSector"
	colAggLevel  = "AggLevel"
	colYear      = "Year"
)

// LoadPanel reads a combined-sectors panel CSV into an immutable Table.
//
// The loader is tolerant of data problems but strict about structure:
// unknown columns are ignored, blank metric cells are missing values, and
// a row with a malformed dimension or numeric cell is skipped with a
// warning, while a missing required header column fails the whole load.
func LoadPanel(path string, logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPanelNotFound, path)
		}
		return nil, fmt.Errorf("open panel file: %w", err)
	}
	defer f.Close()

	table, err := readPanel(f, logger)
	if err != nil {
		return nil, fmt.Errorf("read panel %s: %w", path, err)
	}

	logger.Info("panel loaded",
		slog.String("path", path),
		slog.Int("records", table.Len()),
		slog.Int("year_min", table.YearMin()),
		slog.Int("year_max", table.YearMax()))

	return table, nil
}

// readPanel parses panel CSV content from r.
func readPanel(r io.Reader, logger *slog.Logger) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colGeoName, colGeoScale, colUnitName, colAggLevel, colYear} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	// Resolve every (source, metric) column present in the header once,
	// up front, instead of re-deriving names per row.
	var metricCols []metricColumn
	for _, source := range SourceVariants() {
		for _, metric := range MetricKinds() {
			if idx, ok := cols[source.ColumnName(metric)]; ok {
				metricCols = append(metricCols, metricColumn{cell: Cell{Metric: metric, Source: source}, idx: idx})
			}
		}
	}
	if len(metricCols) == 0 {
		return nil, fmt.Errorf("no metric columns found in header")
	}

	var records []Record
	skipped := 0
	line := 1

	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		rec, err := parseRow(row, cols, metricCols)
		if err != nil {
			skipped++
			logger.Warn("skipping malformed panel row",
				slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		logger.Warn("panel loaded with skipped rows", slog.Int("skipped", skipped))
	}

	return NewTable(records), nil
}

// metricColumn binds a header position to the cell it populates.
type metricColumn struct {
	cell Cell
	idx  int
}

func parseRow(row []string, cols map[string]int, metricCols []metricColumn) (Record, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	scale, err := ParseGeoScale(field(colGeoScale))
	if err != nil {
		return Record{}, err
	}
	level, err := ParseAggLevel(field(colAggLevel))
	if err != nil {
		return Record{}, err
	}
	year, err := strconv.Atoi(field(colYear))
	if err != nil {
		return Record{}, fmt.Errorf("bad year %q", field(colYear))
	}

	geoName := field(colGeoName)
	unitName := field(colUnitName)
	if geoName == "" || unitName == "" {
		return Record{}, fmt.Errorf("blank geography or economic unit name")
	}

	rec := Record{
		GeoName:   geoName,
		Scale:     scale,
		StateCode: field(colStateCode),
		UnitName:  unitName,
		Level:     level,
		Year:      year,
		Values:    make(map[Cell]Value, len(metricCols)),
	}

	for _, mc := range metricCols {
		if mc.idx >= len(row) {
			continue
		}
		raw := strings.TrimSpace(row[mc.idx])
		if raw == "" || strings.EqualFold(raw, "NA") {
			continue // absent means "not measured", never zero
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Record{}, fmt.Errorf("bad value %q in column %d", raw, mc.idx)
		}
		rec.Values[mc.cell] = Some(f)
	}

	return rec, nil
}
