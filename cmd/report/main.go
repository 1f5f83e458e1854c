// Command report computes a single dashboard view from the command line
// and writes it to CSV or Excel, for scripted report generation outside
// the web UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"oceanwatch/internal/dashboard"
	"oceanwatch/internal/panel"
	"oceanwatch/internal/projection"
	"oceanwatch/internal/query"
)

func main() {
	if err := run(); err != nil {
		slog.Error("report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	var (
		source     = flag.String("panel", "data/combined_sectors.csv", "path to the combined-sectors panel CSV")
		scaleArg   = flag.String("scale", "State", "geography scale: State, County or Region")
		geography  = flag.String("geography", query.All, "geography name, or ALL for every geography at the scale")
		levelArg   = flag.String("level", "Sector", "aggregation level: Sector or Industry")
		unit       = flag.String("unit", query.All, "economic unit name, or ALL for every unit at the level")
		metricArg  = flag.String("metric", "Employment", "metric: Establishments, Employment, Wages, RealWages, GDP or RealGDP")
		yearMin    = flag.Int("year-min", 1, "first year of the range (clamped to the panel)")
		yearMax    = flag.Int("year-max", 9999, "last year of the range (clamped to the panel)")
		groupByArg = flag.String("group-by", "none", "grouping axis: none, unit or geography")
		modeArg    = flag.String("comparison", "all", "comparison mode: none, imputed or all")
		outDir     = flag.String("out", ".", "output directory")
		format     = flag.String("format", "csv", "output format: csv or xlsx")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	scale, err := panel.ParseGeoScale(*scaleArg)
	if err != nil {
		return err
	}
	level, err := panel.ParseAggLevel(*levelArg)
	if err != nil {
		return err
	}
	metric, err := panel.ParseMetricKind(*metricArg)
	if err != nil {
		return err
	}
	groupBy, err := dashboard.ParseGroupBy(*groupByArg)
	if err != nil {
		return err
	}
	mode, err := dashboard.ParseComparisonMode(*modeArg)
	if err != nil {
		return err
	}

	spec, err := query.NewSpec(scale, *geography, level, *unit, *yearMin, *yearMax)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store := panel.NewStore(logger)
	service := dashboard.NewService(store, *source, logger)

	result, err := service.ComputeView(ctx, dashboard.Request{
		Spec:       spec,
		Metric:     metric,
		GroupBy:    groupBy,
		Comparison: mode,
	})
	if err != nil {
		return err
	}

	if result.IsEmpty {
		logger.Warn("no data matched the selection; writing empty report")
	}

	name := fmt.Sprintf("oceanwatch_%s_%d-%d.%s", result.Metric, result.YearMin, result.YearMax, *format)
	outPath := filepath.Join(*outDir, name)

	switch *format {
	case "csv":
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		if err := result.Table.WriteCSV(f); err != nil {
			return fmt.Errorf("write CSV: %w", err)
		}
	case "xlsx":
		if err := projection.WriteExcel(outPath, result.Table, result.Stats); err != nil {
			return fmt.Errorf("write Excel: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	logger.Info("report written",
		slog.String("path", outPath),
		slog.Int("rows", len(result.Table.Rows)),
		slog.Bool("empty", result.IsEmpty))

	return nil
}
