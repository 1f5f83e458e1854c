package projection

import (
	"fmt"
	"math"
	"strings"

	"oceanwatch/internal/panel"
)

// FormatDisplayValue renders a value for on-screen display: thousands
// separators, and a dollar sign for currency metrics. Display formatting
// is applied to copies at the presentation boundary only; exported and
// aggregated data always stay raw.
func FormatDisplayValue(v float64, metric panel.MetricKind) string {
	rounded := math.Round(v)
	s := groupThousands(math.Abs(rounded))
	if metric.IsCurrency() {
		s = "$" + s
	}
	if rounded < 0 {
		s = "-" + s
	}
	return s
}

// AxisLabel returns the chart axis caption for a metric. Currency metrics
// are displayed in millions; real-dollar metrics name the base year.
func AxisLabel(metric panel.MetricKind, baseYear int) string {
	switch metric {
	case panel.MetricGDP:
		return "GDP ($ millions)"
	case panel.MetricRealGDP:
		return fmt.Sprintf("Real GDP (%d $ millions)", baseYear)
	case panel.MetricWages:
		return "Wages ($ millions)"
	case panel.MetricRealWages:
		return fmt.Sprintf("Real Wages (%d $ millions)", baseYear)
	case panel.MetricEmployment:
		return "Employment (Number of Jobs)"
	case panel.MetricEstablishments:
		return "Establishments (Count)"
	}
	return metric.String()
}

// groupThousands renders a non-negative rounded value with comma
// separators.
func groupThousands(v float64) string {
	s := fmt.Sprintf("%.0f", v)

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
