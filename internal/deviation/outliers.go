package deviation

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GroupStat is one summary statistic value attributed to a group, e.g.
// the mean percent difference for one sector in one state.
type GroupStat struct {
	Group string  `json:"group"`
	Value float64 `json:"value"`
}

// Fence is a Tukey fence over a collection of summary statistic values.
// The fence is computed over the summary values themselves, never over
// the underlying raw panel; the two populations give entirely different
// fences.
type Fence struct {
	Lower float64     `json:"lower"`
	Upper float64     `json:"upper"`
	Q1    float64     `json:"q1"`
	Q3    float64     `json:"q3"`
	Kept  []GroupStat `json:"kept"`
	Cut   []GroupStat `json:"excluded"`
}

// TukeyFence partitions the stats into values inside and outside
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. With fewer than two values nothing can be
// an outlier; everything is kept and the fence degenerates to the value
// range.
func TukeyFence(stats []GroupStat) Fence {
	values := make([]float64, len(stats))
	for i, s := range stats {
		values[i] = s.Value
	}
	sort.Float64s(values)

	f := Fence{}
	if len(values) == 0 {
		return f
	}
	if len(values) < 2 {
		f.Q1, f.Q3 = values[0], values[0]
		f.Lower, f.Upper = values[0], values[0]
		f.Kept = append(f.Kept, stats...)
		return f
	}

	f.Q1 = stat.Quantile(0.25, stat.LinInterp, values, nil)
	f.Q3 = stat.Quantile(0.75, stat.LinInterp, values, nil)
	iqr := f.Q3 - f.Q1
	f.Lower = f.Q1 - 1.5*iqr
	f.Upper = f.Q3 + 1.5*iqr

	for _, s := range stats {
		if s.Value < f.Lower || s.Value > f.Upper {
			f.Cut = append(f.Cut, s)
		} else {
			f.Kept = append(f.Kept, s)
		}
	}
	return f
}
