package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/mpstats/internal/percentile"
	"github.com/aclements/go-moremath/stats"
	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/stat"
)

// MetricSummary describes the population behind one percentile table.
type MetricSummary struct {
	Name       string
	Population int
	Distinct   int
	Min        float64
	Median     float64
	P90        float64
	Max        float64
	Mean       float64
	StdDev     float64
}

// Summarize computes population statistics for every table in the report.
// Statistics of an empty population are NaN.
func (r *Report) Summarize() []MetricSummary {
	out := make([]MetricSummary, len(r.Tables))
	for i, t := range r.Tables {
		s := MetricSummary{
			Name:       r.Metrics[i].Name,
			Population: t.Population(),
			Distinct:   t.Len(),
			Min:        math.NaN(),
			Median:     math.NaN(),
			P90:        math.NaN(),
			Max:        math.NaN(),
			Mean:       math.NaN(),
			StdDev:     math.NaN(),
		}
		if xs := expand(t.Population(), t.Entries()); len(xs) > 0 {
			sample := stats.Sample{Xs: xs, Sorted: true}
			s.Min, s.Max = sample.Bounds()
			s.Mean = sample.Mean()
			s.StdDev = 0
			if len(xs) > 1 {
				s.StdDev = stat.StdDev(xs, nil)
			}
			s.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)
			s.P90 = stat.Quantile(0.9, stat.Empirical, xs, nil)
		}
		out[i] = s
	}
	return out
}

// Format names for RenderSummary.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// RenderSummary lays summaries out as a table in the given format.
func RenderSummary(sums []MetricSummary, format string) (string, error) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "N", "Distinct", "Min", "Median", "P90", "Max", "Mean", "StdDev"})
	for _, s := range sums {
		t.AppendRow(table.Row{
			s.Name, s.Population, s.Distinct,
			fmtStat(s.Min), fmtStat(s.Median), fmtStat(s.P90), fmtStat(s.Max),
			fmtStat(s.Mean), fmtStat(s.StdDev),
		})
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatTable, "":
		t.SetStyle(table.StyleLight)
		return t.Render(), nil
	case FormatMarkdown, "md":
		return t.RenderMarkdown(), nil
	case FormatCSV:
		return t.RenderCSV(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use table|markdown|csv)", format)
	}
}

// expand turns run-length entries back into the sorted column.
func expand(n int, entries []percentile.Entry) []float64 {
	xs := make([]float64, 0, n)
	for _, e := range entries {
		for k := 0; k < e.Count; k++ {
			xs = append(xs, e.Key)
		}
	}
	return xs
}

func fmtStat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
