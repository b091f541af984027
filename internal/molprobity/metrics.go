package molprobity

import "github.com/KaramelBytes/mpstats/internal/percentile"

// Metric describes one ranked quality measurement.
//
// The table for a metric is built from Value, divided by Divisor when set.
// Each record is then looked up by Normalized when set (the ratio computed at
// parse time) or by Value otherwise. Raw is the count printed beside the rank.
type Metric struct {
	Name       string
	Value      percentile.Selector[Record]
	Divisor    percentile.Selector[Record]
	Normalized percentile.Selector[Record]
	Raw        percentile.Selector[Record]
}

// Query returns the value a record is ranked by.
func (m Metric) Query(r Record) float64 {
	if m.Normalized != nil {
		return m.Normalized(r)
	}
	return m.Value(r)
}

// BuildTable builds the percentile table for m over records.
func (m Metric) BuildTable(records []Record) *percentile.Table {
	return percentile.Build(records, m.Value, m.Divisor)
}

// Metrics is the fixed, ordered list of ranked metrics. The order is the
// column order of the annotated report and the distribution dump.
var Metrics = []Metric{
	{
		Name:       "cbeta_outlier",
		Value:      func(r Record) float64 { return r.CbetaOutlier },
		Divisor:    func(r Record) float64 { return r.NumCbeta },
		Normalized: func(r Record) float64 { return r.CbetaNormalized },
		Raw:        func(r Record) float64 { return r.CbetaOutlier },
	},
	{
		Name:       "rota_less1pct",
		Value:      func(r Record) float64 { return r.RotaLess1Pct },
		Divisor:    func(r Record) float64 { return r.NumRota },
		Normalized: func(r Record) float64 { return r.RotaNormalized },
		Raw:        func(r Record) float64 { return r.RotaLess1Pct },
	},
	{
		Name:       "ramaoutlier",
		Value:      func(r Record) float64 { return r.RamaOutlier },
		Divisor:    func(r Record) float64 { return r.NumRama },
		Normalized: func(r Record) float64 { return r.RamaNormalized },
		Raw:        func(r Record) float64 { return r.RamaOutlier },
	},
	{
		Name:  "pct_badbonds",
		Value: func(r Record) float64 { return r.PctBadBonds },
		Raw:   func(r Record) float64 { return r.NumBadBonds },
	},
	{
		Name:  "pct_badangles",
		Value: func(r Record) float64 { return r.PctBadAngles },
		Raw:   func(r Record) float64 { return r.NumBadAngles },
	},
	{
		Name:  "clashscore",
		Value: func(r Record) float64 { return r.Clashscore },
		Raw:   func(r Record) float64 { return r.Clashscore },
	},
	{
		Name:       "numpperp_outlier",
		Value:      func(r Record) float64 { return r.NumPperpOutlier },
		Divisor:    func(r Record) float64 { return r.NumPperp },
		Normalized: func(r Record) float64 { return r.PperpNormalized },
		Raw:        func(r Record) float64 { return r.NumPperpOutlier },
	},
	{
		Name:       "numsuite_outlier",
		Value:      func(r Record) float64 { return r.NumSuiteOutlier },
		Divisor:    func(r Record) float64 { return r.NumSuite },
		Normalized: func(r Record) float64 { return r.SuiteNormalized },
		Raw:        func(r Record) float64 { return r.NumSuiteOutlier },
	},
	{
		Name:  "molprobityscore",
		Value: func(r Record) float64 { return r.MolProbityScore },
		Raw:   func(r Record) float64 { return r.MolProbityScore },
	},
}

// metricNames returns the metric names in report order.
func metricNames() []string {
	names := make([]string, len(Metrics))
	for i, m := range Metrics {
		names[i] = m.Name
	}
	return names
}
