package report

import (
	"bufio"
	"io"
	"strconv"

	"github.com/KaramelBytes/mpstats/internal/molprobity"
	"github.com/KaramelBytes/mpstats/internal/percentile"
)

// Labels are caller-supplied tags copied verbatim onto every output row.
type Labels struct {
	ExperimentType    string `json:"experiment_type"`
	HydrogenFlipState string `json:"hydrogen_flip_state"`
	BackboneTrimState string `json:"backbone_trim_state"`
}

func (l Labels) fields() []string {
	return []string{l.ExperimentType, l.HydrogenFlipState, l.BackboneTrimState}
}

// DefaultPrecision matches printf's %f.
const DefaultPrecision = 6

// Report pairs the records of one run with a percentile table per metric.
type Report struct {
	Labels    Labels
	Metrics   []molprobity.Metric
	Tables    []*percentile.Table
	Records   []molprobity.Record
	Precision int
}

// Build constructs one table per metric over all records.
func Build(records []molprobity.Record, metrics []molprobity.Metric, labels Labels) *Report {
	r := &Report{
		Labels:    labels,
		Metrics:   metrics,
		Tables:    make([]*percentile.Table, len(metrics)),
		Records:   records,
		Precision: DefaultPrecision,
	}
	for i, m := range metrics {
		r.Tables[i] = m.BuildTable(records)
	}
	return r
}

// MaxTableLen returns the number of distinct keys in the largest table.
func (r *Report) MaxTableLen() int {
	n := 0
	for _, t := range r.Tables {
		if t.Len() > n {
			n = t.Len()
		}
	}
	return n
}

// WriteRows writes one annotated line per record: the labels, the sanitized
// macromolecule types, PDB id, model, then rank, value and raw value for each
// metric. Misses and undefined values print as -1.
func (r *Report) WriteRows(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var line []byte
	for _, rec := range r.Records {
		line = line[:0]
		for _, s := range r.Labels.fields() {
			line = append(line, s...)
			line = append(line, ',')
		}
		line = append(line, rec.Classification()...)
		line = append(line, ',')
		line = append(line, rec.PDB...)
		line = append(line, ',')
		line = strconv.AppendFloat(line, rec.Model, 'f', 0, 64)
		for i, m := range r.Metrics {
			q := m.Query(rec)
			line = append(line, ',')
			line = r.appendFloat(line, r.Tables[i].Rank(q))
			line = append(line, ',')
			line = r.appendFloat(line, q)
			line = append(line, ',')
			line = r.appendFloat(line, m.Raw(rec))
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDistribution dumps the tables side by side, one line per entry index up
// to the largest table. Each metric contributes key,count or -1,-1 once its
// table is exhausted.
func (r *Report) WriteDistribution(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var line []byte
	rows := r.MaxTableLen()
	for i := 0; i < rows; i++ {
		line = line[:0]
		for j, s := range r.Labels.fields() {
			if j > 0 {
				line = append(line, ',')
			}
			line = append(line, s...)
		}
		for _, t := range r.Tables {
			line = append(line, ',')
			e, ok := t.At(i)
			if !ok {
				line = append(line, "-1,-1"...)
				continue
			}
			line = r.appendFloat(line, e.Key)
			line = append(line, ',')
			line = strconv.AppendInt(line, int64(e.Count), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (r *Report) appendFloat(b []byte, v float64) []byte {
	prec := r.Precision
	if prec < 0 {
		prec = DefaultPrecision
	}
	if !percentile.IsDefined(v) {
		v = percentile.Undefined
	}
	return strconv.AppendFloat(b, v, 'f', prec, 64)
}
