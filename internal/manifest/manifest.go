package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/mpstats/internal/molprobity"
	"github.com/KaramelBytes/mpstats/internal/report"
	"github.com/KaramelBytes/mpstats/internal/utils"
	"github.com/google/uuid"
)

// Manifest records what one report run read and produced.
type Manifest struct {
	ID         string        `json:"id"`
	Input      string        `json:"input"`
	Labels     report.Labels `json:"labels"`
	RowPolicy  string        `json:"row_policy"`
	TrimState  string        `json:"trim_state,omitempty"`
	Lines      int           `json:"lines"`
	Accepted   int           `json:"accepted"`
	Rejected   int           `json:"rejected"`
	Filtered   int           `json:"filtered"`
	RowErrors  []string      `json:"row_errors,omitempty"`
	Metrics    []Metric      `json:"metrics"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

// Metric summarizes one percentile table.
type Metric struct {
	Name       string `json:"name"`
	Population int    `json:"population"`
	Distinct   int    `json:"distinct"`
}

// New starts a manifest for a run over input.
func New(input string, labels report.Labels) *Manifest {
	return &Manifest{
		ID:        uuid.NewString(),
		Input:     input,
		Labels:    labels,
		StartedAt: time.Now(),
	}
}

// RecordParse copies parse counters and the retained row errors.
func (m *Manifest) RecordParse(st *molprobity.Store) {
	m.Lines = st.Lines
	m.Accepted = st.Len()
	m.Rejected = st.Rejected
	m.Filtered = st.Filtered
	m.RowErrors = m.RowErrors[:0]
	for _, e := range st.Errors {
		m.RowErrors = append(m.RowErrors, e.Error())
	}
}

// RecordTables copies table sizes from a built report.
func (m *Manifest) RecordTables(rep *report.Report) {
	m.Metrics = make([]Metric, len(rep.Tables))
	for i, t := range rep.Tables {
		m.Metrics[i] = Metric{
			Name:       rep.Metrics[i].Name,
			Population: t.Population(),
			Distinct:   t.Len(),
		}
	}
}

// Save stamps FinishedAt and writes <dir>/<id>.json atomically.
func (m *Manifest) Save(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("manifest directory not set")
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("ensure dir: %w", err)
	}
	m.FinishedAt = time.Now()
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, m.ID+".json")
	if err := utils.SafeWriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a manifest written by Save.
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
