package molprobity

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/KaramelBytes/mpstats/internal/percentile"
)

// RowPolicy decides what happens to a line that does not match the layout.
type RowPolicy string

const (
	// RowReject drops malformed lines and keeps going.
	RowReject RowPolicy = "reject"
	// RowFail aborts the parse at the first malformed line.
	RowFail RowPolicy = "fail"
	// RowPad fills missing or unparseable numeric columns with Undefined.
	RowPad RowPolicy = "pad"
)

// ParseRowPolicy accepts a policy name case-insensitively.
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch RowPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case RowReject, "":
		return RowReject, nil
	case RowFail, "strict":
		return RowFail, nil
	case RowPad:
		return RowPad, nil
	default:
		return "", fmt.Errorf("unsupported row policy: %s (use reject|fail|pad)", s)
	}
}

// Options controls parsing of oneline reports.
type Options struct {
	// Delimiter between columns. If 0, ':' is used.
	Delimiter rune
	Policy    RowPolicy
	// TrimState keeps only records whose backbone trim state matches; empty keeps all.
	TrimState string
	// MaxErrors caps how many row errors Store.Errors retains.
	MaxErrors int
}

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// DefaultOptions returns the layout used by the MolProbity oneline files.
func DefaultOptions() Options {
	return Options{
		Delimiter: ':',
		Policy:    RowReject,
		MaxErrors: 10,
	}
}

// Store holds every accepted record of one input file.
type Store struct {
	Records []Record
	// Lines counts non-blank input lines.
	Lines    int
	Rejected int
	Filtered int
	// Errors keeps the first Options.MaxErrors row errors.
	Errors []*RowError
}

// Len returns the number of accepted records.
func (s *Store) Len() int { return len(s.Records) }

// ParseFile opens path and parses it with opt.
func ParseFile(path string, opt Options) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Parse(f, opt)
}

// Parse reads oneline records from r, one per line, splitting on the
// delimiter with no quoting. Blank lines are skipped. Under RowFail the first
// malformed line is returned as a *RowError.
func Parse(r io.Reader, opt Options) (*Store, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ':'
	}
	sep := string(delim)
	policy := opt.Policy
	if policy == "" {
		policy = RowReject
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	st := &Store{}
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		st.Lines++

		rec, rowErr := parseRecord(strings.Split(text, sep), line, policy)
		if rowErr != nil {
			if policy == RowFail {
				return nil, rowErr
			}
			st.reject(rowErr, opt.MaxErrors)
			continue
		}
		if opt.TrimState != "" && rec.BackboneTrimState != opt.TrimState {
			st.Filtered++
			continue
		}
		st.Records = append(st.Records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", line+1, err)
	}
	return st, nil
}

func (s *Store) reject(err *RowError, limit int) {
	s.Rejected++
	if len(s.Errors) < limit {
		s.Errors = append(s.Errors, err)
	}
}

// parseRecord maps one split line onto a Record. Under RowPad a short line is
// padded with empty columns and bad numbers become Undefined.
func parseRecord(fields []string, line int, policy RowPolicy) (Record, *RowError) {
	var rec Record
	if len(fields) != ColumnCount {
		if policy != RowPad {
			return rec, &RowError{Line: line, Err: ErrColumnCount,
				Detail: fmt.Sprintf("got %d, want %d", len(fields), ColumnCount)}
		}
		padded := make([]string, ColumnCount)
		copy(padded, fields)
		fields = padded
	}
	for _, c := range textColumns {
		*c.field(&rec) = strings.TrimSpace(fields[c.pos])
	}
	for _, c := range numericColumns {
		v, err := parseNumber(fields[c.pos])
		if err != nil {
			if policy != RowPad {
				return rec, &RowError{Line: line, Column: c.name, Err: ErrBadNumber, Detail: strconv.Quote(fields[c.pos])}
			}
			v = percentile.Undefined
		}
		*c.field(&rec) = v
	}
	rec.Derive()
	return rec, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return percentile.Undefined, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !percentile.IsDefined(v) {
		return percentile.Undefined, nil
	}
	return v, nil
}
