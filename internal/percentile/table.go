package percentile

import "sort"

// Entry is one distinct value of a column and where it first appears.
type Entry struct {
	Key float64
	// Rank is the share of the population strictly below Key, in [0,100).
	Rank float64
	// Count is how many times Key occurs. Lookups ignore it.
	Count int
}

// Table is a run-length encoded, sorted column supporting exact-value rank queries.
type Table struct {
	entries    []Entry
	population int
}

// Selector extracts one numeric field from an item.
type Selector[T any] func(T) float64

// Build extracts a column from items and encodes it into a Table.
//
// Without a divisor the column holds value(item). With one it holds
// Normalize(value(item), divisor(item)), the same ratio records carry when they
// are normalized at parse time, so a record's own ratio always finds itself.
// Items whose extracted value is undefined, or whose divisor is undefined or
// zero, are left out entirely.
func Build[T any](items []T, value Selector[T], divisor Selector[T]) *Table {
	col := make([]float64, 0, len(items))
	for _, it := range items {
		v := value(it)
		if !IsDefined(v) {
			continue
		}
		if divisor != nil {
			v = Normalize(v, divisor(it))
			if !IsDefined(v) {
				continue
			}
		}
		col = append(col, v)
	}
	return encode(col)
}

// BuildValues encodes a plain column of values. Undefined values are skipped
// and the input slice is not modified.
func BuildValues(values []float64) *Table {
	return Build(values, func(v float64) float64 { return v }, nil)
}

// encode sorts col in place and collapses runs of equal values.
func encode(col []float64) *Table {
	t := &Table{population: len(col)}
	if len(col) == 0 {
		return t
	}
	sort.Float64s(col)
	n := float64(len(col))
	start := 0
	for i := 1; i <= len(col); i++ {
		if i < len(col) && col[i] == col[start] {
			continue
		}
		t.entries = append(t.entries, Entry{
			Key:   col[start],
			Rank:  float64(start) / n * 100,
			Count: i - start,
		})
		start = i
	}
	return t
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Population returns how many defined values the table was built from.
func (t *Table) Population() int {
	if t == nil {
		return 0
	}
	return t.population
}

// At returns the i-th entry in key order. ok is false past the end.
func (t *Table) At(i int) (Entry, bool) {
	if t == nil || i < 0 || i >= len(t.entries) {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Entries returns a copy of the entries in key order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// keys returns the distinct keys in ascending order.
func (t *Table) keys() []float64 {
	if t == nil {
		return nil
	}
	out := make([]float64, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Key
	}
	return out
}

// Lookup returns the rank of an exact key match. Values that were never
// observed, including Undefined, are not found; there is no interpolation.
func (t *Table) Lookup(q float64) (float64, bool) {
	if t == nil || !IsDefined(q) {
		return 0, false
	}
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].Key >= q })
	if i < len(t.entries) && t.entries[i].Key == q {
		return t.entries[i].Rank, true
	}
	return 0, false
}

// Rank is Lookup with the miss folded into the NotFound sentinel.
func (t *Table) Rank(q float64) float64 {
	if r, ok := t.Lookup(q); ok {
		return r
	}
	return NotFound
}
