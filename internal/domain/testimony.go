package domain

import (
	"fmt"
	"slices"
)

// Column names of the testimony table.
const (
	ColumnFile            = "file"
	ColumnExperienceGroup = "Experience Group"
	ColumnCountry         = "Country"
	ColumnGender          = "Gender"
)

// Survivor is the experience group matched by the survivor-only filter.
const Survivor = "Survivor"

// Testimony is one row of the dataset. Empty strings mean the attribute is absent.
type Testimony struct {
	File            string
	ExperienceGroup string
	Country         string
	Gender          string
	Texts           map[Category][]string
	Counts          map[Category]int
}

// TextsFor returns the raw word list extracted for c.
func (t Testimony) TextsFor(c Category) []string { return t.Texts[c] }

// Count returns the number of entries extracted for c.
func (t Testimony) Count(c Category) int { return t.Counts[c] }

// Clone returns a copy of t that shares no maps or word lists with it.
func (t Testimony) Clone() Testimony {
	texts := make(map[Category][]string, len(t.Texts))
	for c, words := range t.Texts {
		texts[c] = slices.Clone(words)
	}
	counts := make(map[Category]int, len(t.Counts))
	for c, n := range t.Counts {
		counts[c] = n
	}
	t.Texts, t.Counts = texts, counts
	return t
}

// SchemaError reports a table that does not have the expected shape.
type SchemaError struct {
	Column string
	Row    string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row != "" {
		return fmt.Sprintf("schema: column %q, row %q: %s", e.Column, e.Row, e.Reason)
	}
	return fmt.Sprintf("schema: column %q: %s", e.Column, e.Reason)
}

// Table is the loaded, read-only testimony dataset.
type Table struct {
	rows  []Testimony
	index map[string]int
}

// NewTable validates rows and wraps them into a Table.
// Files must be unique and every count must match its word list length.
func NewTable(rows []Testimony) (*Table, error) {
	t := &Table{rows: make([]Testimony, len(rows)), index: make(map[string]int, len(rows))}
	for i, r := range rows {
		if r.File == "" {
			return nil, &SchemaError{Column: ColumnFile, Row: fmt.Sprintf("#%d", i), Reason: "missing file identifier"}
		}
		if _, dup := t.index[r.File]; dup {
			return nil, &SchemaError{Column: ColumnFile, Row: r.File, Reason: "duplicate file identifier"}
		}
		texts := make(map[Category][]string, len(Categories))
		counts := make(map[Category]int, len(Categories))
		for _, c := range Categories {
			words := slices.Clone(r.Texts[c])
			n, ok := r.Counts[c]
			if !ok {
				n = len(words)
			}
			if n != len(words) {
				return nil, &SchemaError{
					Column: string(c),
					Row:    r.File,
					Reason: fmt.Sprintf("count %d does not match %d entries in %s", n, len(words), c.TextsColumn()),
				}
			}
			texts[c] = words
			counts[c] = n
		}
		r.Texts = texts
		r.Counts = counts
		t.rows[i] = r
		t.index[r.File] = i
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns deep copies of the rows in load order, so callers cannot
// change the table through them.
func (t *Table) Rows() []Testimony {
	out := make([]Testimony, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Clone()
	}
	return out
}

// Lookup finds a row by file identifier.
func (t *Table) Lookup(file string) (Testimony, bool) {
	i, ok := t.index[file]
	if !ok {
		return Testimony{}, false
	}
	return t.rows[i].Clone(), true
}

// Column returns a string column by name.
func (t *Table) Column(name string) ([]string, error) {
	var get func(Testimony) string
	switch name {
	case ColumnFile:
		get = func(r Testimony) string { return r.File }
	case ColumnExperienceGroup:
		get = func(r Testimony) string { return r.ExperienceGroup }
	case ColumnCountry:
		get = func(r Testimony) string { return r.Country }
	case ColumnGender:
		get = func(r Testimony) string { return r.Gender }
	default:
		return nil, &SchemaError{Column: name, Reason: "no such column"}
	}
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = get(r)
	}
	return out, nil
}

// CountColumn returns the count column for c.
func (t *Table) CountColumn(c Category) []int {
	out := make([]int, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Counts[c]
	}
	return out
}

// Distinct returns the sorted distinct non-empty values of a string column.
func (t *Table) Distinct(name string) ([]string, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(col))
	var out []string
	for _, v := range col {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out, nil
}
