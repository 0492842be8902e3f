package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"placeviz/internal/domain"
)

// RequiredColumns lists the columns every source must provide.
// Per-category count columns are optional and derived when absent.
func RequiredColumns() []string {
	cols := []string{domain.ColumnFile, domain.ColumnExperienceGroup, domain.ColumnCountry, domain.ColumnGender}
	for _, c := range domain.Categories {
		cols = append(cols, c.TextsColumn())
	}
	return cols
}

// CheckColumns fails with a SchemaError naming the first required column
// missing from have.
func CheckColumns(have []string) error {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, col := range RequiredColumns() {
		if _, ok := set[col]; !ok {
			return &domain.SchemaError{Column: col, Reason: "missing column"}
		}
	}
	return nil
}

// Record is one raw row keyed by column name, as read from a text source.
// Word-list cells hold a JSON array of strings; count cells hold an integer.
type Record map[string]string

// Row converts a record into a testimony.
func (r Record) Row() (domain.Testimony, error) {
	row := domain.Testimony{
		File:            strings.TrimSpace(r[domain.ColumnFile]),
		ExperienceGroup: strings.TrimSpace(r[domain.ColumnExperienceGroup]),
		Country:         strings.TrimSpace(r[domain.ColumnCountry]),
		Gender:          strings.TrimSpace(r[domain.ColumnGender]),
		Texts:           make(map[domain.Category][]string, len(domain.Categories)),
		Counts:          make(map[domain.Category]int, len(domain.Categories)),
	}
	for _, c := range domain.Categories {
		words, err := ParseTexts(r[c.TextsColumn()])
		if err != nil {
			return row, &domain.SchemaError{Column: c.TextsColumn(), Row: row.File, Reason: err.Error()}
		}
		row.Texts[c] = words
		n := len(words)
		if raw, ok := r[string(c)]; ok && strings.TrimSpace(raw) != "" {
			n, err = parseCount(raw)
			if err != nil {
				return row, &domain.SchemaError{Column: string(c), Row: row.File, Reason: err.Error()}
			}
		}
		row.Counts[c] = n
	}
	return row, nil
}

// ParseTexts decodes a word-list cell. Empty cells and JSON null are empty lists.
func ParseTexts(cell string) ([]string, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "null" {
		return []string{}, nil
	}
	var words []string
	if err := json.Unmarshal([]byte(cell), &words); err != nil {
		return nil, fmt.Errorf("word list is not a JSON string array: %w", err)
	}
	if words == nil {
		words = []string{}
	}
	return words, nil
}

// FormatTexts encodes a word list the way ParseTexts reads it.
func FormatTexts(words []string) string {
	if words == nil {
		words = []string{}
	}
	data, _ := json.Marshal(words)
	return string(data)
}

func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	// counts exported through a float column, e.g. "3.0"
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("count %q is not an integer", raw)
	}
	return int(f), nil
}
