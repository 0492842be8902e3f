// Package aggregate turns selected testimonies into token sequences,
// frequency rankings and the male/female vocabulary comparison.
package aggregate

import (
	"sort"
	"strings"

	"placeviz/internal/domain"
)

// Flatten concatenates the word lists of rows for c, in row order and then
// list order, keeping duplicates and the raw entries.
func Flatten(rows []domain.Testimony, c domain.Category) []string {
	n := 0
	for _, r := range rows {
		n += len(r.TextsFor(c))
	}
	out := make([]string, 0, n)
	for _, r := range rows {
		out = append(out, r.TextsFor(c)...)
	}
	return out
}

// Tokenize lowercases and trims every entry, then splits the joined text on
// whitespace. Order and duplicates are preserved.
func Tokenize(texts []string) []string {
	norm := make([]string, len(texts))
	for i, t := range texts {
		norm[i] = Normalize(t)
	}
	return strings.Fields(strings.Join(norm, " "))
}

// Normalize lowercases and trims one entry.
func Normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Counter counts tokens and remembers the order in which they were first seen.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter counts tokens.
func NewCounter(tokens []string) *Counter {
	c := &Counter{counts: make(map[string]int)}
	for _, t := range tokens {
		c.Add(t)
	}
	return c
}

// Add counts one occurrence of t.
func (c *Counter) Add(t string) {
	if _, ok := c.counts[t]; !ok {
		c.order = append(c.order, t)
	}
	c.counts[t]++
}

// Count returns the occurrences of t.
func (c *Counter) Count(t string) int { return c.counts[t] }

// Has reports whether t was counted at least once.
func (c *Counter) Has(t string) bool { return c.counts[t] > 0 }

// Len returns the number of distinct tokens.
func (c *Counter) Len() int { return len(c.order) }

// Distinct returns the distinct tokens in first-occurrence order.
func (c *Counter) Distinct() []string { return append([]string(nil), c.order...) }

// MostCommon returns distinct tokens by descending count; ties keep
// first-occurrence order.
func (c *Counter) MostCommon() []domain.WordCount {
	out := make([]domain.WordCount, len(c.order))
	for i, t := range c.order {
		out[i] = domain.WordCount{Word: t, Count: c.counts[t]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Rank counts tokens and returns them most frequent first.
func Rank(tokens []string) []domain.WordCount { return NewCounter(tokens).MostCommon() }
