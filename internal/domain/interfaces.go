package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Mode selects how the testimonies feeding the word cloud are chosen.
type Mode string

const (
	// ModeTestimony aggregates an explicit list of testimonies.
	ModeTestimony Mode = "Testimony"
	// ModeMost aggregates the testimonies with the highest count for the category.
	ModeMost Mode = "Most"
)

// AllTestimonies is the selection sentinel that expands to every filtered row.
const AllTestimonies = "All"

// Top-N bounds accepted by the comparison.
const (
	MinTopN = 1
	MaxTopN = 100
)

var (
	ErrUnknownMode = errors.New("unknown selection mode")
	ErrTopNRange   = fmt.Errorf("top-n must be between %d and %d", MinTopN, MaxTopN)
)

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeTestimony, ModeMost} {
		if strings.EqualFold(strings.TrimSpace(s), string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Predicates is a conjunction of optional row filters.
// Empty value sets and a false flag are inactive.
type Predicates struct {
	SurvivorOnly bool
	Countries    []string
	Groups       []string
}

// Selection describes which filtered rows feed the word cloud.
type Selection struct {
	Mode     Mode
	Category Category
	Files    []string
}

// Request carries the plain values collected by the UI for one interaction.
type Request struct {
	Mode      Mode     `json:"mode" yaml:"mode"`
	Category  Category `json:"category" yaml:"category"`
	Files     []string `json:"files,omitempty" yaml:"files,omitempty"`
	Gender    bool     `json:"gender" yaml:"gender"`
	Survivor  bool     `json:"survivor" yaml:"survivor"`
	Countries []string `json:"countries,omitempty" yaml:"countries,omitempty"`
	Groups    []string `json:"groups,omitempty" yaml:"groups,omitempty"`
	TopN      int      `json:"top_n" yaml:"top_n"`
}

// Predicates extracts the filter part of the request.
func (r Request) Predicates() Predicates {
	return Predicates{SurvivorOnly: r.Survivor, Countries: r.Countries, Groups: r.Groups}
}

// Selection extracts the selector part of the request.
func (r Request) Selection() Selection {
	return Selection{Mode: r.Mode, Category: r.Category, Files: r.Files}
}

// WordCount is a ranked word frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
	Rank  int    `json:"rank"`
}

// Comparison is the male/female vocabulary split for one category.
type Comparison struct {
	Male   []string `json:"male"`
	Female []string `json:"female"`
	Common []string `json:"common"`

	// Distinct entries per side in first-occurrence order; the Venn inputs.
	MaleSet   []string `json:"male_set"`
	FemaleSet []string `json:"female_set"`

	MaleOnly   int `json:"male_only"`
	FemaleOnly int `json:"female_only"`
	Shared     int `json:"shared"`
}

// Result is everything the renderers need for one interaction.
type Result struct {
	Request    Request     `json:"request"`
	Filtered   []Testimony `json:"-"`
	Selected   []Testimony `json:"-"`
	Files      []string    `json:"files"`
	MaxCount   int         `json:"max_count,omitempty"`
	Tokens     []string    `json:"tokens"`
	Counts     []WordCount `json:"counts"`
	Comparison *Comparison `json:"comparison,omitempty"`
}

// Options are the choices offered by the UI, derived from the dataset.
type Options struct {
	ExperienceGroups []string
	Countries        []string
	Testimonies      []string
}

// Explorer runs the filter, select and aggregate pipeline.
type Explorer interface {
	Options(ctx context.Context) (Options, error)
	Explore(ctx context.Context, req Request) (*Result, error)
}
