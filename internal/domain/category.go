package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the fixed entity-type tags tokens are grouped under.
type Category string

const (
	Building       Category = "BUILDING"
	NPIP           Category = "NPIP"
	Country        Category = "COUNTRY"
	PopulatedPlace Category = "POPULATED_PLACE"
	DLF            Category = "DLF"
	SpatialObj     Category = "SPATIAL_OBJ"
	Region         Category = "REGION"
	EnvFeatures    Category = "ENV_FEATURES"
	IntSpace       Category = "INT_SPACE"
	River          Category = "RIVER"
	Forest         Category = "FOREST"
)

// Categories lists every category in display order. The set is closed.
var Categories = []Category{
	Building, NPIP, Country, PopulatedPlace, DLF,
	SpatialObj, Region, EnvFeatures, IntSpace,
	River, Forest,
}

// ErrUnknownCategory is returned for a category key outside the closed set.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory resolves a category key. Surrounding space and letter case are ignored.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// TextsColumn is the name of the word-list column for c.
func (c Category) TextsColumn() string { return string(c) + "_texts" }

func (c Category) String() string { return string(c) }

// Next returns the category after c in display order, wrapping around.
func (c Category) Next() Category { return c.shift(1) }

// Prev returns the category before c in display order, wrapping around.
func (c Category) Prev() Category { return c.shift(-1) }

func (c Category) shift(d int) Category {
	n := len(Categories)
	for i, k := range Categories {
		if k == c {
			return Categories[((i+d)%n+n)%n]
		}
	}
	return Categories[0]
}
