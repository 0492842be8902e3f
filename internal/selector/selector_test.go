package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placeviz/internal/domain"
)

func withCount(file string, n int) domain.Testimony {
	return domain.Testimony{File: file, Counts: map[domain.Category]int{domain.River: n}}
}

func files(rs []domain.Testimony) []string {
	out := []string{}
	for _, r := range rs {
		out = append(out, r.File)
	}
	return out
}

func TestMostKeepsTies(t *testing.T) {
	rows := []domain.Testimony{withCount("a", 2), withCount("b", 5), withCount("c", 1), withCount("d", 5)}
	got, best := Most(rows, domain.River)
	assert.Equal(t, 5, best)
	assert.Equal(t, []string{"b", "d"}, files(got))
	for _, r := range got {
		assert.Equal(t, best, r.Count(domain.River))
	}
}

func TestMostEmpty(t *testing.T) {
	got, best := Most(nil, domain.River)
	assert.Empty(t, got)
	assert.Zero(t, best)
}

func TestMostAllZero(t *testing.T) {
	rows := []domain.Testimony{withCount("a", 0), withCount("b", 0)}
	got, _ := Most(rows, domain.River)
	assert.Equal(t, []string{"a", "b"}, files(got))
}

func TestTestimoniesAllSwallowsOtherIDs(t *testing.T) {
	rows := []domain.Testimony{withCount("a", 1), withCount("b", 2)}
	got := Testimonies(rows, []string{"b", domain.AllTestimonies, "zzz"})
	assert.Equal(t, []string{"a", "b"}, files(got))

	got = Testimonies(rows, []string{domain.AllTestimonies})
	assert.Equal(t, []string{"a", "b"}, files(got))
}

func TestTestimoniesExplicit(t *testing.T) {
	rows := []domain.Testimony{withCount("a", 1), withCount("b", 2), withCount("c", 3)}
	got := Testimonies(rows, []string{"c", "a", "missing"})
	assert.Equal(t, []string{"a", "c"}, files(got), "row order, unknown ids ignored")

	assert.Empty(t, Testimonies(rows, nil))
	assert.Empty(t, Testimonies(rows, []string{"missing"}))
}

func TestSelect(t *testing.T) {
	rows := []domain.Testimony{withCount("a", 1), withCount("b", 2)}

	got, err := Select(rows, domain.Selection{Mode: domain.ModeMost, Category: domain.River})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, files(got))

	got, err = Select(rows, domain.Selection{Mode: domain.ModeTestimony, Files: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, files(got))

	_, err = Select(rows, domain.Selection{Mode: "Random"})
	assert.ErrorIs(t, err, domain.ErrUnknownMode)

	_, err = Select(rows, domain.Selection{Mode: domain.ModeMost, Category: "LAKE"})
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}
