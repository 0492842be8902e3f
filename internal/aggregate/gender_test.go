package aggregate

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placeviz/internal/domain"
)

func TestGenderSplitExample(t *testing.T) {
	cmp, err := GenderSplit(exampleRows(), domain.Building, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"barn"}, cmp.Male)
	assert.Equal(t, []string{"shed"}, cmp.Female)
	assert.Equal(t, []string{"house"}, cmp.Common)
	assert.Equal(t, 1, cmp.MaleOnly)
	assert.Equal(t, 1, cmp.FemaleOnly)
	assert.Equal(t, 1, cmp.Shared)
	assert.Equal(t, []string{"house", "barn"}, cmp.MaleSet)
	assert.Equal(t, []string{"house", "shed"}, cmp.FemaleSet)
}

func TestGenderSplitIgnoresOtherGenders(t *testing.T) {
	rows := append(exampleRows(),
		testimony("t3", "", "castle"),
		testimony("t4", "X", "tower", "house"),
	)
	cmp, err := GenderSplit(rows, domain.Building, 10)
	require.NoError(t, err)
	for _, list := range [][]string{cmp.Male, cmp.Female, cmp.Common} {
		assert.NotContains(t, list, "castle")
		assert.NotContains(t, list, "tower")
	}
}

func TestGenderSplitListsAreDisjoint(t *testing.T) {
	rows := []domain.Testimony{
		testimony("m1", "M", "a", "b", "c", "c", "d"),
		testimony("m2", "M", "c", "e"),
		testimony("f1", "F", "c", "d", "f", "g", "g"),
		testimony("f2", "F", "h", "a"),
	}
	cmp, err := GenderSplit(rows, domain.Building, 100)
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, list := range [][]string{cmp.Male, cmp.Female, cmp.Common} {
		for _, w := range list {
			seen[w]++
		}
	}
	for _, w := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		assert.Equal(t, 1, seen[w], "token %q", w)
	}
	assert.Equal(t, []string{"c", "a", "d"}, cmp.Common, "ordered by male frequency")
	assert.Equal(t, []string{"b", "e"}, cmp.Male)
	assert.Equal(t, []string{"g", "f", "h"}, cmp.Female)
}

func TestGenderSplitTopN(t *testing.T) {
	var male, female []string
	for i := 0; i < 20; i++ {
		male = append(male, fmt.Sprintf("m%02d", i))
		female = append(female, fmt.Sprintf("f%02d", i))
	}
	rows := []domain.Testimony{testimony("m", "M", male...), testimony("f", "F", female...)}

	cmp, err := GenderSplit(rows, domain.Building, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"m00", "m01", "m02"}, cmp.Male)
	assert.Len(t, cmp.Female, 3)
	assert.Empty(t, cmp.Common)

	cmp, err = GenderSplit(rows, domain.Building, 100)
	require.NoError(t, err)
	assert.Len(t, cmp.Male, 20, "fewer qualifying tokens than N returns all of them")
}

func TestGenderSplitNormalizesEntries(t *testing.T) {
	rows := []domain.Testimony{
		testimony("m", "M", " Old Town ", "HOUSE"),
		testimony("f", "F", "old town", "house "),
	}
	cmp, err := GenderSplit(rows, domain.Building, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "town", "house"}, cmp.Common)
	assert.Empty(t, cmp.Male)
	assert.Empty(t, cmp.Female)
}

func TestGenderSplitAgreesWithCloudTokens(t *testing.T) {
	rows := []domain.Testimony{
		testimony("m", "M", "Old Town", "barn"),
		testimony("f", "F", "town hall", "  "),
	}
	cmp, err := GenderSplit(rows, domain.Building, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"town"}, cmp.Common)
	assert.Equal(t, []string{"old", "barn"}, cmp.Male)
	assert.Equal(t, []string{"hall"}, cmp.Female)

	words := append(slices.Clone(cmp.MaleSet), cmp.FemaleSet...)
	for _, tok := range Tokenize(Flatten(rows, domain.Building)) {
		assert.Contains(t, words, tok)
	}
	assert.Equal(t, 3, cmp.MaleOnly+cmp.Shared)
	assert.Equal(t, 2, cmp.FemaleOnly+cmp.Shared)
}

func TestGenderSplitEmptyAndErrors(t *testing.T) {
	cmp, err := GenderSplit(nil, domain.Building, 5)
	require.NoError(t, err)
	assert.Empty(t, cmp.Male)
	assert.Empty(t, cmp.Female)
	assert.Empty(t, cmp.Common)

	_, err = GenderSplit(nil, domain.Building, 0)
	assert.ErrorIs(t, err, domain.ErrTopNRange)
	_, err = GenderSplit(nil, domain.Building, 101)
	assert.ErrorIs(t, err, domain.ErrTopNRange)
	_, err = GenderSplit(nil, "LAKE", 5)
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}
