package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placeviz/internal/config"
	"placeviz/internal/dataset"
	"placeviz/internal/dataset/memory"
	"placeviz/internal/domain"
)

func testimony(file, group, country, gender string, buildings ...string) domain.Testimony {
	return domain.Testimony{
		File:            file,
		ExperienceGroup: group,
		Country:         country,
		Gender:          gender,
		Texts:           map[domain.Category][]string{domain.Building: buildings},
	}
}

func newService(t *testing.T, scope string, rows ...domain.Testimony) *DashboardService {
	t.Helper()
	p := dataset.NewCached(memory.NewProvider(rows), t.Name(), nil)
	return NewDashboardService(p, scope, nil)
}

func exampleService(t *testing.T, scope string) *DashboardService {
	return newService(t, scope,
		testimony("t1", "Survivor", "Hungary", "M", "house", "house", "barn"),
		testimony("t2", "Survivor", "Hungary", "F", "house", "shed"),
	)
}

func TestExploreWordCloudExample(t *testing.T) {
	svc := exampleService(t, config.ScopeSelection)
	res, err := svc.Explore(context.Background(), domain.Request{
		Mode:     domain.ModeTestimony,
		Category: domain.Building,
		Files:    []string{domain.AllTestimonies},
		Gender:   true,
		TopN:     5,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, res.Files)
	assert.Equal(t, []string{"house", "house", "barn", "house", "shed"}, res.Tokens)
	assert.Equal(t, domain.WordCount{Word: "house", Count: 3, Rank: 1}, res.Counts[0])

	require.NotNil(t, res.Comparison)
	assert.Equal(t, []string{"barn"}, res.Comparison.Male)
	assert.Equal(t, []string{"shed"}, res.Comparison.Female)
	assert.Equal(t, []string{"house"}, res.Comparison.Common)
}

func TestExploreNoMatchingCountry(t *testing.T) {
	svc := exampleService(t, config.ScopeSelection)
	res, err := svc.Explore(context.Background(), domain.Request{
		Mode:      domain.ModeTestimony,
		Category:  domain.Building,
		Files:     []string{domain.AllTestimonies},
		Countries: []string{"Poland"},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Filtered)
	assert.Empty(t, res.Selected)
	assert.Empty(t, res.Tokens)
	assert.Empty(t, res.Counts)
	assert.Nil(t, res.Comparison)
}

func TestExploreMostMode(t *testing.T) {
	svc := newService(t, config.ScopeSelection,
		testimony("a", "Survivor", "Poland", "M", "x", "y"),
		testimony("b", "Survivor", "Poland", "F", "z"),
		testimony("c", "Rescuer", "Poland", "F", "p", "q", "r"),
		testimony("d", "Survivor", "Hungary", "M", "s", "t"),
	)
	ctx := context.Background()

	res, err := svc.Explore(ctx, domain.Request{Mode: domain.ModeMost, Category: domain.Building})
	require.NoError(t, err)
	assert.Equal(t, 3, res.MaxCount)
	assert.Equal(t, []string{"c"}, res.Files)

	res, err = svc.Explore(ctx, domain.Request{Mode: domain.ModeMost, Category: domain.Building, Survivor: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.MaxCount)
	assert.Equal(t, []string{"a", "d"}, res.Files, "ties are all selected")
	assert.Equal(t, []string{"x", "y", "s", "t"}, res.Tokens)

	res, err = svc.Explore(ctx, domain.Request{Mode: domain.ModeMost, Category: domain.Building, Groups: []string{"Liberator"}})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Empty(t, res.Tokens)
}

func TestExploreGenderScope(t *testing.T) {
	rows := []domain.Testimony{
		testimony("m", "", "", "M", "house"),
		testimony("f", "", "", "F", "house", "shed"),
	}
	req := domain.Request{
		Mode:     domain.ModeTestimony,
		Category: domain.Building,
		Files:    []string{"m"},
		Gender:   true,
		TopN:     5,
	}

	res, err := newService(t, config.ScopeSelection, rows...).Explore(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"house"}, res.Comparison.Male)
	assert.Empty(t, res.Comparison.Common)

	res, err = newService(t, config.ScopeFiltered, rows...).Explore(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, res.Comparison.Male)
	assert.Equal(t, []string{"house"}, res.Comparison.Common)
	assert.Equal(t, []string{"shed"}, res.Comparison.Female)
}

func TestExploreValidation(t *testing.T) {
	svc := exampleService(t, "")
	ctx := context.Background()

	_, err := svc.Explore(ctx, domain.Request{Mode: domain.ModeTestimony, Category: "LAKE"})
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = svc.Explore(ctx, domain.Request{Mode: "Random", Category: domain.Building})
	assert.ErrorIs(t, err, domain.ErrUnknownMode)

	_, err = svc.Explore(ctx, domain.Request{Mode: domain.ModeTestimony, Category: domain.Building, Gender: true, TopN: 0})
	assert.ErrorIs(t, err, domain.ErrTopNRange)

	res, err := svc.Explore(ctx, domain.Request{Mode: domain.ModeTestimony, Category: "building"})
	require.NoError(t, err)
	assert.Equal(t, domain.Building, res.Request.Category)
	assert.Empty(t, res.Selected, "no testimonies chosen yet")
}

func TestExploreSchemaErrorPropagates(t *testing.T) {
	svc := newService(t, "", testimony("dup", "", "", "M"), testimony("dup", "", "", "F"))
	_, err := svc.Explore(context.Background(), domain.Request{Mode: domain.ModeMost, Category: domain.Building})
	var se *domain.SchemaError
	assert.True(t, errors.As(err, &se))
}

func TestOptions(t *testing.T) {
	svc := newService(t, "",
		testimony("t2", "Survivor", "Poland", "M"),
		testimony("t1", "", "Austria", "F"),
		testimony("t3", "Rescuer", "", "F"),
	)
	opts, err := svc.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Rescuer", "Survivor"}, opts.ExperienceGroups)
	assert.Equal(t, []string{"Austria", "Poland"}, opts.Countries)
	assert.Equal(t, []string{domain.AllTestimonies, "t2", "t1", "t3"}, opts.Testimonies)
}
