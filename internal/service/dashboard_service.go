package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"placeviz/internal/aggregate"
	"placeviz/internal/config"
	"placeviz/internal/dataset"
	"placeviz/internal/domain"
	"placeviz/internal/filter"
	"placeviz/internal/selector"
)

// DashboardService runs one filter, select and aggregate pass per request
// over the provider's table.
type DashboardService struct {
	provider    dataset.Provider
	genderScope string
	logger      *zap.Logger
}

func NewDashboardService(provider dataset.Provider, genderScope string, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if genderScope == "" {
		genderScope = config.ScopeSelection
	}
	return &DashboardService{provider: provider, genderScope: genderScope, logger: logger}
}

// Options returns the control choices derived from the dataset: sorted
// experience groups and countries, and the testimony list headed by "All".
func (s *DashboardService) Options(ctx context.Context) (domain.Options, error) {
	table, err := s.provider.Load(ctx)
	if err != nil {
		return domain.Options{}, err
	}
	groups, err := table.Distinct(domain.ColumnExperienceGroup)
	if err != nil {
		return domain.Options{}, err
	}
	countries, err := table.Distinct(domain.ColumnCountry)
	if err != nil {
		return domain.Options{}, err
	}
	files, err := table.Column(domain.ColumnFile)
	if err != nil {
		return domain.Options{}, err
	}
	return domain.Options{
		ExperienceGroups: groups,
		Countries:        countries,
		Testimonies:      append([]string{domain.AllTestimonies}, files...),
	}, nil
}

// Explore validates req and runs the pipeline. Empty selections are not
// errors: they produce a result with no tokens.
func (s *DashboardService) Explore(ctx context.Context, req domain.Request) (*domain.Result, error) {
	category, err := domain.ParseCategory(string(req.Category))
	if err != nil {
		return nil, err
	}
	req.Category = category
	mode, err := domain.ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	req.Mode = mode
	if req.Gender && (req.TopN < domain.MinTopN || req.TopN > domain.MaxTopN) {
		return nil, fmt.Errorf("%w: got %d", domain.ErrTopNRange, req.TopN)
	}

	table, err := s.provider.Load(ctx)
	if err != nil {
		return nil, err
	}

	res := &domain.Result{Request: req}
	res.Filtered = filter.Apply(table.Rows(), req.Predicates())
	switch req.Mode {
	case domain.ModeMost:
		res.Selected, res.MaxCount = selector.Most(res.Filtered, category)
	default:
		res.Selected, err = selector.Select(res.Filtered, req.Selection())
		if err != nil {
			return nil, err
		}
	}

	res.Files = make([]string, len(res.Selected))
	for i, r := range res.Selected {
		res.Files[i] = r.File
	}
	res.Tokens = aggregate.Tokenize(aggregate.Flatten(res.Selected, category))
	res.Counts = aggregate.Rank(res.Tokens)

	if req.Gender {
		rows := res.Selected
		if s.genderScope == config.ScopeFiltered {
			rows = res.Filtered
		}
		cmp, err := aggregate.GenderSplit(rows, category, req.TopN)
		if err != nil {
			return nil, err
		}
		res.Comparison = &cmp
	}

	s.logger.Debug("explore",
		zap.String("mode", string(req.Mode)),
		zap.String("category", string(category)),
		zap.Int("filtered", len(res.Filtered)),
		zap.Int("selected", len(res.Selected)),
		zap.Int("tokens", len(res.Tokens)),
		zap.Bool("gender", req.Gender))
	return res, nil
}
