package cli

import (
	"github.com/spf13/cobra"

	"placeviz/internal/domain"
)

// requestFlags are the dashboard controls as command-line flags.
type requestFlags struct {
	mode      string
	category  string
	files     []string
	gender    bool
	survivor  bool
	countries []string
	groups    []string
	topN      int
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "selection method: Testimony or Most (default from config)")
	cmd.Flags().StringVar(&f.category, "category", "", "entity category, e.g. BUILDING (default from config)")
	cmd.Flags().StringSliceVar(&f.files, "testimony", nil, "testimony file ids for Testimony mode; \"All\" selects every filtered testimony")
	cmd.Flags().BoolVar(&f.gender, "gender", false, "compare male and female vocabulary")
	cmd.Flags().BoolVar(&f.survivor, "survivor", false, "only testimonies from the Survivor experience group")
	cmd.Flags().StringSliceVar(&f.countries, "country", nil, "keep testimonies from these countries")
	cmd.Flags().StringSliceVar(&f.groups, "group", nil, "keep testimonies from these experience groups")
	cmd.Flags().IntVar(&f.topN, "top-n", 0, "length of each comparison list, 1-100 (default from config)")
}

// request merges the flags over the configured dashboard defaults.
func (f *requestFlags) request() (domain.Request, error) {
	modeName := cfg.Dashboard.Mode
	if f.mode != "" {
		modeName = f.mode
	}
	mode, err := domain.ParseMode(modeName)
	if err != nil {
		return domain.Request{}, err
	}
	catName := cfg.Dashboard.Category
	if f.category != "" {
		catName = f.category
	}
	category, err := domain.ParseCategory(catName)
	if err != nil {
		return domain.Request{}, err
	}
	topN := cfg.Dashboard.TopN
	if f.topN != 0 {
		topN = f.topN
	}
	return domain.Request{
		Mode:      mode,
		Category:  category,
		Files:     f.files,
		Gender:    f.gender,
		Survivor:  f.survivor,
		Countries: f.countries,
		Groups:    f.groups,
		TopN:      topN,
	}, nil
}

// defaultRequest is the dashboard's starting state.
func defaultRequest() (domain.Request, error) {
	var f requestFlags
	return f.request()
}
