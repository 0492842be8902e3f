package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"placeviz/internal/config"
	"placeviz/internal/domain"
)

const sample = "../dataset/jsonl/testdata/sample.jsonl"

func useConfig(t *testing.T, c *config.AppConfig) {
	t.Helper()
	prevCfg, prevLogger := cfg, logger
	cfg, logger = c, zap.NewNop()
	t.Cleanup(func() { cfg, logger = prevCfg, prevLogger })
}

func TestTypeFromExt(t *testing.T) {
	cases := map[string]string{
		"data/data_counts.jsonl": "jsonl",
		"export.CSV":             "csv",
		"store.db":               "sqlite",
		"store.sqlite3":          "sqlite",
		"noext":                  "jsonl",
	}
	for path, want := range cases {
		assert.Equal(t, want, typeFromExt(path), path)
	}
}

func TestOpenProviderUnknownType(t *testing.T) {
	_, _, err := openProvider(context.Background(), config.DatasetConfig{Type: "parquet", Path: "x"})
	assert.ErrorContains(t, err, "unknown dataset type")
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(config.LogConfig{Level: "info"}, false, true)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.ErrorLevel), "interactive without a log file is silent")

	l, err = newLogger(config.LogConfig{Level: "warn"}, true, false)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = newLogger(config.LogConfig{Level: "loud"}, false, false)
	assert.Error(t, err)
}

func TestRequestFromFlags(t *testing.T) {
	useConfig(t, config.Default())

	req, err := defaultRequest()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeTestimony, req.Mode)
	assert.Equal(t, domain.Building, req.Category)
	assert.Equal(t, 1, req.TopN)

	f := requestFlags{mode: "most", category: "river", topN: 7, countries: []string{"Poland"}}
	req, err = f.request()
	require.NoError(t, err)
	assert.Equal(t, domain.ModeMost, req.Mode)
	assert.Equal(t, domain.River, req.Category)
	assert.Equal(t, 7, req.TopN)
	assert.Equal(t, []string{"Poland"}, req.Countries)

	f = requestFlags{category: "CASTLE"}
	_, err = f.request()
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestExplorePipeline(t *testing.T) {
	c := config.Default()
	c.Dataset.Path = sample
	useConfig(t, c)

	svc, closeFn, err := newService(context.Background())
	require.NoError(t, err)
	defer closeFn()

	res, err := svc.Explore(context.Background(), domain.Request{
		Mode:     domain.ModeTestimony,
		Category: domain.Building,
		Files:    []string{domain.AllTestimonies},
		Gender:   true,
		TopN:     3,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	printResult(&out, res, 0, true)
	s := out.String()
	assert.Contains(t, s, "Filtered: 2 testimonies, selected: 2")
	assert.Contains(t, s, "house")
	assert.Contains(t, s, "Top common words")
	assert.Contains(t, s, "Testimonies after filters:")
	assert.Contains(t, s, "Experience Group")
}

func TestExploreMostModeListsTiedRows(t *testing.T) {
	c := config.Default()
	c.Dataset.Path = sample
	useConfig(t, c)

	svc, closeFn, err := newService(context.Background())
	require.NoError(t, err)
	defer closeFn()

	res, err := svc.Explore(context.Background(), domain.Request{Mode: domain.ModeMost, Category: domain.Building})
	require.NoError(t, err)

	var out bytes.Buffer
	printResult(&out, res, 0, false)
	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "Most BUILDING mentions (3): t1", lines[1])
	assert.Contains(t, lines[2], "BUILDING")
	assert.Equal(t, []string{"t1", "Survivor", "Poland", "M", "3"}, strings.Fields(lines[3]))
	assert.NotContains(t, out.String(), "Hungary", "only the selected rows are listed")
}

func TestNewServiceMissingFile(t *testing.T) {
	c := config.Default()
	c.Dataset.Path = t.TempDir() + "/missing.jsonl"
	useConfig(t, c)

	_, _, err := newService(context.Background())
	assert.ErrorContains(t, err, "load dataset")
}
