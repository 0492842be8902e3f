package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"placeviz/internal/config"
	"placeviz/internal/dataset"
	"placeviz/internal/dataset/csvfile"
	"placeviz/internal/dataset/jsonl"
	"placeviz/internal/dataset/sqlite"
	"placeviz/internal/service"
)

// newLogger builds a production zap logger. Interactive commands log to
// cfg.File only, and not at all when it is unset.
func newLogger(cfg config.LogConfig, verbose, interactive bool) (*zap.Logger, error) {
	if interactive && cfg.File == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}
	return zc.Build()
}

// openProvider picks the dataset backend named by cfg. The returned close
// function releases backend resources.
func openProvider(ctx context.Context, cfg config.DatasetConfig) (dataset.Provider, func() error, error) {
	noop := func() error { return nil }
	typ := cfg.Type
	if typ == "" {
		typ = typeFromExt(cfg.Path)
	}
	switch typ {
	case "jsonl":
		return jsonl.NewProvider(cfg.Path), noop, nil
	case "csv":
		return csvfile.NewProvider(cfg.Path), noop, nil
	case "sqlite":
		st, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		return st, st.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown dataset type: %s", typ)
}

func typeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	}
	return "jsonl"
}

// newService assembles the cached provider and the dashboard service, and
// loads the table once so schema problems abort before any UI starts.
func newService(ctx context.Context) (*service.DashboardService, func() error, error) {
	p, closeFn, err := openProvider(ctx, cfg.Dataset)
	if err != nil {
		return nil, nil, err
	}
	cached := dataset.NewCached(p, cfg.Dataset.Path, logger)
	if _, err := cached.Load(ctx); err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("load dataset %s: %w", cfg.Dataset.Path, err)
	}
	return service.NewDashboardService(cached, cfg.Dashboard.GenderScope, logger), closeFn, nil
}
