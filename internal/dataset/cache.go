package dataset

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"placeviz/internal/domain"
)

// Cached loads the table once and serves the same *domain.Table until Clear.
type Cached struct {
	next   Provider
	key    string
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewCached wraps next. key identifies the source, typically its path.
func NewCached(next Provider, key string, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{
		next:   next,
		key:    "placeviz:table:" + key,
		cache:  gocache.New(gocache.NoExpiration, 10*time.Minute),
		logger: logger,
	}
}

// Load returns the cached table, loading it on first use.
func (c *Cached) Load(ctx context.Context) (*domain.Table, error) {
	if v, found := c.cache.Get(c.key); found {
		return v.(*domain.Table), nil
	}
	start := time.Now()
	t, err := c.next.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(c.key, t, gocache.NoExpiration)
	c.logger.Info("dataset loaded",
		zap.String("source", c.key),
		zap.Int("rows", t.Len()),
		zap.Duration("took", time.Since(start)))
	return t, nil
}

// Clear drops the cached table; the next Load reads the source again.
func (c *Cached) Clear() {
	c.cache.Flush()
}
