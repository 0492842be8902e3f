// Package dataset loads the testimony table from its on-disk formats.
package dataset

import (
	"context"

	"placeviz/internal/domain"
)

// Provider loads the full testimony table.
type Provider interface {
	Load(ctx context.Context) (*domain.Table, error)
}
