package memory

import (
	"context"

	"placeviz/internal/domain"
)

// Provider serves a table built from rows held in memory.
type Provider struct {
	rows []domain.Testimony
}

func NewProvider(rows []domain.Testimony) *Provider { return &Provider{rows: rows} }

func (p *Provider) Load(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return domain.NewTable(p.rows)
}
