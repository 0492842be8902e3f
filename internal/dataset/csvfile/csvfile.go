// Package csvfile reads the testimony table from a CSV export with a header
// row. Word-list cells hold JSON string arrays.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"placeviz/internal/dataset"
	"placeviz/internal/domain"
)

// Provider loads a .csv file.
type Provider struct {
	path string
}

func NewProvider(path string) *Provider { return &Provider{path: path} }

func (p *Provider) Load(ctx context.Context) (*domain.Table, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.path, err)
	}
	return domain.NewTable(rows)
}

// Read decodes a CSV stream. The header is validated before any row is read.
func Read(ctx context.Context, r io.Reader) ([]domain.Testimony, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.SchemaError{Column: domain.ColumnFile, Reason: "empty file, header row expected"}
		}
		return nil, err
	}
	if err := dataset.CheckColumns(header); err != nil {
		return nil, err
	}
	var rows []domain.Testimony
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := make(dataset.Record, len(header))
		for i, col := range header {
			if i < len(cells) {
				rec[col] = cells[i]
			}
		}
		row, err := rec.Row()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
