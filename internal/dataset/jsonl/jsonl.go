// Package jsonl reads the testimony table from newline-delimited JSON, one
// object per testimony keyed by column name.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"placeviz/internal/dataset"
	"placeviz/internal/domain"
)

const maxLineBytes = 16 << 20

// Provider loads a .jsonl file.
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

// Read decodes every non-blank line of r into a testimony.
func Read(ctx context.Context, r io.Reader) ([]domain.Testimony, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var rows []domain.Testimony
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := toRecord(obj)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		if err := dataset.CheckColumns(keys); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := rec.Row()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Write encodes rows in the format Read accepts.
func Write(w io.Writer, rows []domain.Testimony) error {
	enc := json.NewEncoder(w)
	for _, r := range rows {
		obj := map[string]any{
			domain.ColumnFile:            r.File,
			domain.ColumnExperienceGroup: nullable(r.ExperienceGroup),
			domain.ColumnCountry:         nullable(r.Country),
			domain.ColumnGender:          nullable(r.Gender),
		}
		for _, c := range domain.Categories {
			words := r.TextsFor(c)
			if words == nil {
				words = []string{}
			}
			obj[c.TextsColumn()] = words
			obj[string(c)] = len(words)
		}
		if err := enc.Encode(obj); err != nil {
			return err
		}
	}
	return nil
}

func toRecord(obj map[string]json.RawMessage) (dataset.Record, error) {
	rec := make(dataset.Record, len(obj))
	for k, raw := range obj {
		v := strings.TrimSpace(string(raw))
		switch {
		case v == "null":
			rec[k] = ""
		case strings.HasPrefix(v, `"`):
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, fmt.Errorf("column %q: %w", k, err)
			}
			rec[k] = s
		default:
			rec[k] = v
		}
	}
	return rec, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
