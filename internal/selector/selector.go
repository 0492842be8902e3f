// Package selector resolves a selection mode into the rows to aggregate.
package selector

import (
	"fmt"

	"placeviz/internal/domain"
)

// Select dispatches on the selection mode.
func Select(rows []domain.Testimony, s domain.Selection) ([]domain.Testimony, error) {
	switch s.Mode {
	case domain.ModeMost:
		if !s.Category.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, s.Category)
		}
		sel, _ := Most(rows, s.Category)
		return sel, nil
	case domain.ModeTestimony:
		return Testimonies(rows, s.Files), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, s.Mode)
}

// Most returns every row whose count for c equals the maximum over rows,
// together with that maximum. Ties are all returned in row order.
func Most(rows []domain.Testimony, c domain.Category) ([]domain.Testimony, int) {
	if len(rows) == 0 {
		return nil, 0
	}
	best := rows[0].Count(c)
	for _, r := range rows[1:] {
		if n := r.Count(c); n > best {
			best = n
		}
	}
	var out []domain.Testimony
	for _, r := range rows {
		if r.Count(c) == best {
			out = append(out, r)
		}
	}
	return out, best
}

// Testimonies resolves an explicit file list against rows.
//
// When the list contains the "All" sentinel every row is returned and any
// other identifiers in the list are ignored. Otherwise the rows whose file
// appears in the list are returned in row order; unknown identifiers match
// nothing.
func Testimonies(rows []domain.Testimony, files []string) []domain.Testimony {
	if len(files) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(files))
	for _, f := range files {
		if f == domain.AllTestimonies {
			return append([]domain.Testimony(nil), rows...)
		}
		want[f] = struct{}{}
	}
	var out []domain.Testimony
	for _, r := range rows {
		if _, ok := want[r.File]; ok {
			out = append(out, r)
		}
	}
	return out
}
