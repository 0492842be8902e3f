// Package filter narrows the testimony table by demographic predicates.
package filter

import "placeviz/internal/domain"

// Apply returns the rows that satisfy every active predicate.
// Inactive predicates are skipped; an active predicate never matches a row
// whose attribute is missing. The input slice is not modified.
func Apply(rows []domain.Testimony, p domain.Predicates) []domain.Testimony {
	out := rows
	if p.SurvivorOnly {
		out = where(out, func(r domain.Testimony) bool { return r.ExperienceGroup == domain.Survivor })
	}
	if len(p.Countries) > 0 {
		set := toSet(p.Countries)
		out = where(out, func(r domain.Testimony) bool { return member(set, r.Country) })
	}
	if len(p.Groups) > 0 {
		set := toSet(p.Groups)
		out = where(out, func(r domain.Testimony) bool { return member(set, r.ExperienceGroup) })
	}
	if len(out) == len(rows) {
		// always a fresh slice, even when nothing was dropped
		return append([]domain.Testimony(nil), rows...)
	}
	return out
}

func where(rows []domain.Testimony, keep func(domain.Testimony) bool) []domain.Testimony {
	out := make([]domain.Testimony, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func member(set map[string]struct{}, v string) bool {
	if v == "" {
		return false
	}
	_, ok := set[v]
	return ok
}
