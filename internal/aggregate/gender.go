package aggregate

import (
	"fmt"

	"placeviz/internal/domain"
)

// Gender values taking part in the comparison. Any other value is left out.
const (
	Male   = "M"
	Female = "F"
)

// GenderSplit partitions the tokens of rows for c by speaker gender and
// returns the top-N male-only, female-only and shared tokens.
//
// Tokens come from Tokenize, the same as the word cloud, so a multi-word
// entry counts once per word. Male-only and shared lists are ordered by male
// frequency, the female-only list by female frequency.
func GenderSplit(rows []domain.Testimony, c domain.Category, topN int) (domain.Comparison, error) {
	if !c.Valid() {
		return domain.Comparison{}, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
	if topN < domain.MinTopN || topN > domain.MaxTopN {
		return domain.Comparison{}, fmt.Errorf("%w: got %d", domain.ErrTopNRange, topN)
	}

	male := &Counter{counts: make(map[string]int)}
	female := &Counter{counts: make(map[string]int)}
	for _, r := range rows {
		var side *Counter
		switch r.Gender {
		case Male:
			side = male
		case Female:
			side = female
		default:
			continue
		}
		for _, w := range Tokenize(r.TextsFor(c)) {
			side.Add(w)
		}
	}

	shared := 0
	for _, w := range male.order {
		if female.Has(w) {
			shared++
		}
	}

	cmp := domain.Comparison{
		Male:       []string{},
		Female:     []string{},
		Common:     []string{},
		MaleSet:    male.Distinct(),
		FemaleSet:  female.Distinct(),
		MaleOnly:   male.Len() - shared,
		FemaleOnly: female.Len() - shared,
		Shared:     shared,
	}
	for _, wc := range male.MostCommon() {
		if female.Has(wc.Word) {
			if len(cmp.Common) < topN {
				cmp.Common = append(cmp.Common, wc.Word)
			}
		} else if len(cmp.Male) < topN {
			cmp.Male = append(cmp.Male, wc.Word)
		}
	}
	for _, wc := range female.MostCommon() {
		if !male.Has(wc.Word) && len(cmp.Female) < topN {
			cmp.Female = append(cmp.Female, wc.Word)
		}
	}
	return cmp, nil
}
