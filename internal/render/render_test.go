package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"placeviz/internal/aggregate"
	"placeviz/internal/domain"
)

func TestCloudEmpty(t *testing.T) {
	assert.Contains(t, Cloud{Width: 40}.Render(nil), "no words")
}

func TestCloudRendersWords(t *testing.T) {
	counts := aggregate.Rank([]string{"house", "house", "barn", "shed", "house"})
	out := Cloud{Width: 40}.Render(counts)
	for _, w := range []string{"house", "barn", "shed"} {
		assert.Contains(t, out, w)
	}

	out = Cloud{Width: 40, MaxWords: 1}.Render(counts)
	assert.Contains(t, out, "house")
	assert.NotContains(t, out, "barn")
}

func TestBucket(t *testing.T) {
	assert.Equal(t, 3, bucket(10, 10, 4))
	assert.Equal(t, 0, bucket(1, 10, 4))
	assert.Equal(t, 2, bucket(7, 10, 4))
	assert.Equal(t, 0, bucket(0, 0, 4))
}

func TestCountTable(t *testing.T) {
	counts := aggregate.Rank([]string{"house", "house", "barn"})
	out := CountTable(counts, 0)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "house")
	assert.Contains(t, lines[1], "2")
	assert.Contains(t, lines[2], "barn")

	assert.Len(t, strings.Split(CountTable(counts, 1), "\n"), 2)
	assert.Contains(t, CountTable(nil, 0), "no words")
}

func TestVenn(t *testing.T) {
	assert.Contains(t, Venn(nil, [2]string{"Male", "Female"}, 80), "disabled")

	cmp := &domain.Comparison{
		Male: []string{"barn"}, Female: []string{"shed"}, Common: []string{"house"},
		MaleOnly: 1, FemaleOnly: 1, Shared: 1,
	}
	out := Venn(cmp, [2]string{"Male", "Female"}, 90)
	for _, s := range []string{"Top Male words", "Top common words", "Top Female words", "barn", "shed", "house"} {
		assert.Contains(t, out, s)
	}

	out = Venn(&domain.Comparison{}, [2]string{"Male", "Female"}, 90)
	assert.Contains(t, out, "(none)")
}

func TestRowTable(t *testing.T) {
	rows := []domain.Testimony{
		{File: "t1", ExperienceGroup: "Survivor", Country: "Poland", Gender: "M", Counts: map[domain.Category]int{domain.Building: 3}},
		{File: "t2", Country: "Hungary", Gender: "F", Counts: map[domain.Category]int{domain.Building: 2}},
	}
	out := RowTable(rows, domain.Building, 0)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Experience Group")
	assert.Contains(t, lines[0], "BUILDING")
	assert.Equal(t, []string{"t1", "Survivor", "Poland", "M", "3"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"t2", "-", "Hungary", "F", "2"}, strings.Fields(lines[2]))

	out = RowTable(rows, domain.Building, 1)
	assert.Contains(t, out, "1 more")
	assert.NotContains(t, out, "t2")

	assert.Contains(t, RowTable(nil, domain.Building, 0), "no testimonies")
}
