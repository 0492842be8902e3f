// Package render draws pipeline results for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"placeviz/internal/domain"
)

var (
	weightStyles = []lipgloss.Style{
		lipgloss.NewStyle().Faint(true),
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Underline(true),
	}
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Cloud renders ranked words as a wrapped block of text, heavier styles for
// more frequent words.
type Cloud struct {
	Width    int
	MaxWords int
}

// Render draws counts in rank order. An empty ranking renders a placeholder.
func (c Cloud) Render(counts []domain.WordCount) string {
	if len(counts) == 0 {
		return emptyStyle.Render("(no words)")
	}
	if c.MaxWords > 0 && len(counts) > c.MaxWords {
		counts = counts[:c.MaxWords]
	}
	top := counts[0].Count
	words := make([]string, len(counts))
	for i, wc := range counts {
		words[i] = weightStyles[bucket(wc.Count, top, len(weightStyles))].Render(wc.Word)
	}
	width := c.Width
	if width <= 0 {
		width = 80
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(words, "  "))
}

// bucket maps count onto [0, n) relative to the top count.
func bucket(count, top, n int) int {
	if top <= 0 {
		return 0
	}
	b := count * n / (top + 1)
	if count == top {
		b = n - 1
	}
	if b >= n {
		b = n - 1
	}
	return b
}

// CountTable renders a rank/word/count table, at most limit rows (0 = all).
func CountTable(counts []domain.WordCount, limit int) string {
	if len(counts) == 0 {
		return emptyStyle.Render("(no words)")
	}
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	wordWidth := len("word")
	for _, wc := range counts {
		if n := lipgloss.Width(wc.Word); n > wordWidth {
			wordWidth = n
		}
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%4s  %-*s  %5s", "#", wordWidth, "word", "count")))
	for _, wc := range counts {
		fmt.Fprintf(&b, "\n%4d  %-*s  %5d", wc.Rank, wordWidth, wc.Word, wc.Count)
	}
	return b.String()
}

// RowTable renders testimonies as a file/group/country/gender table with
// the count for c, at most limit rows (0 = all). Absent values show as "-".
func RowTable(rows []domain.Testimony, c domain.Category, limit int) string {
	if len(rows) == 0 {
		return emptyStyle.Render("(no testimonies)")
	}
	more := 0
	if limit > 0 && len(rows) > limit {
		more = len(rows) - limit
		rows = rows[:limit]
	}
	header := []string{domain.ColumnFile, domain.ColumnExperienceGroup, domain.ColumnCountry, domain.ColumnGender}
	cells := make([][]string, len(rows))
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for i, r := range rows {
		cells[i] = []string{r.File, orDash(r.ExperienceGroup), orDash(r.Country), orDash(r.Gender)}
		for j, v := range cells[i] {
			widths[j] = max(widths[j], lipgloss.Width(v))
		}
	}
	countWidth := max(lipgloss.Width(string(c)), 5)

	line := func(vals []string, count string) string {
		var b strings.Builder
		for j, v := range vals {
			fmt.Fprintf(&b, "%-*s  ", widths[j], v)
		}
		fmt.Fprintf(&b, "%*s", countWidth, count)
		return b.String()
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(line(header, string(c))))
	for i, r := range rows {
		b.WriteString("\n" + line(cells[i], fmt.Sprint(r.Count(c))))
	}
	if more > 0 {
		b.WriteString("\n" + emptyStyle.Render(fmt.Sprintf("… %d more", more)))
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
