package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"placeviz/internal/domain"
)

var (
	columnStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	maleColor   = lipgloss.Color("9")
	commonColor = lipgloss.Color("11")
	femaleColor = lipgloss.Color("10")
)

// Venn renders the comparison as three columns: left-only, common and
// right-only words, each headed by its region size.
func Venn(cmp *domain.Comparison, labels [2]string, width int) string {
	if cmp == nil {
		return emptyStyle.Render("(comparison disabled)")
	}
	colWidth := (width - 6*3) / 3
	if colWidth < 12 {
		colWidth = 12
	}
	left := column(fmt.Sprintf("Top %s words", labels[0]), cmp.MaleOnly, cmp.Male, maleColor, colWidth)
	mid := column("Top common words", cmp.Shared, cmp.Common, commonColor, colWidth)
	right := column(fmt.Sprintf("Top %s words", labels[1]), cmp.FemaleOnly, cmp.Female, femaleColor, colWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right)
}

func column(title string, size int, words []string, color lipgloss.Color, width int) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(color).Render(title)
	sub := emptyStyle.Render(fmt.Sprintf("%d distinct", size))
	body := emptyStyle.Render("(none)")
	if len(words) > 0 {
		lines := make([]string, len(words))
		for i, w := range words {
			lines[i] = fmt.Sprintf("%2d. %s", i+1, w)
		}
		body = strings.Join(lines, "\n")
	}
	return columnStyle.Width(width).Render(head + "\n" + sub + "\n\n" + body)
}
