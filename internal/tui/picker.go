package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// picker is a scrollable multiselect list.
type picker struct {
	title    string
	items    []string
	selected map[string]bool
	cursor   int
	offset   int
	height   int
}

func newPicker(title string, items, chosen []string, height int) *picker {
	p := &picker{title: title, items: items, selected: make(map[string]bool, len(chosen)), height: height}
	for _, c := range chosen {
		p.selected[c] = true
	}
	return p
}

func (p *picker) move(d int) {
	if len(p.items) == 0 {
		return
	}
	p.cursor = (p.cursor + d + len(p.items)) % len(p.items)
	if p.height <= 0 {
		return
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.height {
		p.offset = p.cursor - p.height + 1
	}
}

func (p *picker) toggle() {
	if len(p.items) == 0 {
		return
	}
	it := p.items[p.cursor]
	p.selected[it] = !p.selected[it]
}

// values returns the chosen items in list order.
func (p *picker) values() []string {
	var out []string
	for _, it := range p.items {
		if p.selected[it] {
			out = append(out, it)
		}
	}
	return out
}

func (p *picker) view(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(p.title))
	b.WriteString("\n")
	if len(p.items) == 0 {
		b.WriteString(hintStyle.Render("(no options)"))
		return b.String()
	}
	end := len(p.items)
	if p.height > 0 && p.offset+p.height < end {
		end = p.offset + p.height
	}
	for i := p.offset; i < end; i++ {
		mark := "[ ]"
		if p.selected[p.items[i]] {
			mark = "[x]"
		}
		line := truncate(fmt.Sprintf("%s %s", mark, p.items[i]), width-2)
		if i == p.cursor {
			line = focusStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(hintStyle.Render(fmt.Sprintf("%d/%d  space toggle, enter done", p.cursor+1, len(p.items))))
	return b.String()
}

func truncate(s string, n int) string {
	if n <= 1 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}
