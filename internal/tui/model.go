package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"placeviz/internal/domain"
	"placeviz/internal/render"
)

// ExplorerPort is the TUI-facing subset of the dashboard service.
type ExplorerPort interface {
	Explore(ctx context.Context, req domain.Request) (*domain.Result, error)
}

type control int

const (
	ctrlMode control = iota
	ctrlTestimonies
	ctrlCategory
	ctrlGender
	ctrlSurvivor
	ctrlCountry
	ctrlGroup
	ctrlTopN
	numControls
)

const sidebarWidth = 36

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	service  ExplorerPort
	options  domain.Options
	req      domain.Request
	focus    control
	picker   *picker
	pickFor  control
	topN     textinput.Model
	viewport viewport.Model
	result   *domain.Result
	status   string
	ready    bool
	height   int
	cloud    render.Cloud
}

// New creates the dashboard with initial control values and runs the first pass.
func New(service ExplorerPort, options domain.Options, initial domain.Request, maxWords int) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 3
	ti.Width = 4
	if initial.TopN < domain.MinTopN || initial.TopN > domain.MaxTopN {
		initial.TopN = domain.MinTopN
	}
	ti.SetValue(strconv.Itoa(initial.TopN))
	vp := viewport.New(0, 0)
	m := Model{
		service:  service,
		options:  options,
		req:      initial,
		topN:     ti,
		viewport: vp,
		cloud:    render.Cloud{MaxWords: maxWords},
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Request returns the current control values.
func (m Model) Request() domain.Request { return m.req }

// Result returns the outcome of the last pipeline run.
func (m Model) Result() *domain.Result { return m.result }

// Update handles key and window events. Every control change re-runs the pipeline.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.height = msg.Height
		rw, rh := resultBoxStyle.GetFrameSize()
		m.viewport.Width = max(20, msg.Width-sidebarWidth-rw-1)
		m.viewport.Height = max(3, msg.Height-2-rh)
		m.cloud.Width = m.viewport.Width
		m.viewport.SetContent(m.renderResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.picker != nil {
			return m.updatePicker(msg), nil
		}
		return m.updateControls(msg)
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		m.picker.move(-1)
	case "down", "j":
		m.picker.move(1)
	case " ", "x":
		m.picker.toggle()
		m.applyPicker()
		m.refresh()
	case "enter", "esc":
		m.picker = nil
	}
	return m
}

func (m *Model) applyPicker() {
	vals := m.picker.values()
	switch m.pickFor {
	case ctrlTestimonies:
		m.req.Files = vals
	case ctrlCountry:
		m.req.Countries = vals
	case ctrlGroup:
		m.req.Groups = vals
	}
}

func (m Model) updateControls(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		if m.focus != ctrlTopN {
			return m, tea.Quit
		}
	case "tab", "down":
		m.setFocus(m.step(1))
		return m, nil
	case "shift+tab", "up":
		m.setFocus(m.step(-1))
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch m.focus {
	case ctrlMode:
		if key == "left" || key == "right" || key == " " || key == "enter" {
			if m.req.Mode == domain.ModeMost {
				m.req.Mode = domain.ModeTestimony
			} else {
				m.req.Mode = domain.ModeMost
			}
			m.refresh()
		}
	case ctrlCategory:
		switch key {
		case "left":
			m.req.Category = m.req.Category.Prev()
			m.refresh()
		case "right", " ", "enter":
			m.req.Category = m.req.Category.Next()
			m.refresh()
		}
	case ctrlGender:
		if key == " " || key == "enter" {
			m.req.Gender = !m.req.Gender
			m.refresh()
		}
	case ctrlSurvivor:
		if key == " " || key == "enter" {
			m.req.Survivor = !m.req.Survivor
			m.refresh()
		}
	case ctrlTestimonies, ctrlCountry, ctrlGroup:
		if key == " " || key == "enter" {
			m.openPicker(m.focus)
		}
	case ctrlTopN:
		return m.updateTopN(msg)
	}
	return m, nil
}

func (m Model) updateTopN(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.req.TopN
	switch msg.String() {
	case "left", "-":
		n--
	case "right", "+":
		n++
	default:
		var cmd tea.Cmd
		m.topN, cmd = m.topN.Update(msg)
		v, err := strconv.Atoi(strings.TrimSpace(m.topN.Value()))
		if err != nil || v < domain.MinTopN || v > domain.MaxTopN {
			m.status = fmt.Sprintf("Top-N must be a number between %d and %d", domain.MinTopN, domain.MaxTopN)
			return m, cmd
		}
		m.req.TopN = v
		m.refresh()
		return m, cmd
	}
	n = min(max(n, domain.MinTopN), domain.MaxTopN)
	if n != m.req.TopN {
		m.req.TopN = n
		m.topN.SetValue(strconv.Itoa(n))
		m.refresh()
	}
	return m, nil
}

func (m *Model) openPicker(c control) {
	height := max(5, m.height-12)
	switch c {
	case ctrlTestimonies:
		m.picker = newPicker("Select Testimonies", m.options.Testimonies, m.req.Files, height)
	case ctrlCountry:
		m.picker = newPicker("Country", m.options.Countries, m.req.Countries, height)
	case ctrlGroup:
		m.picker = newPicker("Group", m.options.ExperienceGroups, m.req.Groups, height)
	}
	m.pickFor = c
}

func (m *Model) setFocus(c control) {
	m.focus = c
	if c == ctrlTopN {
		m.topN.Focus()
	} else {
		m.topN.Blur()
	}
}

// visible reports whether a control is shown for the current values.
func (m Model) visible(c control) bool {
	switch c {
	case ctrlTestimonies:
		return m.req.Mode == domain.ModeTestimony
	case ctrlTopN:
		return m.req.Gender
	}
	return true
}

func (m Model) step(d int) control {
	c := m.focus
	for i := 0; i < int(numControls); i++ {
		c = control((int(c) + d + int(numControls)) % int(numControls))
		if m.visible(c) {
			return c
		}
	}
	return m.focus
}

func (m *Model) refresh() {
	if !m.visible(m.focus) {
		m.setFocus(ctrlMode)
	}
	res, err := m.service.Explore(context.Background(), m.req)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.result = nil
	} else {
		m.result = res
		m.status = fmt.Sprintf("%d testimonies after filters, %d selected, %d tokens",
			len(res.Filtered), len(res.Selected), len(res.Tokens))
	}
	m.viewport.SetContent(m.renderResult())
	m.viewport.GotoTop()
}

// View renders the sidebar and the results pane.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Placing the Holocaust Visualizer")
	side := m.renderSidebar()
	if m.picker != nil {
		side = m.picker.view(sidebarWidth - 2)
	}
	sidebar := sidebarStyle.Width(sidebarWidth).Render(side)
	results := resultBoxStyle.Render(m.viewport.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, sidebar, results) + "\n" + status
}

func (m Model) renderSidebar() string {
	var lines []string
	add := func(c control, label, value string) {
		if !m.visible(c) {
			return
		}
		line := fmt.Sprintf("%-10s %s", label, value)
		if c == m.focus {
			line = focusStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	add(ctrlMode, "Method", "< "+string(m.req.Mode)+" >")
	add(ctrlTestimonies, "Testimony", summarize(m.req.Files))
	add(ctrlCategory, "Category", "< "+string(m.req.Category)+" >")
	add(ctrlGender, "Gender", checkbox(m.req.Gender))
	add(ctrlSurvivor, "Survivor", checkbox(m.req.Survivor))
	add(ctrlCountry, "Country", summarize(m.req.Countries))
	add(ctrlGroup, "Group", summarize(m.req.Groups))
	add(ctrlTopN, "Top-N", m.topN.View())
	lines = append(lines, "", hintStyle.Render("tab/↑↓ move  ←→ change\nspace select  pgup/pgdn scroll\nq quit"))
	return strings.Join(lines, "\n")
}

func (m Model) renderResult() string {
	if m.result == nil {
		return "No results yet."
	}
	res := m.result
	var b strings.Builder
	if res.Request.Mode == domain.ModeMost {
		if len(res.Selected) == 0 {
			b.WriteString(hintStyle.Render("No testimonies match the filters."))
		} else {
			fmt.Fprintf(&b, "Most %s mentions (%d): %s\n", res.Request.Category, res.MaxCount, strings.Join(res.Files, ", "))
			b.WriteString(render.RowTable(res.Selected, res.Request.Category, 0))
		}
		b.WriteString("\n\n")
	} else if len(res.Request.Files) == 0 {
		b.WriteString(hintStyle.Render("Select testimonies to build a word cloud."))
		b.WriteString("\n\n")
	}
	b.WriteString(sectionStyle.Render("Word cloud"))
	b.WriteString("\n")
	b.WriteString(m.cloud.Render(res.Counts))
	b.WriteString("\n\n")
	if res.Comparison != nil {
		b.WriteString(sectionStyle.Render("Top Words"))
		b.WriteString("\n")
		b.WriteString(render.Venn(res.Comparison, [2]string{"Male", "Female"}, m.viewport.Width))
		b.WriteString("\n\n")
	}
	b.WriteString(sectionStyle.Render("Word counts"))
	b.WriteString("\n")
	b.WriteString(render.CountTable(res.Counts, 0))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Testimonies after filters (%d)", len(res.Filtered))))
	b.WriteString("\n")
	b.WriteString(render.RowTable(res.Filtered, res.Request.Category, 0))
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func summarize(vals []string) string {
	switch len(vals) {
	case 0:
		return "(none)"
	case 1:
		return truncate(vals[0], sidebarWidth-16)
	}
	return fmt.Sprintf("%d selected", len(vals))
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sidebarStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sectionStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)
