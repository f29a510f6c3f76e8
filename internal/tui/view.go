package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"fitpromo/internal/lifecycle"
	"fitpromo/internal/widgets"
)

var (
	frameStyle    = lipgloss.NewStyle().Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("37"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	chipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("237")).Padding(0, 1)
	activeTab     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).Underline(true)
	tabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	dots = map[lifecycle.DotState]string{
		lifecycle.DotActive:    accentStyle.Render("●"),
		lifecycle.DotCompleted: selectedStyle.Render("●"),
		lifecycle.DotFailed:    errorStyle.Render("●"),
	}
)

func (m Model) View() string {
	var body string
	if m.view.View == lifecycle.ViewResult {
		body = m.resultView()
	} else {
		body = m.formView()
	}
	return frameStyle.Render(body)
}

func (m Model) formView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FitPromo studio") + "\n\n")

	b.WriteString(m.sectionTitle("Prompt", focusPrompt) + "\n")
	b.WriteString(m.prompt.View() + "\n\n")

	b.WriteString(headerStyle.Render("Reference image") + "\n")
	switch {
	case m.attaching:
		b.WriteString(m.path.View() + "\n")
	case m.view.Form.Image != nil:
		img := m.view.Form.Image
		fmt.Fprintf(&b, "%s %s\n", img.Filename, dimStyle.Render(fmt.Sprintf("(%d KB)", img.SizeKB())))
	default:
		b.WriteString(dimStyle.Render("none, ctrl+o to attach") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.sectionTitle("Targets", focusTargets) + "\n")
	selected := make(map[int64]bool, len(m.view.Form.TargetIDs))
	for _, id := range m.view.Form.TargetIDs {
		selected[id] = true
	}
	if len(m.targets) == 0 {
		b.WriteString(dimStyle.Render("no targets loaded") + "\n")
	}
	for i, t := range m.targets {
		line := m.cursor(focusTargets, i) + checkbox(selected[t.ID]) + " " + t.Name
		if chips := renderChips(widgets.KeywordChips(t.StyleKeywords)); chips != "" {
			line += "  " + chips
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.sectionTitle("Products", focusProducts) + " " +
		dimStyle.Render(widgets.ProductSummary(m.view.Form.Products)) + "\n")
	chosen := make(map[int64]bool, len(m.view.Form.Products))
	for _, p := range m.view.Form.Products {
		chosen[p.ID] = true
	}
	for i, p := range m.products {
		line := m.cursor(focusProducts, i) + checkbox(chosen[p.ID]) + " " + p.Name
		if sub := widgets.ProductSubtitle(p); sub != "" {
			line += " " + dimStyle.Render(sub)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.sectionTitle("Design style", focusStyles) + "\n")
	for i, s := range m.styles {
		mark := "( )"
		if s.Value == m.view.Form.DesignStyle {
			mark = selectedStyle.Render("(•)")
		}
		b.WriteString(m.cursor(focusStyles, i) + mark + " " + s.Label + " " + dimStyle.Render(s.Description) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.footer())
	return b.String()
}

func (m Model) resultView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.view.PromptSummary) + "\n")
	rv := m.view.Result
	if rv == nil {
		return b.String()
	}
	if rv.Status != "" {
		b.WriteString(dimStyle.Render("status: "+rv.Status) + "\n")
	}
	b.WriteString("\n")

	switch rv.Panel {
	case lifecycle.PanelPreparing, lifecycle.PanelPhase:
		b.WriteString(m.loadingView(rv.Loading))
	case lifecycle.PanelEmpty:
		b.WriteString(errorStyle.Render(lifecycle.ResultErrorTitle) + "\n")
		msg := rv.Error
		if msg == "" {
			msg = lifecycle.DefaultResultError
		}
		b.WriteString(msg + "\n")
	case lifecycle.PanelTabs:
		b.WriteString(renderTabs(rv.Tabs) + "\n\n")
		if rv.Active != nil {
			b.WriteString(m.tabPanelView(rv.Active))
		}
	}
	if m.view.PollError != "" {
		b.WriteString("\n" + errorStyle.Render("poll failed: "+m.view.PollError) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("←/→ tabs · esc back · n start over · q quit"))
	return b.String()
}

func (m Model) loadingView(l *lifecycle.LoadingView) string {
	if l == nil {
		return m.spinner.View() + "\n"
	}
	line := m.spinner.View() + " " + l.Message + "  " + dimStyle.Render(l.Elapsed)
	if l.ShowCounter {
		line += "  " + dimStyle.Render(fmt.Sprintf("%d/%d", l.Completed, l.Total))
	}
	return line + "\n"
}

func (m Model) tabPanelView(p *lifecycle.TabPanel) string {
	var b strings.Builder
	switch p.Kind {
	case lifecycle.TabLoading:
		b.WriteString(m.loadingView(p.Loading))
	case lifecycle.TabError:
		b.WriteString(errorStyle.Render(p.ErrorTitle) + "\n")
		b.WriteString(p.ErrorMessage + "\n")
	case lifecycle.TabCompare:
		b.WriteString(headerStyle.Render("Generated") + " " + p.GeneratedURL + "\n")
		if p.ShowSlider {
			b.WriteString(headerStyle.Render("Original") + "  " + p.OriginalURL + "\n")
		}
		if p.Rationale != "" {
			b.WriteString("\n" + headerStyle.Render("Rationale") + "\n")
			b.WriteString(renderMarkdown(p.Rationale, m.width-4) + "\n")
		}
		if p.AdaptedText != "" {
			b.WriteString("\n" + headerStyle.Render("Copy") + "\n")
			b.WriteString(renderMarkdown(p.AdaptedText, m.width-4) + "\n")
		}
	}
	return b.String()
}

func (m Model) footer() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString(accentStyle.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	hint := "tab focus · space toggle · ctrl+o image · ctrl+r start over · ctrl+c quit"
	if m.view.CanSubmit {
		hint = "ctrl+g generate · " + hint
	}
	b.WriteString(dimStyle.Render(hint))
	return b.String()
}

func (m Model) sectionTitle(title string, f focus) string {
	if m.focus == f && !m.attaching {
		return activeTab.Render(title)
	}
	return headerStyle.Render(title)
}

func (m Model) cursor(f focus, i int) string {
	if m.focus == f && m.cursors[f] == i {
		return accentStyle.Render("> ")
	}
	return "  "
}

func checkbox(on bool) string {
	if on {
		return selectedStyle.Render("[x]")
	}
	return "[ ]"
}

func renderChips(c widgets.Chips) string {
	parts := make([]string, 0, len(c.Visible)+1)
	for _, v := range c.Visible {
		parts = append(parts, chipStyle.Render(v))
	}
	if label := c.OverflowLabel(); label != "" {
		parts = append(parts, dimStyle.Render(label))
	}
	return strings.Join(parts, " ")
}

func renderTabs(tabs []lifecycle.TabView) string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := t.Label
		if t.Checkmark {
			label += " ✓"
		}
		style := tabStyle
		if t.Selected {
			style = activeTab
		}
		parts = append(parts, dots[t.Dot]+" "+style.Render(label))
	}
	return strings.Join(parts, "   ")
}

// renderMarkdown renders text as terminal-styled markdown via glamour,
// falling back to the raw text.
func renderMarkdown(text string, width int) string {
	if width < 40 {
		width = 76
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
