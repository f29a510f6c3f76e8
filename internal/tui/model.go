// Package tui is a terminal front end for the studio. It drives the same
// lifecycle controller as the desktop app and redraws from its view state.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fitpromo/internal/lifecycle"
	"fitpromo/internal/models"
	"fitpromo/internal/services"
)

// Studio is the part of the studio service the terminal needs.
type Studio interface {
	Bootstrap() (*services.BootstrapData, error)
	View() lifecycle.ViewState
	SetPrompt(prompt string) lifecycle.ViewState
	ToggleTarget(id int64) lifecycle.ViewState
	ToggleProduct(id int64) (lifecycle.ViewState, error)
	SetDesignStyle(style string) (lifecycle.ViewState, error)
	UploadFile(path string) (*models.ImageFile, error)
	Submit() (lifecycle.ViewState, error)
	Back() lifecycle.ViewState
	StartOver() lifecycle.ViewState
	SelectTab(index int) lifecycle.ViewState
}

// refreshInterval is how often the view state is re-read. The controller's
// own timers decide when it changes.
const refreshInterval = 250 * time.Millisecond

type focus int

const (
	focusPrompt focus = iota
	focusTargets
	focusProducts
	focusStyles
	focusCount
)

type (
	tickMsg      struct{}
	bootstrapMsg struct {
		data *services.BootstrapData
		err  error
	}
	submitMsg struct {
		view lifecycle.ViewState
		err  error
	}
	uploadMsg struct {
		img *models.ImageFile
		err error
	}
)

type Model struct {
	studio Studio

	view     lifecycle.ViewState
	targets  []models.Target
	products []models.Product
	styles   []models.DesignStyleOption

	focus     focus
	cursors   [focusCount]int
	prompt    textinput.Model
	path      textinput.Model
	attaching bool
	spinner   spinner.Model

	status string
	err    error
	width  int
	height int
}

func New(studio Studio) Model {
	prompt := textinput.New()
	prompt.Placeholder = "Describe the promotion"
	prompt.CharLimit = 2000
	prompt.Focus()

	path := textinput.New()
	path.Placeholder = "Path to a reference image"

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle

	return Model{
		studio:  studio,
		view:    studio.View(),
		styles:  models.DesignStyleOptions(),
		prompt:  prompt,
		path:    path,
		spinner: s,
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bootstrap, tick(), m.spinner.Tick, textinput.Blink)
}

func (m Model) bootstrap() tea.Msg {
	data, err := m.studio.Bootstrap()
	return bootstrapMsg{data: data, err: err}
}

func (m Model) submit() tea.Msg {
	vs, err := m.studio.Submit()
	return submitMsg{view: vs, err: err}
}

func (m Model) upload(path string) tea.Cmd {
	return func() tea.Msg {
		img, err := m.studio.UploadFile(path)
		return uploadMsg{img: img, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.Width = max(20, msg.Width-6)
		m.path.Width = max(20, msg.Width-6)
		return m, nil
	case tickMsg:
		m.view = m.studio.View()
		return m, tick()
	case bootstrapMsg:
		if msg.data != nil {
			m.targets = msg.data.Targets
			m.products = msg.data.Products
			m.styles = msg.data.DesignStyles
			m.view = msg.data.View
		}
		m.err = msg.err
		return m, nil
	case submitMsg:
		m.view = msg.view
		m.err = msg.err
		return m, nil
	case uploadMsg:
		m.err = msg.err
		if msg.img != nil {
			m.status = "Attached " + msg.img.Filename
		}
		m.view = m.studio.View()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view.View == lifecycle.ViewResult {
			return m.updateResult(msg)
		}
		if m.attaching {
			return m.updateAttach(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "b":
		m.view = m.studio.Back()
	case "n":
		m.view = m.studio.StartOver()
		m.prompt.SetValue("")
	case "left", "h":
		if r := m.view.Result; r != nil {
			m.view = m.studio.SelectTab(r.SelectedTab - 1)
		}
	case "right", "l":
		if r := m.view.Result; r != nil {
			m.view = m.studio.SelectTab(r.SelectedTab + 1)
		}
	}
	return m, nil
}

func (m Model) updateAttach(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.attaching = false
		m.path.Blur()
		return m, nil
	case "enter":
		path := m.path.Value()
		m.attaching = false
		m.path.Blur()
		m.path.SetValue("")
		if path == "" {
			return m, nil
		}
		m.status = "Uploading " + path
		return m, m.upload(path)
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case "ctrl+g":
		if !m.view.CanSubmit {
			return m, nil
		}
		m.err = nil
		m.status = ""
		return m, m.submit
	case "ctrl+o":
		m.attaching = true
		m.prompt.Blur()
		return m, m.path.Focus()
	case "ctrl+r":
		m.view = m.studio.StartOver()
		m.prompt.SetValue("")
		m.status = ""
		return m, nil
	}

	if m.focus == focusPrompt {
		var cmd tea.Cmd
		before := m.prompt.Value()
		m.prompt, cmd = m.prompt.Update(msg)
		if v := m.prompt.Value(); v != before {
			m.view = m.studio.SetPrompt(v)
		}
		return m, cmd
	}

	n := m.listLen(m.focus)
	switch msg.String() {
	case "up", "k":
		if m.cursors[m.focus] > 0 {
			m.cursors[m.focus]--
		}
	case "down", "j":
		if m.cursors[m.focus] < n-1 {
			m.cursors[m.focus]++
		}
	case " ", "enter", "x":
		m.toggle()
	}
	return m, nil
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusPrompt {
		m.prompt.Focus()
	} else {
		m.prompt.Blur()
	}
}

func (m Model) listLen(f focus) int {
	switch f {
	case focusTargets:
		return len(m.targets)
	case focusProducts:
		return len(m.products)
	case focusStyles:
		return len(m.styles)
	}
	return 0
}

func (m *Model) toggle() {
	i := m.cursors[m.focus]
	if i >= m.listLen(m.focus) {
		return
	}
	var err error
	switch m.focus {
	case focusTargets:
		m.view = m.studio.ToggleTarget(m.targets[i].ID)
	case focusProducts:
		m.view, err = m.studio.ToggleProduct(m.products[i].ID)
	case focusStyles:
		m.view, err = m.studio.SetDesignStyle(string(m.styles[i].Value))
	}
	m.err = err
}
