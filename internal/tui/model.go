// Package tui is the interactive terminal dashboard.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/couchcryptid/space-dashboard/internal/dashboard"
	"github.com/couchcryptid/space-dashboard/internal/domain"
)

// Dashboard is the state the terminal UI reads and drives.
type Dashboard interface {
	Picture() dashboard.PictureState
	LoadPicture(ctx context.Context, date string) (dashboard.PictureState, error)
	Launches() dashboard.LaunchState
	LoadLaunches(ctx context.Context) (dashboard.LaunchState, error)
	Bodies() dashboard.BodiesState
	LoadBodies(ctx context.Context) int
	SelectBody(key domain.BodyKey) bool
}

// Section is one of the three dashboard panels.
type Section int

const (
	SectionPicture Section = iota
	SectionLaunches
	SectionPlanets
	sectionCount
)

var sectionNames = [...]string{"Today in Space", "Launches", "Planets"}

func (s Section) String() string {
	return sectionNames[s]
}

type pictureMsg struct {
	state dashboard.PictureState
	err   error
}

type launchesMsg struct {
	state dashboard.LaunchState
}

type bodiesMsg struct {
	state dashboard.BodiesState
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx  context.Context
	dash Dashboard

	section Section
	sidebar bool
	cursor  int
	status  string

	input   textinput.Model
	spinner spinner.Model

	loadingPicture  bool
	loadingLaunches bool
	loadingBodies   bool

	picture  dashboard.PictureState
	launches dashboard.LaunchState
	bodies   dashboard.BodiesState
}

// New creates the model. Loads issued from the UI run under ctx.
func New(ctx context.Context, d Dashboard) Model {
	ti := textinput.New()
	ti.Placeholder = domain.DateLayout
	ti.Prompt = "Date: "
	ti.CharLimit = len(domain.DateLayout)
	ti.Focus()

	bodies := d.Bodies()
	cursor := 0
	for i, k := range domain.Bodies() {
		if k == bodies.Selected {
			cursor = i
		}
	}

	return Model{
		ctx:             ctx,
		dash:            d,
		sidebar:         true,
		cursor:          cursor,
		input:           ti,
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot)),
		loadingPicture:  true,
		loadingLaunches: true,
		loadingBodies:   true,
		picture:         d.Picture(),
		launches:        d.Launches(),
		bodies:          bodies,
	}
}

// Init starts the three initial loads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadPicture(""),
		m.loadLaunches(),
		m.loadBodies(),
	)
}

func (m Model) loadPicture(date string) tea.Cmd {
	return func() tea.Msg {
		state, err := m.dash.LoadPicture(m.ctx, date)
		return pictureMsg{state: state, err: err}
	}
}

func (m Model) loadLaunches() tea.Cmd {
	return func() tea.Msg {
		state, _ := m.dash.LoadLaunches(m.ctx)
		return launchesMsg{state: state}
	}
}

func (m Model) loadBodies() tea.Cmd {
	return func() tea.Msg {
		m.dash.LoadBodies(m.ctx)
		return bodiesMsg{state: m.dash.Bodies()}
	}
}

// Update handles key presses and load results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case pictureMsg:
		switch {
		case errors.Is(msg.err, dashboard.ErrSuperseded):
			return m, nil
		case errors.Is(msg.err, domain.ErrInvalidDate), errors.Is(msg.err, domain.ErrFutureDate):
			m.status = msg.err.Error()
		}
		m.loadingPicture = false
		m.picture = msg.state
		return m, nil

	case launchesMsg:
		m.loadingLaunches = false
		m.launches = msg.state
		return m, nil

	case bodiesMsg:
		m.loadingBodies = false
		m.bodies = msg.state
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s":
		m.sidebar = !m.sidebar
		return m, nil
	case "tab":
		m.section = (m.section + 1) % sectionCount
		return m, nil
	case "shift+tab":
		m.section = (m.section + sectionCount - 1) % sectionCount
		return m, nil
	case "1", "2", "3":
		// Digits are date input on the picture panel.
		if m.section != SectionPicture {
			m.section = Section(key[0] - '1')
			return m, nil
		}
	}

	switch m.section {
	case SectionPicture:
		return m.handlePictureKey(msg)
	case SectionLaunches:
		if key == "r" {
			m.loadingLaunches = true
			return m, m.loadLaunches()
		}
	case SectionPlanets:
		switch key {
		case "left", "h":
			return m.moveCursor(-1), nil
		case "right", "l":
			return m.moveCursor(1), nil
		}
	}
	return m, nil
}

func (m Model) handlePictureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.status = ""
		m.loadingPicture = true
		return m, m.loadPicture(strings.TrimSpace(m.input.Value()))
	case "t":
		m.input.SetValue("")
		m.status = ""
		m.loadingPicture = true
		return m, m.loadPicture("")
	case "backspace", "delete", "left", "right", "home", "end":
	default:
		if !isDateInput(msg) {
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func isDateInput(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	for _, r := range msg.Runes {
		if (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// moveCursor steps through the eight bodies and selects the one under the
// cursor. Bodies without a cached payload keep the previous detail.
func (m Model) moveCursor(step int) Model {
	keys := domain.Bodies()
	m.cursor = (m.cursor + step + len(keys)) % len(keys)
	key := keys[m.cursor]
	if m.dash.SelectBody(key) {
		m.status = ""
	} else {
		m.status = key.Title() + " is not available"
	}
	m.bodies = m.dash.Bodies()
	return m
}

// View renders the sidebar and the active panel.
func (m Model) View() string {
	content := contentStyle.Render(m.panel())
	if m.sidebar {
		content = lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(m.sidebarView()), content)
	}

	footer := mutedStyle.Render("tab/1-3 section • s sidebar • q quit")
	if m.status != "" {
		footer = errorStyle.Render(m.status) + "\n" + footer
	}
	return content + "\n" + footer + "\n"
}

func (m Model) sidebarView() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Space Dashboard") + "\n\n")
	for s := range sectionCount {
		line := "  " + s.String()
		if s == m.section {
			line = activeItemStyle.Render("> " + s.String())
		}
		b.WriteString(line + "\n")
	}

	if m.section == SectionPlanets {
		b.WriteString("\n")
		for i, st := range m.bodies.Statuses {
			marker := "  "
			if i == m.cursor {
				marker = "> "
			}
			name := st.Name
			if !st.Loaded {
				name = mutedStyle.Render(name)
			}
			b.WriteString(marker + name + "\n")
		}
	}
	return b.String()
}

func (m Model) panel() string {
	switch m.section {
	case SectionLaunches:
		if m.loadingLaunches {
			return m.spinner.View() + " Loading launches..."
		}
		return LaunchesView(m.launches) + "\n" + mutedStyle.Render("r refresh")
	case SectionPlanets:
		if m.loadingBodies {
			return m.spinner.View() + " Loading planets..."
		}
		return BodyView(m.bodies) + "\n" + mutedStyle.Render("←/→ select body")
	default:
		var b strings.Builder
		b.WriteString(m.input.View())
		if m.picture.DateLabel != "" {
			b.WriteString("  " + mutedStyle.Render(m.picture.DateLabel))
		}
		b.WriteString("\n" + mutedStyle.Render("enter load date • t today") + "\n\n")
		if m.loadingPicture {
			b.WriteString(m.spinner.View() + " Loading picture...")
		} else {
			b.WriteString(PictureView(m.picture))
		}
		return b.String()
	}
}
