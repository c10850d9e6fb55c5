package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hakusyu/internal/amplitude"
	"github.com/vovakirdan/hakusyu/internal/storage"
)

const tableMinWidth = 50

// ProfileStore is the part of *storage.Store the profiles screen uses.
type ProfileStore interface {
	Profiles() ([]storage.Profile, error)
	DeleteProfile(device string) (bool, error)
}

// ProfilesKeyMap defines the key bindings for the profiles screen.
type ProfilesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProfilesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ProfilesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Delete, k.Quit},
	}
}

// DefaultProfilesKeyMap returns default key bindings.
func DefaultProfilesKeyMap() ProfilesKeyMap {
	return ProfilesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "forget device"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProfilesModel lists stored calibration profiles.
type ProfilesModel struct {
	store    ProfileStore
	profiles []storage.Profile
	table    table.Model
	help     help.Model
	keys     ProfilesKeyMap
	status   string
	width    int
	height   int
	quitting bool
}

// NewProfilesModel creates a profiles screen backed by store.
func NewProfilesModel(store ProfileStore, width, height int) ProfilesModel {
	m := ProfilesModel{
		store:  store,
		keys:   DefaultProfilesKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ProfilesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Device", Width: 28},
		{Title: "Min", Width: 10},
		{Title: "Max", Width: 10},
		{Title: "Updated", Width: 14},
	}
	if w := m.width - 4; w > tableMinWidth+20 {
		columns[0].Width = w - 40
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the profiles from the store into the table.
func (m *ProfilesModel) load() {
	m.profiles = nil
	if m.store != nil {
		profiles, err := m.store.Profiles()
		if err != nil {
			m.status = err.Error()
		} else {
			m.profiles = profiles
		}
	}
	m.updateTableRows()
}

func (m *ProfilesModel) updateTableRows() {
	rows := make([]table.Row, len(m.profiles))
	for i, p := range m.profiles {
		cal := amplitude.Calibration{Min: p.Min, Max: p.Max}
		lo, hi := fmt.Sprintf("%.6g", p.Min), fmt.Sprintf("%.6g", p.Max)
		if cal.Validate() != nil {
			hi += " !"
		}
		updated := ""
		if !p.UpdatedAt.IsZero() {
			updated = p.UpdatedAt.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{p.Device, lo, hi, updated}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoBottom()
	}
}

// Init initializes the profiles model.
func (m ProfilesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the profiles screen.
func (m ProfilesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ProfilesModel) deleteSelected() {
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.profiles) {
		return
	}
	device := m.profiles[i].Device
	if _, err := m.store.DeleteProfile(device); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "forgot " + device
	m.load()
}

// View renders the profiles screen.
func (m ProfilesModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("CALIBRATION PROFILES", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(helpStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ProfilesModel) renderTableContent() string {
	if len(m.profiles) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No calibrations stored yet.\nCalibrate a device in play to save one.")
	}
	return m.table.View()
}

// Len returns the number of listed profiles.
func (m ProfilesModel) Len() int {
	return len(m.profiles)
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}

// RunProfiles runs the profiles screen until the user quits.
func RunProfiles(store ProfileStore, width, height int) error {
	p := tea.NewProgram(
		NewProfilesModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
