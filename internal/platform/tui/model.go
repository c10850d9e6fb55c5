package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hakusyu/internal/core"
	"github.com/vovakirdan/hakusyu/internal/game"
)

// helpHeight is the number of rows reserved below the playfield.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model hosting one game session.
type Model struct {
	session    *game.Session
	screen     *core.Screen
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	tickRate   int
	quitting   bool
}

// NewModel creates a model for session using the screen size and tick rate
// from cfg.
func NewModel(session *game.Session, cfg core.RuntimeConfig) *Model {
	h := help.New()
	h.Width = cfg.ScreenW
	return &Model{
		session:    session,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		keys:       NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		tickRate:   cfg.TickRate,
	}
}

func playHeight(h int) int {
	if h-helpHeight < 1 {
		return 1
	}
	return h - helpHeight
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.keys.MapKeyToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleTick steps the session with the keys pressed since the last tick.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	m.session.Step(m.inputFrame)
	m.inputFrame.Clear()

	if m.session.Done() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.tickRate)
}

// View renders the session and the key help line.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.session.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys.Keys())))
	return b.String()
}

// Run starts the Bubble Tea program for session and blocks until it exits.
func Run(session *game.Session, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(session, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
