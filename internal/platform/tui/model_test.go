package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hakusyu/internal/config"
	"github.com/vovakirdan/hakusyu/internal/core"
	"github.com/vovakirdan/hakusyu/internal/game"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	session := game.NewSession(game.Options{Config: config.DefaultConfig(), Seed: 1})
	return NewModel(session, core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 60})
}

func TestModelReservesHelpLine(t *testing.T) {
	m := newTestModel(t)
	if m.screen.Height() != 19 {
		t.Errorf("screen height = %d, expected 19", m.screen.Height())
	}

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if m.screen.Width() != 40 || m.screen.Height() != 9 {
		t.Errorf("screen after resize = %dx%d, expected 40x9", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuitsWhenSessionDone(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Fatal("tick after quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("tick after quit should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelWithoutDevicesWaitsForKey(t *testing.T) {
	m := newTestModel(t)

	// Page through the help screens.
	for i := 0; i < 2; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m.Update(TickMsg{})
	}
	if !strings.Contains(m.View(), "No capture device") {
		t.Errorf("View() = %q, expected the no-device prompt", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	m.Update(TickMsg{})
	if !m.quitting {
		t.Error("any key should exit when no device is available")
	}
}
