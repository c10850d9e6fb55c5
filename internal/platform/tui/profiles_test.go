package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hakusyu/internal/storage"
)

type memStore struct {
	profiles []storage.Profile
}

func (m *memStore) Profiles() ([]storage.Profile, error) {
	return append([]storage.Profile(nil), m.profiles...), nil
}

func (m *memStore) DeleteProfile(device string) (bool, error) {
	for i, p := range m.profiles {
		if p.Device == device {
			m.profiles = append(m.profiles[:i], m.profiles[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) SaveProfile(device string, min, max float64) error {
	m.profiles = append(m.profiles, storage.Profile{Device: device, Min: min, Max: max})
	return nil
}

func (m *memStore) Profile(device string) (storage.Profile, bool, error) {
	for _, p := range m.profiles {
		if p.Device == device {
			return p, true, nil
		}
	}
	return storage.Profile{}, false, nil
}

func TestProfilesModelDelete(t *testing.T) {
	store := &memStore{profiles: []storage.Profile{
		{Device: "a", Min: 1, Max: 10},
		{Device: "b", Min: 2, Max: 20},
	}}
	m := NewProfilesModel(store, 80, 24)
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", m.Len())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = next.(ProfilesModel)
	if m.Len() != 1 {
		t.Errorf("Len() after delete = %d, expected 1", m.Len())
	}
	if len(store.profiles) != 1 || store.profiles[0].Device != "b" {
		t.Errorf("store after delete = %+v, expected only b", store.profiles)
	}
}

func TestProfilesModelQuit(t *testing.T) {
	m := NewProfilesModel(&memStore{}, 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("quit key should return a command")
	}
	if v := next.(ProfilesModel).View(); v != "" {
		t.Errorf("View() after quit = %q, expected empty", v)
	}
}

func TestUserProfilesScopesDevice(t *testing.T) {
	store := &memStore{}
	p := userProfiles{user: "ann", store: store}

	if err := p.SaveProfile("synth", 3, 30); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}
	if store.profiles[0].Device != "ann@synth" {
		t.Errorf("stored device = %q, expected ann@synth", store.profiles[0].Device)
	}
	if _, ok, _ := (userProfiles{user: "bob", store: store}).Profile("synth"); ok {
		t.Error("another user should not see the profile")
	}
	if got, ok, _ := p.Profile("synth"); !ok || got.Max != 30 {
		t.Errorf("Profile() = %+v, %v, expected max 30", got, ok)
	}
}
