package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Clear", km.Clear},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Verbose", km.Verbose},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			if len(b.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to have keys", b.name)
			}
		})
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	km := DefaultKeyMap()

	hasEsc := false
	hasCtrlC := false
	for _, k := range km.Quit.Keys() {
		switch k {
		case "esc":
			hasEsc = true
		case "ctrl+c":
			hasCtrlC = true
		}
	}
	if !hasEsc || !hasCtrlC {
		t.Errorf("quit binding should include esc and ctrl+c, got %v", km.Quit.Keys())
	}
}

func TestDefaultKeyMap_LettersStayFree(t *testing.T) {
	// Plain letters must stay available for literal input, so no binding
	// may claim a single unmodified letter or digit.
	km := DefaultKeyMap()
	for _, b := range []key.Binding{km.Quit, km.Clear, km.Up, km.Down, km.Verbose} {
		for _, k := range b.Keys() {
			if len(k) == 1 {
				t.Errorf("binding claims bare key %q needed for literal input", k)
			}
		}
	}
}
