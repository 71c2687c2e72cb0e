package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bitcalc/internal/config"
	"github.com/agbru/bitcalc/internal/ui"
)

func newTestModel(t *testing.T, cfg config.AppConfig) Model {
	t.Helper()
	ui.SetTheme("none")
	initTUIStyles()
	t.Cleanup(func() {
		ui.SetTheme("dark")
		initTUIStyles()
	})
	if cfg.Radix == 0 {
		cfg.Radix = 10
	}
	m := NewModel(cfg, "test")
	m2, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m2.(Model)
}

// eval runs a literal through the evaluate command and feeds the result back
// into the model, mirroring what the bubbletea runtime does.
func eval(t *testing.T, m Model, literal string) Model {
	t.Helper()
	msg := evaluateCmd(literal, m.radixes, m.config.MaxFrac)()
	m2, _ := m.Update(msg)
	return m2.(Model)
}

func TestModelRendersConversion(t *testing.T) {
	m := newTestModel(t, config.AppConfig{AllRadixes: true})
	m = eval(t, m, "0x1fu16")

	view := m.View()
	for _, want := range []string{"0x1fu16", "16-bit unsigned", "dec", "31", "hex", "1f"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelRendersParseErrorWithCaret(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	m = eval(t, m, "12x34u8")

	view := m.View()
	if !strings.Contains(view, "12x34u8") || !strings.Contains(view, "^") {
		t.Errorf("view should point at the offending character:\n%s", view)
	}
}

func TestModelHistoryRecall(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	m = eval(t, m, "1u8")
	m = eval(t, m, "2u8")

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = m2.(Model)
	if got := m.input.Value(); got != "2u8" {
		t.Errorf("first recall = %q, want %q", got, "2u8")
	}
	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = m2.(Model)
	if got := m.input.Value(); got != "1u8" {
		t.Errorf("second recall = %q, want %q", got, "1u8")
	}
	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = m2.(Model)
	if got := m.input.Value(); got != "2u8" {
		t.Errorf("down recall = %q, want %q", got, "2u8")
	}
	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = m2.(Model)
	if got := m.input.Value(); got != "" {
		t.Errorf("stepping past the newest entry should clear the input, got %q", got)
	}
}

func TestModelClearHistory(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	m = eval(t, m, "1u8")

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = m2.(Model)
	if len(m.history) != 0 {
		t.Errorf("ctrl+l should clear the history, %d entries remain", len(m.history))
	}
}

func TestModelVerboseToggleShowsPattern(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	m = m2.(Model)
	m = eval(t, m, "-1i8")

	if !strings.Contains(m.View(), "0xff") {
		t.Errorf("verbose view should include the raw pattern:\n%s", m.View())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should produce a quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("esc produced %T, want tea.QuitMsg", msg)
	}
}

func TestModelHistoryBounded(t *testing.T) {
	m := newTestModel(t, config.AppConfig{})
	for i := 0; i < maxHistory+10; i++ {
		m = eval(t, m, "1u8")
	}
	if len(m.history) != maxHistory {
		t.Errorf("history length = %d, want %d", len(m.history), maxHistory)
	}
}
