// Package tui implements the full-screen interactive converter built on
// bubbletea. It wraps the cli conversion logic in a textinput-driven
// session with history recall.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bitcalc/bits"
	"github.com/agbru/bitcalc/internal/cli"
	"github.com/agbru/bitcalc/internal/config"
	apperrors "github.com/agbru/bitcalc/internal/errors"
)

// entry is one evaluated literal in the session history.
type entry struct {
	literal string
	conv    *cli.Conversion
	err     error
}

// resultMsg carries an evaluation result back into the update loop.
type resultMsg entry

// maxHistory bounds the number of retained entries.
const maxHistory = 100

// Model is the root bubbletea model for the interactive converter.
type Model struct {
	input   textinput.Model
	history []entry
	keymap  KeyMap

	config   config.AppConfig
	version  string
	radixes  []int
	verbose  bool
	histPos  int
	width    int
	height   int
	exitCode int
}

// NewModel creates a new interactive converter model.
func NewModel(cfg config.AppConfig, version string) Model {
	ti := textinput.New()
	ti.Placeholder = "literal, e.g. 0x1fu16, -123i64, 1.5u8f1"
	ti.Prompt = "bits> "
	ti.Focus()
	ti.CharLimit = 256

	radixes := []int{cfg.Radix}
	if cfg.AllRadixes {
		radixes = append([]int(nil), cli.DefaultRadixes...)
	}

	return Model{
		input:    ti,
		keymap:   DefaultKeyMap(),
		config:   cfg,
		version:  version,
		radixes:  radixes,
		verbose:  cfg.Verbose,
		histPos:  -1,
		exitCode: apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 2
		return m, nil

	case resultMsg:
		m.history = append(m.history, entry(msg))
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
		m.histPos = -1
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Clear):
		m.history = nil
		m.histPos = -1
		return m, nil

	case key.Matches(msg, m.keymap.Verbose):
		m.verbose = !m.verbose
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		if len(m.history) == 0 {
			return m, nil
		}
		if m.histPos < 0 {
			m.histPos = len(m.history) - 1
		} else if m.histPos > 0 {
			m.histPos--
		}
		m.input.SetValue(m.history[m.histPos].literal)
		m.input.CursorEnd()
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.histPos < 0 {
			return m, nil
		}
		m.histPos++
		if m.histPos >= len(m.history) {
			m.histPos = -1
			m.input.SetValue("")
		} else {
			m.input.SetValue(m.history[m.histPos].literal)
			m.input.CursorEnd()
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		literal := strings.TrimSpace(m.input.Value())
		if literal == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, evaluateCmd(literal, m.radixes, m.config.MaxFrac)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evaluateCmd converts a literal off the UI thread.
func evaluateCmd(literal string, radixes []int, maxFrac int) tea.Cmd {
	return func() tea.Msg {
		conv, err := cli.ConvertLiteral(literal, radixes, maxFrac)
		return resultMsg{literal: literal, conv: conv, err: err}
	}
}

// View renders the converter: title, scrollback of results, input, footer.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Bitcalc"))
	b.WriteString(" ")
	b.WriteString(versionStyle.Render(m.version + " interactive converter"))
	b.WriteString("\n\n")

	visible := m.history
	if max := m.visibleEntries(); len(visible) > max {
		visible = visible[len(visible)-max:]
	}
	for _, e := range visible {
		b.WriteString(m.renderEntry(e))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// visibleEntries estimates how many history entries fit in the window.
func (m Model) visibleEntries() int {
	if m.height == 0 {
		return 5
	}
	perEntry := len(m.radixes) + 2
	if m.verbose {
		perEntry++
	}
	n := (m.height - 5) / perEntry
	if n < 1 {
		n = 1
	}
	return n
}

// renderEntry renders one history entry as a bordered block.
func (m Model) renderEntry(e entry) string {
	if e.err != nil {
		msg := e.err.Error()
		var perr *bits.ParseError
		if errors.As(e.err, &perr) {
			msg = fmt.Sprintf("%s\n%s^ %v", e.literal, strings.Repeat(" ", perr.Off), perr)
		}
		return panelStyle.Render(errorStyle.Render(msg))
	}

	c := e.conv
	var b strings.Builder
	b.WriteString(literalStyle.Render(c.Literal))
	meta := fmt.Sprintf("  %d-bit", c.Bw)
	if c.Signed {
		meta += " signed"
	} else {
		meta += " unsigned"
	}
	if c.HasFp {
		meta += fmt.Sprintf(", fixed point %d", c.Fp)
	}
	b.WriteString(metaStyle.Render(meta))

	for _, radix := range c.Radixes {
		b.WriteString("\n")
		b.WriteString(radixLabelStyle.Render(fmt.Sprintf("%8s ", radixLabel(radix))))
		b.WriteString(valueStyle.Render(c.Forms[radix]))
	}
	if m.verbose {
		b.WriteString("\n")
		b.WriteString(radixLabelStyle.Render(" pattern "))
		b.WriteString(metaStyle.Render("0x" + c.Hex))
	}
	return panelStyle.Render(b.String())
}

// radixLabel returns the short label used in the results panel.
func radixLabel(radix int) string {
	switch radix {
	case 2:
		return "bin"
	case 8:
		return "oct"
	case 10:
		return "dec"
	case 16:
		return "hex"
	default:
		return fmt.Sprintf("base%d", radix)
	}
}

// renderFooter renders the key help line.
func (m Model) renderFooter() string {
	pairs := []struct{ k, d string }{
		{"enter", "convert"},
		{"↑/↓", "history"},
		{"ctrl+v", "verbose"},
		{"ctrl+l", "clear"},
		{"esc", "quit"},
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = footerKeyStyle.Render(p.k) + " " + footerDescStyle.Render(p.d)
	}
	return strings.Join(parts, footerDescStyle.Render("  •  "))
}

// Run is the public entry point for the interactive mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(cfg, version)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		if apperrors.IsContextError(err) || errors.Is(err, tea.ErrProgramKilled) {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}
