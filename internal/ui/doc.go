// Package ui provides theme and color support for the converter's user
// interface. It defines ANSI color schemes shared by the CLI output layer and
// the REPL, plus the lipgloss palette consumed by the interactive TUI.
//
// Themes are process-global and selected once at startup. The "none" theme
// disables all escape codes for plain terminals and piped output.
package ui
