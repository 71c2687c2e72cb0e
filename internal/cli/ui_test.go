package cli

import (
	"strings"
	"testing"
	"time"
)

// MockSpinner for testing
type MockSpinner struct {
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffix = suffix
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"Microseconds", 500 * time.Microsecond, "500µs"},
		{"Milliseconds", 250 * time.Millisecond, "250ms"},
		{"Seconds", 2 * time.Second, "2s"},
		{"SubMicrosecond", 900 * time.Nanosecond, "0µs"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatExecutionDuration(tt.d); got != tt.want {
				t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		progress float64
		length   int
		filled   int
	}{
		{"Empty", 0.0, 10, 0},
		{"Half", 0.5, 10, 5},
		{"Full", 1.0, 10, 10},
		{"ClampedHigh", 1.5, 10, 10},
		{"ClampedLow", -0.5, 10, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bar := progressBar(tt.progress, tt.length)
			if got := strings.Count(bar, "█"); got != tt.filled {
				t.Errorf("progressBar(%v, %d) has %d filled cells, want %d",
					tt.progress, tt.length, got, tt.filled)
			}
			if got := len([]rune(bar)); got != tt.length {
				t.Errorf("bar length = %d runes, want %d", got, tt.length)
			}
		})
	}
}
