package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/bitcalc/internal/ui"
)

func mustConvert(t *testing.T, literal string, radixes []int) *Conversion {
	t.Helper()
	c, err := ConvertLiteral(literal, radixes, 4)
	if err != nil {
		t.Fatalf("ConvertLiteral(%q) failed: %v", literal, err)
	}
	return c
}

func TestDisplayConversion(t *testing.T) {
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	c := mustConvert(t, "0xffu8", []int{2, 10, 16})

	var buf bytes.Buffer
	DisplayConversion(&buf, c, false)
	out := buf.String()

	for _, want := range []string{"0xffu8", "8-bit unsigned", "binary", "11111111", "decimal", "255", "hexadecimal", "ff"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "pattern") {
		t.Error("non-verbose output should not include the raw pattern")
	}

	buf.Reset()
	DisplayConversion(&buf, c, true)
	if !strings.Contains(buf.String(), "pattern") || !strings.Contains(buf.String(), "time") {
		t.Error("verbose output should include the pattern and timing")
	}
}

func TestDisplayQuietResult(t *testing.T) {
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	c := mustConvert(t, "0x2au8", []int{10, 16})

	var buf bytes.Buffer
	DisplayQuietResult(&buf, c)
	if got := strings.TrimSpace(buf.String()); got != "42" {
		t.Errorf("quiet output = %q, want the first radix form %q", got, "42")
	}
}

func TestWriteConversionToFile(t *testing.T) {
	c := mustConvert(t, "-6.5i8f1", []int{10})

	path := filepath.Join(t.TempDir(), "sub", "result.txt")
	err := WriteConversionToFile(c, OutputConfig{OutputFile: path})
	if err != nil {
		t.Fatalf("WriteConversionToFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading result file: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		"# Literal: -6.5i8f1",
		"# Bitwidth: 8",
		"# Signedness: signed",
		"# Fixed point: 1",
		"decimal: -6.5",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("file missing %q:\n%s", want, content)
		}
	}
}

func TestWriteConversionToFileNoPath(t *testing.T) {
	t.Parallel()
	c := mustConvert(t, "1u1", []int{10})
	if err := WriteConversionToFile(c, OutputConfig{}); err != nil {
		t.Fatalf("empty OutputFile should be a no-op, got %v", err)
	}
}

func TestDisplayConversionWithConfig(t *testing.T) {
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })

	c := mustConvert(t, "7u4", []int{10})
	path := filepath.Join(t.TempDir(), "out.txt")

	var buf bytes.Buffer
	err := DisplayConversionWithConfig(&buf, c, OutputConfig{OutputFile: path})
	if err != nil {
		t.Fatalf("DisplayConversionWithConfig failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Result saved to") {
		t.Error("expected a save confirmation message")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file not created: %v", err)
	}
}

func TestRadixName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		radix int
		want  string
	}{
		{2, "binary"},
		{8, "octal"},
		{10, "decimal"},
		{16, "hexadecimal"},
		{36, "base 36"},
	}
	for _, tt := range tests {
		if got := radixName(tt.radix); got != tt.want {
			t.Errorf("radixName(%d) = %q, want %q", tt.radix, got, tt.want)
		}
	}
}
