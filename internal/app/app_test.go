package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	apperrors "github.com/agbru/bitcalc/internal/errors"
)

func TestNewParsesArguments(t *testing.T) {
	var errBuf bytes.Buffer
	a, err := New([]string{"bitcalc", "-radix", "16", "0xffu8"}, &errBuf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Config.Literal != "0xffu8" {
		t.Errorf("Literal = %q, want %q", a.Config.Literal, "0xffu8")
	}
	if a.Config.Radix != 16 {
		t.Errorf("Radix = %d, want 16", a.Config.Radix)
	}
	if a.Config.Workers == 0 {
		t.Error("adaptive defaults should fill the worker count")
	}
}

func TestNewRejectsBadFlags(t *testing.T) {
	var errBuf bytes.Buffer
	if _, err := New([]string{"bitcalc", "-radix", "99", "1u8"}, &errBuf); err == nil {
		t.Fatal("radix 99 should be rejected")
	}
}

func TestNewHelpError(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"bitcalc", "-h"}, &errBuf)
	if err == nil || !IsHelpError(err) {
		t.Fatalf("expected a help error, got %v", err)
	}
}

func TestRunConvert(t *testing.T) {
	var errBuf, out bytes.Buffer
	a, err := New([]string{"bitcalc", "-no-color", "-q", "0x2au8"}, &errBuf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, apperrors.ExitSuccess, errBuf.String())
	}
	if got := strings.TrimSpace(out.String()); got != "42" {
		t.Errorf("quiet output = %q, want %q", got, "42")
	}
}

func TestRunConvertParseError(t *testing.T) {
	var errBuf, out bytes.Buffer
	a, err := New([]string{"bitcalc", "-no-color", "12x34u8"}, &errBuf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitErrorParse {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitErrorParse)
	}
	if !strings.Contains(errBuf.String(), "^") {
		t.Errorf("error output should point at the offending character:\n%s", errBuf.String())
	}
}

func TestRunStressMode(t *testing.T) {
	var errBuf, out bytes.Buffer
	a, err := New([]string{"bitcalc", "-no-color", "-q",
		"-stress", "-stress-width", "64", "-stress-rounds", "50", "-workers", "2"}, &errBuf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	code := a.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, apperrors.ExitSuccess, errBuf.String())
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"-version"}, true},
		{[]string{"--version"}, true},
		{[]string{"1u8"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.Contains(buf.String(), "bitcalc") || !strings.Contains(buf.String(), Version) {
		t.Errorf("version banner = %q", buf.String())
	}
}
