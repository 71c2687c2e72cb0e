// Package config defines the application configuration and its resolution
// chain: CLI flags take priority over environment variables, which take
// priority over built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/bitcalc/internal/errors"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "BITCALC_"

// Default configuration values.
const (
	DefaultRadix   = 10
	DefaultMaxFrac = 8
	DefaultTimeout = 5 * time.Minute
	DefaultAddr    = ":8080"
	// DefaultStressWidth is the bitwidth exercised by the stress mode.
	DefaultStressWidth = 4096
	// DefaultStressRounds is the number of random rounds per stress worker.
	DefaultStressRounds = 10000
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// Literal is the literal to convert in one-shot mode.
	Literal string
	// Radix is the output radix for one-shot conversion (2 to 36).
	Radix int
	// MaxFrac is the number of fraction digits shown for fixed-point values.
	MaxFrac int
	// AllRadixes displays the binary, octal, decimal and hexadecimal forms.
	AllRadixes bool
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Quiet suppresses everything but the converted value.
	Quiet bool
	// Verbose enables debug-level logging.
	Verbose bool
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Interactive starts the terminal UI instead of a one-shot conversion.
	Interactive bool
	// Serve starts the HTTP conversion API.
	Serve bool
	// Addr is the listen address for the HTTP API.
	Addr string
	// Stress runs the randomized self-check workload.
	Stress bool
	// StressWidth is the bitwidth used by the stress workload.
	StressWidth uint
	// StressRounds is the number of rounds each stress worker runs.
	StressRounds int
	// Workers is the stress worker count; 0 selects a hardware default.
	Workers int
	// NoColor disables colored terminal output.
	NoColor bool
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment variable overrides for flags that were not set explicitly.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		Radix:        DefaultRadix,
		MaxFrac:      DefaultMaxFrac,
		Timeout:      DefaultTimeout,
		Addr:         DefaultAddr,
		StressWidth:  DefaultStressWidth,
		StressRounds: DefaultStressRounds,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.IntVar(&cfg.Radix, "radix", cfg.Radix, "output radix (2..36)")
	fs.IntVar(&cfg.MaxFrac, "max-frac", cfg.MaxFrac, "fraction digits for fixed-point output")
	fs.BoolVar(&cfg.AllRadixes, "all", false, "show binary, octal, decimal and hexadecimal forms")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "global timeout")
	fs.BoolVar(&cfg.Quiet, "q", false, "print only the converted value")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print only the converted value")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable debug logging")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.StringVar(&cfg.OutputFile, "o", "", "write the result to a file")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the result to a file")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "start the interactive terminal UI")
	fs.BoolVar(&cfg.Serve, "serve", false, "start the HTTP conversion API")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.BoolVar(&cfg.Stress, "stress", false, "run the randomized self-check workload")
	fs.UintVar(&cfg.StressWidth, "stress-width", cfg.StressWidth, "bitwidth for the stress workload")
	fs.IntVar(&cfg.StressRounds, "stress-rounds", cfg.StressRounds, "total self-check rounds for the stress workload")
	fs.IntVar(&cfg.Workers, "workers", 0, "stress worker count (0 = auto)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] [literal]\n\n", programName)
		fmt.Fprintf(errWriter, "Converts arbitrary-width integer and fixed-point literals such as\n")
		fmt.Fprintf(errWriter, "0xffu8, -123i64, 1010 or 0.5u16f8 between radixes.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	applyEnvOverrides(&cfg, fs)

	if fs.NArg() > 1 {
		return cfg, apperrors.NewConfigError("expected at most one literal, got %d arguments", fs.NArg())
	}
	if fs.NArg() == 1 {
		cfg.Literal = fs.Arg(0)
	}

	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ValidateConfig checks cross-field constraints that the flag package cannot
// express.
func ValidateConfig(cfg AppConfig) error {
	if cfg.Radix < 2 || cfg.Radix > 36 {
		return apperrors.NewConfigError("radix must be in [2,36], got %d", cfg.Radix)
	}
	if cfg.MaxFrac < 0 {
		return apperrors.NewConfigError("max-frac must be non-negative, got %d", cfg.MaxFrac)
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.Workers < 0 {
		return apperrors.NewConfigError("workers must be non-negative, got %d", cfg.Workers)
	}
	if cfg.Stress {
		if cfg.StressWidth == 0 {
			return apperrors.NewConfigError("stress-width must be positive")
		}
		if cfg.StressRounds <= 0 {
			return apperrors.NewConfigError("stress-rounds must be positive, got %d", cfg.StressRounds)
		}
	}
	if !cfg.Stress && !cfg.Serve && !cfg.Interactive && cfg.Literal == "" {
		return apperrors.NewConfigError("no literal given; pass one or use -interactive, -serve or -stress")
	}
	return nil
}
