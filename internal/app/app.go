// Package app wires configuration, logging and the execution modes into a
// runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/bitcalc/bits"
	"github.com/agbru/bitcalc/internal/cli"
	"github.com/agbru/bitcalc/internal/config"
	apperrors "github.com/agbru/bitcalc/internal/errors"
	"github.com/agbru/bitcalc/internal/logging"
	"github.com/agbru/bitcalc/internal/server"
	"github.com/agbru/bitcalc/internal/tui"
	"github.com/agbru/bitcalc/internal/ui"
)

// Application represents the bitcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "bitcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	cfg = config.ApplyAdaptiveDefaults(cfg)

	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.Interactive:
		return a.runInteractive(ctx)
	case a.Config.Serve:
		return a.runServe(ctx)
	case a.Config.Stress:
		return a.runStress(ctx, out)
	default:
		return a.runConvert(ctx, out)
	}
}

// radixes resolves the output radixes from the configuration.
func (a *Application) radixes() []int {
	if a.Config.AllRadixes {
		return cli.DefaultRadixes
	}
	return []int{a.Config.Radix}
}

// runConvert evaluates the positional literal and prints its renderings.
func (a *Application) runConvert(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	if err := ctx.Err(); err != nil {
		return apperrors.ExitErrorCanceled
	}

	c, err := cli.ConvertLiteral(a.Config.Literal, a.radixes(), a.Config.MaxFrac)
	if err != nil {
		a.reportConvertError(err)
		return apperrors.ExitErrorParse
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayConversionWithConfig(out, c, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// reportConvertError prints a parse failure, pointing at the offending
// character when the offset is known.
func (a *Application) reportConvertError(err error) {
	var perr *bits.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(a.ErrWriter, "%s%s%s\n", ui.ColorBold(), a.Config.Literal, ui.ColorReset())
		fmt.Fprintf(a.ErrWriter, "%s%s^ %v%s\n",
			strings.Repeat(" ", perr.Off), ui.ColorError(), perr, ui.ColorReset())
		return
	}
	fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorError(), err, ui.ColorReset())
}

// runInteractive launches the full-screen interactive converter.
func (a *Application) runInteractive(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Config, Version)
}

// runServe starts the HTTP API and blocks until shutdown.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewLogger(a.ErrWriter, "server")
	srv := server.New(a.Config, logger, Version)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runStress executes the concurrent self-check mode.
func (a *Application) runStress(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewLogger(a.ErrWriter, "stress")
	cfg := cli.StressConfig{
		Width:   a.Config.StressWidth,
		Rounds:  a.Config.StressRounds,
		Workers: a.Config.Workers,
		Quiet:   a.Config.Quiet,
	}
	if err := cli.RunStress(ctx, cfg, logger, out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.ExitErrorTimeout
		}
		if apperrors.IsContextError(err) {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
