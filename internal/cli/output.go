// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayConversion], [DisplayQuietResult].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteConversionToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bitcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything but the converted value.
	Quiet bool
	// Verbose adds the raw bit pattern and timing details.
	Verbose bool
}

// radixName returns a human label for a radix, falling back to "base N".
func radixName(radix int) string {
	switch radix {
	case 2:
		return "binary"
	case 8:
		return "octal"
	case 10:
		return "decimal"
	case 16:
		return "hexadecimal"
	default:
		return fmt.Sprintf("base %d", radix)
	}
}

// signedness returns "signed" or "unsigned" for display.
func signedness(signed bool) string {
	if signed {
		return "signed"
	}
	return "unsigned"
}

// FormatQuietResult formats a conversion for quiet mode output.
// Returns a single-line result suitable for scripting: the value in the
// first requested radix.
func FormatQuietResult(c *Conversion) string {
	if len(c.Radixes) == 0 {
		return c.Hex
	}
	return c.Forms[c.Radixes[0]]
}

// DisplayQuietResult outputs a conversion in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, c *Conversion) {
	fmt.Fprintln(out, FormatQuietResult(c))
}

// DisplayConversion writes a formatted conversion report to out. In verbose
// mode the raw hexadecimal bit pattern and the evaluation time are included.
func DisplayConversion(out io.Writer, c *Conversion, verbose bool) {
	fmt.Fprintf(out, "%s%s%s  (%s%d-bit %s%s",
		ui.ColorBold(), c.Literal, ui.ColorReset(),
		ui.ColorPrimary(), c.Bw, signedness(c.Signed), ui.ColorReset())
	if c.HasFp {
		fmt.Fprintf(out, ", %sfixed point %d%s", ui.ColorPrimary(), c.Fp, ui.ColorReset())
	}
	fmt.Fprintln(out, ")")

	for _, radix := range c.Radixes {
		fmt.Fprintf(out, "  %s%-12s%s %s%s%s\n",
			ui.ColorSecondary(), radixName(radix), ui.ColorReset(),
			ui.ColorSuccess(), c.Forms[radix], ui.ColorReset())
	}

	if verbose {
		fmt.Fprintf(out, "  %s%-12s%s 0x%s\n", ui.ColorSecondary(), "pattern", ui.ColorReset(), c.Hex)
		fmt.Fprintf(out, "  %s%-12s%s %s\n", ui.ColorSecondary(), "time", ui.ColorReset(),
			FormatExecutionDuration(c.Duration))
	}
}

// WriteConversionToFile writes a conversion result to a file.
// The file starts with a commented header describing the input, followed by
// one line per rendered radix.
func WriteConversionToFile(c *Conversion, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Bitcalc Conversion Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Literal: %s\n", c.Literal)
	fmt.Fprintf(file, "# Bitwidth: %d\n", c.Bw)
	fmt.Fprintf(file, "# Signedness: %s\n", signedness(c.Signed))
	if c.HasFp {
		fmt.Fprintf(file, "# Fixed point: %d\n", c.Fp)
	}
	fmt.Fprintf(file, "# Pattern: 0x%s\n", c.Hex)
	fmt.Fprintf(file, "\n")

	for _, radix := range c.Radixes {
		fmt.Fprintf(file, "%s: %s\n", radixName(radix), c.Forms[radix])
	}

	return nil
}

// DisplayConversionWithConfig displays a conversion with the given output
// configuration. This is a unified function that handles all output modes.
func DisplayConversionWithConfig(out io.Writer, c *Conversion, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, c)
	} else {
		DisplayConversion(out, c, config.Verbose)
	}

	if config.OutputFile != "" {
		if err := WriteConversionToFile(c, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorSuccess(), ui.ColorPrimary(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
