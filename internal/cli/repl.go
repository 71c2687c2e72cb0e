package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/bitcalc/bits"
	"github.com/agbru/bitcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Radixes are the radixes rendered for each conversion.
	Radixes []int
	// MaxFrac is the maximum number of fractional digits for fixed-point
	// values.
	MaxFrac int
	// Verbose adds the raw bit pattern and timing to each result.
	Verbose bool
}

// REPL represents an interactive literal conversion session.
type REPL struct {
	config REPLConfig
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance.
func NewREPL(config REPLConfig) *REPL {
	if len(config.Radixes) == 0 {
		config.Radixes = append([]int(nil), DefaultRadixes...)
	}
	return &REPL{
		config: config,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorSuccess()+"bits> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorError(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorPrimary(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s      %sBitcalc - Interactive Literal Converter%s             %s║%s\n",
		ui.ColorPrimary(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorPrimary(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorPrimary(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sEnter a literal (e.g. 0x1fu16, -123i64, 1.5u8f1, 1010) or a command:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sradix <r...>%s  - Set the output radixes (2 to 36)\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfrac <n>%s      - Set the maximum fractional digits\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverbose%s       - Toggle bit pattern and timing display\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s   - Exit interactive mode\n", ui.ColorWarning(), ui.ColorReset(), ui.ColorWarning(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "radix", "r":
		r.cmdRadix(args)
	case "frac", "f":
		r.cmdFrac(args)
	case "verbose", "v":
		r.cmdVerbose()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorSuccess(), ui.ColorReset())
		return false
	default:
		// Anything else is treated as a literal.
		r.convert(input)
	}

	return true
}

// convert evaluates a literal and displays the result.
func (r *REPL) convert(literal string) {
	c, err := ConvertLiteral(literal, r.config.Radixes, r.config.MaxFrac)
	if err != nil {
		var perr *bits.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintf(r.out, "%sParse error at offset %d: %v%s\n",
				ui.ColorError(), perr.Off, perr, ui.ColorReset())
		} else {
			fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		}
		return
	}
	DisplayConversion(r.out, c, r.config.Verbose)
	fmt.Fprintln(r.out)
}

// cmdRadix handles the "radix" command.
func (r *REPL) cmdRadix(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: radix <r...>%s (e.g. radix 16, radix 2 10 16)\n", ui.ColorError(), ui.ColorReset())
		return
	}

	radixes := make([]int, 0, len(args))
	for _, a := range args {
		radix, err := strconv.Atoi(a)
		if err != nil || radix < 2 || radix > 36 {
			fmt.Fprintf(r.out, "%sInvalid radix: %s%s (must be 2 to 36)\n", ui.ColorError(), a, ui.ColorReset())
			return
		}
		radixes = append(radixes, radix)
	}

	r.config.Radixes = radixes
	fmt.Fprintf(r.out, "Output radixes set to: %s%v%s\n", ui.ColorSuccess(), radixes, ui.ColorReset())
}

// cmdFrac handles the "frac" command.
func (r *REPL) cmdFrac(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: frac <n>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorError(), args[0], ui.ColorReset())
		return
	}

	r.config.MaxFrac = n
	fmt.Fprintf(r.out, "Maximum fractional digits set to: %s%d%s\n", ui.ColorSuccess(), n, ui.ColorReset())
}

// cmdVerbose toggles verbose output mode.
func (r *REPL) cmdVerbose() {
	r.config.Verbose = !r.config.Verbose
	status := "disabled"
	if r.config.Verbose {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Verbose display: %s%s%s\n", ui.ColorSuccess(), status, ui.ColorReset())
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Radixes:   %s%v%s\n", ui.ColorPrimary(), r.config.Radixes, ui.ColorReset())
	fmt.Fprintf(r.out, "  Max frac:  %s%d%s\n", ui.ColorPrimary(), r.config.MaxFrac, ui.ColorReset())
	verboseStatus := "no"
	if r.config.Verbose {
		verboseStatus = "yes"
	}
	fmt.Fprintf(r.out, "  Verbose:   %s%s%s\n", ui.ColorPrimary(), verboseStatus, ui.ColorReset())
	fmt.Fprintln(r.out)
}
