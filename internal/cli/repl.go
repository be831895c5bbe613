// Package cli provides the terminal front end: progress spinner, result
// presenter and the interactive REPL.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/lessons/internal/arith"
	apperrors "github.com/agbru/lessons/internal/errors"
	"github.com/agbru/lessons/internal/lessons"
	"github.com/agbru/lessons/internal/orchestration"
	"github.com/agbru/lessons/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration of each command.
	Timeout time.Duration
	// Observer, when set, records every lesson run.
	Observer orchestration.RunObserver
}

// REPL represents an interactive lessons session.
type REPL struct {
	config   REPLConfig
	registry *lessons.Registry
	in       io.Reader
	out      io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - registry: The lessons available to the run command.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(registry *lessons.Registry, config REPLConfig) *REPL {
	return &REPL{
		config:   config,
		registry: registry,
		in:       os.Stdin,
		out:      os.Stdout,
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

// Start begins the interactive session. It reads commands until the user
// exits, the input ends, or ctx is canceled.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"lessons> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(ctx, input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sGo Fundamentals Lessons - Interactive Mode%s   %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srun <lesson>%s  - Run a lesson ('all' runs every lesson)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s          - List available lessons\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sc2f <f>%s       - Convert Fahrenheit to Celsius\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfib <n>%s       - Compute the nth Fibonacci term\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sseq <max>%s     - Print Fibonacci terms 1 to max\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "run", "r":
		r.cmdRun(ctx, args)
	case "list", "ls":
		r.cmdList()
	case "c2f":
		r.cmdC2F(args)
	case "fib":
		r.cmdFib(args)
	case "seq":
		r.cmdSeq(args)
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// A bare lesson name runs it.
		if _, err := r.registry.Get(cmd); err == nil {
			r.cmdRun(ctx, []string{cmd})
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// cmdRun handles the "run" command.
func (r *REPL) cmdRun(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: run <lesson>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	toRun, err := orchestration.SelectLessons(strings.ToLower(args[0]), r.registry)
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	results := orchestration.ExecuteLessons(ctx, toRun,
		orchestration.ExecutionOptions{Parallel: 1, Observer: r.config.Observer},
		orchestration.NullProgressReporter{}, r.out)

	presenter := CLIResultPresenter{}
	for _, res := range results {
		presenter.PresentLesson(res, orchestration.PresentationOptions{}, r.out)
		fmt.Fprintf(r.out, "%s(%s)%s\n", ui.ColorGrey(), displayDuration(res.Duration), ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable lessons:%s\n", ui.ColorBold(), ui.ColorReset())
	PrintLessonList(r.out, r.registry.GetAll())
	fmt.Fprintln(r.out)
}

// cmdC2F handles the "c2f" command.
func (r *REPL) cmdC2F(args []string) {
	f, ok := r.parseInt32("c2f", "fahrenheit", args)
	if !ok {
		return
	}
	c, err := arith.FahrenheitToCelsius(f)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%d°F is %s%d°C%s\n", f, ui.ColorGreen(), c, ui.ColorReset())
}

// cmdFib handles the "fib" command.
func (r *REPL) cmdFib(args []string) {
	n, ok := r.parseInt32("fib", "n", args)
	if !ok {
		return
	}
	v, err := arith.FibonacciTerm(n, nil)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "term(%d) = %s%d%s\n", n, ui.ColorGreen(), v, ui.ColorReset())
}

// cmdSeq handles the "seq" command.
func (r *REPL) cmdSeq(args []string) {
	last, ok := r.parseInt32("seq", "max", args)
	if !ok {
		return
	}
	var strs []string
	collect := arith.TermSinkFunc(func(_, v int32) { strs = append(strs, strconv.FormatInt(int64(v), 10)) })
	_, err := arith.FibonacciSequence(last, collect)
	if len(strs) > 0 {
		fmt.Fprintln(r.out, strings.Join(strs, " "))
	}
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
}

// parseInt32 reads the single integer argument of a command.
func (r *REPL) parseInt32(cmd, field string, args []string) (int32, bool) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: %s <%s>%s\n", ui.ColorRed(), cmd, field, ui.ColorReset())
		return 0, false
	}
	v, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		verr := apperrors.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a 32-bit integer", args[0])}
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), verr, ui.ColorReset())
		return 0, false
	}
	return int32(v), true
}
