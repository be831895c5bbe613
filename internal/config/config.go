// Package config defines the runner configuration and parses it from
// command-line flags with environment variable overrides.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/lessons/internal/errors"
	"github.com/agbru/lessons/internal/logging"
)

const (
	// EnvPrefix is prepended to every environment override key.
	EnvPrefix = "LESSONS_"

	// AllLessons selects every registered lesson.
	AllLessons = "all"

	// DefaultTimeout bounds a whole batch run.
	DefaultTimeout = 30 * time.Second
	// DefaultFibMax is the last index printed by the branches lesson.
	DefaultFibMax = 12
	// DefaultFahrenheit is the temperature converted by the branches lesson.
	DefaultFahrenheit = 50
	// DefaultLogLevel keeps diagnostics quiet unless asked for.
	DefaultLogLevel = "warn"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Lesson is the lesson to run, or AllLessons.
	Lesson string
	// List prints the available lessons and exits.
	List bool
	// Quiet suppresses banners and the summary table.
	Quiet bool
	// Verbose adds timings and memory statistics to the summary.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Parallel is the maximum number of lessons running at once. Zero asks
	// ApplyAdaptiveParallelism to pick a value.
	Parallel int
	// TUI launches the interactive lesson browser.
	TUI bool
	// Interactive launches the REPL.
	Interactive bool
	// FibMax is the last Fibonacci index printed by the branches lesson.
	FibMax int
	// Fahrenheit is the temperature converted by the branches lesson.
	Fahrenheit int
	// MetricsFile, when set, receives a Prometheus text-format snapshot.
	MetricsFile string
	// LogLevel is the zerolog level name for diagnostics.
	LogLevel string
}

// Validate checks the semantic validity of the configuration parameters.
//
// Parameters:
//   - availableLessons: The registered lesson names.
//
// Returns:
//   - error: A ConfigError if any parameter is invalid, nil otherwise.
func (c AppConfig) Validate(availableLessons []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive, got %s", c.Timeout)
	}
	if c.Parallel < 0 {
		return apperrors.NewConfigError("parallel value must be non-negative, got %d", c.Parallel)
	}
	if c.FibMax < 0 {
		return apperrors.NewConfigError("fib-max value must be non-negative, got %d", c.FibMax)
	}
	if c.TUI && c.Interactive {
		return apperrors.NewConfigError("--tui and --interactive cannot be combined")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Lesson != AllLessons && !slices.Contains(availableLessons, c.Lesson) {
		return apperrors.NewConfigError("unknown lesson %q (available: %s, %s)",
			c.Lesson, AllLessons, strings.Join(availableLessons, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments, applies environment
// overrides for flags that were not set explicitly, and validates the result.
//
// Parameters:
//   - programName: The program name used in usage messages.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Destination for usage and parse errors.
//   - availableLessons: The registered lesson names.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when -h was given, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableLessons []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags]\n\nRuns Go fundamentals lessons and prints their output.\n\nFlags:\n", programName)
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nLessons: %s, %s\n", AllLessons, strings.Join(availableLessons, ", "))
	}

	config := AppConfig{}
	fs.StringVar(&config.Lesson, "lesson", AllLessons, "Lesson to run ('all' or a lesson name).")
	fs.BoolVar(&config.List, "list", false, "List the available lessons and exit.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print lesson output only.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show timings and memory statistics.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration for the whole run.")
	fs.IntVar(&config.Parallel, "parallel", 1, "Maximum number of lessons running at once (0 = based on CPU count).")
	fs.BoolVar(&config.TUI, "tui", false, "Launch the interactive lesson browser.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start an interactive session.")
	fs.BoolVar(&config.Interactive, "i", false, "Shorthand for -interactive.")
	fs.IntVar(&config.FibMax, "fib-max", DefaultFibMax, "Last Fibonacci index printed by the branches lesson.")
	fs.IntVar(&config.Fahrenheit, "fahrenheit", DefaultFahrenheit, "Temperature converted by the branches lesson.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write a Prometheus metrics snapshot to this file.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level (debug, info, warn, error, disabled).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)
	config.Lesson = strings.ToLower(strings.TrimSpace(config.Lesson))

	if err := config.Validate(availableLessons); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
