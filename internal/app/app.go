// Package app wires configuration, lessons, orchestration and the front
// ends together.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/lessons/internal/cli"
	"github.com/agbru/lessons/internal/config"
	apperrors "github.com/agbru/lessons/internal/errors"
	"github.com/agbru/lessons/internal/lessons"
	"github.com/agbru/lessons/internal/logging"
	"github.com/agbru/lessons/internal/metrics"
	"github.com/agbru/lessons/internal/orchestration"
	"github.com/agbru/lessons/internal/sysmon"
	"github.com/agbru/lessons/internal/tui"
	"github.com/agbru/lessons/internal/ui"
)

// Application represents the lessons application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *lessons.Registry
	Metrics   *metrics.Metrics
	Logger    logging.Logger
	ErrWriter io.Writer
	In        io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets a custom lesson registry. The -fib-max and -fahrenheit
// flags only affect the default registry.
func WithRegistry(r *lessons.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithInput sets the reader used by the interactive mode.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	// Lesson names do not depend on options, so the defaults are enough to
	// validate -lesson.
	names := lessons.NewDefaultRegistry(lessons.DefaultOptions()).List()
	if app.Registry != nil {
		names = app.Registry.List()
	}

	programName := "lessons"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, names)
	if err != nil {
		return nil, err
	}

	if app.Registry == nil {
		app.Registry = lessons.NewDefaultRegistry(lessons.Options{Fahrenheit: cfg.Fahrenheit, FibMax: cfg.FibMax})
	}

	app.Config = config.ApplyAdaptiveParallelism(cfg, len(names))
	app.Metrics = metrics.New()
	app.Logger = logging.NewLogger(errWriter, "lessons")
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Validated by ParseConfig.
	level, _ := logging.ParseLevel(a.Config.LogLevel)
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	a.Logger.Debug("configuration loaded",
		logging.String("lesson", a.Config.Lesson),
		logging.Int("parallel", a.Config.Parallel),
		logging.Duration("timeout", a.Config.Timeout))

	start := time.Now()
	a.Logger.Info("run started", logging.String("mode", a.mode()))

	var code int
	switch {
	case a.Config.List:
		return a.runList(out)
	case a.Config.Interactive:
		code = a.runREPL(ctx, out)
	case a.Config.TUI:
		code = a.runTUI(ctx)
	default:
		code = a.runLessons(ctx, out)
	}

	if a.Config.MetricsFile != "" {
		if err := a.Metrics.WriteToTextfile(a.Config.MetricsFile); err != nil {
			err = apperrors.WrapError(err, "writing metrics to %s", a.Config.MetricsFile)
			a.Logger.Error("cannot write metrics", err)
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		}
	}
	a.Logger.Info("run finished",
		logging.Int("exit_code", code),
		logging.Duration("elapsed", time.Since(start)))
	return code
}

// mode names the front end selected by the configuration.
func (a *Application) mode() string {
	switch {
	case a.Config.List:
		return "list"
	case a.Config.Interactive:
		return "interactive"
	case a.Config.TUI:
		return "tui"
	default:
		return "batch"
	}
}

// runList prints the available lessons.
func (a *Application) runList(out io.Writer) int {
	if !a.Config.Quiet {
		fmt.Fprintf(out, "%sAvailable lessons:%s\n", ui.ColorBold(), ui.ColorReset())
	}
	cli.PrintLessonList(out, a.Registry.GetAll())
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(a.Registry, cli.REPLConfig{Timeout: a.Config.Timeout, Observer: a.Metrics})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runTUI launches the interactive lesson browser.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Registry.GetAll(), tui.RunSettings{
		Execution: a.executionOptions(),
		Timeout:   a.Config.Timeout,
		System:    sysmon.Sample,
	}, Version)
}

// runLessons runs the selected lessons once and prints their output.
func (a *Application) runLessons(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	toRun, err := orchestration.SelectLessons(a.Config.Lesson, a.Registry)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := a.ErrWriter
	if a.Config.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	before := metrics.NewMemoryCollector().Snapshot()
	results := orchestration.ExecuteLessons(ctx, toRun, a.executionOptions(), progressReporter, progressOut)

	presenter := cli.CLIResultPresenter{Memory: &before, System: sysmon.Sample}
	return orchestration.AnalyzeResults(results, orchestration.PresentationOptions{
		Quiet:   a.Config.Quiet,
		Verbose: a.Config.Verbose,
	}, presenter, out)
}

func (a *Application) executionOptions() orchestration.ExecutionOptions {
	return orchestration.ExecutionOptions{
		Parallel: a.Config.Parallel,
		Observer: a.Metrics,
		Logger:   a.Logger,
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
