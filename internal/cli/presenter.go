package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/lessons/internal/errors"
	"github.com/agbru/lessons/internal/format"
	"github.com/agbru/lessons/internal/lessons"
	"github.com/agbru/lessons/internal/metrics"
	"github.com/agbru/lessons/internal/orchestration"
	"github.com/agbru/lessons/internal/sysmon"
	"github.com/agbru/lessons/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar while lessons run.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numLessons int, out io.Writer) {
	DisplayProgress(wg, progressChan, numLessons, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for lesson results in the
// command-line interface.
type CLIResultPresenter struct {
	// Memory, when set, is the snapshot taken before the run; verbose
	// summaries then report memory statistics relative to it.
	Memory *metrics.MemorySnapshot
	// System, when set, is sampled for verbose summaries.
	System sysmon.Sampler
}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentLesson prints a banner with the lesson title, then its output.
// Quiet mode prints the raw output only.
func (CLIResultPresenter) PresentLesson(result orchestration.LessonResult, opts orchestration.PresentationOptions, out io.Writer) {
	if !opts.Quiet {
		fmt.Fprintf(out, "\n%s=== %s%s %s(%s)%s\n",
			ui.ColorBold(), result.Name, ui.ColorReset(),
			ui.ColorGrey(), result.Title, ui.ColorReset())
	}
	out.Write(result.Output)
	if result.Err != nil && !opts.Quiet {
		fmt.Fprintf(out, "%s!!! %v%s\n", ui.ColorRed(), result.Err, ui.ColorReset())
	}
}

// PresentSummary displays the summary table with lesson names, durations,
// and status in a formatted tabular layout. Uses manual padding to
// correctly handle ANSI color codes.
func (p CLIResultPresenter) PresentSummary(results []orchestration.LessonResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n--- Summary ---\n")

	maxNameLen := len("Lesson")
	maxDurationLen := len("Duration")
	var total time.Duration
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(displayDuration(res.Duration)))
		total += res.Duration
	}

	fmt.Fprintf(out, "%s%s%s   %s%s%s   %sStatus%s\n",
		ui.ColorUnderline(), format.PadRight("Lesson", maxNameLen), ui.ColorReset(),
		ui.ColorUnderline(), format.PadRight("Duration", maxDurationLen), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	succeeded := 0
	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), rootCause(res.Err), ui.ColorReset())
		} else {
			succeeded++
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s   %s%s%s   %s\n",
			ui.ColorBlue(), format.PadRight(res.Name, maxNameLen), ui.ColorReset(),
			ui.ColorYellow(), format.PadRight(displayDuration(res.Duration), maxDurationLen), ui.ColorReset(),
			status)
	}

	fmt.Fprintf(out, "\n%d/%d lessons succeeded", succeeded, len(results))
	if opts.Verbose {
		fmt.Fprintf(out, " in %s", format.FormatExecutionDuration(total))
	}
	fmt.Fprintln(out)

	if opts.Verbose && p.Memory != nil {
		after := metrics.NewMemoryCollector().Snapshot()
		DisplayMemoryStats(after, after.AllocatedSince(*p.Memory), out)
	}
	if opts.Verbose && p.System != nil {
		fmt.Fprintf(out, "System: %s\n", p.System(context.Background()))
	}
}

// HandleError prints the failure with its category and returns the exit
// code derived from it.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	code := apperrors.ExitCodeFor(err)
	var msg string
	switch {
	case code == apperrors.ExitErrorTimeout:
		msg = "Status: Failure (Timeout). The run exceeded its time limit."
	case apperrors.IsContextError(err):
		msg = "Status: Canceled."
	default:
		msg = fmt.Sprintf("Status: Failure. %v", err)
	}
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorRed(), msg, ui.ColorReset())
	return code
}

// DisplayMemoryStats shows memory statistics after a run.
func DisplayMemoryStats(snap metrics.MemorySnapshot, allocated uint64, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Allocated (run): %s\n", format.FormatBytes(allocated))
	fmt.Fprintf(out, "  Heap objects:    %d\n", snap.HeapObjects)
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.NumGC)
}

// PrintLessonList writes every lesson name with its title.
func PrintLessonList(out io.Writer, all []lessons.Lesson) {
	width := 0
	for _, l := range all {
		width = max(width, len(l.Name()))
	}
	for _, l := range all {
		fmt.Fprintf(out, "  %s%s%s  %s\n", ui.ColorYellow(), format.PadRight(l.Name(), width), ui.ColorReset(), l.Title())
	}
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// rootCause strips the LessonError wrapper, the lesson name already being
// in the row.
func rootCause(err error) error {
	var lessonErr apperrors.LessonError
	if errors.As(err, &lessonErr) {
		return lessonErr.Cause
	}
	return err
}
