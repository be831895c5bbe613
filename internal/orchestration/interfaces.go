package orchestration

import (
	"io"
	"sync"
	"time"
)

// LessonResult encapsulates the outcome of a single lesson run.
// It serves as the shared domain type between orchestration and presentation layers.
type LessonResult struct {
	// Name is the lesson identifier (e.g., "ownership").
	Name string
	// Title is the human-readable lesson title.
	Title string
	// Output holds everything the lesson printed, even when it failed midway.
	Output []byte
	// Duration is the time taken by the run.
	Duration time.Duration
	// Err is nil on success, otherwise a LessonError wrapping the cause.
	Err error
}

// ProgressUpdate reports a lesson starting (Done false) or finishing.
type ProgressUpdate struct {
	// Index is the position of the lesson in the executed slice.
	Index int
	// Name is the lesson identifier.
	Name string
	// Done is set once the lesson has returned.
	Done bool
	// Err is the outcome of a finished lesson.
	Err error
}

// ProgressReporter defines the interface for displaying execution progress.
// Implementations handle the visual representation (spinners, status
// lines) while the orchestration layer coordinates the runs.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving lesson start and finish events.
	//   - numLessons: The number of lessons being executed.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numLessons int, out io.Writer)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// Quiet prints lesson output only.
	Quiet bool
	// Verbose adds timings to the summary.
	Verbose bool
}

// ResultPresenter defines the interface for presenting lesson results.
type ResultPresenter interface {
	// PresentLesson prints the output of one lesson, preceded by a banner
	// unless quiet.
	PresentLesson(result LessonResult, opts PresentationOptions, out io.Writer)

	// PresentSummary displays the summary table of every run.
	PresentSummary(results []LessonResult, opts PresentationOptions, out io.Writer)

	// HandleError reports a failure and returns the matching exit code.
	HandleError(err error, out io.Writer) int
}

// RunObserver is notified of every finished lesson. *metrics.Metrics
// satisfies it.
type RunObserver interface {
	ObserveRun(lesson string, d time.Duration, err error)
}
