package orchestration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/lessons/internal/errors"
	"github.com/agbru/lessons/internal/lessons"
	"github.com/agbru/lessons/internal/logging"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. Each lesson sends two updates, so the channel never blocks a run.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/lessons/internal/orchestration"

// ExecutionOptions tunes ExecuteLessons.
type ExecutionOptions struct {
	// Parallel caps the number of lessons running at once. Values below 1
	// run lessons one at a time.
	Parallel int
	// Observer, when set, records each run (typically *metrics.Metrics).
	Observer RunObserver
	// Logger receives debug diagnostics. Nil disables them.
	Logger logging.Logger
}

// ExecuteLessons orchestrates the execution of the given lessons.
//
// Every lesson writes into its own buffer, so output never interleaves even
// when several lessons run concurrently, and the results keep the order of
// the input slice. A failing lesson does not stop the others; a canceled
// context makes the lessons that have not started yet fail immediately.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - toRun: The lessons to execute.
//   - opts: Concurrency limit and observers.
//   - progressReporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress display.
//
// Returns:
//   - []LessonResult: One result per lesson, in input order.
func ExecuteLessons(ctx context.Context, toRun []lessons.Lesson, opts ExecutionOptions, progressReporter ProgressReporter, out io.Writer) []LessonResult {
	results := make([]LessonResult, len(toRun))
	progressChan := make(chan ProgressUpdate, len(toRun)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(toRun), out)

	limit := opts.Parallel
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)

	tracer := otel.Tracer(tracerName)
	for i, l := range toRun {
		idx, lesson := i, l
		g.Go(func() error {
			progressChan <- ProgressUpdate{Index: idx, Name: lesson.Name()}
			results[idx] = runLesson(ctx, tracer, lesson, opts)
			progressChan <- ProgressUpdate{Index: idx, Name: lesson.Name(), Done: true, Err: results[idx].Err}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runLesson(ctx context.Context, tr trace.Tracer, lesson lessons.Lesson, opts ExecutionOptions) (result LessonResult) {
	name := lesson.Name()
	ctx, span := tr.Start(ctx, "lesson.run")
	span.SetAttributes(attribute.String("lesson.name", name))
	defer span.End()

	var buf bytes.Buffer
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result.Err = apperrors.LessonError{Lesson: name, Cause: fmt.Errorf("panic: %v", r)}
		}
		result.Name, result.Title = name, lesson.Title()
		result.Output = buf.Bytes()
		result.Duration = time.Since(start)

		if result.Err != nil {
			span.RecordError(result.Err)
			span.SetStatus(codes.Error, result.Err.Error())
		}
		if opts.Observer != nil {
			opts.Observer.ObserveRun(name, result.Duration, result.Err)
		}
		if opts.Logger != nil {
			fields := []logging.Field{
				logging.String("lesson", name),
				logging.Duration("duration", result.Duration),
				logging.Int("bytes", buf.Len()),
			}
			if result.Err != nil {
				opts.Logger.Warn("lesson failed", append(fields, logging.Err(result.Err))...)
			} else {
				opts.Logger.Debug("lesson finished", fields...)
			}
		}
	}()

	if err := lesson.Run(ctx, &buf); err != nil {
		result.Err = apperrors.LessonError{Lesson: name, Cause: err}
	}
	return result
}
