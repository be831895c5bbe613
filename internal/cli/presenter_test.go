package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/lessons/internal/errors"
	"github.com/agbru/lessons/internal/lessons"
	"github.com/agbru/lessons/internal/metrics"
	"github.com/agbru/lessons/internal/orchestration"
	"github.com/agbru/lessons/internal/sysmon"
)

func TestPresentLesson(t *testing.T) {
	t.Parallel()
	res := orchestration.LessonResult{Name: "variables", Title: "Variables", Output: []byte("x = 5\n")}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentLesson(res, orchestration.PresentationOptions{}, &buf)
	if got := buf.String(); got != "\n=== variables (Variables)\nx = 5\n" {
		t.Errorf("PresentLesson() = %q", got)
	}

	buf.Reset()
	CLIResultPresenter{}.PresentLesson(res, orchestration.PresentationOptions{Quiet: true}, &buf)
	if got := buf.String(); got != "x = 5\n" {
		t.Errorf("quiet PresentLesson() = %q, want raw output", got)
	}

	buf.Reset()
	res.Err = apperrors.LessonError{Lesson: "variables", Cause: errors.New("boom")}
	CLIResultPresenter{}.PresentLesson(res, orchestration.PresentationOptions{}, &buf)
	if !strings.Contains(buf.String(), `!!! lesson "variables": boom`) {
		t.Errorf("failed lesson should report its error, got %q", buf.String())
	}
}

func fixedSystem(context.Context) sysmon.Stats {
	return sysmon.Stats{CPUPercent: 10, MemPercent: 20.5}
}

func TestPresentSummary(t *testing.T) {
	t.Parallel()
	results := []orchestration.LessonResult{
		{Name: "branches", Duration: 2 * time.Millisecond},
		{Name: "playing-with-structs", Duration: 0, Err: apperrors.LessonError{Lesson: "playing-with-structs", Cause: errors.New("boom")}},
	}

	var buf bytes.Buffer
	before := metrics.NewMemoryCollector().Snapshot()
	presenter := CLIResultPresenter{Memory: &before, System: fixedSystem}
	presenter.PresentSummary(results, orchestration.PresentationOptions{Verbose: true}, &buf)
	out := buf.String()

	for _, want := range []string{
		"--- Summary ---",
		"Lesson                 Duration   Status",
		"branches               2ms        ✅ Success",
		"playing-with-structs   < 1µs      ❌ Failure (boom)",
		"1/2 lessons succeeded in 2ms",
		"Memory Stats:",
		"GC cycles:",
		"System: CPU 10.0% MEM 20.5%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary should contain %q, got:\n%s", want, out)
		}
	}
}

func TestPresentSummary_NotVerbose(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	CLIResultPresenter{System: fixedSystem}.PresentSummary([]orchestration.LessonResult{{Name: "a"}}, orchestration.PresentationOptions{}, &buf)
	if !strings.Contains(buf.String(), "1/1 lessons succeeded\n") || strings.Contains(buf.String(), "Memory") || strings.Contains(buf.String(), "System") {
		t.Errorf("unexpected summary:\n%s", buf.String())
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{apperrors.LessonError{Lesson: "a", Cause: errors.New("bad")}, apperrors.ExitErrorLesson, `Failure. lesson "a": bad`},
		{apperrors.LessonError{Lesson: "a", Cause: context.DeadlineExceeded}, apperrors.ExitErrorTimeout, "Timeout"},
		{context.Canceled, apperrors.ExitErrorCanceled, "Canceled"},
		{errors.New("other"), apperrors.ExitErrorGeneric, "Failure. other"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if code := (CLIResultPresenter{}).HandleError(tt.err, &buf); code != tt.wantCode {
			t.Errorf("HandleError(%v) = %d, want %d", tt.err, code, tt.wantCode)
		}
		if !strings.Contains(buf.String(), tt.wantMsg) {
			t.Errorf("HandleError(%v) printed %q, want %q", tt.err, buf.String(), tt.wantMsg)
		}
	}
}

func TestPrintLessonList(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintLessonList(&buf, lessons.NewDefaultRegistry(lessons.DefaultOptions()).GetAll())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "  branches              Control flow") {
		t.Errorf("first line = %q", lines[0])
	}
}
