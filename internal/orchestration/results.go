package orchestration

import (
	"io"

	apperrors "github.com/agbru/lessons/internal/errors"
)

// AnalyzeResults presents every lesson output in execution order, then the
// summary table, and derives the process exit code.
//
// Parameters:
//   - results: The results returned by ExecuteLessons.
//   - opts: Presentation switches.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: ExitSuccess, or the code of the first failed lesson.
func AnalyzeResults(results []LessonResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	var firstError error
	for _, res := range results {
		presenter.PresentLesson(res, opts, out)
		if res.Err != nil && firstError == nil {
			firstError = res.Err
		}
	}

	if !opts.Quiet {
		presenter.PresentSummary(results, opts, out)
	}

	if firstError != nil {
		return presenter.HandleError(firstError, out)
	}
	return apperrors.ExitSuccess
}
