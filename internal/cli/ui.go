package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/lessons/internal/format"
	"github.com/agbru/lessons/internal/orchestration"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 20
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState tracks which lessons have finished and which are running.
type ProgressState struct {
	running  map[int]string
	finished int
	failed   int
	total    int
}

// NewProgressState creates a tracker for total lessons.
func NewProgressState(total int) *ProgressState {
	return &ProgressState{running: make(map[int]string), total: total}
}

// Update records a start or finish event.
func (ps *ProgressState) Update(u orchestration.ProgressUpdate) {
	if !u.Done {
		ps.running[u.Index] = u.Name
		return
	}
	delete(ps.running, u.Index)
	ps.finished++
	if u.Err != nil {
		ps.failed++
	}
}

// Fraction returns the share of finished lessons, between 0 and 1.
func (ps *ProgressState) Fraction() float64 {
	if ps.total == 0 {
		return 0
	}
	return float64(ps.finished) / float64(ps.total)
}

// Suffix renders the spinner text, e.g. " [████░░] 2/10 ownership".
func (ps *ProgressState) Suffix() string {
	suffix := fmt.Sprintf(" [%s] %d/%d", format.ProgressBar(ps.Fraction(), ProgressBarWidth), ps.finished, ps.total)
	// Show the lowest running index, which is the one blocking ordered output.
	current, name := -1, ""
	for idx, n := range ps.running {
		if current == -1 || idx < current {
			current, name = idx, n
		}
	}
	if name != "" {
		suffix += " " + name
	}
	if ps.failed > 0 {
		suffix += fmt.Sprintf(" (%d failed)", ps.failed)
	}
	return suffix
}

// DisplayProgress shows a spinner with a progress bar until progressChan is
// closed. It writes nothing for zero lessons.
//
// Parameters:
//   - wg: Signaled when the display stops.
//   - progressChan: Lesson start and finish events.
//   - numLessons: The number of lessons being executed.
//   - out: Where the spinner is drawn.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numLessons int, out io.Writer) {
	defer wg.Done()
	if numLessons <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressState(numLessons)
	s := newSpinner(spinnerOutput(out))
	s.UpdateSuffix(state.Suffix())
	s.Start()
	defer s.Stop()

	for update := range progressChan {
		state.Update(update)
		s.UpdateSuffix(state.Suffix())
	}
}

// spinnerOutput lets the spinner detect whether a file is a terminal; it
// stays silent otherwise.
func spinnerOutput(out io.Writer) spinner.Option {
	if f, ok := out.(*os.File); ok {
		return spinner.WithWriterFile(f)
	}
	return spinner.WithWriter(out)
}
