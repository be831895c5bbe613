package cli

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/lessons/internal/orchestration"
)

// MockSpinner for testing
type MockSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffixes = append(m.suffixes, suffix)
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(4)
	if ps.Fraction() != 0 {
		t.Errorf("Fraction() = %v, want 0", ps.Fraction())
	}

	ps.Update(orchestration.ProgressUpdate{Index: 2, Name: "methods"})
	ps.Update(orchestration.ProgressUpdate{Index: 1, Name: "functions"})
	if got := ps.Suffix(); !strings.HasSuffix(got, "0/4 functions") {
		t.Errorf("Suffix() = %q, want lowest running lesson", got)
	}

	ps.Update(orchestration.ProgressUpdate{Index: 1, Name: "functions", Done: true})
	ps.Update(orchestration.ProgressUpdate{Index: 2, Name: "methods", Done: true, Err: errors.New("x")})
	if ps.Fraction() != 0.5 {
		t.Errorf("Fraction() = %v, want 0.5", ps.Fraction())
	}
	if got := ps.Suffix(); !strings.Contains(got, "2/4") || !strings.HasSuffix(got, "(1 failed)") {
		t.Errorf("Suffix() = %q", got)
	}

	if NewProgressState(0).Fraction() != 0 {
		t.Error("empty state should report 0")
	}
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)

	progressChan := make(chan orchestration.ProgressUpdate, 2)
	progressChan <- orchestration.ProgressUpdate{Index: 0, Name: "structs"}
	progressChan <- orchestration.ProgressUpdate{Index: 0, Name: "structs", Done: true}
	close(progressChan)

	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()

	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
	if last := mockS.suffixes[len(mockS.suffixes)-1]; !strings.Contains(last, "1/1") {
		t.Errorf("last suffix = %q, want completed count", last)
	}
}

func TestDisplayProgress_ZeroLessons(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()
	newSpinner = func(...spinner.Option) Spinner {
		t.Error("no spinner should be created for zero lessons")
		return &MockSpinner{}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan orchestration.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}
