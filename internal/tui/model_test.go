package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/lessons/internal/errors"
	"github.com/agbru/lessons/internal/lessons"
	"github.com/agbru/lessons/internal/lessons/mocks"
	"github.com/agbru/lessons/internal/orchestration"
	"github.com/agbru/lessons/internal/sysmon"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(all []lessons.Lesson) Model {
	m := NewModel(context.Background(), all, RunSettings{Timeout: 5 * time.Second}, "v1.0.0")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

// runToCompletion executes the command returned by a run key and feeds its
// message back into the model.
func runToCompletion(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a run command")
	}
	m, _ = send(t, m, cmd())
	return m
}

func TestModel_CursorMovement(t *testing.T) {
	m := newTestModel(lessons.NewDefaultRegistry(lessons.DefaultOptions()).GetAll())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first lesson: %d", m.cursor)
	}
	m, _ = send(t, m, runes("j"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	for range 20 {
		m, _ = send(t, m, runes("j"))
	}
	if m.cursor != len(m.lessons)-1 {
		t.Errorf("cursor = %d, want last index %d", m.cursor, len(m.lessons)-1)
	}
	m, _ = send(t, m, runes("k"))
	if m.cursor != len(m.lessons)-2 {
		t.Errorf("cursor = %d after k", m.cursor)
	}
}

func TestModel_RunSelected(t *testing.T) {
	all := lessons.NewDefaultRegistry(lessons.DefaultOptions()).GetAll()
	m := newTestModel(all)

	// Move to "variables", the last lesson.
	for range len(all) - 1 {
		m, _ = send(t, m, runes("j"))
	}
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.running {
		t.Error("model should be running after enter")
	}
	if !strings.Contains(m.header.View(), "Running variables...") {
		t.Errorf("header should show the run, got %q", m.header.View())
	}

	// A second run key while running is ignored.
	if _, again := send(t, m, tea.KeyMsg{Type: tea.KeyEnter}); again != nil {
		t.Error("a run must not start while another is in progress")
	}

	m = runToCompletion(t, m, cmd)
	if m.running {
		t.Error("model should be idle after the run finished")
	}
	if len(m.results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(m.results))
	}
	if got := m.output.lines[0]; got != "The value of x is: 5" {
		t.Errorf("first output line = %q", got)
	}
	if !strings.Contains(m.View(), "The value of x is: 6") {
		t.Error("view should display the lesson output")
	}
	if m.ExitCode() != apperrors.ExitSuccess {
		t.Errorf("ExitCode() = %d, want success", m.ExitCode())
	}
}

func TestModel_RunAll(t *testing.T) {
	all := lessons.NewDefaultRegistry(lessons.DefaultOptions()).GetAll()
	m := newTestModel(all)

	m, cmd := send(t, m, runes("a"))
	m = runToCompletion(t, m, cmd)

	if len(m.results) != len(all) {
		t.Fatalf("expected %d results, got %d", len(all), len(m.results))
	}
	for i, l := range all {
		if m.results[i].Name != l.Name() {
			t.Errorf("results[%d] = %q, want %q", i, m.results[i].Name, l.Name())
		}
	}
	if strings.Count(m.listView(), "✓") != len(all) {
		t.Errorf("every lesson should be marked successful:\n%s", m.listView())
	}
}

func TestModel_FailureSetsExitCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	failing := mocks.NewMockLesson(ctrl)
	failing.EXPECT().Name().Return("failing").AnyTimes()
	failing.EXPECT().Title().Return("Always fails").AnyTimes()
	failing.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, out io.Writer) error {
		fmt.Fprintln(out, "about to fail")
		return errors.New("boom")
	})

	m := newTestModel([]lessons.Lesson{failing})
	m, cmd := send(t, m, runes("r"))
	m = runToCompletion(t, m, cmd)

	if m.ExitCode() != apperrors.ExitErrorLesson {
		t.Errorf("ExitCode() = %d, want %d", m.ExitCode(), apperrors.ExitErrorLesson)
	}
	if !strings.Contains(m.View(), "boom") || !strings.Contains(m.listView(), "✗") {
		t.Errorf("failure should be visible:\n%s", m.View())
	}
	if !strings.Contains(m.header.View(), "1 failed") {
		t.Errorf("header = %q", m.header.View())
	}
}

func TestModel_StaleRunIgnored(t *testing.T) {
	m := newTestModel(lessons.NewDefaultRegistry(lessons.DefaultOptions()).GetAll())
	m, _ = send(t, m, RunFinishedMsg{Generation: 42, Indices: []int{0}, Results: make([]orchestration.LessonResult, 1)})
	if len(m.results) != 0 {
		t.Error("a message from another generation must be ignored")
	}
}

func TestModel_Scroll(t *testing.T) {
	all := lessons.NewDefaultRegistry(lessons.DefaultOptions()).GetAll()
	m := newTestModel(all) // cursor on "branches", which prints many lines

	m, cmd := send(t, m, runes("r"))
	m = runToCompletion(t, m, cmd)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	if m.output.Offset() == 0 {
		t.Fatal("page down should scroll a long output")
	}
	m, _ = send(t, m, runes("u"))
	if m.output.Offset() != 0 {
		t.Errorf("page up should return to the top, offset %d", m.output.Offset())
	}

	// Moving the cursor shows another lesson's (empty) output.
	m, _ = send(t, m, runes("j"))
	if !strings.Contains(m.View(), "No output yet.") {
		t.Error("unrun lesson should show the placeholder")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(nil)
	_, cmd := send(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	// Run keys are no-ops without lessons.
	if _, cmd := send(t, m, runes("a")); cmd != nil {
		t.Error("run all with no lessons should do nothing")
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	m := NewModel(context.Background(), nil, RunSettings{}, "dev")
	if m.View() != "Initializing..." {
		t.Errorf("View() = %q", m.View())
	}
}

func TestModel_HeaderShowsSystemSample(t *testing.T) {
	settings := RunSettings{
		Timeout: 5 * time.Second,
		System: func(context.Context) sysmon.Stats {
			return sysmon.Stats{CPUPercent: 25, MemPercent: 50}
		},
	}
	m := NewModel(context.Background(), lessons.NewDefaultRegistry(lessons.DefaultOptions()).GetAll(), settings, "v1.0.0")
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	if strings.Contains(m.header.View(), "CPU") {
		t.Fatal("no system sample should be shown before the first run")
	}
	m, cmd := send(t, m, runes("r"))
	m = runToCompletion(t, m, cmd)
	if !strings.Contains(m.header.View(), "CPU 25.0% MEM 50.0%") {
		t.Errorf("header = %q", m.header.View())
	}
}
