package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/lessons/internal/errors"
	"github.com/agbru/lessons/internal/format"
	"github.com/agbru/lessons/internal/lessons"
	"github.com/agbru/lessons/internal/orchestration"
	"github.com/agbru/lessons/internal/sysmon"
)

// Layout constants for the lesson browser.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 4
	ListPanelWidthPercent = 30
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// listWidth returns the width allocated to the lesson list.
func (l LayoutManager) listWidth() int {
	return l.width * ListPanelWidthPercent / 100
}

// outputWidth returns the width allocated to the output panel.
func (l LayoutManager) outputWidth() int {
	return l.width - l.listWidth()
}

// RunSettings carries what the browser needs to execute lessons.
type RunSettings struct {
	// Execution is passed to orchestration.ExecuteLessons.
	Execution orchestration.ExecutionOptions
	// Timeout bounds every run started from the browser.
	Timeout time.Duration
	// System, when set, is sampled after each run for the header.
	System sysmon.Sampler
}

// RunFinishedMsg carries the results of a run started by the browser.
type RunFinishedMsg struct {
	Indices    []int
	Results    []orchestration.LessonResult
	Elapsed    time.Duration
	System     *sysmon.Stats
	Generation uint64
}

// Model is the root bubbletea model of the lesson browser.
type Model struct {
	header HeaderModel
	output OutputModel
	keymap KeyMap

	LayoutManager

	parentCtx  context.Context
	settings   RunSettings
	lessons    []lessons.Lesson
	results    map[int]orchestration.LessonResult
	cursor     int
	running    bool
	generation uint64
	exitCode   int
}

// NewModel creates a browser over the given lessons.
func NewModel(parentCtx context.Context, all []lessons.Lesson, settings RunSettings, version string) Model {
	return Model{
		header:    NewHeaderModel(version),
		keymap:    DefaultKeyMap(),
		parentCtx: parentCtx,
		settings:  settings,
		lessons:   all,
		results:   make(map[int]orchestration.LessonResult),
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case RunFinishedMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.running = false
		failures := 0
		m.exitCode = apperrors.ExitSuccess
		for i, res := range msg.Results {
			m.results[msg.Indices[i]] = res
			if res.Err != nil {
				failures++
				if m.exitCode == apperrors.ExitSuccess {
					m.exitCode = apperrors.ExitCodeFor(res.Err)
				}
			}
		}
		m.header.SetDone(msg.Elapsed, failures)
		if msg.System != nil {
			m.header.SetSystem(*msg.System)
		}
		m.refreshOutput()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
			m.refreshOutput()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.lessons)-1 {
			m.cursor++
			m.refreshOutput()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Run):
		if m.running || len(m.lessons) == 0 {
			return m, nil
		}
		return m.startRun([]int{m.cursor}, m.lessons[m.cursor].Name())

	case key.Matches(msg, m.keymap.RunAll):
		if m.running || len(m.lessons) == 0 {
			return m, nil
		}
		indices := make([]int, len(m.lessons))
		for i := range indices {
			indices[i] = i
		}
		return m.startRun(indices, "all lessons")

	case key.Matches(msg, m.keymap.PageUp):
		m.output.PageUp()
		return m, nil

	case key.Matches(msg, m.keymap.PageDown):
		m.output.PageDown()
		return m, nil
	}

	return m, nil
}

func (m Model) startRun(indices []int, label string) (tea.Model, tea.Cmd) {
	m.running = true
	m.generation++
	m.header.SetRunning(label)

	toRun := make([]lessons.Lesson, len(indices))
	for i, idx := range indices {
		toRun[i] = m.lessons[idx]
	}
	return m, runLessonsCmd(m.parentCtx, toRun, indices, m.settings, m.generation)
}

// refreshOutput shows the last result of the lesson under the cursor.
func (m *Model) refreshOutput() {
	res, ok := m.results[m.cursor]
	if !ok {
		m.output.SetContent("")
		return
	}
	text := string(res.Output)
	if res.Err != nil {
		text += "\n" + errorStyle.Render(res.Err.Error())
	}
	m.output.SetContent(text)
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.output.SetSize(m.outputWidth(), m.bodyHeight())
}

// ExitCode returns the exit code derived from the last run.
func (m Model) ExitCode() int { return m.exitCode }

// View renders the whole browser.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	title := "Output"
	if len(m.lessons) > 0 {
		l := m.lessons[m.cursor]
		title = l.Title()
		if res, ok := m.results[m.cursor]; ok {
			title += " (" + format.FormatExecutionDuration(res.Duration) + ")"
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), m.output.View(title))
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footerView())
}

func (m Model) listView() string {
	rows := make([]string, 0, len(m.lessons))
	for i, l := range m.lessons {
		mark := "  "
		if res, ok := m.results[i]; ok {
			if res.Err != nil {
				mark = errorStyle.Render("✗ ")
			} else {
				mark = successStyle.Render("✓ ")
			}
		}
		if i == m.cursor {
			rows = append(rows, selectedItemStyle.Render("> ")+mark+selectedItemStyle.Render(l.Name()))
		} else {
			rows = append(rows, "  "+mark+itemStyle.Render(l.Name()))
		}
	}
	return panelStyle.
		Width(max(m.listWidth()-2, 0)).
		Height(max(m.bodyHeight()-2, 0)).
		Render(strings.Join(rows, "\n"))
}

func (m Model) footerView() string {
	parts := make([]string, 0, len(m.keymap.ShortHelp()))
	for _, b := range m.keymap.ShortHelp() {
		parts = append(parts, footerKeyStyle.Render(b.Help().Key)+" "+footerDescStyle.Render(b.Help().Desc))
	}
	return strings.Join(parts, "  ")
}

// runLessonsCmd returns a tea.Cmd that runs the lessons through the
// orchestration layer.
func runLessonsCmd(parent context.Context, toRun []lessons.Lesson, indices []int, settings RunSettings, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, settings.Timeout)
		defer cancel()

		start := time.Now()
		results := orchestration.ExecuteLessons(ctx, toRun, settings.Execution, orchestration.NullProgressReporter{}, io.Discard)
		msg := RunFinishedMsg{Indices: indices, Results: results, Elapsed: time.Since(start), Generation: gen}
		if settings.System != nil {
			stats := settings.System(parent)
			msg.System = &stats
		}
		return msg
	}
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, all []lessons.Lesson, settings RunSettings, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, all, settings, version)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		if apperrors.IsContextError(err) {
			return apperrors.ExitCodeFor(err)
		}
		if ctx.Err() != nil {
			return apperrors.ExitCodeFor(ctx.Err())
		}
		fmt.Println("TUI error:", err)
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.ExitCode()
	}
	return apperrors.ExitSuccess
}
