package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/lessons/internal/format"
	"github.com/agbru/lessons/internal/sysmon"
)

// HeaderModel renders the top bar: title, version and the state of the
// last run.
type HeaderModel struct {
	version  string
	running  string
	lastRun  time.Duration
	hasRun   bool
	failures int
	system   *sysmon.Stats
	width    int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// SetRunning marks a run of the named lessons as in progress.
func (h *HeaderModel) SetRunning(label string) {
	h.running = label
}

// SetDone records the outcome of a finished run.
func (h *HeaderModel) SetDone(elapsed time.Duration, failures int) {
	h.running = ""
	h.lastRun = elapsed
	h.failures = failures
	h.hasRun = true
}

// SetSystem records the system usage shown on the right of the bar.
func (h *HeaderModel) SetSystem(s sysmon.Stats) {
	h.system = &s
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Go Lessons"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText) + versionStyle.Render(" | ")

	switch {
	case h.running != "":
		left += statusRunningStyle.Render("Running " + h.running + "...")
	case h.hasRun && h.failures > 0:
		left += errorStyle.Render(fmt.Sprintf("Last run: %s, %d failed", format.FormatExecutionDuration(h.lastRun), h.failures))
	case h.hasRun:
		left += elapsedStyle.Render("Last run: " + format.FormatExecutionDuration(h.lastRun))
	default:
		left += dimStyle.Render("Select a lesson and press enter")
	}

	right := ""
	if h.system != nil {
		right = dimStyle.Render(h.system.String())
	}
	gap := max(h.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap) + right)
}
