package tui

import (
	"strings"
)

// OutputModel is a scrollable view over the output of one lesson.
type OutputModel struct {
	lines  []string
	offset int
	width  int
	height int
}

// SetContent replaces the displayed text and scrolls back to the top.
func (o *OutputModel) SetContent(text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		o.lines = nil
	} else {
		o.lines = strings.Split(text, "\n")
	}
	o.offset = 0
}

// SetSize updates the panel dimensions, including the border.
func (o *OutputModel) SetSize(w, h int) {
	o.width = w
	o.height = h
	o.clamp()
}

// visibleLines is the number of text rows inside the border and title.
func (o OutputModel) visibleLines() int {
	return max(o.height-3, 1)
}

// ScrollBy moves the view by delta lines, staying within the content.
func (o *OutputModel) ScrollBy(delta int) {
	o.offset += delta
	o.clamp()
}

// PageUp scrolls one page up.
func (o *OutputModel) PageUp() { o.ScrollBy(-o.visibleLines()) }

// PageDown scrolls one page down.
func (o *OutputModel) PageDown() { o.ScrollBy(o.visibleLines()) }

// Offset returns the index of the first visible line.
func (o OutputModel) Offset() int { return o.offset }

func (o *OutputModel) clamp() {
	maxOffset := max(len(o.lines)-o.visibleLines(), 0)
	o.offset = min(max(o.offset, 0), maxOffset)
}

// View renders the panel with title on top.
func (o OutputModel) View(title string) string {
	rows := make([]string, 0, o.visibleLines()+1)
	rows = append(rows, outputTitleStyle.Render(title))

	end := min(o.offset+o.visibleLines(), len(o.lines))
	inner := max(o.width-4, 1)
	for _, line := range o.lines[o.offset:end] {
		if r := []rune(line); len(r) > inner {
			line = string(r[:inner])
		}
		rows = append(rows, line)
	}
	if len(o.lines) == 0 {
		rows = append(rows, dimStyle.Render("No output yet."))
	}

	return panelStyle.
		Width(max(o.width-2, 0)).
		Height(max(o.height-2, 0)).
		Render(strings.Join(rows, "\n"))
}
