package internal

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/omarnabikhan/tilde"
)

// Marks a row that has no content behind it.
const emptyRowMarker = "~"

var (
	emptyRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	// Applied over the whole block, so it only shows on characters the row style left alone.
	windowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// window is the content area. With nothing loaded it is a column of markers, one per row, built
// fresh for every frame.
type window struct {
	lines   int
	content string
}

func newWindow(rows int) window {
	if rows <= 0 {
		return window{}
	}
	marker := emptyRowStyle.Render(emptyRowMarker)
	rowsContent := make([]string, rows)
	for i := range rowsContent {
		rowsContent[i] = marker
	}
	// Style the rows without the final line break, otherwise lipgloss pads out an extra blank row.
	return window{
		lines:   rows,
		content: windowStyle.Render(strings.Join(rowsContent, "\n")) + "\n",
	}
}

func (w window) Lines() int {
	return w.lines
}

func (w window) String() string {
	return w.content
}

func (w window) Render(t tilde.Terminal) error {
	return t.WriteString(w.content)
}
