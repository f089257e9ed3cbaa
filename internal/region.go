package internal

import "github.com/omarnabikhan/tilde"

// A region owns a horizontal band of the screen. Regions are rendered top to bottom, each one
// picking up wherever the previous one left the cursor.
type region interface {
	Render(t tilde.Terminal) error
}

var (
	_ region = window{}
	_ region = statusBar{}
	_ region = (*commandBar)(nil)
)
