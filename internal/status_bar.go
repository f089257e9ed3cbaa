package internal

import "github.com/omarnabikhan/tilde"

// statusBar reserves the row between the window and the command bar. Nothing is shown there yet.
type statusBar struct{}

func (statusBar) Render(t tilde.Terminal) error {
	return t.WriteLine("")
}
