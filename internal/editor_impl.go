package internal

import (
	"fmt"

	"github.com/omarnabikhan/tilde"
	"github.com/omarnabikhan/tilde/internal/logging"
)

func NewEditor(term tilde.Terminal) tilde.Editor {
	return newEditorImpl(term)
}

func newEditorImpl(term tilde.Terminal) *editorImpl {
	return &editorImpl{
		term:       term,
		commandBar: newCommandBar(),
	}
}

type editorImpl struct {
	term       tilde.Terminal
	commandBar *commandBar
}

var _ tilde.Editor = (*editorImpl)(nil)

func (e *editorImpl) Update(key tilde.Key) {
	switch key.Kind {
	case tilde.KeyEnter:
		// Submit. Nothing interprets the command yet, so submitting only empties the line.
		e.commandBar.clear()
	case tilde.KeyBackspace:
		e.commandBar.backspace()
	case tilde.KeyChar:
		e.commandBar.push(key.Rune)
	default:
		// Do nothing.
	}
	logging.Trace("editor.update", map[string]interface{}{
		"key":         key.String(),
		"commandLine": e.commandBar.String(),
	})
}

// Render repaints the whole screen. Order matters: each region continues where the last one
// stopped, and the command bar has to end up on the bottom row.
func (e *editorImpl) Render() error {
	if err := e.term.Clear(); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	rows, _ := e.term.Size()
	regions := []region{newWindow(rows), statusBar{}, e.commandBar}
	for _, r := range regions {
		if err := r.Render(e.term); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	return nil
}

func (e *editorImpl) Run() error {
	// Initial paint, before the first key arrives.
	if err := e.Render(); err != nil {
		return err
	}
	for {
		key, err := e.term.ReadKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		e.Update(key)
		if err := e.Render(); err != nil {
			return err
		}
	}
}

// CommandLine returns what has been typed since the last submit.
func (e *editorImpl) CommandLine() string {
	return e.commandBar.String()
}
