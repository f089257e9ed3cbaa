package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sys/unix"

	"github.com/omarnabikhan/tilde"
)

var errScreenClosed = errors.New("tcell: screen closed")

// tcellTerminal draws through a tcell screen. Tcell addresses cells rather than a stream, so the
// frame is collected as lines and the bottom screenful is drawn on flush, the same rows a
// scrolling terminal would end up showing.
type tcellTerminal struct {
	screen tcell.Screen
	// The current frame. The last entry is the line still being written.
	lines []string
}

var _ tilde.Terminal = (*tcellTerminal)(nil)

func openTcell() (*tcellTerminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return newTcellTerminal(screen)
}

func newTcellTerminal(screen tcell.Screen) (*tcellTerminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return &tcellTerminal{screen: screen, lines: []string{""}}, nil
}

func (t *tcellTerminal) ReadKey() (tilde.Key, error) {
	t.show()
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return tilde.OtherKey, errScreenClosed
		case *tcell.EventResize:
			t.screen.Sync()
			// Not a key, but it needs a repaint at the new size.
			return tilde.OtherKey, nil
		case *tcell.EventKey:
			return t.classify(ev)
		}
	}
}

func (t *tcellTerminal) classify(ev *tcell.EventKey) (tilde.Key, error) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return tilde.EnterKey, nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return tilde.BackspaceKey, nil
	case tcell.KeyRune:
		return tilde.CharKey(ev.Rune()), nil
	case tcell.KeyCtrlC:
		// Tcell swallows the interrupt character. Raise it ourselves so shutdown goes through
		// the signal handler like it does on the other backends.
		if err := unix.Kill(unix.Getpid(), unix.SIGINT); err != nil {
			return tilde.OtherKey, fmt.Errorf("raise interrupt: %w", err)
		}
		return tilde.OtherKey, nil
	default:
		return tilde.OtherKey, nil
	}
}

func (t *tcellTerminal) show() {
	t.screen.Clear()
	_, height := t.screen.Size()
	start := max(0, len(t.lines)-height)
	for y, line := range t.lines[start:] {
		x := 0
		for _, r := range line {
			t.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
			x += runewidth.RuneWidth(r)
		}
	}
	t.screen.Show()
}

func (t *tcellTerminal) Clear() error {
	t.lines = append(t.lines[:0], "")
	return nil
}

func (t *tcellTerminal) WriteString(s string) error {
	parts := strings.Split(ansi.Strip(s), "\n")
	last := len(t.lines) - 1
	t.lines[last] += parts[0]
	t.lines = append(t.lines, parts[1:]...)
	return nil
}

func (t *tcellTerminal) WriteLine(s string) error {
	return t.WriteString(s + "\n")
}

func (t *tcellTerminal) Size() (int, int) {
	width, height := t.screen.Size()
	return height, width
}

func (t *tcellTerminal) Close() error {
	t.screen.Fini()
	return nil
}
