package terminal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/x/ansi"
	gc "github.com/gbin/goncurses"

	"github.com/omarnabikhan/tilde"
)

var errCursesRead = errors.New("curses: read failed")

// cursesTerminal draws through ncurses. Curses tracks attributes itself, so escape sequences
// embedded in the text are stripped rather than printed.
type cursesTerminal struct {
	// Guards window against Close from the signal handler. Not held while blocked in GetChar.
	mu     sync.Mutex
	window *gc.Window
	keys   keyDecoder
	closed bool
}

var _ tilde.Terminal = (*cursesTerminal)(nil)

func openCurses() (*cursesTerminal, error) {
	window, err := gc.Init()
	if err != nil {
		return nil, fmt.Errorf("init curses: %w", err)
	}
	gc.Echo(false)
	gc.CBreak(true)
	window.Keypad(true)
	// A frame is one row taller than the window region alone; let it scroll instead of failing.
	window.ScrollOk(true)
	return &cursesTerminal{window: window}, nil
}

func (t *cursesTerminal) ReadKey() (tilde.Key, error) {
	if err := t.refresh(); err != nil {
		return tilde.OtherKey, err
	}
	for {
		if key, ok := t.keys.next(); ok {
			return key, nil
		}
		key, decoded, err := cursesKey(t.window.GetChar())
		if err != nil {
			if t.isClosed() {
				return tilde.OtherKey, ErrClosed
			}
			return tilde.OtherKey, err
		}
		if decoded {
			// Anything half-read before a keypad key is garbage.
			t.keys.reset()
			return key, nil
		}
		t.keys.feed(byte(key.Rune))
	}
}

// cursesKey classifies one GetChar result. Keypad keys come back already decoded. Plain bytes are
// returned undecoded in Rune so the caller can assemble multi-byte runes. GetChar reports ERR as 0,
// which also swallows a NUL keypress.
func cursesKey(k gc.Key) (key tilde.Key, decoded bool, err error) {
	switch {
	case k == 0:
		return tilde.OtherKey, false, errCursesRead
	case k > 0xff:
		switch k {
		case gc.KEY_ENTER:
			return tilde.EnterKey, true, nil
		case gc.KEY_BACKSPACE:
			return tilde.BackspaceKey, true, nil
		default:
			return tilde.OtherKey, true, nil
		}
	default:
		return tilde.Key{Kind: tilde.KeyOther, Rune: rune(k)}, false, nil
	}
}

func (t *cursesTerminal) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *cursesTerminal) refresh() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	t.window.Refresh()
	return nil
}

func (t *cursesTerminal) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	t.window.Erase()
	t.window.Move(0, 0)
	return nil
}

func (t *cursesTerminal) WriteString(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	t.window.Print(ansi.Strip(s))
	return nil
}

func (t *cursesTerminal) WriteLine(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	t.window.Println(ansi.Strip(s))
	return nil
}

func (t *cursesTerminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return defaultRows, defaultCols
	}
	rows, cols := t.window.MaxYX()
	if rows <= 0 || cols <= 0 {
		return defaultRows, defaultCols
	}
	return rows, cols
}

func (t *cursesTerminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	gc.End()
	return nil
}
