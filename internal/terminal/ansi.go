package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	pterm "github.com/pkg/term"
	"golang.org/x/term"

	"github.com/omarnabikhan/tilde"
)

const ttyPath = "/dev/tty"

// ttyDevice is the part of *pterm.Term the backend uses.
type ttyDevice interface {
	Read(p []byte) (int, error)
	Restore() error
	Close() error
}

var _ ttyDevice = (*pterm.Term)(nil)

// ansiTerminal drives the terminal directly: keys come from the controlling tty in cbreak mode,
// frames go to stdout as plain text and escape sequences. Cbreak rather than raw, so ^C still
// raises SIGINT.
type ansiTerminal struct {
	// Guards out and closed. Close can arrive from the signal handler mid-frame. Not held while
	// blocked reading the tty.
	mu     sync.Mutex
	out    *bufio.Writer
	closed bool

	tty     ttyDevice
	sizeFds []int
	keys    keyDecoder
	readBuf [64]byte
}

var _ tilde.Terminal = (*ansiTerminal)(nil)

func openANSI() (*ansiTerminal, error) {
	tty, err := pterm.Open(ttyPath, pterm.CBreakMode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ttyPath, err)
	}
	// Colors are downsampled to whatever the terminal advertises.
	out := colorprofile.NewWriter(os.Stdout, os.Environ())
	// stdout first; stdin if output is redirected.
	return newANSITerminal(tty, out, int(os.Stdout.Fd()), int(os.Stdin.Fd())), nil
}

func newANSITerminal(tty ttyDevice, out io.Writer, sizeFds ...int) *ansiTerminal {
	return &ansiTerminal{
		tty:     tty,
		out:     bufio.NewWriter(out),
		sizeFds: sizeFds,
	}
}

func (t *ansiTerminal) ReadKey() (tilde.Key, error) {
	if err := t.flush(); err != nil {
		return tilde.OtherKey, fmt.Errorf("flush output: %w", err)
	}
	for {
		if key, ok := t.keys.next(); ok {
			return key, nil
		}
		n, err := t.tty.Read(t.readBuf[:])
		if err != nil {
			if t.isClosed() {
				return tilde.OtherKey, ErrClosed
			}
			return tilde.OtherKey, err
		}
		t.keys.feed(t.readBuf[:n]...)
	}
}

func (t *ansiTerminal) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *ansiTerminal) flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	return t.out.Flush()
}

func (t *ansiTerminal) write(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	_, err := t.out.WriteString(s)
	return err
}

func (t *ansiTerminal) Clear() error {
	return t.write(ansi.EraseEntireScreen + ansi.CursorHomePosition)
}

func (t *ansiTerminal) WriteString(s string) error {
	return t.write(s)
}

func (t *ansiTerminal) WriteLine(s string) error {
	return t.write(s + "\n")
}

func (t *ansiTerminal) Size() (int, int) {
	for _, fd := range t.sizeFds {
		if cols, rows, err := term.GetSize(fd); err == nil && rows > 0 && cols > 0 {
			return rows, cols
		}
	}
	return defaultRows, defaultCols
}

func (t *ansiTerminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true

	flushErr := t.out.Flush()
	if err := t.tty.Restore(); err != nil {
		t.tty.Close()
		return fmt.Errorf("restore tty: %w", err)
	}
	if err := t.tty.Close(); err != nil {
		return err
	}
	return flushErr
}
