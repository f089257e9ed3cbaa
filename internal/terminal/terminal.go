// Package terminal provides the concrete terminals the editor can run on. Every backend buffers
// its output and puts the frame on screen when ReadKey is called.
package terminal

import (
	"errors"
	"fmt"

	"github.com/omarnabikhan/tilde"
)

const (
	KindANSI   = "ansi"
	KindCurses = "curses"
	KindTcell  = "tcell"
)

// Used when the dimensions of the terminal cannot be queried.
const (
	defaultRows = 24
	defaultCols = 79
)

var (
	ErrUnknownBackend = errors.New("unknown terminal backend")
	// ErrClosed is returned by a backend used after Close.
	ErrClosed = errors.New("terminal closed")
)

// Kinds lists the backends Open accepts, default first.
func Kinds() []string {
	return []string{KindANSI, KindCurses, KindTcell}
}

func Supported(kind string) bool {
	for _, k := range Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// Open initializes the named backend and takes over the terminal. Callers must Close it to give the
// terminal back.
func Open(kind string) (tilde.Terminal, error) {
	switch kind {
	case KindANSI, "":
		return openANSI()
	case KindCurses:
		return openCurses()
	case KindTcell:
		return openTcell()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}
