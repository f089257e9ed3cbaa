package terminal

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/omarnabikhan/tilde"
)

// fakeTTY serves reads from chunks, then io.EOF.
type fakeTTY struct {
	chunks   []string
	restored bool
	closed   bool
}

func (f *fakeTTY) Read(p []byte) (int, error) {
	if len(f.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, f.chunks[0])
	f.chunks = f.chunks[1:]
	return n, nil
}

func (f *fakeTTY) Restore() error {
	f.restored = true
	return nil
}

func (f *fakeTTY) Close() error {
	f.closed = true
	return nil
}

// syncBuffer is a bytes.Buffer safe to share with a concurrent Close.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestANSITerminalFlushesFrameBeforeReading(t *testing.T) {
	tty := &fakeTTY{chunks: []string{"h\xe4\xb8", "\x96\x1b[A\r\x7f"}}
	var out syncBuffer
	term := newANSITerminal(tty, &out)

	term.Clear()
	term.WriteString("~\n")
	term.WriteLine("")
	term.WriteString("cmd")
	if out.String() != "" {
		t.Fatalf("output reached the screen before ReadKey: %q", out.String())
	}

	want := []tilde.Key{tilde.CharKey('h'), tilde.CharKey('世'), tilde.OtherKey, tilde.EnterKey, tilde.BackspaceKey}
	for i, w := range want {
		got, err := term.ReadKey()
		if err != nil {
			t.Fatalf("key %d: %v", i, err)
		}
		if got != w {
			t.Errorf("key %d = %v, want %v", i, got, w)
		}
	}
	if _, err := term.ReadKey(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF once the tty is drained, got %v", err)
	}

	wantOut := ansi.EraseEntireScreen + ansi.CursorHomePosition + "~\n\ncmd"
	if out.String() != wantOut {
		t.Errorf("output = %q, want %q", out.String(), wantOut)
	}
}

func TestANSITerminalSizeFallback(t *testing.T) {
	term := newANSITerminal(&fakeTTY{}, io.Discard, -1)
	if rows, cols := term.Size(); rows != defaultRows || cols != defaultCols {
		t.Errorf("Size = %d,%d, want %d,%d", rows, cols, defaultRows, defaultCols)
	}
}

func TestANSITerminalClose(t *testing.T) {
	tty := &fakeTTY{}
	var out syncBuffer
	term := newANSITerminal(tty, &out)

	term.WriteString("pending")
	if err := term.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !tty.restored || !tty.closed {
		t.Errorf("tty restored=%v closed=%v, want both", tty.restored, tty.closed)
	}
	if out.String() != "pending" {
		t.Errorf("Close did not flush: %q", out.String())
	}
	if err := term.WriteString("late"); !errors.Is(err, ErrClosed) {
		t.Errorf("write after Close = %v, want ErrClosed", err)
	}
	if _, err := term.ReadKey(); !errors.Is(err, ErrClosed) {
		t.Errorf("ReadKey after Close = %v, want ErrClosed", err)
	}
	if err := term.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

// Close from another goroutine while frames are being written, the way the signal handler does.
func TestANSITerminalCloseDuringRender(t *testing.T) {
	var out syncBuffer
	term := newANSITerminal(&fakeTTY{}, &out)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if err := term.WriteString(strings.Repeat("~\n", 10)); err != nil {
				return
			}
		}
	}()
	term.Close()
	wg.Wait()

	if err := term.WriteLine(""); !errors.Is(err, ErrClosed) {
		t.Errorf("write after Close = %v, want ErrClosed", err)
	}
}

// closingTTY fails its read because the terminal was closed underneath it.
type closingTTY struct {
	fakeTTY
	term *ansiTerminal
}

func (c *closingTTY) Read(p []byte) (int, error) {
	c.term.Close()
	return 0, io.ErrClosedPipe
}

func TestANSITerminalReadAfterConcurrentClose(t *testing.T) {
	tty := &closingTTY{}
	term := newANSITerminal(tty, io.Discard)
	tty.term = term

	if _, err := term.ReadKey(); !errors.Is(err, ErrClosed) {
		t.Errorf("ReadKey = %v, want ErrClosed", err)
	}
}
