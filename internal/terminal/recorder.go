package terminal

import (
	"io"
	"strings"

	"github.com/omarnabikhan/tilde"
)

// Op names recorded by Recorder.
const (
	OpReadKey     = "ReadKey"
	OpClear       = "Clear"
	OpWriteString = "WriteString"
	OpWriteLine   = "WriteLine"
)

type Op struct {
	Name string
	Text string
}

// Recorder is an in-memory Terminal for tests. Keys are served from Keys in order and ReadKey fails
// with io.EOF once they run out. Setting FailOn makes every call of that op return Err.
type Recorder struct {
	Rows, Cols int
	Keys       []tilde.Key

	FailOn string
	Err    error

	ops    []Op
	frame  strings.Builder
	closed bool
}

var _ tilde.Terminal = (*Recorder)(nil)

func NewRecorder(rows, cols int, keys ...tilde.Key) *Recorder {
	return &Recorder{Rows: rows, Cols: cols, Keys: keys}
}

func (r *Recorder) record(name, text string) error {
	r.ops = append(r.ops, Op{Name: name, Text: text})
	if r.FailOn == name {
		return r.Err
	}
	return nil
}

func (r *Recorder) ReadKey() (tilde.Key, error) {
	if err := r.record(OpReadKey, ""); err != nil {
		return tilde.OtherKey, err
	}
	if len(r.Keys) == 0 {
		return tilde.OtherKey, io.EOF
	}
	key := r.Keys[0]
	r.Keys = r.Keys[1:]
	return key, nil
}

func (r *Recorder) Clear() error {
	if err := r.record(OpClear, ""); err != nil {
		return err
	}
	r.frame.Reset()
	return nil
}

func (r *Recorder) WriteString(s string) error {
	if err := r.record(OpWriteString, s); err != nil {
		return err
	}
	r.frame.WriteString(s)
	return nil
}

func (r *Recorder) WriteLine(s string) error {
	if err := r.record(OpWriteLine, s); err != nil {
		return err
	}
	r.frame.WriteString(s)
	r.frame.WriteString("\n")
	return nil
}

func (r *Recorder) Size() (int, int) {
	return r.Rows, r.Cols
}

func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

// Ops returns every call made so far.
func (r *Recorder) Ops() []Op {
	return append([]Op(nil), r.ops...)
}

// Frame returns everything written since the last Clear.
func (r *Recorder) Frame() string {
	return r.frame.String()
}

func (r *Recorder) Closed() bool {
	return r.closed
}
