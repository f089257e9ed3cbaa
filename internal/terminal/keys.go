package terminal

import (
	"unicode/utf8"

	"github.com/omarnabikhan/tilde"
)

// Escape sequences.
const (
	escKey       = 0x1b
	deleteKey    = 0x7f
	backspaceKey = 0x08
)

// keyDecoder turns a raw byte stream from the terminal into keys. Bytes that do not yet form a
// whole key stay pending until more input arrives.
type keyDecoder struct {
	pending []byte
}

func (d *keyDecoder) feed(p ...byte) {
	d.pending = append(d.pending, p...)
}

// next returns the key at the front of the stream, or false if more input is needed.
func (d *keyDecoder) next() (tilde.Key, bool) {
	key, n := decodeKey(d.pending)
	if n == 0 {
		return key, false
	}
	d.pending = d.pending[n:]
	if len(d.pending) == 0 {
		d.pending = nil
	}
	return key, true
}

func (d *keyDecoder) reset() {
	d.pending = nil
}

// decodeKey classifies the key at the front of p and reports how many bytes it spans. A length of
// zero means p only holds the beginning of a key.
func decodeKey(p []byte) (tilde.Key, int) {
	if len(p) == 0 {
		return tilde.OtherKey, 0
	}
	switch b := p[0]; {
	case b == '\r' || b == '\n':
		return tilde.EnterKey, 1
	case b == deleteKey || b == backspaceKey:
		return tilde.BackspaceKey, 1
	case b == escKey:
		return tilde.OtherKey, escapeLen(p)
	case b < 0x20:
		return tilde.OtherKey, 1
	}

	if !utf8.FullRune(p) {
		return tilde.OtherKey, 0
	}
	r, size := utf8.DecodeRune(p)
	if r == utf8.RuneError && size <= 1 {
		// Invalid byte, skip it.
		return tilde.OtherKey, 1
	}
	if r >= 0x80 && r < 0xa0 {
		// C1 control.
		return tilde.OtherKey, size
	}
	return tilde.CharKey(r), size
}

// escapeLen returns the length of the escape sequence at the front of p, or 0 if it is not
// complete yet. A lone ESC is a key of its own: without a timeout there is no telling it apart
// from a sequence whose tail never arrives.
func escapeLen(p []byte) int {
	if len(p) < 2 {
		return 1
	}
	switch p[1] {
	case '[':
		// CSI: parameters and intermediates up to a final byte in 0x40-0x7e.
		for i := 2; i < len(p); i++ {
			if p[i] >= 0x40 && p[i] <= 0x7e {
				return i + 1
			}
		}
		return 0
	case 'O':
		// SS3, used for F1-F4 and application-mode arrows.
		if len(p) < 3 {
			return 0
		}
		return 3
	default:
		// Alt+key arrives as ESC followed by the key.
		_, size := utf8.DecodeRune(p[1:])
		return 1 + size
	}
}
