package terminal

import (
	"testing"

	"github.com/omarnabikhan/tilde"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantKey tilde.Key
		wantLen int
	}{
		{"empty", "", tilde.OtherKey, 0},
		{"carriage return", "\r", tilde.EnterKey, 1},
		{"line feed", "\nabc", tilde.EnterKey, 1},
		{"delete", "\x7f", tilde.BackspaceKey, 1},
		{"ctrl-h", "\x08", tilde.BackspaceKey, 1},
		{"ascii", "hi", tilde.CharKey('h'), 1},
		{"space", " ", tilde.CharKey(' '), 1},
		{"two byte rune", "é", tilde.CharKey('é'), 2},
		{"four byte rune", "😀!", tilde.CharKey('😀'), 4},
		{"incomplete rune", "\xe2\x82", tilde.OtherKey, 0},
		{"invalid byte", "\xffa", tilde.OtherKey, 1},
		{"c1 control", "\u0085", tilde.OtherKey, 2},
		{"tab", "\t", tilde.OtherKey, 1},
		{"ctrl-a", "\x01", tilde.OtherKey, 1},
		{"lone escape", "\x1b", tilde.OtherKey, 1},
		{"arrow up", "\x1b[Ax", tilde.OtherKey, 3},
		{"delete key", "\x1b[3~", tilde.OtherKey, 4},
		{"modified arrow", "\x1b[1;5C", tilde.OtherKey, 6},
		{"incomplete csi", "\x1b[1;5", tilde.OtherKey, 0},
		{"ss3 f1", "\x1bOP", tilde.OtherKey, 3},
		{"incomplete ss3", "\x1bO", tilde.OtherKey, 0},
		{"alt-x", "\x1bx", tilde.OtherKey, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, n := decodeKey([]byte(tt.in))
			if n != tt.wantLen {
				t.Errorf("len = %d, want %d", n, tt.wantLen)
			}
			if n > 0 && key != tt.wantKey {
				t.Errorf("key = %v, want %v", key, tt.wantKey)
			}
		})
	}
}

func TestKeyDecoderAcrossReads(t *testing.T) {
	var d keyDecoder

	// A multi-byte rune split over two reads.
	d.feed(0xc3)
	if _, ok := d.next(); ok {
		t.Fatal("expected to wait for the rest of the rune")
	}
	d.feed(0xa9, 'x', '\r')

	want := []tilde.Key{tilde.CharKey('é'), tilde.CharKey('x'), tilde.EnterKey}
	for i, w := range want {
		got, ok := d.next()
		if !ok {
			t.Fatalf("key %d: expected a key", i)
		}
		if got != w {
			t.Errorf("key %d = %v, want %v", i, got, w)
		}
	}
	if _, ok := d.next(); ok {
		t.Error("expected decoder to be drained")
	}
}

func TestKeyDecoderReset(t *testing.T) {
	var d keyDecoder
	d.feed(0x1b, '[', '1')
	if _, ok := d.next(); ok {
		t.Fatal("expected incomplete sequence")
	}
	d.reset()
	d.feed('a')
	got, ok := d.next()
	if !ok || got != tilde.CharKey('a') {
		t.Errorf("got %v, %v; want char('a')", got, ok)
	}
}
