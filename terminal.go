package tilde

import "fmt"

// Terminal is the capability the editor draws on and reads keys from. Implementations may buffer
// writes, but everything written must be on screen once ReadKey blocks.
type Terminal interface {
	// ReadKey blocks until the user presses a key.
	ReadKey() (Key, error)
	// Clear wipes the screen and homes the cursor.
	Clear() error
	WriteString(s string) error
	WriteLine(s string) error
	// Size reports the current dimensions.
	Size() (rows, cols int)
	Close() error
}

type KeyKind int

const (
	KeyOther KeyKind = iota
	KeyEnter
	KeyBackspace
	KeyChar
)

func (k KeyKind) String() string {
	switch k {
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyChar:
		return "char"
	default:
		return "other"
	}
}

// Key is a classified key press. Rune is only meaningful for KeyChar.
type Key struct {
	Kind KeyKind
	Rune rune
}

var (
	EnterKey     = Key{Kind: KeyEnter}
	BackspaceKey = Key{Kind: KeyBackspace}
	OtherKey     = Key{Kind: KeyOther}
)

func CharKey(r rune) Key {
	return Key{Kind: KeyChar, Rune: r}
}

func (k Key) String() string {
	if k.Kind == KeyChar {
		return fmt.Sprintf("char(%q)", k.Rune)
	}
	return k.Kind.String()
}
