package internal

import "github.com/omarnabikhan/tilde"

// commandBar is the line the user types into at the bottom of the screen. It is always inserting:
// there is no cursor, keys are only ever added to or removed from the end.
type commandBar struct {
	input []rune
}

func newCommandBar() *commandBar {
	return &commandBar{}
}

// Drop everything typed so far.
func (cb *commandBar) clear() {
	cb.input = cb.input[:0]
}

func (cb *commandBar) push(ch rune) {
	cb.input = append(cb.input, ch)
}

// Delete the last char in the command. Nothing to delete is not an error.
func (cb *commandBar) backspace() {
	if len(cb.input) == 0 {
		return
	}
	cb.input = cb.input[:len(cb.input)-1]
}

func (cb *commandBar) String() string {
	return string(cb.input)
}

func (cb *commandBar) Render(t tilde.Terminal) error {
	return t.WriteString(cb.String())
}
