package tilde

// Editor - The main interface that represents the program. At any point there will be just one
// instantiation of Editor. It owns the terminal it draws on and the command line the user types
// into. Keys are fed in one at a time and every key is followed by a full repaint.
type Editor interface {
	Update(key Key)
	Render() error
	// Run paints the initial frame and then reads, updates and repaints until the terminal fails.
	Run() error
}
