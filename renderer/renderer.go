package renderer

// A Renderer drives an engine and presents its frames until the user
// quits or an unrecoverable error occurs.
type Renderer interface {
	// Run the display loop. Blocks until the window is closed.
	Run() error

	// Shutdown the renderer and the attached engine.
	Close()
}
