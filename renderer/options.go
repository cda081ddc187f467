package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Window title prefix; frame stats are appended while rendering.
	Title string

	// The catalog scenes cycled through with the Tab key.
	SceneNames []string
}
