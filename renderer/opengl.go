package renderer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/donat19/intel-render-engine/engine"
	"github.com/donat19/intel-render-engine/log"
	"github.com/donat19/intel-render-engine/scene"
	"github.com/donat19/intel-render-engine/types"
)

const (
	// Multiplier applied to camera movement while shift is held.
	sprintMultiplier float32 = 2.5

	exposureStep float32 = 0.1
	gammaStep    float32 = 0.05

	// Frames between window title refreshes.
	titleUpdateInterval = 30
)

// An interactive opengl-based renderer. Frames rendered by the engine are
// uploaded into a texture and blitted onto the default framebuffer.
type interactiveGLRenderer struct {
	engine  engine.Engine
	logger  log.Logger
	options Options

	// opengl handles
	window    *glfw.Window
	fbTexture uint32
	texFbo    uint32
	texW      int32
	texH      int32

	// state
	lastCursorPos types.Vec2
	mouseLook     bool
	sceneIndex    int

	fullscreen     bool
	windowedBounds [4]int

	// Resize requests arrive on glfw callbacks and are applied at the
	// top of the frame loop.
	pendingResizeW int
	pendingResizeH int
	pendingResize  bool
}

// Create a new interactive opengl renderer displaying the given engine's
// output.
func NewInteractive(eng engine.Engine, opts Options) (Renderer, error) {
	if eng == nil {
		return nil, ErrNoEngine
	}
	if opts.Title == "" {
		opts.Title = "intel-render-engine"
	}

	r := &interactiveGLRenderer{
		engine:  eng,
		logger:  log.New("renderer"),
		options: opts,
	}

	// Start scene cycling from the engine's active scene.
	active := eng.CameraInfo().Scene
	for i, name := range opts.SceneNames {
		if name == active {
			r.sceneIndex = i
			break
		}
	}

	if err := r.initGL(opts); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *interactiveGLRenderer) initGL(opts Options) error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("renderer: failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	r.window, err = glfw.CreateWindow(int(opts.FrameW), int(opts.FrameH), opts.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("renderer: could not create opengl window: %s", err.Error())
	}
	r.window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err = gl.Init(); err != nil {
		return fmt.Errorf("renderer: could not init opengl: %s", err.Error())
	}

	r.createFrameTexture(int32(opts.FrameW), int32(opts.FrameH))

	r.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	r.window.SetKeyCallback(r.onKeyEvent)
	r.window.SetMouseButtonCallback(r.onMouseEvent)
	r.window.SetCursorPosCallback(r.onCursorPosEvent)
	r.window.SetFramebufferSizeCallback(r.onFramebufferResize)

	return nil
}

// Setup the texture receiving frame data and attach it to a read FBO for
// blitting.
func (r *interactiveGLRenderer) createFrameTexture(width, height int32) {
	if r.fbTexture != 0 {
		gl.DeleteTextures(1, &r.fbTexture)
		gl.DeleteFramebuffers(1, &r.texFbo)
	}

	gl.GenTextures(1, &r.fbTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.fbTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &r.texFbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.fbTexture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	r.texW = width
	r.texH = height
}

func (r *interactiveGLRenderer) Run() error {
	if r.window == nil {
		return ErrInterrupted
	}

	var frameCounter uint64
	for !r.window.ShouldClose() {
		glfw.PollEvents()

		if r.pendingResize {
			r.applyResize()
		}
		r.applyMovementInput()

		frame, _, err := r.engine.Render()
		if err != nil {
			// The engine substitutes a diagnostic frame for recovered
			// failures; keep presenting so the user sees it.
			r.logger.Errorf("%v", err)
			if frame == nil {
				return err
			}
		}

		gl.BindTexture(gl.TEXTURE_2D, r.fbTexture)
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, r.texW, r.texH, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))

		// Blit flipped; frame rows run top to bottom while gl's origin
		// is the bottom-left corner.
		fbWidth, fbHeight := r.window.GetFramebufferSize()
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.texFbo)
		gl.BlitFramebuffer(0, r.texH, r.texW, 0, 0, 0, int32(fbWidth), int32(fbHeight), gl.COLOR_BUFFER_BIT, gl.LINEAR)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

		r.window.SwapBuffers()

		frameCounter++
		if frameCounter%titleUpdateInterval == 0 {
			r.updateTitle()
		}
	}
	return nil
}

func (r *interactiveGLRenderer) applyResize() {
	r.pendingResize = false
	if err := r.engine.Resize(r.pendingResizeW, r.pendingResizeH); err != nil {
		r.logger.Warningf("ignoring resize to %dx%d: %v", r.pendingResizeW, r.pendingResizeH, err)
		return
	}
	r.createFrameTexture(int32(r.pendingResizeW), int32(r.pendingResizeH))
}

// Poll held movement keys once per frame; key callbacks alone would give
// the repeat-delay stutter.
func (r *interactiveGLRenderer) applyMovementInput() {
	multiplier := float32(1.0)
	if r.window.GetKey(glfw.KeyLeftShift) == glfw.Press {
		multiplier = sprintMultiplier
	}

	keyDirs := []struct {
		key glfw.Key
		dir scene.Direction
	}{
		{glfw.KeyW, scene.Forward},
		{glfw.KeyS, scene.Backward},
		{glfw.KeyA, scene.Left},
		{glfw.KeyD, scene.Right},
		{glfw.KeyE, scene.Up},
		{glfw.KeyQ, scene.Down},
	}
	for _, kd := range keyDirs {
		if r.window.GetKey(kd.key) == glfw.Press {
			r.engine.MoveCamera(kd.dir, multiplier)
		}
	}
}

func (r *interactiveGLRenderer) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}

	switch key {
	case glfw.KeyEscape:
		r.window.SetShouldClose(true)
	case glfw.KeyTab:
		r.cycleScene()
	case glfw.KeyT:
		name := r.engine.CycleToneMapping()
		r.logger.Noticef("tone mapping: %s", name)
	case glfw.KeyR:
		r.engine.ResetCamera()
	case glfw.KeyF11:
		r.toggleFullscreen()
	case glfw.KeyMinus:
		r.engine.AdjustExposure(-exposureStep)
	case glfw.KeyEqual:
		r.engine.AdjustExposure(exposureStep)
	case glfw.KeyLeftBracket:
		r.engine.AdjustGamma(-gammaStep)
	case glfw.KeyRightBracket:
		r.engine.AdjustGamma(gammaStep)
	}
}

func (r *interactiveGLRenderer) cycleScene() {
	if len(r.options.SceneNames) == 0 {
		return
	}

	r.sceneIndex = (r.sceneIndex + 1) % len(r.options.SceneNames)
	name := r.options.SceneNames[r.sceneIndex]
	if err := r.engine.SwitchScene(name); err != nil {
		r.logger.Errorf("could not switch to scene %q: %v", name, err)
		return
	}
	r.logger.Noticef("scene: %s", name)
}

func (r *interactiveGLRenderer) toggleFullscreen() {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return
	}

	if !r.fullscreen {
		x, y := r.window.GetPos()
		w, h := r.window.GetSize()
		r.windowedBounds = [4]int{x, y, w, h}

		mode := monitor.GetVideoMode()
		r.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		b := r.windowedBounds
		r.window.SetMonitor(nil, b[0], b[1], b[2], b[3], glfw.DontCare)
	}
	r.fullscreen = !r.fullscreen
}

func (r *interactiveGLRenderer) onMouseEvent(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	if action == glfw.Press {
		xPos, yPos := w.GetCursorPos()
		r.lastCursorPos[0], r.lastCursorPos[1] = float32(xPos), float32(yPos)
		r.mouseLook = true
		r.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else if action == glfw.Release {
		r.mouseLook = false
		r.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (r *interactiveGLRenderer) onCursorPosEvent(w *glfw.Window, xPos, yPos float64) {
	if !r.mouseLook {
		return
	}

	newPos := types.XY(float32(xPos), float32(yPos))
	delta := newPos.Sub(r.lastCursorPos)
	r.lastCursorPos = newPos

	// Screen y grows downwards; flip it so moving the mouse up looks up.
	r.engine.HandleMouseMovement(delta[0], -delta[1])
}

func (r *interactiveGLRenderer) onFramebufferResize(w *glfw.Window, width, height int) {
	if width <= 0 || height <= 0 {
		// Minimized; keep the previous targets.
		return
	}
	r.pendingResizeW = width
	r.pendingResizeH = height
	r.pendingResize = true
}

func (r *interactiveGLRenderer) updateTitle() {
	stats := r.engine.Stats()
	camInfo := r.engine.CameraInfo()
	hdrInfo := r.engine.HDRInfo()

	var fps float64
	if stats.RenderTime > 0 {
		fps = float64(time.Second) / float64(stats.RenderTime)
	}

	title := fmt.Sprintf(
		"%s | %s | %.1f fps | tone: %s | exposure: %.1f",
		r.options.Title, camInfo.Scene, fps, hdrInfo.ToneMapping, hdrInfo.Exposure,
	)
	r.window.SetTitle(title)
}

func (r *interactiveGLRenderer) Close() {
	if r.window != nil {
		r.window.SetShouldClose(true)
		r.window.Destroy()
		r.window = nil
		glfw.Terminate()
	}
	if r.engine != nil {
		r.engine.Close()
		r.engine = nil
	}
}
