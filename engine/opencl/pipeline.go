package opencl

import (
	"fmt"
	"image"
	"path"
	"runtime"
	"sync"
	"time"

	"github.com/donat19/intel-render-engine/engine"
	"github.com/donat19/intel-render-engine/engine/opencl/device"
	"github.com/donat19/intel-render-engine/log"
	"github.com/donat19/intel-render-engine/scene"
	"github.com/donat19/intel-render-engine/types"
)

// Pipeline lifecycle states.
type pipelineState uint8

const (
	stateUninitialized pipelineState = iota
	stateReady
	stateRendering
	stateError
)

const (
	// Upper bound for a single frame's device work before the pipeline
	// gives up on the queue and fails hard.
	defaultDispatchTimeout = 10 * time.Second

	// Frame delta assumed before the first frame establishes a real one.
	initialFrameDelta float32 = 1.0 / 60.0
)

// Relative path from this source file to the kernel program directory.
const relativePathToPrograms = "../../CL"

// Pipeline creation options.
type Options struct {
	// Output dimensions in pixels.
	Width  int
	Height int

	// Initial catalog scene.
	Scene string

	// Request hdr rendering. The pipeline may downgrade to ldr when the
	// hdr kernel variant fails to build.
	HDR bool

	// Directory holding the .cl programs. Resolved relative to this
	// package when empty.
	ProgramDir string

	// Give up on a stuck device call after this long. Defaults to
	// defaultDispatchTimeout when zero.
	DispatchTimeout time.Duration
}

// A two-stage raymarching render pipeline. One frame advances the camera,
// evaluates the scene kernel into the hdr (or directly the ldr) buffer,
// resolves tone mapping, and reads the frame back to host memory.
//
// All dispatches are issued in program order on the device's single
// command queue; the blocking readback at the end of the frame guarantees
// the host never observes a partially written image. Pipeline methods
// must be driven by a single goroutine; the embedded lock only serializes
// Resize and SwitchScene against an in-flight Render from a window event
// callback.
type Pipeline struct {
	sync.Mutex

	logger log.Logger

	dev     *device.Device
	catalog *scene.Catalog

	camera  *scene.Camera
	hdr     *hdrState
	targets *renderTargets
	kernels *sceneKernels
	sc      *scene.Scene

	// True when the caller asked for hdr; re-attempted on scene switch
	// even after a downgrade.
	hdrRequested bool

	programDir      string
	dispatchTimeout time.Duration

	state   pipelineState
	lastErr error

	startTime     time.Time
	lastFrameTime time.Time
	lastDelta     float32

	stats engine.FrameStats
}

// Compile-time interface check.
var _ engine.Engine = (*Pipeline)(nil)

// Create a render pipeline on the given device. The device context and
// queue are created here, once, and shared by every component for the
// pipeline's lifetime.
func NewPipeline(dev *device.Device, catalog *scene.Catalog, opts Options) (*Pipeline, error) {
	if dev == nil {
		return nil, ErrDeviceUnavailable
	}

	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, &ResizeError{Width: opts.Width, Height: opts.Height}
	}
	if opts.Scene == "" {
		opts.Scene = "demo"
	}
	if opts.ProgramDir == "" {
		_, thisFile, _, _ := runtime.Caller(0)
		opts.ProgramDir = path.Join(path.Dir(thisFile), relativePathToPrograms)
	}
	if opts.DispatchTimeout == 0 {
		opts.DispatchTimeout = defaultDispatchTimeout
	}
	if catalog == nil {
		catalog = scene.DefaultCatalog()
	}

	sc, err := catalog.Get(opts.Scene)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		logger:          log.New(fmt.Sprintf("opencl pipeline (%s)", dev.Name)),
		dev:             dev,
		catalog:         catalog,
		hdrRequested:    opts.HDR,
		programDir:      opts.ProgramDir,
		dispatchTimeout: opts.DispatchTimeout,
	}

	if err = dev.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	p.kernels, err = buildSceneKernels(dev, p.logger, p.programDir, sc.Name, opts.HDR)
	if err != nil {
		dev.Close()
		return nil, err
	}

	p.targets, err = newRenderTargets(dev, opts.Width, opts.Height, p.kernels.hdr)
	if err != nil {
		p.kernels.Release()
		dev.Close()
		return nil, err
	}

	p.hdr = newHDRState(p.kernels.hdr)
	p.sc = sc
	p.camera = scene.NewCamera(sc.CameraPosition)
	p.camera.Reset(sc.CameraPosition, sc.CameraAngles[0], sc.CameraAngles[1], sc.CameraAngles[2])

	p.state = stateReady
	p.startTime = time.Now()
	p.lastFrameTime = p.startTime
	p.lastDelta = initialFrameDelta

	p.logger.Noticef("pipeline ready: scene=%s %dx%d hdr=%v", sc.Name, opts.Width, opts.Height, p.hdr.enabled)
	return p, nil
}

// Render one frame. A recovered dispatch failure returns a diagnostic
// frame together with the DispatchError; the pipeline stays usable. Only
// a stuck device queue latches the Error state.
func (p *Pipeline) Render() (*image.RGBA, time.Duration, error) {
	p.Lock()
	defer p.Unlock()

	switch p.state {
	case stateUninitialized:
		return nil, 0, ErrNotReady
	case stateError:
		return p.diagnosticFrame(), 0, fmt.Errorf("%w: %v", ErrPipelineFailed, p.lastErr)
	}

	p.state = stateRendering
	frameStart := time.Now()

	// Advance camera simulation by the wall-clock delta.
	dt := float32(frameStart.Sub(p.lastFrameTime).Seconds())
	p.lastFrameTime = frameStart
	p.lastDelta = dt
	p.camera.Update(dt)

	elapsed := float32(frameStart.Sub(p.startTime).Seconds())

	err := p.dispatchFrame(elapsed)
	if err != nil {
		if p.state == stateError {
			// A stuck queue is not recoverable; keep the error latched.
			p.lastErr = err
			return p.diagnosticFrame(), time.Since(frameStart), err
		}
		p.state = stateReady
		p.logger.Errorf("frame dropped: %v", err)
		return p.diagnosticFrame(), time.Since(frameStart), err
	}

	p.state = stateReady
	p.stats.FrameCount++
	p.stats.RenderTime = time.Since(frameStart)

	frame := &image.RGBA{
		Pix:    p.targets.hostImage,
		Stride: p.targets.width * ldrPixelSize,
		Rect:   image.Rect(0, 0, p.targets.width, p.targets.height),
	}
	return frame, p.stats.RenderTime, nil
}

// Issue the frame's kernel dispatches and the final readback. Runs under
// the pipeline lock with a watchdog around the blocking device calls.
func (p *Pipeline) dispatchFrame(elapsed float32) error {
	width := int32(p.targets.width)
	height := int32(p.targets.height)
	rotation := p.camera.RotationMatrix()

	// float3 kernel args are 16 bytes wide on the host side.
	cameraPos := p.camera.Position.Vec4(1.0)

	return p.guardDispatch(func() error {
		var sceneTarget = p.targets.ldrBuffer
		if p.hdr.enabled {
			sceneTarget = p.targets.hdrBuffer
		}

		err := p.kernels.scene.SetArgs(
			sceneTarget,
			width,
			height,
			elapsed,
			rotation,
			cameraPos,
		)
		if err != nil {
			return &DispatchError{Stage: "scene", Err: err}
		}

		sceneTime, err := p.kernels.scene.Exec2D(0, 0, int(width), int(height), 0, 0)
		if err != nil {
			return &DispatchError{Stage: "scene", Err: err}
		}
		p.stats.SceneKernelTime = sceneTime
		p.stats.TonemapTime = 0

		if p.hdr.enabled {
			opID := int32(p.hdr.operator)
			err = p.kernels.tonemap.SetArgs(
				p.targets.hdrBuffer,
				p.targets.ldrBuffer,
				width,
				height,
				p.hdr.exposure,
				opID,
				p.hdr.gamma,
			)
			if err != nil {
				return &DispatchError{Stage: "tonemap", Err: err}
			}

			tonemapTime, err := p.kernels.tonemap.Exec2D(0, 0, int(width), int(height), 0, 0)
			if err != nil {
				return &DispatchError{Stage: "tonemap", Err: err}
			}
			p.stats.TonemapTime = tonemapTime
			p.stats.ToneOperatorID = opID
		}

		if err = p.targets.Readback(); err != nil {
			return &DispatchError{Stage: "readback", Err: err}
		}
		return nil
	})
}

// Run the dispatch body with a watchdog. A device call that exceeds the
// dispatch timeout latches the Error state; the interactive loop depends
// on bounded frame latency and a wedged queue never recovers.
func (p *Pipeline) guardDispatch(dispatch func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- dispatch()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(p.dispatchTimeout):
		p.state = stateError
		return &DispatchError{
			Stage: "watchdog",
			Err:   fmt.Errorf("device call did not complete within %s", p.dispatchTimeout),
		}
	}
}

// Build the solid-color placeholder frame returned for failed or
// short-circuited renders. The accompanying error carries the diagnostic
// message for the display layer.
func (p *Pipeline) diagnosticFrame() *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, p.targets.width, p.targets.height))
	for i := 0; i < len(frame.Pix); i += 4 {
		frame.Pix[i] = 0x40   // R
		frame.Pix[i+1] = 0x00 // G
		frame.Pix[i+2] = 0x08 // B
		frame.Pix[i+3] = 0xff // A
	}
	return frame
}

// Resize the render targets. Must complete before the next Render call
// dispatches against them; the lock serializes the swap. Resizing does
// not clear a latched Error state.
func (p *Pipeline) Resize(width, height int) error {
	p.Lock()
	defer p.Unlock()
	return p.targets.Resize(width, height)
}

// Switch to a different catalog scene. The new kernels are built before
// the previous ones are released, so a failed build leaves the current
// scene fully usable. A successful switch clears a latched Error state
// and resets the camera to the new scene's starting pose. HDR settings
// carry over unchanged.
func (p *Pipeline) SwitchScene(name string) error {
	p.Lock()
	defer p.Unlock()

	if p.sc != nil && p.sc.Name == name && p.state != stateError {
		return nil
	}

	sc, err := p.catalog.Get(name)
	if err != nil {
		return err
	}

	kernels, err := buildSceneKernels(p.dev, p.logger, p.programDir, sc.Name, p.hdrRequested)
	if err != nil {
		return err
	}

	// The hdr buffer's presence depends on the active mode; rebuild the
	// targets when the downgrade status changed between scenes.
	if kernels.hdr != p.targets.hdrEnabled {
		targets, err := newRenderTargets(p.dev, p.targets.width, p.targets.height, kernels.hdr)
		if err != nil {
			kernels.Release()
			return err
		}
		p.targets.Release()
		p.targets = targets
	}

	p.kernels.Release()
	p.kernels = kernels
	p.hdr.enabled = kernels.hdr
	p.sc = sc
	p.camera.Reset(sc.CameraPosition, sc.CameraAngles[0], sc.CameraAngles[1], sc.CameraAngles[2])

	p.state = stateReady
	p.lastErr = nil
	p.logger.Noticef("switched to scene %s (hdr=%v)", sc.Name, p.hdr.enabled)
	return nil
}

// Camera controls. These mutate state owned by the frame-loop thread and
// never fail; out-of-range values are clamped.

func (p *Pipeline) MoveCamera(dir scene.Direction, speedMultiplier float32) {
	p.camera.MoveSmooth(dir, p.lastDelta, speedMultiplier)
}

func (p *Pipeline) RotateCamera(pitch, yaw, roll float32) {
	p.camera.Rotate(pitch, yaw, roll)
}

func (p *Pipeline) HandleMouseMovement(dx, dy float32) {
	p.camera.HandleMouseMovement(dx, dy)
}

func (p *Pipeline) ResetCamera() {
	sc := p.sc
	p.camera.Reset(sc.CameraPosition, sc.CameraAngles[0], sc.CameraAngles[1], sc.CameraAngles[2])
}

func (p *Pipeline) SetCameraSpeed(v float32) {
	p.camera.SetMovementSpeed(v)
}

func (p *Pipeline) SetMouseSensitivity(v float32) {
	p.camera.SetMouseSensitivity(v)
}

// HDR controls; same ownership rules as the camera controls.

func (p *Pipeline) SetExposure(v float32) {
	p.hdr.SetExposure(v)
}

func (p *Pipeline) AdjustExposure(delta float32) {
	p.hdr.AdjustExposure(delta)
}

func (p *Pipeline) SetGamma(v float32) {
	p.hdr.SetGamma(v)
}

func (p *Pipeline) AdjustGamma(delta float32) {
	p.hdr.AdjustGamma(delta)
}

func (p *Pipeline) SetToneMapping(name string) error {
	return p.hdr.SetToneMapping(name)
}

func (p *Pipeline) CycleToneMapping() string {
	return p.hdr.CycleToneMapping()
}

// Get a snapshot of the camera pose and animation clock.
func (p *Pipeline) CameraInfo() engine.CameraInfo {
	return engine.CameraInfo{
		Position: p.camera.Position,
		Angles:   types.XYZ(p.camera.Pitch, p.camera.Yaw, p.camera.Roll),
		Elapsed:  float32(time.Since(p.startTime).Seconds()),
		Scene:    p.sc.Name,
	}
}

// Get a snapshot of the hdr post-processing controls.
func (p *Pipeline) HDRInfo() engine.HDRInfo {
	return engine.HDRInfo{
		Enabled:     p.hdr.enabled,
		Exposure:    p.hdr.exposure,
		ToneMapping: p.hdr.operator.String(),
		Gamma:       p.hdr.gamma,
	}
}

// Get statistics for the last rendered frame.
func (p *Pipeline) Stats() *engine.FrameStats {
	return &p.stats
}

// Release all device resources in teardown order: drain the queue,
// release buffers, release kernels and program, then the queue and
// context. Idempotent.
func (p *Pipeline) Close() {
	p.Lock()
	defer p.Unlock()

	if p.dev == nil {
		return
	}

	if err := p.dev.Finish(); err != nil {
		p.logger.Warningf("queue drain during close failed: %v", err)
	}

	if p.targets != nil {
		p.targets.Release()
		p.targets = nil
	}
	if p.kernels != nil {
		p.kernels.Release()
		p.kernels = nil
	}

	p.dev.Close()
	p.dev = nil
	p.state = stateUninitialized
}
