package engine

import (
	"image"
	"time"

	"github.com/donat19/intel-render-engine/scene"
	"github.com/donat19/intel-render-engine/types"
)

// A snapshot of the camera and animation clock, for overlays and debug
// output.
type CameraInfo struct {
	Position types.Vec3
	Angles   types.Vec3 // pitch, yaw, roll in radians
	Elapsed  float32    // seconds since the pipeline started
	Scene    string
}

// A snapshot of the hdr post-processing controls.
type HDRInfo struct {
	Enabled     bool
	Exposure    float32
	ToneMapping string
	Gamma       float32
}

// The Engine interface is implemented by render pipelines and consumed by
// the interactive display layer. Implementations own a single device
// queue; all methods must be called from the thread driving the frame
// loop.
type Engine interface {
	// Render one frame. The returned image is valid until the next
	// Render or Resize call. A non-nil error reports a recovered
	// per-frame dispatch failure; the frame then holds diagnostic
	// output rather than scene content and the render loop may keep
	// running.
	Render() (*image.RGBA, time.Duration, error)

	// Resize the render targets. Must not be called concurrently with
	// Render.
	Resize(width, height int) error

	// Switch to a different catalog scene, rebuilding kernels and
	// resetting the camera to the scene's starting pose.
	SwitchScene(name string) error

	// Camera controls.
	MoveCamera(dir scene.Direction, speedMultiplier float32)
	RotateCamera(pitch, yaw, roll float32)
	HandleMouseMovement(dx, dy float32)
	ResetCamera()
	SetCameraSpeed(v float32)
	SetMouseSensitivity(v float32)

	// HDR controls.
	SetExposure(v float32)
	AdjustExposure(delta float32)
	SetGamma(v float32)
	AdjustGamma(delta float32)
	SetToneMapping(name string) error
	CycleToneMapping() string

	// State snapshots.
	CameraInfo() CameraInfo
	HDRInfo() HDRInfo
	Stats() *FrameStats

	// Release all device resources. Idempotent.
	Close()
}
