package engine

import "time"

// Statistics for the last rendered frame.
type FrameStats struct {
	// Total number of frames rendered since pipeline creation.
	FrameCount uint64

	// Time spent executing the scene evaluation kernel.
	SceneKernelTime time.Duration

	// Time spent executing the tone-map kernel. Zero when hdr is off.
	TonemapTime time.Duration

	// Time for the full frame including readback.
	RenderTime time.Duration

	// The tone operator id passed to the last tone-map dispatch.
	ToneOperatorID int32
}
