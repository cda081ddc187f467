package opencl

import (
	"errors"
	"fmt"
)

var (
	// No usable opencl device/context could be created at startup.
	ErrDeviceUnavailable = errors.New("opencl engine: no usable opencl device available")

	// Render was called on a pipeline that entered the Error state. The
	// state is only cleared by a successful SwitchScene or a full
	// re-initialization.
	ErrPipelineFailed = errors.New("opencl engine: pipeline is in error state")

	// Render was called before the pipeline finished initializing.
	ErrNotReady = errors.New("opencl engine: pipeline not initialized")
)

// A kernel program failed to compile or load with no viable fallback.
type KernelBuildError struct {
	Scene string
	HDR   bool
	Err   error
}

func (e *KernelBuildError) Error() string {
	mode := "ldr"
	if e.HDR {
		mode = "hdr"
	}
	return fmt.Sprintf("opencl engine: could not build %s kernel for scene %q: %v", mode, e.Scene, e.Err)
}

func (e *KernelBuildError) Unwrap() error {
	return e.Err
}

// A resize request specified invalid target dimensions. The previous
// buffers are retained unchanged.
type ResizeError struct {
	Width  int
	Height int
}

func (e *ResizeError) Error() string {
	return fmt.Sprintf("opencl engine: invalid render target dimensions %dx%d", e.Width, e.Height)
}

// A single frame's kernel execution or readback failed. Recovered locally
// by substituting a diagnostic frame.
type DispatchError struct {
	Stage string
	Err   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("opencl engine: %s dispatch failed: %v", e.Stage, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
