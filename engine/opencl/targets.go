package opencl

import (
	"github.com/achilleasa/gopencl/v1.2/cl"
	"github.com/donat19/intel-render-engine/engine/opencl/device"
)

// Bytes per pixel for the device color buffers.
const (
	hdrPixelSize = 16 // float4 radiance
	ldrPixelSize = 4  // rgba8
)

// The device render targets and their host-side readback array. Buffer
// byte sizes are always exactly in sync with (width, height); Resize
// recreates every buffer before the next dispatch can observe them.
type renderTargets struct {
	width  int
	height int

	hdrEnabled bool

	// Unclamped float4 radiance; only allocated when hdr is enabled.
	hdrBuffer *device.Buffer

	// Final rgba8 output, always present.
	ldrBuffer *device.Buffer

	// Host-side copy of the ldr buffer.
	hostImage []uint8
}

// Allocate render targets for the given output resolution.
func newRenderTargets(dev *device.Device, width, height int, hdrEnabled bool) (*renderTargets, error) {
	if width <= 0 || height <= 0 {
		return nil, &ResizeError{Width: width, Height: height}
	}

	rt := &renderTargets{
		hdrEnabled: hdrEnabled,
		hdrBuffer:  dev.Buffer("hdrRadiance"),
		ldrBuffer:  dev.Buffer("frameBuffer"),
	}

	if err := rt.allocate(width, height); err != nil {
		rt.Release()
		return nil, err
	}

	return rt, nil
}

// Resize the render targets. A request matching the current dimensions is
// a no-op; otherwise every buffer is released and recreated in one step
// so a dispatch can never observe a partially resized target. Invalid
// dimensions are rejected with the previous buffers retained.
func (rt *renderTargets) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return &ResizeError{Width: width, Height: height}
	}
	if width == rt.width && height == rt.height {
		return nil
	}
	return rt.allocate(width, height)
}

// Release old buffers and allocate the full set for the new dimensions.
func (rt *renderTargets) allocate(width, height int) error {
	rt.hdrBuffer.Release()
	rt.ldrBuffer.Release()

	pixels := width * height

	if rt.hdrEnabled {
		if err := rt.hdrBuffer.Allocate(pixels*hdrPixelSize, cl.MEM_READ_WRITE); err != nil {
			return err
		}
	}
	if err := rt.ldrBuffer.Allocate(pixels*ldrPixelSize, cl.MEM_WRITE_ONLY); err != nil {
		rt.hdrBuffer.Release()
		return err
	}
	rt.hostImage = make([]uint8, pixels*ldrPixelSize)

	rt.width = width
	rt.height = height
	return nil
}

// Read the ldr buffer back into the host image. Blocks until the queue
// has produced the complete frame.
func (rt *renderTargets) Readback() error {
	return rt.ldrBuffer.ReadData(0, 0, rt.ldrBuffer.Size(), rt.hostImage)
}

// Release all device buffers. Idempotent; safe on partially constructed
// targets.
func (rt *renderTargets) Release() {
	if rt.hdrBuffer != nil {
		rt.hdrBuffer.Release()
	}
	if rt.ldrBuffer != nil {
		rt.ldrBuffer.Release()
	}
}
