package opencl

import "fmt"

// Exposure and gamma bounds enforced by hdrState setters.
const (
	minExposure float32 = 0.1
	maxExposure float32 = 10.0
	minGamma    float32 = 1.0
	maxGamma    float32 = 3.0

	defaultExposure float32 = 1.0
	defaultGamma    float32 = 2.2
)

// The hdr post-processing controls consumed once per frame by the
// pipeline. Setters clamp out-of-range values instead of rejecting them;
// interactive controls should never fail. Not safe for concurrent use;
// owned by the thread driving the frame loop.
type hdrState struct {
	enabled  bool
	exposure float32
	gamma    float32
	operator ToneOperator
}

func newHDRState(enabled bool) *hdrState {
	return &hdrState{
		enabled:  enabled,
		exposure: defaultExposure,
		gamma:    defaultGamma,
		operator: ToneReinhard,
	}
}

// Set exposure, clamped to [0.1, 10.0].
func (h *hdrState) SetExposure(v float32) {
	h.exposure = clampf(v, minExposure, maxExposure)
}

// Adjust exposure by a delta, clamped to [0.1, 10.0].
func (h *hdrState) AdjustExposure(delta float32) {
	h.SetExposure(h.exposure + delta)
}

// Set gamma, clamped to [1.0, 3.0].
func (h *hdrState) SetGamma(v float32) {
	h.gamma = clampf(v, minGamma, maxGamma)
}

// Adjust gamma by a delta, clamped to [1.0, 3.0].
func (h *hdrState) AdjustGamma(delta float32) {
	h.SetGamma(h.gamma + delta)
}

// Select a tone-mapping operator by name. Unknown names are rejected and
// leave the current operator unchanged.
func (h *hdrState) SetToneMapping(name string) error {
	op, ok := ToneOperatorByName(name)
	if !ok {
		return fmt.Errorf("opencl engine: unknown tone-mapping operator %q", name)
	}
	h.operator = op
	return nil
}

// Advance to the next operator in the cycling order and return its name.
func (h *hdrState) CycleToneMapping() string {
	h.operator = h.operator.Next()
	return h.operator.String()
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
