package opencl

import "fmt"

// Tone-mapping operator selector passed to the tonemapResolve kernel. The
// numeric values must match the switch inside the kernel exactly.
type ToneOperator int32

const (
	ToneLinear   ToneOperator = 0
	ToneReinhard ToneOperator = 1
	ToneFilmic   ToneOperator = 2
	ToneACES     ToneOperator = 3
)

// The operator cycling order used by CycleToneMapping.
var toneOperators = []ToneOperator{ToneLinear, ToneReinhard, ToneFilmic, ToneACES}

// Implements Stringer; maps the operator to its user-facing name.
func (op ToneOperator) String() string {
	switch op {
	case ToneLinear:
		return "linear"
	case ToneReinhard:
		return "reinhard"
	case ToneFilmic:
		return "filmic"
	case ToneACES:
		return "aces"
	}
	panic(fmt.Sprintf("opencl: unsupported tone operator: %d", int32(op)))
}

// Map an operator name to its kernel selector id. Unrecognized names map
// to reinhard; this is the forgiving kernel-side mapping, not a
// validating parser. Use ToneOperatorByName to reject unknown names.
func ParseToneOperator(name string) ToneOperator {
	op, ok := ToneOperatorByName(name)
	if !ok {
		return ToneReinhard
	}
	return op
}

// Strict operator lookup by name.
func ToneOperatorByName(name string) (ToneOperator, bool) {
	switch name {
	case "linear":
		return ToneLinear, true
	case "reinhard":
		return ToneReinhard, true
	case "filmic":
		return ToneFilmic, true
	case "aces":
		return ToneACES, true
	}
	return ToneReinhard, false
}

// Get the operator following op in the cycling order, wrapping around
// after aces.
func (op ToneOperator) Next() ToneOperator {
	for i, candidate := range toneOperators {
		if candidate == op {
			return toneOperators[(i+1)%len(toneOperators)]
		}
	}
	return ToneReinhard
}
