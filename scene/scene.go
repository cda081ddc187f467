package scene

import (
	"fmt"

	"github.com/donat19/intel-render-engine/types"
)

// The set of object primitives that the sdf kernels can evaluate.
type ObjectType uint8

const (
	ObjectSphere ObjectType = iota
	ObjectBox
	ObjectTorus
	ObjectCloudVolume
)

// Implements Stringer.
func (ot ObjectType) String() string {
	switch ot {
	case ObjectSphere:
		return "sphere"
	case ObjectBox:
		return "box"
	case ObjectTorus:
		return "torus"
	case ObjectCloudVolume:
		return "cloud-volume"
	}
	panic(fmt.Sprintf("scene: unsupported object type: %d", uint8(ot)))
}

// The procedural animation applied to an object by the kernels.
type AnimationKind uint8

const (
	AnimOrbit AnimationKind = iota
	AnimRotate
	AnimBob
)

// Optional per-object animation parameters.
type Animation struct {
	Kind AnimationKind

	// Phase offset in radians for staggering identical animations.
	Phase float32
}

type SphereParams struct {
	Radius float32
}

type BoxParams struct {
	HalfExtents types.Vec3
}

type TorusParams struct {
	MajorRadius float32
	MinorRadius float32
}

type CloudVolumeParams struct {
	Extents types.Vec3
	Density float32
}

// A placed object. Exactly one of the params fields is meaningful,
// selected by Type.
type Object struct {
	Type     ObjectType
	Position types.Vec3

	Sphere SphereParams
	Box    BoxParams
	Torus  TorusParams
	Cloud  CloudVolumeParams

	// Nil for static objects.
	Anim *Animation
}

// A point light.
type Light struct {
	Position  types.Vec3
	Color     types.Vec3
	Intensity float32
}

// A complete scene description. Scenes are immutable once constructed;
// switching scenes always builds a fresh instance from the catalog.
type Scene struct {
	Name    string
	Objects []Object
	Lights  []Light

	// Starting camera pose.
	CameraPosition types.Vec3
	CameraAngles   types.Vec3 // pitch, yaw, roll in radians
}
