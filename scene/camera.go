package scene

import (
	"fmt"
	"math"

	"github.com/donat19/intel-render-engine/types"
)

// Camera movement directions in local space.
type Direction uint8

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// Implements Stringer.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	panic(fmt.Sprintf("scene: unsupported direction: %d", uint8(d)))
}

const (
	defaultMovementSpeed    float32 = 5.0
	defaultMouseSensitivity float32 = 0.1
	defaultDamping          float32 = 8.0

	// Pitch stays slightly short of +-90 degrees so the basis derivation
	// never degenerates.
	maxPitch = float32(math.Pi/2.0 - 0.01)

	minMovementSpeed    float32 = 0.1
	minMouseSensitivity float32 = 0.01
)

// Yaw that points the derived front vector down -Z.
const DefaultYaw = float32(-math.Pi / 2.0)

var worldUp = types.XYZ(0, 1, 0)

// A first-person fly camera. Uses a right-handed Y-up coordinate system;
// pitch/yaw/roll are Euler angles in radians and the front vector is
// derived from yaw and pitch.
//
// Camera is not safe for concurrent use; it is owned by the render loop.
type Camera struct {
	Position types.Vec3

	Pitch float32
	Yaw   float32
	Roll  float32

	// Derived orthonormal basis.
	front types.Vec3
	right types.Vec3
	up    types.Vec3

	// Residual motion for the damped movement variants.
	velocity        types.Vec3
	angularVelocity types.Vec3

	MovementSpeed    float32
	MouseSensitivity float32
	Damping          float32
}

// Create a camera at the given position looking down -Z.
func NewCamera(position types.Vec3) *Camera {
	c := &Camera{
		Position:         position,
		Yaw:              DefaultYaw,
		MovementSpeed:    defaultMovementSpeed,
		MouseSensitivity: defaultMouseSensitivity,
		Damping:          defaultDamping,
	}
	c.updateBasis()
	return c
}

// Derive the camera basis from the current angles. front uses the
// yaw-then-pitch composition; right and up follow via cross products with
// the world up vector. Changing this ordering changes the up convention
// the kernels were written against.
func (c *Camera) updateBasis() {
	sinY, cosY := math.Sincos(float64(c.Yaw))
	sinP, cosP := math.Sincos(float64(c.Pitch))

	c.front = types.XYZ(
		float32(cosY*cosP),
		float32(sinP),
		float32(sinY*cosP),
	).Normalize()
	c.right = c.front.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// Displace the camera immediately along one of its local axes.
func (c *Camera) Move(dir Direction, dt, speedMultiplier float32) {
	c.Position = c.Position.Add(c.axisFor(dir).Mul(c.MovementSpeed * speedMultiplier * dt))
}

// Accelerate the camera along one of its local axes. The accumulated
// velocity is damped and integrated, so continuous per-frame input
// produces smooth acceleration and deceleration.
func (c *Camera) MoveSmooth(dir Direction, dt, speedMultiplier float32) {
	accel := c.MovementSpeed * speedMultiplier
	c.velocity = c.velocity.Add(c.axisFor(dir).Mul(accel * dt))

	c.velocity = c.velocity.Mul(1.0 - c.Damping*dt)
	c.Position = c.Position.Add(c.velocity.Mul(dt))
}

func (c *Camera) axisFor(dir Direction) types.Vec3 {
	switch dir {
	case Forward:
		return c.front
	case Backward:
		return c.front.Mul(-1)
	case Left:
		return c.right.Mul(-1)
	case Right:
		return c.right
	case Up:
		return c.up
	case Down:
		return c.up.Mul(-1)
	}
	return types.Vec3{}
}

// Rotate the camera by the given angle deltas.
func (c *Camera) Rotate(deltaPitch, deltaYaw, deltaRoll float32) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw
	c.Roll += deltaRoll

	c.constrainAngles()
	c.updateBasis()
}

// Damped variant of Rotate; deltas accumulate into the angular velocity
// which decays over time like MoveSmooth.
func (c *Camera) RotateSmooth(deltaPitch, deltaYaw, deltaRoll, dt float32) {
	c.angularVelocity[0] += deltaPitch * c.MouseSensitivity
	c.angularVelocity[1] += deltaYaw * c.MouseSensitivity
	c.angularVelocity[2] += deltaRoll * c.MouseSensitivity

	c.angularVelocity = c.angularVelocity.Mul(1.0 - c.Damping*dt)

	c.Pitch += c.angularVelocity[0] * dt
	c.Yaw += c.angularVelocity[1] * dt
	c.Roll += c.angularVelocity[2] * dt

	c.constrainAngles()
	c.updateBasis()
}

// Apply a mouse-look delta. Offsets are scaled by the mouse sensitivity
// and applied instantly (no damping). Moving the mouse up increases pitch,
// so mouse-up looks up.
func (c *Camera) HandleMouseMovement(dx, dy float32) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch += dy * c.MouseSensitivity

	c.constrainAngles()
	c.updateBasis()
}

// Point the camera at a world-space target.
func (c *Camera) LookAt(target types.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	c.Yaw = float32(math.Atan2(float64(dir[2]), float64(dir[0])))
	c.Pitch = float32(math.Asin(float64(dir[1])))

	c.constrainAngles()
	c.updateBasis()
}

// Advance the camera simulation by dt seconds. Damps any residual
// velocity and angular velocity and integrates them, so motion decays to
// rest after input stops. Call once per frame.
func (c *Camera) Update(dt float32) {
	c.velocity = c.velocity.Mul(1.0 - c.Damping*dt)
	c.angularVelocity = c.angularVelocity.Mul(1.0 - c.Damping*dt)

	c.Position = c.Position.Add(c.velocity.Mul(dt))

	c.Pitch += c.angularVelocity[0] * dt
	c.Yaw += c.angularVelocity[1] * dt
	c.Roll += c.angularVelocity[2] * dt

	c.constrainAngles()
	c.updateBasis()
}

// Set an absolute pose and zero all residual motion.
func (c *Camera) Reset(position types.Vec3, pitch, yaw, roll float32) {
	c.Position = position
	c.Pitch = pitch
	c.Yaw = yaw
	c.Roll = roll
	c.velocity = types.Vec3{}
	c.angularVelocity = types.Vec3{}

	c.constrainAngles()
	c.updateBasis()
}

func (c *Camera) constrainAngles() {
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	} else if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}

	// Keep yaw in (-pi, pi]; only needed for readable debug output.
	for c.Yaw > math.Pi {
		c.Yaw -= 2 * math.Pi
	}
	for c.Yaw <= -math.Pi {
		c.Yaw += 2 * math.Pi
	}
}

// Get the rotation matrix for the current basis, flattened row-major for
// the kernel parameter block.
func (c *Camera) RotationMatrix() types.Mat4 {
	return types.RotationFromBasis(c.right, c.up, c.front)
}

// Basis accessors.
func (c *Camera) Front() types.Vec3 { return c.front }
func (c *Camera) Right() types.Vec3 { return c.right }
func (c *Camera) Up() types.Vec3    { return c.up }

// Residual motion accessors.
func (c *Camera) Velocity() types.Vec3        { return c.velocity }
func (c *Camera) AngularVelocity() types.Vec3 { return c.angularVelocity }

// Set camera movement speed in world units per second.
func (c *Camera) SetMovementSpeed(speed float32) {
	if speed < minMovementSpeed {
		speed = minMovementSpeed
	}
	c.MovementSpeed = speed
}

// Set mouse sensitivity in radians per pixel.
func (c *Camera) SetMouseSensitivity(sensitivity float32) {
	if sensitivity < minMouseSensitivity {
		sensitivity = minMouseSensitivity
	}
	c.MouseSensitivity = sensitivity
}

// Implements Stringer.
func (c *Camera) String() string {
	return fmt.Sprintf(
		"Camera(pos=(%.2f, %.2f, %.2f), pitch=%.1f°, yaw=%.1f°, roll=%.1f°)",
		c.Position[0], c.Position[1], c.Position[2],
		c.Pitch*180/math.Pi, c.Yaw*180/math.Pi, c.Roll*180/math.Pi,
	)
}
