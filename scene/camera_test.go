package scene

import (
	"math"
	"testing"

	"github.com/donat19/intel-render-engine/types"
)

const testEpsilon = 1e-4

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera(types.XYZ(0, 0, 5))

	front := cam.Front()
	if !vecNear(front, types.XYZ(0, 0, -1)) {
		t.Fatalf("expected default front to be (0, 0, -1); got %v", front)
	}
	if !vecNear(cam.Up(), types.XYZ(0, 1, 0)) {
		t.Fatalf("expected default up to be (0, 1, 0); got %v", cam.Up())
	}
	if cam.MovementSpeed != defaultMovementSpeed {
		t.Fatalf("expected default movement speed %f; got %f", defaultMovementSpeed, cam.MovementSpeed)
	}
}

func TestCameraPitchClamp(t *testing.T) {
	type spec struct {
		descr string
		apply func(cam *Camera)
	}

	specs := []spec{
		{
			descr: "rotate",
			apply: func(cam *Camera) { cam.Rotate(10.0, 0, 0) },
		},
		{
			descr: "rotate smooth",
			apply: func(cam *Camera) {
				for i := 0; i < 200; i++ {
					cam.RotateSmooth(50.0, 0, 0, 1.0/60.0)
				}
			},
		},
		{
			descr: "mouse movement",
			apply: func(cam *Camera) { cam.HandleMouseMovement(0, 1000.0) },
		},
		{
			descr: "update with residual angular velocity",
			apply: func(cam *Camera) {
				cam.RotateSmooth(5000.0, 0, 0, 1.0/60.0)
				for i := 0; i < 120; i++ {
					cam.Update(1.0 / 60.0)
				}
			},
		},
	}

	for _, s := range specs {
		cam := NewCamera(types.Vec3{})
		s.apply(cam)
		if cam.Pitch > maxPitch || cam.Pitch < -maxPitch {
			t.Fatalf("[%s] expected pitch to stay within [%f, %f]; got %f", s.descr, -maxPitch, maxPitch, cam.Pitch)
		}
	}
}

func TestCameraYawWrap(t *testing.T) {
	cam := NewCamera(types.Vec3{})

	cam.Rotate(0, 3*math.Pi, 0)
	if cam.Yaw > math.Pi || cam.Yaw <= -math.Pi {
		t.Fatalf("expected yaw to be wrapped into (-pi, pi]; got %f", cam.Yaw)
	}

	cam.Rotate(0, -7*math.Pi, 0)
	if cam.Yaw > math.Pi || cam.Yaw <= -math.Pi {
		t.Fatalf("expected yaw to be wrapped into (-pi, pi]; got %f", cam.Yaw)
	}
}

func TestCameraBasisStaysOrthonormal(t *testing.T) {
	cam := NewCamera(types.Vec3{})
	cam.Rotate(0.7, 2.1, 0)

	front, right, up := cam.Front(), cam.Right(), cam.Up()
	if math.Abs(float64(front.Dot(right))) > testEpsilon ||
		math.Abs(float64(front.Dot(up))) > testEpsilon ||
		math.Abs(float64(right.Dot(up))) > testEpsilon {
		t.Fatal("expected camera basis vectors to stay mutually orthogonal")
	}

	for _, v := range []types.Vec3{front, right, up} {
		if math.Abs(float64(v.Len())-1.0) > testEpsilon {
			t.Fatalf("expected basis vector %v to have unit length", v)
		}
	}
}

func TestCameraMouseLookConvention(t *testing.T) {
	cam := NewCamera(types.Vec3{})

	// Mouse up should look up.
	cam.HandleMouseMovement(0, 10.0)
	if cam.Pitch <= 0 {
		t.Fatalf("expected positive mouse dy to increase pitch; got %f", cam.Pitch)
	}
	if cam.Front()[1] <= 0 {
		t.Fatalf("expected front vector to tilt upwards; got %v", cam.Front())
	}
}

func TestCameraMoveDirections(t *testing.T) {
	type spec struct {
		dir      Direction
		expAxis  types.Vec3
		expCoeff float32
	}

	cam := NewCamera(types.Vec3{})

	specs := []spec{
		{Forward, cam.Front(), 1},
		{Backward, cam.Front(), -1},
		{Right, cam.Right(), 1},
		{Left, cam.Right(), -1},
		{Up, cam.Up(), 1},
		{Down, cam.Up(), -1},
	}

	for _, s := range specs {
		cam := NewCamera(types.Vec3{})
		cam.Move(s.dir, 1.0, 1.0)

		exp := s.expAxis.Mul(s.expCoeff * defaultMovementSpeed)
		if !vecNear(cam.Position, exp) {
			t.Fatalf("[%s] expected position %v; got %v", s.dir, exp, cam.Position)
		}
	}
}

func TestCameraDampingDecays(t *testing.T) {
	cam := NewCamera(types.Vec3{})
	cam.MoveSmooth(Forward, 1.0/60.0, 1.0)
	cam.RotateSmooth(0, 100.0, 0, 1.0/60.0)

	// Five simulated seconds with no further input.
	for i := 0; i < 300; i++ {
		cam.Update(1.0 / 60.0)
	}

	if cam.Velocity().Len() >= 1e-3 {
		t.Fatalf("expected velocity to decay below 1e-3; got %f", cam.Velocity().Len())
	}
	if cam.AngularVelocity().Len() >= 1e-3 {
		t.Fatalf("expected angular velocity to decay below 1e-3; got %f", cam.AngularVelocity().Len())
	}
}

func TestCameraReset(t *testing.T) {
	cam := NewCamera(types.Vec3{})
	cam.MoveSmooth(Forward, 1.0/60.0, 1.0)
	cam.RotateSmooth(10, 10, 0, 1.0/60.0)

	cam.Reset(types.XYZ(0, 5, 20), 0.1, DefaultYaw, 0)

	if !vecNear(cam.Position, types.XYZ(0, 5, 20)) {
		t.Fatalf("expected position to be reset; got %v", cam.Position)
	}
	if cam.Velocity().Len() != 0 || cam.AngularVelocity().Len() != 0 {
		t.Fatal("expected residual motion to be zeroed by Reset")
	}
	if cam.Pitch != 0.1 || cam.Yaw != DefaultYaw {
		t.Fatalf("expected reset angles to be applied; got pitch=%f yaw=%f", cam.Pitch, cam.Yaw)
	}
}

func TestCameraLookAt(t *testing.T) {
	cam := NewCamera(types.XYZ(0, 0, 5))
	cam.Rotate(0.5, 1.0, 0)

	cam.LookAt(types.Vec3{})
	if !vecNear(cam.Front(), types.XYZ(0, 0, -1)) {
		t.Fatalf("expected camera to face the target; front=%v", cam.Front())
	}
}

func TestCameraRotationMatrix(t *testing.T) {
	cam := NewCamera(types.Vec3{})
	cam.Rotate(0.3, -0.8, 0)

	m := cam.RotationMatrix()
	right, up, front := cam.Right(), cam.Up(), cam.Front()

	for i := 0; i < 3; i++ {
		if !near(m[i*4], right[i]) || !near(m[i*4+1], up[i]) || !near(m[i*4+2], -front[i]) {
			t.Fatalf("row %d of rotation matrix does not embed the camera basis: %v", i, m)
		}
	}
	if m[15] != 1 || m[3] != 0 || m[7] != 0 || m[11] != 0 {
		t.Fatalf("expected affine part of the matrix to stay identity: %v", m)
	}
}

func TestCameraControlFloors(t *testing.T) {
	cam := NewCamera(types.Vec3{})

	cam.SetMovementSpeed(-3.0)
	if cam.MovementSpeed != minMovementSpeed {
		t.Fatalf("expected movement speed to be floored at %f; got %f", minMovementSpeed, cam.MovementSpeed)
	}

	cam.SetMouseSensitivity(0)
	if cam.MouseSensitivity != minMouseSensitivity {
		t.Fatalf("expected mouse sensitivity to be floored at %f; got %f", minMouseSensitivity, cam.MouseSensitivity)
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < testEpsilon
}

func vecNear(a, b types.Vec3) bool {
	return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2])
}
