package types

import (
	"math"
	"testing"
)

func TestVec3Ops(t *testing.T) {
	v1 := XYZ(1, 2, 3)
	v2 := XYZ(4, 5, 6)

	if exp, got := XYZ(5, 7, 9), v1.Add(v2); got != exp {
		t.Fatalf("expected sum %v; got %v", exp, got)
	}
	if exp, got := XYZ(-3, -3, -3), v1.Sub(v2); got != exp {
		t.Fatalf("expected difference %v; got %v", exp, got)
	}
	if exp, got := XYZ(2, 4, 6), v1.Mul(2); got != exp {
		t.Fatalf("expected scaled vector %v; got %v", exp, got)
	}
	if exp, got := float32(32), v1.Dot(v2); got != exp {
		t.Fatalf("expected dot product %f; got %f", exp, got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := XYZ(1, 0, 0)
	y := XYZ(0, 1, 0)

	if exp, got := XYZ(0, 0, 1), x.Cross(y); got != exp {
		t.Fatalf("expected right-handed cross product %v; got %v", exp, got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := XYZ(3, 0, 4)

	n := v.Normalize()
	if math.Abs(float64(n.Len())-1.0) > 1e-6 {
		t.Fatalf("expected unit length; got %f", n.Len())
	}

	// Degenerate input must not produce NaNs.
	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Fatalf("expected the zero vector to normalize to itself; got %v", zero)
	}
}

func TestVecConversions(t *testing.T) {
	v := XYZ(1, 2, 3)

	v4 := v.Vec4(9)
	if v4 != XYZW(1, 2, 3, 9) {
		t.Fatalf("expected expanded vector (1, 2, 3, 9); got %v", v4)
	}
	if v4.Vec3() != v {
		t.Fatalf("expected reduced vector %v; got %v", v, v4.Vec3())
	}
}
