package types

import "testing"

func TestIdent4(t *testing.T) {
	m := Ident4()
	v := XYZW(1, 2, 3, 4)

	if got := m.Mul4x1(v); got != v {
		t.Fatalf("expected identity transform to preserve %v; got %v", v, got)
	}
}

func TestRotationFromBasis(t *testing.T) {
	right := XYZ(1, 0, 0)
	up := XYZ(0, 1, 0)
	front := XYZ(0, 0, -1)

	m := RotationFromBasis(right, up, front)

	// A camera-space direction down -z maps onto the front vector.
	world := m.Mul4x1(XYZW(0, 0, -1, 0)).Vec3()
	if world != front {
		t.Fatalf("expected -z to map onto the front vector %v; got %v", front, world)
	}

	if got := m.Mul4x1(XYZW(1, 0, 0, 0)).Vec3(); got != right {
		t.Fatalf("expected +x to map onto the right vector %v; got %v", right, got)
	}
	if got := m.Mul4x1(XYZW(0, 1, 0, 0)).Vec3(); got != up {
		t.Fatalf("expected +y to map onto the up vector %v; got %v", up, got)
	}
}
