package quarkgl

import (
	"math"
	"testing"
)

var identity = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

func TestMat4MulIdentity(t *testing.T) {
	a := identity
	b := Mat4RotateY(0.5)
	got := Mat4Mul(a, b)
	if got != b {
		t.Fatalf("identity*a mismatch")
	}
	got2 := Mat4Mul(b, a)
	if got2 != b {
		t.Fatalf("a*identity mismatch")
	}
}

func TestLookAtNotIdentity(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	if m == identity {
		t.Fatalf("lookAt unexpectedly identity")
	}
}

func near(a, b Vec3) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestRotateAxisAngleQuarterTurn(t *testing.T) {
	up := V3(0, 1, 0)
	got := RotateAxisAngle(V3(-5, 0, 0), up, math.Pi/2)
	if !near(got, V3(0, 0, 5)) {
		t.Fatalf("expected (0,0,5), got %+v", got)
	}
	back := RotateAxisAngle(got, up, -math.Pi/2)
	if !near(back, V3(-5, 0, 0)) {
		t.Fatalf("expected round trip, got %+v", back)
	}
}

func TestRotateAxisAngleKeepsLength(t *testing.T) {
	v := V3(3, 4, 12)
	got := RotateAxisAngle(v, V3(0, 1, 0), 0.37)
	if math.Abs(Len(got)-Len(v)) > 1e-9 {
		t.Fatalf("length changed: %v -> %v", Len(v), Len(got))
	}
	if got.Y != v.Y {
		t.Fatalf("rotation about y changed y: %v", got.Y)
	}
}

func TestRotateAxisAngleZeroAxis(t *testing.T) {
	v := V3(1, 2, 3)
	if got := RotateAxisAngle(v, Vec3{}, 1); got != v {
		t.Fatalf("expected unchanged vector, got %+v", got)
	}
}

func TestMinMaxLerp(t *testing.T) {
	a, b := V3(1, 5, -2), V3(3, -1, 0)
	if got := MinV(a, b); got != V3(1, -1, -2) {
		t.Fatalf("MinV: %+v", got)
	}
	if got := MaxV(a, b); got != V3(3, 5, 0) {
		t.Fatalf("MaxV: %+v", got)
	}
	if got := Lerp(V3(0, 0, 0), V3(10, 20, 30), 0.5); got != V3(5, 10, 15) {
		t.Fatalf("Lerp: %+v", got)
	}
}
