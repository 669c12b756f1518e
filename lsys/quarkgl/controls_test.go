package quarkgl

import (
	"math"
	"testing"
)

func TestOrbitLookFromRoundTrip(t *testing.T) {
	c := OrbitController{MinRadius: 128, MaxRadius: 2048}
	c.LookFrom(V3(0, 300, -200))

	var cam Camera
	c.Apply(&cam)
	if !nearEps(cam.Position, V3(0, 300, -200), 1e-6) {
		t.Fatalf("expected camera at (0,300,-200), got %+v", cam.Position)
	}
	if cam.Target != (Vec3{}) {
		t.Fatalf("target moved: %+v", cam.Target)
	}
}

func TestOrbitClampsRadiusAndPitch(t *testing.T) {
	c := OrbitController{Radius: 200, MinRadius: 128, MaxRadius: 2048}
	c.Zoom(-1000)
	if c.Radius != 128 {
		t.Fatalf("expected min radius, got %v", c.Radius)
	}
	c.Zoom(1e6)
	if c.Radius != 2048 {
		t.Fatalf("expected max radius, got %v", c.Radius)
	}
	c.Rotate(0, 10)
	if c.Pitch != maxPitch {
		t.Fatalf("pitch not clamped: %v", c.Pitch)
	}
}

func TestOrbitAutoRotate(t *testing.T) {
	c := OrbitController{AutoRotate: true, AutoRotateSpeed: 0.5}
	c.Update()
	c.Update()
	if math.Abs(c.Yaw-1) > 1e-12 {
		t.Fatalf("expected yaw 1, got %v", c.Yaw)
	}
}

func nearEps(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}
