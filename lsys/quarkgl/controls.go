package quarkgl

import "math"

// OrbitController provides basic orbit/zoom interactions for a camera.
//
// It does not depend on any input system; hosts translate their own input into
// Rotate and Zoom calls and call Update once per frame.
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	MinRadius Scalar
	MaxRadius Scalar

	// AutoRotate adds AutoRotateSpeed radians of yaw per Update.
	AutoRotate      bool
	AutoRotateSpeed Scalar
}

// maxPitch keeps the camera off the poles where LookAt degenerates.
const maxPitch = math.Pi/2 - 0.01

func (c *OrbitController) Update() {
	if c.AutoRotate {
		c.Yaw += c.AutoRotateSpeed
	}
}

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = 3
	}
	r = c.clampRadius(r)

	m := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(c.Pitch))
	p := Mat4MulV4(m, Vec4{X: 0, Y: 0, Z: r, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

// LookFrom places the camera at pos, keeping the current target.
func (c *OrbitController) LookFrom(pos Vec3) {
	off := pos.Sub(c.Target)
	r := Len(off)
	if r == 0 {
		return
	}
	c.Radius = c.clampRadius(r)
	c.Yaw = math.Atan2(off.X, off.Z)
	c.Pitch = 0
	c.Rotate(0, -math.Asin(off.Y/r))
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch Scalar) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

func (c *OrbitController) Zoom(delta Scalar) {
	c.Radius = c.clampRadius(c.Radius + delta)
}

func (c *OrbitController) clampRadius(r Scalar) Scalar {
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}
	return r
}
