package quarkgl

// CameraType selects camera projection.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrtho
)

// Camera describes the viewing transform.
type Camera struct {
	Type CameraType

	Position Vec3
	Target   Vec3
	Up       Vec3

	// Perspective.
	FOVYRad Scalar

	// Orthographic (half-height).
	OrthoSize Scalar

	Near Scalar
	Far  Scalar
}

// DefaultCamera returns a perspective camera looking at the origin.
func DefaultCamera() Camera {
	return Camera{
		Type:      CameraPerspective,
		Position:  V3(0, 0, 3),
		Target:    V3(0, 0, 0),
		Up:        V3(0, 1, 0),
		FOVYRad:   1.0,
		Near:      0.05,
		Far:       100,
		OrthoSize: 1,
	}
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	switch c.Type {
	case CameraOrtho:
		size := c.OrthoSize
		if size == 0 {
			size = 1
		}
		top := size
		bottom := -size
		right := size * aspect
		left := -right
		return Mat4Ortho(left, right, bottom, top, c.Near, c.Far)
	default:
		fov := c.FOVYRad
		if fov == 0 {
			fov = 1.0
		}
		return Mat4Perspective(fov, aspect, c.Near, c.Far)
	}
}

// Line is a world-space line primitive.
type Line struct {
	A, B  Vec3
	Color Color
}

// Fog fades colors linearly into Color between Near and Far distance from the camera.
type Fog struct {
	Color     Color
	Near, Far Scalar
}

// Apply returns c as seen from dist away.
func (f Fog) Apply(c Color, dist Scalar) Color {
	if f.Far <= f.Near || dist <= f.Near {
		return c
	}
	k := Clamp01((dist - f.Near) / (f.Far - f.Near))
	a := uint8((1 - k) * Scalar(c.A))
	return c.WithAlpha(a).Blend(f.Color).WithAlpha(c.A)
}
