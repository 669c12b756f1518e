package path

import "arbor/lsys/quarkgl"

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max quarkgl.Vec3
}

// Extend grows b to include p.
func (b Box) Extend(p quarkgl.Vec3) Box {
	return Box{Min: quarkgl.MinV(b.Min, p), Max: quarkgl.MaxV(b.Max, p)}
}

func (b Box) Center() quarkgl.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }
func (b Box) Size() quarkgl.Vec3   { return b.Max.Sub(b.Min) }

// Contains reports whether p lies inside b, boundary included.
func (b Box) Contains(p quarkgl.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Encloses reports whether o lies entirely inside b.
func (b Box) Encloses(o Box) bool { return b.Contains(o.Min) && b.Contains(o.Max) }

// Tracker eases a camera target toward the center of a box, one step per frame.
type Tracker struct {
	Alpha  quarkgl.Scalar
	target quarkgl.Vec3
}

// NewTracker starts at the origin.
func NewTracker(alpha quarkgl.Scalar) *Tracker {
	return &Tracker{Alpha: quarkgl.Clamp01(alpha)}
}

// Update blends the target toward the center of b and returns it.
func (t *Tracker) Update(b Box, ok bool) quarkgl.Vec3 {
	if ok {
		t.target = quarkgl.Lerp(t.target, b.Center(), t.Alpha)
	}
	return t.target
}

func (t *Tracker) Target() quarkgl.Vec3 { return t.target }
