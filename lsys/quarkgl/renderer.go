package quarkgl

// LineSource exposes indexed line primitives without requiring a copy.
type LineSource interface {
	NumLines() int
	Line(i int) Line
}

// Lines adapts a slice to LineSource.
type Lines []Line

func (l Lines) NumLines() int   { return len(l) }
func (l Lines) Line(i int) Line { return l[i] }

// Renderer is a fixed-pipeline software line renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Depth      bool
	ClearColor Color
	// Fog, when non-nil, fades each line by the distance of its midpoint.
	Fog *Fog

	depthBuf []float32
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render clears the target and draws every layer in order.
func (r *Renderer) Render(t Target, cam Camera, layers ...LineSource) {
	if r == nil || t == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	aspect := Scalar(w) / Scalar(h)
	mvp := Mat4Mul(cam.Projection(aspect), cam.View())

	for _, src := range layers {
		if src == nil {
			continue
		}
		n := src.NumLines()
		for i := 0; i < n; i++ {
			l := src.Line(i)
			if r.Fog != nil {
				mid := l.A.Add(l.B).Mul(0.5)
				l.Color = r.Fog.Apply(l.Color, Len(mid.Sub(cam.Position)))
			}
			r.renderLine(t, w, h, mvp, l)
		}
	}
}

func (r *Renderer) renderLine(t Target, w, h int, mvp Mat4, l Line) {
	p0 := Mat4MulV4(mvp, Vec4{X: l.A.X, Y: l.A.Y, Z: l.A.Z, W: 1})
	p1 := Mat4MulV4(mvp, Vec4{X: l.B.X, Y: l.B.Y, Z: l.B.Z, W: 1})

	p0, p1, ok := clipNear(p0, p1)
	if !ok {
		return
	}
	ndc0, ok0 := clipToNDC(p0)
	ndc1, ok1 := clipToNDC(p1)
	if !ok0 || !ok1 {
		return
	}
	x0, y0 := ndcToScreen(ndc0, w, h)
	x1, y1 := ndcToScreen(ndc1, w, h)
	r.drawLine(t, w, h, x0, y0, ndc0.Z, x1, y1, ndc1.Z, l.Color)
}

// clipNear clips a clip-space segment against the near plane (z >= -w).
func clipNear(p0, p1 Vec4) (Vec4, Vec4, bool) {
	d0 := p0.Z + p0.W
	d1 := p1.Z + p1.W
	if d0 < 0 && d1 < 0 {
		return p0, p1, false
	}
	lerp4 := func(a, b Vec4, t Scalar) Vec4 {
		return Vec4{
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
			Z: a.Z + (b.Z-a.Z)*t,
			W: a.W + (b.W-a.W)*t,
		}
	}
	if d0 < 0 {
		p0 = lerp4(p0, p1, d0/(d0-d1))
	} else if d1 < 0 {
		p1 = lerp4(p1, p0, d1/(d1-d0))
	}
	return p0, p1, true
}

type ndcPoint struct {
	X, Y, Z float32
}

func clipToNDC(p Vec4) (ndcPoint, bool) {
	if p.W <= 0 {
		return ndcPoint{}, false
	}
	invW := 1 / p.W
	return ndcPoint{
		X: float32(p.X * invW),
		Y: float32(p.Y * invW),
		Z: float32(p.Z * invW),
	}, true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(sx + 0.5), int(sy + 0.5)
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := z*0.5 + 0.5
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	if d > r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

// drawLine is Bresenham with depth interpolated along the major axis.
func (r *Renderer) drawLine(t Target, w, h int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, c Color) {
	// Reject lines far off screen before stepping through them.
	const margin = 1 << 14
	if absInt(x0) > margin || absInt(y0) > margin || absInt(x1) > margin || absInt(y1) > margin {
		return
	}

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := dx
	if -dy > steps {
		steps = -dy
	}
	var dz float32
	if steps > 0 {
		dz = (z1 - z0) / float32(steps)
	}
	z := z0
	err := dx + dy
	for {
		if x0 >= 0 && y0 >= 0 && x0 < w && y0 < h && r.depthTest(w, x0, y0, z) {
			t.SetPixel(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
		z += dz
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
