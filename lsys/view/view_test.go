package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/lsys/expansion"
	"arbor/lsys/grammar"
	"arbor/lsys/path"
	"arbor/lsys/playback"
	"arbor/lsys/quarkgl"
	"arbor/lsys/turtle"
)

func newDriver(t *testing.T, clock func() time.Time) *playback.Driver {
	t.Helper()
	g, err := grammar.Parse("XX", map[string]string{
		"X": "F+[[X]-X]-F[-FX]+X",
		"F": "FF",
	})
	require.NoError(t, err)
	d, err := playback.New(
		expansion.New(g, expansion.Limits{}),
		turtle.New(turtle.Config{
			Angle:   quarkgl.DegToRad(90),
			Step:    5,
			Heading: quarkgl.V3(-1, 0, 0),
			Axis:    quarkgl.V3(0, 1, 0),
		}),
		path.NewRecorder(300*time.Millisecond),
		playback.Options{Generations: 2, Clock: clock},
	)
	require.NoError(t, err)
	return d
}

type pixelTarget struct {
	w, h   int
	pixels map[[2]int]quarkgl.Color
}

func newPixelTarget(w, h int) *pixelTarget {
	return &pixelTarget{w: w, h: h, pixels: map[[2]int]quarkgl.Color{}}
}

func (t *pixelTarget) Size() (int, int)    { return t.w, t.h }
func (t *pixelTarget) Clear(quarkgl.Color) { t.pixels = map[[2]int]quarkgl.Color{} }

func (t *pixelTarget) SetPixel(x, y int, c quarkgl.Color) {
	if x >= 0 && y >= 0 && x < t.w && y < t.h {
		t.pixels[[2]int{x, y}] = c
	}
}

func (t *pixelTarget) count(c quarkgl.Color) int {
	n := 0
	for _, p := range t.pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestSegmentLayerColorsByState(t *testing.T) {
	now := time.Unix(100, 0)
	rec := path.NewRecorder(300 * time.Millisecond)
	rec.Record(quarkgl.V3(0, 0, 0), quarkgl.V3(1, 0, 0), now)
	rec.Record(quarkgl.V3(1, 0, 0), quarkgl.V3(2, 0, 0), now.Add(time.Second))

	l := &segmentLayer{rec: rec, now: now.Add(time.Second), active: quarkgl.Hex(0xff0000), settled: quarkgl.Hex(0)}
	require.Equal(t, 2, l.NumLines())
	assert.Equal(t, quarkgl.Hex(0), l.Line(0).Color)
	assert.Equal(t, quarkgl.Hex(0xff0000), l.Line(1).Color)
	assert.Equal(t, quarkgl.V3(1, 0, 0), l.Line(1).A)
}

func TestGridLines(t *testing.T) {
	g := gridLines(-1, 20, 10, quarkgl.RGB(1, 2, 3))
	assert.Len(t, g, 10)
	for _, l := range g {
		assert.Equal(t, -1.0, l.A.Y)
		assert.Equal(t, -1.0, l.B.Y)
	}
	assert.Nil(t, gridLines(0, 20, 0, quarkgl.Color{}))
}

func TestViewDrawsActiveThenSettledPath(t *testing.T) {
	now := time.Unix(1700000000, 0)
	clock := func() time.Time { return now }
	d := newDriver(t, clock)

	opts := DefaultOptions()
	opts.HUD = false
	opts.FogFar = 0
	v := New(d, 96, 96, opts, clock)

	for i := 0; i < 40; i++ {
		_, err := d.Tick()
		require.NoError(t, err)
		v.Update()
	}
	require.Positive(t, d.Recorder().Len())

	tgt := newPixelTarget(96, 96)
	v.Draw(tgt)
	assert.Positive(t, tgt.count(opts.Active), "fresh segments are drawn active")

	now = now.Add(time.Second)
	v.Draw(tgt)
	assert.Zero(t, tgt.count(opts.Active))
	assert.Positive(t, tgt.count(opts.Settled), "old segments are drawn settled")
}

func TestViewTargetEasesTowardBounds(t *testing.T) {
	d := newDriver(t, nil)
	opts := DefaultOptions()
	opts.TrackerAlpha = 0.5
	v := New(d, 32, 32, opts, nil)

	for i := 0; i < 40; i++ {
		_, err := d.Tick()
		require.NoError(t, err)
	}
	b, ok := d.Recorder().Bounds()
	require.True(t, ok)
	for i := 0; i < 60; i++ {
		v.Update()
	}
	assert.InDelta(t, b.Center().X, v.Target().X, 1e-6)
	assert.InDelta(t, b.Center().Z, v.Target().Z, 1e-6)
	assert.Equal(t, v.Target(), v.Camera().Target)
}

func TestViewKeysOrbitAndZoom(t *testing.T) {
	v := New(newDriver(t, nil), 32, 32, Options{TrackerAlpha: 0.001}, nil)
	before := v.Camera().Position

	v.Key(KeyLeft)
	v.Update()
	assert.NotEqual(t, before, v.Camera().Position)

	for i := 0; i < 100; i++ {
		v.Key(KeyZoomIn)
	}
	v.Update()
	dist := quarkgl.Len(v.Camera().Position.Sub(v.Camera().Target))
	assert.InDelta(t, 128, dist, 1e-6)
}

func TestHUDLines(t *testing.T) {
	d := newDriver(t, nil)
	h := newHUD(d.Info())
	lines := h.lines(42, 2, "F+[", true)
	assert.Equal(t, "generated 42  gen 2", lines[0])
	assert.Equal(t, "axiom XX", lines[1])
	assert.Equal(t, "X -> F+[[X]-X]-F[-FX]+X", lines[2])
	assert.Equal(t, "F -> FF", lines[3])
	assert.Equal(t, "angle 90  nests 2", lines[4])
	assert.Equal(t, "F+[", lines[5])
	assert.True(t, strings.Contains(lines[6], "limit"))
}

func TestHUDDrawsText(t *testing.T) {
	d := newDriver(t, nil)
	tgt := newPixelTarget(160, 80)
	newHUD(d.Info()).draw(tgt, 1, 2, "XX", false)
	assert.NotEmpty(t, tgt.pixels)
	assert.Positive(t, newHUD(d.Info()).tailWidth(160))
}

func TestHUDTailOnNarrowScreen(t *testing.T) {
	d := newDriver(t, nil)
	for i := 0; i < 5; i++ {
		_, err := d.Tick()
		require.NoError(t, err)
	}
	h := newHUD(d.Info())
	for _, w := range []int{0, 1, 5, 6} {
		assert.Zero(t, h.tailWidth(w), "width %d", w)
	}
	assert.Empty(t, d.ConsumedTail(h.tailWidth(3)))
}
