// Package view renders a growing path with the quarkgl line renderer and
// overlays a small text HUD.
package view

import (
	"math"
	"time"

	"arbor/lsys/path"
	"arbor/lsys/playback"
	"arbor/lsys/quarkgl"
)

// Options configures a View. Zero fields take the defaults from DefaultOptions.
type Options struct {
	Background quarkgl.Color
	Active     quarkgl.Color
	Settled    quarkgl.Color
	Grid       quarkgl.Color

	// TrackerAlpha is the per-frame blend of the orbit target toward the bounds center.
	TrackerAlpha quarkgl.Scalar
	// AutoRotate is in turns per minute at 60 frames per second.
	AutoRotate quarkgl.Scalar

	Eye         quarkgl.Vec3
	MinDistance quarkgl.Scalar
	MaxDistance quarkgl.Scalar
	FogNear     quarkgl.Scalar
	FogFar      quarkgl.Scalar

	HUD bool
}

func DefaultOptions() Options {
	return Options{
		Background:   quarkgl.Hex(0xeeeeee),
		Active:       quarkgl.Hex(0xff0000),
		Settled:      quarkgl.Hex(0x000000),
		Grid:         quarkgl.RGBA(0x44, 0x44, 0x44, 0x1a),
		TrackerAlpha: 0.001,
		AutoRotate:   0.25,
		Eye:          quarkgl.V3(0, 300, -200),
		MinDistance:  128,
		MaxDistance:  2048,
		FogNear:      248,
		FogFar:       2048,
		HUD:          true,
	}
}

// Key is a host-independent navigation key.
type Key uint8

const (
	KeyLeft Key = iota + 1
	KeyRight
	KeyUp
	KeyDown
	KeyZoomIn
	KeyZoomOut
)

const (
	orbitStep = math.Pi / 36
	zoomStep  = 32
)

// View owns the camera state for one driver. It reads the driver on the ticking
// goroutine only.
type View struct {
	d     *playback.Driver
	opts  Options
	clock func() time.Time

	renderer *quarkgl.Renderer
	cam      quarkgl.Camera
	orbit    quarkgl.OrbitController
	tracker  *path.Tracker
	grid     quarkgl.Lines
	hud      *hud
}

// New creates a view of w x h pixels.
func New(d *playback.Driver, w, h int, opts Options, clock func() time.Time) *View {
	def := DefaultOptions()
	if opts.MinDistance == 0 {
		opts.MinDistance = def.MinDistance
	}
	if opts.MaxDistance == 0 {
		opts.MaxDistance = def.MaxDistance
	}
	if opts.Eye == (quarkgl.Vec3{}) {
		opts.Eye = def.Eye
	}
	if clock == nil {
		clock = time.Now
	}

	r := quarkgl.NewRenderer(w, h, true)
	r.ClearColor = opts.Background
	if opts.FogFar > opts.FogNear {
		r.Fog = &quarkgl.Fog{Color: opts.Background, Near: opts.FogNear, Far: opts.FogFar}
	}

	cam := quarkgl.DefaultCamera()
	cam.FOVYRad = quarkgl.DegToRad(60)
	cam.Near = 0.1
	cam.Far = opts.MaxDistance + opts.FogFar

	v := &View{
		d:        d,
		opts:     opts,
		clock:    clock,
		renderer: r,
		cam:      cam,
		orbit: quarkgl.OrbitController{
			MinRadius:       opts.MinDistance,
			MaxRadius:       opts.MaxDistance,
			AutoRotate:      opts.AutoRotate != 0,
			AutoRotateSpeed: 2 * math.Pi / 3600 * opts.AutoRotate,
		},
		tracker: path.NewTracker(opts.TrackerAlpha),
	}
	// Just below the path so the two never share depth.
	v.grid = gridLines(-1, 1000, 10, opts.Grid)
	v.orbit.LookFrom(opts.Eye)
	v.orbit.Apply(&v.cam)
	if opts.HUD {
		v.hud = newHUD(d.Info())
	}
	return v
}

// Camera returns the camera used by the last Update.
func (v *View) Camera() quarkgl.Camera { return v.cam }

// Target returns the eased orbit target.
func (v *View) Target() quarkgl.Vec3 { return v.tracker.Target() }

// Key applies one navigation key press.
func (v *View) Key(k Key) {
	switch k {
	case KeyLeft:
		v.orbit.Rotate(-orbitStep, 0)
	case KeyRight:
		v.orbit.Rotate(orbitStep, 0)
	case KeyUp:
		v.orbit.Rotate(0, -orbitStep)
	case KeyDown:
		v.orbit.Rotate(0, orbitStep)
	case KeyZoomIn:
		v.orbit.Zoom(-zoomStep)
	case KeyZoomOut:
		v.orbit.Zoom(zoomStep)
	}
}

// Update advances the camera by one frame.
func (v *View) Update() {
	v.orbit.Target = v.tracker.Update(v.d.Recorder().Bounds())
	v.orbit.Update()
	v.orbit.Apply(&v.cam)
}

// Draw renders the grid, the path and the HUD into t.
func (v *View) Draw(t quarkgl.Target) {
	segs := &segmentLayer{
		rec:     v.d.Recorder(),
		now:     v.clock(),
		active:  v.opts.Active,
		settled: v.opts.Settled,
	}
	v.renderer.Render(t, v.cam, v.grid, segs)

	if v.hud == nil {
		return
	}
	w, _ := t.Size()
	v.hud.draw(t,
		v.d.Progress(),
		v.d.Cache().Generation(),
		v.d.ConsumedTail(v.hud.tailWidth(w)),
		v.d.Frozen(),
	)
}
