// Package app wires the growth pipeline to a host: configuration in, one
// playback tick plus one rendered frame per host step.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"arbor/hal"
	"arbor/internal/logging"
	"arbor/lsys/config"
	"arbor/lsys/expansion"
	"arbor/lsys/introspect"
	"arbor/lsys/metrics"
	"arbor/lsys/path"
	"arbor/lsys/playback"
	"arbor/lsys/quarkgl"
	"arbor/lsys/turtle"
	"arbor/lsys/view"
)

// tailLen is how many consumed symbols introspection keeps.
const tailLen = 256

// System is one configured growth run.
type System struct {
	cfg config.Config
	log *slog.Logger

	Driver    *playback.Driver
	Publisher *introspect.Publisher
	Metrics   *metrics.Observer

	fb   hal.Framebuffer
	view *view.View
}

var errNotAttached = errors.New("app: no framebuffer attached")

// Build validates cfg and assembles the pipeline. reg may be nil to skip metrics.
func Build(cfg config.Config, clock func() time.Time, log *slog.Logger, reg prometheus.Registerer) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	g, err := cfg.Grammar()
	if err != nil {
		return nil, err
	}
	capPolicy, err := cfg.CapPolicy()
	if err != nil {
		return nil, err
	}

	sys := &System{cfg: cfg, log: log}
	observers := []playback.Observer{logging.NewObserver(log)}
	if reg != nil {
		m, err := metrics.New(reg)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		sys.Metrics = m
		observers = append(observers, m)
	}

	d, err := playback.New(
		expansion.New(g, cfg.ExpansionLimits()),
		turtle.New(cfg.Turtle()),
		path.NewRecorder(cfg.SettleDelay),
		playback.Options{
			Generations: cfg.Generations,
			Cap:         capPolicy,
			Clock:       clock,
			Observers:   observers,
		},
	)
	if err != nil {
		return nil, err
	}
	sys.Driver = d
	sys.Publisher = introspect.NewPublisher(d.Info(), tailLen, clock)
	d.Observe(sys.Publisher)

	log.Info("growth ready",
		"axiom", cfg.Axiom,
		"generations", cfg.Generations,
		"length", d.Cache().Len(),
		"next_length", d.Cache().NextLen(),
	)
	return sys, nil
}

// StepOptions tunes Step.
type StepOptions struct {
	// RenderEvery draws one frame every N ticks (0 or 1 = every tick).
	RenderEvery int
}

// Step attaches a view to h's framebuffer and returns the per-tick function.
func (s *System) Step(h hal.HAL, opts StepOptions) hal.Step {
	s.fb = h.Framebuffer()
	vopts := view.DefaultOptions()
	vopts.TrackerAlpha = s.cfg.View.TrackerAlpha
	vopts.AutoRotate = s.cfg.View.AutoRotate
	vopts.HUD = s.cfg.View.HUD
	s.view = view.New(s.Driver, s.fb.Width(), s.fb.Height(), vopts, h.Clock().Now)

	var keys <-chan hal.KeyEvent
	if kb := h.Keyboard(); kb != nil {
		keys = kb.Events()
	}

	var ticks int
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = drawPanic(s.fb, s.log, r)
			}
		}()

		if quit := s.drainKeys(keys); quit {
			return hal.ErrQuit
		}

		_, tickErr := s.Driver.Tick()
		s.view.Update()
		ticks++

		stop := false
		switch {
		case tickErr == nil:
		case errors.Is(tickErr, turtle.ErrStackUnderflow):
			// Logged by the observer; playback continues.
		case errors.Is(tickErr, playback.ErrStopped):
			stop = true
		default:
			return tickErr
		}

		if n := opts.RenderEvery; n <= 1 || ticks%n == 0 || stop {
			if err := s.Render(); err != nil {
				return err
			}
		}
		if stop {
			return hal.ErrQuit
		}
		return nil
	}
}

// Render draws the current state into the attached framebuffer and presents it.
func (s *System) Render() error {
	if s.view == nil || s.fb == nil {
		return errNotAttached
	}
	s.view.Draw(&quarkgl.RGB565Target{
		Buf:    s.fb.Buffer(),
		Stride: s.fb.StrideBytes(),
		W:      s.fb.Width(),
		H:      s.fb.Height(),
	})
	return s.fb.Present()
}

func (s *System) drainKeys(keys <-chan hal.KeyEvent) bool {
	v := s.view
	for {
		select {
		case ev := <-keys:
			if !ev.Press {
				continue
			}
			switch ev.Code {
			case hal.KeyEscape:
				return true
			case hal.KeyLeft:
				v.Key(view.KeyLeft)
			case hal.KeyRight:
				v.Key(view.KeyRight)
			case hal.KeyUp:
				v.Key(view.KeyUp)
			case hal.KeyDown:
				v.Key(view.KeyDown)
			case hal.KeyZoomIn:
				v.Key(view.KeyZoomIn)
			case hal.KeyZoomOut:
				v.Key(view.KeyZoomOut)
			}
		default:
			return false
		}
	}
}
