package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Width  int
	Height int
	Hz     int
	// Ticks stops the run after N ticks (0 = run until ctx is done).
	Ticks uint64
	// Realtime paces ticks at Hz. Otherwise ticks run back to back and only the
	// virtual clock advances.
	Realtime bool
	// Start is the virtual clock's initial time. Zero means time.Now().
	Start time.Time
}

// RunHeadless runs the app without opening a window. It returns the framebuffer
// so callers can inspect or save the last frame.
func RunHeadless(ctx context.Context, newApp func(HAL) (Step, error), cfg HeadlessConfig) (Framebuffer, error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return nil, fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	start := cfg.Start
	if start.IsZero() {
		start = time.Now()
	}
	clock := NewVirtualClock(start)
	h := newHost(cfg.Width, cfg.Height, clock)
	step, err := newApp(h)
	if err != nil {
		return nil, err
	}

	var tickC <-chan time.Time
	if cfg.Realtime {
		t := time.NewTicker(d)
		defer t.Stop()
		tickC = t.C
	}

	var tick uint64
	for {
		if tickC != nil {
			select {
			case <-ctx.Done():
				return h.fb, ctx.Err()
			case <-tickC:
			}
		} else if err := ctx.Err(); err != nil {
			return h.fb, err
		}

		if err := step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return h.fb, nil
			}
			return h.fb, err
		}
		clock.Advance(d)
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return h.fb, nil
		}
	}
}
