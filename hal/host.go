package hal

import (
	"context"
	"errors"
)

// ErrQuit ends a run without reporting a failure.
var ErrQuit = errors.New("quit")

var errUnsupportedFramebuffer = errors.New("hal: framebuffer is not a host framebuffer")

// DefaultWidth and DefaultHeight size the host framebuffer when a config leaves them zero.
const (
	DefaultWidth  = 320
	DefaultHeight = 320
)

type hostHAL struct {
	fb    *hostFramebuffer
	kbd   *hostKeyboard
	clock Clock
}

func newHost(width, height int, clock Clock) *hostHAL {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &hostHAL{
		fb:    newHostFramebuffer(width, height),
		kbd:   newHostKeyboard(),
		clock: clock,
	}
}

func (h *hostHAL) Framebuffer() Framebuffer { return h.fb }
func (h *hostHAL) Keyboard() Keyboard       { return h.kbd }
func (h *hostHAL) Clock() Clock             { return h.clock }

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// emit drops the event when nobody drains the queue.
func (k *hostKeyboard) emit(code KeyCode, press bool) {
	select {
	case k.ch <- KeyEvent{Code: code, Press: press}:
	default:
	}
}

// stopOnDone wraps step so the run ends with ErrQuit once ctx is cancelled.
func stopOnDone(ctx context.Context, step Step) Step {
	return func() error {
		if err := ctx.Err(); err != nil {
			return ErrQuit
		}
		if step == nil {
			return nil
		}
		return step()
	}
}
