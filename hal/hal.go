// Package hal is the only contact point between the growth app and the host:
// a framebuffer to draw into, key events, and a clock.
package hal

import "time"

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyZoomIn
	KeyZoomOut
	KeyEscape
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Clock is the time source for one run. Window mode uses wall time; headless
// mode advances a virtual clock by one tick period per step.
type Clock interface {
	Now() time.Time
}

// HAL provides the framebuffer, input and time for the app.
type HAL interface {
	Framebuffer() Framebuffer
	Keyboard() Keyboard
	Clock() Clock
}

// Step runs once per host tick. A non-nil error ends the run; ErrQuit ends it cleanly.
type Step func() error
