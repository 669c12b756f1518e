package app

import (
	"fmt"
	"image/color"
	"log/slog"
	"runtime/debug"
	"strings"

	"tinygo.org/x/tinyfont"

	"arbor/hal"
	"arbor/lsys/quarkgl"
)

// drawPanic logs a recovered panic, paints it onto fb and returns it as an error.
func drawPanic(fb hal.Framebuffer, log *slog.Logger, v any) error {
	stack := debug.Stack()
	log.Error("panic during tick", "panic", v, "stack", string(stack))

	err := fmt.Errorf("panic: %v", v)
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return err
	}

	fb.ClearRGB(255, 255, 255)
	t := &quarkgl.RGB565Target{Buf: fb.Buffer(), Stride: fb.StrideBytes(), W: fb.Width(), H: fb.Height()}
	d := panicDisplay{t: t}
	font := &tinyfont.TomThumb
	const lineHeight = 7
	_, glyphW := tinyfont.LineWidth(font, "0")
	cols := 1
	if glyphW > 0 {
		cols = max(1, (fb.Width()-4)/int(glyphW))
	}

	lines := []string{"arbor panic:", fmt.Sprint(v), "stack:"}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	}

	fg := color.RGBA{A: 255}
	y := lineHeight
	for _, line := range lines {
		for len(line) > 0 && y <= fb.Height() {
			chunk, rest := takeBytes(line, cols)
			tinyfont.WriteLine(d, font, 2, int16(y), chunk, fg)
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
	return err
}

type panicDisplay struct {
	t quarkgl.Target
}

func (d panicDisplay) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), quarkgl.RGB(c.R, c.G, c.B))
}

func (d panicDisplay) Display() error { return nil }

// takeBytes splits s after n bytes. Stack traces are ASCII.
func takeBytes(s string, n int) (prefix, rest string) {
	if n <= 0 || len(s) <= n {
		return s, ""
	}
	return s[:n], s[n:]
}
