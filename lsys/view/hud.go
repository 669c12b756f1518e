package view

import (
	"fmt"
	"image/color"
	"strings"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"arbor/lsys/playback"
	"arbor/lsys/quarkgl"
)

var _ drivers.Displayer = (*targetDisplayer)(nil)

// targetDisplayer lets tinyfont draw into a quarkgl.Target.
type targetDisplayer struct {
	t quarkgl.Target
}

func (d *targetDisplayer) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d *targetDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), quarkgl.RGBA(c.R, c.G, c.B, c.A))
}

func (d *targetDisplayer) Display() error { return nil }

// hud draws the static grammar description and live progress.
type hud struct {
	font       tinyfont.Fonter
	lineHeight int16
	fg         color.RGBA
	dim        color.RGBA
	info       playback.Info
}

func newHUD(info playback.Info) *hud {
	return &hud{
		font:       &tinyfont.TomThumb,
		lineHeight: 7,
		fg:         color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF},
		dim:        color.RGBA{R: 0x70, G: 0x70, B: 0x70, A: 0xFF},
		info:       info,
	}
}

// lines returns the HUD text, top to bottom.
func (h *hud) lines(progress, generation int, tail string, frozen bool) []string {
	out := []string{
		fmt.Sprintf("generated %d  gen %d", progress, generation),
		"axiom " + h.info.Axiom,
	}
	for _, r := range h.info.Rules {
		out = append(out, r.Symbol+" -> "+r.Body)
	}
	out = append(out,
		fmt.Sprintf("angle %d  nests %d", h.info.AngleDegrees, h.info.Generations),
		tail,
	)
	if frozen {
		out = append(out, "growth limit reached")
	}
	return out
}

func (h *hud) draw(t quarkgl.Target, progress, generation int, tail string, frozen bool) {
	d := &targetDisplayer{t: t}
	lines := h.lines(progress, generation, tail, frozen)
	y := h.lineHeight
	for i, s := range lines {
		c := h.fg
		if i > 0 {
			c = h.dim
		}
		tinyfont.WriteLine(d, h.font, 3, y, strings.ToUpper(s), c)
		y += h.lineHeight
	}
}

// tailWidth is the number of trailing symbols that fit on one HUD line.
func (h *hud) tailWidth(screenW int) int {
	_, w := tinyfont.LineWidth(h.font, "F")
	if w == 0 {
		return 0
	}
	return max(0, (screenW-6)/int(w))
}
