//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyMap = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEqual, KeyZoomIn},
	{ebiten.KeyKPAdd, KeyZoomIn},
	{ebiten.KeyPageUp, KeyZoomIn},
	{ebiten.KeyMinus, KeyZoomOut},
	{ebiten.KeyKPSubtract, KeyZoomOut},
	{ebiten.KeyPageDown, KeyZoomOut},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyQ, KeyEscape},
}

func (k *hostKeyboard) poll() {
	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			k.emit(m.code, true)
		}
		if inpututil.IsKeyJustReleased(m.key) {
			k.emit(m.code, false)
		}
	}
}
