// Package hostwindow renders chip8 frames through a faiface/pixel window,
// scaling whatever resolution the active variant produces (64x32 through
// 128x64) onto a fixed-size physical window, and polls the keyboard into
// the 16-key hex pad every variant shares. Adapted from the teacher's
// internal/pixel package, which only ever drew a hardcoded 64x32 grid.
package hostwindow

import (
	"fmt"
	"image"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/retrobit-labs/chippy/internal/model"
)

const (
	screenWidth  = 1024
	screenHeight = 640
)

// keyRepeatInterval governs how often a held key re-fires a Press event,
// matching the teacher's keyRepeatDur debounce.
const keyRepeatInterval = time.Second / 5

// Window wraps a pixelgl window with the hex-pad key mapping and a
// per-key repeat ticker, same shape as the teacher's embedded Window.
type Window struct {
	*pixelgl.Window
	keyMap   map[uint8]pixelgl.Button
	keysDown [16]*time.Ticker
	picture  *pixel.PictureData
}

// New opens a window sized for comfortable viewing of any supported
// resolution; the displayed image is always scaled to fit.
func New() (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  "chippy",
		Bounds: pixel.R(0, 0, screenWidth, screenHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("hostwindow: error creating window: %w", err)
	}
	return &Window{
		Window: w,
		keyMap: keyMap(),
	}, nil
}

// keyMap is the conventional COSMAC VIP hex-pad layout shared by every
// variant chippy emulates: 1234/QWER/ASDF/ZXCV maps to the 4x4 hex grid.
func keyMap() map[uint8]pixelgl.Button {
	return map[uint8]pixelgl.Button{
		0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
		0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
		0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
		0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
	}
}

// DrawFrame uploads img as a texture scaled to fill the window, clearing
// to black first. img may be any size the screen package produces.
func (w *Window) DrawFrame(img *image.RGBA) {
	w.Clear(colornames.Black)

	w.picture = pixel.PictureDataFromImage(img)
	sprite := pixel.NewSprite(w.picture, w.picture.Bounds())
	winW, winH := w.Bounds().W(), w.Bounds().H()
	imgW, imgH := w.picture.Bounds().W(), w.picture.Bounds().H()
	scale := winW / imgW
	if alt := winH / imgH; alt < scale {
		scale = alt
	}

	mat := pixel.IM.
		Scaled(pixel.ZV, scale).
		Moved(pixel.V(winW/2, winH/2))
	sprite.Draw(w, mat)
	w.Update()
}

// PollInput reports every key transition since the last poll as
// (key, event) pairs, handling key-repeat the same way the teacher's
// handleKeyInput did: a held key re-fires Press every keyRepeatInterval.
func (w *Window) PollInput() []KeyTransition {
	var transitions []KeyTransition
	for key, button := range w.keyMap {
		switch {
		case w.JustPressed(button):
			if w.keysDown[key] == nil {
				w.keysDown[key] = time.NewTicker(keyRepeatInterval)
			}
			transitions = append(transitions, KeyTransition{Key: key, Event: model.Press})
		case w.JustReleased(button):
			if w.keysDown[key] != nil {
				w.keysDown[key].Stop()
				w.keysDown[key] = nil
			}
			transitions = append(transitions, KeyTransition{Key: key, Event: model.Release})
		case w.keysDown[key] != nil:
			select {
			case <-w.keysDown[key].C:
				transitions = append(transitions, KeyTransition{Key: key, Event: model.Press})
			default:
			}
		}
	}
	return transitions
}

// KeyTransition is one hex-pad key press or release detected by PollInput.
type KeyTransition struct {
	Key   uint8
	Event model.KeyEvent
}
