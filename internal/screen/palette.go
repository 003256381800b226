package screen

import (
	"image"
	"image/color"

	"github.com/retrobit-labs/chippy/internal/bitutil"
	"github.com/retrobit-labs/chippy/internal/model"
)

// cadmiumPalette is the sixteen-color indexed palette used by the
// gulrak/cadmium CHIP-8 reference emulator, reused here as chippy's
// default XO-CHIP palette and two-color fallback.
var cadmiumPalette = [16]uint32{
	0x1a1c2cff, 0xf4f4f4ff, 0x94b0c2ff, 0x333c57ff,
	0xb13e53ff, 0xa7f070ff, 0x3b5dc9ff, 0xffcd75ff,
	0x5d275dff, 0x38b764ff, 0x29366fff, 0x566c86ff,
	0xef7d57ff, 0x73eff7ff, 0x41a6f6ff, 0x257179ff,
}

func rgbaFromU32(c uint32) color.RGBA {
	return color.RGBA{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}

// Palette maps raw pixel values to display colors. TwoColor holds the
// off/on colors used for every non-XO-CHIP draw; SixteenColor holds the
// full indexed palette XO-CHIP's four bitplanes select into.
// UseCustomTwoColor lets a host override the two-color rendering
// (e.g. the classic green-on-black look) independently of SixteenColor.
type Palette struct {
	TwoColor          [2]color.RGBA
	SixteenColor      [16]color.RGBA
	UseCustomTwoColor bool
}

// DefaultPalette returns the Cadmium sixteen-color palette, with the
// two-color rendering defaulting to its first two entries.
func DefaultPalette() Palette {
	var sixteen [16]color.RGBA
	for i, c := range cadmiumPalette {
		sixteen[i] = rgbaFromU32(c)
	}
	return Palette{
		TwoColor:          [2]color.RGBA{sixteen[0], sixteen[1]},
		SixteenColor:      sixteen,
		UseCustomTwoColor: true,
	}
}

func (p Palette) twoColorOff() color.RGBA {
	if p.UseCustomTwoColor {
		return p.TwoColor[0]
	}
	return p.SixteenColor[0]
}

func (p Palette) twoColorOn() color.RGBA {
	if p.UseCustomTwoColor {
		return p.TwoColor[1]
	}
	return p.SixteenColor[1]
}

// ToImage renders the screen's current contents through palette into an
// RGBA image sized Width() x Height().
func (s *Screen) ToImage(palette Palette) *image.RGBA {
	if s.kind == model.XoChip {
		return s.toImagePlanes(palette)
	}
	return s.toImageTwoColor(palette)
}

func (s *Screen) toImageTwoColor(palette Palette) *image.RGBA {
	w, h := int(s.Width()), int(s.Height())
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	off, on := palette.twoColorOff(), palette.twoColorOn()
	for y := 0; y < h; y++ {
		row := s.rows[0][y]
		for x := 0; x < w; x++ {
			c := off
			if row.Bit(x) {
				c = on
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func (s *Screen) toImagePlanes(palette Palette) *image.RGBA {
	w, h := int(s.Width()), int(s.Height())
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		indices := bitutil.CombinePlanes(s.rows[0][y], s.rows[1][y], s.rows[2][y], s.rows[3][y])
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, palette.SixteenColor[indices[x]])
		}
	}
	return img
}
