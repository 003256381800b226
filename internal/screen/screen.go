// Package screen implements the CHIP-8 family display: a tagged-variant
// raster that behaves as a 64x32 two-color screen on the COSMAC VIP, a
// switchable 64x32/128x64 two-color screen on SUPER-CHIP, and a 128x64
// four-bitplane sixteen-color screen on XO-CHIP.
package screen

import (
	"errors"
	"fmt"

	"github.com/retrobit-labs/chippy/internal/bitutil"
	"github.com/retrobit-labs/chippy/internal/model"
)

// Errors returned when an operation is not supported by the screen's kind.
var (
	ErrHiresMode          = errors.New("screen: this variant does not support hires mode")
	ErrSetPlanes          = errors.New("screen: this variant does not support multiple display planes")
	ErrLargeSprite        = errors.New("screen: large sprites are not supported by this variant")
	ErrLargeSpriteInLores = errors.New("screen: large sprites are not supported in lores mode on this variant")
	ErrScrollDown         = errors.New("screen: scroll down is not supported by this variant")
	ErrScrollUp           = errors.New("screen: scroll up is not supported by this variant")
	ErrScrollRightLeft    = errors.New("screen: horizontal scroll is not supported by this variant")
)

const (
	vipWidth, vipHeight   = 64, 32
	wideWidth, wideHeight = 128, 64
)

// Screen is a single tagged-variant raster sized for the largest supported
// mode (128x64x4 planes); the active Kind determines which fields are
// meaningful. rows[0] carries the image for every non-XO-CHIP kind; all
// four rows entries are live only when Kind is model.XoChip.
type Screen struct {
	kind          model.Model
	hires         bool
	enabledPlanes [4]bool
	rows          [4][wideHeight]bitutil.Row128
}

// New returns a blank screen for kind, with XO-CHIP's plane 3 (mask bit 0)
// enabled by default (the other three kinds ignore enabledPlanes entirely).
func New(kind model.Model) *Screen {
	return &Screen{
		kind:          kind,
		enabledPlanes: [4]bool{false, false, false, true},
	}
}

// Kind reports which variant s implements.
func (s *Screen) Kind() model.Model {
	return s.kind
}

// Width returns the screen's column count: 64 for the COSMAC VIP, 128 for
// every other variant (SUPER-CHIP and XO-CHIP always use the wide buffer,
// even while rendering lores content into it at double pixel size).
func (s *Screen) Width() uint8 {
	if s.kind == model.CosmacVip {
		return vipWidth
	}
	return wideWidth
}

// Height returns the screen's row count: 32 for the COSMAC VIP, 64 for
// every other variant.
func (s *Screen) Height() uint8 {
	if s.kind == model.CosmacVip {
		return vipHeight
	}
	return wideHeight
}

// Clear blanks the screen. On XO-CHIP, only the currently enabled planes
// are cleared.
func (s *Screen) Clear() {
	if s.kind == model.XoChip {
		for p := 0; p < 4; p++ {
			if s.enabledPlanes[p] {
				s.rows[p] = [wideHeight]bitutil.Row128{}
			}
		}
		return
	}
	s.rows[0] = [wideHeight]bitutil.Row128{}
}

// GetHires reports the current resolution mode. The COSMAC VIP has no
// hires mode and always reports false.
func (s *Screen) GetHires() bool {
	if s.kind == model.CosmacVip {
		return false
	}
	return s.hires
}

// SetHires switches resolution mode. Returns ErrHiresMode on the COSMAC
// VIP, which has only one mode.
func (s *Screen) SetHires(hires bool) error {
	if s.kind == model.CosmacVip {
		return ErrHiresMode
	}
	s.hires = hires
	return nil
}

// SetPlanes selects which of the four bitplanes subsequent draw, clear,
// and scroll operations touch. Bit 3 of mask is plane 0, bit 0 is plane 3.
// Only XO-CHIP supports multiple planes.
func (s *Screen) SetPlanes(mask uint8) error {
	if s.kind != model.XoChip {
		return ErrSetPlanes
	}
	s.enabledPlanes = [4]bool{
		mask&0b1000 != 0,
		mask&0b0100 != 0,
		mask&0b0010 != 0,
		mask&0b0001 != 0,
	}
	return nil
}

// NumActivePlanes returns how many bitplanes a draw should split its
// sprite data across: always 1 outside XO-CHIP.
func (s *Screen) NumActivePlanes() int {
	if s.kind != model.XoChip {
		return 1
	}
	n := 0
	for _, enabled := range s.enabledPlanes {
		if enabled {
			n++
		}
	}
	return n
}

// activePlaneIndices returns the enabled plane indices in the order
// sprite bytes are assigned to them: plane 3 first, then 2, 1, 0. This
// matches the reference interpreter's reversed plane iteration.
func (s *Screen) activePlaneIndices() []int {
	if s.kind != model.XoChip {
		return []int{0}
	}
	var indices []int
	for p := 3; p >= 0; p-- {
		if s.enabledPlanes[p] {
			indices = append(indices, p)
		}
	}
	return indices
}

func (s *Screen) String() string {
	return fmt.Sprintf("screen(%s, hires=%v, %dx%d)", s.kind, s.GetHires(), s.Width(), s.Height())
}
