package screen

import (
	"github.com/retrobit-labs/chippy/internal/bitutil"
	"github.com/retrobit-labs/chippy/internal/model"
)

// ScrollDown shifts the screen content down by amount rows (0-15),
// filling the vacated rows at the top with zero. Legacy SUPER-CHIP has a
// bug of its own: unlike every other variant, it does not double amount
// in lores mode, so a lores scroll-down moves half as far as the caller
// likely intended.
func (s *Screen) ScrollDown(amount uint8) error {
	switch s.kind {
	case model.CosmacVip:
		return ErrScrollDown
	case model.LegacySuperChip:
		scrollRowsDown(&s.rows[0], amount)
		return nil
	case model.ModernSuperChip:
		if !s.hires {
			amount *= 2
		}
		scrollRowsDown(&s.rows[0], amount)
		return nil
	case model.XoChip:
		if !s.hires {
			amount *= 2
		}
		for _, p := range s.activePlaneIndices() {
			scrollRowsDown(&s.rows[p], amount)
		}
		return nil
	default:
		return ErrScrollDown
	}
}

// ScrollUp shifts the screen content up by amount rows, filling the
// vacated rows at the bottom with zero. Only XO-CHIP supports it; both
// SUPER-CHIP variants and the COSMAC VIP report ErrScrollUp.
func (s *Screen) ScrollUp(amount uint8) error {
	if s.kind != model.XoChip {
		return ErrScrollUp
	}
	if !s.hires {
		amount *= 2
	}
	for _, p := range s.activePlaneIndices() {
		scrollRowsUp(&s.rows[p], amount)
	}
	return nil
}

// ScrollRight shifts every row right by 4 columns in hires mode and 8 in
// lores (4 lores pixels, since lores pixels are two columns wide), filling
// the vacated columns with zero. Legacy SUPER-CHIP always shifts by 4
// regardless of resolution, reproducing its scroll quirk.
func (s *Screen) ScrollRight() error {
	switch s.kind {
	case model.CosmacVip:
		return ErrScrollRightLeft
	case model.LegacySuperChip:
		scrollRowsRight(&s.rows[0], 4)
		return nil
	case model.ModernSuperChip:
		scrollRowsRight(&s.rows[0], s.scrollQuantum())
		return nil
	case model.XoChip:
		q := s.scrollQuantum()
		for _, p := range s.activePlaneIndices() {
			scrollRowsRight(&s.rows[p], q)
		}
		return nil
	default:
		return ErrScrollRightLeft
	}
}

// ScrollLeft is ScrollRight's mirror.
func (s *Screen) ScrollLeft() error {
	switch s.kind {
	case model.CosmacVip:
		return ErrScrollRightLeft
	case model.LegacySuperChip:
		scrollRowsLeft(&s.rows[0], 4)
		return nil
	case model.ModernSuperChip:
		scrollRowsLeft(&s.rows[0], s.scrollQuantum())
		return nil
	case model.XoChip:
		q := s.scrollQuantum()
		for _, p := range s.activePlaneIndices() {
			scrollRowsLeft(&s.rows[p], q)
		}
		return nil
	default:
		return ErrScrollRightLeft
	}
}

func (s *Screen) scrollQuantum() uint {
	if s.hires {
		return 4
	}
	return 8
}

func scrollRowsDown(rows *[wideHeight]bitutil.Row128, amount uint8) {
	n := int(amount)
	if n <= 0 {
		return
	}
	if n >= wideHeight {
		*rows = [wideHeight]bitutil.Row128{}
		return
	}
	copy(rows[n:], rows[:wideHeight-n])
	for i := 0; i < n; i++ {
		rows[i] = bitutil.Row128{}
	}
}

func scrollRowsUp(rows *[wideHeight]bitutil.Row128, amount uint8) {
	n := int(amount)
	if n <= 0 {
		return
	}
	if n >= wideHeight {
		*rows = [wideHeight]bitutil.Row128{}
		return
	}
	copy(rows[:wideHeight-n], rows[n:])
	for i := wideHeight - n; i < wideHeight; i++ {
		rows[i] = bitutil.Row128{}
	}
}

func scrollRowsRight(rows *[wideHeight]bitutil.Row128, amount uint) {
	for i := range rows {
		rows[i] = rows[i].ShiftRight(amount)
	}
}

func scrollRowsLeft(rows *[wideHeight]bitutil.Row128, amount uint) {
	for i := range rows {
		rows[i] = rows[i].ShiftLeft(amount)
	}
}
