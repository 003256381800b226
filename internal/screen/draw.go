package screen

import (
	"github.com/retrobit-labs/chippy/internal/bitutil"
	"github.com/retrobit-labs/chippy/internal/model"
)

// drawLine64 XORs an 8-bit sprite line into a 64-bit raster row at column
// x, clipping (not wrapping) any bits that would fall past column 63. It
// reports whether any bit was already set where the sprite draws (the
// CHIP-8 collision flag).
func drawLine64(dest *uint64, x uint8, line uint8) bool {
	const widthDiff = 64 - 8
	var mask uint64
	switch {
	case x < widthDiff:
		mask = uint64(line) << (widthDiff - x)
	case x == widthDiff:
		mask = uint64(line)
	default:
		mask = uint64(line) >> (x - widthDiff)
	}
	collided := *dest&mask != 0
	*dest ^= mask
	return collided
}

// drawLine128 XORs a sprite line (lineWidth bits, held right-aligned in
// line) into a 128-bit raster row at column x. FromU*Line anchors the
// line at column 0, so placing it at x is a plain rightward shift. When
// wrap is false, bits crossing the right edge are clipped (SUPER-CHIP);
// when true, they rotate around to the opposite edge (XO-CHIP).
func drawLine128(dest *bitutil.Row128, x uint8, line uint64, lineWidth uint8, wrap bool) bool {
	var src bitutil.Row128
	switch lineWidth {
	case 8:
		src = bitutil.FromU8Line(uint8(line))
	case 16:
		src = bitutil.FromU16Line(uint16(line))
	default:
		src = bitutil.FromU32Line(uint32(line))
	}

	var mask bitutil.Row128
	if wrap {
		mask = src.RotateRight(uint(x))
	} else {
		mask = src.ShiftRight(uint(x))
	}

	collided := !dest.And(mask).IsZero()
	*dest = dest.Xor(mask)
	return collided
}

// zoneMask reproduces the legacy SUPER-CHIP lores mirror bug: only a
// 32-column zone, anchored at the drawn column's 16-column boundary, is
// copied from the primary row into its mirrored row.
func zoneMask(x uint8) bitutil.Row128 {
	top32 := bitutil.Row128{Hi: 0xFFFFFFFF00000000}
	zoneOffset := uint(x & 0xF0)
	return top32.ShiftRight(zoneOffset)
}

// DrawSprite draws an 8-bit-wide, N-row sprite at (x, y) and reports
// whether it collided with any already-set pixel. Behaviour depends on
// the screen's kind and current resolution:
//
//   - COSMAC VIP: 64x32, clips at the bottom and right edges.
//   - SUPER-CHIP hires: 128x64, clips at the bottom and right edges.
//   - SUPER-CHIP lores: each sprite row is pixel-doubled into a 128-wide
//     double row; the legacy variant only mirrors a 32-column zone into
//     the second of the pair (the "zone-mask" bug), the modern variant
//     mirrors the full row.
//   - XO-CHIP: sprite bytes are split across the enabled bitplanes (plane
//     3 first); draws wrap at every edge instead of clipping.
func (s *Screen) DrawSprite(x, y uint8, sprite []byte) bool {
	switch s.kind {
	case model.CosmacVip:
		return s.drawSpriteVip(x, y, sprite)
	case model.LegacySuperChip, model.ModernSuperChip:
		return s.drawSpriteSuperChip(x, y, sprite)
	case model.XoChip:
		return s.drawSpriteXoChip(x, y, sprite)
	default:
		return false
	}
}

func (s *Screen) drawSpriteVip(x, y uint8, sprite []byte) bool {
	collided := false
	rowBase := int(y % vipHeight)
	for i, line := range sprite {
		rowIdx := rowBase + i
		if rowIdx >= vipHeight {
			break
		}
		c := drawLine64(&s.rows[0][rowIdx].Hi, x%vipWidth, line)
		collided = collided || c
	}
	return collided
}

func (s *Screen) drawSpriteSuperChip(x, y uint8, sprite []byte) bool {
	if s.hires {
		collided := false
		rowBase := int(y % wideHeight)
		for i, line := range sprite {
			rowIdx := rowBase + i
			if rowIdx >= wideHeight {
				break
			}
			c := drawLine128(&s.rows[0][rowIdx], x%wideWidth, uint64(line), 8, false)
			collided = collided || c
		}
		return collided
	}

	xd := (x << 1) % wideWidth
	rowBase := int((y << 1) % wideHeight)
	legacy := s.kind == model.LegacySuperChip
	mask := zoneMask(xd)
	collided := false
	for i, srcLine := range sprite {
		pairIdx := rowBase + i*2
		if pairIdx+1 >= wideHeight {
			break
		}
		doubled := bitutil.DoubleBits(srcLine)
		dest0 := &s.rows[0][pairIdx]
		dest1 := &s.rows[0][pairIdx+1]
		c0 := drawLine128(dest0, xd, uint64(doubled), 16, false)
		if legacy {
			*dest1 = dest1.And(mask.Not()).Or(dest0.And(mask))
			collided = collided || c0
		} else {
			c1 := drawLine128(dest1, xd, uint64(doubled), 16, false)
			collided = collided || c0 || c1
		}
	}
	return collided
}

func (s *Screen) drawSpriteXoChip(x, y uint8, sprite []byte) bool {
	planes := s.activePlaneIndices()
	n := len(planes)
	if n == 0 {
		return false
	}
	segSize := len(sprite) / n

	collided := false
	if s.hires {
		rowBase := int(y % wideHeight)
		for i, p := range planes {
			seg := sprite[i*segSize : (i+1)*segSize]
			for j, line := range seg {
				rowIdx := (rowBase + j) % wideHeight
				c := drawLine128(&s.rows[p][rowIdx], x%wideWidth, uint64(line), 8, true)
				collided = collided || c
			}
		}
		return collided
	}

	xd := (x << 1) % wideWidth
	rowBase := int((y << 1) % wideHeight)
	for i, p := range planes {
		seg := sprite[i*segSize : (i+1)*segSize]
		for j, srcLine := range seg {
			doubled := bitutil.DoubleBits(srcLine)
			pairIdx := (rowBase + j*2) % wideHeight
			pairIdx2 := (pairIdx + 1) % wideHeight
			c0 := drawLine128(&s.rows[p][pairIdx], xd, uint64(doubled), 16, true)
			c1 := drawLine128(&s.rows[p][pairIdx2], xd, uint64(doubled), 16, true)
			collided = collided || c0 || c1
		}
	}
	return collided
}

// DrawLargeSprite draws a 16-bit-wide, 16-row sprite ("big sprite"),
// where each plane's segment of sprite is 32 bytes (16 big-endian u16
// rows). It returns the number of colliding rows; the interpreter stores
// that count in vF on legacy SUPER-CHIP and reduces it to a 0/1 flag on
// the other variants.
func (s *Screen) DrawLargeSprite(x, y uint8, sprite []byte) (uint8, error) {
	switch s.kind {
	case model.CosmacVip:
		return 0, ErrLargeSprite
	case model.LegacySuperChip:
		if !s.hires {
			return 0, ErrLargeSpriteInLores
		}
		return s.drawLargeHires(0, x, y, sprite), nil
	case model.ModernSuperChip:
		if s.hires {
			return s.drawLargeHires(0, x, y, sprite), nil
		}
		return s.drawLargeLoresModern(0, x, y, sprite), nil
	case model.XoChip:
		var total uint8
		planes := s.activePlaneIndices()
		n := len(planes)
		if n == 0 {
			return 0, nil
		}
		segSize := len(sprite) / n
		for i, p := range planes {
			seg := sprite[i*segSize : (i+1)*segSize]
			if s.hires {
				total += s.drawLargeHiresWrap(p, x, y, seg)
			} else {
				total += s.drawLargeLoresWrap(p, x, y, seg)
			}
		}
		return total, nil
	default:
		return 0, nil
	}
}

func u16Line(b []byte, i int) uint16 {
	return uint16(b[2*i])<<8 | uint16(b[2*i+1])
}

func (s *Screen) drawLargeHires(plane int, x, y uint8, sprite []byte) uint8 {
	var total uint8
	rowBase := int(y % wideHeight)
	for i := 0; i < len(sprite)/2; i++ {
		rowIdx := rowBase + i
		if rowIdx >= wideHeight {
			break
		}
		if drawLine128(&s.rows[plane][rowIdx], x%wideWidth, uint64(u16Line(sprite, i)), 16, false) {
			total++
		}
	}
	return total
}

func (s *Screen) drawLargeHiresWrap(plane int, x, y uint8, sprite []byte) uint8 {
	var total uint8
	rowBase := int(y % wideHeight)
	for i := 0; i < len(sprite)/2; i++ {
		rowIdx := (rowBase + i) % wideHeight
		if drawLine128(&s.rows[plane][rowIdx], x%wideWidth, uint64(u16Line(sprite, i)), 16, true) {
			total++
		}
	}
	return total
}

func (s *Screen) drawLargeLoresModern(plane int, x, y uint8, sprite []byte) uint8 {
	var total uint8
	xd := (x << 1) % wideWidth
	rowBase := int((y << 1) % wideHeight)
	for i := 0; i < len(sprite)/2; i++ {
		doubled := bitutil.DoubleBits16(u16Line(sprite, i))
		pairIdx := rowBase + i*2
		if pairIdx+1 >= wideHeight {
			break
		}
		c0 := drawLine128(&s.rows[plane][pairIdx], xd, uint64(doubled), 32, false)
		c1 := drawLine128(&s.rows[plane][pairIdx+1], xd, uint64(doubled), 32, false)
		if c0 {
			total++
		}
		if c1 {
			total++
		}
	}
	return total
}

func (s *Screen) drawLargeLoresWrap(plane int, x, y uint8, sprite []byte) uint8 {
	var total uint8
	xd := (x << 1) % wideWidth
	rowBase := int((y << 1) % wideHeight)
	for i := 0; i < len(sprite)/2; i++ {
		doubled := bitutil.DoubleBits16(u16Line(sprite, i))
		pairIdx := (rowBase + i*2) % wideHeight
		pairIdx2 := (pairIdx + 1) % wideHeight
		c0 := drawLine128(&s.rows[plane][pairIdx], xd, uint64(doubled), 32, true)
		c1 := drawLine128(&s.rows[plane][pairIdx2], xd, uint64(doubled), 32, true)
		if c0 {
			total++
		}
		if c1 {
			total++
		}
	}
	return total
}
