// Package disasm renders raw CHIP-8/SUPER-CHIP/XO-CHIP machine code as
// Octo assembly syntax (the dialect used by John Earnest's Octo
// IDE/assembler), one opcode at a time.
package disasm

import (
	"fmt"
	"strings"

	"github.com/retrobit-labs/chippy/internal/model"
)

// Decode renders the 16-bit instruction word as Octo syntax for tier.
// When the word is F000 (XO-CHIP's long load), Decode also consumes
// nextWord as the 16-bit address operand; usedNextWord reports whether
// nextWord was actually consumed, so the caller knows to advance its
// cursor by 4 bytes instead of 2. A word that is not a known instruction
// at tier renders as "????".
func Decode(word uint16, nextWord uint16, tier model.InstructionSet) (text string, usedNextWord bool) {
	op := word >> 12
	x := uint8(word >> 8 & 0xF)
	y := uint8(word >> 4 & 0xF)
	n := uint8(word & 0xF)
	kk := uint8(word & 0xFF)
	nnn := word & 0xFFF

	switch op {
	case 0x0:
		switch {
		case word == 0x0000:
			return "exit", false
		case word == 0x00E0:
			return "clear", false
		case word == 0x00EE:
			return "return", false
		case tier >= model.SuperChip && nnn&0xFF0 == 0x0C0:
			return fmt.Sprintf("scroll-down %d", n), false
		case tier >= model.XoChipSet && nnn&0xFF0 == 0x0D0:
			return fmt.Sprintf("scroll-up %d", n), false
		case tier >= model.SuperChip && word == 0x00FB:
			return "scroll-right", false
		case tier >= model.SuperChip && word == 0x00FC:
			return "scroll-left", false
		case tier >= model.SuperChip && word == 0x00FD:
			return "exit", false
		case tier >= model.SuperChip && word == 0x00FE:
			return "lores", false
		case tier >= model.SuperChip && word == 0x00FF:
			return "hires", false
		}
		return "????", false

	case 0x1:
		return fmt.Sprintf("jump 0x%03X", nnn), false
	case 0x2:
		return fmt.Sprintf("0x%03X", nnn), false
	case 0x3:
		return fmt.Sprintf("if v%X != 0x%02X then", x, kk), false
	case 0x4:
		return fmt.Sprintf("if v%X == 0x%02X then", x, kk), false
	case 0x5:
		switch n {
		case 0x0:
			return fmt.Sprintf("if v%X != v%X then", x, y), false
		case 0x2:
			if tier >= model.XoChipSet {
				return fmt.Sprintf("save v%X - v%X", x, y), false
			}
		case 0x3:
			if tier >= model.XoChipSet {
				return fmt.Sprintf("load v%X - v%X", x, y), false
			}
		}
		return "????", false
	case 0x6:
		return fmt.Sprintf("v%X := 0x%02X", x, kk), false
	case 0x7:
		return fmt.Sprintf("v%X += 0x%02X", x, kk), false
	case 0x8:
		switch n {
		case 0x0:
			return fmt.Sprintf("v%X := v%X", x, y), false
		case 0x1:
			return fmt.Sprintf("v%X |= v%X", x, y), false
		case 0x2:
			return fmt.Sprintf("v%X &= v%X", x, y), false
		case 0x3:
			return fmt.Sprintf("v%X ^= v%X", x, y), false
		case 0x4:
			return fmt.Sprintf("v%X += v%X", x, y), false
		case 0x5:
			return fmt.Sprintf("v%X -= v%X", x, y), false
		case 0x6:
			return fmt.Sprintf("v%X >>= v%X", x, y), false
		case 0x7:
			return fmt.Sprintf("v%X =- v%X", x, y), false
		case 0xE:
			return fmt.Sprintf("v%X <<= v%X", x, y), false
		}
		return "????", false
	case 0x9:
		if n == 0x0 {
			return fmt.Sprintf("if v%X == v%X then", x, y), false
		}
		return "????", false
	case 0xA:
		return fmt.Sprintf("i := 0x%03X", nnn), false
	case 0xB:
		return fmt.Sprintf("jump0 0x%03X", nnn), false
	case 0xC:
		return fmt.Sprintf("v%X := random 0x%02X", x, kk), false
	case 0xD:
		if tier >= model.SuperChip && n == 0x0 {
			return fmt.Sprintf("sprite v%X v%X 0", x, y), false
		}
		return fmt.Sprintf("sprite v%X v%X %d", x, y, n), false
	case 0xE:
		switch kk {
		case 0x9E:
			return fmt.Sprintf("if v%X -key then", x), false
		case 0xA1:
			return fmt.Sprintf("if v%X key then", x), false
		}
		return "????", false
	case 0xF:
		switch kk {
		case 0x07:
			return fmt.Sprintf("v%X := delay", x), false
		case 0x0A:
			return fmt.Sprintf("v%X := key", x), false
		case 0x15:
			return fmt.Sprintf("delay := v%X", x), false
		case 0x18:
			return fmt.Sprintf("buzzer := v%X", x), false
		case 0x1E:
			return fmt.Sprintf("i += v%X", x), false
		case 0x29:
			return fmt.Sprintf("i := hex v%X", x), false
		case 0x33:
			return fmt.Sprintf("bcd v%X", x), false
		case 0x55:
			return fmt.Sprintf("save v%X", x), false
		case 0x65:
			return fmt.Sprintf("load v%X", x), false
		}
		if tier >= model.SuperChip {
			switch kk {
			case 0x30:
				return fmt.Sprintf("i := bighex v%X", x), false
			case 0x75:
				return fmt.Sprintf("saveflags v%X", x), false
			case 0x85:
				return fmt.Sprintf("loadflags v%X", x), false
			}
		}
		if tier >= model.XoChipSet {
			switch {
			case kk == 0x00 && x == 0:
				return fmt.Sprintf("i := long 0x%04X", nextWord), true
			case kk == 0x01:
				return fmt.Sprintf("plane %d", x), false
			case kk == 0x02 && x == 0:
				return "audio", false
			case kk == 0x3A:
				return fmt.Sprintf("pitch := v%X", x), false
			}
		}
		return "????", false
	}
	return "????", false
}

// FollowsSkip reports whether the instruction decoded from prevWord
// renders as an Octo "if ... then" conditional — i.e. whether the word
// at the current address is the conditionally-skipped instruction that
// should be shown indented under it.
func FollowsSkip(prevWord uint16, tier model.InstructionSet) bool {
	text, _ := Decode(prevWord, 0, tier)
	return strings.HasSuffix(text, "then")
}

// Line is one disassembled instruction, ready for display: its address,
// raw opcode word(s), Octo rendering, and whether it should be indented
// as the target of the previous line's skip.
type Line struct {
	Address  uint16
	Opcode   uint16
	LongWord *uint16
	Text     string
	Indented bool
}

// Program disassembles a contiguous memory image starting at base into a
// sequence of Lines, one per instruction word, applying the
// following-then indentation pass as it goes. It walks two bytes (or
// four, after an XO-CHIP long load) at a time and stops when fewer than
// two bytes remain.
func Program(memory []byte, base uint16, tier model.InstructionSet) []Line {
	var lines []Line
	var prevWord uint16
	havePrev := false

	addr := 0
	for addr+1 < len(memory) {
		word := uint16(memory[addr])<<8 | uint16(memory[addr+1])
		var next uint16
		if addr+3 < len(memory) {
			next = uint16(memory[addr+2])<<8 | uint16(memory[addr+3])
		}

		text, usedNext := Decode(word, next, tier)
		indented := havePrev && FollowsSkip(prevWord, tier)

		line := Line{
			Address:  base + uint16(addr),
			Opcode:   word,
			Text:     text,
			Indented: indented,
		}
		if usedNext {
			nw := next
			line.LongWord = &nw
		}
		lines = append(lines, line)

		prevWord = word
		havePrev = true
		if usedNext {
			addr += 4
		} else {
			addr += 2
		}
	}
	return lines
}

// String renders a Line the way a listing would print it: address,
// opcode (and long-load operand word, if any), and the Octo text,
// indented when it follows a skip.
func (l Line) String() string {
	prefix := ""
	if l.Indented {
		prefix = "    "
	}
	if l.LongWord != nil {
		return fmt.Sprintf("%04X: %04X %04X  %s%s", l.Address, l.Opcode, *l.LongWord, prefix, l.Text)
	}
	return fmt.Sprintf("%04X: %04X       %s%s", l.Address, l.Opcode, prefix, l.Text)
}
