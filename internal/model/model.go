// Package model describes the four CHIP-8 family variants chippy emulates
// and the per-variant behaviour ("quirks") that the interpreter core reads
// on every opcode.
package model

import "fmt"

// Model identifies one of the four emulated CHIP-8 variants.
type Model int

const (
	// CosmacVip is the original 1977 COSMAC VIP CHIP-8 interpreter.
	CosmacVip Model = iota
	// LegacySuperChip is SUPER-CHIP 1.1, including its lores scroll and
	// collision-counting bugs.
	LegacySuperChip
	// ModernSuperChip is the widely-deployed "Octo" reading of SUPER-CHIP.
	ModernSuperChip
	// XoChip is the XO-CHIP extension: four bitplanes, 64K memory, audio
	// pattern opcodes.
	XoChip
)

// String renders the model's display name.
func (m Model) String() string {
	switch m {
	case CosmacVip:
		return "COSMAC VIP"
	case LegacySuperChip:
		return "Legacy SUPER-CHIP (SUPER-CHIP 1.1)"
	case ModernSuperChip:
		return "Modern SUPER-CHIP (Octo)"
	case XoChip:
		return "XO-CHIP"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// InstructionSet gates which opcodes a tick can decode. The tiers nest:
// Base is a subset of SuperChip, which is a subset of XoChip.
type InstructionSet int

const (
	// Base is the original COSMAC VIP instruction set.
	Base InstructionSet = iota
	// SuperChip adds the SUPER-CHIP 128x64/hires/scroll/RPL opcodes.
	SuperChip
	// XoChipSet adds bitplanes, long load, register-range, and audio opcodes.
	XoChipSet
)

// KeyEvent is a keypad transition kind.
type KeyEvent int

const (
	// Press is a key-down transition.
	Press KeyEvent = iota
	// Release is a key-up transition.
	Release
)

// DrawWaitSetting selects when Dxyn blocks on the vblank edge.
type DrawWaitSetting int

const (
	// Always waits for vblank regardless of resolution (COSMAC VIP).
	Always DrawWaitSetting = iota
	// LoresOnly waits only while the screen is in lores mode.
	LoresOnly
	// Never never blocks on vblank.
	Never
)

// Wait reports whether Dxyn should block given the screen's current hires
// state.
func (d DrawWaitSetting) Wait(hires bool) bool {
	switch d {
	case Always:
		return true
	case LoresOnly:
		return !hires
	default:
		return false
	}
}

// Quirks is the per-variant behaviour-flag matrix read by the interpreter
// on every opcode. All fields are host-editable at any time.
type Quirks struct {
	GracefulExitOn0000      bool
	BitshiftUseY            bool
	KeyWaitTrigger          KeyEvent
	IncIOnSlice             bool
	BitwiseResetFlag        bool
	DrawWaitForVblank       DrawWaitSetting
	ClearScreenOnModeSwitch bool
	JumpV0UseVx             bool
	LoresDrawLargeAsSmall   bool
}

// DefaultQuirks returns the stock quirks table for m, per spec.md §4.1.
func DefaultQuirks(m Model) Quirks {
	switch m {
	case CosmacVip:
		return Quirks{
			GracefulExitOn0000:      false,
			BitshiftUseY:            true,
			KeyWaitTrigger:          Release,
			IncIOnSlice:             true,
			BitwiseResetFlag:        true,
			DrawWaitForVblank:       Always,
			ClearScreenOnModeSwitch: false,
			JumpV0UseVx:             false,
			LoresDrawLargeAsSmall:   true,
		}
	case LegacySuperChip:
		return Quirks{
			GracefulExitOn0000:      false,
			BitshiftUseY:            false,
			KeyWaitTrigger:          Release,
			IncIOnSlice:             false,
			BitwiseResetFlag:        false,
			DrawWaitForVblank:       LoresOnly,
			ClearScreenOnModeSwitch: false,
			JumpV0UseVx:             true,
			LoresDrawLargeAsSmall:   true,
		}
	case ModernSuperChip:
		return Quirks{
			GracefulExitOn0000:      false,
			BitshiftUseY:            false,
			KeyWaitTrigger:          Release,
			IncIOnSlice:             false,
			BitwiseResetFlag:        false,
			DrawWaitForVblank:       Never,
			ClearScreenOnModeSwitch: true,
			JumpV0UseVx:             true,
			LoresDrawLargeAsSmall:   false,
		}
	case XoChip:
		return Quirks{
			GracefulExitOn0000:      false,
			BitshiftUseY:            true,
			KeyWaitTrigger:          Release,
			IncIOnSlice:             true,
			BitwiseResetFlag:        false,
			DrawWaitForVblank:       Never,
			ClearScreenOnModeSwitch: true,
			JumpV0UseVx:             false,
			LoresDrawLargeAsSmall:   false,
		}
	default:
		panic(fmt.Sprintf("model: unknown model %v", m))
	}
}

// MemorySize returns the byte size of addressable memory for m: 4096 for
// every variant except XO-CHIP, which extends to 65536.
func MemorySize(m Model) int {
	if m == XoChip {
		return 0x10000
	}
	return 0x1000
}

// DefaultFrameRate returns the model's conventional host frame rate in Hz.
func DefaultFrameRate(m Model) float64 {
	if m == LegacySuperChip {
		return 64.0
	}
	return 60.0
}

// InstructionTier returns the opcode tier m decodes.
func InstructionTier(m Model) InstructionSet {
	switch m {
	case CosmacVip:
		return Base
	case LegacySuperChip, ModernSuperChip:
		return SuperChip
	case XoChip:
		return XoChipSet
	default:
		panic(fmt.Sprintf("model: unknown model %v", m))
	}
}
