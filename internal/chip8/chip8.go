// Package chip8 implements the fetch-decode-execute core shared by the
// COSMAC VIP, legacy and modern SUPER-CHIP, and XO-CHIP interpreters: CPU
// registers, memory, the call stack, RPL flag storage, and the full
// opcode dispatch table gated by instruction tier and quirks.
package chip8

import (
	"errors"
	"fmt"
	"image"
	"math/rand"

	"github.com/retrobit-labs/chippy/internal/audio"
	"github.com/retrobit-labs/chippy/internal/keypad"
	"github.com/retrobit-labs/chippy/internal/model"
	"github.com/retrobit-labs/chippy/internal/screen"
)

// Sentinel errors, wrapped with opcode/address context by Tick.
var (
	ErrInvalidInstruction      = errors.New("chip8: invalid instruction")
	ErrUnsupportedInstruction  = errors.New("chip8: instruction not supported by this model's tier")
	ErrStackFull               = errors.New("chip8: call stack is full")
	ErrStackEmpty              = errors.New("chip8: return with an empty call stack")
	ErrInvalidMemoryRange      = errors.New("chip8: memory access out of range")
	ErrInvalidExactMemoryRange = errors.New("chip8: fixed-size memory access out of range")
	ErrPCOverflow              = errors.New("chip8: program counter advanced past available memory")
	// ErrHalt is returned by Tick when the program executed an explicit
	// exit instruction (0x0000 under the graceful-exit quirk, or
	// SUPER-CHIP's 00FD). It is not a failure: callers should stop
	// ticking and may still render the final frame.
	ErrHalt = errors.New("chip8: program requested exit")
)

const romBase = 0x200
const stackDepth = 16

// Machine holds the complete interpreter state for one loaded ROM: CPU
// registers, memory, screen, keypad, RPL flags, and the audio pattern
// registers.
type Machine struct {
	model model.Model
	tier  model.InstructionSet

	// Quirks is freely editable by the host at any time; it starts at
	// model's stock defaults.
	Quirks model.Quirks

	memory []byte
	v      [16]byte
	i      uint16
	dt, st byte
	pc     uint16
	sp     uint8
	stack  [stackDepth]uint16

	keypad keypad.Keypad
	screen *screen.Screen

	rpl     [16]byte
	pitch   byte
	pattern [16]byte

	rng *rand.Rand

	// vblank is raised by TickMany at the start of each frame's batch of
	// ticks and cleared after the first tick runs, so only that first
	// tick's Dxyn can satisfy the draw_wait_for_vblank quirk.
	vblank         bool
	audioGen       *audio.Generator
	soundWasActive bool
}

// New builds a Machine for m, loads rom at 0x200, and installs the
// lores font (plus, on SUPER-CHIP and XO-CHIP, the hires font) at their
// conventional addresses. Quirks start at
// model's stock defaults and are freely editable by the host afterward.
func New(m model.Model, rom []byte) (*Machine, error) {
	size := model.MemorySize(m)
	if len(rom) > size-romBase {
		return nil, fmt.Errorf("chip8: rom of %d bytes does not fit in %d bytes of memory at 0x%03X", len(rom), size, romBase)
	}

	memory := make([]byte, size)
	for i, glyph := range screen.Font {
		copy(memory[screen.FontAddress+i*5:], glyph[:])
	}
	tier := model.InstructionTier(m)
	if tier >= model.SuperChip {
		if m == model.XoChip {
			for i, glyph := range screen.XoChipHiresFont {
				copy(memory[screen.SuperChipHiresFontAddress+i*10:], glyph[:])
			}
		} else {
			for i, glyph := range screen.SuperChipHiresFont {
				copy(memory[screen.SuperChipHiresFontAddress+i*10:], glyph[:])
			}
		}
	}
	copy(memory[romBase:], rom)

	return &Machine{
		model:    m,
		tier:     tier,
		Quirks:   model.DefaultQuirks(m),
		memory:   memory,
		pc:       romBase,
		screen:   screen.New(m),
		pattern:  audio.DefaultPattern,
		pitch:    64,
		rng:      rand.New(rand.NewSource(1)),
		audioGen: audio.NewGenerator(),
	}, nil
}

// Model reports which variant m emulates.
func (m *Machine) Model() model.Model {
	return m.model
}

// Event records a key press or release. The interpreter's current
// KeyWaitTrigger quirk decides whether this transition can satisfy a
// pending Fx0A.
func (m *Machine) Event(key uint8, kind model.KeyEvent) {
	m.keypad.Event(key, kind, m.Quirks.KeyWaitTrigger)
}

// RenderFrame renders the current screen contents through palette.
func (m *Machine) RenderFrame(palette screen.Palette) *image.RGBA {
	return m.screen.ToImage(palette)
}

// SoundActive reports whether the sound timer is currently nonzero.
func (m *Machine) SoundActive() bool {
	return m.st > 0
}

// Pitch returns the current XO-CHIP pitch register (64 outside XO-CHIP).
func (m *Machine) Pitch() byte {
	return m.pitch
}

// AudioPattern returns the current 128-bit audio pattern buffer.
func (m *Machine) AudioPattern() [16]byte {
	return m.pattern
}

// RenderAudio produces dt seconds of PCM at the machine's current pitch
// and pattern, or silence if the sound timer is not active. It resets
// the generator's phase whenever the sound timer transitions from
// inactive to active, so every beep starts its waveform from the top.
func (m *Machine) RenderAudio(dt float64) []float32 {
	active := m.SoundActive()
	if active && !m.soundWasActive {
		m.audioGen.Reset()
	}
	m.soundWasActive = active
	if !active {
		n := 0
		if dt > 0 {
			n = int(dt * audio.SampleRate)
		}
		return make([]float32, n)
	}
	return m.audioGen.Render(m.pitch, m.pattern, dt)
}

// TickTimers decrements the delay and sound timers by one, if nonzero.
// The host calls this once per 60Hz (or model-specific) frame tick,
// independent of how many instructions TickMany executes that frame.
func (m *Machine) TickTimers() {
	if m.dt > 0 {
		m.dt--
	}
	if m.st > 0 {
		m.st--
	}
}

// TickMany runs Tick up to n times, stopping early on the first error
// (including ErrHalt). It raises the vblank flag for the first of these
// ticks only, so at most one Dxyn per frame can satisfy the
// draw_wait_for_vblank quirk.
func (m *Machine) TickMany(n int) error {
	m.vblank = true
	for i := 0; i < n; i++ {
		if err := m.Tick(); err != nil {
			return err
		}
		if i == 0 {
			m.vblank = false
		}
	}
	return nil
}

func (m *Machine) getV(reg uint8) byte {
	return m.v[reg&0xF]
}

func (m *Machine) setV(reg uint8, val byte) {
	m.v[reg&0xF] = val
}

func (m *Machine) pushStack(pc uint16) error {
	if int(m.sp) >= stackDepth {
		return ErrStackFull
	}
	m.stack[m.sp] = pc
	m.sp++
	return nil
}

func (m *Machine) popStack() (uint16, error) {
	if m.sp == 0 {
		return 0, ErrStackEmpty
	}
	m.sp--
	return m.stack[m.sp], nil
}

func (m *Machine) memSlice(addr uint16, n int) ([]byte, error) {
	if n < 0 || int(addr)+n > len(m.memory) {
		return nil, fmt.Errorf("%w: 0x%04X+%d", ErrInvalidMemoryRange, addr, n)
	}
	return m.memory[addr : int(addr)+n], nil
}

func (m *Machine) memExact(addr uint16, n int) ([]byte, error) {
	if n < 0 || int(addr)+n > len(m.memory) {
		return nil, fmt.Errorf("%w: 0x%04X+%d", ErrInvalidExactMemoryRange, addr, n)
	}
	return m.memory[addr : int(addr)+n], nil
}

// Tick fetches, decodes, and executes exactly one instruction, advancing
// pc by 2 (4 after an XO-CHIP long load), or leaves pc unchanged when an
// Fx0A key wait or a draw_wait_for_vblank stall has not yet been
// satisfied. On a fatal error, pc is rewound to the failing opcode's
// address so a debugger snapshot points at the instruction that failed,
// not past it.
func (m *Machine) Tick() error {
	if int(m.pc)+1 >= len(m.memory) {
		return fmt.Errorf("%w: 0x%04X", ErrPCOverflow, m.pc)
	}
	word := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	startPC := m.pc
	m.pc += 2

	if err := m.execute(word); err != nil {
		m.pc = startPC
		return fmt.Errorf("opcode 0x%04X at 0x%04X: %w", word, startPC, err)
	}
	return nil
}

func (m *Machine) nextWord() uint16 {
	if int(m.pc)+1 >= len(m.memory) {
		return 0
	}
	return uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
}

// skipIf advances pc past the instruction that follows when cond holds.
// On XO-CHIP, if that instruction is the F000 long-load, the skip covers
// both of its words so the double-word instruction is never partially
// executed.
func (m *Machine) skipIf(cond bool) {
	if !cond {
		return
	}
	if m.tier >= model.XoChipSet && m.nextWord() == 0xF000 {
		m.pc += 4
		return
	}
	m.pc += 2
}

func (m *Machine) execute(word uint16) error {
	op := word >> 12
	x := uint8(word >> 8 & 0xF)
	y := uint8(word >> 4 & 0xF)
	n := uint8(word & 0xF)
	kk := uint8(word & 0xFF)
	nnn := word & 0xFFF

	switch op {
	case 0x0:
		return m.exec0(word, n, nnn)
	case 0x1:
		m.pc = nnn
		return nil
	case 0x2:
		if err := m.pushStack(m.pc); err != nil {
			return err
		}
		m.pc = nnn
		return nil
	case 0x3:
		m.skipIf(m.getV(x) == kk)
		return nil
	case 0x4:
		m.skipIf(m.getV(x) != kk)
		return nil
	case 0x5:
		return m.exec5(x, y, n)
	case 0x6:
		m.setV(x, kk)
		return nil
	case 0x7:
		m.setV(x, m.getV(x)+kk)
		return nil
	case 0x8:
		return m.exec8(x, y, n)
	case 0x9:
		if n != 0 {
			return ErrInvalidInstruction
		}
		m.skipIf(m.getV(x) != m.getV(y))
		return nil
	case 0xA:
		m.i = nnn
		return nil
	case 0xB:
		if m.Quirks.JumpV0UseVx {
			m.pc = nnn + uint16(m.getV(x))
		} else {
			m.pc = nnn + uint16(m.v[0])
		}
		return nil
	case 0xC:
		m.setV(x, byte(m.rng.Intn(256))&kk)
		return nil
	case 0xD:
		return m.execDraw(x, y, n)
	case 0xE:
		return m.execE(x, kk)
	case 0xF:
		return m.execF(x, kk)
	}
	return ErrInvalidInstruction
}

func (m *Machine) exec0(word uint16, n uint8, nnn uint16) error {
	switch {
	case word == 0x0000:
		if m.Quirks.GracefulExitOn0000 {
			return ErrHalt
		}
		return ErrInvalidInstruction
	case word == 0x00E0:
		m.screen.Clear()
		return nil
	case word == 0x00EE:
		pc, err := m.popStack()
		if err != nil {
			return err
		}
		m.pc = pc
		return nil
	case m.tier >= model.SuperChip && nnn&0xFF0 == 0x0C0:
		return m.screen.ScrollDown(n)
	case m.tier >= model.XoChipSet && nnn&0xFF0 == 0x0D0:
		return m.screen.ScrollUp(n)
	case m.tier >= model.SuperChip && word == 0x00FB:
		return m.screen.ScrollRight()
	case m.tier >= model.SuperChip && word == 0x00FC:
		return m.screen.ScrollLeft()
	case m.tier >= model.SuperChip && word == 0x00FD:
		return ErrHalt
	case m.tier >= model.SuperChip && word == 0x00FE:
		if err := m.screen.SetHires(false); err != nil {
			return err
		}
		if m.Quirks.ClearScreenOnModeSwitch {
			m.screen.Clear()
		}
		return nil
	case m.tier >= model.SuperChip && word == 0x00FF:
		if err := m.screen.SetHires(true); err != nil {
			return err
		}
		if m.Quirks.ClearScreenOnModeSwitch {
			m.screen.Clear()
		}
		return nil
	}
	return ErrInvalidInstruction
}

func (m *Machine) exec5(x, y, n uint8) error {
	switch n {
	case 0x0:
		m.skipIf(m.getV(x) == m.getV(y))
		return nil
	case 0x2:
		if m.tier < model.XoChipSet {
			return ErrUnsupportedInstruction
		}
		return m.saveRegisterRange(x, y)
	case 0x3:
		if m.tier < model.XoChipSet {
			return ErrUnsupportedInstruction
		}
		return m.loadRegisterRange(x, y)
	}
	return ErrInvalidInstruction
}

// registerRange lists the register indices from x to y inclusive. Octo's
// "save vx - vy" / "load vx - vy" allow either direction.
func registerRange(x, y uint8) []uint8 {
	var out []uint8
	if x <= y {
		for r := x; r <= y; r++ {
			out = append(out, r)
		}
		return out
	}
	for r := x; ; r-- {
		out = append(out, r)
		if r == y {
			break
		}
	}
	return out
}

func (m *Machine) saveRegisterRange(x, y uint8) error {
	indices := registerRange(x, y)
	mem, err := m.memSlice(m.i, len(indices))
	if err != nil {
		return err
	}
	for idx, reg := range indices {
		mem[idx] = m.v[reg]
	}
	return nil
}

func (m *Machine) loadRegisterRange(x, y uint8) error {
	indices := registerRange(x, y)
	mem, err := m.memSlice(m.i, len(indices))
	if err != nil {
		return err
	}
	for idx, reg := range indices {
		m.v[reg] = mem[idx]
	}
	return nil
}

func (m *Machine) exec8(x, y, n uint8) error {
	switch n {
	case 0x0:
		m.setV(x, m.getV(y))
	case 0x1:
		m.setV(x, m.getV(x)|m.getV(y))
		if m.Quirks.BitwiseResetFlag {
			m.v[0xF] = 0
		}
	case 0x2:
		m.setV(x, m.getV(x)&m.getV(y))
		if m.Quirks.BitwiseResetFlag {
			m.v[0xF] = 0
		}
	case 0x3:
		m.setV(x, m.getV(x)^m.getV(y))
		if m.Quirks.BitwiseResetFlag {
			m.v[0xF] = 0
		}
	case 0x4:
		a, b := m.getV(x), m.getV(y)
		sum := uint16(a) + uint16(b)
		m.setV(x, byte(sum))
		m.v[0xF] = byte(sum >> 8 & 1)
	case 0x5:
		a, b := m.getV(x), m.getV(y)
		m.setV(x, a-b)
		m.v[0xF] = borrowFlag(a >= b)
	case 0x6:
		src := x
		if m.Quirks.BitshiftUseY {
			src = y
		}
		v := m.getV(src)
		m.setV(x, v>>1)
		m.v[0xF] = v & 1
	case 0x7:
		a, b := m.getV(x), m.getV(y)
		m.setV(x, b-a)
		m.v[0xF] = borrowFlag(b >= a)
	case 0xE:
		src := x
		if m.Quirks.BitshiftUseY {
			src = y
		}
		v := m.getV(src)
		m.setV(x, v<<1)
		m.v[0xF] = v >> 7 & 1
	default:
		return ErrInvalidInstruction
	}
	return nil
}

func borrowFlag(noBorrow bool) byte {
	if noBorrow {
		return 1
	}
	return 0
}

func (m *Machine) execDraw(x, y, n uint8) error {
	if m.Quirks.DrawWaitForVblank.Wait(m.screen.GetHires()) && !m.vblank {
		// Defer to the frame's vblank edge: rewind pc back onto this Dxyn
		// without touching memory or the screen, so the next TickMany
		// call retries it as that frame's first tick.
		m.pc -= 2
		return nil
	}

	large := m.tier >= model.SuperChip && n == 0

	if large && !m.screen.GetHires() && m.Quirks.LoresDrawLargeAsSmall {
		sprite, err := m.memSlice(m.i, 32)
		if err != nil {
			return err
		}
		small := make([]byte, 16)
		for row := 0; row < 16; row++ {
			small[row] = sprite[row*2]
		}
		collided := m.screen.DrawSprite(m.getV(x), m.getV(y), small)
		m.setFlag(collided)
		return nil
	}

	planes := m.screen.NumActivePlanes()
	if large {
		sprite, err := m.memSlice(m.i, 32*planes)
		if err != nil {
			return err
		}
		count, err := m.screen.DrawLargeSprite(m.getV(x), m.getV(y), sprite)
		if err != nil {
			return err
		}
		if m.model == model.LegacySuperChip {
			// Legacy SUPER-CHIP exposes the row-collision count itself in
			// vF, not a boolean, so ROMs can count row-hits.
			m.v[0xF] = count
		} else {
			m.setFlag(count > 0)
		}
		return nil
	}

	sprite, err := m.memSlice(m.i, int(n)*planes)
	if err != nil {
		return err
	}
	collided := m.screen.DrawSprite(m.getV(x), m.getV(y), sprite)
	m.setFlag(collided)
	return nil
}

func (m *Machine) setFlag(set bool) {
	if set {
		m.v[0xF] = 1
	} else {
		m.v[0xF] = 0
	}
}

func (m *Machine) execE(x, kk uint8) error {
	switch kk {
	case 0x9E:
		m.skipIf(m.keypad.IsPressed(m.getV(x)))
		return nil
	case 0xA1:
		m.skipIf(!m.keypad.IsPressed(m.getV(x)))
		return nil
	}
	return ErrInvalidInstruction
}

func (m *Machine) execF(x, kk uint8) error {
	switch kk {
	case 0x07:
		m.setV(x, m.dt)
		return nil
	case 0x0A:
		key, ok := m.keypad.TestEvent()
		if ok {
			m.setV(x, key)
		} else {
			m.pc -= 2
		}
		return nil
	case 0x15:
		m.dt = m.getV(x)
		return nil
	case 0x18:
		m.st = m.getV(x)
		return nil
	case 0x1E:
		m.i += uint16(m.getV(x))
		return nil
	case 0x29:
		m.i = screen.FontAddress + uint16(m.getV(x)&0xF)*5
		return nil
	case 0x33:
		mem, err := m.memExact(m.i, 3)
		if err != nil {
			return err
		}
		v := m.getV(x)
		mem[0], mem[1], mem[2] = v/100, v/10%10, v%10
		return nil
	case 0x55:
		n := int(x) + 1
		mem, err := m.memSlice(m.i, n)
		if err != nil {
			return err
		}
		copy(mem, m.v[:n])
		if m.Quirks.IncIOnSlice {
			m.i += uint16(n)
		}
		return nil
	case 0x65:
		n := int(x) + 1
		mem, err := m.memSlice(m.i, n)
		if err != nil {
			return err
		}
		copy(m.v[:n], mem)
		if m.Quirks.IncIOnSlice {
			m.i += uint16(n)
		}
		return nil
	}

	if m.tier >= model.SuperChip {
		switch kk {
		case 0x30:
			m.i = uint16(screen.SuperChipHiresFontAddress) + uint16(m.getV(x)&0xF)*10
			return nil
		case 0x75:
			n := int(x) + 1
			copy(m.rpl[:n], m.v[:n])
			return nil
		case 0x85:
			n := int(x) + 1
			copy(m.v[:n], m.rpl[:n])
			return nil
		}
	}

	if m.tier >= model.XoChipSet {
		switch {
		case kk == 0x00 && x == 0:
			m.i = m.nextWord()
			m.pc += 2
			return nil
		case kk == 0x01:
			return m.screen.SetPlanes(x)
		case kk == 0x02 && x == 0:
			mem, err := m.memSlice(m.i, 16)
			if err != nil {
				return err
			}
			copy(m.pattern[:], mem)
			return nil
		case kk == 0x3A:
			m.pitch = m.getV(x)
			return nil
		}
	}

	return ErrInvalidInstruction
}
