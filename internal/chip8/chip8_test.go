package chip8

import (
	"errors"
	"testing"

	"github.com/retrobit-labs/chippy/internal/model"
)

func TestNewRejectsOversizedROM(t *testing.T) {
	big := make([]byte, model.MemorySize(model.CosmacVip))
	if _, err := New(model.CosmacVip, big); err == nil {
		t.Fatal("expected an error for a ROM that does not fit in memory")
	}
}

func TestTickSetsRegisterAndAdvancesPC(t *testing.T) {
	rom := []byte{0x61, 0x2A} // v1 := 0x2A
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Tick(); err != nil {
		t.Fatal(err)
	}
	if m.v[1] != 0x2A {
		t.Errorf("v1 = %#x, want 0x2a", m.v[1])
	}
	if m.pc != 0x202 {
		t.Errorf("pc = %#x, want 0x202", m.pc)
	}
}

func TestCallAndReturn(t *testing.T) {
	rom := []byte{
		0x22, 0x04, // call 0x204
		0x00, 0x00, // (skipped) would be an invalid halt if reached
		0x00, 0xEE, // return
	}
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Tick(); err != nil { // call
		t.Fatal(err)
	}
	if m.pc != 0x204 {
		t.Fatalf("pc after call = %#x, want 0x204", m.pc)
	}
	if err := m.Tick(); err != nil { // return
		t.Fatal(err)
	}
	if m.pc != 0x202 {
		t.Errorf("pc after return = %#x, want 0x202", m.pc)
	}
}

func TestStackOverflow(t *testing.T) {
	rom := []byte{0x22, 0x00} // call self, forever
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	var lastErr error
	for i := 0; i < stackDepth+1; i++ {
		lastErr = m.Tick()
		if lastErr != nil {
			break
		}
	}
	if !errors.Is(lastErr, ErrStackFull) {
		t.Errorf("expected ErrStackFull, got %v", lastErr)
	}
}

func TestReturnWithEmptyStackErrors(t *testing.T) {
	rom := []byte{0x00, 0xEE}
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Tick(); !errors.Is(err, ErrStackEmpty) {
		t.Errorf("expected ErrStackEmpty, got %v", err)
	}
}

func TestAddCarryFlag(t *testing.T) {
	rom := []byte{
		0x60, 0xFF, // v0 := 0xff
		0x61, 0x02, // v1 := 0x02
		0x80, 0x14, // v0 += v1
	}
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.TickMany(3); err != nil {
		t.Fatal(err)
	}
	if m.v[0] != 0x01 {
		t.Errorf("v0 = %#x, want 0x01", m.v[0])
	}
	if m.v[0xF] != 1 {
		t.Errorf("vF = %d, want 1 (carry)", m.v[0xF])
	}
}

func TestSubtractBorrowFlag(t *testing.T) {
	rom := []byte{
		0x60, 0x01, // v0 := 1
		0x61, 0x02, // v1 := 2
		0x80, 0x15, // v0 -= v1  (1 - 2, borrows)
	}
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.TickMany(3); err != nil {
		t.Fatal(err)
	}
	if m.v[0xF] != 0 {
		t.Errorf("vF = %d, want 0 (borrow occurred)", m.v[0xF])
	}
}

func TestBitshiftUsesYWhenQuirked(t *testing.T) {
	rom := []byte{
		0x60, 0x00, // v0 := 0
		0x61, 0x06, // v1 := 0x06
		0x80, 0x16, // v0 >>= v1 (quirk: source is vY)
	}
	m, err := New(model.CosmacVip, rom) // VIP default BitshiftUseY = true
	if err != nil {
		t.Fatal(err)
	}
	if err := m.TickMany(3); err != nil {
		t.Fatal(err)
	}
	if m.v[0] != 0x03 {
		t.Errorf("v0 = %#x, want 0x03 (0x06 >> 1)", m.v[0])
	}
}

func TestBitshiftUsesXWhenNotQuirked(t *testing.T) {
	rom := []byte{
		0x60, 0x08, // v0 := 8
		0x61, 0x06, // v1 := 6
		0x80, 0x16, // v0 >>= v1
	}
	m, err := New(model.ModernSuperChip, rom) // BitshiftUseY = false
	if err != nil {
		t.Fatal(err)
	}
	if err := m.TickMany(3); err != nil {
		t.Fatal(err)
	}
	if m.v[0] != 0x04 {
		t.Errorf("v0 = %#x, want 0x04 (8 >> 1, ignoring v1)", m.v[0])
	}
}

func TestMemorySaveLoadIncrementsIWhenQuirked(t *testing.T) {
	rom := []byte{
		0x60, 0x11, // v0 := 0x11
		0xA3, 0x00, // i := 0x300
		0xF0, 0x55, // save v0 (just v0)
	}
	m, err := New(model.CosmacVip, rom) // IncIOnSlice = true
	if err != nil {
		t.Fatal(err)
	}
	if err := m.TickMany(3); err != nil {
		t.Fatal(err)
	}
	if m.i != 0x301 {
		t.Errorf("i = %#x, want 0x301 (incremented by n=1)", m.i)
	}
	if m.memory[0x300] != 0x11 {
		t.Errorf("memory[0x300] = %#x, want 0x11", m.memory[0x300])
	}
}

func TestMemorySaveLoadLeavesIWhenNotQuirked(t *testing.T) {
	rom := []byte{
		0x60, 0x11,
		0xA3, 0x00,
		0xF0, 0x55,
	}
	m, err := New(model.ModernSuperChip, rom) // IncIOnSlice = false
	if err != nil {
		t.Fatal(err)
	}
	if err := m.TickMany(3); err != nil {
		t.Fatal(err)
	}
	if m.i != 0x300 {
		t.Errorf("i = %#x, want unchanged 0x300", m.i)
	}
}

func TestDrawSetsCollisionFlag(t *testing.T) {
	// Font digit 0 lives at FontAddress; draw it twice at the same spot,
	// each draw as the first (and only) tick of its own frame so neither
	// one stalls on the vblank quirk.
	rom := []byte{
		0xF0, 0x29, // i := hex v0   (v0 is 0, so digit '0')
		0xD0, 0x05, // sprite v0 v0 5 -- first draw, no collision
		0xD0, 0x05, // second draw at same spot -- collides and erases
	}
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.TickMany(1); err != nil { // Fx29
		t.Fatal(err)
	}
	if err := m.TickMany(1); err != nil { // first draw
		t.Fatal(err)
	}
	if m.v[0xF] != 0 {
		t.Fatalf("vF after first draw = %d, want 0", m.v[0xF])
	}
	if err := m.TickMany(1); err != nil { // second draw
		t.Fatal(err)
	}
	if m.v[0xF] != 1 {
		t.Errorf("vF after second draw = %d, want 1 (collision)", m.v[0xF])
	}
}

// TestDrawWaitForVblankLimitsToOneDrawPerFrame reproduces the classic VIP
// tight loop (draw; jump back) and checks that running several ticks of
// it within a single TickMany call produces at most one draw: later
// attempts within the same frame must rewind pc and retry, only
// succeeding once the next frame raises vblank again.
func TestDrawWaitForVblankLimitsToOneDrawPerFrame(t *testing.T) {
	rom := []byte{
		0xF0, 0x29, // 0x200: i := digit '0'
		0xD0, 0x05, // 0x202: draw
		0x12, 0x02, // 0x204: jump back to the draw
	}
	m, err := New(model.CosmacVip, rom) // DrawWaitForVblank = Always
	if err != nil {
		t.Fatal(err)
	}
	if err := m.TickMany(1); err != nil { // Fx29
		t.Fatal(err)
	}

	// Five ticks of the draw/jump loop in one frame: only the first tick
	// (the one vblank was raised for) should actually draw; the rest
	// keep stalling on the same Dxyn.
	if err := m.TickMany(5); err != nil {
		t.Fatal(err)
	}
	if m.pc != 0x202 {
		t.Errorf("pc after the frame = %#x, want 0x202 (stalled on the draw)", m.pc)
	}
	if m.v[0xF] != 0 {
		t.Fatalf("vF after a single draw = %d, want 0 (no collision yet)", m.v[0xF])
	}

	// The next frame's first tick draws again at the same spot, which
	// now collides.
	if err := m.TickMany(2); err != nil {
		t.Fatal(err)
	}
	if m.v[0xF] != 1 {
		t.Errorf("vF after the second frame's draw = %d, want 1 (collision)", m.v[0xF])
	}
}

func TestGracefulExitDefaultsToError(t *testing.T) {
	rom := []byte{0x00, 0x00}
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	tickErr := m.Tick()
	if errors.Is(tickErr, ErrHalt) {
		t.Fatal("0x0000 should not halt gracefully unless the quirk is enabled")
	}
	if !errors.Is(tickErr, ErrInvalidInstruction) {
		t.Errorf("expected ErrInvalidInstruction, got %v", tickErr)
	}
}

func TestGracefulExitWhenQuirked(t *testing.T) {
	rom := []byte{0x00, 0x00}
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	m.Quirks.GracefulExitOn0000 = true
	if err := m.Tick(); !errors.Is(err, ErrHalt) {
		t.Errorf("expected ErrHalt, got %v", err)
	}
}

func TestSuperChipExitOpcode(t *testing.T) {
	rom := []byte{0x00, 0xFD}
	m, err := New(model.ModernSuperChip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Tick(); !errors.Is(err, ErrHalt) {
		t.Errorf("expected ErrHalt from 00FD, got %v", err)
	}
}

func TestExitOpcodeUnsupportedOnBaseTier(t *testing.T) {
	rom := []byte{0x00, 0xFD}
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Tick(); !errors.Is(err, ErrInvalidInstruction) {
		t.Errorf("00FD should be invalid on the base tier, got %v", err)
	}
}

func TestRegisterRangeSaveDescending(t *testing.T) {
	rom := []byte{
		0x60, 0x11, // v0 := 0x11
		0x61, 0x22, // v1 := 0x22
		0x62, 0x33, // v2 := 0x33
		0xA3, 0x00, // i := 0x300
		0x52, 0x02, // save v2 - v0 (descending)
	}
	m, err := New(model.XoChip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.TickMany(5); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x33, 0x22, 0x11}
	for i, w := range want {
		if m.memory[0x300+i] != w {
			t.Errorf("memory[0x300+%d] = %#x, want %#x", i, m.memory[0x300+i], w)
		}
	}
}

func TestLongLoadAdvancesPCByFour(t *testing.T) {
	rom := []byte{
		0xF0, 0x00, 0x04, 0x00, // i := long 0x0400
	}
	m, err := New(model.XoChip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Tick(); err != nil {
		t.Fatal(err)
	}
	if m.i != 0x0400 {
		t.Errorf("i = %#x, want 0x0400", m.i)
	}
	if m.pc != 0x204 {
		t.Errorf("pc = %#x, want 0x204 (advanced by 4)", m.pc)
	}
}

func TestSetPlanesOpcode(t *testing.T) {
	rom := []byte{0xF3, 0x01} // plane 3 (mask 0b0011)
	m, err := New(model.XoChip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Tick(); err != nil {
		t.Fatal(err)
	}
	if got := m.screen.NumActivePlanes(); got != 2 {
		t.Errorf("NumActivePlanes() = %d, want 2", got)
	}
}

func TestBCDConversion(t *testing.T) {
	rom := []byte{
		0x60, 0x7B, // v0 := 123
		0xA3, 0x00, // i := 0x300
		0xF0, 0x33, // bcd v0
	}
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.TickMany(3); err != nil {
		t.Fatal(err)
	}
	if m.memory[0x300] != 1 || m.memory[0x301] != 2 || m.memory[0x302] != 3 {
		t.Errorf("bcd digits = %d,%d,%d, want 1,2,3", m.memory[0x300], m.memory[0x301], m.memory[0x302])
	}
}

func TestKeyWaitBlocksUntilEvent(t *testing.T) {
	rom := []byte{0xF0, 0x0A} // v0 := key
	m, err := New(model.CosmacVip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Tick(); err != nil {
		t.Fatal(err)
	}
	if m.pc != 0x200 {
		t.Fatalf("pc should not advance while waiting for a key, got %#x", m.pc)
	}
	m.Event(0x7, model.Press)
	m.Event(0x7, model.Release) // VIP's KeyWaitTrigger defaults to Release
	if err := m.Tick(); err != nil {
		t.Fatal(err)
	}
	if m.pc != 0x202 {
		t.Fatalf("pc should advance once the key wait resolves, got %#x", m.pc)
	}
	if m.v[0] != 0x7 {
		t.Errorf("v0 = %#x, want 0x7", m.v[0])
	}
}

func TestTimersCountDownIndependentlyOfTicks(t *testing.T) {
	m, err := New(model.CosmacVip, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.dt = 5
	m.st = 1
	m.TickTimers()
	if m.dt != 4 {
		t.Errorf("dt = %d, want 4", m.dt)
	}
	if m.st != 0 {
		t.Errorf("st = %d, want 0", m.st)
	}
	if m.SoundActive() {
		t.Error("sound should no longer be active")
	}
}

func TestSkipOverLongLoadSkipsBothWords(t *testing.T) {
	rom := []byte{
		0x60, 0x01, // v0 := 1
		0x30, 0x01, // if v0 != 0x01 then <skip next>; v0==1 so this skips
		0xF0, 0x00, 0x04, 0x00, // i := long 0x0400 (must be skipped whole)
		0x61, 0x01, // v1 := 1
	}
	m, err := New(model.XoChip, rom)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.TickMany(2); err != nil { // v0 := 1, skip test
		t.Fatal(err)
	}
	if m.pc != 0x208 {
		t.Fatalf("pc after skipping the long load = %#x, want 0x208", m.pc)
	}
	if m.i != 0 {
		t.Errorf("i = %#x, the skipped long load must not have executed", m.i)
	}
	if err := m.Tick(); err != nil { // v1 := 1
		t.Fatal(err)
	}
	if m.v[1] != 1 {
		t.Error("the instruction after the skipped long load should have executed")
	}
}

func TestLegacySuperChipLargeSpriteCollisionIsRowCount(t *testing.T) {
	rom := []byte{
		0x00, 0xFF, // hires
		0xF0, 0x29, // i := hex v0 (unused, just to warm i; overwritten below)
		0xA3, 0x00, // i := 0x300
		0xD0, 0x00, // sprite v0 v0 0 (16x16 draw, first time, no collision)
		0xD0, 0x00, // second draw at the same spot: every lit row collides
	}
	m, err := New(model.LegacySuperChip, rom)
	if err != nil {
		t.Fatal(err)
	}
	// Write a 16-row sprite with every row lit (0xFFFF) at 0x300.
	for i := 0; i < 32; i += 2 {
		m.memory[0x300+i] = 0xFF
		m.memory[0x300+i+1] = 0xFF
	}
	if err := m.TickMany(4); err != nil {
		t.Fatal(err)
	}
	if m.v[0xF] != 0 {
		t.Fatalf("vF after first large draw = %d, want 0", m.v[0xF])
	}
	if err := m.Tick(); err != nil { // second draw: collides on every one of the 16 rows
		t.Fatal(err)
	}
	if m.v[0xF] != 16 {
		t.Errorf("vF after second large draw = %d, want 16 (row count, not boolean)", m.v[0xF])
	}
}

func TestPCOverflowErrors(t *testing.T) {
	m, err := New(model.CosmacVip, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.pc = uint16(len(m.memory) - 1)
	if err := m.Tick(); !errors.Is(err, ErrPCOverflow) {
		t.Errorf("expected ErrPCOverflow, got %v", err)
	}
}
