package disasm

import (
	"strings"
	"testing"

	"github.com/retrobit-labs/chippy/internal/model"
)

func TestDecodeBasicOpcodes(t *testing.T) {
	tests := []struct {
		word uint16
		tier model.InstructionSet
		want string
	}{
		{0x00E0, model.Base, "clear"},
		{0x00EE, model.Base, "return"},
		{0x1234, model.Base, "jump 0x234"},
		{0x6A12, model.Base, "vA := 0x12"},
		{0x7A01, model.Base, "vA += 0x01"},
		{0xA123, model.Base, "i := 0x123"},
		{0xDAB4, model.Base, "sprite vA vB 4"},
		{0xFA1E, model.Base, "i += vA"},
	}
	for _, tt := range tests {
		got, used := Decode(tt.word, 0, tt.tier)
		if got != tt.want || used {
			t.Errorf("Decode(%04X) = (%q, %v), want (%q, false)", tt.word, got, used, tt.want)
		}
	}
}

func TestDecodeGatesByTier(t *testing.T) {
	// 00FB (scroll-right) requires at least SUPER-CHIP.
	if got, _ := Decode(0x00FB, 0, model.Base); got != "????" {
		t.Errorf("scroll-right should be unavailable at Base tier, got %q", got)
	}
	if got, _ := Decode(0x00FB, 0, model.SuperChip); got != "scroll-right" {
		t.Errorf("scroll-right should decode at SuperChip tier, got %q", got)
	}
}

func TestDecodeXoChipRegisterRangeOps(t *testing.T) {
	got, used := Decode(0x5122, 0, model.XoChipSet)
	if got != "save v1 - v2" || used {
		t.Errorf("Decode(5122) = (%q, %v), want (\"save v1 - v2\", false)", got, used)
	}
	if got, _ := Decode(0x5122, 0, model.SuperChip); got != "????" {
		t.Errorf("5xy2 should be unavailable below XoChipSet, got %q", got)
	}
}

func TestDecodeLongLoadConsumesNextWord(t *testing.T) {
	got, used := Decode(0xF000, 0x0ABC, model.XoChipSet)
	if !used {
		t.Fatal("F000 should consume the next word")
	}
	if got != "i := long 0x0ABC" {
		t.Errorf("Decode(F000) = %q, want long-load text", got)
	}
}

func TestDecodeDxy0LargeSpriteRequiresSuperChip(t *testing.T) {
	got, _ := Decode(0xD120, 0, model.SuperChip)
	if got != "sprite v1 v2 0" {
		t.Errorf("Decode(D120) at SuperChip = %q, want large sprite form", got)
	}
	got, _ = Decode(0xD120, 0, model.Base)
	if got != "sprite v1 v2 0" {
		t.Errorf("Decode(D120) at Base should still render as an ordinary 0-row sprite, got %q", got)
	}
}

func TestFollowsSkipRecognizesConditionals(t *testing.T) {
	if !FollowsSkip(0x3A12, model.Base) {
		t.Error("3xkk should be recognized as a skip")
	}
	if FollowsSkip(0x6A12, model.Base) {
		t.Error("6xkk is not a skip")
	}
}

func TestProgramIndentsInstructionsFollowingASkip(t *testing.T) {
	rom := []byte{
		0x3A, 0x12, // if vA != 0x12 then
		0x6A, 0x01, // vA := 0x01  (should be indented)
		0x12, 0x00, // jump 0x200  (not indented)
	}
	lines := Program(rom, 0x200, model.Base)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	if lines[0].Indented {
		t.Error("the skip itself should not be indented")
	}
	if !lines[1].Indented {
		t.Error("the instruction following a skip should be indented")
	}
	if lines[2].Indented {
		t.Error("an instruction following a non-skip should not be indented")
	}
}

func TestProgramAdvancesFourBytesAfterLongLoad(t *testing.T) {
	rom := []byte{
		0xF0, 0x00, 0x03, 0x00, // i := long 0x0300
		0x00, 0xE0, // clear
	}
	lines := Program(rom, 0x200, model.XoChipSet)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0].LongWord == nil || *lines[0].LongWord != 0x0300 {
		t.Fatal("first line should carry the long-load operand word")
	}
	if lines[1].Address != 0x204 {
		t.Errorf("second line address = %#x, want 0x204", lines[1].Address)
	}
}

func TestLineStringIncludesAddressAndIndent(t *testing.T) {
	l := Line{Address: 0x200, Opcode: 0x00E0, Text: "clear", Indented: true}
	s := l.String()
	if !strings.HasPrefix(s, "0200: 00E0") {
		t.Errorf("String() = %q, want address/opcode prefix", s)
	}
	if !strings.Contains(s, "    clear") {
		t.Errorf("String() = %q, want indented text", s)
	}
}
