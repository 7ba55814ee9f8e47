package cpu

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/jdbroadhead/go6502/memory"
)

// decodeCase names one opcode byte and the descriptor Decode must
// produce for it, independent of decodeTable's own construction - these
// are transcribed from the 6502 reference opcode matrix, not lifted
// from decodeTable itself.
type decodeCase struct {
	opcode uint8
	want   InstructionDescriptor
}

func TestDecodeKnownOpcodes(t *testing.T) {
	cases := []decodeCase{
		{0xA9, InstructionDescriptor{Opcode: LDA, Mode: Immediate, Width: 2, BaseCycles: 2, OpcodeByte: 0xA9}},
		{0x8D, InstructionDescriptor{Opcode: STA, Mode: Absolute, Width: 3, BaseCycles: 4, OpcodeByte: 0x8D}},
		{0x6C, InstructionDescriptor{Opcode: JMP, Mode: Indirect, Width: 3, BaseCycles: 5, OpcodeByte: 0x6C}},
		{0x00, InstructionDescriptor{Opcode: BRK, Mode: Implied, Width: 1, BaseCycles: 7, OpcodeByte: 0x00}},
		{0x0A, InstructionDescriptor{Opcode: ASL, Mode: Accumulator, Width: 1, BaseCycles: 2, OpcodeByte: 0x0A}},
		{0x7D, InstructionDescriptor{Opcode: ADC, Mode: AbsoluteIndexedX, Width: 3, BaseCycles: 4, OpcodeByte: 0x7D}},
		{0xB6, InstructionDescriptor{Opcode: LDX, Mode: ZeroPageIndexedY, Width: 2, BaseCycles: 4, OpcodeByte: 0xB6}},
		{0x61, InstructionDescriptor{Opcode: ADC, Mode: IndexedIndirect, Width: 2, BaseCycles: 6, OpcodeByte: 0x61}},
		{0x71, InstructionDescriptor{Opcode: ADC, Mode: IndirectIndexed, Width: 2, BaseCycles: 5, OpcodeByte: 0x71}},
		{0x90, InstructionDescriptor{Opcode: BCC, Mode: Relative, Width: 2, BaseCycles: 2, OpcodeByte: 0x90}},
	}

	mem := memory.NewFlat(true)
	for _, c := range cases {
		mem.Write(0x1000, c.opcode)
		mem.Write(0x1001, 0xAB)
		mem.Write(0x1002, 0xCD)
		c.want.Data = [2]uint8{0xAB, 0xCD}

		got, err := Decode(mem, 0x1000)
		if err != nil {
			t.Fatalf("Decode(0x%02X): %v", c.opcode, err)
		}
		if diff := deep.Equal(*got, c.want); diff != nil {
			t.Errorf("Decode(0x%02X) diff: %v", c.opcode, diff)
		}
	}
}

func TestDecodeUndefinedOpcode(t *testing.T) {
	mem := memory.NewFlat(true)
	mem.Write(0x1000, 0x02) // never a defined 6502 byte

	_, err := Decode(mem, 0x1000)
	if err == nil {
		t.Fatal("expected UnsupportedOpcode, got nil")
	}
	unsupported, ok := err.(UnsupportedOpcode)
	if !ok {
		t.Fatalf("expected UnsupportedOpcode, got %T", err)
	}
	if unsupported.Opcode != 0x02 || unsupported.PC != 0x1000 {
		t.Errorf("got %+v, want Opcode=02 PC=1000", unsupported)
	}
}

func TestDecodeTableHas151Entries(t *testing.T) {
	count := 0
	for _, info := range decodeTable {
		if info.defined {
			count++
		}
	}
	if count != 151 {
		t.Errorf("decodeTable has %d defined opcodes, want 151", count)
	}
}
