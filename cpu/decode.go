package cpu

import "github.com/jdbroadhead/go6502/memory"

// InstructionDescriptor is the transient, per-decode result of mapping
// one opcode byte to its full shape: mnemonic, addressing mode, byte
// width, and base cycle cost, plus the raw bytes needed to execute it.
type InstructionDescriptor struct {
	Opcode     Mnemonic
	Mode       AddressingMode
	Width      uint8
	BaseCycles uint8
	Data       [2]uint8 // the two bytes following the opcode, read unconditionally.
	OpcodeByte uint8    // the original byte, kept for trace rendering.
}

// opcodeInfo is one row of the 256-entry decode table. Undefined bytes
// carry defined=false and decode fails rather than falling through to a
// zero-value row.
type opcodeInfo struct {
	mnemonic   Mnemonic
	mode       AddressingMode
	width      uint8
	baseCycles uint8
	defined    bool
}

// op is a small constructor used only while building decodeTable below,
// to keep the 151-row table readable as data instead of as 151 struct
// literals.
func op(m Mnemonic, mode AddressingMode, width, cycles uint8) opcodeInfo {
	return opcodeInfo{mnemonic: m, mode: mode, width: width, baseCycles: cycles, defined: true}
}

// decodeTable is the canonical 6502 opcode matrix (Masswerk reference),
// realized as a dense array indexed by opcode byte rather than a switch,
// per spec.md's decoder contract. It is the bulk of this package.
var decodeTable = [256]opcodeInfo{
	0x69: op(ADC, Immediate, 2, 2),
	0x65: op(ADC, ZeroPage, 2, 3),
	0x75: op(ADC, ZeroPageIndexedX, 2, 4),
	0x6D: op(ADC, Absolute, 3, 4),
	0x7D: op(ADC, AbsoluteIndexedX, 3, 4),
	0x79: op(ADC, AbsoluteIndexedY, 3, 4),
	0x61: op(ADC, IndexedIndirect, 2, 6),
	0x71: op(ADC, IndirectIndexed, 2, 5),

	0x29: op(AND, Immediate, 2, 2),
	0x25: op(AND, ZeroPage, 2, 3),
	0x35: op(AND, ZeroPageIndexedX, 2, 4),
	0x2D: op(AND, Absolute, 3, 4),
	0x3D: op(AND, AbsoluteIndexedX, 3, 4),
	0x39: op(AND, AbsoluteIndexedY, 3, 4),
	0x21: op(AND, IndexedIndirect, 2, 6),
	0x31: op(AND, IndirectIndexed, 2, 5),

	0x0A: op(ASL, Accumulator, 1, 2),
	0x06: op(ASL, ZeroPage, 2, 5),
	0x16: op(ASL, ZeroPageIndexedX, 2, 6),
	0x0E: op(ASL, Absolute, 3, 6),
	0x1E: op(ASL, AbsoluteIndexedX, 3, 7),

	0x90: op(BCC, Relative, 2, 2),
	0xB0: op(BCS, Relative, 2, 2),
	0xF0: op(BEQ, Relative, 2, 2),

	0x24: op(BIT, ZeroPage, 2, 3),
	0x2C: op(BIT, Absolute, 3, 4),

	0x30: op(BMI, Relative, 2, 2),
	0xD0: op(BNE, Relative, 2, 2),
	0x10: op(BPL, Relative, 2, 2),

	0x00: op(BRK, Implied, 1, 7),

	0x50: op(BVC, Relative, 2, 2),
	0x70: op(BVS, Relative, 2, 2),

	0x18: op(CLC, Implied, 1, 2),
	0xD8: op(CLD, Implied, 1, 2),
	0x58: op(CLI, Implied, 1, 2),
	0xB8: op(CLV, Implied, 1, 2),

	0xC9: op(CMP, Immediate, 2, 2),
	0xC5: op(CMP, ZeroPage, 2, 3),
	0xD5: op(CMP, ZeroPageIndexedX, 2, 4),
	0xCD: op(CMP, Absolute, 3, 4),
	0xDD: op(CMP, AbsoluteIndexedX, 3, 4),
	0xD9: op(CMP, AbsoluteIndexedY, 3, 4),
	0xC1: op(CMP, IndexedIndirect, 2, 6),
	0xD1: op(CMP, IndirectIndexed, 2, 5),

	0xE0: op(CPX, Immediate, 2, 2),
	0xE4: op(CPX, ZeroPage, 2, 3),
	0xEC: op(CPX, Absolute, 3, 4),

	0xC0: op(CPY, Immediate, 2, 2),
	0xC4: op(CPY, ZeroPage, 2, 3),
	0xCC: op(CPY, Absolute, 3, 4),

	0xC6: op(DEC, ZeroPage, 2, 5),
	0xD6: op(DEC, ZeroPageIndexedX, 2, 6),
	0xCE: op(DEC, Absolute, 3, 6),
	0xDE: op(DEC, AbsoluteIndexedX, 3, 7),

	0xCA: op(DEX, Implied, 1, 2),
	0x88: op(DEY, Implied, 1, 2),

	0x49: op(EOR, Immediate, 2, 2),
	0x45: op(EOR, ZeroPage, 2, 3),
	0x55: op(EOR, ZeroPageIndexedX, 2, 4),
	0x4D: op(EOR, Absolute, 3, 4),
	0x5D: op(EOR, AbsoluteIndexedX, 3, 4),
	0x59: op(EOR, AbsoluteIndexedY, 3, 4),
	0x41: op(EOR, IndexedIndirect, 2, 6),
	0x51: op(EOR, IndirectIndexed, 2, 5),

	0xE6: op(INC, ZeroPage, 2, 5),
	0xF6: op(INC, ZeroPageIndexedX, 2, 6),
	0xEE: op(INC, Absolute, 3, 6),
	0xFE: op(INC, AbsoluteIndexedX, 3, 7),

	0xE8: op(INX, Implied, 1, 2),
	0xC8: op(INY, Implied, 1, 2),

	0x4C: op(JMP, Absolute, 3, 3),
	0x6C: op(JMP, Indirect, 3, 5),

	0x20: op(JSR, Absolute, 3, 6),

	0xA9: op(LDA, Immediate, 2, 2),
	0xA5: op(LDA, ZeroPage, 2, 3),
	0xB5: op(LDA, ZeroPageIndexedX, 2, 4),
	0xAD: op(LDA, Absolute, 3, 4),
	0xBD: op(LDA, AbsoluteIndexedX, 3, 4),
	0xB9: op(LDA, AbsoluteIndexedY, 3, 4),
	0xA1: op(LDA, IndexedIndirect, 2, 6),
	0xB1: op(LDA, IndirectIndexed, 2, 5),

	0xA2: op(LDX, Immediate, 2, 2),
	0xA6: op(LDX, ZeroPage, 2, 3),
	0xB6: op(LDX, ZeroPageIndexedY, 2, 4),
	0xAE: op(LDX, Absolute, 3, 4),
	0xBE: op(LDX, AbsoluteIndexedY, 3, 4),

	0xA0: op(LDY, Immediate, 2, 2),
	0xA4: op(LDY, ZeroPage, 2, 3),
	0xB4: op(LDY, ZeroPageIndexedX, 2, 4),
	0xAC: op(LDY, Absolute, 3, 4),
	0xBC: op(LDY, AbsoluteIndexedX, 3, 4),

	0x4A: op(LSR, Accumulator, 1, 2),
	0x46: op(LSR, ZeroPage, 2, 5),
	0x56: op(LSR, ZeroPageIndexedX, 2, 6),
	0x4E: op(LSR, Absolute, 3, 6),
	0x5E: op(LSR, AbsoluteIndexedX, 3, 7),

	0xEA: op(NOP, Implied, 1, 2),

	0x09: op(ORA, Immediate, 2, 2),
	0x05: op(ORA, ZeroPage, 2, 3),
	0x15: op(ORA, ZeroPageIndexedX, 2, 4),
	0x0D: op(ORA, Absolute, 3, 4),
	0x1D: op(ORA, AbsoluteIndexedX, 3, 4),
	0x19: op(ORA, AbsoluteIndexedY, 3, 4),
	0x01: op(ORA, IndexedIndirect, 2, 6),
	0x11: op(ORA, IndirectIndexed, 2, 5),

	0x48: op(PHA, Implied, 1, 3),
	0x08: op(PHP, Implied, 1, 3),
	0x68: op(PLA, Implied, 1, 4),
	0x28: op(PLP, Implied, 1, 4),

	0x2A: op(ROL, Accumulator, 1, 2),
	0x26: op(ROL, ZeroPage, 2, 5),
	0x36: op(ROL, ZeroPageIndexedX, 2, 6),
	0x2E: op(ROL, Absolute, 3, 6),
	0x3E: op(ROL, AbsoluteIndexedX, 3, 7),

	0x6A: op(ROR, Accumulator, 1, 2),
	0x66: op(ROR, ZeroPage, 2, 5),
	0x76: op(ROR, ZeroPageIndexedX, 2, 6),
	0x6E: op(ROR, Absolute, 3, 6),
	0x7E: op(ROR, AbsoluteIndexedX, 3, 7),

	0x40: op(RTI, Implied, 1, 6),
	0x60: op(RTS, Implied, 1, 6),

	0xE9: op(SBC, Immediate, 2, 2),
	0xE5: op(SBC, ZeroPage, 2, 3),
	0xF5: op(SBC, ZeroPageIndexedX, 2, 4),
	0xED: op(SBC, Absolute, 3, 4),
	0xFD: op(SBC, AbsoluteIndexedX, 3, 4),
	0xF9: op(SBC, AbsoluteIndexedY, 3, 4),
	0xE1: op(SBC, IndexedIndirect, 2, 6),
	0xF1: op(SBC, IndirectIndexed, 2, 5),

	0x38: op(SEC, Implied, 1, 2),
	0xF8: op(SED, Implied, 1, 2),
	0x78: op(SEI, Implied, 1, 2),

	0x85: op(STA, ZeroPage, 2, 3),
	0x95: op(STA, ZeroPageIndexedX, 2, 4),
	0x8D: op(STA, Absolute, 3, 4),
	0x9D: op(STA, AbsoluteIndexedX, 3, 5),
	0x99: op(STA, AbsoluteIndexedY, 3, 5),
	0x81: op(STA, IndexedIndirect, 2, 6),
	0x91: op(STA, IndirectIndexed, 2, 6),

	0x86: op(STX, ZeroPage, 2, 3),
	0x96: op(STX, ZeroPageIndexedY, 2, 4),
	0x8E: op(STX, Absolute, 3, 4),

	0x84: op(STY, ZeroPage, 2, 3),
	0x94: op(STY, ZeroPageIndexedX, 2, 4),
	0x8C: op(STY, Absolute, 3, 4),

	0xAA: op(TAX, Implied, 1, 2),
	0xA8: op(TAY, Implied, 1, 2),
	0xBA: op(TSX, Implied, 1, 2),
	0x8A: op(TXA, Implied, 1, 2),
	0x9A: op(TXS, Implied, 1, 2),
	0x98: op(TYA, Implied, 1, 2),
}

// Decode reads the opcode byte at pc (plus the two bytes that follow,
// unconditionally) and returns the fully-populated InstructionDescriptor
// for it. Unrecognized bytes fail with UnsupportedOpcode.
func Decode(mem memory.Bank, pc uint16) (*InstructionDescriptor, error) {
	b := mem.Read(pc)
	info := decodeTable[b]
	if !info.defined {
		return nil, UnsupportedOpcode{Opcode: b, PC: pc}
	}
	return &InstructionDescriptor{
		Opcode:     info.mnemonic,
		Mode:       info.mode,
		Width:      info.width,
		BaseCycles: info.baseCycles,
		OpcodeByte: b,
		Data:       [2]uint8{mem.Read(pc + 1), mem.Read(pc + 2)},
	}, nil
}
