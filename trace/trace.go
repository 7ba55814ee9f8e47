// Package trace renders one retired instruction as a byte-exact nestest
// log line. It recomputes operand addresses independently of the cpu
// package's own resolver - the same separation of concerns the teacher's
// disassemble package drew between decoding for display and decoding for
// execution - so a caller can produce a line from register/memory state
// without perturbing it.
package trace

import (
	"fmt"

	"github.com/jdbroadhead/go6502/cpu"
	"github.com/jdbroadhead/go6502/memory"
)

// Line formats desc (already decoded at pc, but not yet executed) plus
// the register snapshot taken at fetch time into one nestest-format log
// line: "PC  BB BB BB  MNEM OPERAND" padded to column 48, followed by
// "A:AA X:XX Y:YY P:PP SP:SS PPU:  0, 00 CYC:n". The PPU block is a
// fixed literal; this core has no PPU.
func Line(mem memory.Bank, desc *cpu.InstructionDescriptor, pc uint16, a, x, y, p, sp uint8, cycles uint64) string {
	first := fmt.Sprintf("%04X  %s%s", pc, bytesBlock(desc), operand(mem, desc, x, y, pc))
	for len(first) < 48 {
		first += " "
	}
	return fmt.Sprintf("%sA:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:  0, 00 CYC:%d",
		first, a, x, y, p, sp, cycles)
}

// bytesBlock renders the instruction's raw bytes, always 10 characters
// wide regardless of width: "BB BB BB  " for 3, "BB BB     " for 2,
// "BB        " for 1.
func bytesBlock(desc *cpu.InstructionDescriptor) string {
	switch desc.Width {
	case 1:
		return fmt.Sprintf("%02X        ", desc.OpcodeByte)
	case 2:
		return fmt.Sprintf("%02X %02X     ", desc.OpcodeByte, desc.Data[0])
	default:
		return fmt.Sprintf("%02X %02X %02X  ", desc.OpcodeByte, desc.Data[0], desc.Data[1])
	}
}

// operand renders the mnemonic plus its mode-dependent operand text,
// reading through mem for the "= VV" / "@ AA" annotations nestest
// expects. x, y, and pc are the register values at fetch time (before
// this instruction's own side effects, if any).
func operand(mem memory.Bank, desc *cpu.InstructionDescriptor, x, y uint8, pc uint16) string {
	mnem := desc.Opcode.String()
	lo, hi := desc.Data[0], desc.Data[1]

	switch desc.Mode {
	case cpu.Implied:
		return mnem
	case cpu.Immediate:
		return fmt.Sprintf("%s #$%02X", mnem, lo)
	case cpu.Accumulator:
		return fmt.Sprintf("%s A", mnem)

	case cpu.ZeroPage:
		v := mem.Read(uint16(lo))
		return fmt.Sprintf("%s $%02X = %02X", mnem, lo, v)

	case cpu.ZeroPageIndexedX:
		addr := lo + x
		v := mem.Read(uint16(addr))
		return fmt.Sprintf("%s $%02X,X @ %02X = %02X", mnem, lo, addr, v)

	case cpu.ZeroPageIndexedY:
		addr := lo + y
		v := mem.Read(uint16(addr))
		return fmt.Sprintf("%s $%02X,Y @ %02X = %02X", mnem, lo, addr, v)

	case cpu.Absolute:
		full := word(lo, hi)
		if desc.Opcode == cpu.JMP || desc.Opcode == cpu.JSR {
			return fmt.Sprintf("%s $%04X", mnem, full)
		}
		v := mem.Read(full)
		return fmt.Sprintf("%s $%04X = %02X", mnem, full, v)

	case cpu.AbsoluteIndexedX:
		base := word(lo, hi)
		addr := base + uint16(x)
		v := mem.Read(addr)
		return fmt.Sprintf("%s $%04X,X @ %04X = %02X", mnem, base, addr, v)

	case cpu.AbsoluteIndexedY:
		base := word(lo, hi)
		addr := base + uint16(y)
		v := mem.Read(addr)
		return fmt.Sprintf("%s $%04X,Y @ %04X = %02X", mnem, base, addr, v)

	case cpu.IndexedIndirect:
		zp := lo + x
		addr := word(mem.Read(uint16(zp)), mem.Read(uint16(zp+1)))
		v := mem.Read(addr)
		return fmt.Sprintf("%s ($%02X,X) @ %02X = %04X = %02X", mnem, lo, zp, addr, v)

	case cpu.IndirectIndexed:
		base := word(mem.Read(uint16(lo)), mem.Read(uint16(lo+1)))
		addr := base + uint16(y)
		v := mem.Read(addr)
		return fmt.Sprintf("%s ($%02X),Y = %04X @ %04X = %02X", mnem, lo, base, addr, v)

	case cpu.Relative:
		target := pc + uint16(desc.Width) + uint16(int16(int8(lo)))
		return fmt.Sprintf("%s $%04X", mnem, target)

	case cpu.Indirect:
		ptr := word(lo, hi)
		hiAddr := ptr + 1
		if lo == 0xFF {
			hiAddr = ptr & 0xFF00
		}
		addr := word(mem.Read(ptr), mem.Read(hiAddr))
		return fmt.Sprintf("%s ($%04X) = %04X", mnem, ptr, addr)
	}
	return mnem
}

func word(lo, hi uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}
