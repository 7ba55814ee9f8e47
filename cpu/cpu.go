// Package cpu implements the decode/resolve/execute core of a
// cycle-accurate (at the granularity of one retired instruction) MOS
// 6502 interpreter. It addresses a flat 64KiB memory.Bank and knows
// nothing about PPU, APU, controllers, or hardware interrupt lines -
// those are out of scope per the specification this core implements.
package cpu

import (
	"fmt"

	"github.com/jdbroadhead/go6502/irq"
	"github.com/jdbroadhead/go6502/memory"
)

// Packed status register bit values. Layout (bit 7 -> 0): N V 1 B D I Z C.
const (
	P_NEGATIVE  = uint8(0x80)
	P_OVERFLOW  = uint8(0x40)
	P_S1        = uint8(0x20) // Always 1 in the packed byte.
	P_B         = uint8(0x10) // Only meaningful on pushes.
	P_DECIMAL   = uint8(0x08)
	P_INTERRUPT = uint8(0x04)
	P_ZERO      = uint8(0x02)
	P_CARRY     = uint8(0x01)
)

const (
	NMI_VECTOR   = uint16(0xFFFA)
	RESET_VECTOR = uint16(0xFFFC)
	IRQ_VECTOR   = uint16(0xFFFE)
	BRK_VECTOR   = uint16(0xFFFE)
)

// Chip holds all 6502 register and interpreter state. It owns its
// memory.Bank exclusively for the duration of a run: single-writer, no
// locking, no shared mutable state between instructions.
type Chip struct {
	A  uint8  // Accumulator
	X  uint8  // X index register
	Y  uint8  // Y index register
	SP uint8  // Stack pointer; the stack address is 0x0100 | SP.
	P  uint8  // Packed status register.
	PC uint16 // Program counter.

	Cycles uint64 // Monotonically increasing cycle counter, seedable by the harness.

	mem memory.Bank

	// halted records that the last Step returned a fatal error; further
	// Step calls keep returning it rather than continuing to execute.
	halted    bool
	haltError error
}

// New creates a Chip addressing mem, in the power-on state defined by
// the NES-style validation reset (spec.md §6): PC loaded from the reset
// vector, SP = 0xFD, P = 0x24 (interrupts disabled, bit 5 set), A/X/Y =
// 0, and Cycles = 0. Callers that need the canonical nestest seed of 7
// should set c.Cycles = 7 after New returns.
func New(mem memory.Bank) *Chip {
	c := &Chip{mem: mem}
	c.Reset()
	return c
}

// Reset reloads PC from the reset vector and restores the documented
// post-reset register state. A, X, Y are left at whatever New set them
// to (zero); SP is set to 0xFD and P to 0x24, matching real 6502 startup
// behavior as pinned by the nestest validation corpus.
func (c *Chip) Reset() {
	c.SP = 0xFD
	c.P = P_S1 | P_INTERRUPT
	c.PC = word(c.mem.Read(RESET_VECTOR), c.mem.Read(RESET_VECTOR+1))
	c.halted = false
	c.haltError = nil
}

// Mem returns the memory.Bank this Chip addresses.
func (c *Chip) Mem() memory.Bank {
	return c.mem
}

// Halted reports whether a prior Step left the Chip unable to continue
// (a decode or execution error). The CPU itself has no explicit halt state beyond
// this - there is no HLT/STP opcode in scope.
func (c *Chip) Halted() (bool, error) {
	return c.halted, c.haltError
}

// Step fetches, decodes, resolves, and executes exactly one instruction,
// advancing PC and Cycles accordingly, then returns. It returns the
// InstructionDescriptor that was retired (useful for tracing) along with
// any fatal error.
func (c *Chip) Step() (*InstructionDescriptor, error) {
	if c.halted {
		return nil, c.haltError
	}
	desc, err := Decode(c.mem, c.PC)
	if err != nil {
		c.halted = true
		c.haltError = err
		return nil, err
	}
	if err := c.execute(desc); err != nil {
		c.halted = true
		c.haltError = err
		return desc, err
	}
	return desc, nil
}

// Run calls Step repeatedly until maxCycles have elapsed (0 means
// unlimited), a breakpoint Sender reports Raised, or Step returns an
// error. It returns the number of instructions retired and the error (if
// any) that stopped it. The breakpoint hook is intentionally the same
// shape as irq.Sender - a generic "stop now" signal - rather than a
// hardware interrupt line, since this core has no hardware interrupts in
// scope.
func (c *Chip) Run(maxCycles uint64, bp irq.Sender, onStep func(*InstructionDescriptor)) (int, error) {
	retired := 0
	for {
		if bp != nil && bp.Raised() {
			return retired, nil
		}
		if maxCycles != 0 && c.Cycles >= maxCycles {
			return retired, nil
		}
		desc, err := c.Step()
		if desc != nil && onStep != nil {
			onStep(desc)
		}
		if err != nil {
			return retired, err
		}
		retired++
	}
}

// zeroCheck sets the Z flag from reg.
func (c *Chip) zeroCheck(reg uint8) {
	c.P &^= P_ZERO
	if isZero(reg) {
		c.P |= P_ZERO
	}
}

// negativeCheck sets the N flag from reg.
func (c *Chip) negativeCheck(reg uint8) {
	c.P &^= P_NEGATIVE
	if isNegative(reg) {
		c.P |= P_NEGATIVE
	}
}

// setNZ is shorthand for the very common "set N/Z from this result"
// pattern spec.md calls out as the default flag-setting convention.
func (c *Chip) setNZ(reg uint8) {
	c.zeroCheck(reg)
	c.negativeCheck(reg)
}

// carryCheck sets the C flag if an 8 bit ALU result (passed widened to
// 16 bits) carried out, i.e. is >= 0x100.
func (c *Chip) carryCheck(res uint16) {
	c.P &^= P_CARRY
	if res >= 0x100 {
		c.P |= P_CARRY
	}
}

// overflowCheck sets the V flag if adding arg to reg produced res with a
// two's complement sign change impossible without signed overflow.
// https://www.righto.com/2012/12/the-6502-overflow-flag-explained.html
func (c *Chip) overflowCheck(reg, arg, res uint8) {
	c.P &^= P_OVERFLOW
	if (reg^res)&(arg^res)&0x80 != 0 {
		c.P |= P_OVERFLOW
	}
}

// getFlag reports whether the named status bit is set.
func (c *Chip) getFlag(bit uint8) bool {
	return c.P&bit != 0
}

// setFlag sets or clears the named status bit.
func (c *Chip) setFlag(bit uint8, set bool) {
	if set {
		c.P |= bit
	} else {
		c.P &^= bit
	}
}

// packStatus returns the status register as it should appear when
// pushed to the stack: bit 5 always 1, bit 4 (B) forced to the value
// given (pushes always set it to 1).
func packStatus(p uint8, b bool) uint8 {
	out := p | P_S1
	if b {
		out |= P_B
	} else {
		out &^= P_B
	}
	return out
}

// unpackStatus clears bit 5's meaning (it's always treated as 1) and
// returns the byte as a register value; B is tracked via the returned
// bool since it only matters transiently on pull.
func unpackStatus(b uint8) (p uint8, brk bool) {
	return b | P_S1, b&P_B != 0
}

// String implements fmt.Stringer for debugging (spew.Sdump also works
// without this, but this gives a compact one-liner for log lines).
func (c *Chip) String() string {
	return fmt.Sprintf("A:%.2X X:%.2X Y:%.2X P:%.2X SP:%.2X PC:%.4X CYC:%d",
		c.A, c.X, c.Y, c.P, c.SP, c.PC, c.Cycles)
}
