package cpu

// execute applies one decoded instruction's semantics to CPU state,
// following the template in spec.md §4.4: compute operand as needed,
// mutate state, advance PC by the instruction width unless the opcode
// set PC directly (branch/jump/subroutine), then add base cycles plus
// any mode or branch penalty.
func (c *Chip) execute(desc *InstructionDescriptor) error {
	var penalty uint64
	advancePC := true

	switch desc.Opcode {
	case ADC:
		v, crossed, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.addWithCarry(v)
		penalty = readPenalty(desc.Mode, crossed)

	case SBC:
		v, crossed, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.addWithCarry(v ^ 0xFF)
		penalty = readPenalty(desc.Mode, crossed)

	case AND:
		v, crossed, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.A &= v
		c.setNZ(c.A)
		penalty = readPenalty(desc.Mode, crossed)

	case ORA:
		v, crossed, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.A |= v
		c.setNZ(c.A)
		penalty = readPenalty(desc.Mode, crossed)

	case EOR:
		v, crossed, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.A ^= v
		c.setNZ(c.A)
		penalty = readPenalty(desc.Mode, crossed)

	case ASL:
		if err := c.rmw(desc, c.asl); err != nil {
			return err
		}
	case LSR:
		if err := c.rmw(desc, c.lsr); err != nil {
			return err
		}
	case ROL:
		if err := c.rmw(desc, c.rol); err != nil {
			return err
		}
	case ROR:
		if err := c.rmw(desc, c.ror); err != nil {
			return err
		}
	case INC:
		if err := c.rmw(desc, c.inc); err != nil {
			return err
		}
	case DEC:
		if err := c.rmw(desc, c.dec); err != nil {
			return err
		}

	case CMP:
		v, crossed, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.compare(c.A, v)
		penalty = readPenalty(desc.Mode, crossed)
	case CPX:
		v, _, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.compare(c.X, v)
	case CPY:
		v, _, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.compare(c.Y, v)

	case BIT:
		v, _, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.bitTest(v)

	case LDA:
		v, crossed, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.A = v
		c.setNZ(c.A)
		penalty = readPenalty(desc.Mode, crossed)
	case LDX:
		v, crossed, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.X = v
		c.setNZ(c.X)
		penalty = readPenalty(desc.Mode, crossed)
	case LDY:
		v, crossed, err := c.valueOf(desc)
		if err != nil {
			return err
		}
		c.Y = v
		c.setNZ(c.Y)
		penalty = readPenalty(desc.Mode, crossed)

	case STA:
		addr, _, err := c.addressOf(desc)
		if err != nil {
			return err
		}
		c.mem.Write(addr, c.A)
	case STX:
		addr, _, err := c.addressOf(desc)
		if err != nil {
			return err
		}
		c.mem.Write(addr, c.X)
	case STY:
		addr, _, err := c.addressOf(desc)
		if err != nil {
			return err
		}
		c.mem.Write(addr, c.Y)

	case INX:
		c.X++
		c.setNZ(c.X)
	case INY:
		c.Y++
		c.setNZ(c.Y)
	case DEX:
		c.X--
		c.setNZ(c.X)
	case DEY:
		c.Y--
		c.setNZ(c.Y)

	case TAX:
		c.X = c.A
		c.setNZ(c.X)
	case TAY:
		c.Y = c.A
		c.setNZ(c.Y)
	case TSX:
		c.X = c.SP
		c.setNZ(c.X)
	case TXA:
		c.A = c.X
		c.setNZ(c.A)
	case TXS:
		c.SP = c.X // TXS sets no flags.
	case TYA:
		c.A = c.Y
		c.setNZ(c.A)

	case PHA:
		c.push(c.A)
	case PHP:
		c.push(packStatus(c.P, true))
	case PLA:
		c.A = c.pull()
		c.setNZ(c.A)
	case PLP:
		c.P = (c.pull() | P_S1) &^ P_B

	case CLC:
		c.setFlag(P_CARRY, false)
	case SEC:
		c.setFlag(P_CARRY, true)
	case CLD:
		c.setFlag(P_DECIMAL, false)
	case SED:
		c.setFlag(P_DECIMAL, true)
	case CLI:
		c.setFlag(P_INTERRUPT, false)
	case SEI:
		c.setFlag(P_INTERRUPT, true)
	case CLV:
		c.setFlag(P_OVERFLOW, false)

	case NOP:
		// Does nothing.

	case BCC:
		taken, cyc, err := c.branch(desc, !c.getFlag(P_CARRY))
		if err != nil {
			return err
		}
		penalty, advancePC = cyc, !taken
	case BCS:
		taken, cyc, err := c.branch(desc, c.getFlag(P_CARRY))
		if err != nil {
			return err
		}
		penalty, advancePC = cyc, !taken
	case BEQ:
		taken, cyc, err := c.branch(desc, c.getFlag(P_ZERO))
		if err != nil {
			return err
		}
		penalty, advancePC = cyc, !taken
	case BNE:
		taken, cyc, err := c.branch(desc, !c.getFlag(P_ZERO))
		if err != nil {
			return err
		}
		penalty, advancePC = cyc, !taken
	case BMI:
		taken, cyc, err := c.branch(desc, c.getFlag(P_NEGATIVE))
		if err != nil {
			return err
		}
		penalty, advancePC = cyc, !taken
	case BPL:
		taken, cyc, err := c.branch(desc, !c.getFlag(P_NEGATIVE))
		if err != nil {
			return err
		}
		penalty, advancePC = cyc, !taken
	case BVC:
		taken, cyc, err := c.branch(desc, !c.getFlag(P_OVERFLOW))
		if err != nil {
			return err
		}
		penalty, advancePC = cyc, !taken
	case BVS:
		taken, cyc, err := c.branch(desc, c.getFlag(P_OVERFLOW))
		if err != nil {
			return err
		}
		penalty, advancePC = cyc, !taken

	case JMP:
		addr, _, err := c.addressOf(desc)
		if err != nil {
			return err
		}
		c.PC = addr
		advancePC = false

	case JSR:
		ret := c.PC + 2
		c.push(uint8(ret >> 8))
		c.push(uint8(ret))
		c.PC = word(desc.Data[0], desc.Data[1])
		advancePC = false

	case RTS:
		lo := c.pull()
		hi := c.pull()
		c.PC = word(lo, hi) + 1
		advancePC = false

	case RTI:
		c.P = (c.pull() | P_S1) &^ P_B
		lo := c.pull()
		hi := c.pull()
		c.PC = word(lo, hi)
		advancePC = false

	case BRK:
		ret := c.PC + 2
		c.push(uint8(ret >> 8))
		c.push(uint8(ret))
		c.push(packStatus(c.P, true))
		c.setFlag(P_INTERRUPT, true)
		c.PC = word(c.mem.Read(BRK_VECTOR), c.mem.Read(BRK_VECTOR+1))
		advancePC = false
	}

	if advancePC {
		c.PC += uint16(desc.Width)
	}
	c.Cycles += uint64(desc.BaseCycles) + penalty
	return nil
}

// readPenalty is 1 extra cycle when mode charges for page-crossing reads
// and this particular resolution crossed one, else 0.
func readPenalty(mode AddressingMode, crossed bool) uint64 {
	if crossed && readModePenalizesCrossing(mode) {
		return 1
	}
	return 0
}

// rmw performs a read-modify-write against either the accumulator
// (Accumulator mode) or memory (every other mode ASL/LSR/ROL/ROR/INC/DEC
// use), applying f to the current value and storing the result back.
func (c *Chip) rmw(desc *InstructionDescriptor, f func(uint8) uint8) error {
	if desc.Mode == Accumulator {
		c.A = f(c.A)
		return nil
	}
	addr, _, err := c.addressOf(desc)
	if err != nil {
		return err
	}
	c.mem.Write(addr, f(c.mem.Read(addr)))
	return nil
}

func (c *Chip) asl(v uint8) uint8 {
	c.setFlag(P_CARRY, isNegative(v))
	r := v << 1
	c.setNZ(r)
	return r
}

func (c *Chip) lsr(v uint8) uint8 {
	c.setFlag(P_CARRY, v&0x01 != 0)
	r := v >> 1
	c.setNZ(r)
	return r
}

func (c *Chip) rol(v uint8) uint8 {
	oldCarry := c.getFlag(P_CARRY)
	c.setFlag(P_CARRY, isNegative(v))
	r := v << 1
	if oldCarry {
		r |= 0x01
	}
	c.setNZ(r)
	return r
}

func (c *Chip) ror(v uint8) uint8 {
	oldCarry := c.getFlag(P_CARRY)
	c.setFlag(P_CARRY, v&0x01 != 0)
	r := v >> 1
	if oldCarry {
		r |= 0x80
	}
	c.setNZ(r)
	return r
}

func (c *Chip) inc(v uint8) uint8 {
	r := v + 1
	c.setNZ(r)
	return r
}

func (c *Chip) dec(v uint8) uint8 {
	r := v - 1
	c.setNZ(r)
	return r
}

// addWithCarry implements ADC. SBC routes through this with its operand
// complemented (binary-mode subtraction via two's complement with
// borrow), matching the teacher's single-ALU-path convention. Decimal
// mode is never honored here - the NES 6502 variant this core targets
// omits BCD; SED/CLD only toggle the D flag.
func (c *Chip) addWithCarry(op uint8) {
	var carryIn uint16
	if c.getFlag(P_CARRY) {
		carryIn = 1
	}
	raw := uint16(c.A) + uint16(op) + carryIn
	result := uint8(raw)
	c.carryCheck(raw)
	c.overflowCheck(c.A, op, result)
	c.A = result
	c.setNZ(c.A)
}

// compare implements CMP/CPX/CPY: subtract without storing, set N/Z from
// the difference, and set carry iff reg >= m (unsigned).
func (c *Chip) compare(reg, m uint8) {
	d := reg - m
	c.setNZ(d)
	c.setFlag(P_CARRY, reg >= m)
}

// bitTest implements BIT: N/V come from the operand itself, not from
// A&m, and A is left untouched.
func (c *Chip) bitTest(m uint8) {
	c.setFlag(P_NEGATIVE, isNegative(m))
	c.setFlag(P_OVERFLOW, m&0x40 != 0)
	c.setFlag(P_ZERO, isZero(c.A&m))
}

// branch implements the shared accounting for all eight conditional
// branches: not taken costs nothing extra (PC simply advances by the
// instruction's width, same as any other instruction); taken costs one
// extra cycle, plus one more if the target crosses a page boundary
// relative to PC+width.
func (c *Chip) branch(desc *InstructionDescriptor, taken bool) (bool, uint64, error) {
	if !taken {
		return false, 0, nil
	}
	target, crossed, err := c.addressOf(desc)
	if err != nil {
		return false, 0, err
	}
	c.PC = target
	cyc := uint64(1)
	if crossed {
		cyc++
	}
	return true, cyc, nil
}

// push writes val to the stack page and decrements SP, wrapping modulo
// 256.
func (c *Chip) push(val uint8) {
	c.mem.Write(0x0100|uint16(c.SP), val)
	c.SP--
}

// pull increments SP (wrapping modulo 256) and reads the stack page.
func (c *Chip) pull() uint8 {
	c.SP++
	return c.mem.Read(0x0100 | uint16(c.SP))
}
