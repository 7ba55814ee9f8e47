package cpu

// addressOf implements the ten addressing-mode rules that map an
// instruction's two data bytes (plus, for Relative, the current PC) to
// an effective 16-bit address, along with whether computing it crossed
// a page boundary (the condition that costs an extra read cycle).
//
// Accumulator, Implied, and Immediate carry no address and fail with
// UnresolvableOperand - asking for one from the execution unit on those
// modes would be a decoder/dispatch bug, not a reachable input error.
func (c *Chip) addressOf(desc *InstructionDescriptor) (uint16, bool, error) {
	lo, hi := desc.Data[0], desc.Data[1]
	switch desc.Mode {
	case Absolute:
		return word(lo, hi), false, nil

	case AbsoluteIndexedX:
		base := word(lo, hi)
		addr := base + uint16(c.X)
		return addr, pageCrossed(base, addr), nil

	case AbsoluteIndexedY:
		base := word(lo, hi)
		addr := base + uint16(c.Y)
		return addr, pageCrossed(base, addr), nil

	case ZeroPage:
		return uint16(lo), false, nil

	case ZeroPageIndexedX:
		return uint16(lo + c.X), false, nil

	case ZeroPageIndexedY:
		return uint16(lo + c.Y), false, nil

	case Indirect:
		ptr := word(lo, hi)
		// Classic page-wrap bug: if the pointer's low byte is 0xFF the
		// high byte is fetched from the start of the same page rather
		// than the next one. The nestest golden log requires this.
		hiAddr := ptr + 1
		if lo == 0xFF {
			hiAddr = ptr & 0xFF00
		}
		return word(c.mem.Read(ptr), c.mem.Read(hiAddr)), false, nil

	case IndexedIndirect:
		p := uint16(lo + c.X)
		return word(c.mem.Read(p), c.mem.Read(uint16(uint8(p)+1))), false, nil

	case IndirectIndexed:
		base := word(c.mem.Read(uint16(lo)), c.mem.Read(uint16(lo+1)))
		addr := base + uint16(c.Y)
		return addr, pageCrossed(base, addr), nil

	case Relative:
		base := c.PC + uint16(desc.Width)
		target := base + uint16(int16(int8(lo)))
		return target, pageCrossed(base, target), nil
	}
	return 0, false, UnresolvableOperand{Mode: desc.Mode}
}

// valueOf implements the resolver's value-fetching half: Immediate reads
// directly from the instruction's first data byte, Accumulator reads A,
// and every memory-backed mode reads through addressOf. Implied carries
// no operand and fails with UnresolvableOperand.
func (c *Chip) valueOf(desc *InstructionDescriptor) (uint8, bool, error) {
	switch desc.Mode {
	case Immediate:
		return desc.Data[0], false, nil
	case Accumulator:
		return c.A, false, nil
	case Implied:
		return 0, false, UnresolvableOperand{Mode: desc.Mode}
	}
	addr, crossed, err := c.addressOf(desc)
	if err != nil {
		return 0, false, err
	}
	return c.mem.Read(addr), crossed, nil
}

// readModePenalizesCrossing reports whether desc's addressing mode
// charges an extra cycle when the resolved address crosses a page
// boundary on a read. Indexed-absolute and indirect-indexed reads do;
// writes and read-modify-write instructions never do (they always pay
// the worst-case cycle count up front per spec.md §4.2).
func readModePenalizesCrossing(mode AddressingMode) bool {
	switch mode {
	case AbsoluteIndexedX, AbsoluteIndexedY, IndirectIndexed:
		return true
	}
	return false
}
