package cpu

import "fmt"

// UnsupportedOpcode is returned by Decode when asked to decode a byte
// that isn't one of the 151 official 6502 opcodes. This is fatal to the
// current run; the decoder is a total function over defined bytes only.
type UnsupportedOpcode struct {
	Opcode uint8
	PC     uint16
}

// Error implements the error interface.
func (e UnsupportedOpcode) Error() string {
	return fmt.Sprintf("unsupported opcode 0x%.2X at PC 0x%.4X", e.Opcode, e.PC)
}

// UnresolvableOperand is returned by the operand resolver when asked for
// a value or address from an addressing mode that doesn't carry one
// (Implied for both, plus Accumulator/Immediate for an address). Since
// the decoder only ever pairs a mode with the modes its opcode actually
// uses, seeing this means the execution unit has a bug - it is a
// programmer error, not a reachable input error.
type UnresolvableOperand struct {
	Mode AddressingMode
}

// Error implements the error interface.
func (e UnresolvableOperand) Error() string {
	return fmt.Sprintf("cannot resolve operand for addressing mode %s", e.Mode)
}

// InvalidCPUState represents an invariant violation in the emulator
// (a state or configuration value outside its defined range).
type InvalidCPUState struct {
	Reason string
}

// Error implements the error interface.
func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}
