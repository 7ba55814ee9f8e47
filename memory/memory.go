// Package memory defines the flat 64KiB byte-addressable memory the
// 6502 core operates against. Unlike a full system bus (which banks ROM,
// mirrors RAM, and maps peripheral registers) this is a single backing
// array: the core is handed a mutable 64KiB buffer and addresses it
// directly, per the spec's exclusion of mapping hardware from the core.
package memory

import (
	"math/rand"
	"time"
)

// Bank is the interface the cpu package requires of its backing store.
// A chain of these can be built (Parent) for implementations that want
// to model a real memory map, but the core itself only ever sees the
// outermost Bank.
type Bank interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value.
	Write(addr uint16, val uint8)
	// PowerOn resets the bank to its post-reset contents.
	PowerOn()
	// Parent holds a reference (if non-nil) to the next level memory
	// controller, allowing DatabusVal to be queried from the outermost
	// bank in a chain.
	Parent() Bank
	// DatabusVal returns the last value seen to cross the data bus.
	DatabusVal() uint8
}

// LatestDatabusVal hunts up a chain of Banks until it finds the
// outermost one and returns the DatabusVal from it.
func LatestDatabusVal(b Bank) uint8 {
	if b.Parent() != nil {
		return LatestDatabusVal(b.Parent())
	}
	return b.DatabusVal()
}

// flat implements Bank as a single 65536 byte array with no aliasing,
// no banking, and no mapped peripherals - the memory model spec.md
// describes for the core.
type flat struct {
	ram        [65536]uint8
	parent     Bank
	databusVal uint8
	zeroed     bool
}

// NewFlat creates the 64KiB backing store the cpu package addresses
// directly. If zeroed is false the contents are randomized on PowerOn,
// matching real hardware's undefined power-on RAM state; tests that need
// deterministic behavior (nestest, the concrete scenarios in spec.md §8)
// should pass true.
func NewFlat(zeroed bool) Bank {
	b := &flat{zeroed: zeroed}
	b.PowerOn()
	return b
}

// Read implements Bank.
func (r *flat) Read(addr uint16) uint8 {
	val := r.ram[addr]
	r.databusVal = val
	return val
}

// Write implements Bank.
func (r *flat) Write(addr uint16, val uint8) {
	r.databusVal = val
	r.ram[addr] = val
}

// PowerOn implements Bank.
func (r *flat) PowerOn() {
	if r.zeroed {
		for i := range r.ram {
			r.ram[i] = 0
		}
		return
	}
	rand.Seed(time.Now().UnixNano())
	for i := range r.ram {
		r.ram[i] = uint8(rand.Intn(256))
	}
}

// Parent implements Bank. A flat bank is always the root of its chain.
func (r *flat) Parent() Bank {
	return r.parent
}

// DatabusVal implements Bank.
func (r *flat) DatabusVal() uint8 {
	return r.databusVal
}

// LoadBytes copies data into the bank starting at addr, wrapping modulo
// 65536 if it runs past the end. This is a harness convenience (not part
// of the core's own interface) for seeding a test image or a ROM image
// the caller has already read from disk - loading the bytes themselves
// is out of scope for the core per spec.md.
func LoadBytes(b Bank, addr uint16, data []byte) {
	for i, v := range data {
		b.Write(addr+uint16(i), v)
	}
}
