package trace_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jdbroadhead/go6502/cpu"
	"github.com/jdbroadhead/go6502/memory"
	"github.com/jdbroadhead/go6502/trace"
)

func TestLineAbsoluteJMP(t *testing.T) {
	mem := memory.NewFlat(true)
	memory.LoadBytes(mem, 0xC000, []byte{0x4C, 0xF5, 0xC5})

	desc, err := cpu.Decode(mem, 0xC000)
	require.NoError(t, err)

	got := trace.Line(mem, desc, 0xC000, 0, 0, 0, 0x24, 0xFD, 7)
	want := "C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 00 CYC:7"
	require.Equal(t, want, got)
}

func TestLineZeroPageStoreShowsOldValue(t *testing.T) {
	mem := memory.NewFlat(true)
	memory.LoadBytes(mem, 0xC000, []byte{0x85, 0x10})
	mem.Write(0x0010, 0x7F)

	desc, err := cpu.Decode(mem, 0xC000)
	require.NoError(t, err)

	got := trace.Line(mem, desc, 0xC000, 0x11, 0, 0, 0x24, 0xFD, 9)
	require.Contains(t, got, "STA $10 = 7F")
}

func TestLineImmediate(t *testing.T) {
	mem := memory.NewFlat(true)
	memory.LoadBytes(mem, 0xC000, []byte{0xA9, 0x00})

	desc, err := cpu.Decode(mem, 0xC000)
	require.NoError(t, err)

	got := trace.Line(mem, desc, 0xC000, 0, 0, 0, 0x24, 0xFD, 7)
	require.Contains(t, got, "LDA #$00")
}

func TestLineIndirectPageWrap(t *testing.T) {
	mem := memory.NewFlat(true)
	memory.LoadBytes(mem, 0xC000, []byte{0x6C, 0xFF, 0x02})
	mem.Write(0x02FF, 0x00)
	mem.Write(0x0200, 0x80)
	mem.Write(0x0300, 0xFF)

	desc, err := cpu.Decode(mem, 0xC000)
	require.NoError(t, err)

	got := trace.Line(mem, desc, 0xC000, 0, 0, 0, 0x24, 0xFD, 7)
	require.Contains(t, got, "JMP ($02FF) = 8000")
}

func TestLineIndexedIndirectAnnotation(t *testing.T) {
	mem := memory.NewFlat(true)
	memory.LoadBytes(mem, 0xC000, []byte{0x61, 0x10})
	mem.Write(0x0011, 0x34) // 0x10 + X(1) = 0x11 -> low byte of target
	mem.Write(0x0012, 0x12)
	mem.Write(0x1234, 0x99)

	desc, err := cpu.Decode(mem, 0xC000)
	require.NoError(t, err)

	got := trace.Line(mem, desc, 0xC000, 0, 1, 0, 0x24, 0xFD, 7)
	require.Contains(t, got, "ADC ($10,X) @ 11 = 1234 = 99")
}

func TestLineColumnAlignment(t *testing.T) {
	mem := memory.NewFlat(true)
	memory.LoadBytes(mem, 0xC000, []byte{0xEA}) // NOP, 1 byte

	desc, err := cpu.Decode(mem, 0xC000)
	require.NoError(t, err)

	got := trace.Line(mem, desc, 0xC000, 0, 0, 0, 0x24, 0xFD, 7)
	require.Equal(t, 48, indexOfA(got), "state block must start at column 48")
}

func indexOfA(s string) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == 'A' && s[i+1] == ':' {
			return i
		}
	}
	return -1
}
