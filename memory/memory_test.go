package memory

import "testing"

func TestNewFlatZeroed(t *testing.T) {
	b := NewFlat(true)
	for _, addr := range []uint16{0x0000, 0x1234, 0xFFFF} {
		if v := b.Read(addr); v != 0 {
			t.Errorf("Read(%04X) = %02X, want 00 on a zeroed bank", addr, v)
		}
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	b := NewFlat(true)
	b.Write(0x4000, 0xAB)
	if got := b.Read(0x4000); got != 0xAB {
		t.Errorf("Read(4000) = %02X, want AB", got)
	}
	if got := b.DatabusVal(); got != 0xAB {
		t.Errorf("DatabusVal() = %02X, want AB", got)
	}
}

func TestLoadBytes(t *testing.T) {
	b := NewFlat(true)
	LoadBytes(b, 0xC000, []byte{0xA9, 0x00, 0xEA})
	if got := b.Read(0xC000); got != 0xA9 {
		t.Errorf("Read(C000) = %02X, want A9", got)
	}
	if got := b.Read(0xC002); got != 0xEA {
		t.Errorf("Read(C002) = %02X, want EA", got)
	}
}

func TestLoadBytesWrapsPastEndOfBank(t *testing.T) {
	b := NewFlat(true)
	LoadBytes(b, 0xFFFE, []byte{0x11, 0x22, 0x33})
	if got := b.Read(0xFFFE); got != 0x11 {
		t.Errorf("Read(FFFE) = %02X, want 11", got)
	}
	if got := b.Read(0xFFFF); got != 0x22 {
		t.Errorf("Read(FFFF) = %02X, want 22", got)
	}
	if got := b.Read(0x0000); got != 0x33 {
		t.Errorf("Read(0000) = %02X, want 33 (address wraps modulo 65536)", got)
	}
}

func TestLatestDatabusVal(t *testing.T) {
	b := NewFlat(true)
	b.Write(0x10, 0x55)
	if got := LatestDatabusVal(b); got != 0x55 {
		t.Errorf("LatestDatabusVal = %02X, want 55", got)
	}
}
