package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRedactPPU(t *testing.T) {
	in := "C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7"
	want := "C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD CYC:7"
	if got := redactPPU(in); got != want {
		t.Errorf("redactPPU mismatch:\n got:  %q\n want: %q", got, want)
	}
}

func TestRunNestestMatchesGoldenTrace(t *testing.T) {
	dir := t.TempDir()

	image := make([]byte, 0x10000)
	image[0xC000] = 0xA9 // LDA #$00
	image[0xC001] = 0x00
	image[0xC002] = 0xEA // NOP
	imagePath := filepath.Join(dir, "image.bin")
	if err := os.WriteFile(imagePath, image, 0o644); err != nil {
		t.Fatal(err)
	}

	golden := "" +
		"C000  A9 00     LDA #$00                        A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 00 CYC:7\n" +
		"C002  EA        NOP                             A:00 X:00 Y:00 P:26 SP:FD PPU:  0, 00 CYC:9\n"
	goldenPath := filepath.Join(dir, "golden.log")
	if err := os.WriteFile(goldenPath, []byte(golden), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runNestest(imagePath, goldenPath, 0, 0); err != nil {
		t.Fatalf("runNestest: %v", err)
	}
}

func TestRunNestestReportsFirstMismatch(t *testing.T) {
	dir := t.TempDir()

	image := make([]byte, 0x10000)
	image[0xC000] = 0xA9 // LDA #$00
	image[0xC001] = 0x00
	imagePath := filepath.Join(dir, "image.bin")
	if err := os.WriteFile(imagePath, image, 0o644); err != nil {
		t.Fatal(err)
	}

	golden := "C000  A9 00     LDA #$99                        A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 00 CYC:7\n"
	goldenPath := filepath.Join(dir, "golden.log")
	if err := os.WriteFile(goldenPath, []byte(golden), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runNestest(imagePath, goldenPath, 0, 0)
	if err == nil {
		t.Fatal("expected a mismatch error, got nil")
	}
}
