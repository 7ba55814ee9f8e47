package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdbroadhead/go6502/cpu"
	"github.com/jdbroadhead/go6502/internal/debugger"
	"github.com/jdbroadhead/go6502/memory"
	"github.com/jdbroadhead/go6502/trace"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nes6502",
		Short: "A cycle-accurate (per retired instruction) 6502 core runner",
	}

	var loadAddr uint16
	var startPC uint16
	var setPC bool
	var maxCycles uint64

	run := &cobra.Command{
		Use:   "run <image>",
		Short: "Load a flat memory image and run it until it halts or --max-cycles elapses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			mem := memory.NewFlat(true)
			memory.LoadBytes(mem, loadAddr, data)
			c := cpu.New(mem)
			if setPC {
				c.PC = startPC
			}

			retired, err := c.Run(maxCycles, nil, func(desc *cpu.InstructionDescriptor) {})
			fmt.Printf("retired %d instructions, %s\n", retired, c)
			if err != nil {
				return err
			}
			return nil
		},
	}
	run.Flags().Uint16Var(&loadAddr, "load-addr", 0, "address to load the image at")
	run.Flags().Uint16Var(&startPC, "pc", 0, "override PC after load (only with --set-pc)")
	run.Flags().BoolVar(&setPC, "set-pc", false, "honor --pc instead of the reset vector")
	run.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "stop after this many cycles (0 = unlimited)")
	rootCmd.AddCommand(run)

	nestest := &cobra.Command{
		Use:   "nestest <image> <golden-log>",
		Short: "Run the nestest validation corpus and diff the trace against a golden log",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNestest(args[0], args[1], loadAddr, maxCycles)
		},
	}
	nestest.Flags().Uint16Var(&loadAddr, "load-addr", 0, "address to load the image at")
	nestest.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "stop after this many cycles (0 = unlimited)")
	rootCmd.AddCommand(nestest)

	debug := &cobra.Command{
		Use:   "debug <image>",
		Short: "Load a flat memory image and step through it interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			mem := memory.NewFlat(true)
			memory.LoadBytes(mem, loadAddr, data)
			c := cpu.New(mem)
			if setPC {
				c.PC = startPC
			}
			return debugger.Run(c, loadAddr)
		},
	}
	debug.Flags().Uint16Var(&loadAddr, "load-addr", 0, "address to load the image at")
	debug.Flags().Uint16Var(&startPC, "pc", 0, "override PC after load (only with --set-pc)")
	debug.Flags().BoolVar(&setPC, "set-pc", false, "honor --pc instead of the reset vector")
	rootCmd.AddCommand(debug)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("nes6502: %v", err)
	}
}

// runNestest loads image at loadAddr, seeds the chip with the nestest
// reset state (PC=0xC000, SP=0xFD, P=0x24, Cycles=7 - spec.md §6), and
// steps it one instruction at a time, comparing each formatted trace
// line (PPU substring redacted on both sides) against golden, stopping
// at the first mismatch.
func runNestest(imagePath, goldenPath string, loadAddr uint16, maxCycles uint64) error {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return err
	}
	golden, err := os.Open(goldenPath)
	if err != nil {
		return err
	}
	defer golden.Close()

	mem := memory.NewFlat(true)
	memory.LoadBytes(mem, loadAddr, data)
	c := cpu.New(mem)
	c.PC = 0xC000
	c.SP = 0xFD
	c.P = 0x24
	c.Cycles = 7

	scanner := bufio.NewScanner(golden)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		want := redactPPU(scanner.Text())

		desc, err := cpu.Decode(c.Mem(), c.PC)
		if err != nil {
			return fmt.Errorf("line %d: decode failed at PC %04X: %w", lineNo, c.PC, err)
		}
		got := redactPPU(trace.Line(c.Mem(), desc, c.PC, c.A, c.X, c.Y, c.P, c.SP, c.Cycles))

		if got != want {
			return fmt.Errorf("mismatch at golden line %d:\n  want: %s\n  got:  %s", lineNo, want, got)
		}

		if _, err := c.Step(); err != nil {
			return fmt.Errorf("line %d: step failed: %w", lineNo, err)
		}
		if maxCycles != 0 && c.Cycles >= maxCycles {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	fmt.Printf("nestest: %d lines matched\n", lineNo)
	return nil
}

// redactPPU blanks the "PPU:  0, 00" substring so lines compare equal
// regardless of PPU dot/scanline state, which this core never tracks.
func redactPPU(line string) string {
	i := strings.Index(line, "PPU:")
	j := strings.Index(line, "CYC:")
	if i < 0 || j < 0 || j < i {
		return line
	}
	return line[:i] + line[j:]
}
