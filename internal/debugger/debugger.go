// Package debugger is an interactive terminal front end for single
// stepping a cpu.Chip: a scrolling memory page table, a register/flag
// panel, and the nestest-format trace line for the instruction about to
// retire.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/jdbroadhead/go6502/cpu"
	"github.com/jdbroadhead/go6502/trace"
)

type model struct {
	chip   *cpu.Chip
	offset uint16 // first address shown in the page table
	prevPC uint16
	err    error
	halted bool
}

// Init implements tea.Model; there is no initial command.
func (m model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			if m.halted {
				return m, nil
			}
			m.prevPC = m.chip.PC
			if _, err := m.chip.Step(); err != nil {
				m.err = err
				m.halted = true
			}
		case "g":
			m.offset += 16 * 10
		case "G":
			if m.offset >= 16*10 {
				m.offset -= 16 * 10
			}
		}
	}
	return m, nil
}

// renderPage renders one 16-byte memory row as a line, highlighting PC.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	mem := m.chip.Mem()
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := mem.Read(addr)
		if addr == m.chip.PC {
			s += fmt.Sprintf("[%02X] ", b)
		} else {
			s += fmt.Sprintf(" %02X  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "addr | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf(" %01X   ", b)
	}
	rows := []string{header}
	for row := 0; row < 10; row++ {
		start := m.offset + uint16(row*16)
		rows = append(rows, m.renderPage(start))
	}
	return strings.Join(rows, "\n")
}

func (m model) status() string {
	c := m.chip
	flagBits := []struct {
		name string
		bit  uint8
	}{
		{"N", cpu.P_NEGATIVE}, {"V", cpu.P_OVERFLOW}, {"1", cpu.P_S1}, {"B", cpu.P_B},
		{"D", cpu.P_DECIMAL}, {"I", cpu.P_INTERRUPT}, {"Z", cpu.P_ZERO}, {"C", cpu.P_CARRY},
	}
	var names, marks strings.Builder
	for _, f := range flagBits {
		names.WriteString(f.name + " ")
		if c.P&f.bit != 0 {
			marks.WriteString("/ ")
		} else {
			marks.WriteString("  ")
		}
	}
	halted := "running"
	if m.halted {
		halted = fmt.Sprintf("halted: %v", m.err)
	}
	return fmt.Sprintf(`
PC: %04X (was %04X)
 A: %02X   X: %02X   Y: %02X
SP: %02X  CYC: %d
%s
%s
%s
`, c.PC, m.prevPC, c.A, c.X, c.Y, c.SP, c.Cycles, names.String(), marks.String(), halted)
}

func (m model) traceLine() string {
	desc, err := cpu.Decode(m.chip.Mem(), m.chip.PC)
	if err != nil {
		return fmt.Sprintf("decode error at %04X: %v", m.chip.PC, err)
	}
	c := m.chip
	return trace.Line(c.Mem(), desc, c.PC, c.A, c.X, c.Y, c.P, c.SP, c.Cycles)
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	body := m.traceLine()
	if m.halted {
		body = spew.Sdump(m.err)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		body,
		"",
		"space/j: step   g/G: scroll   q: quit",
	)
}

// Run starts an interactive TUI stepping chip one instruction at a time.
// offset picks the first memory page table row shown; it does not affect
// chip state.
func Run(chip *cpu.Chip, offset uint16) error {
	final, err := tea.NewProgram(model{chip: chip, offset: offset, prevPC: chip.PC}).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.err != nil {
		return m.err
	}
	return nil
}
