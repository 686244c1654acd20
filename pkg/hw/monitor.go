// Package hw contains hardware devices for the DCPU-16 bus.
package hw

import (
	"fmt"
	"strings"

	"github.com/oisee/dcpu16/pkg/cpu"
	"github.com/oisee/dcpu16/pkg/inst"
)

// Monitor interrupt commands, taken from register A on HWI. Register B
// carries the parameter.
const (
	MemMapScreen   = 0x00
	MemMapFont     = 0x01
	MemMapPalette  = 0x02
	SetBorderColor = 0x03
)

// Monitor is a 32x12 cell character display. Each screen cell word is
// ffffbbbbBccccccc: foreground and background palette indices, a blink
// bit, and a 7-bit glyph index. Until mapped by the program, font and
// palette fall back to the built-in defaults.
type Monitor struct {
	ScreenAddr  uint16
	FontAddr    uint16
	PaletteAddr uint16
	BorderColor uint16
}

var _ cpu.Device = (*Monitor)(nil)

// NewMonitor returns an unmapped monitor.
func NewMonitor() *Monitor { return &Monitor{} }

func (m *Monitor) ID() uint32           { return 0x7349F615 }
func (m *Monitor) Version() uint16      { return 0x1802 }
func (m *Monitor) Manufacturer() uint32 { return 0x1C6C8B36 }

// HandleInterrupt maps screen, font, or palette memory, or sets the
// border color.
func (m *Monitor) HandleInterrupt(p *cpu.Processor) {
	param := p.Register(inst.B)
	switch p.Register(inst.A) {
	case MemMapScreen:
		m.ScreenAddr = param
	case MemMapFont:
		m.FontAddr = param
	case MemMapPalette:
		m.PaletteAddr = param
	case SetBorderColor:
		m.BorderColor = param
	}
}

// Render draws the screen as truecolor ANSI, four terminal columns and
// four rows of half-block characters per glyph, cursor-addressed to
// the top left. The caller decides when and how often to print it.
func (m *Monitor) Render(p *cpu.Processor) string {
	var sb strings.Builder
	sb.WriteString("\x1b[0;0H")
	for y := uint16(0); y < 12; y++ {
		if y > 0 {
			sb.WriteString("\x1b[3B\n")
		}
		for x := uint16(0); x < 32; x++ {
			cell := p.ReadMemory(m.ScreenAddr + y*32 + x)
			fg := m.rgb(p, cell>>12&0xF)
			bg := m.rgb(p, cell>>8&0xF)
			fmt.Fprintf(&sb, "\x1b[38;2;%sm\x1b[48;2;%sm%s", fg, bg, m.glyph(p, cell&0x7F))
		}
	}
	return sb.String()
}

// rgb expands a 12-bit palette entry into an 8-bit-per-channel ANSI
// color triple.
func (m *Monitor) rgb(p *cpu.Processor, index uint16) string {
	color := defaultPalette[index]
	if m.PaletteAddr > 0 {
		color = p.ReadMemory(m.PaletteAddr + index)
	}
	r := (color >> 8 & 0xF) * 16
	g := (color >> 4 & 0xF) * 16
	b := (color & 0xF) * 16
	return fmt.Sprintf("%d;%d;%d", r, g, b)
}

// glyph renders one 4x8 font character as four rows of paired
// half-block cells, ending with the cursor back at the glyph's top
// right so the next glyph continues the row.
func (m *Monitor) glyph(p *cpu.Processor, index uint16) string {
	addr := index * 2 // two words per glyph
	w0, w1 := defaultFont[addr], defaultFont[addr+1]
	if m.FontAddr > 0 {
		w0 = p.ReadMemory(m.FontAddr + addr)
		w1 = p.ReadMemory(m.FontAddr + addr + 1)
	}
	pixels := uint32(w0)<<16 | uint32(w1)

	col0 := uint16(pixels >> 24 & 0xFF)
	col1 := uint16(pixels >> 16 & 0xFF)
	col2 := uint16(pixels >> 8 & 0xFF)
	col3 := uint16(pixels & 0xFF)

	var rows [4]string
	for i := uint(0); i < 4; i++ {
		shift := 2 * i
		left := col0>>shift&3 | col1>>shift&3<<2
		right := col2>>shift&3 | col3>>shift&3<<2
		rows[i] = blockPair(left) + blockPair(right)
	}
	return rows[0] + "\x1b[4D\x1b[B" + rows[1] + "\x1b[4D\x1b[B" + rows[2] + "\x1b[4D\x1b[B" + rows[3] + "\x1b[3A"
}

// blockPair maps a 2x2 pixel block (bit0/1 left column top/bottom,
// bit2/3 right column) to two terminal cells of half-block characters.
func blockPair(bits uint16) string {
	chars := [4]string{" ", "▀", "▄", "\x1b[7m \x1b[27m"}
	return chars[bits&3] + chars[bits>>2&3]
}
