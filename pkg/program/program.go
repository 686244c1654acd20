// Package program builds and loads DCPU-16 word images.
package program

import "github.com/oisee/dcpu16/pkg/inst"

// Program is a growable sequence of instruction words, ready to be
// loaded into processor memory at a base address.
type Program struct {
	words []uint16
}

// New returns an empty program.
func New() *Program {
	return &Program{words: make([]uint16, 0, 64)}
}

// Add appends a basic instruction. An a literal outside the inline
// range spills to a trailing word.
func (p *Program) Add(op inst.OpCode, b, a inst.Operand) {
	p.words = append(p.words, inst.Instruction{Op: op, B: b, A: a}.Words()...)
}

// AddSpecial appends a special instruction.
func (p *Program) AddSpecial(op inst.SpecialOp, a inst.Operand) {
	p.words = append(p.words, inst.Instruction{Op: inst.SPL, Special: op, A: a}.Words()...)
}

// AddWord appends a raw word: next-word operand payloads and data.
func (p *Program) AddWord(w uint16) {
	p.words = append(p.words, w)
}

// Words returns the assembled image.
func (p *Program) Words() []uint16 { return p.words }

// Len returns the image length in words.
func (p *Program) Len() int { return len(p.words) }

// FromBytes packs a byte image into words, high byte first. A
// trailing odd byte becomes the high byte of the final word.
func FromBytes(data []byte) *Program {
	words := make([]uint16, 0, (len(data)+1)/2)
	for i := 0; i < len(data); i += 2 {
		w := uint16(data[i]) << 8
		if i+1 < len(data) {
			w |= uint16(data[i+1])
		}
		words = append(words, w)
	}
	return &Program{words: words}
}
