// Package inst models the DCPU-16 instruction set: the basic and
// special opcodes, the ten operand addressing forms, and the
// bidirectional mapping between instructions and 16-bit words.
//
// An instruction word packs three fields:
//
//	15        10 9         5 4      0
//	[  a (6)    ][  b (5)   ][ op(5) ]
//
// A zero op field selects the special instruction set, in which case
// the b field carries the special opcode and a is the sole operand.
package inst

// Instruction is one decoded instruction. For basic opcodes B and A
// are the two operands; for special instructions (Op == SPL) Special
// carries the lifted b field and A is the sole operand.
type Instruction struct {
	Op      OpCode
	Special SpecialOp
	B       Operand
	A       Operand
}

// Decode splits a primary instruction word into its fields. It is
// non-consuming: trailing words are charged by the operand evaluator
// on demand, never here.
func Decode(word uint16) Instruction {
	op := OpCode(word & 0x1F)
	b := (word >> 5) & 0x1F
	a := (word >> 10) & 0x3F

	if op == SPL {
		return Instruction{Op: SPL, Special: SpecialOp(b), A: OperandFromA(a)}
	}
	return Instruction{Op: op, B: OperandFromB(b), A: OperandFromA(a)}
}

// Words encodes the instruction back into its word sequence. An
// embedded literal in the a position that does not fit the inline
// range spills to a trailing word. Next-word operands contribute only
// their code; their payload words are appended by the caller.
func (in Instruction) Words() []uint16 {
	a := in.A.Code()
	var word uint16
	if in.Op == SPL {
		word = uint16(in.Special)<<5 | a<<10
	} else {
		word = uint16(in.Op) | in.B.Code()<<5 | a<<10
	}

	words := make([]uint16, 0, 2)
	words = append(words, word)
	if a == 0x1F && in.A.Kind == KindLiteral {
		words = append(words, in.A.Lit)
	}
	return words
}
