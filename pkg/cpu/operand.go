package cpu

import "github.com/oisee/dcpu16/pkg/inst"

// Operand evaluation is position dependent: code 0x18 pops in the a
// position and pushes in the b position, and extra words for b are
// charged on write-back rather than on the preceding peek. The read
// paths are duplicated per position instead of threading a flag
// through every arm.

// loadA evaluates an operand in the a position, consuming any trailing
// word. POP shrinks the stack here.
func (p *Processor) loadA(v inst.Operand) uint16 {
	switch v.Kind {
	case inst.KindRegister:
		return p.reg[v.Reg]
	case inst.KindRegisterPointer:
		return p.mem[p.reg[v.Reg]]
	case inst.KindRegisterPointerOffset:
		return p.mem[p.reg[v.Reg]+p.nextWord()]
	case inst.KindPush, inst.KindPop:
		return p.pop()
	case inst.KindPeek:
		return p.peek()
	case inst.KindPick:
		return p.mem[p.reg[inst.SP]+p.nextWord()]
	case inst.KindNextWordPointer:
		return p.mem[p.nextWord()]
	case inst.KindNextWord:
		return p.nextWord()
	default: // inst.KindLiteral
		return v.Lit
	}
}

// loadB evaluates an operand in the b position, consuming any trailing
// word. PUSH reads as a peek of [SP] without popping. The conditional
// opcodes use this path, since they never write back.
func (p *Processor) loadB(v inst.Operand) uint16 {
	switch v.Kind {
	case inst.KindRegister:
		return p.reg[v.Reg]
	case inst.KindRegisterPointer:
		return p.mem[p.reg[v.Reg]]
	case inst.KindRegisterPointerOffset:
		return p.mem[p.reg[v.Reg]+p.nextWord()]
	case inst.KindPush, inst.KindPop:
		return p.peek()
	case inst.KindPeek:
		return p.peek()
	case inst.KindPick:
		return p.mem[p.reg[inst.SP]+p.nextWord()]
	case inst.KindNextWordPointer:
		return p.mem[p.nextWord()]
	case inst.KindNextWord:
		return p.nextWord()
	default:
		return v.Lit
	}
}

// peekB reads the current b value without consuming trailing words or
// charging cycles. The executor uses it to fetch b's old value before
// computing the write-back, so each operand's extra word is charged
// exactly once.
func (p *Processor) peekB(v inst.Operand) uint16 {
	switch v.Kind {
	case inst.KindRegister:
		return p.reg[v.Reg]
	case inst.KindRegisterPointer:
		return p.mem[p.reg[v.Reg]]
	case inst.KindRegisterPointerOffset:
		return p.mem[p.reg[v.Reg]+p.peekNextWord()]
	case inst.KindPush, inst.KindPop:
		return p.peek()
	case inst.KindPeek:
		return p.peek()
	case inst.KindPick:
		return p.mem[p.reg[inst.SP]+p.peekNextWord()]
	case inst.KindNextWordPointer:
		return p.mem[p.peekNextWord()]
	case inst.KindNextWord:
		return p.peekNextWord()
	default:
		return v.Lit
	}
}

// storeB commits a value to an operand in the b position. Trailing
// words are consumed here, never in peekB. Writes to the read-only
// forms are discarded after paying the operand's intrinsic word and
// cycle cost.
func (p *Processor) storeB(v inst.Operand, value uint16) {
	switch v.Kind {
	case inst.KindRegister:
		p.reg[v.Reg] = value
	case inst.KindRegisterPointer:
		p.mem[p.reg[v.Reg]] = value
	case inst.KindRegisterPointerOffset:
		offset := p.nextWord()
		p.mem[p.reg[v.Reg]+offset] = value
	case inst.KindPush, inst.KindPop:
		p.push(value)
	case inst.KindNextWordPointer:
		addr := p.nextWord()
		p.mem[addr] = value
	case inst.KindPick, inst.KindNextWord:
		p.nextWord() // cost only; the write is discarded
	case inst.KindPeek, inst.KindLiteral:
		// discarded
	}
}

// storeA commits a value to an operand in the a position, for the
// special opcodes that write their operand (IAG, HWN). POP is a no-op
// as a write target; everything else matches the b write path.
func (p *Processor) storeA(v inst.Operand, value uint16) {
	switch v.Kind {
	case inst.KindRegister:
		p.reg[v.Reg] = value
	case inst.KindRegisterPointer:
		p.mem[p.reg[v.Reg]] = value
	case inst.KindRegisterPointerOffset:
		offset := p.nextWord()
		p.mem[p.reg[v.Reg]+offset] = value
	case inst.KindNextWordPointer:
		addr := p.nextWord()
		p.mem[addr] = value
	case inst.KindPick, inst.KindNextWord:
		p.nextWord()
	case inst.KindPush, inst.KindPop, inst.KindPeek, inst.KindLiteral:
		// discarded
	}
}
