package cpu

import (
	"fmt"

	"github.com/oisee/dcpu16/pkg/inst"
)

// OpcodeError is returned from Tick when the fetched instruction has
// no defined meaning. It aborts the current program, not the machine.
type OpcodeError struct {
	Op      uint16
	Special bool
}

func (e *OpcodeError) Error() string {
	if e.Special {
		return fmt.Sprintf("undefined special opcode %#04x", e.Op)
	}
	return fmt.Sprintf("undefined opcode %#04x", e.Op)
}

// isSetter reports whether op computes a value and writes it back to
// b. Everything that is not a setter, a conditional, or SPL is a
// reserved encoding.
func isSetter(op inst.OpCode) bool {
	switch {
	case op >= inst.SET && op <= inst.SHL:
		return true
	case op == inst.ADX, op == inst.SBX, op == inst.STI, op == inst.STD:
		return true
	}
	return false
}

// execute applies one decoded instruction. The a operand is always
// evaluated first, so its trailing word precedes b's in memory.
func (p *Processor) execute(in inst.Instruction) error {
	switch {
	case in.Op == inst.SPL:
		return p.executeSpecial(in)
	case in.Op.IsConditional():
		a := p.loadA(in.A)
		p.testCondition(in, a)
		return nil
	case isSetter(in.Op):
		a := p.loadA(in.A)
		p.writeBack(in, a)
		return nil
	default:
		return &OpcodeError{Op: uint16(in.Op)}
	}
}

// writeBack applies a setter opcode: peeks b's current value, computes
// the result and the EX effect, and commits through the b write path.
func (p *Processor) writeBack(in inst.Instruction, a uint16) {
	b := p.peekB(in.B)
	ex := p.reg[inst.EX]
	var value uint16

	switch in.Op {
	case inst.SET:
		value = a

	case inst.ADD:
		p.cycleWait++
		sum := uint32(b) + uint32(a)
		value = uint16(sum)
		ex = 0x0000
		if sum > 0xFFFF {
			ex = 0x0001
		}

	case inst.SUB:
		p.cycleWait++
		value = b - a
		ex = 0x0000
		if a > b {
			ex = 0xFFFF
		}

	case inst.MUL:
		p.cycleWait++
		prod := uint32(b) * uint32(a)
		value = uint16(prod)
		ex = uint16(prod >> 16)

	case inst.MLI:
		p.cycleWait++
		prod := int32(int16(b)) * int32(int16(a))
		value = uint16(prod)
		ex = uint16(prod >> 16)

	case inst.DIV:
		p.cycleWait += 2
		if a == 0 {
			value, ex = 0, 0
		} else {
			value = b / a
			ex = uint16((uint32(b) << 16) / uint32(a))
		}

	case inst.DVI:
		p.cycleWait += 2
		if a == 0 {
			value, ex = 0, 0
		} else {
			// 32-bit intermediates: int16 math would fault on
			// 0x8000 / 0xFFFF.
			value = uint16(int32(int16(b)) / int32(int16(a)))
			ex = uint16((int64(int16(b)) << 16) / int64(int16(a)))
		}

	case inst.MOD:
		p.cycleWait += 2
		value = 0
		if a != 0 {
			value = b % a
		}

	case inst.MDI:
		p.cycleWait += 2
		value = 0
		if a != 0 {
			// Sign follows the dividend.
			value = uint16(int32(int16(b)) % int32(int16(a)))
		}

	case inst.AND:
		value = b & a
	case inst.BOR:
		value = b | a
	case inst.XOR:
		value = b ^ a

	case inst.SHR:
		value = b >> a
		ex = uint16((uint32(b) << 16) >> a)

	case inst.ASR:
		value = uint16(int16(b) >> a)
		ex = uint16((uint32(int32(int16(b))) << 16) >> a)

	case inst.SHL:
		value = b << a
		ex = uint16((uint32(b) << a) >> 16)

	case inst.ADX:
		p.cycleWait += 2
		s1 := uint32(b) + uint32(a)
		s2 := uint32(uint16(s1)) + uint32(ex)
		value = uint16(s2)
		ex = 0x0000
		if s1 > 0xFFFF || s2 > 0xFFFF {
			ex = 0x0001
		}

	case inst.SBX:
		p.cycleWait += 2
		borrowed := a > b
		s := uint32(b-a) + uint32(ex)
		value = uint16(s)
		ex = 0x0000
		if borrowed || s > 0xFFFF {
			ex = 0xFFFF
		}

	case inst.STI, inst.STD:
		p.cycleWait++
		value = a
	}

	p.reg[inst.EX] = ex
	p.storeB(in.B, value)

	// The index step follows the write, so a [I] or [J] target sees
	// the pre-step address.
	switch in.Op {
	case inst.STI:
		p.incReg(inst.I)
		p.incReg(inst.J)
	case inst.STD:
		p.decReg(inst.I)
		p.decReg(inst.J)
	}
}

// testCondition evaluates an IFx opcode. On failure the next
// instruction is skipped; b is never written.
func (p *Processor) testCondition(in inst.Instruction, a uint16) {
	b := p.loadB(in.B)
	p.cycleWait++

	var pass bool
	switch in.Op {
	case inst.IFB:
		pass = b&a != 0
	case inst.IFC:
		pass = b&a == 0
	case inst.IFE:
		pass = b == a
	case inst.IFN:
		pass = b != a
	case inst.IFG:
		pass = b > a
	case inst.IFA:
		pass = int16(b) > int16(a)
	case inst.IFL:
		pass = b < a
	case inst.IFU:
		pass = int16(b) < int16(a)
	}

	if !pass {
		p.skipNext()
	}
}

// skipNext advances PC past the instruction at PC without executing
// it, charging one cycle per accounted trailing word. A skipped
// conditional repeats the skip on its own next instruction, so a
// chain falls through as one unit at one extra cycle per link.
func (p *Processor) skipNext() {
	for {
		in := p.mem.DecodeAt(p.reg[inst.PC])

		if in.Op != inst.SPL {
			p.skipExtraWord(in.B)
		}
		p.skipExtraWord(in.A)
		p.incReg(inst.PC)

		if !in.Op.IsConditional() {
			return
		}
		p.cycleWait++
	}
}

// skipExtraWord steps PC over a trailing word for the operand kinds
// the skip rule accounts: register-offset and the two next-word forms.
func (p *Processor) skipExtraWord(v inst.Operand) {
	switch v.Kind {
	case inst.KindRegisterPointerOffset, inst.KindNextWordPointer, inst.KindNextWord:
		p.incReg(inst.PC)
		p.cycleWait++
	}
}

// executeSpecial applies a special instruction. The operand is
// evaluated (or written) exactly once per the position rules.
func (p *Processor) executeSpecial(in inst.Instruction) error {
	switch in.Special {
	case inst.JSR:
		a := p.loadA(in.A)
		p.cycleWait += 2
		p.push(p.reg[inst.PC])
		p.reg[inst.PC] = a

	case inst.INT:
		a := p.loadA(in.A)
		p.cycleWait += 3
		p.TriggerInterrupt(a)

	case inst.IAG:
		p.storeA(in.A, p.reg[inst.IA])

	case inst.IAS:
		p.reg[inst.IA] = p.loadA(in.A)

	case inst.RFI:
		_ = p.loadA(in.A) // the operand is consumed, its value unused
		p.cycleWait += 2
		p.returnFromInterrupt()

	case inst.IAQ:
		a := p.loadA(in.A)
		p.cycleWait++
		p.queuing = a != 0

	case inst.HWN:
		p.cycleWait++
		p.storeA(in.A, p.DeviceCount())

	case inst.HWQ:
		a := p.loadA(in.A)
		p.cycleWait += 3
		p.queryDevice(a)

	case inst.HWI:
		a := p.loadA(in.A)
		p.cycleWait += 3
		p.interruptDevice(a)

	default:
		return &OpcodeError{Op: uint16(in.Special), Special: true}
	}
	return nil
}
