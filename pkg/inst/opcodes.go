package inst

import "fmt"

// OpCode is a basic DCPU-16 opcode, the low 5 bits of an instruction
// word. Zero selects the special opcode set (see SpecialOp).
type OpCode uint16

const (
	SPL OpCode = 0x00 // special instruction marker
	SET OpCode = 0x01
	ADD OpCode = 0x02
	SUB OpCode = 0x03
	MUL OpCode = 0x04
	MLI OpCode = 0x05
	DIV OpCode = 0x06
	DVI OpCode = 0x07
	MOD OpCode = 0x08
	MDI OpCode = 0x09
	AND OpCode = 0x0A
	BOR OpCode = 0x0B
	XOR OpCode = 0x0C
	SHR OpCode = 0x0D
	ASR OpCode = 0x0E
	SHL OpCode = 0x0F
	IFB OpCode = 0x10
	IFC OpCode = 0x11
	IFE OpCode = 0x12
	IFN OpCode = 0x13
	IFG OpCode = 0x14
	IFA OpCode = 0x15
	IFL OpCode = 0x16
	IFU OpCode = 0x17
	// 0x18, 0x19, 0x1C and 0x1D are reserved.
	ADX OpCode = 0x1A
	SBX OpCode = 0x1B
	STI OpCode = 0x1E
	STD OpCode = 0x1F
)

// SpecialOp is a special opcode, lifted from the b field of an
// instruction word whose opcode field is zero. Special instructions
// have a single operand, a.
type SpecialOp uint16

const (
	JSR SpecialOp = 0x01
	INT SpecialOp = 0x08
	IAG SpecialOp = 0x09
	IAS SpecialOp = 0x0A
	RFI SpecialOp = 0x0B
	IAQ SpecialOp = 0x0C
	HWN SpecialOp = 0x10
	HWQ SpecialOp = 0x11
	HWI SpecialOp = 0x12
)

// IsConditional reports whether op is one of the IFx opcodes.
func (op OpCode) IsConditional() bool {
	return op >= IFB && op <= IFU
}

var opNames = map[OpCode]string{
	SET: "SET", ADD: "ADD", SUB: "SUB", MUL: "MUL", MLI: "MLI",
	DIV: "DIV", DVI: "DVI", MOD: "MOD", MDI: "MDI", AND: "AND",
	BOR: "BOR", XOR: "XOR", SHR: "SHR", ASR: "ASR", SHL: "SHL",
	IFB: "IFB", IFC: "IFC", IFE: "IFE", IFN: "IFN", IFG: "IFG",
	IFA: "IFA", IFL: "IFL", IFU: "IFU", ADX: "ADX", SBX: "SBX",
	STI: "STI", STD: "STD",
}

func (op OpCode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(%#02x)", uint16(op))
}

var specialNames = map[SpecialOp]string{
	JSR: "JSR", INT: "INT", IAG: "IAG", IAS: "IAS", RFI: "RFI",
	IAQ: "IAQ", HWN: "HWN", HWQ: "HWQ", HWI: "HWI",
}

func (op SpecialOp) String() string {
	if name, ok := specialNames[op]; ok {
		return name
	}
	return fmt.Sprintf("SpecialOp(%#02x)", uint16(op))
}

// Register indexes the processor register file: the eight
// general-purpose registers followed by the four specials. IA has no
// operand encoding; it is reachable only through the interrupt
// instructions.
type Register uint8

const (
	A Register = iota
	B
	C
	X
	Y
	Z
	I
	J
	SP
	PC
	EX
	IA
	NumRegisters
)

var regNames = [NumRegisters]string{"A", "B", "C", "X", "Y", "Z", "I", "J", "SP", "PC", "EX", "IA"}

func (r Register) String() string {
	if r < NumRegisters {
		return regNames[r]
	}
	return fmt.Sprintf("Register(%d)", uint8(r))
}
