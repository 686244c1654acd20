package cpu

import (
	"testing"

	"github.com/oisee/dcpu16/pkg/inst"
	"github.com/oisee/dcpu16/pkg/program"
)

// TestSetterOpcodes drives every setter through B op= C and checks the
// result, the EX effect, and the charged extra cycles.
func TestSetterOpcodes(t *testing.T) {
	tests := []struct {
		name   string
		op     inst.OpCode
		b, a   uint16
		exIn   uint16
		want   uint16
		wantEX uint16
		extra  int
	}{
		{"set", inst.SET, 0, 0x1234, 0, 0x1234, 0, 0},
		{"add", inst.ADD, 0x1111, 5, 0, 0x1116, 0, 1},
		{"add carry", inst.ADD, 0xFFFD, 5, 0, 0x0002, 0x0001, 1},
		{"sub", inst.SUB, 0x1111, 5, 0, 0x110C, 0, 1},
		{"sub borrow", inst.SUB, 5, 6, 0, 0xFFFF, 0xFFFF, 1},
		{"mul", inst.MUL, 5, 2, 0, 10, 0, 1},
		{"mul overflow", inst.MUL, 0xFFF0, 3, 0, 0xFFD0, 0x0002, 1},
		{"mli", inst.MLI, 0xFFFB, 3, 0, 0xFFF1, 0xFFFF, 1}, // -5 * 3
		{"div", inst.DIV, 80, 2, 0, 40, 0, 2},
		{"div fraction", inst.DIV, 1, 2, 0, 0, 0x8000, 2},
		{"div by zero", inst.DIV, 123, 0, 0x55, 0, 0, 2},
		{"dvi", inst.DVI, 0xFFF1, 3, 0, 0xFFFB, 0, 2}, // -15 / 3
		{"dvi by zero", inst.DVI, 7, 0, 0x55, 0, 0, 2},
		{"dvi min by minus one", inst.DVI, 0x8000, 0xFFFF, 0, 0x8000, 0, 2},
		{"mod", inst.MOD, 7, 3, 0, 1, 0, 2},
		{"mod by zero", inst.MOD, 7, 0, 0x55, 0, 0x55, 2},
		{"mdi", inst.MDI, 0xFFF9, 16, 0, 0xFFF9, 0, 2}, // -7 mdi 16 = -7
		{"mdi by zero", inst.MDI, 7, 0, 0, 0, 0, 2},
		{"and", inst.AND, 0xF0F0, 0xFF00, 0x1234, 0xF000, 0x1234, 0},
		{"bor", inst.BOR, 0xF0F0, 0x0F00, 0, 0xFFF0, 0, 0},
		{"xor", inst.XOR, 0xFF00, 0x0FF0, 0, 0xF0F0, 0, 0},
		{"shr", inst.SHR, 0x00FF, 4, 0, 0x000F, 0xF000, 0},
		{"asr", inst.ASR, 0x8000, 4, 0, 0xF800, 0, 0},
		{"shl", inst.SHL, 0xFFFF, 4, 0, 0xFFF0, 0x000F, 0},
		{"adx", inst.ADX, 1, 2, 3, 6, 0, 2},
		{"adx carry", inst.ADX, 0xFFFF, 0, 1, 0, 0x0001, 2},
		{"sbx", inst.SBX, 5, 3, 1, 3, 0, 2},
		{"sbx borrow", inst.SBX, 0, 1, 0, 0xFFFF, 0xFFFF, 2},
	}

	for _, tc := range tests {
		machine := New()
		machine.SetRegister(inst.B, tc.b)
		machine.SetRegister(inst.C, tc.a)
		machine.SetRegister(inst.EX, tc.exIn)
		prog := program.New()
		prog.Add(tc.op, inst.Reg(inst.B), inst.Reg(inst.C))
		machine.Load(0, prog.Words())

		run(t, machine, 1)
		if got := machine.Register(inst.B); got != tc.want {
			t.Errorf("%s: B = %#04x, want %#04x", tc.name, got, tc.want)
		}
		if got := machine.Register(inst.EX); got != tc.wantEX {
			t.Errorf("%s: EX = %#04x, want %#04x", tc.name, got, tc.wantEX)
		}
		if machine.cycleWait != tc.extra {
			t.Errorf("%s: cycleWait = %d, want %d", tc.name, machine.cycleWait, tc.extra)
		}
	}
}

func TestSetEXDirectly(t *testing.T) {
	machine := New()
	prog := program.New()
	prog.Add(inst.SET, inst.Reg(inst.EX), inst.Lit(0x1234))
	machine.Load(0, prog.Words())

	run(t, machine, 2)
	if got := machine.Register(inst.EX); got != 0x1234 {
		t.Errorf("EX = %#04x, want 0x1234", got)
	}
}

func TestSTIAndSTDStepIndexRegisters(t *testing.T) {
	tests := []struct {
		op           inst.OpCode
		wantI, wantJ uint16
	}{
		{inst.STI, 6, 8},
		{inst.STD, 4, 6},
	}

	for _, tc := range tests {
		machine := New()
		machine.SetRegister(inst.I, 5)
		machine.SetRegister(inst.J, 7)
		machine.SetRegister(inst.C, 0xAB)
		prog := program.New()
		prog.Add(tc.op, inst.Reg(inst.B), inst.Reg(inst.C))
		machine.Load(0, prog.Words())

		run(t, machine, 2)
		if got := machine.Register(inst.B); got != 0xAB {
			t.Errorf("%v: B = %#04x, want 0xab", tc.op, got)
		}
		if got := machine.Register(inst.I); got != tc.wantI {
			t.Errorf("%v: I = %d, want %d", tc.op, got, tc.wantI)
		}
		if got := machine.Register(inst.J); got != tc.wantJ {
			t.Errorf("%v: J = %d, want %d", tc.op, got, tc.wantJ)
		}
	}
}

// TestSTIWritesBeforeStepping: a [I] target receives the value at the
// pre-step address.
func TestSTIWritesBeforeStepping(t *testing.T) {
	machine := New()
	machine.SetRegister(inst.I, 0x100)
	machine.SetRegister(inst.C, 0x42)
	prog := program.New()
	prog.Add(inst.STI, inst.RegPtr(inst.I), inst.Reg(inst.C))
	machine.Load(0, prog.Words())

	run(t, machine, 2)
	if got := machine.ReadMemory(0x100); got != 0x42 {
		t.Errorf("[0x100] = %#04x, want 0x42", got)
	}
	if got := machine.Register(inst.I); got != 0x101 {
		t.Errorf("I = %#04x, want 0x101", got)
	}
}

// TestConditionals checks every IFx test both ways: the guarded
// instruction runs on pass and is skipped on fail.
func TestConditionals(t *testing.T) {
	tests := []struct {
		op   inst.OpCode
		b, a uint16
		pass bool
	}{
		{inst.IFB, 3, 2, true},
		{inst.IFB, 1, 2, false},
		{inst.IFC, 1, 2, true},
		{inst.IFC, 3, 2, false},
		{inst.IFE, 5, 5, true},
		{inst.IFE, 5, 6, false},
		{inst.IFN, 5, 6, true},
		{inst.IFN, 5, 5, false},
		{inst.IFG, 6, 5, true},
		{inst.IFG, 5, 6, false},
		{inst.IFG, 0xFFFF, 1, true}, // unsigned
		{inst.IFA, 1, 0xFFFF, true}, // signed
		{inst.IFA, 0xFFFF, 1, false},
		{inst.IFL, 5, 6, true},
		{inst.IFL, 6, 5, false},
		{inst.IFU, 0xFFFF, 1, true}, // signed
		{inst.IFU, 1, 0xFFFF, false},
	}

	for _, tc := range tests {
		machine := New()
		machine.SetRegister(inst.B, tc.b)
		machine.SetRegister(inst.C, tc.a)
		prog := program.New()
		prog.Add(tc.op, inst.Reg(inst.B), inst.Reg(inst.C))
		prog.Add(inst.SET, inst.Reg(inst.X), inst.Lit(1))
		prog.Add(inst.SET, inst.Reg(inst.Y), inst.Lit(1))
		machine.Load(0, prog.Words())

		run(t, machine, 3)
		if got := machine.Register(inst.X) == 1; got != tc.pass {
			t.Errorf("%v b=%#04x a=%#04x: executed = %v, want %v",
				tc.op, tc.b, tc.a, got, tc.pass)
		}
	}
}

// TestConditionalSkipAccountsTrailingWords: skipping an instruction
// with a next-word operand steps over the payload word and charges for
// it.
func TestConditionalSkipAccountsTrailingWords(t *testing.T) {
	tests := []struct {
		mask                 uint16
		wantC, wantX, wantPC uint16
	}{
		{2, 0xBEEF, 0, 4}, // true: the guarded SET runs
		{8, 0, 12, 5},     // false: payload word skipped too
	}

	for _, tc := range tests {
		machine := New()
		prog := program.New()
		prog.Add(inst.SET, inst.Reg(inst.A), inst.Lit(3))
		prog.Add(inst.IFB, inst.Reg(inst.A), inst.Lit(tc.mask))
		prog.Add(inst.SET, inst.Reg(inst.C), inst.Lit(0xBEEF)) // two words
		prog.Add(inst.SET, inst.Reg(inst.X), inst.Lit(12))
		machine.Load(0, prog.Words())

		run(t, machine, 5)
		if got := machine.Register(inst.C); got != tc.wantC {
			t.Errorf("mask %d: C = %#04x, want %#04x", tc.mask, got, tc.wantC)
		}
		if got := machine.Register(inst.X); got != tc.wantX {
			t.Errorf("mask %d: X = %d, want %d", tc.mask, got, tc.wantX)
		}
		if got := machine.Register(inst.PC); got != tc.wantPC {
			t.Errorf("mask %d: PC = %#04x, want %#04x", tc.mask, got, tc.wantPC)
		}
	}
}

// TestChainedConditionalsSkipAsOneUnit: a failed test skips a
// following conditional together with the instruction it guards.
func TestChainedConditionalsSkipAsOneUnit(t *testing.T) {
	machine := New()
	prog := program.New()
	prog.Add(inst.IFE, inst.Reg(inst.A), inst.Lit(1)) // false: A is 0
	prog.Add(inst.IFE, inst.Reg(inst.A), inst.Lit(0)) // chained, skipped
	prog.Add(inst.SET, inst.Reg(inst.X), inst.Lit(7)) // must not run
	prog.Add(inst.SET, inst.Reg(inst.Y), inst.Lit(9)) // resumes here
	machine.Load(0, prog.Words())

	run(t, machine, 4)
	if got := machine.Register(inst.X); got != 0 {
		t.Errorf("X = %d, want 0 (skipped)", got)
	}
	if got := machine.Register(inst.Y); got != 9 {
		t.Errorf("Y = %d, want 9", got)
	}
	if got := machine.Register(inst.PC); got != 4 {
		t.Errorf("PC = %#04x, want 4", got)
	}
}

// TestConditionalDoesNotWriteB: failing or passing, b keeps its value.
func TestConditionalDoesNotWriteB(t *testing.T) {
	machine := New()
	machine.SetRegister(inst.B, 0x1234)
	prog := program.New()
	prog.Add(inst.IFE, inst.Reg(inst.B), inst.Lit(0))
	machine.Load(0, prog.Words())

	run(t, machine, 1)
	if got := machine.Register(inst.B); got != 0x1234 {
		t.Errorf("B = %#04x, want 0x1234 untouched", got)
	}
}
