package program

import (
	"testing"

	"github.com/oisee/dcpu16/pkg/inst"
)

func TestFromBytesPacksBigEndian(t *testing.T) {
	p := FromBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01})
	want := []uint16{0xDEAD, 0xBEEF, 0x0100}
	if p.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", p.Len(), len(want))
	}
	for i, w := range want {
		if p.Words()[i] != w {
			t.Errorf("word %d = %#04x, want %#04x", i, p.Words()[i], w)
		}
	}
}

func TestAddEncodesInstructions(t *testing.T) {
	p := New()
	p.Add(inst.SET, inst.Reg(inst.A), inst.Lit(0xDEAD))
	p.AddSpecial(inst.JSR, inst.Lit(4))
	p.AddWord(0x1234)

	want := []uint16{0x7C01, 0xDEAD, 0x9420, 0x1234}
	if p.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", p.Len(), len(want))
	}
	for i, w := range want {
		if p.Words()[i] != w {
			t.Errorf("word %d = %#04x, want %#04x", i, p.Words()[i], w)
		}
	}
}
