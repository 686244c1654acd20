package cpu

import "github.com/oisee/dcpu16/pkg/inst"

// Memory is the flat 65536-word address space. Addresses are uint16,
// so access wraps modulo 2^16 by construction and there are no bounds
// faults.
type Memory [0x10000]uint16

// Get returns the word at addr.
func (m *Memory) Get(addr uint16) uint16 { return m[addr] }

// Set stores value at addr.
func (m *Memory) Set(addr uint16, value uint16) { m[addr] = value }

// DecodeAt decodes the single word at addr into an instruction. It
// fetches no trailing words; the executor consumes those on demand.
func (m *Memory) DecodeAt(addr uint16) inst.Instruction {
	return inst.Decode(m[addr])
}

// Load writes a contiguous run of words starting at addr, wrapping
// past the top of memory.
func (m *Memory) Load(addr uint16, words []uint16) {
	for i, w := range words {
		m[addr+uint16(i)] = w
	}
}
