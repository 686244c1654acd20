package cpu

import "github.com/oisee/dcpu16/pkg/inst"

// Device is the contract between the processor and attached hardware.
// Identity is what HWQ reports; HWI invokes HandleInterrupt with
// mutable access to the processor for the duration of that call only.
// Devices must not retain the processor reference across calls.
type Device interface {
	ID() uint32
	Version() uint16
	Manufacturer() uint32
	HandleInterrupt(p *Processor)
}

// AttachDevice appends a device to the hardware list. Devices are
// attached before execution begins.
func (p *Processor) AttachDevice(d Device) {
	p.devices = append(p.devices, d)
	p.inService = append(p.inService, false)
}

// DeviceCount returns the number of attached devices.
func (p *Processor) DeviceCount() uint16 { return uint16(len(p.devices)) }

// WithDevice calls fn with the device at index, if there is one and
// its interrupt handler is not currently running. Hosts use this to
// inspect device state; fn receives the instance the processor owns.
func (p *Processor) WithDevice(index uint16, fn func(Device)) {
	if int(index) >= len(p.devices) || p.inService[index] {
		return
	}
	fn(p.devices[index])
}

func (p *Processor) deviceAt(index uint16) (Device, bool) {
	if int(index) >= len(p.devices) {
		return nil, false
	}
	return p.devices[index], true
}

// interruptDevice implements HWI: runs the device's interrupt handler,
// guarding the slot so a reentrant HWI on a device whose handler is
// already on the call stack is ignored. Out-of-range indices do
// nothing.
func (p *Processor) interruptDevice(index uint16) {
	if int(index) >= len(p.devices) || p.inService[index] {
		return
	}
	p.inService[index] = true
	p.devices[index].HandleInterrupt(p)
	p.inService[index] = false
}

// queryDevice implements HWQ: the identity of the device at index
// lands in A, B (id low/high), C (version) and X, Y (manufacturer
// low/high), or all zeros when there is no such device.
func (p *Processor) queryDevice(index uint16) {
	d, ok := p.deviceAt(index)
	if !ok {
		p.reg[inst.A], p.reg[inst.B], p.reg[inst.C] = 0, 0, 0
		p.reg[inst.X], p.reg[inst.Y] = 0, 0
		return
	}
	p.reg[inst.A] = uint16(d.ID())
	p.reg[inst.B] = uint16(d.ID() >> 16)
	p.reg[inst.C] = d.Version()
	p.reg[inst.X] = uint16(d.Manufacturer())
	p.reg[inst.Y] = uint16(d.Manufacturer() >> 16)
}
