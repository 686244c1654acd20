package cpu

import "github.com/oisee/dcpu16/pkg/inst"

// interruptQueueCap is the architectural limit on buffered interrupt
// messages. Exceeding it sets the processor on fire.
const interruptQueueCap = 256

// TriggerInterrupt delivers an interrupt message: from software (INT),
// from a device handler, or from the host standing in for external
// hardware. With IA zero the message is discarded. While interrupts
// are being queued the message joins the tail; overflowing the queue
// is terminal.
func (p *Processor) TriggerInterrupt(message uint16) {
	if p.reg[inst.IA] == 0 {
		return
	}
	if p.queuing {
		p.queueInterrupt(message)
		return
	}
	p.handleInterrupt(message)
}

func (p *Processor) queueInterrupt(message uint16) {
	if len(p.queue) >= interruptQueueCap {
		p.onFire = true
		return
	}
	p.queue = append(p.queue, message)
}

// handleInterrupt enters the handler: further interrupts queue until
// RFI, the interrupted PC and A go to the stack, and the handler
// receives the message in A.
func (p *Processor) handleInterrupt(message uint16) {
	p.queuing = true
	p.push(p.reg[inst.PC])
	p.push(p.reg[inst.A])
	p.reg[inst.PC] = p.reg[inst.IA]
	p.reg[inst.A] = message
}

// processInterruptQueue dispatches at most one queued interrupt, at
// the end of a tick. A message popped after IA was cleared is
// discarded, matching TriggerInterrupt.
func (p *Processor) processInterruptQueue() {
	if p.queuing || len(p.queue) == 0 {
		return
	}
	message := p.queue[0]
	p.queue = p.queue[1:]
	if p.reg[inst.IA] == 0 {
		return
	}
	p.handleInterrupt(message)
}

// returnFromInterrupt implements RFI: re-enables dispatch and restores
// A, then PC, from the stack.
func (p *Processor) returnFromInterrupt() {
	p.queuing = false
	p.reg[inst.A] = p.pop()
	p.reg[inst.PC] = p.pop()
}
