// Package cpu implements the Intel 8080 fetch/decode/execute core: the
// seven general registers, the five condition flags, the stack discipline
// and the interrupt-acknowledge protocol. Grounded on the teacher's
// nitro-core-dx/internal/cpu.CPU (CPUState struct, MemoryInterface
// capability, LoggerInterface adapter, ExecuteCycles/StepCPU split) adapted
// from that CPU's banked 16-bit-word ISA to the 8080's byte-oriented,
// variable-length one.
package cpu

import (
	"invaders8080/internal/bus"
	"invaders8080/internal/disasm"
	"invaders8080/internal/trace"
)

// Memory is the capability the CPU borrows for the duration of a step. It
// is satisfied by *memory.Memory; kept as an interface here so the CPU
// package never imports the memory package back (the teacher's CPU takes a
// MemoryInterface for the same reason).
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Sink receives a record of every fetched opcode, valid or not. Satisfied
// by *trace.Ring; optional — Step is a no-op on the tracing side when Sink
// is nil.
type Sink interface {
	Add(e trace.Entry)
}

// Register indices as they appear in the 8080's 3-bit register field:
// 000=B 001=C 010=D 011=E 100=H 101=L 110=M(indirect via HL) 111=A.
const (
	regB = iota
	regC
	regD
	regE
	regH
	regL
	regM
	regA
)

// CPU holds the complete register file, flags and interrupt state. It owns
// nothing else: memory and the I/O bus are passed into Step.
type CPU struct {
	A, B, C, D, E, H, L uint8
	PC, SP              uint16

	Z, S, P, CY, AC bool

	INTE bool
	HALT bool

	pendingOp    uint8
	pendingValid bool

	Trace Sink
}

// New returns a CPU with every register, flag and latch zeroed — the
// power-on state spec.md §3 describes.
func New() *CPU {
	return &CPU{}
}

// Reset reconstructs CPU state in place, as if newly powered on.
func (c *CPU) Reset() {
	*c = CPU{Trace: c.Trace}
}

// BC, DE and HL read the 16-bit register pairs as (high<<8)|low.
func (c *CPU) BC() uint16 { return uint16(c.B)<<8 | uint16(c.C) }
func (c *CPU) DE() uint16 { return uint16(c.D)<<8 | uint16(c.E) }
func (c *CPU) HL() uint16 { return uint16(c.H)<<8 | uint16(c.L) }

func (c *CPU) SetBC(v uint16) { c.B, c.C = uint8(v>>8), uint8(v) }
func (c *CPU) SetDE(v uint16) { c.D, c.E = uint8(v>>8), uint8(v) }
func (c *CPU) SetHL(v uint16) { c.H, c.L = uint8(v>>8), uint8(v) }

// F packs the five flags into the 8080's fixed bit layout: bit7=S bit6=Z
// bit4=AC bit2=P bit1=1(always) bit0=CY; bits 3 and 5 are always 0.
func (c *CPU) F() uint8 {
	var f uint8 = 0x02
	if c.S {
		f |= 0x80
	}
	if c.Z {
		f |= 0x40
	}
	if c.AC {
		f |= 0x10
	}
	if c.P {
		f |= 0x04
	}
	if c.CY {
		f |= 0x01
	}
	return f
}

// SetF unpacks a raw F byte (as POP PSW delivers it) back into the flags.
func (c *CPU) SetF(f uint8) {
	c.S = f&0x80 != 0
	c.Z = f&0x40 != 0
	c.AC = f&0x10 != 0
	c.P = f&0x04 != 0
	c.CY = f&0x01 != 0
}

// PSW returns the 16-bit Processor Status Word (A, F).
func (c *CPU) PSW() uint16 { return uint16(c.A)<<8 | uint16(c.F()) }

// SetPSW sets A and the flags from a 16-bit Processor Status Word.
func (c *CPU) SetPSW(v uint16) {
	c.A = uint8(v >> 8)
	c.SetF(uint8(v))
}

// getReg8 reads an 8080 register field, dereferencing through HL for M.
func (c *CPU) getReg8(mem Memory, idx uint8) uint8 {
	switch idx {
	case regB:
		return c.B
	case regC:
		return c.C
	case regD:
		return c.D
	case regE:
		return c.E
	case regH:
		return c.H
	case regL:
		return c.L
	case regM:
		return mem.Read(c.HL())
	case regA:
		return c.A
	}
	return 0
}

// setReg8 writes an 8080 register field, dereferencing through HL for M.
func (c *CPU) setReg8(mem Memory, idx uint8, val uint8) {
	switch idx {
	case regB:
		c.B = val
	case regC:
		c.C = val
	case regD:
		c.D = val
	case regE:
		c.E = val
	case regH:
		c.H = val
	case regL:
		c.L = val
	case regM:
		mem.Write(c.HL(), val)
	case regA:
		c.A = val
	}
}

// push writes a 16-bit value below SP: high byte at SP-1, low byte at
// SP-2, leaving SP decremented by 2 (low byte ends up at the new SP).
func (c *CPU) push(mem Memory, v uint16) {
	c.SP--
	mem.Write(c.SP, uint8(v>>8))
	c.SP--
	mem.Write(c.SP, uint8(v))
}

// pop reads a 16-bit value from [SP, SP+1] and advances SP by 2.
func (c *CPU) pop(mem Memory) uint16 {
	lo := mem.Read(c.SP)
	hi := mem.Read(c.SP + 1)
	c.SP += 2
	return uint16(hi)<<8 | uint16(lo)
}

// Halted reports whether the CPU is waiting for an interrupt after HLT.
func (c *CPU) Halted() bool { return c.HALT }

// RaiseInterrupt latches opcode as the pending interrupt, overwriting
// whatever was pending before — only the most recent interrupt wins.
func (c *CPU) RaiseInterrupt(opcode uint8) {
	c.pendingOp = opcode
	c.pendingValid = true
}

// Step performs one interrupt-acknowledge-or-fetch/decode/execute cycle.
func (c *CPU) Step(mem Memory, io bus.IO) {
	if c.pendingValid && c.INTE {
		op := c.pendingOp
		c.pendingValid = false
		c.INTE = false
		c.push(mem, c.PC)
		c.PC = uint16(op & 0x38)
		c.HALT = false
		return
	}

	if c.HALT {
		return
	}

	pc := c.PC
	op := mem.Read(pc)
	c.PC++
	c.execute(mem, io, op)

	if c.Trace != nil {
		_, mnemonic := disasm.Decode(mem, pc)
		c.Trace.Add(trace.Entry{PC: pc, Opcode: op, Mnemonic: mnemonic, Invalid: Invalid(op)})
	}
}
