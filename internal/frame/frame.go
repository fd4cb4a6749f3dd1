// Package frame implements the 60 Hz time-slicer that drives the CPU in
// half-frame bursts and alternates the RST 1 / RST 2 interrupt vectors
// between them. Grounded on the teacher's Emulator.RunFrame (one method
// invoked once per host tick, running the core for a fixed cycle budget
// and handing control back rather than calling into the UI itself), with
// the MasterClock's cycle-budget bookkeeping collapsed into this package's
// own counter since the 8080 core has only one clocked component to
// schedule.
package frame

import (
	"invaders8080/internal/bus"
	"invaders8080/internal/cpu"
)

// cyclesPerHalfFrame is CPF from spec.md §4.E: roughly 2 MHz / 60 Hz / 2.
const cyclesPerHalfFrame = 16667

const (
	vectorMidScreen = 0xCF // RST 1
	vectorVBlank    = 0xD7 // RST 2
)

// stepCycles is the fixed cost charged to the budget for every CPU step,
// HALTed or not — spec.md §4.E doesn't model per-instruction cycle counts,
// so every step (or quiescent HALT tick) costs a flat 4.
const stepCycles = 4

// CPU is the capability Driver needs: one fetch/decode/execute step, an
// interrupt-acknowledge latch, and visibility into whether it's halted.
// Satisfied by *cpu.CPU; declared against cpu.Memory (rather than a
// locally redeclared equivalent) so that a *cpu.CPU's Step method
// actually satisfies this interface's method set.
type CPU interface {
	Step(mem cpu.Memory, io bus.IO)
	RaiseInterrupt(opcode uint8)
	Halted() bool
}

// Driver holds the frame time-slicer's two pieces of state.
type Driver struct {
	cycleBudget int
	nextVector  uint8
}

// New returns a Driver in its initial state: an empty budget and RST 1 as
// the next vector to raise.
func New() *Driver {
	return &Driver{nextVector: vectorMidScreen}
}

// Tick runs the CPU for one half-frame's cycle budget, then raises the
// next interrupt vector and flips the alternation. It reports vblank=true
// exactly when the interrupt it just raised was RST 2 (0xD7) — the moment
// spec.md §4.E says the external rasterizer should be signaled.
func (d *Driver) Tick(c CPU, mem cpu.Memory, io bus.IO) (vblank bool) {
	for d.cycleBudget < cyclesPerHalfFrame {
		// Step is always called, halted or not: a halted CPU's Step is a
		// no-op unless an interrupt is pending and enabled, in which case
		// this is the step boundary that wakes it — acknowledgment only
		// ever happens inside Step, never here.
		c.Step(mem, io)
		d.cycleBudget += stepCycles
	}
	d.cycleBudget -= cyclesPerHalfFrame

	c.RaiseInterrupt(d.nextVector)
	vblank = d.nextVector == vectorVBlank

	if d.nextVector == vectorMidScreen {
		d.nextVector = vectorVBlank
	} else {
		d.nextVector = vectorMidScreen
	}

	return vblank
}
