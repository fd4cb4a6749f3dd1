package frame

import (
	"testing"

	"invaders8080/internal/bus"
	"invaders8080/internal/cpu"
)

type mockMemory struct {
	data [0x10000]byte
}

func (m *mockMemory) Read(addr uint16) uint8     { return m.data[addr] }
func (m *mockMemory) Write(addr uint16, v uint8) { m.data[addr] = v }

func TestTickAlternatesVectorsAndSignalsVblankOnSecond(t *testing.T) {
	mem := &mockMemory{}
	c := cpu.New()
	d := New()

	first := d.Tick(c, mem, bus.Null{})
	if first {
		t.Fatalf("first Tick reported vblank, want false (mid-screen first)")
	}
	second := d.Tick(c, mem, bus.Null{})
	if !second {
		t.Fatalf("second Tick did not report vblank")
	}
	third := d.Tick(c, mem, bus.Null{})
	if third {
		t.Fatalf("third Tick reported vblank, want false (back to mid-screen)")
	}
}

func TestTickRunsTheCPUForRoughlyOneHalfFrame(t *testing.T) {
	mem := &mockMemory{}
	for i := 0; i < 0x10000; i++ {
		mem.data[i] = 0x00 // NOP everywhere
	}
	c := cpu.New()
	d := New()

	d.Tick(c, mem, bus.Null{})

	if c.PC == 0 {
		t.Fatalf("Tick did not advance the CPU at all")
	}
	// The loop steps while the budget is below cyclesPerHalfFrame, so from an
	// empty budget it runs cyclesPerHalfFrame/stepCycles rounded up NOPs; PC
	// lands exactly that many bytes in (each NOP is one byte).
	want := uint16((cyclesPerHalfFrame + stepCycles - 1) / stepCycles)
	if c.PC != want {
		t.Fatalf("PC after one Tick = %d, want %d", c.PC, want)
	}
}

func TestTickDoesNotAdvanceAHaltedCPU(t *testing.T) {
	mem := &mockMemory{}
	mem.data[0] = 0x76 // HLT
	c := cpu.New()
	d := New()

	d.Tick(c, mem, bus.Null{})
	if c.PC != 1 {
		t.Fatalf("PC after HLT = %d, want 1 (only the HLT itself fetched)", c.PC)
	}
	if !c.Halted() {
		t.Fatalf("CPU should be halted")
	}
}

func TestTickRaisesTheInterruptOnTheCPU(t *testing.T) {
	mem := &mockMemory{}
	mem.data[0] = 0x76 // HLT, so the CPU is quiescent when the interrupt lands
	// RST 1 handler: JMP 0x0008, so PC stays on the vector for the rest of
	// the Tick that acknowledges the interrupt.
	mem.data[0x08], mem.data[0x09], mem.data[0x0A] = 0xC3, 0x08, 0x00
	c := cpu.New()
	c.INTE = true
	c.SP = 0x2400
	d := New()

	// The first Tick executes the HLT and, only at its end, latches RST 1
	// as pending. Acknowledgment happens on the next step boundary, which
	// is the opening Step of the following Tick.
	d.Tick(c, mem, bus.Null{})
	if !c.Halted() {
		t.Fatalf("CPU should be halted after the HLT")
	}
	d.Tick(c, mem, bus.Null{})
	if c.PC != 0x0008 {
		t.Fatalf("after RST 1 is acknowledged, PC = %04X, want 0008", c.PC)
	}
}
