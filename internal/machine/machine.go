// Package machine wires the core components (memory, CPU, cabinet, frame
// driver, trace ring) into a single runnable unit. Grounded on the
// teacher's Emulator (NewEmulator/LoadROM/RunFrame/Start/Stop/Pause/
// Resume/Reset/GetOutputBuffer), trimmed of the PPU/APU/clock-scheduler
// plumbing a fantasy console needs and that an 8080 arcade board doesn't.
package machine

import (
	"fmt"

	"invaders8080/internal/cabinet"
	"invaders8080/internal/config"
	"invaders8080/internal/cpu"
	"invaders8080/internal/frame"
	"invaders8080/internal/memory"
	"invaders8080/internal/trace"
)

// Machine bundles the whole emulated system: an 8080 core, its 64 KiB
// memory, the cabinet I/O bus, and the 60 Hz frame driver.
type Machine struct {
	CPU     *cpu.CPU
	Memory  *memory.Memory
	Cabinet *cabinet.Cabinet
	Driver  *frame.Driver
	Trace   *trace.Ring

	running bool
	paused  bool
}

// New returns a Machine with a fresh, zero-filled 8080 core, a power-on
// cabinet, and a trace ring of the default capacity.
func New() *Machine {
	t := trace.New(trace.DefaultCapacity)
	c := cpu.New()
	c.Trace = t
	return &Machine{
		CPU:     c,
		Memory:  memory.New(),
		Cabinet: cabinet.New(),
		Driver:  frame.New(),
		Trace:   t,
	}
}

// LoadROM overlays rom at address 0, per spec.md §3's lifecycle rule.
func (m *Machine) LoadROM(rom []byte) error {
	if len(rom) == 0 {
		return fmt.Errorf("machine: ROM image is empty")
	}
	if len(rom) > 0x2000 {
		return fmt.Errorf("machine: ROM image is %d bytes, exceeds the 8 KiB ROM window", len(rom))
	}
	m.Memory.Load(rom, 0)
	return nil
}

// LoadCabinetProfile applies a DIP-switch profile to the cabinet.
func (m *Machine) LoadCabinetProfile(p config.CabinetProfile) {
	m.Cabinet.LoadProfile(p)
}

// Reset reconstructs CPU and cabinet state in place, as spec.md §3
// describes; memory and its ROM overlay are untouched.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.CPU.Trace = m.Trace
	m.Cabinet.Reset()
	m.Driver = frame.New()
}

// Start marks the machine as running.
func (m *Machine) Start() { m.running = true }

// Stop marks the machine as not running.
func (m *Machine) Stop() { m.running = false }

// Pause suspends frame ticking without resetting state.
func (m *Machine) Pause() { m.paused = true }

// Resume un-suspends frame ticking.
func (m *Machine) Resume() { m.paused = false }

// Running reports whether Start has been called without a matching Stop.
func (m *Machine) Running() bool { return m.running }

// RunFrame refreshes cabinet inputs and runs frame-driver ticks until one
// signals vblank, returning true once the VRAM snapshot is ready to
// rasterize. If the machine is stopped or paused it does nothing and
// reports false.
func (m *Machine) RunFrame(in cabinet.Inputs) bool {
	if !m.running || m.paused {
		return false
	}
	m.Cabinet.UpdateInputs(in)

	for {
		if vblank := m.Driver.Tick(m.CPU, m.Memory, m.Cabinet); vblank {
			return true
		}
	}
}

// VRAM returns the video-RAM window backing the 256x224 framebuffer.
func (m *Machine) VRAM() []byte {
	return m.Memory.VRAM()
}
