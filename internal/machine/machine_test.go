package machine

import (
	"testing"

	"invaders8080/internal/cabinet"
	"invaders8080/internal/config"
)

func TestLoadROMRejectsEmptyAndOversizedImages(t *testing.T) {
	m := New()
	if err := m.LoadROM(nil); err == nil {
		t.Fatalf("LoadROM(nil) should fail")
	}
	if err := m.LoadROM(make([]byte, 0x2001)); err == nil {
		t.Fatalf("LoadROM(8193 bytes) should fail, exceeds the 8 KiB window")
	}
	if err := m.LoadROM([]byte{0x76}); err != nil {
		t.Fatalf("LoadROM(1 byte) failed: %v", err)
	}
	if got := m.Memory.Read(0); got != 0x76 {
		t.Errorf("Memory[0] = %02X after LoadROM, want 76", got)
	}
}

func TestRunFrameDoesNothingUntilStarted(t *testing.T) {
	m := New()
	m.LoadROM([]byte{0x76})
	if m.RunFrame(cabinet.Inputs{}) {
		t.Fatalf("RunFrame before Start() should report false")
	}
}

func TestRunFrameRunsUntilVblankOnceStarted(t *testing.T) {
	m := New()
	rom := make([]byte, 1)
	rom[0] = 0x00 // NOP, so the CPU just free-runs
	m.LoadROM(rom)
	m.Start()

	if !m.RunFrame(cabinet.Inputs{}) {
		t.Fatalf("RunFrame should report true once a vblank interrupt is raised")
	}
}

func TestPauseSuspendsFrameTicking(t *testing.T) {
	m := New()
	m.LoadROM([]byte{0x00})
	m.Start()
	m.Pause()

	if m.RunFrame(cabinet.Inputs{}) {
		t.Fatalf("RunFrame while paused should report false")
	}
	m.Resume()
	if !m.RunFrame(cabinet.Inputs{}) {
		t.Fatalf("RunFrame after Resume should run normally")
	}
}

func TestStopClearsRunning(t *testing.T) {
	m := New()
	m.Start()
	if !m.Running() {
		t.Fatalf("Running() should be true after Start()")
	}
	m.Stop()
	if m.Running() {
		t.Fatalf("Running() should be false after Stop()")
	}
}

func TestResetReconstructsCPUAndCabinetButKeepsMemory(t *testing.T) {
	m := New()
	m.LoadROM([]byte{0x3E, 0x42}) // MVI A,42
	m.Start()
	m.CPU.A = 0xFF
	m.Cabinet.UpdateInputs(cabinet.Inputs{Coin: true})

	m.Reset()

	if m.CPU.A != 0 {
		t.Errorf("CPU.A after Reset = %02X, want 0", m.CPU.A)
	}
	if m.CPU.Trace == nil {
		t.Errorf("Reset should leave the trace ring wired into the CPU")
	}
	if got := m.Memory.Read(0); got != 0x3E {
		t.Errorf("Memory after Reset = %02X, want 3E (ROM untouched)", got)
	}
}

func TestLoadCabinetProfileAppliesDIPSwitches(t *testing.T) {
	m := New()
	m.LoadCabinetProfile(config.CabinetProfile{Lives: 6, BonusLifeAt: "1500", TiltEnabled: true})

	p2 := m.Cabinet.PortIn(2)
	if p2&(cabinet.Port2Lives0|cabinet.Port2Lives1) != (cabinet.Port2Lives0 | cabinet.Port2Lives1) {
		t.Errorf("6 lives should set both lives DIP bits on port2, got %08b", p2)
	}
}

func TestVRAMReturnsTheVideoRAMWindow(t *testing.T) {
	m := New()
	if got := len(m.VRAM()); got != 0x1C00 {
		t.Errorf("len(VRAM()) = %d, want %d (0x2400-0x3FFF)", got, 0x1C00)
	}
}
