// Package cabinet implements the Space Invaders cabinet peripheral: the
// 16-bit barrel-shift register the ROM uses for sprite rotation, the DIP
// switch bits, and the port1/port2 input latches. Cabinet satisfies
// bus.IO, so the CPU core never knows it exists beyond the capability
// interface. Grounded on the teacher's internal/input.InputSystem (the
// latch-on-explicit-refresh pattern, SetButton bit-set/clear helpers) and
// generalized from its controller-shift-register model to the 8080
// cabinet's port table.
package cabinet

import "invaders8080/internal/config"

// Port1 bit positions.
const (
	Port1Coin = 1 << iota
	Port1P2Start
	Port1P1Start
	Port1AlwaysHigh
	Port1P1Fire
	Port1P1Left
	Port1P1Right
)

// Port2 bit positions.
const (
	Port2Lives0 = 1 << iota
	Port2Lives1
	Port2Tilt
	Port2ExtraShip
	Port2P2Fire
	Port2P2Left
	Port2P2Right
	Port2DemoCoinInfo
)

// Cabinet holds the shift register, DIP bits and input latches. The zero
// value is not ready for use; construct with New.
type Cabinet struct {
	shiftMSB    uint8
	shiftLSB    uint8
	shiftOffset uint8

	dip0   uint8 // port 0's constant DIP/wired-high byte
	port1  uint8
	port2  uint8
}

// New returns a Cabinet in its power-on state: port1 with bit 3 wired
// high, everything else zero, and port 0's default DIP constant.
func New() *Cabinet {
	c := &Cabinet{}
	c.Reset()
	return c
}

// Reset restores the power-on state spec.md §3 describes.
func (c *Cabinet) Reset() {
	c.shiftMSB = 0
	c.shiftLSB = 0
	c.shiftOffset = 0
	c.dip0 = 0b0000_1110
	c.port1 = Port1AlwaysHigh
	c.port2 = 0
}

// PortIn implements bus.IO.
func (c *Cabinet) PortIn(port uint8) uint8 {
	switch port {
	case 0:
		return c.dip0
	case 1:
		return c.port1
	case 2:
		return c.port2
	case 3:
		word := uint16(c.shiftMSB)<<8 | uint16(c.shiftLSB)
		return uint8((word << c.shiftOffset) >> 8)
	}
	return 0
}

// PortOut implements bus.IO.
func (c *Cabinet) PortOut(port uint8, value uint8) {
	switch port {
	case 2:
		c.shiftOffset = value & 0x07
	case 4:
		c.shiftLSB = c.shiftMSB
		c.shiftMSB = value
	case 3, 5, 6:
		// sound sink 1, sound sink 2, watchdog: discarded.
	}
}

// UpdateInputs rewrites port1 and port2 atomically from a keyboard
// snapshot. Called exactly once per host frame, before the frame driver
// runs; bit 3 of port1 is always forced high regardless of input.
func (c *Cabinet) UpdateInputs(in Inputs) {
	var p1, p2 uint8
	p1 |= Port1AlwaysHigh
	if in.Coin {
		p1 |= Port1Coin
	}
	if in.P1Start {
		p1 |= Port1P1Start
	}
	if in.P2Start {
		p1 |= Port1P2Start
	}
	if in.P1Fire {
		p1 |= Port1P1Fire
	}
	if in.P1Left {
		p1 |= Port1P1Left
	}
	if in.P1Right {
		p1 |= Port1P1Right
	}

	p2 |= c.port2 & (Port2Lives0 | Port2Lives1 | Port2ExtraShip | Port2DemoCoinInfo)
	if in.Tilt {
		p2 |= Port2Tilt
	}
	if in.P2Fire {
		p2 |= Port2P2Fire
	}
	if in.P2Left {
		p2 |= Port2P2Left
	}
	if in.P2Right {
		p2 |= Port2P2Right
	}

	c.port1 = p1
	c.port2 = p2
}

// Inputs is one sampled keyboard/joystick snapshot, host-agnostic.
type Inputs struct {
	Coin     bool
	P1Start  bool
	P2Start  bool
	P1Fire   bool
	P1Left   bool
	P1Right  bool
	P2Fire   bool
	P2Left   bool
	P2Right  bool
	Tilt     bool
}

// LoadProfile applies a CabinetProfile's DIP-switch bits to port 0 and
// port 2, leaving the coin/start/fire/direction bits UpdateInputs owns
// untouched. The bonus-life DIP lives in port 0's top two bits, outside
// the 0b0000_1110 wired-high/always-zero bits the port's base constant
// fixes.
func (c *Cabinet) LoadProfile(p config.CabinetProfile) {
	c.dip0 = (0b0000_1110 &^ 0xC0) | p.BonusLifeDIP()<<6

	c.port2 &^= Port2Lives0 | Port2Lives1 | Port2DemoCoinInfo
	c.port2 |= p.LivesDIP()
	if p.CoinInfoOff {
		c.port2 |= Port2DemoCoinInfo
	}
}
