// Package bus defines the capability the CPU uses to talk to cabinet
// hardware without knowing what that hardware is.
package bus

// IO is the two-method contract a device plugs into the CPU with. Both
// operations are total: an unknown port never raises an error, it just
// reads as open bus.
type IO interface {
	// PortIn returns the byte addressed by port. Implementations may
	// mutate device state (e.g. a latched shift register), but are not
	// required to.
	PortIn(port uint8) uint8

	// PortOut writes value to the addressed port. Unknown ports discard
	// the write.
	PortOut(port uint8, value uint8)
}

// Null is the zero-value IO: every IN reads 0, every OUT is discarded. It
// gives CPU-only tests a bus that can't influence the result.
type Null struct{}

func (Null) PortIn(uint8) uint8      { return 0 }
func (Null) PortOut(uint8, uint8)    {}

var _ IO = Null{}
