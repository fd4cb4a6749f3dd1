package cpu

import "invaders8080/internal/bus"

// Invalid reports whether opcode is one of the twelve bytes the 8080
// leaves undefined; spec.md treats all of them as NOP but flags them in
// the trace.
func Invalid(opcode uint8) bool {
	switch opcode {
	case 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38, 0xCB, 0xD9, 0xDD, 0xED, 0xFD:
		return true
	}
	return false
}

func parity(v uint8) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}

// setZSP sets Z, S and P from an 8-bit ALU result; CY/AC are each
// instruction's own responsibility since they depend on how the result was
// produced, not just its final value.
func (c *CPU) setZSP(result uint8) {
	c.Z = result == 0
	c.S = result&0x80 != 0
	c.P = parity(result)
}

func (c *CPU) fetch8(mem Memory) uint8 {
	v := mem.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16(mem Memory) uint16 {
	lo := c.fetch8(mem)
	hi := c.fetch8(mem)
	return uint16(hi)<<8 | uint16(lo)
}

// addWithFlags computes a+b+cin, setting CY and AC per the accurate
// per-operation half-carry/carry rule (spec.md §9's "Flag macro" note), and
// returns the 8-bit result.
func (c *CPU) addWithFlags(a, b uint8, cin bool) uint8 {
	var cy uint16
	if cin {
		cy = 1
	}
	sum := uint16(a) + uint16(b) + cy
	c.AC = (a&0xF)+(b&0xF)+uint8(cy) > 0xF
	c.CY = sum > 0xFF
	result := uint8(sum)
	c.setZSP(result)
	return result
}

// subWithFlags computes a-b-cin, CY set on borrow (unsigned a < b+cin), AC
// set on a nibble borrow.
func (c *CPU) subWithFlags(a, b uint8, cin bool) uint8 {
	var cy int16
	if cin {
		cy = 1
	}
	diff := int16(a) - int16(b) - cy
	c.AC = int16(a&0xF)-int16(b&0xF)-cy < 0
	c.CY = diff < 0
	result := uint8(diff)
	c.setZSP(result)
	return result
}

func (c *CPU) logicalFlags(result uint8) {
	c.setZSP(result)
	c.CY = false
	c.AC = false
}

// condition evaluates one of the eight Jcc/Ccc/Rcc test codes (the 3-bit
// field at bits 5-3 of a conditional jump/call/return opcode).
func (c *CPU) condition(code uint8) bool {
	switch code {
	case 0: // NZ
		return !c.Z
	case 1: // Z
		return c.Z
	case 2: // NC
		return !c.CY
	case 3: // C
		return c.CY
	case 4: // PO
		return !c.P
	case 5: // PE
		return c.P
	case 6: // P
		return !c.S
	case 7: // M
		return c.S
	}
	return false
}

// call pushes the return address and jumps to target.
func (c *CPU) call(mem Memory, target, ret uint16) {
	c.push(mem, ret)
	c.PC = target
}

// execute decodes and runs the instruction whose opcode byte was already
// consumed (Step has advanced PC past it). Because Step performs no
// trailing PC advance of its own, operand bytes are consumed here via
// fetch8/fetch16 (which move PC forward as they read), and every
// jump/call/return sets PC directly to its destination — the "target - 1"
// trick spec.md §4.C.1 describes for designs with a shared post-step
// increment isn't needed by this one, which the same section allows.
func (c *CPU) execute(mem Memory, io bus.IO, op uint8) {
	switch {
	case op == 0x76: // HLT
		c.HALT = true
		return

	case op >= 0x40 && op <= 0x7F: // MOV r, r'
		dst := (op >> 3) & 0x7
		src := op & 0x7
		c.setReg8(mem, dst, c.getReg8(mem, src))
		return

	case op >= 0x80 && op <= 0xBF: // ALU r (ADD/ADC/SUB/SBB/ANA/XRA/ORA/CMP)
		c.aluReg(mem, op)
		return
	}

	switch op {
	case 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38: // NOP / invalid-as-NOP
		return

	// --- LXI rp, d16 ---
	case 0x01:
		c.SetBC(c.fetch16(mem))
	case 0x11:
		c.SetDE(c.fetch16(mem))
	case 0x21:
		c.SetHL(c.fetch16(mem))
	case 0x31:
		c.SP = c.fetch16(mem)

	// --- STAX / LDAX ---
	case 0x02: // STAX B
		mem.Write(c.BC(), c.A)
	case 0x12: // STAX D
		mem.Write(c.DE(), c.A)
	case 0x0A: // LDAX B
		c.A = mem.Read(c.BC())
	case 0x1A: // LDAX D
		c.A = mem.Read(c.DE())

	// --- INX / DCX rp ---
	case 0x03:
		c.SetBC(c.BC() + 1)
	case 0x13:
		c.SetDE(c.DE() + 1)
	case 0x23:
		c.SetHL(c.HL() + 1)
	case 0x33:
		c.SP++
	case 0x0B:
		c.SetBC(c.BC() - 1)
	case 0x1B:
		c.SetDE(c.DE() - 1)
	case 0x2B:
		c.SetHL(c.HL() - 1)
	case 0x3B:
		c.SP--

	// --- INR / DCR r ---
	case 0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C:
		r := (op >> 3) & 0x7
		v := c.getReg8(mem, r)
		result := v + 1
		c.AC = (v & 0xF) == 0xF
		c.setZSP(result)
		c.setReg8(mem, r, result)
	case 0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D:
		r := (op >> 3) & 0x7
		v := c.getReg8(mem, r)
		result := v - 1
		c.AC = (v & 0xF) != 0
		c.setZSP(result)
		c.setReg8(mem, r, result)

	// --- MVI r, d8 ---
	case 0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E:
		r := (op >> 3) & 0x7
		c.setReg8(mem, r, c.fetch8(mem))

	// --- DAD rp ---
	case 0x09:
		c.dad(c.BC())
	case 0x19:
		c.dad(c.DE())
	case 0x29:
		c.dad(c.HL())
	case 0x39:
		c.dad(c.SP)

	// --- rotates ---
	case 0x07: // RLC
		bit7 := c.A&0x80 != 0
		c.A = c.A<<1 | boolBit(bit7)
		c.CY = bit7
	case 0x0F: // RRC
		bit0 := c.A&0x01 != 0
		c.A = c.A>>1 | boolBit(bit0)<<7
		c.CY = bit0
	case 0x17: // RAL
		bit7 := c.A&0x80 != 0
		c.A = c.A<<1 | boolBit(c.CY)
		c.CY = bit7
	case 0x1F: // RAR
		bit0 := c.A&0x01 != 0
		c.A = c.A>>1 | boolBit(c.CY)<<7
		c.CY = bit0

	case 0x22: // SHLD a16
		addr := c.fetch16(mem)
		mem.Write(addr, c.L)
		mem.Write(addr+1, c.H)
	case 0x2A: // LHLD a16
		addr := c.fetch16(mem)
		c.L = mem.Read(addr)
		c.H = mem.Read(addr + 1)
	case 0x32: // STA a16
		mem.Write(c.fetch16(mem), c.A)
	case 0x3A: // LDA a16
		c.A = mem.Read(c.fetch16(mem))

	case 0x27: // DAA
		c.daa()
	case 0x2F: // CMA
		c.A = ^c.A
	case 0x37: // STC
		c.CY = true
	case 0x3F: // CMC
		c.CY = !c.CY

	// --- stack ---
	case 0xC1:
		c.SetBC(c.pop(mem))
	case 0xD1:
		c.SetDE(c.pop(mem))
	case 0xE1:
		c.SetHL(c.pop(mem))
	case 0xF1:
		c.SetPSW(c.pop(mem))
	case 0xC5:
		c.push(mem, c.BC())
	case 0xD5:
		c.push(mem, c.DE())
	case 0xE5:
		c.push(mem, c.HL())
	case 0xF5:
		c.push(mem, c.PSW())

	case 0xE3: // XTHL
		lo := mem.Read(c.SP)
		hi := mem.Read(c.SP + 1)
		mem.Write(c.SP, c.L)
		mem.Write(c.SP+1, c.H)
		c.L, c.H = lo, hi
	case 0xF9: // SPHL
		c.SP = c.HL()
	case 0xEB: // XCHG
		c.D, c.E, c.H, c.L = c.H, c.L, c.D, c.E

	// --- unconditional jump/call/return ---
	case 0xC3: // JMP a16
		c.PC = c.fetch16(mem)
	case 0xE9: // PCHL
		c.PC = c.HL()
	case 0xCD: // CALL a16
		target := c.fetch16(mem)
		c.call(mem, target, c.PC)
	case 0xC9: // RET
		c.PC = c.pop(mem)

	// --- RST n ---
	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF:
		n := (op >> 3) & 0x7
		c.call(mem, uint16(n)*8, c.PC)

	// --- IN / OUT ---
	case 0xDB: // IN port
		c.A = io.PortIn(c.fetch8(mem))
	case 0xD3: // OUT port
		io.PortOut(c.fetch8(mem), c.A)

	// --- EI / DI ---
	case 0xFB:
		c.INTE = true
	case 0xF3:
		c.INTE = false

	// --- immediate ALU ---
	case 0xC6:
		c.A = c.addWithFlags(c.A, c.fetch8(mem), false)
	case 0xCE:
		c.A = c.addWithFlags(c.A, c.fetch8(mem), c.CY)
	case 0xD6:
		c.A = c.subWithFlags(c.A, c.fetch8(mem), false)
	case 0xDE:
		c.A = c.subWithFlags(c.A, c.fetch8(mem), c.CY)
	case 0xE6: // ANI d8
		operand := c.fetch8(mem)
		c.AC = (c.A|operand)&0x08 != 0
		c.A &= operand
		c.setZSP(c.A)
		c.CY = false
	case 0xEE:
		c.A ^= c.fetch8(mem)
		c.logicalFlags(c.A)
	case 0xF6:
		c.A |= c.fetch8(mem)
		c.logicalFlags(c.A)
	case 0xFE:
		c.subWithFlags(c.A, c.fetch8(mem), false)

	default:
		c.conditionalBranch(mem, op)
	}
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// dad adds a 16-bit register pair into HL. Only CY is affected.
func (c *CPU) dad(v uint16) {
	result := uint32(c.HL()) + uint32(v)
	c.CY = result > 0xFFFF
	c.SetHL(uint16(result))
}

// aluReg implements the 0x80-0xBF block: ADD/ADC/SUB/SBB/ANA/XRA/ORA/CMP
// against a register or M, selected by bits 5-3.
func (c *CPU) aluReg(mem Memory, op uint8) {
	group := (op >> 3) & 0x7
	src := c.getReg8(mem, op&0x7)
	switch group {
	case 0: // ADD
		c.A = c.addWithFlags(c.A, src, false)
	case 1: // ADC
		c.A = c.addWithFlags(c.A, src, c.CY)
	case 2: // SUB
		c.A = c.subWithFlags(c.A, src, false)
	case 3: // SBB
		c.A = c.subWithFlags(c.A, src, c.CY)
	case 4: // ANA
		result := c.A & src
		c.AC = (c.A|src)&0x08 != 0
		c.A = result
		c.setZSP(result)
		c.CY = false
	case 5: // XRA
		c.A ^= src
		c.logicalFlags(c.A)
	case 6: // ORA
		c.A |= src
		c.logicalFlags(c.A)
	case 7: // CMP
		c.subWithFlags(c.A, src, false)
	}
}

// conditionalBranch handles the remaining 11xxx0yy opcodes: Jcc, Ccc, Rcc.
func (c *CPU) conditionalBranch(mem Memory, op uint8) {
	cc := (op >> 3) & 0x7
	switch op & 0xC7 {
	case 0xC2: // Jcc a16
		target := c.fetch16(mem)
		if c.condition(cc) {
			c.PC = target
		}
	case 0xC4: // Ccc a16
		target := c.fetch16(mem)
		if c.condition(cc) {
			c.call(mem, target, c.PC)
		}
	case 0xC0: // Rcc
		if c.condition(cc) {
			c.PC = c.pop(mem)
		}
	}
}

// daa decimal-adjusts A per spec.md §4.C.3's two-step rule.
func (c *CPU) daa() {
	cy := c.CY
	correction := uint8(0)

	if c.AC || (c.A&0x0F) > 9 {
		correction |= 0x06
	}
	if cy || (c.A>>4) > 9 || ((c.A>>4) == 9 && (c.A&0x0F) > 9) {
		correction |= 0x60
		cy = true
	}

	lowNibble := c.A & 0x0F
	c.AC = lowNibble+correction&0x0F > 0x0F
	sum := uint16(c.A) + uint16(correction)
	c.A = uint8(sum)
	c.CY = cy || sum > 0xFF
	c.setZSP(c.A)
}
