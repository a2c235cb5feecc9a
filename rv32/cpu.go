package rv32

import "math/bits"

// ResetPC is the program counter value on construction and reset
// (spec §3).
const ResetPC uint32 = 0x8000_0000

// CPU holds the architectural register file, program counter, and
// reservation set for a single hart, bound to one Memory for its
// lifetime (spec §2, §3). There is no internal scheduler: exactly one
// Step executes at a time (spec §5).
type CPU struct {
	pc   uint32
	regs RegisterFile
	res  reservationSet
	mem  Memory

	stopped bool
	stopPC  uint32
}

// NewCPU constructs a CPU bound to mem and resets it to the initial
// architectural state.
func NewCPU(mem Memory) *CPU {
	c := &CPU{mem: mem}
	c.Reset()
	return c
}

// Reset returns the register file to zero and PC to ResetPC; the
// reservation set is cleared (spec §3 "Lifecycles").
func (c *CPU) Reset() {
	c.pc = ResetPC
	c.regs.Reset()
	c.res.clear()
	c.stopped = false
	c.stopPC = 0
}

// PC returns the current program counter.
func (c *CPU) PC() uint32 { return c.pc }

// ReadRegister returns the architectural value of register r (masked
// to 5 bits), for host tracing and tests.
func (c *CPU) ReadRegister(r uint32) uint32 { return c.regs.Read(r) }

// Registers returns a snapshot of all 32 registers.
func (c *CPU) Registers() [32]uint32 { return c.regs.Snapshot() }

// EmulationStopped reports whether the most recent Step encountered an
// illegal instruction (spec §5 "the host observes emulation_stopped()
// after each step").
func (c *CPU) EmulationStopped() bool { return c.stopped }

// StoppedPC returns the address of the offending instruction once
// EmulationStopped is true (spec §7 "The final PC is available for
// diagnostics").
func (c *CPU) StoppedPC() uint32 { return c.stopPC }

// Step performs one fetch -> decode+execute -> PC commit cycle. If
// sink is non-nil, the retired instruction's disassembly record is
// emitted before execution (side-effect free with respect to CPU
// state). PC is updated exactly once per step; on illegal instruction
// it is left untouched and the machine is marked stopped (spec §4.7).
func (c *CPU) Step(sink Sink) {
	if c.stopped {
		return
	}

	pc := c.pc
	raw := c.mem.ReadWord(pc)
	d := Decode(raw)

	if sink != nil {
		sink.Emit(render(pc, raw, d))
	}

	if d.Kind == KindIllegal {
		c.mem.IllegalInstruction(pc)
		c.stopped = true
		c.stopPC = pc
		return
	}

	c.execute(pc, d)
}

// loadByte/loadHalf/loadWord and storeByte/storeHalf/storeWord mediate
// all memory traffic for execute, folding reservation invalidation
// into every write (spec §4.5: "Every write ... removes the written
// bytes from the reservation set before forwarding to the backing
// memory").

func (c *CPU) loadByte(addr uint32) uint8  { return c.mem.ReadByte(addr) }
func (c *CPU) loadHalf(addr uint32) uint16 { return c.mem.ReadHalf(addr) }
func (c *CPU) loadWord(addr uint32) uint32 { return c.mem.ReadWord(addr) }

func (c *CPU) storeByte(addr uint32, v uint8) {
	c.res.invalidate(addr, 1)
	c.mem.WriteByte(addr, v)
}

func (c *CPU) storeHalf(addr uint32, v uint16) {
	c.res.invalidate(addr, 2)
	c.mem.WriteHalf(addr, v)
}

func (c *CPU) storeWord(addr uint32, v uint32) {
	c.res.invalidate(addr, 4)
	c.mem.WriteWord(addr, v)
}

func (c *CPU) execute(pc uint32, d Decoded) {
	next := pc + 4 // overwritten by taken branches and jumps

	switch d.Kind {
	case KindLUI:
		c.regs.Write(d.RD, uint32(d.Imm))

	case KindAUIPC:
		c.regs.Write(d.RD, pc+uint32(d.Imm))

	case KindJAL:
		c.regs.Write(d.RD, pc+4)
		next = pc + uint32(d.Imm)

	case KindJALR:
		rs1 := c.regs.Read(d.RS1)
		target := (rs1 + uint32(d.Imm)) &^ 1
		c.regs.Write(d.RD, pc+4)
		next = target

	case KindBranch:
		rs1 := c.regs.Read(d.RS1)
		rs2 := c.regs.Read(d.RS2)
		if branchTaken(d.Mnemonic, rs1, rs2) {
			next = pc + uint32(d.Imm)
		}

	case KindLoad:
		ea := c.regs.Read(d.RS1) + uint32(d.Imm)
		c.regs.Write(d.RD, c.loadValue(d.Mnemonic, ea))

	case KindStore:
		ea := c.regs.Read(d.RS1) + uint32(d.Imm)
		rs2 := c.regs.Read(d.RS2)
		c.storeValue(d.Mnemonic, ea, rs2)

	case KindOpImm:
		rs1 := c.regs.Read(d.RS1)
		c.regs.Write(d.RD, aluImm(d.Mnemonic, rs1, d.Imm, d.Shamt))

	case KindOp:
		rs1 := c.regs.Read(d.RS1)
		rs2 := c.regs.Read(d.RS2)
		c.regs.Write(d.RD, aluReg(d.Mnemonic, rs1, rs2))

	case KindAMO:
		next = pc + 4
		c.executeAMO(d)

	default:
		panic("rv32: execute called on an illegal/unclassified instruction")
	}

	c.pc = next
}

func branchTaken(mn Mnemonic, rs1, rs2 uint32) bool {
	switch mn {
	case MnBEQ:
		return rs1 == rs2
	case MnBNE:
		return rs1 != rs2
	case MnBLT:
		return int32(rs1) < int32(rs2)
	case MnBGE:
		return int32(rs1) >= int32(rs2)
	case MnBLTU:
		return rs1 < rs2
	case MnBGEU:
		return rs1 >= rs2
	default:
		panic("rv32: unreachable branch mnemonic")
	}
}

func (c *CPU) loadValue(mn Mnemonic, ea uint32) uint32 {
	switch mn {
	case MnLB:
		return uint32(int32(int8(c.loadByte(ea))))
	case MnLH:
		return uint32(int32(int16(c.loadHalf(ea))))
	case MnLW:
		return c.loadWord(ea)
	case MnLBU:
		return uint32(c.loadByte(ea))
	case MnLHU:
		return uint32(c.loadHalf(ea))
	default:
		panic("rv32: unreachable load mnemonic")
	}
}

func (c *CPU) storeValue(mn Mnemonic, ea uint32, v uint32) {
	switch mn {
	case MnSB:
		c.storeByte(ea, uint8(v))
	case MnSH:
		c.storeHalf(ea, uint16(v))
	case MnSW:
		c.storeWord(ea, v)
	default:
		panic("rv32: unreachable store mnemonic")
	}
}

func aluImm(mn Mnemonic, rs1 uint32, imm int32, shamt uint32) uint32 {
	switch mn {
	case MnADDI:
		return rs1 + uint32(imm)
	case MnSLTI:
		return boolToU32(int32(rs1) < imm)
	case MnSLTIU:
		return boolToU32(rs1 < uint32(imm))
	case MnXORI:
		return rs1 ^ uint32(imm)
	case MnORI:
		return rs1 | uint32(imm)
	case MnANDI:
		return rs1 & uint32(imm)
	case MnSLLI:
		return rs1 << shamt
	case MnSRLI:
		return rs1 >> shamt
	case MnSRAI:
		return uint32(int32(rs1) >> shamt)
	default:
		panic("rv32: unreachable op-imm mnemonic")
	}
}

func aluReg(mn Mnemonic, rs1, rs2 uint32) uint32 {
	switch mn {
	case MnADD:
		return rs1 + rs2
	case MnSUB:
		return rs1 - rs2
	case MnSLL:
		return rs1 << (rs2 & 0x1f)
	case MnSLT:
		return boolToU32(int32(rs1) < int32(rs2))
	case MnSLTU:
		return boolToU32(rs1 < rs2)
	case MnXOR:
		return rs1 ^ rs2
	case MnSRL:
		return rs1 >> (rs2 & 0x1f)
	case MnSRA:
		return uint32(int32(rs1) >> (rs2 & 0x1f))
	case MnOR:
		return rs1 | rs2
	case MnAND:
		return rs1 & rs2
	case MnMUL:
		return rs1 * rs2
	case MnMULH:
		return uint32(mulhSigned(int32(rs1), int32(rs2)))
	case MnMULHSU:
		return uint32(mulhSignedUnsigned(int32(rs1), rs2))
	case MnMULHU:
		hi, _ := bits.Mul32(rs1, rs2)
		return hi
	case MnDIV:
		return divSigned(rs1, rs2)
	case MnDIVU:
		return divUnsigned(rs1, rs2)
	case MnREM:
		return remSigned(rs1, rs2)
	case MnREMU:
		return remUnsigned(rs1, rs2)
	default:
		panic("rv32: unreachable op mnemonic")
	}
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// mulhSigned returns the high 32 bits of the signed 64-bit product of
// two signed 32-bit operands (spec §4.4 MULH).
func mulhSigned(a, b int32) int32 {
	product := int64(a) * int64(b)
	return int32(product >> 32)
}

// mulhSignedUnsigned returns the high 32 bits of signed a times
// unsigned b (spec §4.4 MULHSU).
func mulhSignedUnsigned(a int32, b uint32) int32 {
	product := int64(a) * int64(int64(b))
	return int32(product >> 32)
}

// divSigned implements DIV: divide-by-zero yields 0xFFFF_FFFF, the
// a/-1 overflow case yields a unchanged (0x8000_0000), otherwise
// truncated-toward-zero signed quotient (spec §4.4).
func divSigned(rs1, rs2 uint32) uint32 {
	if rs2 == 0 {
		return 0xFFFF_FFFF
	}
	a, b := int32(rs1), int32(rs2)
	if a == -2147483648 && b == -1 {
		return uint32(a)
	}
	return uint32(a / b)
}

// divUnsigned implements DIVU: divide-by-zero yields 0xFFFF_FFFF.
func divUnsigned(rs1, rs2 uint32) uint32 {
	if rs2 == 0 {
		return 0xFFFF_FFFF
	}
	return rs1 / rs2
}

// remSigned implements REM: divide-by-zero yields rs1, the overflow
// case yields 0, otherwise the signed remainder (spec §4.4).
func remSigned(rs1, rs2 uint32) uint32 {
	if rs2 == 0 {
		return rs1
	}
	a, b := int32(rs1), int32(rs2)
	if a == -2147483648 && b == -1 {
		return 0
	}
	return uint32(a % b)
}

// remUnsigned implements REMU: divide-by-zero yields rs1.
func remUnsigned(rs1, rs2 uint32) uint32 {
	if rs2 == 0 {
		return rs1
	}
	return rs1 % rs2
}

func (c *CPU) executeAMO(d Decoded) {
	addr := c.regs.Read(d.RS1)

	switch d.Mnemonic {
	case MnLRW:
		v := c.loadWord(addr)
		c.regs.Write(d.RD, v)
		c.res.set(addr)
		return
	case MnSCW:
		if c.res.holdsAll(addr) {
			rs2 := c.regs.Read(d.RS2)
			c.storeWord(addr, rs2)
			c.regs.Write(d.RD, 0)
		} else {
			c.regs.Write(d.RD, 1)
		}
		c.res.clear()
		return
	}

	old := c.loadWord(addr)
	rs2 := c.regs.Read(d.RS2)
	var result uint32
	switch d.Mnemonic {
	case MnAMOADDW:
		result = old + rs2
	case MnAMOSWAPW:
		result = rs2
	case MnAMOXORW:
		result = old ^ rs2
	case MnAMOORW:
		result = old | rs2
	case MnAMOANDW:
		result = old & rs2
	case MnAMOMINW:
		if int32(rs2) < int32(old) {
			result = rs2
		} else {
			result = old
		}
	case MnAMOMAXW:
		if int32(rs2) > int32(old) {
			result = rs2
		} else {
			result = old
		}
	case MnAMOMINUW:
		if rs2 < old {
			result = rs2
		} else {
			result = old
		}
	case MnAMOMAXUW:
		if rs2 > old {
			result = rs2
		} else {
			result = old
		}
	default:
		panic("rv32: unreachable AMO mnemonic")
	}
	c.storeWord(addr, result)
	c.regs.Write(d.RD, old)
}
