package rv32

// Test-only encoders, the inverse of decode.go's field extraction.
// Used to build instruction words for scenario tests without needing
// an external assembler.

func encodeR(opcode, rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return (funct7 << 25) | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | (rd << 7) | opcode
}

func encodeI(opcode, rd, funct3, rs1 uint32, imm int32) uint32 {
	return (uint32(imm)&0xFFF)<<20 | (rs1 << 15) | (funct3 << 12) | (rd << 7) | opcode
}

func encodeS(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm) & 0xFFF
	return ((u>>5)&0x7f)<<25 | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | ((u & 0x1f) << 7) | opcode
}

func encodeB(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm) & 0x1FFF
	bit12 := (u >> 12) & 1
	bit11 := (u >> 11) & 1
	bits10_5 := (u >> 5) & 0x3f
	bits4_1 := (u >> 1) & 0xf
	return bit12<<31 | bits10_5<<25 | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | bits4_1<<8 | bit11<<7 | opcode
}

func encodeU(opcode, rd uint32, imm int32) uint32 {
	return (uint32(imm) & 0xFFFF_F000) | (rd << 7) | opcode
}

func encodeJ(opcode, rd uint32, imm int32) uint32 {
	u := uint32(imm) & 0x1F_FFFF
	bit20 := (u >> 20) & 1
	bits10_1 := (u >> 1) & 0x3ff
	bit11 := (u >> 11) & 1
	bits19_12 := (u >> 12) & 0xff
	return bit20<<31 | bits10_1<<21 | bit11<<20 | bits19_12<<12 | (rd << 7) | opcode
}

const (
	opLUI    = 0x37
	opAUIPC  = 0x17
	opJAL    = 0x6F
	opJALR   = 0x67
	opBranch = 0x63
	opLoad   = 0x03
	opStore  = 0x23
	opImm    = 0x13
	opReg    = 0x33
	opAMO    = 0x2F
)

func encLUI(rd uint32, imm int32) uint32   { return encodeU(opLUI, rd, imm) }
func encAUIPC(rd uint32, imm int32) uint32 { return encodeU(opAUIPC, rd, imm) }
func encJAL(rd uint32, imm int32) uint32   { return encodeJ(opJAL, rd, imm) }
func encJALR(rd, rs1 uint32, imm int32) uint32 {
	return encodeI(opJALR, rd, 0, rs1, imm)
}

func encADDI(rd, rs1 uint32, imm int32) uint32  { return encodeI(opImm, rd, 0, rs1, imm) }
func encSLTI(rd, rs1 uint32, imm int32) uint32  { return encodeI(opImm, rd, 2, rs1, imm) }
func encSLTIU(rd, rs1 uint32, imm int32) uint32 { return encodeI(opImm, rd, 3, rs1, imm) }
func encXORI(rd, rs1 uint32, imm int32) uint32  { return encodeI(opImm, rd, 4, rs1, imm) }
func encORI(rd, rs1 uint32, imm int32) uint32   { return encodeI(opImm, rd, 6, rs1, imm) }
func encANDI(rd, rs1 uint32, imm int32) uint32  { return encodeI(opImm, rd, 7, rs1, imm) }
func encSLLI(rd, rs1, shamt uint32) uint32 {
	return encodeR(opImm, rd, 1, rs1, shamt, 0x00)
}
func encSRLI(rd, rs1, shamt uint32) uint32 {
	return encodeR(opImm, rd, 5, rs1, shamt, 0x00)
}
func encSRAI(rd, rs1, shamt uint32) uint32 {
	return encodeR(opImm, rd, 5, rs1, shamt, 0x20)
}

func encLB(rd, rs1 uint32, imm int32) uint32  { return encodeI(opLoad, rd, 0, rs1, imm) }
func encLH(rd, rs1 uint32, imm int32) uint32  { return encodeI(opLoad, rd, 1, rs1, imm) }
func encLW(rd, rs1 uint32, imm int32) uint32  { return encodeI(opLoad, rd, 2, rs1, imm) }
func encLBU(rd, rs1 uint32, imm int32) uint32 { return encodeI(opLoad, rd, 4, rs1, imm) }
func encLHU(rd, rs1 uint32, imm int32) uint32 { return encodeI(opLoad, rd, 5, rs1, imm) }

func encSB(rs1, rs2 uint32, imm int32) uint32 { return encodeS(opStore, 0, rs1, rs2, imm) }
func encSH(rs1, rs2 uint32, imm int32) uint32 { return encodeS(opStore, 1, rs1, rs2, imm) }
func encSW(rs1, rs2 uint32, imm int32) uint32 { return encodeS(opStore, 2, rs1, rs2, imm) }

func encBEQ(rs1, rs2 uint32, imm int32) uint32  { return encodeB(opBranch, 0, rs1, rs2, imm) }
func encBNE(rs1, rs2 uint32, imm int32) uint32  { return encodeB(opBranch, 1, rs1, rs2, imm) }
func encBLT(rs1, rs2 uint32, imm int32) uint32  { return encodeB(opBranch, 4, rs1, rs2, imm) }
func encBGE(rs1, rs2 uint32, imm int32) uint32  { return encodeB(opBranch, 5, rs1, rs2, imm) }
func encBLTU(rs1, rs2 uint32, imm int32) uint32 { return encodeB(opBranch, 6, rs1, rs2, imm) }
func encBGEU(rs1, rs2 uint32, imm int32) uint32 { return encodeB(opBranch, 7, rs1, rs2, imm) }

func encALUReg(rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return encodeR(opReg, rd, funct3, rs1, rs2, funct7)
}

func encADD(rd, rs1, rs2 uint32) uint32 { return encALUReg(rd, 0, rs1, rs2, 0x00) }
func encSUB(rd, rs1, rs2 uint32) uint32 { return encALUReg(rd, 0, rs1, rs2, 0x20) }
func encSLL(rd, rs1, rs2 uint32) uint32 { return encALUReg(rd, 1, rs1, rs2, 0x00) }
func encSLT(rd, rs1, rs2 uint32) uint32 { return encALUReg(rd, 2, rs1, rs2, 0x00) }
func encSLTU(rd, rs1, rs2 uint32) uint32 { return encALUReg(rd, 3, rs1, rs2, 0x00) }
func encXOR(rd, rs1, rs2 uint32) uint32 { return encALUReg(rd, 4, rs1, rs2, 0x00) }
func encSRL(rd, rs1, rs2 uint32) uint32 { return encALUReg(rd, 5, rs1, rs2, 0x00) }
func encSRA(rd, rs1, rs2 uint32) uint32 { return encALUReg(rd, 5, rs1, rs2, 0x20) }
func encOR(rd, rs1, rs2 uint32) uint32  { return encALUReg(rd, 6, rs1, rs2, 0x00) }
func encAND(rd, rs1, rs2 uint32) uint32 { return encALUReg(rd, 7, rs1, rs2, 0x00) }

func encMUL(rd, rs1, rs2 uint32) uint32    { return encALUReg(rd, 0, rs1, rs2, 0x01) }
func encMULH(rd, rs1, rs2 uint32) uint32   { return encALUReg(rd, 1, rs1, rs2, 0x01) }
func encMULHSU(rd, rs1, rs2 uint32) uint32 { return encALUReg(rd, 2, rs1, rs2, 0x01) }
func encMULHU(rd, rs1, rs2 uint32) uint32  { return encALUReg(rd, 3, rs1, rs2, 0x01) }
func encDIV(rd, rs1, rs2 uint32) uint32    { return encALUReg(rd, 4, rs1, rs2, 0x01) }
func encDIVU(rd, rs1, rs2 uint32) uint32   { return encALUReg(rd, 5, rs1, rs2, 0x01) }
func encREM(rd, rs1, rs2 uint32) uint32    { return encALUReg(rd, 6, rs1, rs2, 0x01) }
func encREMU(rd, rs1, rs2 uint32) uint32   { return encALUReg(rd, 7, rs1, rs2, 0x01) }

func encAMO(rd, rs1, rs2, op uint32) uint32 {
	return encodeR(opAMO, rd, 2, rs1, rs2, op<<2)
}

func encLRW(rd, rs1 uint32) uint32      { return encAMO(rd, rs1, 0, 2) }
func encSCW(rd, rs1, rs2 uint32) uint32 { return encAMO(rd, rs1, rs2, 3) }
func encAMOADDW(rd, rs1, rs2 uint32) uint32  { return encAMO(rd, rs1, rs2, 0) }
func encAMOSWAPW(rd, rs1, rs2 uint32) uint32 { return encAMO(rd, rs1, rs2, 1) }
func encAMOXORW(rd, rs1, rs2 uint32) uint32  { return encAMO(rd, rs1, rs2, 4) }
func encAMOORW(rd, rs1, rs2 uint32) uint32   { return encAMO(rd, rs1, rs2, 8) }
func encAMOANDW(rd, rs1, rs2 uint32) uint32  { return encAMO(rd, rs1, rs2, 12) }
func encAMOMINW(rd, rs1, rs2 uint32) uint32  { return encAMO(rd, rs1, rs2, 16) }
func encAMOMAXW(rd, rs1, rs2 uint32) uint32  { return encAMO(rd, rs1, rs2, 20) }
func encAMOMINUW(rd, rs1, rs2 uint32) uint32 { return encAMO(rd, rs1, rs2, 24) }
func encAMOMAXUW(rd, rs1, rs2 uint32) uint32 { return encAMO(rd, rs1, rs2, 28) }
