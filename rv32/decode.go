package rv32

// Kind groups instructions by the shape of their operands, mirroring
// the five RISC-V immediate encodings plus the register-register and
// atomic-memory forms (spec §4.3, §9 design note: a tagged variant
// shared by execute and disassembly instead of re-deriving fields
// twice).
type Kind uint8

const (
	KindLUI Kind = iota
	KindAUIPC
	KindJAL
	KindJALR
	KindBranch
	KindLoad
	KindStore
	KindOpImm
	KindOp
	KindAMO
	KindIllegal
)

// Mnemonic identifies the precise operation within a Kind.
type Mnemonic uint8

const (
	MnInvalid Mnemonic = iota
	MnLUI
	MnAUIPC
	MnJAL
	MnJALR
	MnBEQ
	MnBNE
	MnBLT
	MnBGE
	MnBLTU
	MnBGEU
	MnLB
	MnLH
	MnLW
	MnLBU
	MnLHU
	MnSB
	MnSH
	MnSW
	MnADDI
	MnSLTI
	MnSLTIU
	MnXORI
	MnORI
	MnANDI
	MnSLLI
	MnSRLI
	MnSRAI
	MnADD
	MnSUB
	MnSLL
	MnSLT
	MnSLTU
	MnXOR
	MnSRL
	MnSRA
	MnOR
	MnAND
	MnMUL
	MnMULH
	MnMULHSU
	MnMULHU
	MnDIV
	MnDIVU
	MnREM
	MnREMU
	MnAMOADDW
	MnAMOSWAPW
	MnAMOXORW
	MnAMOORW
	MnAMOANDW
	MnAMOMINW
	MnAMOMAXW
	MnAMOMINUW
	MnAMOMAXUW
	MnLRW
	MnSCW
)

// mnemonicText is the assembler-syntax spelling used by the disassembler.
var mnemonicText = map[Mnemonic]string{
	MnLUI: "lui", MnAUIPC: "auipc", MnJAL: "jal", MnJALR: "jalr",
	MnBEQ: "beq", MnBNE: "bne", MnBLT: "blt", MnBGE: "bge", MnBLTU: "bltu", MnBGEU: "bgeu",
	MnLB: "lb", MnLH: "lh", MnLW: "lw", MnLBU: "lbu", MnLHU: "lhu",
	MnSB: "sb", MnSH: "sh", MnSW: "sw",
	MnADDI: "addi", MnSLTI: "slti", MnSLTIU: "sltiu", MnXORI: "xori", MnORI: "ori", MnANDI: "andi",
	MnSLLI: "slli", MnSRLI: "srli", MnSRAI: "srai",
	MnADD: "add", MnSUB: "sub", MnSLL: "sll", MnSLT: "slt", MnSLTU: "sltu",
	MnXOR: "xor", MnSRL: "srl", MnSRA: "sra", MnOR: "or", MnAND: "and",
	MnMUL: "mul", MnMULH: "mulh", MnMULHSU: "mulhsu", MnMULHU: "mulhu",
	MnDIV: "div", MnDIVU: "divu", MnREM: "rem", MnREMU: "remu",
	MnAMOADDW: "amoadd.w", MnAMOSWAPW: "amoswap.w", MnAMOXORW: "amoxor.w",
	MnAMOORW: "amoor.w", MnAMOANDW: "amoand.w",
	MnAMOMINW: "amomin.w", MnAMOMAXW: "amomax.w", MnAMOMINUW: "amominu.w", MnAMOMAXUW: "amomaxu.w",
	MnLRW: "lr.w", MnSCW: "sc.w",
}

// Decoded is the pure result of decoding one 32-bit instruction word.
// It carries enough information for both execution and disassembly,
// so neither path re-extracts bitfields independently.
type Decoded struct {
	Kind     Kind
	Mnemonic Mnemonic

	RD, RS1, RS2 uint32
	Imm          int32  // meaning depends on Kind: load/JALR offset, store offset, branch/jump displacement, U-immediate, OpImm immediate (zero for OpImm shifts)
	Shamt        uint32 // shift amount for SLLI/SRLI/SRAI

	Funct3, Funct7 uint32 // raw, retained for illegal-instruction diagnostics
}

func parseOpcode(i uint32) uint32 { return i & 0x7f }
func parseRd(i uint32) uint32     { return (i >> 7) & 0x1f }
func parseFunct3(i uint32) uint32 { return (i >> 12) & 0x7 }
func parseRs1(i uint32) uint32    { return (i >> 15) & 0x1f }
func parseRs2(i uint32) uint32    { return (i >> 20) & 0x1f }
func parseFunct7(i uint32) uint32 { return (i >> 25) & 0x7f }
func parseShamt(i uint32) uint32  { return (i >> 20) & 0x1f }

func parseImmU(i uint32) int32 {
	return int32(i & 0xFFFF_F000)
}

func parseImmI(i uint32) int32 {
	return int32(i) >> 20
}

func parseImmS(i uint32) int32 {
	raw := ((i >> 25) << 5) | ((i >> 7) & 0x1f)
	return signExtend(raw, 12)
}

func parseImmB(i uint32) int32 {
	bit12 := (i >> 31) & 1
	bit11 := (i >> 7) & 1
	bits10_5 := (i >> 25) & 0x3f
	bits4_1 := (i >> 8) & 0xf
	raw := (bit12 << 12) | (bit11 << 11) | (bits10_5 << 5) | (bits4_1 << 1)
	return signExtend(raw, 13)
}

func parseImmJ(i uint32) int32 {
	bit20 := (i >> 31) & 1
	bits19_12 := (i >> 12) & 0xff
	bit11 := (i >> 20) & 1
	bits10_1 := (i >> 21) & 0x3ff
	raw := (bit20 << 20) | (bits19_12 << 12) | (bit11 << 11) | (bits10_1 << 1)
	return signExtend(raw, 21)
}

// signExtend interprets the low `bits` bits of raw as a two's-complement
// value and sign-extends them to 32 bits.
func signExtend(raw uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(raw<<shift) >> shift
}

// Decode extracts opcode, register, and immediate fields from a raw
// instruction word and classifies it, without touching any CPU state.
// Unrecognized (opcode, funct3, funct7) triples decode to KindIllegal
// per spec §7.
func Decode(instr uint32) Decoded {
	opcode := parseOpcode(instr)
	rd := parseRd(instr)
	funct3 := parseFunct3(instr)
	rs1 := parseRs1(instr)
	rs2 := parseRs2(instr)
	funct7 := parseFunct7(instr)

	illegal := func() Decoded {
		return Decoded{Kind: KindIllegal, Mnemonic: MnInvalid, Funct3: funct3, Funct7: funct7}
	}

	switch opcode {
	case 0x37: // LUI
		return Decoded{Kind: KindLUI, Mnemonic: MnLUI, RD: rd, Imm: parseImmU(instr)}
	case 0x17: // AUIPC
		return Decoded{Kind: KindAUIPC, Mnemonic: MnAUIPC, RD: rd, Imm: parseImmU(instr)}
	case 0x6F: // JAL
		return Decoded{Kind: KindJAL, Mnemonic: MnJAL, RD: rd, Imm: parseImmJ(instr)}
	case 0x67: // JALR
		if funct3 != 0 {
			return illegal()
		}
		return Decoded{Kind: KindJALR, Mnemonic: MnJALR, RD: rd, RS1: rs1, Imm: parseImmI(instr)}
	case 0x63: // branches
		mn, ok := branchMnemonic(funct3)
		if !ok {
			return illegal()
		}
		return Decoded{Kind: KindBranch, Mnemonic: mn, RS1: rs1, RS2: rs2, Imm: parseImmB(instr), Funct3: funct3}
	case 0x03: // loads
		mn, ok := loadMnemonic(funct3)
		if !ok {
			return illegal()
		}
		return Decoded{Kind: KindLoad, Mnemonic: mn, RD: rd, RS1: rs1, Imm: parseImmI(instr), Funct3: funct3}
	case 0x23: // stores
		mn, ok := storeMnemonic(funct3)
		if !ok {
			return illegal()
		}
		return Decoded{Kind: KindStore, Mnemonic: mn, RS1: rs1, RS2: rs2, Imm: parseImmS(instr), Funct3: funct3}
	case 0x13: // ALU-immediate
		return decodeOpImm(rd, rs1, funct3, funct7, instr, illegal)
	case 0x33: // ALU-register / M extension
		return decodeOp(rd, rs1, rs2, funct3, funct7, illegal)
	case 0x2F: // atomics
		return decodeAMO(rd, rs1, rs2, funct3, funct7, illegal)
	default:
		return illegal()
	}
}

func branchMnemonic(funct3 uint32) (Mnemonic, bool) {
	switch funct3 {
	case 0:
		return MnBEQ, true
	case 1:
		return MnBNE, true
	case 4:
		return MnBLT, true
	case 5:
		return MnBGE, true
	case 6:
		return MnBLTU, true
	case 7:
		return MnBGEU, true
	default:
		return MnInvalid, false
	}
}

func loadMnemonic(funct3 uint32) (Mnemonic, bool) {
	switch funct3 {
	case 0:
		return MnLB, true
	case 1:
		return MnLH, true
	case 2:
		return MnLW, true
	case 4:
		return MnLBU, true
	case 5:
		return MnLHU, true
	default:
		return MnInvalid, false
	}
}

func storeMnemonic(funct3 uint32) (Mnemonic, bool) {
	switch funct3 {
	case 0:
		return MnSB, true
	case 1:
		return MnSH, true
	case 2:
		return MnSW, true
	default:
		return MnInvalid, false
	}
}

func decodeOpImm(rd, rs1, funct3, funct7 uint32, instr uint32, illegal func() Decoded) Decoded {
	switch funct3 {
	case 0:
		return Decoded{Kind: KindOpImm, Mnemonic: MnADDI, RD: rd, RS1: rs1, Imm: parseImmI(instr)}
	case 1:
		if funct7 != 0x00 {
			return illegal()
		}
		return Decoded{Kind: KindOpImm, Mnemonic: MnSLLI, RD: rd, RS1: rs1, Shamt: parseShamt(instr)}
	case 2:
		return Decoded{Kind: KindOpImm, Mnemonic: MnSLTI, RD: rd, RS1: rs1, Imm: parseImmI(instr)}
	case 3:
		return Decoded{Kind: KindOpImm, Mnemonic: MnSLTIU, RD: rd, RS1: rs1, Imm: parseImmI(instr)}
	case 4:
		return Decoded{Kind: KindOpImm, Mnemonic: MnXORI, RD: rd, RS1: rs1, Imm: parseImmI(instr)}
	case 5:
		switch funct7 {
		case 0x00:
			return Decoded{Kind: KindOpImm, Mnemonic: MnSRLI, RD: rd, RS1: rs1, Shamt: parseShamt(instr)}
		case 0x20:
			return Decoded{Kind: KindOpImm, Mnemonic: MnSRAI, RD: rd, RS1: rs1, Shamt: parseShamt(instr)}
		default:
			return illegal()
		}
	case 6:
		return Decoded{Kind: KindOpImm, Mnemonic: MnORI, RD: rd, RS1: rs1, Imm: parseImmI(instr)}
	case 7:
		return Decoded{Kind: KindOpImm, Mnemonic: MnANDI, RD: rd, RS1: rs1, Imm: parseImmI(instr)}
	default:
		return illegal()
	}
}

func decodeOp(rd, rs1, rs2, funct3, funct7 uint32, illegal func() Decoded) Decoded {
	base := Decoded{RD: rd, RS1: rs1, RS2: rs2, Kind: KindOp}
	switch funct7 {
	case 0x00:
		switch funct3 {
		case 0:
			base.Mnemonic = MnADD
		case 1:
			base.Mnemonic = MnSLL
		case 2:
			base.Mnemonic = MnSLT
		case 3:
			base.Mnemonic = MnSLTU
		case 4:
			base.Mnemonic = MnXOR
		case 5:
			base.Mnemonic = MnSRL
		case 6:
			base.Mnemonic = MnOR
		case 7:
			base.Mnemonic = MnAND
		default:
			return illegal()
		}
	case 0x20:
		switch funct3 {
		case 0:
			base.Mnemonic = MnSUB
		case 5:
			base.Mnemonic = MnSRA
		default:
			return illegal()
		}
	case 0x01:
		switch funct3 {
		case 0:
			base.Mnemonic = MnMUL
		case 1:
			base.Mnemonic = MnMULH
		case 2:
			base.Mnemonic = MnMULHSU
		case 3:
			base.Mnemonic = MnMULHU
		case 4:
			base.Mnemonic = MnDIV
		case 5:
			base.Mnemonic = MnDIVU
		case 6:
			base.Mnemonic = MnREM
		case 7:
			base.Mnemonic = MnREMU
		default:
			return illegal()
		}
	default:
		return illegal()
	}
	return base
}

func decodeAMO(rd, rs1, rs2, funct3, funct7 uint32, illegal func() Decoded) Decoded {
	if funct3 != 2 {
		return illegal()
	}
	op := funct7 >> 2
	base := Decoded{Kind: KindAMO, RD: rd, RS1: rs1, RS2: rs2, Funct7: funct7}
	switch op {
	case 0:
		base.Mnemonic = MnAMOADDW
	case 1:
		base.Mnemonic = MnAMOSWAPW
	case 2:
		base.Mnemonic = MnLRW
	case 3:
		base.Mnemonic = MnSCW
	case 4:
		base.Mnemonic = MnAMOXORW
	case 8:
		base.Mnemonic = MnAMOORW
	case 12:
		base.Mnemonic = MnAMOANDW
	case 16:
		base.Mnemonic = MnAMOMINW
	case 20:
		base.Mnemonic = MnAMOMAXW
	case 24:
		base.Mnemonic = MnAMOMINUW
	case 28:
		base.Mnemonic = MnAMOMAXUW
	default:
		return illegal()
	}
	return base
}
