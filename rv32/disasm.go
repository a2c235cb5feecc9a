package rv32

import "fmt"

// Instruction is a disassembly record: the decoded address, raw code,
// mnemonic, operand list, and an optional comment (spec §3, §4.6).
type Instruction struct {
	Address  uint32
	RawCode  uint32
	Mnemonic string
	Operands []string
	Comment  string
}

// String renders the canonical text form:
// "<mnemonic>\t<op1>,<op2>,... [ # <comment>]" (spec §3).
func (i Instruction) String() string {
	s := i.Mnemonic
	if len(i.Operands) > 0 {
		s += "\t"
		for idx, op := range i.Operands {
			if idx > 0 {
				s += ","
			}
			s += op
		}
	}
	if i.Comment != "" {
		s += " # " + i.Comment
	}
	return s
}

// Sink receives one Instruction per retired instruction. Disassembly
// through a Sink is side-effect free with respect to CPU state (spec
// §4.6): building the record never touches registers or memory.
type Sink interface {
	Emit(Instruction)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(Instruction)

func (f SinkFunc) Emit(i Instruction) { f(i) }

// Disassemble decodes a raw instruction word and renders it as an
// Instruction record, without executing it. It is the same decode used
// by the executor, so the two never drift (spec §2, §4.6).
func Disassemble(address, raw uint32) Instruction {
	return render(address, raw, Decode(raw))
}

func reg(r uint32) string { return RegisterABIName(r) }

func render(pc, raw uint32, d Decoded) Instruction {
	mn := mnemonicText[d.Mnemonic]
	if d.Kind == KindIllegal {
		return Instruction{
			Address: pc, RawCode: raw, Mnemonic: ".word",
			Operands: []string{fmt.Sprintf("0x%08x", raw)},
			Comment:  "illegal instruction",
		}
	}

	switch d.Kind {
	case KindLUI, KindAUIPC:
		return Instruction{Address: pc, RawCode: raw, Mnemonic: mn,
			Operands: []string{reg(d.RD), fmt.Sprintf("0x%x", uint32(d.Imm)>>12)}}
	case KindJAL:
		target := pc + uint32(d.Imm)
		return Instruction{Address: pc, RawCode: raw, Mnemonic: mn,
			Operands: []string{reg(d.RD), fmt.Sprintf("%d", d.Imm)},
			Comment:  fmt.Sprintf("target=0x%08x", target)}
	case KindJALR:
		if d.RD == 0 && d.RS1 == 1 && d.Imm == 0 {
			return Instruction{Address: pc, RawCode: raw, Mnemonic: "ret"}
		}
		return Instruction{Address: pc, RawCode: raw, Mnemonic: mn,
			Operands: []string{reg(d.RD), reg(d.RS1), fmt.Sprintf("%d", d.Imm)}}
	case KindBranch:
		target := pc + uint32(d.Imm)
		return Instruction{Address: pc, RawCode: raw, Mnemonic: mn,
			Operands: []string{reg(d.RS1), reg(d.RS2), fmt.Sprintf("%d", d.Imm)},
			Comment:  fmt.Sprintf("target=0x%08x", target)}
	case KindLoad:
		return Instruction{Address: pc, RawCode: raw, Mnemonic: mn,
			Operands: []string{reg(d.RD), fmt.Sprintf("%d(%s)", d.Imm, reg(d.RS1))}}
	case KindStore:
		return Instruction{Address: pc, RawCode: raw, Mnemonic: mn,
			Operands: []string{reg(d.RS2), fmt.Sprintf("%d(%s)", d.Imm, reg(d.RS1))}}
	case KindOpImm:
		switch d.Mnemonic {
		case MnSLLI, MnSRLI, MnSRAI:
			return Instruction{Address: pc, RawCode: raw, Mnemonic: mn,
				Operands: []string{reg(d.RD), reg(d.RS1), fmt.Sprintf("%d", d.Shamt)}}
		default:
			return Instruction{Address: pc, RawCode: raw, Mnemonic: mn,
				Operands: []string{reg(d.RD), reg(d.RS1), fmt.Sprintf("%d", d.Imm)}}
		}
	case KindOp:
		return Instruction{Address: pc, RawCode: raw, Mnemonic: mn,
			Operands: []string{reg(d.RD), reg(d.RS1), reg(d.RS2)}}
	case KindAMO:
		switch d.Mnemonic {
		case MnLRW:
			return Instruction{Address: pc, RawCode: raw, Mnemonic: mn,
				Operands: []string{reg(d.RD), fmt.Sprintf("(%s)", reg(d.RS1))}}
		default:
			return Instruction{Address: pc, RawCode: raw, Mnemonic: mn,
				Operands: []string{reg(d.RD), reg(d.RS2), fmt.Sprintf("(%s)", reg(d.RS1))}}
		}
	default:
		return Instruction{Address: pc, RawCode: raw, Mnemonic: mn}
	}
}
