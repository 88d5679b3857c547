package assemble

import (
	"github.com/milesvale/simmips/interp"
	"github.com/milesvale/simmips/parser"
)

// expansionCount returns how many real instructions inst compiles to. This
// decision must be knowable during pass 1 layout, before any label in the
// text section has a resolved address, so it depends only on information
// already in hand at that point: the mnemonic itself, a literal immediate's
// magnitude, or (for `la`) whether the target is a label already laid out
// in the data section.
//
// Pass 2 must emit exactly the number of instructions counted here, or
// every label laid out after this entry would resolve to the wrong index.
// For `la` that means: a data-label target lowers by immediate magnitude
// (both passes see the same address), and any other target uses the fixed
// two-instruction lui+ori form in both passes.
func expansionCount(inst *parser.Instruction, dataAddr map[string]uint32) int {
	switch inst.Mnemonic {
	case "li":
		if len(inst.Operands) != 2 {
			return 1
		}
		return immExpansion(inst.Operands[1].Imm)
	case "la":
		if len(inst.Operands) != 2 {
			return 2
		}
		if addr, ok := dataAddr[inst.Operands[1].Label]; ok {
			return immExpansion(int64(int32(addr)))
		}
		return 2
	default:
		return 1
	}
}

// immExpansion reports how many addiu/ori/lui instructions are needed to
// materialize v in a register: one when v fits entirely in the low 16 bits
// (signed or zero-extended), two otherwise.
func immExpansion(v int64) int {
	if v >= -32768 && v <= 65535 {
		return 1
	}
	return 2
}

// expandPseudo lowers one parsed pseudo-instruction into the real
// *interp.Instruction(s) it assembles to. Label operands are resolved
// immediately: by the time pass 2 runs, every label in the program has a
// concrete address.
func (a *assembler) expandPseudo(inst *parser.Instruction) []*interp.Instruction {
	switch inst.Mnemonic {
	case "li":
		rd := a.reg(inst.Operands[0])
		return a.lowerImmediateLoad(rd, inst.Operands[1].Imm)
	case "la":
		rd := a.reg(inst.Operands[0])
		target := inst.Operands[1].Label
		addr, ok := a.labelAddr(target, inst.Pos)
		if !ok {
			return nil
		}
		if def, defined := a.program.Labels[target]; defined && def.Section == parser.SectionText {
			// Pass 1 could not see text addresses and reserved two
			// slots for this entry; emit exactly two so every later
			// index stays where layout put it.
			return a.lowerLuiOri(rd, addr)
		}
		return a.lowerImmediateLoad(rd, int64(int32(addr)))
	case "move":
		rd := a.reg(inst.Operands[0])
		rs := a.reg(inst.Operands[1])
		return []*interp.Instruction{{Op: interp.OpAddu, Mnemonic: "addu", Rd: rd, Rs: 0, Rt: rs}}
	case "nop":
		return []*interp.Instruction{{Op: interp.OpSll, Mnemonic: "sll", Rd: 0, Rt: 0, Shamt: 0}}
	default:
		panic("expandPseudo called on a non-pseudo mnemonic: " + inst.Mnemonic)
	}
}

// lowerImmediateLoad produces the one or two real instructions that place
// v into rd, matching immExpansion's counting exactly.
func (a *assembler) lowerImmediateLoad(rd int, v int64) []*interp.Instruction {
	if v >= -32768 && v <= 32767 {
		return []*interp.Instruction{{Op: interp.OpAddiu, Mnemonic: "addiu", Rt: rd, Rs: 0, Imm: int32(v)}}
	}
	if v >= 0 && v <= 65535 {
		return []*interp.Instruction{{Op: interp.OpOri, Mnemonic: "ori", Rt: rd, Rs: 0, Imm: int32(uint16(v))}}
	}
	return a.lowerLuiOri(rd, uint32(v))
}

// lowerLuiOri materializes v in rd as the full two-instruction lui+ori
// pair, regardless of magnitude.
func (a *assembler) lowerLuiOri(rd int, v uint32) []*interp.Instruction {
	upper := int32((v >> 16) & 0xFFFF)
	lower := int32(v & 0xFFFF)
	return []*interp.Instruction{
		{Op: interp.OpLui, Mnemonic: "lui", Rt: rd, Imm: upper},
		{Op: interp.OpOri, Mnemonic: "ori", Rt: rd, Rs: rd, Imm: lower},
	}
}
