package assemble

import (
	"github.com/milesvale/simmips/interp"
	"github.com/milesvale/simmips/parser"
)

var realOp = map[string]interp.Op{
	"add": interp.OpAdd, "addu": interp.OpAddu,
	"sub": interp.OpSub, "subu": interp.OpSubu,
	"and": interp.OpAnd, "or": interp.OpOr, "xor": interp.OpXor, "nor": interp.OpNor,
	"addi": interp.OpAddi, "addiu": interp.OpAddiu,
	"andi": interp.OpAndi, "ori": interp.OpOri, "xori": interp.OpXori,
	"lui": interp.OpLui,
	"sll": interp.OpSll, "srl": interp.OpSrl, "sra": interp.OpSra,
	"sllv": interp.OpSllv, "srlv": interp.OpSrlv, "srav": interp.OpSrav,
	"slt": interp.OpSlt, "sltu": interp.OpSltu, "slti": interp.OpSlti, "sltiu": interp.OpSltiu,
	"mult": interp.OpMult, "multu": interp.OpMultu, "div": interp.OpDiv, "divu": interp.OpDivu,
	"mfhi": interp.OpMfhi, "mflo": interp.OpMflo, "mthi": interp.OpMthi, "mtlo": interp.OpMtlo,
	"lw": interp.OpLw, "lh": interp.OpLh, "lhu": interp.OpLhu, "lb": interp.OpLb, "lbu": interp.OpLbu,
	"sw": interp.OpSw, "sh": interp.OpSh, "sb": interp.OpSb,
	"j": interp.OpJ, "jal": interp.OpJal, "jr": interp.OpJr, "jalr": interp.OpJalr,
	"beq": interp.OpBeq, "bne": interp.OpBne,
	"bgez": interp.OpBgez, "bgtz": interp.OpBgtz, "blez": interp.OpBlez, "bltz": interp.OpBltz,
	"bgezal": interp.OpBgezal, "bltzal": interp.OpBltzal,
}

// lowerReal builds the single *interp.Instruction a real (non-pseudo)
// mnemonic compiles to, resolving any label operand against the
// fully-laid-out address table.
func (a *assembler) lowerReal(inst *parser.Instruction) *interp.Instruction {
	op, ok := realOp[inst.Mnemonic]
	if !ok {
		a.errors.add(inst.Pos, "unknown mnemonic %q", inst.Mnemonic)
		return nil
	}
	out := &interp.Instruction{Op: op, Mnemonic: inst.Mnemonic}
	ops := inst.Operands

	switch inst.Mnemonic {
	case "add", "addu", "sub", "subu", "and", "or", "xor", "nor", "slt", "sltu":
		out.Rd, out.Rs, out.Rt = a.reg(ops[0]), a.reg(ops[1]), a.reg(ops[2])
	case "addi", "addiu", "andi", "ori", "xori", "slti", "sltiu":
		out.Rt, out.Rs, out.Imm = a.reg(ops[0]), a.reg(ops[1]), int32(ops[2].Imm)
	case "lui":
		out.Rt, out.Imm = a.reg(ops[0]), int32(ops[1].Imm)
	case "sll", "srl", "sra":
		out.Rd, out.Rt, out.Shamt = a.reg(ops[0]), a.reg(ops[1]), uint8(ops[2].Imm&0x1F)
	case "sllv", "srlv", "srav":
		out.Rd, out.Rt, out.Rs = a.reg(ops[0]), a.reg(ops[1]), a.reg(ops[2])
	case "mult", "multu", "div", "divu":
		out.Rs, out.Rt = a.reg(ops[0]), a.reg(ops[1])
	case "mfhi", "mflo":
		out.Rd = a.reg(ops[0])
	case "mthi", "mtlo":
		out.Rs = a.reg(ops[0])
	case "lw", "lh", "lhu", "lb", "lbu":
		out.Rt, out.Rs, out.Imm = a.reg(ops[0]), a.reg(ops[1]), int32(ops[1].Imm)
	case "sw", "sh", "sb":
		out.Rt, out.Rs, out.Imm = a.reg(ops[0]), a.reg(ops[1]), int32(ops[1].Imm)
	case "j", "jal":
		target, ok := a.labelAddr(ops[0].Label, inst.Pos)
		if !ok {
			return nil
		}
		out.Target = target
	case "jr":
		out.Rs = a.reg(ops[0])
	case "jalr":
		if len(ops) == 1 {
			out.Rs, out.Rd = a.reg(ops[0]), 31
		} else {
			out.Rd, out.Rs = a.reg(ops[0]), a.reg(ops[1])
		}
	case "beq", "bne":
		out.Rs, out.Rt = a.reg(ops[0]), a.reg(ops[1])
		target, ok := a.labelAddr(ops[2].Label, inst.Pos)
		if !ok {
			return nil
		}
		out.Target = target
	case "bgez", "bgtz", "blez", "bltz", "bgezal", "bltzal":
		out.Rs = a.reg(ops[0])
		target, ok := a.labelAddr(ops[1].Label, inst.Pos)
		if !ok {
			return nil
		}
		out.Target = target
	}

	return out
}
