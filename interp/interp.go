package interp

import "github.com/milesvale/simmips/vm"

// Program is the resolved, load-time-immutable output of the assembler: the
// instruction vector the interpreter fetches from, indexed by pc.
type Program struct {
	Instructions []*Instruction
}

// Step fetches and executes exactly one instruction: a single dispatch
// switch, register/memory mutation, then a pc update that every
// branch/jump variant is free to override.
//
// A Step on an already-halted machine, or one whose pc has run off the end
// of the program, is a no-op: both are terminal states the REPL observes
// through status/pc rather than through a Step error.
func Step(m *vm.Machine, p *Program) {
	if m.Halted {
		return
	}
	if m.AtEnd() {
		return
	}

	inst := p.Instructions[m.PC]
	nextPC := m.PC + 1

	switch inst.Op {
	case OpAdd, OpAddu, OpSub, OpSubu, OpAnd, OpOr, OpXor, OpNor,
		OpAddi, OpAddiu, OpAndi, OpOri, OpXori, OpLui:
		execArithmetic(m, inst)
	case OpSll, OpSrl, OpSra, OpSllv, OpSrlv, OpSrav:
		execShift(m, inst)
	case OpSlt, OpSltu, OpSlti, OpSltiu:
		execCompare(m, inst)
	case OpMult, OpMultu, OpDiv, OpDivu, OpMfhi, OpMflo, OpMthi, OpMtlo:
		execMulDiv(m, inst)
	case OpLw, OpLh, OpLhu, OpLb, OpLbu, OpSw, OpSh, OpSb:
		execMemory(m, inst)
	case OpBeq, OpBne, OpBgez, OpBgtz, OpBlez, OpBltz, OpBgezal, OpBltzal:
		nextPC = execBranch(m, inst, nextPC)
	case OpJ, OpJal, OpJr, OpJalr:
		nextPC = execJump(m, inst, nextPC)
	default:
		m.Fail("unknown opcode")
		return
	}

	if !m.Halted {
		m.PC = nextPC
	}
}
