package interp

import "github.com/milesvale/simmips/vm"

// execCompare covers slt, sltu, slti, sltiu: each writes 1 or 0 to rd/rt.
func execCompare(m *vm.Machine, inst *Instruction) {
	switch inst.Op {
	case OpSlt:
		if int32(m.GetRegister(inst.Rs)) < int32(m.GetRegister(inst.Rt)) {
			m.SetRegister(inst.Rd, 1)
		} else {
			m.SetRegister(inst.Rd, 0)
		}
	case OpSltu:
		if m.GetRegister(inst.Rs) < m.GetRegister(inst.Rt) {
			m.SetRegister(inst.Rd, 1)
		} else {
			m.SetRegister(inst.Rd, 0)
		}
	case OpSlti:
		if int32(m.GetRegister(inst.Rs)) < inst.Imm {
			m.SetRegister(inst.Rt, 1)
		} else {
			m.SetRegister(inst.Rt, 0)
		}
	case OpSltiu:
		if m.GetRegister(inst.Rs) < uint32(inst.Imm) {
			m.SetRegister(inst.Rt, 1)
		} else {
			m.SetRegister(inst.Rt, 0)
		}
	}
}
