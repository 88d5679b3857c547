package interp

import "github.com/milesvale/simmips/vm"

// execJump covers j, jal, jr, jalr. None of these are conditional; each
// unconditionally sets the next pc.
func execJump(m *vm.Machine, inst *Instruction, fallThrough uint32) uint32 {
	switch inst.Op {
	case OpJ:
		return inst.Target
	case OpJal:
		m.SetRegister(31, fallThrough)
		return inst.Target
	case OpJr:
		return m.GetRegister(inst.Rs)
	case OpJalr:
		// The one-operand form's implicit rd=31 is resolved by the
		// assembler when it builds this Instruction, not here.
		target := m.GetRegister(inst.Rs)
		m.SetRegister(inst.Rd, fallThrough)
		return target
	}
	return fallThrough
}
