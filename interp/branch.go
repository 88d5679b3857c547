package interp

import "github.com/milesvale/simmips/vm"

// execBranch covers the conditional branch family. All conditions are
// evaluated on the signed interpretation of the register(s) involved. The
// *al variants write pc+1 into $ra unconditionally, before the taken/not
// taken decision is made.
func execBranch(m *vm.Machine, inst *Instruction, fallThrough uint32) uint32 {
	if inst.Op == OpBgezal || inst.Op == OpBltzal {
		m.SetRegister(31, fallThrough)
	}

	taken := false
	switch inst.Op {
	case OpBeq:
		taken = m.GetRegister(inst.Rs) == m.GetRegister(inst.Rt)
	case OpBne:
		taken = m.GetRegister(inst.Rs) != m.GetRegister(inst.Rt)
	case OpBgez, OpBgezal:
		taken = int32(m.GetRegister(inst.Rs)) >= 0
	case OpBgtz:
		taken = int32(m.GetRegister(inst.Rs)) > 0
	case OpBlez:
		taken = int32(m.GetRegister(inst.Rs)) <= 0
	case OpBltz, OpBltzal:
		taken = int32(m.GetRegister(inst.Rs)) < 0
	}

	if taken {
		return inst.Target
	}
	return fallThrough
}
