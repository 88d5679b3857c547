package interp

import "github.com/milesvale/simmips/vm"

// execShift covers sll, srl, sra (literal 5-bit shift amount) and sllv,
// srlv, srav (shift amount taken from a register, masked to 5 bits).
func execShift(m *vm.Machine, inst *Instruction) {
	switch inst.Op {
	case OpSll:
		m.SetRegister(inst.Rd, m.GetRegister(inst.Rt)<<inst.Shamt)
	case OpSrl:
		m.SetRegister(inst.Rd, m.GetRegister(inst.Rt)>>inst.Shamt)
	case OpSra:
		m.SetRegister(inst.Rd, uint32(int32(m.GetRegister(inst.Rt))>>inst.Shamt))
	case OpSllv:
		shamt := m.GetRegister(inst.Rs) & 0x1F
		m.SetRegister(inst.Rd, m.GetRegister(inst.Rt)<<shamt)
	case OpSrlv:
		shamt := m.GetRegister(inst.Rs) & 0x1F
		m.SetRegister(inst.Rd, m.GetRegister(inst.Rt)>>shamt)
	case OpSrav:
		shamt := m.GetRegister(inst.Rs) & 0x1F
		m.SetRegister(inst.Rd, uint32(int32(m.GetRegister(inst.Rt))>>shamt))
	}
}
