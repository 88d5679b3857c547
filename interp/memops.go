package interp

import "github.com/milesvale/simmips/vm"

// execMemory covers the load/store family. Effective address is always
// base register plus the sign-extended offset, wrapping at 32 bits.
func execMemory(m *vm.Machine, inst *Instruction) {
	addr := m.GetRegister(inst.Rs) + uint32(inst.Imm)

	// The limit is a power of two well above any aligned width, so a
	// single bound check covers every access size.
	if addr >= vm.MemoryLimit {
		m.Fail((&vm.Fault{Kind: vm.FaultBadAddress, At: m.PC, Message: inst.Mnemonic + ": address out of range"}).String())
		return
	}

	switch inst.Op {
	case OpLw:
		if addr%4 != 0 {
			failMisaligned(m, "lw")
			return
		}
		m.SetRegister(inst.Rt, m.Memory.ReadWord(addr))
	case OpLh:
		if addr%2 != 0 {
			failMisaligned(m, "lh")
			return
		}
		m.SetRegister(inst.Rt, uint32(int32(int16(m.Memory.ReadHalf(addr)))))
	case OpLhu:
		if addr%2 != 0 {
			failMisaligned(m, "lhu")
			return
		}
		m.SetRegister(inst.Rt, uint32(m.Memory.ReadHalf(addr)))
	case OpLb:
		m.SetRegister(inst.Rt, uint32(int32(int8(m.Memory.ReadByte(addr)))))
	case OpLbu:
		m.SetRegister(inst.Rt, uint32(m.Memory.ReadByte(addr)))
	case OpSw:
		if addr%4 != 0 {
			failMisaligned(m, "sw")
			return
		}
		m.Memory.WriteWord(addr, m.GetRegister(inst.Rt))
	case OpSh:
		if addr%2 != 0 {
			failMisaligned(m, "sh")
			return
		}
		m.Memory.WriteHalf(addr, uint16(m.GetRegister(inst.Rt)))
	case OpSb:
		m.Memory.WriteByte(addr, uint8(m.GetRegister(inst.Rt)))
	}
}

func failMisaligned(m *vm.Machine, mnemonic string) {
	m.Fail((&vm.Fault{Kind: vm.FaultBadAddress, At: m.PC, Message: mnemonic + ": misaligned memory access"}).String())
}
