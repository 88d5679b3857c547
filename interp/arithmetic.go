package interp

import "github.com/milesvale/simmips/vm"

// execArithmetic covers the register/logical/immediate family: add, addu,
// sub, subu, and, or, xor, nor, addi, addiu, andi, ori, xori, lui.
func execArithmetic(m *vm.Machine, inst *Instruction) {
	switch inst.Op {
	case OpAdd:
		result, ok := addOverflowCheck(int64(int32(m.GetRegister(inst.Rs))), int64(int32(m.GetRegister(inst.Rt))))
		if !ok {
			m.Fail((&vm.Fault{Kind: vm.FaultOverflow, At: m.PC, Message: "add overflow"}).String())
			return
		}
		m.SetRegister(inst.Rd, uint32(result))
	case OpAddu:
		m.SetRegister(inst.Rd, m.GetRegister(inst.Rs)+m.GetRegister(inst.Rt))
	case OpSub:
		result, ok := addOverflowCheck(int64(int32(m.GetRegister(inst.Rs))), -int64(int32(m.GetRegister(inst.Rt))))
		if !ok {
			m.Fail((&vm.Fault{Kind: vm.FaultOverflow, At: m.PC, Message: "sub overflow"}).String())
			return
		}
		m.SetRegister(inst.Rd, uint32(result))
	case OpSubu:
		m.SetRegister(inst.Rd, m.GetRegister(inst.Rs)-m.GetRegister(inst.Rt))
	case OpAnd:
		m.SetRegister(inst.Rd, m.GetRegister(inst.Rs)&m.GetRegister(inst.Rt))
	case OpOr:
		m.SetRegister(inst.Rd, m.GetRegister(inst.Rs)|m.GetRegister(inst.Rt))
	case OpXor:
		m.SetRegister(inst.Rd, m.GetRegister(inst.Rs)^m.GetRegister(inst.Rt))
	case OpNor:
		m.SetRegister(inst.Rd, ^(m.GetRegister(inst.Rs) | m.GetRegister(inst.Rt)))
	case OpAddi:
		result, ok := addOverflowCheck(int64(int32(m.GetRegister(inst.Rs))), int64(inst.Imm))
		if !ok {
			m.Fail((&vm.Fault{Kind: vm.FaultOverflow, At: m.PC, Message: "addi overflow"}).String())
			return
		}
		m.SetRegister(inst.Rt, uint32(result))
	case OpAddiu:
		m.SetRegister(inst.Rt, m.GetRegister(inst.Rs)+uint32(inst.Imm))
	case OpAndi:
		m.SetRegister(inst.Rt, m.GetRegister(inst.Rs)&uint32(uint16(inst.Imm)))
	case OpOri:
		m.SetRegister(inst.Rt, m.GetRegister(inst.Rs)|uint32(uint16(inst.Imm)))
	case OpXori:
		m.SetRegister(inst.Rt, m.GetRegister(inst.Rs)^uint32(uint16(inst.Imm)))
	case OpLui:
		m.SetRegister(inst.Rt, uint32(inst.Imm)<<16)
	}
}

// addOverflowCheck adds two sign-extended 32-bit operands in 64-bit
// arithmetic and reports whether the true sum fits back into a signed
// 32-bit value.
func addOverflowCheck(a, b int64) (int64, bool) {
	sum := a + b
	if sum < -(1<<31) || sum > (1<<31)-1 {
		return 0, false
	}
	return sum, true
}
